package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stillhouse/config"
	"stillhouse/infras/jwt"
	jwtMocks "stillhouse/infras/jwt/mocks"
	"stillhouse/infras/otel/mocks"
	"stillhouse/internal/domains/auth/model/dto"
	"stillhouse/internal/domains/auth/service"
	userMocks "stillhouse/internal/domains/user/mocks"
	userModel "stillhouse/internal/domains/user/model"
	"stillhouse/shared/constant"
	"stillhouse/shared/failure"
	"stillhouse/shared/password"
)

func validUser(t *testing.T, plaintext string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plaintext)
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Email:    "staff@example.com",
		Password: hashed,
		Level:    constant.RoleAdmin,
		Active:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT, user userModel.User)
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "staff@example.com", Password: "correct-horse"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT, user userModel.User) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				jwtSvc.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Level).Return(pair, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT, _ userModel.User) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "staff@example.com", Password: "wrong"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT, user userModel.User) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "staff@example.com", Password: "correct-horse"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT, user userModel.User) {
				user.Active = false
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := userMocks.NewMockUser(ctrl)
			mockJWT := jwtMocks.NewMockJWT(ctrl)

			svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

			tt.setupMock(mockRepo, mockJWT, validUser(t, "correct-horse"))

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "refresh", res.RefreshToken)
			assert.Equal(t, int64(900), res.ExpiresIn)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name: "successful registration",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleManager, user.Level)
						assert.True(t, user.Active)
						assert.NotEmpty(t, user.ID)

						return nil
					})
			},
		},
		{
			name: "duplicate email",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := userMocks.NewMockUser(ctrl)

			svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

			tt.setupMock(mockRepo)

			err := svc.Register(context.Background(), dto.RegisterRequest{
				Email:    "new@example.com",
				Password: "long-enough-pw",
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(userMocks.NewMockUser(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	mockJWT.EXPECT().
		RefreshTokens("good-token").
		Return(&jwt.TokenPair{AccessToken: "fresh"}, nil)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good-token"})

	require.NoError(t, err)
	assert.Equal(t, "fresh", res.AccessToken)

	mockJWT.EXPECT().
		RefreshTokens("bad-token").
		Return(nil, errors.New("expired"))

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-token"})

	require.Error(t, err)
	assert.Equal(t, 401, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	user := validUser(t, "old-password")

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "brand-new-password",
	}, "user-1")

	assert.NoError(t, err)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

	err = svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
		CurrentPassword: "not-the-old-one",
		NewPassword:     "brand-new-password",
	}, "user-1")

	assert.Error(t, err)
}
