package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stillhouse/config"
	"stillhouse/infras/briefing"
	briefingMocks "stillhouse/infras/briefing/mocks"
	"stillhouse/infras/calendarhook"
	calendarMocks "stillhouse/infras/calendarhook/mocks"
	kafkaMocks "stillhouse/infras/kafka/mocks"
	"stillhouse/infras/metrics"
	"stillhouse/infras/otel/mocks"
	eventMocks "stillhouse/internal/domains/event/mocks"
	"stillhouse/internal/domains/event/model"
	"stillhouse/internal/domains/event/model/dto"
	"stillhouse/internal/domains/event/report"
	"stillhouse/internal/domains/event/service"
	"stillhouse/shared/cache"
	cacheMocks "stillhouse/shared/cache/mocks"
	"stillhouse/shared/constant"
	gDto "stillhouse/shared/dto"
	"stillhouse/shared/failure"
	"stillhouse/shared/timezone"
)

type fixture struct {
	repo     *eventMocks.MockEvent
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
	calendar *calendarMocks.MockPusher
	briefing *briefingMocks.MockGenerator
	svc      service.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic = "events.lifecycle"

	f := &fixture{
		repo:     eventMocks.NewMockEvent(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		calendar: calendarMocks.NewMockPusher(ctrl),
		briefing: briefingMocks.NewMockGenerator(ctrl),
	}

	// side effects run async after writes; tests must not depend on
	// whether they land before the assertion
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.repo,
		cfg,
		f.cache,
		f.kafka,
		metrics.NewWith(prometheus.NewRegistry(), "test"),
		f.calendar,
		f.briefing,
		mocks.NewOtel(),
	)

	return f
}

func (f *fixture) expectCacheMiss() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
}

func storedEvent(id string) model.Event {
	event := model.NewDraft()
	event.ID = id
	event.FirstName = "Mara"
	event.LastName = "Quinn"
	event.Email = "mara@example.com"
	event.Phone = "555-0104"
	event.EventType = "Wedding"
	event.DateRequested = "2026-10-03"
	event.Guests = 40
	event.TotalAmount = 3000
	event.DepositAmount = 750

	return event
}

func TestEventService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			res, err := f.svc.Create(ctx, dto.CreateEventRequest{
				FirstName: "Mara",
				Email:     "mara@example.com",
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.DefaultEventType, res.EventType)
			assert.Equal(t, "staff-1", res.CreatedBy)
		})
	}
}

func TestEventService_CreateInquiry_ForcesUntouchedState(t *testing.T) {
	f := newFixture(t)

	var inserted model.Event

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event model.Event) error {
			inserted = event

			return nil
		})

	res, err := f.svc.CreateInquiry(context.Background(), dto.InquiryRequest{
		FirstName: "Theo",
		LastName:  "Park",
		Email:     "theo@example.com",
		Phone:     "555-0123",
	})

	require.NoError(t, err)
	assert.False(t, inserted.Contacted)
	assert.False(t, inserted.DepositPaid)
	assert.False(t, inserted.BalancePaid)
	assert.Equal(t, "theo@example.com", inserted.CreatedBy)
	assert.Equal(t, inserted.ID, res.ID)
}

func TestEventService_GetAll_ModeFiltersAndSorts(t *testing.T) {
	f := newFixture(t)
	f.expectCacheMiss()

	contacted := storedEvent("evt-1")
	contacted.Contacted = true

	fresh := storedEvent("evt-2")
	fresh.Contacted = false
	fresh.DateRequested = "2026-01-05"

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Event{contacted, fresh}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{}, report.ModeNew)

	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "evt-2", res.Events[0].ID)
	assert.Equal(t, 1, res.TotalData)
}

func TestEventService_GetAll_AllModeUsesStoreCount(t *testing.T) {
	f := newFixture(t)
	f.expectCacheMiss()

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Event{storedEvent("evt-1")}, nil)
	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(23, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{}, report.ModeAll)

	require.NoError(t, err)
	assert.Equal(t, 23, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}

func TestEventService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedEvent("evt-1"), nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Event{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Event{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.expectCacheMiss()
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "evt-1")

			if tt.wantErr {
				require.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "evt-1", res.ID)
			assert.Equal(t, "12-2pm", res.TimeWindow)
		})
	}
}

func TestEventService_Update(t *testing.T) {
	amount := dto.Units(3000)

	tests := []struct {
		name      string
		req       dto.UpdateEventRequest
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateEventRequest{TotalAmount: &amount},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:      "empty patch rejected",
			req:       dto.UpdateEventRequest{},
			setupMock: func(f *fixture) {},
			wantErr:   true,
		},
		{
			name: "event not found",
			req:  dto.UpdateEventRequest{TotalAmount: &amount},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			err := f.svc.Update(ctx, tt.req, "evt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "event not found",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "evt-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventService_Stats(t *testing.T) {
	f := newFixture(t)
	f.expectCacheMiss()

	uncontacted := storedEvent("evt-1")
	uncontacted.Contacted = false

	paid := storedEvent("evt-2")
	paid.Contacted = true
	paid.DepositPaid = true
	paid.BalancePaid = true

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Event{uncontacted, paid}, nil)

	res, err := f.svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalEvents)
	assert.Equal(t, int64(6000), res.TotalRevenue)
	assert.Equal(t, 1, res.NewRequests)
	assert.Equal(t, 1, res.PendingDeposits)
}

func TestEventService_Revenue(t *testing.T) {
	f := newFixture(t)
	f.expectCacheMiss()

	october := storedEvent("evt-1")

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Event{october}, nil)

	res, err := f.svc.Revenue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3000), res.Months[9])
	assert.Equal(t, 10, res.PeakMonth)
	assert.Equal(t, int64(3000), res.TotalPipeline)
}

func TestEventService_Estimate(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Estimate(context.Background(), dto.EstimateRequest{
		Guests:  10,
		BarType: model.BarTypeCash,
	})

	assert.Equal(t, int64(1250), res.Total)
	assert.Equal(t, int64(313), res.Deposit)
}

func TestEventService_Sheet(t *testing.T) {
	f := newFixture(t)

	event := storedEvent("evt-1")
	event.BeerWineOffered = false
	event.HasTour = true
	event.HasTasting = true

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(event, nil)
	f.briefing.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("Expect 40 guests.", nil)

	res, err := f.svc.Sheet(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, "Mara Quinn", res.ClientName)
	assert.Equal(t, "October 3, 2026", res.DateStamp)
	assert.Equal(t, "Uncork Fee", res.BarFeeNote)
	assert.Equal(t, int64(150), res.UncorkingFee)
	assert.Equal(t, "TOUR TASTING", res.FacilityUsage)
	assert.Equal(t, "Expect 40 guests.", res.Briefing)
}

func TestEventService_Sheet_RendersWithoutBriefing(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(storedEvent("evt-1"), nil)
	f.briefing.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", briefing.ErrNotConfigured)

	res, err := f.svc.Sheet(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Empty(t, res.Briefing)
	assert.Equal(t, "Svc Fee", res.BarFeeNote)
	assert.Zero(t, res.UncorkingFee)
}

func TestEventService_PushToCalendar(t *testing.T) {
	f := newFixture(t)

	var pushed calendarhook.Request

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(storedEvent("evt-1"), nil)
	f.calendar.EXPECT().
		Push(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req calendarhook.Request) (calendarhook.Result, error) {
			pushed = req

			return calendarhook.Result{GoogleEventID: "gcal-9", PushedAt: timezone.Now()}, nil
		})

	var persisted map[string]any

	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			persisted = fields

			return nil
		})

	res, err := f.svc.PushToCalendar(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, "gcal-9", res.GoogleEventID)
	assert.True(t, res.PushedToCalendar)

	assert.Equal(t, "Wedding - Mara Quinn", pushed.Title)
	assert.Equal(t, "2026-10-03T12:00:00", pushed.Start)
	assert.Equal(t, "2026-10-03T14:00:00", pushed.End)

	assert.Equal(t, true, persisted[model.FieldPushedToCalendar])
	assert.Equal(t, "gcal-9", persisted[model.FieldGoogleEventID])
}

func TestEventService_PushToCalendar_WebhookFailure(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(storedEvent("evt-1"), nil)
	f.calendar.EXPECT().
		Push(gomock.Any(), gomock.Any()).
		Return(calendarhook.Result{}, errors.New("upstream down"))

	_, err := f.svc.PushToCalendar(context.Background(), "evt-1")

	require.Error(t, err)
	assert.Equal(t, 502, failure.GetCode(err))
}

func TestEventService_Briefing(t *testing.T) {
	f := newFixture(t)

	var input briefing.Input

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(storedEvent("evt-1"), nil)
	f.briefing.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in briefing.Input) (string, error) {
			input = in

			return "All set.", nil
		})

	res, err := f.svc.Briefing(context.Background(), "evt-1")

	require.NoError(t, err)
	assert.Equal(t, "All set.", res.Briefing)
	assert.Equal(t, "Mara Quinn", input.GuestName)
	assert.Equal(t, "No food service", input.FoodDetails)
}

func TestEventService_Briefing_GeneratorFailure(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(storedEvent("evt-1"), nil)
	f.briefing.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", errors.New("quota exhausted"))

	_, err := f.svc.Briefing(context.Background(), "evt-1")

	require.Error(t, err)
	assert.Equal(t, 502, failure.GetCode(err))
}
