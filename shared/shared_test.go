package shared_test

import (
	"context"
	"testing"

	"stillhouse/shared"
	"stillhouse/shared/constant"
	"stillhouse/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 50))
	assert.Equal(t, 1, shared.CalculateTotalPage(10, 0))
	assert.Equal(t, 1, shared.CalculateTotalPage(50, 50))
	assert.Equal(t, 2, shared.CalculateTotalPage(51, 50))
	assert.Equal(t, 3, shared.CalculateTotalPage(101, 50))
}

type eventPatch struct {
	FirstName string `db:"first_name"`
	Guests    int64  `db:"guests"`
	Notes     string `db:"notes"`
	Ignored   string
}

func TestTransformFields(t *testing.T) {
	patch := eventPatch{FirstName: "Mara", Guests: 40, Ignored: "no db tag"}

	fields := shared.TransformFields(patch, "ops@stillhouse.example")

	assert.Equal(t, "Mara", fields["first_name"])
	assert.Equal(t, int64(40), fields["guests"])
	assert.Equal(t, "ops@stillhouse.example", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)

	// zero values and untagged fields stay out of the update set
	assert.NotContains(t, fields, "notes")
	assert.NotContains(t, fields, "Ignored")
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("evt-1", "id", "events")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(events.id = :id)", where)
	assert.Equal(t, "evt-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "event:get", shared.BuildCacheKey("event:get"))
	assert.Equal(t, "event:get:evt-1", shared.BuildCacheKey("event:get", "evt-1"))
	assert.Equal(t, "ratelimit:1.2.3.4:curl", shared.BuildCacheKey("ratelimit", "1.2.3.4", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 50, SortBy: "date_requested", SortDir: "ASC"}
	filter := shared.FilterByID("evt-1", "id", "events")

	first := shared.BuildCacheKeyWithQuery("event:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("event:gets", params, filter)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "event:gets:")

	other := shared.BuildCacheKeyWithQuery("event:gets", dto.QueryParams{Page: 2, Limit: 50}, filter)
	assert.NotEqual(t, first, other)
}

type fakeCache struct {
	cleared []string
}

func (f *fakeCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }
func (f *fakeCache) Get(_ context.Context, _ string, _ any) error        { return assert.AnError }
func (f *fakeCache) Delete(_ context.Context, _ string) error            { return nil }

func (f *fakeCache) Clear(_ context.Context, prefix string) error {
	f.cleared = append(f.cleared, prefix)
	return nil
}

func TestInvalidateCaches(t *testing.T) {
	cache := &fakeCache{}

	shared.InvalidateCaches(context.Background(), cache, "event:gets")

	require.Len(t, cache.cleared, 1)
	assert.Equal(t, "event:gets*", cache.cleared[0])
}
