package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// countingRepo serves schedules from memory and counts database reads.
type countingRepo struct {
	domain.Repository
	week  []models.WeeklySchedule
	reads int
}

func (r *countingRepo) ListSchedule(_ context.Context, _ uint) ([]models.WeeklySchedule, error) {
	r.reads++
	return r.week, nil
}

func (r *countingRepo) ReplaceSchedule(_ context.Context, barberID uint, entries []models.WeeklySchedule) error {
	r.week = entries
	return nil
}

func newCache(t *testing.T) (*repository.CachedScheduleRepository, *countingRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	next := &countingRepo{week: []models.WeeklySchedule{
		{BarberID: 7, DayOfWeek: 1, StartTime: "09:00", EndTime: "20:00", IsActive: true},
	}}
	return repository.NewCachedScheduleRepository(next, client, 10*time.Minute, discard()), next, mr
}

func TestCachedSchedule_HitAfterMiss(t *testing.T) {
	cache, next, mr := newCache(t)
	ctx := context.Background()

	first, err := cache.ListSchedule(ctx, 7)
	require.NoError(t, err)
	second, err := cache.ListSchedule(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, next.reads)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("schedule:7"))
	assert.Equal(t, 10*time.Minute, mr.TTL("schedule:7"))
}

func TestCachedSchedule_ReplaceInvalidates(t *testing.T) {
	cache, next, mr := newCache(t)
	ctx := context.Background()

	_, err := cache.ListSchedule(ctx, 7)
	require.NoError(t, err)
	require.True(t, mr.Exists("schedule:7"))

	require.NoError(t, cache.ReplaceSchedule(ctx, 7, []models.WeeklySchedule{
		{BarberID: 7, DayOfWeek: 2, StartTime: "10:00", EndTime: "18:00", IsActive: true},
	}))
	assert.False(t, mr.Exists("schedule:7"))

	week, err := cache.ListSchedule(ctx, 7)
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, 2, week[0].DayOfWeek)
	assert.Equal(t, 2, next.reads)
}

func TestCachedSchedule_FallsBackWhenRedisDown(t *testing.T) {
	cache, next, mr := newCache(t)
	ctx := context.Background()

	mr.Close()

	// Enough calls to trip the breaker; reads keep working either way.
	for i := 0; i < 6; i++ {
		week, err := cache.ListSchedule(ctx, 7)
		require.NoError(t, err)
		require.Len(t, week, 1)
	}
	assert.Equal(t, 6, next.reads)

	require.NoError(t, cache.ReplaceSchedule(ctx, 7, nil))
}

func TestCachedSchedule_UnreadableEntryIsIgnored(t *testing.T) {
	cache, next, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("schedule:7", "not json"))

	week, err := cache.ListSchedule(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, week, 1)
	assert.Equal(t, 1, next.reads)
}
