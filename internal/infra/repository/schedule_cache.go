package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker/v2"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CachedScheduleRepository keeps each barber's weekly schedule in redis
// under schedule:{barberID}. Every other call goes straight to the wrapped
// repository. Redis trouble only costs a trip to the database.
type CachedScheduleRepository struct {
	domain.Repository

	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *slog.Logger
}

func NewCachedScheduleRepository(
	next domain.Repository,
	client *redis.Client,
	ttl time.Duration,
	log *slog.Logger,
) *CachedScheduleRepository {

	settings := gobreaker.Settings{
		Name:        "schedule-cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &CachedScheduleRepository{
		Repository: next,
		client:     client,
		ttl:        ttl,
		breaker:    gobreaker.NewCircuitBreaker[[]byte](settings),
		log:        log,
	}
}

func scheduleKey(barberID uint) string {
	return fmt.Sprintf("schedule:%d", barberID)
}

func (r *CachedScheduleRepository) ListSchedule(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklySchedule, error) {

	key := scheduleKey(barberID)

	raw, err := r.breaker.Execute(func() ([]byte, error) {
		b, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		r.log.Warn("schedule cache read failed", "barber_id", barberID, "err", err)
	}

	if raw != nil {
		var entries []models.WeeklySchedule
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
		r.log.Warn("schedule cache entry unreadable", "barber_id", barberID)
	}

	entries, err := r.Repository.ListSchedule(ctx, barberID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(entries); err == nil {
		_, err = r.breaker.Execute(func() ([]byte, error) {
			return nil, r.client.Set(ctx, key, b, r.ttl).Err()
		})
		if err != nil {
			r.log.Warn("schedule cache write failed", "barber_id", barberID, "err", err)
		}
	}

	return entries, nil
}

func (r *CachedScheduleRepository) ReplaceSchedule(
	ctx context.Context,
	barberID uint,
	entries []models.WeeklySchedule,
) error {

	if err := r.Repository.ReplaceSchedule(ctx, barberID, entries); err != nil {
		return err
	}

	_, err := r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Del(ctx, scheduleKey(barberID)).Err()
	})
	if err != nil {
		r.log.Warn("schedule cache invalidation failed", "barber_id", barberID, "err", err)
	}
	return nil
}
