package audit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
	fail   bool
}

func (s *memorySink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	s.events = append(s.events, ev)
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_DrainsOnClose(t *testing.T) {
	sink := &memorySink{}
	d := audit.NewDispatcher(sink, discard())

	for i := 0; i < 10; i++ {
		d.Dispatch(audit.Event{Action: "appointment_created", Entity: "appointment"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	require.NoError(t, d.Close(ctx))

	assert.Len(t, sink.events, 10)
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &memorySink{fail: true}
	d := audit.NewDispatcher(sink, discard())

	d.Dispatch(audit.Event{Action: "a"})
	d.Dispatch(audit.Event{Action: "b"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.Close(ctx))
}

func TestLogger_WritesRow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:audit_logger?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	id := uint(4)
	require.NoError(t, audit.New(db).Log(context.Background(), audit.Event{
		Action:   "schedule_updated",
		Entity:   "barber",
		EntityID: &id,
		Metadata: map[string]int{"entries": 5},
	}))

	var row models.AuditLog
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "schedule_updated", row.Action)
	assert.Equal(t, `{"entries":5}`, row.Metadata)
	require.NotNil(t, row.EntityID)
	assert.Equal(t, uint(4), *row.EntityID)
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	sink := &memorySink{}
	d := audit.NewDispatcher(sink, discard())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.NotPanics(t, func() {
		d.Dispatch(audit.Event{Action: "late"})
	})
	assert.Empty(t, sink.events)
}
