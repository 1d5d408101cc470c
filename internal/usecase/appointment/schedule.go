package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

func (uc *GetSchedule) Execute(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklySchedule, error) {

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.repo.ListSchedule(ctx, barberID)
}

// ReplaceSchedule swaps a barber's whole week after validating it.
type ReplaceSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplaceSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReplaceSchedule {
	return &ReplaceSchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReplaceSchedule) Execute(
	ctx context.Context,
	barberID uint,
	entries []models.WeeklySchedule,
	actorID *uint,
) ([]models.WeeklySchedule, error) {

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	if err := domain.ValidateSchedule(barberID, entries); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceSchedule(ctx, barberID, entries); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "schedule_updated",
		Entity:   "barber",
		EntityID: &barberID,
		Metadata: map[string]int{"entries": len(entries)},
	})

	return uc.repo.ListSchedule(ctx, barberID)
}
