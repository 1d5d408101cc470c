package appointment

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// TransitionAppointment applies one lifecycle action. The stored status is
// compared-and-set, so of two racing callers only one wins.
type TransitionAppointment struct {
	action domain.Action
	repo   domain.Repository
	conv   *timezone.Converter
	audit  *audit.Dispatcher
	log    *slog.Logger
}

func newTransition(
	action domain.Action,
	repo domain.Repository,
	conv *timezone.Converter,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *TransitionAppointment {
	return &TransitionAppointment{
		action: action,
		repo:   repo,
		conv:   conv,
		audit:  audit,
		log:    log,
	}
}

func NewCheckInAppointment(repo domain.Repository, conv *timezone.Converter, audit *audit.Dispatcher, log *slog.Logger) *TransitionAppointment {
	return newTransition(domain.ActionCheckIn, repo, conv, audit, log)
}

func NewStartAppointment(repo domain.Repository, conv *timezone.Converter, audit *audit.Dispatcher, log *slog.Logger) *TransitionAppointment {
	return newTransition(domain.ActionStart, repo, conv, audit, log)
}

func NewFinishAppointment(repo domain.Repository, conv *timezone.Converter, audit *audit.Dispatcher, log *slog.Logger) *TransitionAppointment {
	return newTransition(domain.ActionFinish, repo, conv, audit, log)
}

func NewCancelAppointment(repo domain.Repository, conv *timezone.Converter, audit *audit.Dispatcher, log *slog.Logger) *TransitionAppointment {
	return newTransition(domain.ActionCancel, repo, conv, audit, log)
}

var auditActions = map[domain.Action]string{
	domain.ActionCheckIn: "appointment_checked_in",
	domain.ActionStart:   "appointment_started",
	domain.ActionFinish:  "appointment_finished",
	domain.ActionCancel:  "appointment_cancelled",
}

func (uc *TransitionAppointment) Action() domain.Action {
	return uc.action
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID *uint,
) (*models.Appointment, error) {

	row, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	ap, err := domain.FromModel(row)
	if err != nil {
		return nil, err
	}
	from := ap.Status()

	now := uc.conv.Now()
	if err := ap.Apply(uc.action, now); err != nil {
		return nil, err
	}
	ap.Flatten(row)

	if err := uc.repo.UpdateAppointmentStatus(
		ctx,
		row,
		from,
		uc.action,
		domain.PaymentEffect(ap, uc.action, now),
	); err != nil {
		return nil, err
	}

	uc.log.DebugContext(ctx, "appointment transition",
		"appointment_id", row.ID,
		"from", from,
		"to", row.Status,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   auditActions[uc.action],
		Entity:   "appointment",
		EntityID: &row.ID,
		Metadata: map[string]any{"from": from, "to": row.Status},
	})

	return row, nil
}
