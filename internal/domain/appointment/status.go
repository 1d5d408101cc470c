package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "agendado"
	StatusWaiting   Status = "aguardando"
	StatusInService Status = "em_atendimento"
	StatusFinished  Status = "finalizado"
	StatusCancelled Status = "cancelado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusWaiting, StatusInService, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses admit no further transition.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// BlocksAvailability reports whether an appointment in this status still
// holds its slot for conflict checks.
func (s Status) BlocksAvailability() bool {
	return s == StatusScheduled || s == StatusWaiting || s == StatusInService
}

// NonBlockingStatuses are excluded when loading appointments for slot
// generation.
var NonBlockingStatuses = []Status{StatusCancelled, StatusFinished}

// BlocksBooking reports whether an appointment in this status conflicts with
// a new booking over the same interval. Only cancellation releases the
// recorded interval; a service that finished early still owns it.
func (s Status) BlocksBooking() bool {
	return s != StatusCancelled
}

// BookingIgnoredStatuses are excluded from the overlap re-check at creation.
var BookingIgnoredStatuses = []Status{StatusCancelled}

func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionCheckIn Action = "check_in"
	ActionStart   Action = "start"
	ActionFinish  Action = "finish"
	ActionCancel  Action = "cancel"
)

// Next returns the status reached by applying action to current, and false
// when the move is illegal. Cancelling from em_atendimento or finalizado is
// rejected until product confirms a different policy.
func Next(current Status, action Action) (Status, bool) {
	switch action {
	case ActionCheckIn:
		if current == StatusScheduled {
			return StatusWaiting, true
		}
	case ActionStart:
		if current == StatusWaiting {
			return StatusInService, true
		}
	case ActionFinish:
		if current == StatusInService {
			return StatusFinished, true
		}
	case ActionCancel:
		if current == StatusScheduled || current == StatusWaiting {
			return StatusCancelled, true
		}
	}
	return current, false
}
