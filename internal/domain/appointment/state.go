package appointment

import "time"

// State is the lifecycle position of an appointment. Each case carries only
// the timestamps meaningful in that state.
type State interface {
	Status() Status
	isState()
}

type Scheduled struct{}

type Waiting struct {
	CheckedInAt time.Time
}

type InService struct {
	CheckedInAt time.Time
	StartedAt   time.Time
}

type Finished struct {
	CheckedInAt time.Time
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Cancelled keeps the check-in time when the client had already arrived.
type Cancelled struct {
	CheckedInAt *time.Time
	CancelledAt *time.Time
}

func (Scheduled) Status() Status { return StatusScheduled }
func (Waiting) Status() Status   { return StatusWaiting }
func (InService) Status() Status { return StatusInService }
func (Finished) Status() Status  { return StatusFinished }
func (Cancelled) Status() Status { return StatusCancelled }

func (Scheduled) isState() {}
func (Waiting) isState()   {}
func (InService) isState() {}
func (Finished) isState()  {}
func (Cancelled) isState() {}
