package status

// Priority is carried as data on the work order; it does not affect the
// state machine.
type Priority string

const (
	PriorityLow      = Priority("Low")
	PriorityMedium   = Priority("Medium")
	PriorityHigh     = Priority("High")
	PriorityCritical = Priority("Critical")
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
