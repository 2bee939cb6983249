package status

// Status is the explicit lifecycle state of a work order. The legal moves
// are encoded in the transition table below; call sites never compare raw
// label strings.
type Status string

const (
	Pending       = Status("Pending")
	Received      = Status("Received")
	InMaintenance = Status("InMaintenance")
	Completed     = Status("Completed")
	Cancelled     = Status("Cancelled")
)

var All = []Status{Pending, Received, InMaintenance, Completed, Cancelled}

// transitions lists the target statuses reachable through a plain status
// update. Reopen (Completed -> Pending) and cancel are separate commands
// and are deliberately absent here.
var transitions = map[Status][]Status{
	Pending:       {Received, InMaintenance, Completed},
	Received:      {Pending, InMaintenance, Completed},
	InMaintenance: {Pending, Received, Completed},
	Completed:     {},
	Cancelled:     {},
}

func (s Status) IsValid() bool {
	_, found := transitions[s]
	return found
}

// IsTerminal reports whether the status admits no further status updates.
// A Completed order can still be reopened; a Cancelled order cannot.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func AvailableTransitions(from Status) []Status {
	r := []Status{}
	r = append(r, transitions[from]...)
	return r
}
