package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions is the full edge set of the lifecycle. Statuses absent as keys are unknown.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ActiveStatuses participate in conflict checks.
var ActiveStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrValidation("invalid_status", "Status desconhecido: "+s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// ===============================
// Validations
// ===============================

// CanTransition valida uma mudança de status contra a tabela de transições.
// Transições para o mesmo status são rejeitadas.
func CanTransition(from, to Status) error {
	if !from.Valid() || !to.Valid() || from == to {
		return &InvalidTransitionError{From: from, To: to}
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

func InitialStatus() Status {
	return StatusScheduled
}
