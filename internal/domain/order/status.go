package order

// Status represents the fulfillment state of an order
type Status string

const (
	StatusNew              Status = "NEW"
	StatusProcessing       Status = "PROCESSING"
	StatusPreparing        Status = "PREPARING"
	StatusReadyForDelivery Status = "READY_FOR_DELIVERY"
	StatusDelivered        Status = "DELIVERED"
	StatusCompleted        Status = "COMPLETED"
	StatusCancelled        Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusPreparing, StatusReadyForDelivery,
		StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is defined
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The chain is linear; CANCELLED is reachable from any non-terminal state.
// Re-asserting the current status is not a valid transition.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	switch s {
	case StatusNew:
		return target == StatusProcessing
	case StatusProcessing:
		return target == StatusPreparing
	case StatusPreparing:
		return target == StatusReadyForDelivery
	case StatusReadyForDelivery:
		return target == StatusDelivered
	case StatusDelivered:
		return target == StatusCompleted
	}
	return false
}
