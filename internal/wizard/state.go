package wizard

import "github.com/google/uuid"

// CreationState is the submission state of a wizard. The concrete variants
// are StateIdle, StateLoading, StateSuccess and StateError.
type CreationState interface {
	creationState()
}

type StateIdle struct{}

type StateLoading struct{}

type StateSuccess struct {
	DestinationID uuid.UUID
}

type StateError struct {
	Message string
}

func (StateIdle) creationState()    {}
func (StateLoading) creationState() {}
func (StateSuccess) creationState() {}
func (StateError) creationState()   {}

const (
	StatusIdle    = "idle"
	StatusLoading = "loading"
	StatusSuccess = "success"
	StatusError   = "error"
)

// StateView is the wire form of a CreationState.
type StateView struct {
	Status        string    `json:"status"`
	DestinationID uuid.UUID `json:"destination_id,omitzero"`
	Message       string    `json:"message,omitempty"`
}

func Describe(state CreationState) StateView {
	switch s := state.(type) {
	case StateLoading:
		return StateView{Status: StatusLoading}
	case StateSuccess:
		return StateView{Status: StatusSuccess, DestinationID: s.DestinationID}
	case StateError:
		return StateView{Status: StatusError, Message: s.Message}
	default:
		return StateView{Status: StatusIdle}
	}
}
