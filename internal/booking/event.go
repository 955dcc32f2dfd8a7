package booking

import "leadbot/internal/models"

// EventKind classifies user input
type EventKind int

const (
	// EventBegin starts a new booking
	EventBegin EventKind = iota
	// EventText is a plain text message
	EventText
	// EventContact is a shared phone contact
	EventContact
	// EventCallback is an inline button press
	EventCallback
	// EventCancel aborts the booking
	EventCancel
	// EventSkip leaves the comment empty
	EventSkip
)

func (k EventKind) String() string {
	switch k {
	case EventBegin:
		return "begin"
	case EventText:
		return "text"
	case EventContact:
		return "contact"
	case EventCallback:
		return "callback"
	case EventCancel:
		return "cancel"
	case EventSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Event is one input delivered by the transport
type Event struct {
	Kind   EventKind
	UserID int64
	ChatID int64

	// Text is set for EventText
	Text string
	// Data is the callback payload for EventCallback
	Data string
	// Phone is the contact number for EventContact
	Phone string

	Submitter models.Submitter
}
