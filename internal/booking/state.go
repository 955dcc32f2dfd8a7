package booking

// State is a node of the booking dialogue
type State string

const (
	StateIdle             State = "IDLE"
	StateName             State = "NAME"
	StatePhone            State = "PHONE"
	StateTime             State = "TIME"
	StateAddress          State = "ADDRESS"
	StateFormat           State = "FORMAT"
	StateComment          State = "COMMENT"
	StateReview           State = "REVIEW"
	StateEditMenu         State = "EDIT_MENU"
	StateFormatEdit       State = "FORMAT_EDIT"
	StateAwaitingNewValue State = "AWAITING_NEW_VALUE"
)

// Active reports whether the state belongs to a booking in progress
func (s State) Active() bool {
	switch s {
	case StateName, StatePhone, StateTime, StateAddress, StateFormat,
		StateComment, StateReview, StateEditMenu, StateFormatEdit, StateAwaitingNewValue:
		return true
	}
	return false
}

// editing reports whether the state carries an edit marker
func (s State) editing() bool {
	return s == StateFormatEdit || s == StateAwaitingNewValue
}

// acceptsPreselection reports whether a format picked from the main menu may
// still be stored. Later states own the format through the dialogue.
func (s State) acceptsPreselection() bool {
	switch s {
	case StateIdle, StateName, StatePhone, StateTime, StateAddress:
		return true
	}
	return false
}
