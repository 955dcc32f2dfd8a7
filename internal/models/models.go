package models

import (
	"fmt"
	"time"
)

// Fields holds the answers collected during a booking dialogue.
// An empty Comment is either "no comment" or "not asked yet"; only the
// session state tells the two apart.
type Fields struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Time        string `json:"time,omitempty"`
	Address     string `json:"address,omitempty"`
	FormatLabel string `json:"format_label,omitempty"`
	FormatPrice string `json:"format_price,omitempty"`
	Comment     string `json:"comment,omitempty"`

	// FormatSet is tracked separately because an unknown format has an empty price
	FormatSet bool `json:"format_set,omitempty"`
}

// SetFormat stores the format label and price together
func (f *Fields) SetFormat(label, price string) {
	f.FormatLabel = label
	f.FormatPrice = price
	f.FormatSet = true
}

// HasFormat reports whether a format was selected
func (f Fields) HasFormat() bool {
	return f.FormatSet
}

// Session is one user's in-progress booking dialogue
type Session struct {
	UserID    int64     `json:"user_id"`
	State     string    `json:"state"`
	Fields    Fields    `json:"fields"`
	Editing   string    `json:"editing,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Submitter identifies the Telegram user who sent a lead
type Submitter struct {
	ID       int64
	Username string
}

// Handle renders the submitter as "@username (ID: n)" or "ID: n"
func (s Submitter) Handle() string {
	if s.Username != "" {
		return fmt.Sprintf("@%s (ID: %d)", s.Username, s.ID)
	}
	return fmt.Sprintf("ID: %d", s.ID)
}

// Lead is the frozen snapshot of a session handed to the operator
type Lead struct {
	ID          string
	Fields      Fields
	Submitter   Submitter
	SubmittedAt time.Time
}
