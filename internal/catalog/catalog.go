// Package catalog holds the static list of service formats offered for booking.
package catalog

import (
	"fmt"
	"strings"
)

// CallbackPrefix prefixes the callback data of format selection buttons
const CallbackPrefix = "format_"

// Entry is a single service format
type Entry struct {
	ID    string
	Label string
	Price string
}

// ButtonText renders the entry as shown on its selection button
func (e Entry) ButtonText() string {
	if e.Price == "" {
		return e.Label
	}
	return e.Label + " — " + e.Price
}

// CallbackData returns the callback payload carried by the entry's button
func (e Entry) CallbackData() string {
	return CallbackPrefix + e.ID
}

var entries = []Entry{
	{ID: "1", Label: "1 сессия", Price: "40 000 ₽"},
	{ID: "3", Label: "3 сессии", Price: "100 000 ₽"},
	{ID: "5", Label: "5 сессий", Price: "150 000 ₽"},
	{ID: "8", Label: "8 сессий", Price: "180 000 ₽"},
	{ID: "10", Label: "10 сессий", Price: "200 000 ₽"},
}

// Entries returns the catalog in display order
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the entry for id. Unknown ids yield a synthesized label
// built from the raw id and an empty price.
func Lookup(id string) Entry {
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	return Entry{ID: id, Label: fmt.Sprintf("%s сессий", id)}
}

// ParseCallback extracts the format id from callback data like "format_5"
func ParseCallback(data string) (string, bool) {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(data, CallbackPrefix)
	if id == "" {
		return "", false
	}
	return id, true
}
