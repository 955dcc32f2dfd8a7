package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	testCases := []struct {
		id    string
		label string
		price string
	}{
		{"1", "1 сессия", "40 000 ₽"},
		{"3", "3 сессии", "100 000 ₽"},
		{"5", "5 сессий", "150 000 ₽"},
		{"8", "8 сессий", "180 000 ₽"},
		{"10", "10 сессий", "200 000 ₽"},
		{"7", "7 сессий", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			e := Lookup(tc.id)
			assert.Equal(t, tc.id, e.ID)
			assert.Equal(t, tc.label, e.Label)
			assert.Equal(t, tc.price, e.Price)
		})
	}
}

func TestEntries_OrderAndCopy(t *testing.T) {
	list := Entries()
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"1", "3", "5", "8", "10"}, ids)

	list[0].Label = "changed"
	assert.Equal(t, "1 сессия", Lookup("1").Label, "Entries must not expose the backing slice")
}

func TestParseCallback(t *testing.T) {
	id, ok := ParseCallback("format_10")
	assert.True(t, ok)
	assert.Equal(t, "10", id)

	_, ok = ParseCallback("format_")
	assert.False(t, ok)

	_, ok = ParseCallback("edit_format")
	assert.False(t, ok)
}

func TestEntry_ButtonText(t *testing.T) {
	assert.Equal(t, "5 сессий — 150 000 ₽", Lookup("5").ButtonText())
	assert.Equal(t, "2 сессий", Lookup("2").ButtonText())
	assert.Equal(t, "format_8", Lookup("8").CallbackData())
}
