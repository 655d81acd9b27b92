package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime12h(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"14:30", "2:30 PM"},
		{"14:30:00", "2:30 PM"},
		{"09:05", "9:05 AM"},
		{"09:05:59", "9:05 AM"},
		{"00:00", "12:00 AM"},
		{"12:00", "12:00 PM"},
		{"23:59", "11:59 PM"},
		{"25:99", "25:99"},  // unparseable stays raw
		{"soonish", "soonish"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime12h(tt.raw), "raw=%q", tt.raw)
	}
}

func TestFormatTime12h_BothWireSpellingsAgree(t *testing.T) {
	assert.Equal(t, FormatTime12h("14:30"), FormatTime12h("14:30:00"))
}

func TestFormatDateHuman(t *testing.T) {
	assert.Equal(t, "Tue, Sep 1 2026", FormatDateHuman("2026-09-01"))
	assert.Equal(t, "not-a-date", FormatDateHuman("not-a-date"))
	assert.Equal(t, "2026-13-45", FormatDateHuman("2026-13-45"))
}

func TestFormatDateTimeHuman(t *testing.T) {
	assert.Equal(t, "Tue, Sep 1 2026 at 2:30 PM", FormatDateTimeHuman("2026-09-01", "14:30:00"))
	assert.Equal(t, "someday at noon", FormatDateTimeHuman("someday", "noon"))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Aug 25 2026, 2:30 PM", FormatTimestamp("2026-08-25 14:30:07"))
	assert.Equal(t, "Aug 25 2026, 2:30 PM", FormatTimestamp("2026-08-25T14:30:07"))
	assert.Equal(t, "later", FormatTimestamp("later"))
}
