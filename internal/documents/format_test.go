package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"just now", 30 * time.Second, "Just now"},
		{"minutes", 5 * time.Minute, "5 min ago"},
		{"fifty-nine minutes", 59 * time.Minute, "59 min ago"},
		{"one hour", 1 * time.Hour, "1 hour ago"},
		{"hours", 5 * time.Hour, "5 hours ago"},
		{"twenty-three hours", 23 * time.Hour, "23 hours ago"},
		{"yesterday", 24 * time.Hour, "Yesterday"},
		{"days", 3 * 24 * time.Hour, "3 days ago"},
		{"one week", 7 * 24 * time.Hour, "1 week ago"},
		{"eight days still one week", 8 * 24 * time.Hour, "1 week ago"},
		{"thirteen days still one week", 13 * 24 * time.Hour, "1 week ago"},
		{"weeks", 2 * 7 * 24 * time.Hour, "2 weeks ago"},
		{"almost a month", 27 * 24 * time.Hour, "3 weeks ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatRelativeDate(now.Add(-tc.ago), now))
		})
	}

	// past four weeks we fall back to a plain date
	old := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 2, 2024", FormatRelativeDate(old, now))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024*1024 - 1, "1024.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatSize(tc.bytes), "bytes=%d", tc.bytes)
	}
}

func TestColorForType(t *testing.T) {
	assert.Equal(t, "#4CAF50", ColorForType("receipt"))
	assert.Equal(t, "#4CAF50", ColorForType("Receipt"))
	assert.Equal(t, "#9E9E9E", ColorForType("unknown"))
	assert.Equal(t, "#9E9E9E", ColorForType("something_new"))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Id Card", typeLabel("id_card"))
	assert.Equal(t, "Receipt", typeLabel("receipt"))
	assert.Equal(t, "Unknown", typeLabel(""))
}
