package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "rfc3339 utc", input: "2026-03-01T12:30:00Z", expected: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)},
		{name: "rfc3339 offset", input: "2026-03-01T12:30:00+02:00", expected: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{name: "date only is local midnight", input: "2026-03-01", expected: time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)},
		{name: "garbage", input: "last tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSince(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long ...", truncate("a long keyword phrase", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat(formatText))
	assert.NoError(t, checkFormat(formatJSON))
	assert.Error(t, checkFormat("csv"))
}
