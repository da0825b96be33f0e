package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketID_Format(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	got, err := NewTicketID(now)
	require.NoError(t, err)

	assert.True(t, IsTicketID(got), got)
	assert.True(t, strings.HasPrefix(got, "TK-"+Base36Millis(now)+"-"))
}

func TestNewMessageID_Format(t *testing.T) {
	got, err := NewMessageID(time.Now())
	require.NoError(t, err)
	assert.True(t, IsMessageID(got), got)
	assert.Len(t, strings.Split(got, "-")[2], 3)
}

func TestNewUserAndLogIDs(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	userID, err := NewUserID(now)
	require.NoError(t, err)
	assert.Regexp(t, `^USR-[0-9a-z]+-[0-9A-Z]{8}$`, userID)

	logID, err := NewLogID(now)
	require.NoError(t, err)
	assert.Regexp(t, `^LOG-1700000000000-[0-9a-z]{5}$`, logID)
}

func TestNewTicketID_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		got, err := NewTicketID(now)
		require.NoError(t, err)
		assert.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}
