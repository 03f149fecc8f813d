package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := ShortID()
		assert.Len(t, id, ShortIDLen)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestLongID(t *testing.T) {
	assert.Len(t, LongID(), 36)
	assert.NotEqual(t, LongID(), LongID())
}

func TestClock_NeverGoesBackwards(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	readings := []time.Time{base, base.Add(-time.Hour), base.Add(time.Minute)}
	clock := NewClock(func() time.Time {
		t := readings[0]
		readings = readings[1:]
		return t
	})

	first := clock.Now()
	second := clock.Now()
	third := clock.Now()

	assert.Equal(t, base, first)
	assert.Equal(t, base, second, "stepped-back wall clock should be clamped")
	assert.Equal(t, base.Add(time.Minute), third)
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{Validationf("bad %s", "input"), "validation"},
		{NotFoundf("missing"), "not_found"},
		{Conflictf("already answered"), "conflict"},
		{ErrDuplicateID, "conflict"},
		{errors.New("disk on fire"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err))
		assert.Equal(t, tt.want != "", IsDomainError(tt.err))
	}
}

func TestValidationf_Message(t *testing.T) {
	err := Validationf("level %d is out of range", 7)
	assert.Equal(t, "validation error: level 7 is out of range", err.Error())
}
