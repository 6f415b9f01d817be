package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMembershipDerive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active with future end date", func(t *testing.T) {
		membership := UserMembership{
			Status:  MembershipStatusActive,
			EndDate: now.Add(10*24*time.Hour + time.Hour),
		}
		membership.Derive(now)

		assert.True(t, membership.IsCurrentlyActive)
		assert.Equal(t, 10, membership.DaysRemaining)
	})

	t.Run("end date passed", func(t *testing.T) {
		membership := UserMembership{
			Status:  MembershipStatusActive,
			EndDate: now.Add(-48 * time.Hour),
		}
		membership.Derive(now)

		assert.False(t, membership.IsCurrentlyActive)
		assert.Equal(t, 0, membership.DaysRemaining)
	})

	t.Run("frozen is never currently active", func(t *testing.T) {
		membership := UserMembership{
			Status:  MembershipStatusFrozen,
			EndDate: now.Add(30 * 24 * time.Hour),
		}
		membership.Derive(now)

		assert.False(t, membership.IsCurrentlyActive)
		assert.Equal(t, 30, membership.DaysRemaining)
	})

	t.Run("days remaining is never negative", func(t *testing.T) {
		for _, offset := range []time.Duration{-time.Hour, -100 * 24 * time.Hour, time.Minute} {
			membership := UserMembership{Status: MembershipStatusExpired, EndDate: now.Add(offset)}
			membership.Derive(now)
			assert.GreaterOrEqual(t, membership.DaysRemaining, 0)
		}
	})
}

func TestEventDerive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("scheduled future event is upcoming", func(t *testing.T) {
		event := Event{
			Status:  EventStatusScheduled,
			StartAt: now.Add(2 * time.Hour),
			EndAt:   now.Add(2*time.Hour + 45*time.Minute),
		}
		event.Derive(now)

		assert.True(t, event.IsUpcoming)
		if assert.NotNil(t, event.DurationMinutes) {
			assert.Equal(t, 45, *event.DurationMinutes)
		}
	})

	t.Run("cancelled future event is not upcoming", func(t *testing.T) {
		event := Event{
			Status:  EventStatusCancelled,
			StartAt: now.Add(2 * time.Hour),
			EndAt:   now.Add(3 * time.Hour),
		}
		event.Derive(now)

		assert.False(t, event.IsUpcoming)
	})

	t.Run("past scheduled event is not upcoming", func(t *testing.T) {
		event := Event{
			Status:  EventStatusScheduled,
			StartAt: now.Add(-2 * time.Hour),
			EndAt:   now.Add(-time.Hour),
		}
		event.Derive(now)

		assert.False(t, event.IsUpcoming)
	})

	t.Run("missing timestamp means no duration", func(t *testing.T) {
		event := Event{Status: EventStatusScheduled, StartAt: now.Add(time.Hour)}
		event.Derive(now)

		assert.Nil(t, event.DurationMinutes)
	})
}

func TestEventStatusValid(t *testing.T) {
	assert.True(t, EventStatusScheduled.Valid())
	assert.True(t, EventStatusCancelled.Valid())
	assert.True(t, EventStatusCompleted.Valid())
	assert.False(t, EventStatus("postponed").Valid())
	assert.False(t, EventStatus("").Valid())
}

func TestMembershipStatusValid(t *testing.T) {
	assert.True(t, MembershipStatusActive.Valid())
	assert.True(t, MembershipStatusExpired.Valid())
	assert.True(t, MembershipStatusFrozen.Valid())
	assert.False(t, MembershipStatus("paused").Valid())
}
