package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots(t *testing.T) {
	assert.Len(t, TimeSlots, 11)
	assert.Equal(t, "08:00", TimeSlots[0])
	assert.Equal(t, "18:00", TimeSlots[len(TimeSlots)-1])

	assert.True(t, IsValidTimeSlot("12:00"))
	assert.False(t, IsValidTimeSlot("07:00"))
	assert.False(t, IsValidTimeSlot("19:00"))
	assert.False(t, IsValidTimeSlot("12:30"))
}

func TestCombineDateSlot(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("NextDayAccepted", func(t *testing.T) {
		got, err := CombineDateSlot("2026-03-11", "08:00", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), got)
	})

	t.Run("SameDayRejected", func(t *testing.T) {
		_, err := CombineDateSlot("2026-03-10", "18:00", now)
		assert.Error(t, err)
	})

	t.Run("PastDateRejected", func(t *testing.T) {
		_, err := CombineDateSlot("2026-03-01", "10:00", now)
		assert.Error(t, err)
	})

	t.Run("MissingPartsRejected", func(t *testing.T) {
		_, err := CombineDateSlot("", "10:00", now)
		assert.Error(t, err)

		_, err = CombineDateSlot("2026-03-11", "", now)
		assert.Error(t, err)
	})

	t.Run("InvalidSlotRejected", func(t *testing.T) {
		_, err := CombineDateSlot("2026-03-11", "07:30", now)
		assert.Error(t, err)
	})

	t.Run("MalformedDateRejected", func(t *testing.T) {
		_, err := CombineDateSlot("11-03-2026", "10:00", now)
		assert.Error(t, err)
	})
}

func TestNormalizeReferralCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeReferralCode(" save10 "))
	assert.Equal(t, "SAVE10", NormalizeReferralCode("SAVE10"))
	assert.Equal(t, "", NormalizeReferralCode("   "))
	assert.Equal(t, "", NormalizeReferralCode(""))
}
