package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ==================== TIME SLOTS ====================

// TimeSlots is the fixed set of bookable hourly slots.
var TimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// IsValidTimeSlot reports whether slot is one of the bookable hours.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// CombineDateSlot parses a YYYY-MM-DD date and an HH:MM slot into a single
// timestamp in the local zone. The result must land no earlier than the next
// calendar day; same-day bookings are rejected.
func CombineDateSlot(date, slot string, now time.Time) (time.Time, error) {
	if date == "" || slot == "" {
		return time.Time{}, fmt.Errorf("date and time are required")
	}
	if !IsValidTimeSlot(slot) {
		return time.Time{}, fmt.Errorf("invalid time slot %s", slot)
	}

	combined, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %s: %w", date, err)
	}

	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if combined.Before(tomorrow) {
		return time.Time{}, fmt.Errorf("booking date must be at least the next day")
	}

	return combined, nil
}

// ==================== REFERRAL CODES ====================

// NormalizeReferralCode trims and uppercases a referral code. Returns ""
// for blank input, which callers must treat as "no code" rather than
// sending an empty string.
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
