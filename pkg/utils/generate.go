package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== ORDER ID ====================

// GenerateOrderID creates a unique order ID with timestamp
func GenerateOrderID() string {
	now := time.Now()

	// Format: BKG-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("BKG-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== TRANSACTION ID ====================

// GenerateTransactionID synthesizes a transaction identifier for a payment
// method: TXN-<timestamp>-<random> for online, CASH-<timestamp>-<random>
// for cash.
func GenerateTransactionID(prefix string) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, time.Now().UnixMilli(), rand.Intn(1000000))
}

// ==================== INVOICE NUMBER ====================

// DeriveInvoiceNumber computes a stable invoice number from a booking or
// membership ID without server coordination: the same ID always reproduces
// the same number. Uses the first 8 hex characters of the UUID to keep the
// collision risk negligible.
func DeriveInvoiceNumber(prefix string, id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex[:8]))
}
