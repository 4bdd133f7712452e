package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderID(t *testing.T) {
	orderID := GenerateOrderID()

	assert.True(t, strings.HasPrefix(orderID, "BKG-"))
	parts := strings.Split(orderID, "-")
	require.Len(t, parts, 4)
	assert.Len(t, parts[1], 8) // date
	assert.Len(t, parts[2], 6) // time
	assert.Len(t, parts[3], 4) // random
}

func TestGenerateTransactionID(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateTransactionID("TXN"), "TXN-"))
	assert.True(t, strings.HasPrefix(GenerateTransactionID("CASH"), "CASH-"))
}

func TestDeriveInvoiceNumber(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000")

	t.Run("Format", func(t *testing.T) {
		got := DeriveInvoiceNumber("INV-BKG", id)
		assert.Equal(t, "INV-BKG-A1B2C3D4", got)
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := DeriveInvoiceNumber("INV-BKG", id)
		second := DeriveInvoiceNumber("INV-BKG", id)
		assert.Equal(t, first, second)
	})

	t.Run("DistinctIDsDistinctNumbers", func(t *testing.T) {
		other := uuid.MustParse("b2c3d4e5-0000-4000-8000-000000000000")
		assert.NotEqual(t, DeriveInvoiceNumber("INV-BKG", id), DeriveInvoiceNumber("INV-BKG", other))
	})
}
