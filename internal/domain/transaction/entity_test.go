package transaction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReference(t *testing.T) {
	a := NewReference()
	b := NewReference()

	assert.True(t, strings.HasPrefix(a, "TRX-"))
	assert.NotEqual(t, a, b)
}

func TestPaymentStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusPaid.Valid())
	assert.True(t, StatusFailed.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, PaymentStatus("refunded").Valid())
	assert.False(t, PaymentStatus("").Valid())
}
