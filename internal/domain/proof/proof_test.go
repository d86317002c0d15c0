package proof

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentProof(t *testing.T) {
	paymentID := uuid.New()

	p, err := NewPaymentProof(paymentID, uuid.New(), "image/PNG", 2048)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ObjectKey(), "payment-proofs/"+paymentID.String()+"/"))
	assert.True(t, strings.HasSuffix(p.ObjectKey(), ".png"))
	assert.Equal(t, "image/png", p.ContentType())

	_, err = NewPaymentProof(paymentID, uuid.New(), "application/pdf", 2048)
	assert.Error(t, err)

	_, err = NewPaymentProof(paymentID, uuid.New(), "image/jpeg", MaxSize+1)
	assert.Error(t, err)
}
