package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const referenceCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePaymentPayload builds the payload attached to a token-purchase
// invoice: guide and package IDs plus a random suffix so retried purchases
// stay distinguishable on the payment webhook.
func GeneratePaymentPayload(guideID, packageID uuid.UUID) string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, referenceCodeLength)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}

	return fmt.Sprintf("%s:%s:%s", guideID, packageID, string(b))
}
