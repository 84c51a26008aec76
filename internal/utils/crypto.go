package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID returns a prefixed run/push identifier built on uuid's
// randomness rather than a hand-rolled crypto/rand-to-hex encoder.
func GenerateID(prefix string) string {
	id := uuid.NewString()

	if prefix != "" {
		return fmt.Sprintf("%s-%s", prefix, id)
	}

	return id
}
