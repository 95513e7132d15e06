package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a 32-char dashless UUID, matching the users.id column width.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
