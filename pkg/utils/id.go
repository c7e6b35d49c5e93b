package utils

import "github.com/google/uuid"

// NewID returns a random record identifier.
func NewID() string { return uuid.NewString() }
