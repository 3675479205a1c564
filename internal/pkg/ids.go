package pkg

import "github.com/google/uuid"

// GenerateMatchID - generates a new unique match id.
func GenerateMatchID() string {
	return uuid.NewString()
}
