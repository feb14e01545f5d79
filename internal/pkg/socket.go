package pkg

import (
	"github.com/google/uuid"
)

// GenerateConnectionID - generates an id to tell websocket clients apart in logs.
func GenerateConnectionID() string {
	return uuid.NewString()
}
