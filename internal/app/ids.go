package app

import "github.com/google/uuid"

// ComputerID occupies the engine's seat in vs-computer games.
const ComputerID = "computer"

// newGameID returns a random UUIDv4 string.
func newGameID() string {
    return uuid.NewString()
}
