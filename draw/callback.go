package draw

import (
	"errors"
	"fmt"
)

// MaxJobIDLength is the longest job id a randomness callback may carry.
const MaxJobIDLength = 92

var ErrInvalidJobID = errors.New("invalid job id")

// GetNextRandomness asks the randomness provider for the next beacon
// value. The reply arrives as a Callback carrying the same JobID.
type GetNextRandomness struct {
	JobID string `json:"job_id"`
}

// Callback delivers a randomness to the consumer that requested it.
type Callback struct {
	JobID      string     `json:"job_id"`
	Randomness Randomness `json:"randomness"`
}

// Validate checks the job id bounds.
func (c Callback) Validate() error {
	return validateJobID(c.JobID)
}

func (g GetNextRandomness) Validate() error {
	return validateJobID(g.JobID)
}

func validateJobID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: must not be empty", ErrInvalidJobID)
	case len(id) > MaxJobIDLength:
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInvalidJobID, len(id), MaxJobIDLength)
	}
	return nil
}
