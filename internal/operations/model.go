package operations

import "time"

// Operation is one ordered step in the production pipeline (e.g. Cutting,
// Tempering). Every order traverses all operations in sequence_index order.
type Operation struct {
	ID                string
	Name              string
	SequenceIndex     int
	DefaultDailyLimit int
	Description       string
	CreatedAt         time.Time
}
