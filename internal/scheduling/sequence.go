package scheduling

import (
	"fmt"
	"sort"

	"scheduler-backend/internal/operations"
)

// Sequence is the fixed, ordered pipeline every order traverses. It is
// built once per scheduling run from the operations table and is read-only.
type Sequence struct {
	ops []operations.Operation
}

// NewSequence sorts operations by sequence index and rejects duplicates;
// the pipeline must be totally ordered.
func NewSequence(ops []operations.Operation) (*Sequence, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: no operations defined", ErrInvalidOrder)
	}
	sorted := make([]operations.Operation, len(ops))
	copy(sorted, ops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SequenceIndex < sorted[j].SequenceIndex
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].SequenceIndex == sorted[i-1].SequenceIndex {
			return nil, fmt.Errorf("%w: duplicate sequence index %d", ErrInvalidOrder, sorted[i].SequenceIndex)
		}
	}
	return &Sequence{ops: sorted}, nil
}

// Operations returns the pipeline in order.
func (s *Sequence) Operations() []operations.Operation {
	return s.ops
}

// Next returns the operation after the given one, or false at the end of
// the pipeline (or for an unknown operation).
func (s *Sequence) Next(operationID string) (operations.Operation, bool) {
	for i, op := range s.ops {
		if op.ID == operationID && i+1 < len(s.ops) {
			return s.ops[i+1], true
		}
	}
	return operations.Operation{}, false
}

// IndexOf returns an operation's position in the pipeline, or -1.
func (s *Sequence) IndexOf(operationID string) int {
	for i, op := range s.ops {
		if op.ID == operationID {
			return i
		}
	}
	return -1
}
