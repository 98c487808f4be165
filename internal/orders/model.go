package orders

import (
	"math"
	"time"
)

// Status values an order moves through. PENDING is initial; the other three
// are terminal for a single scheduling run but any order may be re-scheduled.
const (
	StatusPending   = "PENDING"
	StatusScheduled = "SCHEDULED"
	StatusPartial   = "PARTIAL"
	StatusFailed    = "FAILED"
)

// DateFormat is the wire format for calendar days.
const DateFormat = "2006-01-02"

// Order is a request to produce a quantity of goods through the full
// operation pipeline. Status and CompletionDate are written only by the
// scheduling engine.
type Order struct {
	ID                 string
	InternalModel      string
	Quantity           int
	EstimatedYield     *float64
	RequestedStartDate time.Time
	DueDate            *time.Time
	Status             string
	CompletionDate     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PlannedInput returns the quantity the pipeline must actually process.
// With an estimated yield below 100% more units are started than shipped.
func (o Order) PlannedInput() int {
	if o.EstimatedYield == nil || *o.EstimatedYield <= 0 {
		return o.Quantity
	}
	return int(math.Ceil(float64(o.Quantity) / (*o.EstimatedYield / 100.0)))
}
