package capacities

import "time"

// DateFormat is the wire format for calendar days.
const DateFormat = "2006-01-02"

// Capacity is one operation's processing budget for one calendar day.
// consumed is written only by the scheduling engine and never exceeds
// the daily limit.
type Capacity struct {
	ID          string
	OperationID string
	Date        time.Time
	DailyLimit  int
	Consumed    int
}

// Available returns the free units remaining on this day.
func (c Capacity) Available() int {
	free := c.DailyLimit - c.Consumed
	if free < 0 {
		return 0
	}
	return free
}

// Day normalizes a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
