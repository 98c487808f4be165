package scheduling

import "time"

// DateFormat is the wire format for calendar days.
const DateFormat = "2006-01-02"

// Entry is a committed allocation of some quantity of one order to one
// operation on one date. Entries are immutable once committed; a
// re-schedule replaces an order's full entry set.
type Entry struct {
	ID          string
	OrderID     string
	OperationID string
	Date        time.Time
	Quantity    int
	CreatedAt   time.Time
}

// DayAvailability is one day of an operation's capacity snapshot.
type DayAvailability struct {
	Date       time.Time
	DailyLimit int
	Consumed   int
	Available  int
}
