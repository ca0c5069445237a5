package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNegativeDelta is returned when a negative delta is added to an
// accumulator.
var ErrNegativeDelta = errors.New("accumulator delta cannot be negative")

// DailyAccumulator is the approved-transaction total for one account on one
// UTC calendar day. Rows are created lazily by the first approved
// transaction of the day and never deleted; a new day simply has no row
// until its first write. Identity is (AccountID, Day).
type DailyAccumulator struct {
	AccountID   uuid.UUID
	Day         time.Time // UTC midnight
	Accumulated Amount
}

// NewDailyAccumulator builds an accumulator for the UTC day containing day.
func NewDailyAccumulator(accountID uuid.UUID, day time.Time, initial Amount) *DailyAccumulator {
	return &DailyAccumulator{AccountID: accountID, Day: DayOf(day), Accumulated: initial}
}

// AddAmount increases the accumulated total by delta.
func (a *DailyAccumulator) AddAmount(delta decimal.Decimal) error {
	if delta.IsNegative() {
		return ErrNegativeDelta
	}
	added, err := NewAmount(delta)
	if err != nil {
		return err
	}
	a.Accumulated = a.Accumulated.Add(added)
	return nil
}

// DayOf truncates t to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
