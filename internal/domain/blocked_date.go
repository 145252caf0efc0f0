package domain

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// BlockedDate removes availability for a resource on a specific date,
// either for the whole day or for a [StartTime, EndTime) range
type BlockedDate struct {
	ID         int64
	ResourceID int64
	Date       time.Time
	AllDay     bool
	StartTime  types.TimeString // set only when AllDay == false
	EndTime    types.TimeString // set only when AllDay == false
	Reason     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo returns true if the block falls on the given date
func (b *BlockedDate) AppliesTo(date time.Time) bool {
	y1, m1, d1 := b.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
