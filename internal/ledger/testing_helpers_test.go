package ledger

import (
	"time"

	"github.com/travel-ledger/internal/domain"
)

func floatPtr(v float64) *float64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func stampAt(id, city string, lat, lng float64, created time.Time) domain.Stamp {
	return domain.Stamp{
		ID:        id,
		City:      city,
		Lat:       floatPtr(lat),
		Lng:       floatPtr(lng),
		CreatedAt: timePtr(created),
	}
}
