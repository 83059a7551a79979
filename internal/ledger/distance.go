package ledger

import (
	"math"
	"sort"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/pkg/utils"
)

// Chronological возвращает копию штампов, отсортированную по возрастанию
// EffectiveTime(PreferCreatedAt). Сортировка стабильная, входной срез не меняется.
func Chronological(stamps []domain.Stamp) []domain.Stamp {
	sorted := make([]domain.Stamp, len(stamps))
	copy(sorted, stamps)

	sort.SliceStable(sorted, func(i, j int) bool {
		return EffectiveTime(sorted[i], PreferCreatedAt) < EffectiveTime(sorted[j], PreferCreatedAt)
	})

	return sorted
}

// Legs возвращает отрезки маршрута между последовательными штампами.
// Пара, в которой у любого из штампов нет широты или долготы, пропускается.
func Legs(stamps []domain.Stamp) []domain.Leg {
	if len(stamps) < 2 {
		return nil
	}

	sorted := Chronological(stamps)
	legs := make([]domain.Leg, 0, len(sorted)-1)

	for i := 0; i < len(sorted)-1; i++ {
		start, end := sorted[i], sorted[i+1]
		if !hasLegCoordinates(start) || !hasLegCoordinates(end) {
			continue
		}

		km := utils.HaversineDistance(*start.Lat, *start.Lng, *end.Lat, *end.Lng)
		legs = append(legs, domain.Leg{
			FromID: start.ID,
			ToID:   end.ID,
			From:   domain.Point{Lat: *start.Lat, Lng: *start.Lng},
			To:     domain.Point{Lat: *end.Lat, Lng: *end.Lng},
			Km:     km,
		})
	}

	return legs
}

// TotalTravelKm - суммарное расстояние по маршруту, округлённое до километра
func TotalTravelKm(stamps []domain.Stamp) int {
	var total float64
	for _, leg := range Legs(stamps) {
		total += leg.Km
	}
	return int(math.Round(total))
}

// hasLegCoordinates: и широта, и долгота заданы и не равны нулю
func hasLegCoordinates(s domain.Stamp) bool {
	return nonZero(s.Lat) && nonZero(s.Lng)
}

func nonZero(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v)
}
