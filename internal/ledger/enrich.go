// Package ledger - чистые функции агрегации журнала путешествий: нормализация
// стран, координаты, расстояние, кластеры городов, уровни и паспорт по странам.
//
// Функции не делают I/O, не хранят состояние и не возвращают ошибок:
// некорректные данные дают пустые коллекции и нулевые метрики.
package ledger

import (
	"strings"

	"github.com/travel-ledger/internal/domain"
)

// Enrich возвращает копию штампа в каноническом виде: город и площадка в
// верхнем регистре, страна нормализована (исходное значение остаётся в
// CountryRaw), отсутствующие координаты заполнены из справочника городов.
func Enrich(s domain.Stamp) domain.Stamp {
	out := s

	out.City = CityKey(s.City)
	out.Venue = strings.ToUpper(strings.TrimSpace(s.Venue))

	raw := s.CountryRaw
	if strings.TrimSpace(raw) == "" {
		raw = s.Country
	}
	out.CountryRaw = raw
	out.Country = NormalizeCountry(raw)

	if s.HasCoordinates() {
		lat, lng := *s.Lat, *s.Lng
		out.Lat, out.Lng = &lat, &lng
	} else if pair, ok := FallbackFor(s.City); ok {
		lng, lat := pair[0], pair[1]
		out.Lat, out.Lng = &lat, &lng
	} else {
		out.Lat, out.Lng = nil, nil
	}

	if s.CreatedAt != nil {
		created := *s.CreatedAt
		out.CreatedAt = &created
	}

	return out
}

// EnrichAll применяет Enrich к каждому штампу, не меняя входной срез
func EnrichAll(stamps []domain.Stamp) []domain.Stamp {
	out := make([]domain.Stamp, len(stamps))
	for i, s := range stamps {
		out[i] = Enrich(s)
	}
	return out
}
