package ledger

import (
	"strings"

	"github.com/travel-ledger/internal/domain"
)

// cityFallbacks - запасные координаты города в порядке [lng, lat]
var cityFallbacks = map[string][2]float64{
	"AMSTERDAM": {4.9041, 52.3676},
	"BELGRADE":  {20.4489, 44.7866},
	"SKOPJE":    {21.4254, 41.9981},
	"PRISTINA":  {21.1655, 42.6629},
	"BERLIN":    {13.4050, 52.5200},
	"PARIS":     {2.3522, 48.8566},
	"LONDON":    {-0.1276, 51.5072},
	"ISTANBUL":  {28.9784, 41.0082},
}

// Sentinel - пара (0, 0), означающая "местоположение неизвестно"
var Sentinel = [2]float64{0, 0}

// CityKey - ключ города для группировки и поиска по справочнику
func CityKey(city string) string {
	return strings.ToUpper(strings.TrimSpace(city))
}

// ResolveCoordinates возвращает координаты штампа в порядке [lng, lat].
// Сначала собственные координаты штампа, затем справочник городов,
// иначе Sentinel.
func ResolveCoordinates(s domain.Stamp) [2]float64 {
	if s.HasCoordinates() {
		return [2]float64{*s.Lng, *s.Lat}
	}

	if fallback, ok := cityFallbacks[CityKey(s.City)]; ok {
		return fallback
	}

	return Sentinel
}

// IsSentinel проверяет, что пара координат означает отсутствие местоположения
func IsSentinel(pair [2]float64) bool {
	return pair == Sentinel
}

// FallbackFor возвращает запасные координаты города, если они известны
func FallbackFor(city string) ([2]float64, bool) {
	pair, ok := cityFallbacks[CityKey(city)]
	return pair, ok
}
