package ledger

import (
	"fmt"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"

	"github.com/travel-ledger/internal/domain"
)

const (
	baseGlowRadius   = 15
	glowPerStamp     = 5
	maxGlowRadius    = 40
	geohashPrecision = 6
)

// HubIndex - хабы городов в порядке первого появления ключа
type HubIndex struct {
	keys []string
	hubs map[string]*domain.CityHub
}

// Len возвращает количество хабов
func (h *HubIndex) Len() int {
	return len(h.keys)
}

// Keys возвращает ключи городов в порядке первого появления
func (h *HubIndex) Keys() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Get возвращает хаб по ключу города
func (h *HubIndex) Get(key string) (domain.CityHub, bool) {
	hub, ok := h.hubs[key]
	if !ok {
		return domain.CityHub{}, false
	}
	return *hub, true
}

// Hubs возвращает все хабы в порядке первого появления
func (h *HubIndex) Hubs() []domain.CityHub {
	out := make([]domain.CityHub, 0, len(h.keys))
	for _, k := range h.keys {
		out = append(out, *h.hubs[k])
	}
	return out
}

// ClusterByCity группирует штампы по городу.
//
// Первый штамп города задаёт страну, координаты и цвет хаба; последующие
// штампы только добавляются в Items. Штампы без координат (Sentinel после
// ResolveCoordinates) в кластеры не попадают.
func ClusterByCity(stamps []domain.Stamp) *HubIndex {
	index := &HubIndex{
		keys: make([]string, 0),
		hubs: make(map[string]*domain.CityHub),
	}

	for _, s := range stamps {
		pair := ResolveCoordinates(s)
		if IsSentinel(pair) {
			continue
		}

		key := CityKey(s.City)
		hub, ok := index.hubs[key]
		if !ok {
			lng, lat := pair[0], pair[1]
			hub = &domain.CityHub{
				Key:     key,
				City:    s.City,
				Country: s.Country,
				Lat:     lat,
				Lng:     lng,
				Color:   s.Color,
				Geohash: geohash.EncodeWithPrecision(lat, lng, geohashPrecision),
			}
			index.hubs[key] = hub
			index.keys = append(index.keys, key)
		}

		hub.Items = append(hub.Items, s)
		hub.CoverImage = hub.Items[0].Image
		hub.GlowRadius = GlowRadius(len(hub.Items))
		hub.BadgeLabel = fmt.Sprintf("%02d", len(hub.Items))
	}

	return index
}

// GlowRadius - визуальный вес хаба, растёт с количеством штампов до предела
func GlowRadius(count int) int {
	if count < 0 {
		count = 0
	}
	return min(baseGlowRadius+count*glowPerStamp, maxGlowRadius)
}

// Bounds возвращает прямоугольник, охватывающий все хабы, и его центр.
// Если прямоугольник пересекает антимеридиан, MinLng больше MaxLng.
func Bounds(hubs []domain.CityHub) (*domain.BoundingBox, *domain.Point) {
	rect := s2.EmptyRect()
	for _, hub := range hubs {
		rect = rect.AddPoint(s2.LatLngFromDegrees(hub.Lat, hub.Lng))
	}

	if rect.IsEmpty() {
		return nil, nil
	}

	lo, hi, center := rect.Lo(), rect.Hi(), rect.Center()
	return &domain.BoundingBox{
			MinLat: lo.Lat.Degrees(),
			MinLng: lo.Lng.Degrees(),
			MaxLat: hi.Lat.Degrees(),
			MaxLng: hi.Lng.Degrees(),
		}, &domain.Point{
			Lat: center.Lat.Degrees(),
			Lng: center.Lng.Degrees(),
		}
}
