package domain

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// HubMap - данные для отрисовки карты: хабы и прямоугольник, охватывающий их все
type HubMap struct {
	Hubs   []CityHub    `json:"hubs"`
	Bounds *BoundingBox `json:"bounds,omitempty"`
	Center *Point       `json:"center,omitempty"`
}

// LocationSuggestion - подсказка города и страны по координатам
type LocationSuggestion struct {
	City    string `json:"city"`
	Country string `json:"country"`
}
