package domain

import (
	"math"
	"time"
)

// Stamp - одна запись в журнале путешествий (место + город + страна + дата)
type Stamp struct {
	ID         string     `json:"id" db:"id"`
	City       string     `json:"city" db:"city"`
	Country    string     `json:"country" db:"country"`
	CountryRaw string     `json:"country_raw,omitempty" db:"country_raw"`
	Venue      string     `json:"venue" db:"venue"`
	Activity   string     `json:"activity" db:"activity"`
	Category   string     `json:"category" db:"category"`
	Date       string     `json:"date" db:"event_date"`
	CreatedAt  *time.Time `json:"created_at,omitempty" db:"created_at"`
	Lat        *float64   `json:"lat,omitempty" db:"lat"`
	Lng        *float64   `json:"lng,omitempty" db:"lng"`
	Color      string     `json:"color" db:"color"`
	Image      string     `json:"image,omitempty" db:"image"`
	Points     int        `json:"points" db:"points"`
}

// Категории - UI-справочник, на уровне данных не валидируется
const (
	CategoryRave     = "RAVE"
	CategoryArt      = "ART"
	CategoryJazz     = "JAZZ"
	CategoryDining   = "DINING"
	CategoryLounge   = "LOUNGE"
	CategoryCinema   = "CINEMA"
	CategoryFestival = "FESTIVAL"
	CategoryConcert  = "CONCERT"
)

// Categories - фиксированный порядок категорий для статистики
var Categories = []string{
	CategoryRave,
	CategoryArt,
	CategoryJazz,
	CategoryDining,
	CategoryLounge,
	CategoryCinema,
	CategoryFestival,
	CategoryConcert,
}

// GenreColors - цвет категории для разбивки по жанрам
var GenreColors = map[string]string{
	CategoryRave:     "#ff4d4d",
	CategoryArt:      "#bc13fe",
	CategoryJazz:     "#ffb700",
	CategoryDining:   "#00f2ff",
	CategoryLounge:   "#4ade80",
	CategoryCinema:   "#f472b6",
	CategoryFestival: "#ffffff",
	CategoryConcert:  "#3b82f6",
}

// StampPalette - палитра, из которой выбирается цвет штампа при создании
var StampPalette = []string{"#22d3ee", "#818cf8", "#f472b6", "#fbbf24", "#34d399"}

// DateLayout - формат пользовательской даты события
const DateLayout = "2006-01-02"

// HasCoordinates проверяет, что у штампа есть реальная пара координат.
// (0, 0) и NaN считаются отсутствием координат.
func (s *Stamp) HasCoordinates() bool {
	if s.Lat == nil || s.Lng == nil {
		return false
	}
	if math.IsNaN(*s.Lat) || math.IsNaN(*s.Lng) {
		return false
	}
	return !(*s.Lat == 0 && *s.Lng == 0)
}
