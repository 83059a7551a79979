package domain

// CityHub - кластер штампов одного города для карты.
// Строится заново на каждом проходе, не сохраняется.
type CityHub struct {
	Key        string  `json:"key"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Color      string  `json:"color"`
	Geohash    string  `json:"geohash"`
	Items      []Stamp `json:"items"`
	CoverImage string  `json:"cover_image,omitempty"`
	GlowRadius int     `json:"glow_radius"`
	BadgeLabel string  `json:"badge_label"`
}

// Rank - уровень пользователя по количеству штампов
type Rank struct {
	Name       string `json:"name"`
	Level      string `json:"level"`
	ColorToken string `json:"color_token"`
	Title      string `json:"title"`
	Numeral    string `json:"numeral"`
	MinStamps  int    `json:"min_stamps"`
}

// RankProgress - следующий уровень и сколько штампов до него осталось
type RankProgress struct {
	Current   Rank  `json:"current"`
	Next      *Rank `json:"next,omitempty"`
	Remaining int   `json:"remaining"`
}

// Leg - отрезок маршрута между двумя последовательными штампами
type Leg struct {
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	From   Point   `json:"from"`
	To     Point   `json:"to"`
	Km     float64 `json:"km"`
}

// CountryGroup - штампы одной страны для паспорта
type CountryGroup struct {
	Country string   `json:"country"`
	Cities  []string `json:"cities"`
	Total   int      `json:"total"`
	Stamps  []Stamp  `json:"stamps"`
}

// CategoryStat - доля категории среди всех штампов
type CategoryStat struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// LedgerSummary - агрегированная статистика журнала
type LedgerSummary struct {
	TotalStamps     int            `json:"total_stamps"`
	UniqueCities    int            `json:"unique_cities"`
	UniqueCountries int            `json:"unique_countries"`
	TotalKm         int            `json:"total_km"`
	Rank            RankProgress   `json:"rank"`
	Categories      []CategoryStat `json:"categories"`
	Latest          *Stamp         `json:"latest,omitempty"`
	ShareText       string         `json:"share_text"`
}
