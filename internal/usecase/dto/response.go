package dto

import "github.com/travel-ledger/internal/domain"

// PassportResponse - штампы, сгруппированные по странам
type PassportResponse struct {
	Countries   []domain.CountryGroup `json:"countries"`
	TotalStamps int                   `json:"total_stamps"`
	Sort        string                `json:"sort"`
}

// RouteResponse - маршрут в порядке создания записей
type RouteResponse struct {
	Legs    []domain.Leg `json:"legs"`
	TotalKm int          `json:"total_km"`
}

// StampListResponse - все штампы, новые первыми
type StampListResponse struct {
	Stamps []domain.Stamp `json:"stamps"`
	Total  int            `json:"total"`
}

// CountryChange - штамп, у которого изменится каноническая страна
type CountryChange struct {
	StampID string `json:"stamp_id"`
	City    string `json:"city"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// NormalizationReport - результат повторной нормализации стран
type NormalizationReport struct {
	Scanned int             `json:"scanned"`
	Changed int             `json:"changed"`
	DryRun  bool            `json:"dry_run"`
	Changes []CountryChange `json:"changes"`
}
