package repository

import (
	"context"

	"github.com/travel-ledger/internal/domain"
)

// GeocoderRepository - внешний сервис геокодирования.
// Работает по принципу best effort: вызывающий код не должен блокироваться на его ошибках.
type GeocoderRepository interface {
	// Reverse возвращает город и страну по координатам
	Reverse(ctx context.Context, lat, lng float64) (*domain.LocationSuggestion, error)

	// Search возвращает координаты города
	Search(ctx context.Context, city, country string) (*domain.Point, error)
}
