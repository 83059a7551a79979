package repository

import (
	"context"

	"github.com/travel-ledger/internal/domain"
)

// StampRepository - хранилище штампов
type StampRepository interface {
	// Create сохраняет новый штамп; ID и CreatedAt назначаются хранилищем
	Create(ctx context.Context, stamp *domain.Stamp) error

	// Update перезаписывает редактируемые поля штампа
	Update(ctx context.Context, stamp *domain.Stamp) error

	// Delete удаляет штамп
	Delete(ctx context.Context, id string) error

	// ClearImage убирает изображение штампа
	ClearImage(ctx context.Context, id string) error

	// GetByID возвращает штамп по ID
	GetByID(ctx context.Context, id string) (*domain.Stamp, error)

	// List возвращает все штампы, новые первыми
	List(ctx context.Context) ([]domain.Stamp, error)

	// UpdateCountries записывает каноническую страну для набора штампов
	UpdateCountries(ctx context.Context, country string, ids []string) (int64, error)
}
