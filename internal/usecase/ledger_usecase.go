package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/ledger"
	"github.com/travel-ledger/internal/pkg/metrics"
	"github.com/travel-ledger/internal/usecase/dto"
)

// LedgerUseCase - производные представления журнала: сводка, карта, паспорт, маршрут.
// Каждое представление считается заново из снимка хранилища.
type LedgerUseCase struct {
	stampRepo  repository.StampRepository
	cacheRepo  repository.CacheRepository
	logger     *zap.Logger
	summaryTTL time.Duration
}

// NewLedgerUseCase создает новый экземпляр LedgerUseCase
func NewLedgerUseCase(
	stampRepo repository.StampRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	summaryTTL time.Duration,
) *LedgerUseCase {
	return &LedgerUseCase{
		stampRepo:  stampRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
		summaryTTL: summaryTTL,
	}
}

// Summary возвращает сводку журнала, используя кеш если он доступен
func (uc *LedgerUseCase) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetSummary(ctx)
		if err != nil {
			uc.logger.Warn("Failed to read summary cache", zap.Error(err))
		}
		if cached != nil {
			metrics.RecordSummaryCache(true)
			return cached, nil
		}
		metrics.RecordSummaryCache(false)
	}

	return uc.Refresh(ctx)
}

// Refresh пересчитывает сводку и перезаписывает кеш
func (uc *LedgerUseCase) Refresh(ctx context.Context) (*domain.LedgerSummary, error) {
	stamps, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	done := metrics.ObserveCompute("summary")
	summary := ledger.Summarize(stamps)
	done()

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetSummary(ctx, &summary, uc.summaryTTL); err != nil {
			uc.logger.Warn("Failed to cache summary", zap.Error(err))
		}
	}

	return &summary, nil
}

// Hubs группирует штампы по городам для карты
func (uc *LedgerUseCase) Hubs(ctx context.Context) (*domain.HubMap, error) {
	stamps, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	defer metrics.ObserveCompute("hubs")()

	hubs := ledger.ClusterByCity(stamps).Hubs()
	bounds, center := ledger.Bounds(hubs)

	return &domain.HubMap{
		Hubs:   hubs,
		Bounds: bounds,
		Center: center,
	}, nil
}

// Passport группирует штампы по странам с учетом фильтров
func (uc *LedgerUseCase) Passport(ctx context.Context, query dto.PassportQuery) (*dto.PassportResponse, error) {
	stamps, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	defer metrics.ObserveCompute("passport")()

	sortOrder := ledger.ParseCountrySort(query.Sort)
	groups := ledger.GroupAndSort(stamps, ledger.GroupOptions{
		SearchText:  query.Search,
		CountrySort: sortOrder,
		Category:    query.Category,
		CityFilters: ledger.ParseCityFilters(query.Cities),
	})

	total := 0
	for _, g := range groups {
		total += len(g.Stamps)
	}

	return &dto.PassportResponse{
		Countries:   groups,
		TotalStamps: total,
		Sort:        string(sortOrder),
	}, nil
}

// Route возвращает хронологический маршрут и пройденное расстояние
func (uc *LedgerUseCase) Route(ctx context.Context) (*dto.RouteResponse, error) {
	stamps, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	defer metrics.ObserveCompute("route")()

	legs := ledger.Legs(stamps)
	if legs == nil {
		legs = []domain.Leg{}
	}

	return &dto.RouteResponse{
		Legs:    legs,
		TotalKm: ledger.TotalTravelKm(stamps),
	}, nil
}

func (uc *LedgerUseCase) snapshot(ctx context.Context) ([]domain.Stamp, error) {
	stamps, err := uc.stampRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}

	metrics.LedgerSnapshotSize.Set(float64(len(stamps)))
	return ledger.EnrichAll(stamps), nil
}
