package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/ledger"
	"github.com/travel-ledger/internal/usecase/dto"
)

// MaintenanceUseCase - разовые операции над хранилищем
type MaintenanceUseCase struct {
	stampRepo  repository.StampRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

// NewMaintenanceUseCase создает новый экземпляр MaintenanceUseCase
func NewMaintenanceUseCase(
	stampRepo repository.StampRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		stampRepo:  stampRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// NormalizeCountries приводит сохранённые страны к каноническому виду.
// При dryRun только возвращает список изменений.
func (uc *MaintenanceUseCase) NormalizeCountries(ctx context.Context, dryRun bool) (*dto.NormalizationReport, error) {
	stamps, err := uc.stampRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stamps: %w", err)
	}

	report := &dto.NormalizationReport{
		Scanned: len(stamps),
		DryRun:  dryRun,
		Changes: make([]dto.CountryChange, 0),
	}
	byCountry := make(map[string][]string)

	for _, s := range stamps {
		raw := s.CountryRaw
		if strings.TrimSpace(raw) == "" {
			raw = s.Country
		}
		canonical := ledger.NormalizeCountry(raw)
		if canonical == s.Country {
			continue
		}

		report.Changes = append(report.Changes, dto.CountryChange{
			StampID: s.ID,
			City:    s.City,
			From:    s.Country,
			To:      canonical,
		})
		byCountry[canonical] = append(byCountry[canonical], s.ID)
	}
	report.Changed = len(report.Changes)

	if dryRun || report.Changed == 0 {
		uc.logger.Info("Country normalization finished",
			zap.Int("scanned", report.Scanned),
			zap.Int("changed", report.Changed),
			zap.Bool("dry_run", dryRun))
		return report, nil
	}

	countries := make([]string, 0, len(byCountry))
	for country := range byCountry {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	for _, country := range countries {
		updated, err := uc.stampRepo.UpdateCountries(ctx, country, byCountry[country])
		if err != nil {
			return nil, fmt.Errorf("failed to update country %s: %w", country, err)
		}
		uc.logger.Debug("Countries updated",
			zap.String("country", country),
			zap.Int64("rows", updated))
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.InvalidateLedger(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate ledger cache", zap.Error(err))
		}
	}

	if uc.streamRepo != nil {
		now := time.Now().UTC()
		for _, change := range report.Changes {
			event := &domain.StampChangedEvent{
				StampID:    change.StampID,
				Action:     domain.StampActionUpdated,
				OccurredAt: now,
			}
			if err := uc.streamRepo.PublishToStream(ctx, domain.StreamStampsChanged, event); err != nil {
				uc.logger.Warn("Failed to publish stamp event",
					zap.String("id", change.StampID),
					zap.Error(err))
			}
		}
	}

	uc.logger.Info("Country normalization finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("changed", report.Changed),
		zap.Bool("dry_run", dryRun))

	return report, nil
}
