package usecase

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/ledger"
	"github.com/travel-ledger/internal/pkg/errors"
	"github.com/travel-ledger/internal/pkg/metrics"
	"github.com/travel-ledger/internal/pkg/utils"
	"github.com/travel-ledger/internal/pkg/validator"
	"github.com/travel-ledger/internal/usecase/dto"
)

const (
	minStampPoints = 10
	maxStampPoints = 50

	geocodeTimeout = 4 * time.Second
)

// StampUseCase - жизненный цикл штампа: нормализация при записи,
// инвалидация производных представлений и событие в стрим
type StampUseCase struct {
	stampRepo  repository.StampRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	geocoder   repository.GeocoderRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewStampUseCase создает новый экземпляр StampUseCase.
// geocoder и streamRepo могут быть nil: тогда геокодирование и события отключены.
func NewStampUseCase(
	stampRepo repository.StampRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	geocoder repository.GeocoderRepository,
	logger *zap.Logger,
) *StampUseCase {
	return &StampUseCase{
		stampRepo:  stampRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		geocoder:   geocoder,
		logger:     logger,
		now:        time.Now,
	}
}

// Create сохраняет новый штамп
func (uc *StampUseCase) Create(ctx context.Context, req *dto.CreateStampRequest) (*domain.Stamp, error) {
	if err := validator.Validate(req); err != nil {
		return nil, validator.ToAppError(err)
	}

	stamp := &domain.Stamp{
		City:       ledger.CityKey(req.City),
		CountryRaw: strings.TrimSpace(req.Country),
		Venue:      strings.ToUpper(strings.TrimSpace(req.Venue)),
		Activity:   strings.TrimSpace(req.Activity),
		Category:   strings.ToUpper(strings.TrimSpace(req.Category)),
		Date:       strings.TrimSpace(req.Date),
		Image:      req.Image,
		Color:      domain.StampPalette[rand.IntN(len(domain.StampPalette))],
		Points:     minStampPoints + rand.IntN(maxStampPoints-minStampPoints+1),
	}
	stamp.Country = ledger.NormalizeCountry(stamp.CountryRaw)
	if stamp.Date == "" {
		stamp.Date = uc.now().Format(domain.DateLayout)
	}

	stamp.Lat, stamp.Lng = uc.resolveCoordinates(ctx, stamp.City, stamp.CountryRaw, req.Lat, req.Lng)

	if err := uc.stampRepo.Create(ctx, stamp); err != nil {
		return nil, err
	}

	uc.logger.Info("Stamp created",
		zap.String("id", stamp.ID),
		zap.String("city", stamp.City),
		zap.String("country", stamp.Country))

	uc.afterWrite(ctx, stamp.ID, domain.StampActionCreated)
	return stamp, nil
}

// Update перезаписывает редактируемые поля штампа
func (uc *StampUseCase) Update(ctx context.Context, id string, req *dto.UpdateStampRequest) (*domain.Stamp, error) {
	if err := validator.Validate(req); err != nil {
		return nil, validator.ToAppError(err)
	}

	stamp, err := uc.stampRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	city := ledger.CityKey(req.City)
	countryRaw := strings.TrimSpace(req.Country)
	locationChanged := city != ledger.CityKey(stamp.City) ||
		ledger.NormalizeCountry(countryRaw) != stamp.Country

	stamp.City = city
	stamp.CountryRaw = countryRaw
	stamp.Country = ledger.NormalizeCountry(countryRaw)
	stamp.Venue = strings.ToUpper(strings.TrimSpace(req.Venue))
	stamp.Activity = strings.TrimSpace(req.Activity)
	stamp.Category = strings.ToUpper(strings.TrimSpace(req.Category))
	if date := strings.TrimSpace(req.Date); date != "" {
		stamp.Date = date
	}
	if req.Image != nil {
		stamp.Image = *req.Image
	}

	switch {
	case hasRealPair(req.Lat, req.Lng):
		stamp.Lat, stamp.Lng = copyFloat(req.Lat), copyFloat(req.Lng)
	case locationChanged:
		stamp.Lat, stamp.Lng = uc.resolveCoordinates(ctx, stamp.City, stamp.CountryRaw, nil, nil)
	}

	if err := uc.stampRepo.Update(ctx, stamp); err != nil {
		return nil, err
	}

	uc.logger.Info("Stamp updated", zap.String("id", stamp.ID))
	uc.afterWrite(ctx, stamp.ID, domain.StampActionUpdated)
	return stamp, nil
}

// Delete удаляет штамп
func (uc *StampUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.stampRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Stamp deleted", zap.String("id", id))
	uc.afterWrite(ctx, id, domain.StampActionDeleted)
	return nil
}

// RedactImage убирает изображение штампа, остальные поля не меняются
func (uc *StampUseCase) RedactImage(ctx context.Context, id string) error {
	if err := uc.stampRepo.ClearImage(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Stamp image redacted", zap.String("id", id))
	uc.afterWrite(ctx, id, domain.StampActionRedacted)
	return nil
}

// Get возвращает штамп по ID
func (uc *StampUseCase) Get(ctx context.Context, id string) (*domain.Stamp, error) {
	return uc.stampRepo.GetByID(ctx, id)
}

// List возвращает все штампы, новые первыми
func (uc *StampUseCase) List(ctx context.Context) (*dto.StampListResponse, error) {
	stamps, err := uc.stampRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StampListResponse{Stamps: stamps, Total: len(stamps)}, nil
}

// SuggestLocation подсказывает город и страну по координатам.
// Ошибки сервиса геокодирования не возвращаются: результат просто пустой.
func (uc *StampUseCase) SuggestLocation(ctx context.Context, lat, lng float64) (*domain.LocationSuggestion, error) {
	if !utils.ValidateCoordinates(lat, lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	empty := &domain.LocationSuggestion{}
	if uc.geocoder == nil {
		return empty, nil
	}

	gctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	suggestion, err := uc.geocoder.Reverse(gctx, lat, lng)
	if err != nil {
		uc.logger.Warn("Reverse geocoding failed",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err))
		return empty, nil
	}

	return &domain.LocationSuggestion{
		City:    ledger.CityKey(suggestion.City),
		Country: ledger.NormalizeCountry(suggestion.Country),
	}, nil
}

// resolveCoordinates: координаты запроса, затем геокодер, затем справочник городов.
// Если ничего не нашлось, координаты остаются пустыми.
func (uc *StampUseCase) resolveCoordinates(
	ctx context.Context,
	city, country string,
	lat, lng *float64,
) (*float64, *float64) {
	if hasRealPair(lat, lng) {
		return copyFloat(lat), copyFloat(lng)
	}

	if uc.geocoder != nil {
		gctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
		point, err := uc.geocoder.Search(gctx, city, country)
		cancel()
		if err == nil && point != nil && !(point.Lat == 0 && point.Lng == 0) {
			return &point.Lat, &point.Lng
		}
		if err != nil {
			uc.logger.Debug("Geocoding suppressed",
				zap.String("city", city),
				zap.Error(err))
		}
	}

	if pair, ok := ledger.FallbackFor(city); ok {
		lng, lat := pair[0], pair[1]
		return &lat, &lng
	}

	return nil, nil
}

// afterWrite инвалидирует кеш и публикует событие; ошибки только логируются
func (uc *StampUseCase) afterWrite(ctx context.Context, id, action string) {
	metrics.RecordStampWrite(action)

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.InvalidateLedger(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate ledger cache", zap.String("id", id), zap.Error(err))
		}
	}

	if uc.streamRepo == nil {
		return
	}

	event := &domain.StampChangedEvent{
		StampID:    id,
		Action:     action,
		OccurredAt: uc.now().UTC(),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamStampsChanged, event); err != nil {
		uc.logger.Warn("Failed to publish stamp event",
			zap.String("id", id),
			zap.String("action", action),
			zap.Error(err))
	}
}

func hasRealPair(lat, lng *float64) bool {
	s := domain.Stamp{Lat: lat, Lng: lng}
	return s.HasCoordinates()
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
