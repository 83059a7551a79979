package geocoder

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/travel-ledger/internal/config"
	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/pkg/errors"
	"github.com/travel-ledger/internal/pkg/metrics"
)

// ErrNoMatch - сервис ответил, но совпадений нет
var ErrNoMatch = stderrors.New("geocoder: no match")

// Ответ reverse-сервиса (BigDataCloud)
type reverseResponse struct {
	City        string `json:"city"`
	Locality    string `json:"locality"`
	CountryName string `json:"countryName"`
}

// Элемент ответа search-сервиса (Nominatim): координаты приходят строками
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	limiter    *rate.Limiter
	reverseURL string
	searchURL  string
	userAgent  string
	logger     *zap.Logger
}

// NewClient создает клиент геокодирования: повторы через retryablehttp,
// ограничение частоты запросов и circuit breaker поверх всего
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = &leveledLogger{log: logger.Sugar()}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.GeocoderCircuitState.Set(float64(to))
			logger.Warn("Geocoder circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &client{
		httpClient: retryClient.StandardClient(),
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		reverseURL: cfg.ReverseURL,
		searchURL:  cfg.SearchURL,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
}

// Reverse возвращает город и страну по координатам
func (c *client) Reverse(ctx context.Context, lat, lng float64) (*domain.LocationSuggestion, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("localityLanguage", "en")

	body, err := c.get(ctx, "reverse", c.reverseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp reverseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to decode reverse geocode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	city := resp.City
	if city == "" {
		city = resp.Locality
	}
	if city == "" && resp.CountryName == "" {
		return nil, ErrNoMatch
	}

	return &domain.LocationSuggestion{
		City:    strings.ToUpper(strings.TrimSpace(city)),
		Country: strings.TrimSpace(resp.CountryName),
	}, nil
}

// Search возвращает координаты первого совпадения для "город, страна"
func (c *client) Search(ctx context.Context, city, country string) (*domain.Point, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", city+", "+country)
	params.Set("limit", "1")

	body, err := c.get(ctx, "search", c.searchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		c.logger.Error("Failed to decode search response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return nil, fmt.Errorf("invalid coordinates in response: %q, %q", results[0].Lat, results[0].Lon)
	}

	return &domain.Point{Lat: lat, Lng: lng}, nil
}

// get выполняет GET через limiter и circuit breaker
func (c *client) get(ctx context.Context, operation, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordGeocoderRequest(operation, "rate_limited")
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, rawURL)
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordGeocoderRequest(operation, "circuit_open")
			return nil, fmt.Errorf("%s: %w", err.Error(), errors.ErrGeocoderUnavailable)
		}
		metrics.RecordGeocoderRequest(operation, "error")
		return nil, err
	}

	metrics.RecordGeocoderRequest(operation, "ok")
	return body, nil
}

func (c *client) do(ctx context.Context, rawURL string) ([]byte, error) {
	c.logger.Debug("Calling geocoder", zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Geocoder returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("geocoder error: status %d", resp.StatusCode)
	}

	return body, nil
}

// leveledLogger направляет логи retryablehttp в zap
type leveledLogger struct {
	log *zap.SugaredLogger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warnw(msg, keysAndValues...)
}
