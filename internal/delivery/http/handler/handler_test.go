package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/delivery/http/handler"
	"github.com/travel-ledger/internal/domain"
	apperrors "github.com/travel-ledger/internal/pkg/errors"
	"github.com/travel-ledger/internal/usecase/dto"
)

type MockStampService struct {
	mock.Mock
}

func (m *MockStampService) Create(ctx context.Context, req *dto.CreateStampRequest) (*domain.Stamp, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stamp), args.Error(1)
}

func (m *MockStampService) Update(ctx context.Context, id string, req *dto.UpdateStampRequest) (*domain.Stamp, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stamp), args.Error(1)
}

func (m *MockStampService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStampService) RedactImage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStampService) Get(ctx context.Context, id string) (*domain.Stamp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stamp), args.Error(1)
}

func (m *MockStampService) List(ctx context.Context) (*dto.StampListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StampListResponse), args.Error(1)
}

func (m *MockStampService) SuggestLocation(ctx context.Context, lat, lng float64) (*domain.LocationSuggestion, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationSuggestion), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockLedgerService) Hubs(ctx context.Context) (*domain.HubMap, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HubMap), args.Error(1)
}

func (m *MockLedgerService) Passport(ctx context.Context, query dto.PassportQuery) (*dto.PassportResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PassportResponse), args.Error(1)
}

func (m *MockLedgerService) Route(ctx context.Context) (*dto.RouteResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RouteResponse), args.Error(1)
}

func newTestApp(stamps *MockStampService, ledger *MockLedgerService) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	logger := zap.NewNop()

	stampHandler := handler.NewStampHandler(stamps, logger)
	geocodeHandler := handler.NewGeocodeHandler(stamps, logger)
	ledgerHandler := handler.NewLedgerHandler(ledger, logger)

	api := app.Group("/api/v1")
	api.Get("/stamps", stampHandler.List)
	api.Post("/stamps", stampHandler.Create)
	api.Get("/stamps/:id", stampHandler.Get)
	api.Put("/stamps/:id", stampHandler.Update)
	api.Delete("/stamps/:id", stampHandler.Delete)
	api.Delete("/stamps/:id/image", stampHandler.RedactImage)
	api.Post("/geocode/reverse", geocodeHandler.Reverse)
	api.Get("/ledger/summary", ledgerHandler.Summary)
	api.Get("/ledger/hubs", ledgerHandler.Hubs)
	api.Get("/ledger/passport", ledgerHandler.Passport)
	api.Get("/ledger/route", ledgerHandler.Route)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp.StatusCode, payload
}

func errorCode(payload map[string]interface{}) string {
	e, ok := payload["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

func TestStampHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stamps := &MockStampService{}
		stamps.On("Create", mock.Anything, mock.MatchedBy(func(req *dto.CreateStampRequest) bool {
			return req.City == "berlin" && req.Lat != nil && *req.Lat == 52.52
		})).Return(&domain.Stamp{ID: "s-1", City: "BERLIN"}, nil).Once()

		app := newTestApp(stamps, &MockLedgerService{})
		status, payload := doRequest(t, app, "POST", "/api/v1/stamps", `{"city":"berlin","lat":52.52,"lng":13.405}`)

		assert.Equal(t, fiber.StatusCreated, status)
		data := payload["data"].(map[string]interface{})
		assert.Equal(t, "s-1", data["id"])
		stamps.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newTestApp(&MockStampService{}, &MockLedgerService{})
		status, payload := doRequest(t, app, "POST", "/api/v1/stamps", `{"city":`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REQUEST", errorCode(payload))
	})

	t.Run("validation error", func(t *testing.T) {
		stamps := &MockStampService{}
		stamps.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"fields": map[string]string{"city": "notblank"}})).Once()

		app := newTestApp(stamps, &MockLedgerService{})
		status, payload := doRequest(t, app, "POST", "/api/v1/stamps", `{"city":"  "}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REQUEST", errorCode(payload))
	})
}

func TestStampHandler_NotFound(t *testing.T) {
	stamps := &MockStampService{}
	stamps.On("Get", mock.Anything, "missing").Return(nil, apperrors.ErrStampNotFound).Once()
	stamps.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, apperrors.ErrStampNotFound).Once()
	stamps.On("Delete", mock.Anything, "missing").Return(apperrors.ErrStampNotFound).Once()
	stamps.On("RedactImage", mock.Anything, "missing").Return(apperrors.ErrStampNotFound).Once()

	app := newTestApp(stamps, &MockLedgerService{})

	for _, tc := range []struct {
		method string
		target string
		body   string
	}{
		{"GET", "/api/v1/stamps/missing", ""},
		{"PUT", "/api/v1/stamps/missing", `{"city":"paris"}`},
		{"DELETE", "/api/v1/stamps/missing", ""},
		{"DELETE", "/api/v1/stamps/missing/image", ""},
	} {
		status, payload := doRequest(t, app, tc.method, tc.target, tc.body)
		assert.Equal(t, fiber.StatusNotFound, status, "%s %s", tc.method, tc.target)
		assert.Equal(t, "STAMP_NOT_FOUND", errorCode(payload))
	}
	stamps.AssertExpectations(t)
}

func TestStampHandler_DeleteAndRedact(t *testing.T) {
	stamps := &MockStampService{}
	stamps.On("Delete", mock.Anything, "s-1").Return(nil).Once()
	stamps.On("RedactImage", mock.Anything, "s-1").Return(nil).Once()

	app := newTestApp(stamps, &MockLedgerService{})

	status, _ := doRequest(t, app, "DELETE", "/api/v1/stamps/s-1", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = doRequest(t, app, "DELETE", "/api/v1/stamps/s-1/image", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	stamps.AssertExpectations(t)
}

func TestStampHandler_List(t *testing.T) {
	stamps := &MockStampService{}
	stamps.On("List", mock.Anything).Return(&dto.StampListResponse{
		Stamps: []domain.Stamp{{ID: "a"}, {ID: "b"}},
		Total:  2,
	}, nil).Once()

	app := newTestApp(stamps, &MockLedgerService{})
	status, payload := doRequest(t, app, "GET", "/api/v1/stamps", "")

	assert.Equal(t, fiber.StatusOK, status)
	meta := payload["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total"])
}

func TestStampHandler_InternalError(t *testing.T) {
	stamps := &MockStampService{}
	stamps.On("List", mock.Anything).Return(nil, errors.New("boom")).Once()

	app := newTestApp(stamps, &MockLedgerService{})
	status, payload := doRequest(t, app, "GET", "/api/v1/stamps", "")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(payload))
}

func TestGeocodeHandler_Reverse(t *testing.T) {
	t.Run("suggestion", func(t *testing.T) {
		stamps := &MockStampService{}
		stamps.On("SuggestLocation", mock.Anything, 41.99, 21.43).
			Return(&domain.LocationSuggestion{City: "SKOPJE", Country: "MACEDONIA"}, nil).Once()

		app := newTestApp(stamps, &MockLedgerService{})
		status, payload := doRequest(t, app, "POST", "/api/v1/geocode/reverse", `{"lat":41.99,"lng":21.43}`)

		assert.Equal(t, fiber.StatusOK, status)
		data := payload["data"].(map[string]interface{})
		assert.Equal(t, "SKOPJE", data["city"])
	})

	t.Run("missing coordinates", func(t *testing.T) {
		app := newTestApp(&MockStampService{}, &MockLedgerService{})
		status, payload := doRequest(t, app, "POST", "/api/v1/geocode/reverse", `{"lat":41.99}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REQUEST", errorCode(payload))
	})

	t.Run("out of range", func(t *testing.T) {
		app := newTestApp(&MockStampService{}, &MockLedgerService{})
		status, _ := doRequest(t, app, "POST", "/api/v1/geocode/reverse", `{"lat":95,"lng":0}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestLedgerHandler_Passport(t *testing.T) {
	ledger := &MockLedgerService{}
	expected := dto.PassportQuery{
		Search:   "ber",
		Sort:     "RECENT",
		Category: "RAVE",
		Cities:   []string{"GERMANY:BERLIN", "FRANCE:PARIS"},
	}
	ledger.On("Passport", mock.Anything, expected).Return(&dto.PassportResponse{
		Countries:   []domain.CountryGroup{{Country: "GERMANY", Total: 1}},
		TotalStamps: 1,
		Sort:        "RECENT",
	}, nil).Once()

	app := newTestApp(&MockStampService{}, ledger)
	status, payload := doRequest(t, app, "GET",
		"/api/v1/ledger/passport?q=ber&sort=RECENT&category=RAVE&city=GERMANY:BERLIN&city=FRANCE:PARIS", "")

	assert.Equal(t, fiber.StatusOK, status)
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "RECENT", data["sort"])
	ledger.AssertExpectations(t)
}

func TestLedgerHandler_Views(t *testing.T) {
	ledger := &MockLedgerService{}
	ledger.On("Summary", mock.Anything).Return(&domain.LedgerSummary{TotalStamps: 3, ShareText: "NOCTURNE"}, nil).Once()
	ledger.On("Hubs", mock.Anything).Return(&domain.HubMap{Hubs: []domain.CityHub{{Key: "BERLIN"}}}, nil).Once()
	ledger.On("Route", mock.Anything).Return(&dto.RouteResponse{Legs: []domain.Leg{}, TotalKm: 0}, nil).Once()

	app := newTestApp(&MockStampService{}, ledger)

	status, payload := doRequest(t, app, "GET", "/api/v1/ledger/summary", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(3), payload["data"].(map[string]interface{})["total_stamps"])

	status, payload = doRequest(t, app, "GET", "/api/v1/ledger/hubs", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), payload["meta"].(map[string]interface{})["total"])

	status, _ = doRequest(t, app, "GET", "/api/v1/ledger/route", "")
	assert.Equal(t, fiber.StatusOK, status)

	ledger.AssertExpectations(t)
}

func TestLedgerHandler_SummaryError(t *testing.T) {
	ledger := &MockLedgerService{}
	ledger.On("Summary", mock.Anything).Return(nil, apperrors.ErrDatabaseError).Once()

	app := newTestApp(&MockStampService{}, ledger)
	status, payload := doRequest(t, app, "GET", "/api/v1/ledger/summary", "")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "DATABASE_ERROR", errorCode(payload))
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": func(ctx context.Context) error { return nil },
		}, zap.NewNop())
		app := fiber.New()
		app.Get("/health", h.Health)

		status, payload := doRequest(t, app, "GET", "/health", "")

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "healthy", payload["status"])
	})

	t.Run("degraded", func(t *testing.T) {
		h := handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": func(ctx context.Context) error { return nil },
			"redis":    func(ctx context.Context) error { return errors.New("down") },
		}, zap.NewNop())
		app := fiber.New()
		app.Get("/health", h.Health)

		status, payload := doRequest(t, app, "GET", "/health", "")

		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Equal(t, "degraded", payload["status"])
		deps := payload["dependencies"].(map[string]interface{})
		assert.Equal(t, "down", deps["redis"])
		assert.Equal(t, "up", deps["postgres"])
	})
}
