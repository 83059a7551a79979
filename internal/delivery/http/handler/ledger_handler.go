package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/pkg/utils"
	"github.com/travel-ledger/internal/usecase/dto"
)

// LedgerService - производные представления журнала
type LedgerService interface {
	Summary(ctx context.Context) (*domain.LedgerSummary, error)
	Hubs(ctx context.Context) (*domain.HubMap, error)
	Passport(ctx context.Context, query dto.PassportQuery) (*dto.PassportResponse, error)
	Route(ctx context.Context) (*dto.RouteResponse, error)
}

// LedgerHandler обрабатывает запросы представлений журнала
type LedgerHandler struct {
	ledgerUC LedgerService
	logger   *zap.Logger
}

// NewLedgerHandler создает новый экземпляр LedgerHandler
func NewLedgerHandler(ledgerUC LedgerService, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC: ledgerUC,
		logger:   logger,
	}
}

// Summary godoc
// @Summary Сводка журнала
// @Description Статистика, уровень, разбивка по категориям и текст для экспорта
// @Tags Ledger
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.LedgerSummary}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/ledger/summary [get]
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.ledgerUC.Summary(c.Context())
	if err != nil {
		h.logger.Error("Failed to build ledger summary", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, summary, nil)
}

// Hubs godoc
// @Summary Города на карте
// @Description Штампы, сгруппированные по городам, и охватывающий прямоугольник
// @Tags Ledger
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.HubMap}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/ledger/hubs [get]
func (h *LedgerHandler) Hubs(c *fiber.Ctx) error {
	hubMap, err := h.ledgerUC.Hubs(c.Context())
	if err != nil {
		h.logger.Error("Failed to build hubs", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, hubMap, &utils.Meta{
		Total: len(hubMap.Hubs),
	})
}

// Passport godoc
// @Summary Паспорт по странам
// @Description Штампы, сгруппированные по странам, с поиском и фильтрами
// @Tags Ledger
// @Produce json
// @Param q query string false "Подстрока страны или города"
// @Param sort query string false "Порядок стран (ALPHA, RECENT)" default(ALPHA)
// @Param category query string false "Категория (ALL - без фильтра)"
// @Param city query []string false "Фильтр городов COUNTRY:CITY" collectionFormat(multi)
// @Success 200 {object} utils.SuccessResponse{data=dto.PassportResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/ledger/passport [get]
func (h *LedgerHandler) Passport(c *fiber.Ctx) error {
	query := dto.PassportQuery{
		Search:   c.Query("q"),
		Sort:     c.Query("sort"),
		Category: c.Query("category"),
	}
	for _, city := range c.Context().QueryArgs().PeekMulti("city") {
		query.Cities = append(query.Cities, string(city))
	}

	resp, err := h.ledgerUC.Passport(c.Context(), query)
	if err != nil {
		h.logger.Error("Failed to build passport", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{
		Total: resp.TotalStamps,
	})
}

// Route godoc
// @Summary Маршрут путешествий
// @Description Хронологические отрезки между штампами и суммарное расстояние
// @Tags Ledger
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/ledger/route [get]
func (h *LedgerHandler) Route(c *fiber.Ctx) error {
	route, err := h.ledgerUC.Route(c.Context())
	if err != nil {
		h.logger.Error("Failed to build route", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, route, nil)
}
