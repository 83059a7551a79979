package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/pkg/errors"
	"github.com/travel-ledger/internal/pkg/utils"
	"github.com/travel-ledger/internal/pkg/validator"
	"github.com/travel-ledger/internal/usecase/dto"
)

// LocationSuggester подсказывает город и страну по координатам
type LocationSuggester interface {
	SuggestLocation(ctx context.Context, lat, lng float64) (*domain.LocationSuggestion, error)
}

// GeocodeHandler - обработчик обратного геокодирования
type GeocodeHandler struct {
	suggester LocationSuggester
	logger    *zap.Logger
}

// NewGeocodeHandler - создание нового GeocodeHandler
func NewGeocodeHandler(suggester LocationSuggester, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		suggester: suggester,
		logger:    logger,
	}
}

// Reverse godoc
// @Summary Обратное геокодирование
// @Description Подсказывает город и страну по координатам. При недоступности сервиса возвращает пустую подсказку.
// @Tags Geocode
// @Accept json
// @Produce json
// @Param request body dto.ReverseGeocodeRequest true "Координаты точки"
// @Success 200 {object} utils.SuccessResponse{data=domain.LocationSuggestion}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geocode/reverse [post]
func (h *GeocodeHandler) Reverse(c *fiber.Ctx) error {
	var req dto.ReverseGeocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, validator.ToAppError(err))
	}

	suggestion, err := h.suggester.SuggestLocation(c.Context(), *req.Lat, *req.Lng)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, suggestion, nil)
}
