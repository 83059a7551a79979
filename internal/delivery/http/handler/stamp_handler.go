package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/pkg/errors"
	"github.com/travel-ledger/internal/pkg/utils"
	"github.com/travel-ledger/internal/usecase/dto"
)

// StampService - операции над штампами, которые нужны обработчику
type StampService interface {
	Create(ctx context.Context, req *dto.CreateStampRequest) (*domain.Stamp, error)
	Update(ctx context.Context, id string, req *dto.UpdateStampRequest) (*domain.Stamp, error)
	Delete(ctx context.Context, id string) error
	RedactImage(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Stamp, error)
	List(ctx context.Context) (*dto.StampListResponse, error)
}

// StampHandler - обработчик CRUD запросов по штампам
type StampHandler struct {
	stampUC StampService
	logger  *zap.Logger
}

// NewStampHandler - создание нового StampHandler
func NewStampHandler(stampUC StampService, logger *zap.Logger) *StampHandler {
	return &StampHandler{
		stampUC: stampUC,
		logger:  logger,
	}
}

// List godoc
// @Summary Список штампов
// @Description Возвращает все штампы журнала, новые первыми
// @Tags Stamps
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StampListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stamps [get]
func (h *StampHandler) List(c *fiber.Ctx) error {
	result, err := h.stampUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// Get godoc
// @Summary Получение штампа по ID
// @Tags Stamps
// @Produce json
// @Param id path string true "ID штампа"
// @Success 200 {object} utils.SuccessResponse{data=domain.Stamp}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stamps/{id} [get]
func (h *StampHandler) Get(c *fiber.Ctx) error {
	stamp, err := h.stampUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stamp, nil)
}

// Create godoc
// @Summary Создание штампа
// @Description Сохраняет новый штамп. Страна нормализуется, координаты определяются геокодером или справочником городов.
// @Tags Stamps
// @Accept json
// @Produce json
// @Param request body dto.CreateStampRequest true "Новый штамп"
// @Success 201 {object} utils.SuccessResponse{data=domain.Stamp}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stamps [post]
func (h *StampHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStampRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	stamp, err := h.stampUC.Create(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, stamp)
}

// Update godoc
// @Summary Обновление штампа
// @Tags Stamps
// @Accept json
// @Produce json
// @Param id path string true "ID штампа"
// @Param request body dto.UpdateStampRequest true "Поля штампа"
// @Success 200 {object} utils.SuccessResponse{data=domain.Stamp}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stamps/{id} [put]
func (h *StampHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStampRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	stamp, err := h.stampUC.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stamp, nil)
}

// Delete godoc
// @Summary Удаление штампа
// @Tags Stamps
// @Param id path string true "ID штампа"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stamps/{id} [delete]
func (h *StampHandler) Delete(c *fiber.Ctx) error {
	if err := h.stampUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RedactImage godoc
// @Summary Удаление изображения штампа
// @Description Очищает изображение, остальные поля штампа не меняются
// @Tags Stamps
// @Param id path string true "ID штампа"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stamps/{id}/image [delete]
func (h *StampHandler) RedactImage(c *fiber.Ctx) error {
	if err := h.stampUC.RedactImage(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
