package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
)

// BoatHandler はボートハンドラー
type BoatHandler struct {
	service BoatServiceInterface
}

func NewBoatHandler(s BoatServiceInterface) *BoatHandler {
	return &BoatHandler{service: s}
}

type CreateBoatRequest struct {
	Name string `json:"name" validate:"required" example:"カタマラン・ラグーン42"`
}

type BoatResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID   string    `json:"owner_id" example:"owner-123"`
	Name      string    `json:"name" example:"カタマラン・ラグーン42"`
	Status    string    `json:"status" example:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toBoatResponse(b *boat.Boat) BoatResponse {
	return BoatResponse{
		ID: b.ID, OwnerID: b.OwnerID,
		Name: b.Name, Status: string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

// Create godoc
// @Summary ボートを登録
// @Tags boats
// @Accept json
// @Produce json
// @Param X-User-ID header string true "オーナーID"
// @Param request body CreateBoatRequest true "ボート情報"
// @Success 201 {object} BoatResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /boats [post]
func (h *BoatHandler) Create(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateBoatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.RegisterBoat(c.Request().Context(), ownerID, req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBoatResponse(b))
}

// GetByID godoc
// @Summary ボートを取得
// @Tags boats
// @Produce json
// @Param boat_id path string true "ボートID"
// @Success 200 {object} BoatResponse
// @Failure 404 {object} map[string]string
// @Router /boats/{boat_id} [get]
func (h *BoatHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBoat(c.Request().Context(), c.Param("boat_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBoatResponse(b))
}

// ListMine godoc
// @Summary オーナーのボート一覧を取得
// @Tags boats
// @Produce json
// @Param X-User-ID header string true "オーナーID"
// @Success 200 {array} BoatResponse
// @Failure 401 {object} map[string]string
// @Router /boats [get]
func (h *BoatHandler) ListMine(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	boats, err := h.service.ListOwnerBoats(c.Request().Context(), ownerID)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]BoatResponse, len(boats))
	for i, b := range boats {
		resp[i] = toBoatResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}
