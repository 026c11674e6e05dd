package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// BlockHandler はブロック期間ハンドラー
type BlockHandler struct {
	service BlockServiceInterface
}

func NewBlockHandler(s BlockServiceInterface) *BlockHandler {
	return &BlockHandler{service: s}
}

type CreateBlockRequest struct {
	StartDate string `json:"start_date" validate:"required" example:"2026-07-14"`
	EndDate   string `json:"end_date" validate:"required" example:"2026-07-18"`
	Reason    string `json:"reason" example:"整備"`
}

type BlockResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	BoatID    string    `json:"boat_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate string    `json:"start_date" example:"2026-07-14"`
	EndDate   string    `json:"end_date" example:"2026-07-18"`
	Reason    string    `json:"reason" example:"整備"`
	CreatedAt time.Time `json:"created_at"`
}

func toBlockResponse(b *block.Block) BlockResponse {
	return BlockResponse{
		ID: b.ID, BoatID: b.BoatID,
		StartDate: b.Range.StartString(), EndDate: b.Range.EndString(),
		Reason: b.Reason, CreatedAt: b.CreatedAt,
	}
}

// Create godoc
// @Summary ブロック期間を追加
// @Description オーナーの管理操作としてボートを利用不可にします。既存予約との重なりは検査しません
// @Tags blocks
// @Accept json
// @Produce json
// @Param boat_id path string true "ボートID"
// @Param request body CreateBlockRequest true "ブロック期間"
// @Success 201 {object} BlockResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boats/{boat_id}/blocks [post]
func (h *BlockHandler) Create(c echo.Context) error {
	var req CreateBlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rng, err := daterange.Parse(req.StartDate, req.EndDate)
	if err != nil {
		return toHTTPError(err)
	}
	b, err := h.service.AddBlock(c.Request().Context(), c.Param("boat_id"), rng, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBlockResponse(b))
}

// List godoc
// @Summary ブロック期間一覧を取得
// @Tags blocks
// @Produce json
// @Param boat_id path string true "ボートID"
// @Success 200 {array} BlockResponse
// @Failure 404 {object} map[string]string
// @Router /boats/{boat_id}/blocks [get]
func (h *BlockHandler) List(c echo.Context) error {
	blocks, err := h.service.ListBlocks(c.Request().Context(), c.Param("boat_id"))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]BlockResponse, len(blocks))
	for i, b := range blocks {
		resp[i] = toBlockResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary ブロック期間を削除
// @Tags blocks
// @Param boat_id path string true "ボートID"
// @Param block_id path string true "ブロックID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /boats/{boat_id}/blocks/{block_id} [delete]
func (h *BlockHandler) Delete(c echo.Context) error {
	if err := h.service.RemoveBlock(c.Request().Context(), c.Param("boat_id"), c.Param("block_id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
