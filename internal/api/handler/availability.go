package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/availability"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// AvailabilityHandler は空き状況ハンドラー
type AvailabilityHandler struct {
	service AvailabilityServiceInterface
}

func NewAvailabilityHandler(s AvailabilityServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{service: s}
}

// PeriodResponse は利用不可期間のレスポンス
type PeriodResponse struct {
	Kind        string `json:"kind" example:"booking"`
	ReferenceID string `json:"reference_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate   string `json:"start_date" example:"2026-07-10"`
	EndDate     string `json:"end_date" example:"2026-07-15"`
	Reason      string `json:"reason" example:"confirmed"`
	Detail      string `json:"detail,omitempty" example:"田中一郎"`
}

// CheckResponse は空き状況チェックのレスポンス
type CheckResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

func toPeriodResponse(p availability.Period) PeriodResponse {
	return PeriodResponse{
		Kind:        string(p.Kind),
		ReferenceID: p.ReferenceID,
		StartDate:   p.Range.StartString(),
		EndDate:     p.Range.EndString(),
		Reason:      p.Reason,
		Detail:      p.Detail,
	}
}

// ListUnavailable godoc
// @Summary ボートの利用不可期間一覧を取得
// @Description 予約とブロック期間を統合した利用不可期間を開始日昇順で返します
// @Tags availability
// @Produce json
// @Param boat_id path string true "ボートID"
// @Param start query string false "ウィンドウ開始日（YYYY-MM-DD）"
// @Param end query string false "ウィンドウ終了日（YYYY-MM-DD）"
// @Success 200 {array} PeriodResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boats/{boat_id}/availability/unavailable [get]
func (h *AvailabilityHandler) ListUnavailable(c echo.Context) error {
	boatID := c.Param("boat_id")
	window, err := parseWindow(c)
	if err != nil {
		return err
	}
	periods, err := h.service.ListUnavailable(c.Request().Context(), boatID, window)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		resp[i] = toPeriodResponse(p)
	}
	return c.JSON(http.StatusOK, resp)
}

// Check godoc
// @Summary 指定期間の空き状況をチェック
// @Description 指定期間にボートが予約可能かを判定します
// @Tags availability
// @Produce json
// @Param boat_id path string true "ボートID"
// @Param start query string true "開始日（YYYY-MM-DD）"
// @Param end query string true "終了日（YYYY-MM-DD）"
// @Param exclude_booking_id query string false "衝突判定から除外する予約ID"
// @Success 200 {object} CheckResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boats/{boat_id}/availability/check [get]
func (h *AvailabilityHandler) Check(c echo.Context) error {
	boatID := c.Param("boat_id")
	rng, err := daterange.Parse(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return toHTTPError(err)
	}
	check, err := h.service.CheckAvailability(c.Request().Context(), boatID, rng, c.QueryParam("exclude_booking_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, CheckResponse{
		Available: check.Available,
		Message:   check.Message,
	})
}

// parseWindow はクエリパラメータから省略可能なウィンドウを読み取る
// start/end は両方指定するか、両方省略するかのどちらか
func parseWindow(c echo.Context) (*daterange.DateRange, error) {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "start と end は両方指定してください")
	}
	rng, err := daterange.Parse(start, end)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &rng, nil
}
