package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/application"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// BookingHandler は予約ハンドラー
type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	BoatID     string `json:"boat_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	RenterName string `json:"renter_name" example:"田中一郎"`
	StartDate  string `json:"start_date" validate:"required" example:"2026-07-10"`
	EndDate    string `json:"end_date" validate:"required" example:"2026-07-15"`
	TotalPrice int    `json:"total_price" validate:"gte=0" example:"210000"`
}

type RescheduleBookingRequest struct {
	StartDate string `json:"start_date" validate:"required" example:"2026-07-12"`
	EndDate   string `json:"end_date" validate:"required" example:"2026-07-17"`
}

type BookingResponse struct {
	ID          string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	BoatID      string     `json:"boat_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	RenterID    string     `json:"renter_id" example:"renter-123"`
	RenterName  string     `json:"renter_name" example:"田中一郎"`
	StartDate   string     `json:"start_date" example:"2026-07-10"`
	EndDate     string     `json:"end_date" example:"2026-07-15"`
	Status      string     `json:"status" example:"confirmed"`
	TotalPrice  int        `json:"total_price" example:"210000"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID, BoatID: b.BoatID,
		RenterID: b.RenterID, RenterName: b.RenterName,
		StartDate: b.Range.StartString(), EndDate: b.Range.EndString(),
		Status: string(b.Status), TotalPrice: b.TotalPrice,
		CancelledAt: b.CancelledAt, CompletedAt: b.CompletedAt,
		CreatedAt: b.CreatedAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description 指定期間でボートを予約します。期間が既存の予約・ブロックと重なる場合は409を返します
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "利用者ID"
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string "期間が重なっている"
// @Failure 503 {object} map[string]string "ボートが処理中"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	renterID := c.Request().Header.Get("X-User-ID")
	if renterID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateBookingRequest
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
	b, err := h.service.Reserve(c.Request().Context(), application.ReserveInput{
		BoatID:     req.BoatID,
		RenterID:   renterID,
		RenterName: req.RenterName,
		Range:      rng,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListMine godoc
// @Summary 利用者の予約一覧を取得
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "利用者ID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	renterID := c.Request().Header.Get("X-User-ID")
	if renterID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	bookings, err := h.service.ListRenterBookings(c.Request().Context(), renterID, limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約をキャンセルして期間を解放します。キャンセル済みの予約には冪等に成功を返します
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	b, err := h.service.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Reschedule godoc
// @Summary 予約の日程を変更
// @Description 新しい期間が他の予約・ブロックと重ならない場合のみ変更します（自身の予約は除外）
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "予約ID"
// @Param request body RescheduleBookingRequest true "新しい期間"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c echo.Context) error {
	var req RescheduleBookingRequest
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
	b, err := h.service.Reschedule(c.Request().Context(), c.Param("id"), rng)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}
