package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// toHTTPError はドメインエラーをHTTPステータスに変換する
// 検証エラー → 400、衝突 → 409、未発見 → 404、ロック競合 → 503
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, daterange.ErrInvalidDate),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, booking.ErrBoatIDRequired),
		errors.Is(err, booking.ErrRenterIDRequired),
		errors.Is(err, booking.ErrBookingCompleted),
		errors.Is(err, booking.ErrBookingNotReschedulable),
		errors.Is(err, block.ErrBoatIDRequired),
		errors.Is(err, boat.ErrOwnerIDRequired),
		errors.Is(err, boat.ErrNameRequired),
		errors.Is(err, boat.ErrBoatNotActive):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrRangeConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, boat.ErrBoatNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, block.ErrBlockNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrBoatBusy):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
