package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/availability"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// MockAvailabilityService はAvailabilityServiceInterfaceのモック
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) ListUnavailable(ctx context.Context, boatID string, window *daterange.DateRange) ([]availability.Period, error) {
	args := m.Called(ctx, boatID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.Period), args.Error(1)
}

func (m *MockAvailabilityService) CheckAvailability(ctx context.Context, boatID string, rng daterange.DateRange, excludeBookingID string) (availability.Check, error) {
	args := m.Called(ctx, boatID, rng, excludeBookingID)
	return args.Get(0).(availability.Check), args.Error(1)
}

func testPeriod(t *testing.T, kind availability.Kind, refID, start, end string) availability.Period {
	t.Helper()
	rng, err := daterange.Parse(start, end)
	require.NoError(t, err)
	return availability.Period{Kind: kind, ReferenceID: refID, Range: rng, Reason: "confirmed"}
}

func TestAvailabilityHandler_ListUnavailable(t *testing.T) {
	e := NewTestEcho()

	t.Run("利用不可期間一覧を返す", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		mockService.On("ListUnavailable", mock.Anything, "boat-123", (*daterange.DateRange)(nil)).
			Return([]availability.Period{
				testPeriod(t, availability.KindBooking, "bk-1", "2026-07-10", "2026-07-15"),
				testPeriod(t, availability.KindBlocked, "bl-1", "2026-07-20", "2026-07-22"),
			}, nil)
		handler := NewAvailabilityHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/boats/boat-123/availability/unavailable", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("boat_id")
		c.SetParamValues("boat-123")

		err := handler.ListUnavailable(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []PeriodResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "booking", resp[0].Kind)
		assert.Equal(t, "2026-07-10", resp[0].StartDate)
	})

	t.Run("ウィンドウの片方だけ指定すると400", func(t *testing.T) {
		handler := NewAvailabilityHandler(new(MockAvailabilityService))

		req := httptest.NewRequest(http.MethodGet, "/boats/boat-123/availability/unavailable?start=2026-07-01", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("boat_id")
		c.SetParamValues("boat-123")

		err := handler.ListUnavailable(c)
		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("存在しないボートは404", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		mockService.On("ListUnavailable", mock.Anything, "missing", (*daterange.DateRange)(nil)).
			Return(nil, boat.ErrBoatNotFound)
		handler := NewAvailabilityHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/boats/missing/availability/unavailable", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("boat_id")
		c.SetParamValues("missing")

		err := handler.ListUnavailable(c)
		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestAvailabilityHandler_Check(t *testing.T) {
	e := NewTestEcho()

	t.Run("空いている期間はavailable=true", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		mockService.On("CheckAvailability", mock.Anything, "boat-123", mock.Anything, "").
			Return(availability.Check{Available: true}, nil)
		handler := NewAvailabilityHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/boats/boat-123/availability/check?start=2026-07-10&end=2026-07-15", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("boat_id")
		c.SetParamValues("boat-123")

		err := handler.Check(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CheckResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Available)
	})

	t.Run("除外予約IDが渡される", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		mockService.On("CheckAvailability", mock.Anything, "boat-123", mock.Anything, "bk-1").
			Return(availability.Check{Available: true}, nil)
		handler := NewAvailabilityHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/boats/boat-123/availability/check?start=2026-07-10&end=2026-07-15&exclude_booking_id=bk-1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("boat_id")
		c.SetParamValues("boat-123")

		err := handler.Check(c)
		require.NoError(t, err)
		mockService.AssertExpectations(t)
	})

	t.Run("日付がないと400", func(t *testing.T) {
		handler := NewAvailabilityHandler(new(MockAvailabilityService))

		req := httptest.NewRequest(http.MethodGet, "/boats/boat-123/availability/check", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("boat_id")
		c.SetParamValues("boat-123")

		err := handler.Check(c)
		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}
