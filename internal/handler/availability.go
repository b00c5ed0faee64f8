package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-back-office/internal/booking"
    "github.com/iliyamo/hotel-back-office/internal/repository"
)

// AvailabilityHandler answers the question the booking dialog asks
// before anything is written: can this room host this stay, which
// days are blocked, and what would it cost.
type AvailabilityHandler struct {
    RoomRepo    *repository.RoomTypeRepo
    RateRepo    *repository.RateOverrideRepo
    BookingRepo *repository.BookingRepo
}

func NewAvailabilityHandler(roomRepo *repository.RoomTypeRepo, rateRepo *repository.RateOverrideRepo, bookingRepo *repository.BookingRepo) *AvailabilityHandler {
    if roomRepo == nil || rateRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{RoomRepo: roomRepo, RateRepo: rateRepo, BookingRepo: bookingRepo}
}

// availabilityResp combines conflict detection and the stay quote for
// a single room and candidate interval.
type availabilityResp struct {
    RoomTypeID uint64                 `json:"room_type_id"`
    Conflict   booking.ConflictResult `json:"availability"`
    Quote      booking.StayQuote      `json:"quote"`
}

// Check handles GET /v1/rooms/:id/availability?check_in=...&check_out=...
// Check-in and check-out are full instants (RFC3339); the overlap test
// compares instants while the blocked-dates list and the per-night
// pricing work on calendar dates.
func (h *AvailabilityHandler) Check(c echo.Context) error {
    roomID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    checkIn, err := parseInstant(c.QueryParam("check_in"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be a timestamp"})
    }
    checkOut, err := parseInstant(c.QueryParam("check_out"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be a timestamp"})
    }
    if !checkOut.After(checkIn) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
    }

    ctx := c.Request().Context()
    rt, err := h.RoomRepo.GetByID(ctx, roomID)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    stays, err := h.BookingRepo.StaysByRoom(ctx, roomID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    conflict := booking.FindConflicts(checkIn, checkOut, stays)

    overrides, err := h.RateRepo.MapForRange(ctx, roomID, checkIn, checkOut)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    quote := booking.QuoteStay(checkIn, checkOut, rt.BasePriceCents, overrides)

    return c.JSON(http.StatusOK, availabilityResp{
        RoomTypeID: roomID,
        Conflict:   conflict,
        Quote:      quote,
    })
}
