package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-back-office/internal/repository"
)

// RateHandler manages the per-room pricing calendar: date-specific
// overrides of the base nightly price.
type RateHandler struct {
    RoomRepo *repository.RoomTypeRepo
    RateRepo *repository.RateOverrideRepo
}

func NewRateHandler(roomRepo *repository.RoomTypeRepo, rateRepo *repository.RateOverrideRepo) *RateHandler {
    if roomRepo == nil || rateRepo == nil {
        panic("nil repository passed to NewRateHandler")
    }
    return &RateHandler{RoomRepo: roomRepo, RateRepo: rateRepo}
}

// List handles GET /v1/rooms/:id/rates?from=YYYY-MM-DD&to=YYYY-MM-DD.
// It returns the overrides of the requested calendar window.
func (h *RateHandler) List(c echo.Context) error {
    roomID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    from, err := parseDate(c.QueryParam("from"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
    }
    to, err := parseDate(c.QueryParam("to"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
    }
    if to.Before(from) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not precede from"})
    }
    ctx := c.Request().Context()
    if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    overrides, err := h.RateRepo.ListForRange(ctx, roomID, from, to)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, overrides)
}

type rateReq struct {
    Date       string  `json:"date" validate:"required"`
    PriceCents int64   `json:"price_cents" validate:"min=0"`
    Note       *string `json:"note"`
}

// Set handles PUT /v1/rooms/:id/rates.  One override per (room, date)
// pair: writing the same date again replaces the price instead of
// stacking a second row.
func (h *RateHandler) Set(c echo.Context) error {
    roomID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var req rateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date required, price must not be negative"})
    }
    date, err := parseDate(req.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    ctx := c.Request().Context()
    if _, err := h.RoomRepo.GetByID(ctx, roomID); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.RateRepo.Upsert(ctx, roomID, date, req.PriceCents, req.Note); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rate failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "room_type_id": roomID,
        "date":         req.Date,
        "price_cents":  req.PriceCents,
    })
}

// Delete handles DELETE /v1/rooms/:id/rates?date=YYYY-MM-DD, removing
// one day's override so the base price applies again.
func (h *RateHandler) Delete(c echo.Context) error {
    roomID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    date, err := parseDate(c.QueryParam("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    if err := h.RateRepo.Delete(c.Request().Context(), roomID, date); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete rate failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
