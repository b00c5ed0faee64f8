package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-back-office/internal/booking"
    "github.com/iliyamo/hotel-back-office/internal/model"
    "github.com/iliyamo/hotel-back-office/internal/repository"
    "github.com/iliyamo/hotel-back-office/internal/service"
)

// RoomHandler exposes room type management: CRUD, the maintenance
// toggle and the at-a-glance room cards with today's effective price.
type RoomHandler struct {
    RoomRepo *repository.RoomTypeRepo
    RateRepo *repository.RateOverrideRepo
    Notifier *service.RoomNotifier // may be nil when redis is unavailable
}

// NewRoomHandler constructs a RoomHandler with the provided
// repositories.  The notifier is optional.
func NewRoomHandler(roomRepo *repository.RoomTypeRepo, rateRepo *repository.RateOverrideRepo, notifier *service.RoomNotifier) *RoomHandler {
    if roomRepo == nil || rateRepo == nil {
        panic("nil repository passed to NewRoomHandler")
    }
    return &RoomHandler{RoomRepo: roomRepo, RateRepo: rateRepo, Notifier: notifier}
}

type roomReq struct {
    Name           string `json:"name" validate:"required"`
    Capacity       uint32 `json:"capacity" validate:"required,min=1"`
    BasePriceCents int64  `json:"base_price_cents" validate:"min=0"`
    IsActive       *bool  `json:"is_active"`
}

// Create handles POST /v1/rooms.  It inserts a new room type with
// status 'available'.
func (h *RoomHandler) Create(c echo.Context) error {
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and capacity required, price must not be negative"})
    }
    rt := model.RoomType{
        Name:           req.Name,
        Capacity:       req.Capacity,
        BasePriceCents: req.BasePriceCents,
    }
    if err := h.RoomRepo.Create(c.Request().Context(), &rt); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
    }
    return c.JSON(http.StatusCreated, rt)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    rt, err := h.RoomRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, rt)
}

// roomCard is the room list entry enriched with today's effective
// nightly price for the dashboard cards.
type roomCard struct {
    model.RoomType
    TodayPriceCents int64 `json:"today_price_cents"`
}

// List handles GET /v1/rooms.  Pass ?active=true to hide soft-deleted
// rooms.  Each entry carries today's price: the per-date override for
// the current day when one exists, the base price otherwise.
func (h *RoomHandler) List(c echo.Context) error {
    activeOnly := c.QueryParam("active") == "true"
    ctx := c.Request().Context()
    rooms, err := h.RoomRepo.List(ctx, activeOnly)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    today := time.Now().UTC()
    cards := make([]roomCard, 0, len(rooms))
    for _, rt := range rooms {
        overrides, err := h.RateRepo.MapForRange(ctx, rt.ID, today, today)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        cards = append(cards, roomCard{
            RoomType:        rt,
            TodayPriceCents: booking.TodayPrice(today, rt.BasePriceCents, overrides),
        })
    }
    return c.JSON(http.StatusOK, cards)
}

// Update handles PUT /v1/rooms/:id.  Status is not editable here;
// bookings and the maintenance toggle own it.
func (h *RoomHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and capacity required, price must not be negative"})
    }
    ctx := c.Request().Context()
    rt, err := h.RoomRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    rt.Name = req.Name
    rt.Capacity = req.Capacity
    rt.BasePriceCents = req.BasePriceCents
    if req.IsActive != nil {
        rt.IsActive = *req.IsActive
    }
    if err := h.RoomRepo.Update(ctx, rt); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
    }
    updated, err := h.RoomRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, updated)
}

type maintenanceReq struct {
    Until string `json:"until"` // "YYYY-MM-DD"; empty ends maintenance
}

// SetMaintenance handles POST /v1/rooms/:id/maintenance.  A non-empty
// "until" date takes the room out of service through that day; an
// empty body returns it to available.  The status and the end date
// always move together.
func (h *RoomHandler) SetMaintenance(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var req maintenanceReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    var until *time.Time
    if req.Until != "" {
        d, err := parseDate(req.Until)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "until must be YYYY-MM-DD"})
        }
        if d.Before(booking.DateOf(time.Now().UTC())) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "until must not be in the past"})
        }
        until = &d
    }
    ctx := c.Request().Context()
    if err := h.RoomRepo.SetMaintenance(ctx, id, until); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
    }
    status := model.RoomStatusAvailable
    if until != nil {
        status = model.RoomStatusMaintenance
    }
    if h.Notifier != nil {
        h.Notifier.RoomStatusChanged(ctx, id, status)
    }
    rt, err := h.RoomRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, rt)
}
