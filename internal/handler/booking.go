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

// BookingHandler owns the reservation lifecycle: creation with
// conflict detection and pricing, listing, and the status transitions
// (check-in, check-out, cancel).  Creation is a single transaction so
// a failure after the conflict check can never leave a half-written
// booking behind.
type BookingHandler struct {
    BookingRepo *repository.BookingRepo
    RoomRepo    *repository.RoomTypeRepo
    RateRepo    *repository.RateOverrideRepo
    Notifier    *service.RoomNotifier // may be nil when redis is unavailable
}

func NewBookingHandler(bookingRepo *repository.BookingRepo, roomRepo *repository.RoomTypeRepo, rateRepo *repository.RateOverrideRepo, notifier *service.RoomNotifier) *BookingHandler {
    if bookingRepo == nil || roomRepo == nil || rateRepo == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{BookingRepo: bookingRepo, RoomRepo: roomRepo, RateRepo: rateRepo, Notifier: notifier}
}

// createBookingReq is the payload for POST /v1/bookings.  CheckIn and
// CheckOut are instants; DiscountCents and TaxCents are fixed amounts
// decided by the clerk, and PaidCents is the deposit taken up front.
type createBookingReq struct {
    GuestName     string   `json:"guest_name" validate:"required,min=2,max=190"`
    GuestEmail    string   `json:"guest_email" validate:"required,email"`
    GuestPhone    string   `json:"guest_phone" validate:"required,min=5,max=32"`
    GuestAddress  *string  `json:"guest_address" validate:"omitempty,max=255"`
    CheckIn       string   `json:"check_in" validate:"required"`
    CheckOut      string   `json:"check_out" validate:"required"`
    Adults        uint32   `json:"adults" validate:"required,min=1"`
    Children      uint32   `json:"children"`
    RoomTypeIDs   []uint64 `json:"room_type_ids" validate:"required,min=1,dive,min=1"`
    DiscountCents int64    `json:"discount_cents" validate:"min=0"`
    TaxCents      int64    `json:"tax_cents" validate:"min=0"`
    PaidCents     int64    `json:"paid_cents" validate:"min=0"`
}

// bookingResp pairs a booking row with its room ids; the join table
// is not worth a second round trip for every client.
type bookingResp struct {
    model.Booking
    RoomTypeIDs []uint64 `json:"room_type_ids"`
}

// roomConflictResp is the 409 body when one of the requested rooms is
// already taken for part of the stay.
type roomConflictResp struct {
    Error        string      `json:"error"`
    RoomTypeID   uint64      `json:"room_type_id"`
    BlockedDates []time.Time `json:"blocked_dates"`
}

// Create handles POST /v1/bookings.  All requested rooms are conflict
// checked and priced inside one transaction; the booking row, the
// join rows and the room status flips commit together or not at all.
func (h *BookingHandler) Create(c echo.Context) error {
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    checkIn, err := parseInstant(req.CheckIn)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be a timestamp"})
    }
    checkOut, err := parseInstant(req.CheckOut)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be a timestamp"})
    }
    if !checkOut.After(checkIn) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
    }

    roomIDs := booking.RoomsToRelease(req.RoomTypeIDs) // dedup, drop zeros
    if len(roomIDs) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one room_type_id is required"})
    }

    ctx := c.Request().Context()

    // Read phase: every room must exist, be active and be outside any
    // maintenance window before anything is written.
    rooms := make(map[uint64]*model.RoomType, len(roomIDs))
    for _, id := range roomIDs {
        rt, err := h.RoomRepo.GetByID(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrRoomNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if !rt.IsActive {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "room is not active"})
        }
        if rt.Status == model.RoomStatusMaintenance && (rt.MaintenanceUntil == nil || rt.MaintenanceUntil.After(checkIn)) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "room is under maintenance"})
        }
        rooms[id] = rt
    }

    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Conflict check inside the transaction so two clerks racing on
    // the same room cannot both pass it.
    quotes := make([]booking.StayQuote, 0, len(roomIDs))
    for _, id := range roomIDs {
        stays, err := h.BookingRepo.StaysByRoomTx(ctx, tx, id)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if res := booking.FindConflicts(checkIn, checkOut, stays); res.Conflict {
            return c.JSON(http.StatusConflict, roomConflictResp{
                Error:        "room is not available for the requested dates",
                RoomTypeID:   id,
                BlockedDates: res.BlockedDates,
            })
        }
        overrides, err := h.RateRepo.MapForRange(ctx, id, checkIn, checkOut)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        quotes = append(quotes, booking.QuoteStay(checkIn, checkOut, rooms[id].BasePriceCents, overrides))
    }

    combined := booking.CombineQuotes(quotes...)
    total := booking.StayTotal(combined.TotalCents, req.DiscountCents, req.TaxCents)
    paid := booking.Settle(combined.TotalCents, req.DiscountCents, req.TaxCents, 0, req.PaidCents)

    b := &model.Booking{
        GuestName:        req.GuestName,
        GuestEmail:       req.GuestEmail,
        GuestPhone:       req.GuestPhone,
        GuestAddress:     req.GuestAddress,
        CheckIn:          checkIn,
        CheckOut:         checkOut,
        Adults:           req.Adults,
        Children:         req.Children,
        BaseAmountCents:  combined.TotalCents,
        DiscountCents:    req.DiscountCents,
        TaxCents:         req.TaxCents,
        TotalAmountCents: total,
        PaidCents:        req.PaidCents,
        PaymentStatus:    paid.PaymentStatus,
        Status:           model.BookingStatusConfirmed,
    }
    if err := h.BookingRepo.CreateTx(ctx, tx, b); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
    }
    if err := h.BookingRepo.AddRoomsTx(ctx, tx, b.ID, roomIDs); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
    }
    if err := h.RoomRepo.MarkBookedTx(ctx, tx, roomIDs); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed = true

    if h.Notifier != nil {
        for _, id := range roomIDs {
            h.Notifier.RoomStatusChanged(ctx, id, model.RoomStatusBooked)
        }
    }

    return c.JSON(http.StatusCreated, bookingResp{Booking: *b, RoomTypeIDs: roomIDs})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx := c.Request().Context()
    b, err := h.BookingRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    roomIDs, err := h.BookingRepo.RoomIDs(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, bookingResp{Booking: *b, RoomTypeIDs: roomIDs})
}

// List handles GET /v1/bookings with an optional ?status= filter.
func (h *BookingHandler) List(c echo.Context) error {
    status := c.QueryParam("status")
    switch status {
    case "", model.BookingStatusConfirmed, model.BookingStatusCheckedIn,
        model.BookingStatusCheckedOut, model.BookingStatusCancelled:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
    }
    list, err := h.BookingRepo.List(c.Request().Context(), status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// CheckIn handles POST /v1/bookings/:id/check-in.  Only a confirmed
// booking can check in; repeating the call is a no-op.
func (h *BookingHandler) CheckIn(c echo.Context) error {
    return h.transition(c, model.BookingStatusCheckedIn, model.BookingStatusConfirmed)
}

// CheckOut handles POST /v1/bookings/:id/check-out.  Rooms stay in
// "booked" until settlement; checkout only moves the guest state.
func (h *BookingHandler) CheckOut(c echo.Context) error {
    return h.transition(c, model.BookingStatusCheckedOut, model.BookingStatusCheckedIn)
}

// transition applies a guarded status change inside a transaction and
// returns the updated booking.
func (h *BookingHandler) transition(c echo.Context, to string, from ...string) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx := c.Request().Context()

    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := h.BookingRepo.UpdateStatusTx(ctx, tx, id, to, from...); err != nil {
        switch {
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not in a state that allows this transition"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    b, err := h.BookingRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed = true
    return c.JSON(http.StatusOK, b)
}

// Cancel handles POST /v1/bookings/:id/cancel.  Cancelling frees the
// rooms in the same transaction as the status flip so a cancelled
// booking can never keep a room in "booked".
func (h *BookingHandler) Cancel(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx := c.Request().Context()

    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := h.BookingRepo.UpdateStatusTx(ctx, tx, id, model.BookingStatusCancelled,
        model.BookingStatusConfirmed, model.BookingStatusCheckedIn); err != nil {
        switch {
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled in its current state"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    roomIDs, err := h.BookingRepo.RoomIDsTx(ctx, tx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    release := booking.RoomsToRelease(roomIDs)
    if err := h.RoomRepo.ReleaseTx(ctx, tx, release); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    b, err := h.BookingRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed = true

    if h.Notifier != nil {
        for _, rid := range release {
            h.Notifier.RoomStatusChanged(ctx, rid, model.RoomStatusAvailable)
        }
    }
    return c.JSON(http.StatusOK, bookingResp{Booking: *b, RoomTypeIDs: roomIDs})
}
