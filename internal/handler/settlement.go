package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-back-office/internal/booking"
    "github.com/iliyamo/hotel-back-office/internal/model"
    "github.com/iliyamo/hotel-back-office/internal/queue"
    "github.com/iliyamo/hotel-back-office/internal/repository"
    "github.com/iliyamo/hotel-back-office/internal/service"
)

// SettlementHandler closes out bookings: it applies the final
// payment, flips the payment status, releases the rooms and writes
// the invoice snapshot, all in one transaction guarded by the
// booking's version column.  Two clerks settling the same booking
// race on that column; the loser gets a 409 instead of silently
// double-applying a payment.
type SettlementHandler struct {
    BookingRepo *repository.BookingRepo
    RoomRepo    *repository.RoomTypeRepo
    InvoiceRepo *repository.InvoiceRepo
    Notifier    *service.RoomNotifier   // may be nil when redis is unavailable
    Publisher   *service.EventPublisher // may be nil when the broker is unavailable
}

func NewSettlementHandler(bookingRepo *repository.BookingRepo, roomRepo *repository.RoomTypeRepo, invoiceRepo *repository.InvoiceRepo, notifier *service.RoomNotifier, publisher *service.EventPublisher) *SettlementHandler {
    if bookingRepo == nil || roomRepo == nil || invoiceRepo == nil {
        panic("nil repository passed to NewSettlementHandler")
    }
    return &SettlementHandler{
        BookingRepo: bookingRepo,
        RoomRepo:    roomRepo,
        InvoiceRepo: invoiceRepo,
        Notifier:    notifier,
        Publisher:   publisher,
    }
}

// settleReq is the payload for POST /v1/bookings/:id/settle.  The
// additional payment is whatever the guest hands over at checkout; an
// amount larger than the balance is accepted and recorded as is.
type settleReq struct {
    AdditionalPaymentCents int64 `json:"additional_payment_cents" validate:"min=0"`
}

// settleResp reports the financial outcome plus the invoice when the
// settlement completed.
type settleResp struct {
    Booking    model.Booking      `json:"booking"`
    Settlement booking.Settlement `json:"settlement"`
    Invoice    *model.Invoice     `json:"invoice,omitempty"`
}

// Settle handles POST /v1/bookings/:id/settle.
func (h *SettlementHandler) Settle(c echo.Context) error {
    sess, err := getSession(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req settleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := validate.Struct(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
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

    b, err := h.BookingRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if b.Status == model.BookingStatusCancelled {
        return c.JSON(http.StatusConflict, echo.Map{"error": "cancelled booking cannot be settled"})
    }

    // Re-settling with no additional payment is an idempotent read:
    // report the recorded state without touching the row.
    if b.IsSettled && req.AdditionalPaymentCents == 0 {
        sett := booking.Settle(b.BaseAmountCents, b.DiscountCents, b.TaxCents, b.PaidCents, 0)
        return c.JSON(http.StatusOK, settleResp{Booking: *b, Settlement: sett})
    }

    wasSettled := b.IsSettled
    sett := booking.Settle(b.BaseAmountCents, b.DiscountCents, b.TaxCents, b.PaidCents, req.AdditionalPaymentCents)

    now := time.Now().UTC()
    var settledAt *time.Time
    if sett.IsSettled {
        settledAt = b.SettledAt
        if settledAt == nil {
            settledAt = &now
        }
    }

    if err := h.BookingRepo.SettleTx(ctx, tx, id, b.Version, sett, settledAt); err != nil {
        switch {
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking was modified concurrently, retry"})
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    var (
        inv     *model.Invoice
        roomIDs []uint64
        release []uint64
    )
    if sett.IsSettled && !wasSettled {
        // First time the booking settles: free the rooms exactly once
        // and snapshot the figures.
        roomIDs, err = h.BookingRepo.RoomIDsTx(ctx, tx, id)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        release = booking.RoomsToRelease(roomIDs)
        if err := h.RoomRepo.ReleaseTx(ctx, tx, release); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }

        inv = &model.Invoice{
            Number:           invoiceNumber(),
            BookingID:        id,
            GuestName:        b.GuestName,
            BaseAmountCents:  b.BaseAmountCents,
            DiscountCents:    b.DiscountCents,
            TaxCents:         b.TaxCents,
            FinalAmountCents: sett.FinalAmountCents,
            PaidCents:        sett.TotalPaidCents,
            IssuedBy:         sess.UserID,
            IssuedAt:         now,
        }
        if err := h.InvoiceRepo.CreateTx(ctx, tx, inv); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not write invoice"})
        }
    }

    updated, err := h.BookingRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    committed = true

    // Side channels fire only after the commit: a rolled-back
    // settlement must never announce itself.
    if sett.IsSettled && !wasSettled {
        if h.Notifier != nil {
            for _, rid := range release {
                h.Notifier.RoomStatusChanged(ctx, rid, model.RoomStatusAvailable)
            }
        }
        if h.Publisher != nil && inv != nil {
            _ = h.Publisher.BookingSettled(ctx, queue.BookingSettledEvent{
                BookingID:        id,
                InvoiceNumber:    inv.Number,
                GuestName:        b.GuestName,
                RoomTypeIDs:      release,
                CheckIn:          b.CheckIn.Format(time.RFC3339),
                CheckOut:         b.CheckOut.Format(time.RFC3339),
                FinalAmountCents: sett.FinalAmountCents,
                TotalPaidCents:   sett.TotalPaidCents,
                BalanceCents:     sett.BalanceCents,
                SettledBy:        sess.UserID,
                SettledAt:        now.Format(time.RFC3339),
            })
        }
    }

    return c.JSON(http.StatusOK, settleResp{Booking: *updated, Settlement: sett, Invoice: inv})
}

// invoiceNumber mints a human-facing invoice number.  The UUID tail
// keeps numbers unique across instances without a counter table.
func invoiceNumber() string {
    tail := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
    return "INV-" + time.Now().UTC().Format("20060102") + "-" + tail
}
