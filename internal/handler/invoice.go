package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-back-office/internal/repository"
)

// InvoiceHandler serves the read-only invoice archive.  Invoices are
// written once at settlement time and never edited here.
type InvoiceHandler struct {
    InvoiceRepo *repository.InvoiceRepo
}

func NewInvoiceHandler(invoiceRepo *repository.InvoiceRepo) *InvoiceHandler {
    if invoiceRepo == nil {
        panic("nil repository passed to NewInvoiceHandler")
    }
    return &InvoiceHandler{InvoiceRepo: invoiceRepo}
}

// List handles GET /v1/invoices with an optional ?booking_id= filter.
func (h *InvoiceHandler) List(c echo.Context) error {
    ctx := c.Request().Context()
    if raw := c.QueryParam("booking_id"); raw != "" {
        bookingID, err := parseID(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_id"})
        }
        list, err := h.InvoiceRepo.ListByBooking(ctx, bookingID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return c.JSON(http.StatusOK, echo.Map{"invoices": list})
    }
    list, err := h.InvoiceRepo.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"invoices": list})
}

// Get handles GET /v1/invoices/:id.
func (h *InvoiceHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
    }
    inv, err := h.InvoiceRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrInvoiceNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, inv)
}
