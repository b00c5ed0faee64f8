package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-back-office/internal/model"
)

// InvoiceRepo persists settlement snapshots.  Invoices are written
// once inside the settlement transaction and never updated, so the
// front desk can reprint a settled booking's figures later.
type InvoiceRepo struct {
    db *sql.DB
}

// NewInvoiceRepo constructs an InvoiceRepo with the given DB handle.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

const invoiceColumns = `id, number, booking_id, guest_name, base_amount_cents, discount_cents, tax_cents, final_amount_cents, paid_cents, issued_by, issued_at`

func scanInvoice(row interface{ Scan(...any) error }, inv *model.Invoice) error {
    return row.Scan(&inv.ID, &inv.Number, &inv.BookingID, &inv.GuestName,
        &inv.BaseAmountCents, &inv.DiscountCents, &inv.TaxCents,
        &inv.FinalAmountCents, &inv.PaidCents, &inv.IssuedBy, &inv.IssuedAt)
}

// CreateTx inserts an invoice snapshot within the caller's
// transaction and populates the generated ID.
func (r *InvoiceRepo) CreateTx(ctx context.Context, tx *sql.Tx, inv *model.Invoice) error {
    const q = `INSERT INTO invoices
               (number, booking_id, guest_name, base_amount_cents, discount_cents, tax_cents, final_amount_cents, paid_cents, issued_by)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        inv.Number, inv.BookingID, inv.GuestName, inv.BaseAmountCents, inv.DiscountCents,
        inv.TaxCents, inv.FinalAmountCents, inv.PaidCents, inv.IssuedBy)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    inv.ID = uint64(id)
    const sel = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`
    return scanInvoice(tx.QueryRowContext(ctx, sel, inv.ID), inv)
}

// GetByID retrieves an invoice by its ID.  It returns
// ErrInvoiceNotFound when no row matches.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uint64) (*model.Invoice, error) {
    const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`
    var inv model.Invoice
    if err := scanInvoice(r.db.QueryRowContext(ctx, q, id), &inv); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrInvoiceNotFound
        }
        return nil, err
    }
    return &inv, nil
}

// ListByBooking returns the invoices written for a booking, newest
// first.  Re-settlements after corrections can leave more than one.
func (r *InvoiceRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Invoice, error) {
    const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE booking_id = ? ORDER BY issued_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, bookingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Invoice, 0)
    for rows.Next() {
        var inv model.Invoice
        if err := scanInvoice(rows, &inv); err != nil {
            return nil, err
        }
        result = append(result, inv)
    }
    return result, rows.Err()
}

// List returns all invoices, newest first.
func (r *InvoiceRepo) List(ctx context.Context) ([]model.Invoice, error) {
    const q = `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issued_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Invoice, 0)
    for rows.Next() {
        var inv model.Invoice
        if err := scanInvoice(rows, &inv); err != nil {
            return nil, err
        }
        result = append(result, inv)
    }
    return result, rows.Err()
}
