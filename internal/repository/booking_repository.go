// Package repository contains data access logic for bookings.  A
// booking groups guest contact details, a stay interval, the
// financial fields and one or more room types via the booking_rooms
// join table.  All timestamps are stored in UTC.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/hotel-back-office/internal/booking"
    "github.com/iliyamo/hotel-back-office/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their room
// associations.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning bookings, rooms and invoices.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, guest_name, guest_email, guest_phone, guest_address,
        check_in, check_out, adults, children,
        base_amount_cents, discount_cents, tax_cents, total_amount_cents, paid_cents,
        payment_status, status, is_settled, settled_at, version, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
    var addr sql.NullString
    var settledAt sql.NullTime
    if err := row.Scan(
        &b.ID, &b.GuestName, &b.GuestEmail, &b.GuestPhone, &addr,
        &b.CheckIn, &b.CheckOut, &b.Adults, &b.Children,
        &b.BaseAmountCents, &b.DiscountCents, &b.TaxCents, &b.TotalAmountCents, &b.PaidCents,
        &b.PaymentStatus, &b.Status, &b.IsSettled, &settledAt, &b.Version, &b.CreatedAt, &b.UpdatedAt,
    ); err != nil {
        return err
    }
    if addr.Valid {
        a := addr.String
        b.GuestAddress = &a
    }
    if settledAt.Valid {
        t := settledAt.Time
        b.SettledAt = &t
    }
    return nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID and DB-default fields
// on the provided record; the caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (guest_name, guest_email, guest_phone, guest_address, check_in, check_out, adults, children,
                base_amount_cents, discount_cents, tax_cents, total_amount_cents, paid_cents, payment_status, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        b.GuestName, b.GuestEmail, b.GuestPhone, b.GuestAddress, b.CheckIn, b.CheckOut, b.Adults, b.Children,
        b.BaseAmountCents, b.DiscountCents, b.TaxCents, b.TotalAmountCents, b.PaidCents, b.PaymentStatus, b.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    return scanBooking(tx.QueryRowContext(ctx, sel, b.ID), b)
}

// AddRoomsTx bulk-inserts booking_rooms join rows for the booking in
// a single statement.  Passing an empty slice has no effect.
func (r *BookingRepo) AddRoomsTx(ctx context.Context, tx *sql.Tx, bookingID uint64, roomTypeIDs []uint64) error {
    if len(roomTypeIDs) == 0 {
        return nil
    }
    query := `INSERT INTO booking_rooms (booking_id, room_type_id) VALUES `
    args := make([]interface{}, 0, len(roomTypeIDs)*2)
    for i, id := range roomTypeIDs {
        if i > 0 {
            query += ","
        }
        query += "(?, ?)"
        args = append(args, bookingID, id)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// RoomIDs returns the room type ids joined to a booking, ordered by
// insertion.  A booking created before multi-room support may have no
// join rows; callers fall back to nothing in that case.
func (r *BookingRepo) RoomIDs(ctx context.Context, bookingID uint64) ([]uint64, error) {
    const q = `SELECT room_type_id FROM booking_rooms WHERE booking_id = ? ORDER BY id ASC`
    return r.queryIDs(ctx, r.db.QueryContext, q, bookingID)
}

// RoomIDsTx is RoomIDs within the caller's transaction.
func (r *BookingRepo) RoomIDsTx(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]uint64, error) {
    const q = `SELECT room_type_id FROM booking_rooms WHERE booking_id = ? ORDER BY id ASC`
    return r.queryIDs(ctx, tx.QueryContext, q, bookingID)
}

type queryFunc func(ctx context.Context, query string, args ...any) (*sql.Rows, error)

func (r *BookingRepo) queryIDs(ctx context.Context, query queryFunc, q string, args ...any) ([]uint64, error) {
    rows, err := query(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

// StaysByRoomTx returns the stay intervals of every booking that
// includes the given room type, projected down to what the overlap
// detector needs.  Cancelled bookings are included with their status;
// filtering them is the detector's concern, not the query's.
func (r *BookingRepo) StaysByRoomTx(ctx context.Context, tx *sql.Tx, roomTypeID uint64) ([]booking.StayInterval, error) {
    const q = `SELECT b.check_in, b.check_out, b.status
               FROM bookings b
               JOIN booking_rooms br ON br.booking_id = b.id
               WHERE br.room_type_id = ?`
    rows, err := tx.QueryContext(ctx, q, roomTypeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    stays := make([]booking.StayInterval, 0)
    for rows.Next() {
        var s booking.StayInterval
        if err := rows.Scan(&s.CheckIn, &s.CheckOut, &s.Status); err != nil {
            return nil, err
        }
        stays = append(stays, s)
    }
    return stays, rows.Err()
}

// StaysByRoom is StaysByRoomTx outside a transaction, used by the
// read-only availability endpoint.
func (r *BookingRepo) StaysByRoom(ctx context.Context, roomTypeID uint64) ([]booking.StayInterval, error) {
    const q = `SELECT b.check_in, b.check_out, b.status
               FROM bookings b
               JOIN booking_rooms br ON br.booking_id = b.id
               WHERE br.room_type_id = ?`
    rows, err := r.db.QueryContext(ctx, q, roomTypeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    stays := make([]booking.StayInterval, 0)
    for rows.Next() {
        var s booking.StayInterval
        if err := rows.Scan(&s.CheckIn, &s.CheckOut, &s.Status); err != nil {
            return nil, err
        }
        stays = append(stays, s)
    }
    return stays, rows.Err()
}

// GetByID retrieves a booking by its ID.  It returns
// ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    var b model.Booking
    if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// GetByIDTx is GetByID within the caller's transaction, used by the
// settlement flow so the read and the version-checked update see the
// same snapshot.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    var b model.Booking
    if err := scanBooking(tx.QueryRowContext(ctx, q, id), &b); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// List returns bookings ordered by creation time descending.  When
// status is non-empty only bookings in that state are returned.
func (r *BookingRepo) List(ctx context.Context, status string) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings`
    var args []interface{}
    if status != "" {
        q += ` WHERE status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        if err := scanBooking(rows, &b); err != nil {
            return nil, err
        }
        result = append(result, b)
    }
    return result, rows.Err()
}

// UpdateStatusTx moves a booking between lifecycle states within the
// caller's transaction.  The allowed source states guard against
// skipping steps, e.g. checking in a cancelled booking.  Returns
// ErrBookingNotFound when the row does not exist and ErrConflict when
// it exists but is not in an allowed source state.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, to string, from ...string) error {
    q := `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
    args := []interface{}{to, id}
    if len(from) > 0 {
        placeholders := make([]string, len(from))
        for i, s := range from {
            placeholders[i] = "?"
            args = append(args, s)
        }
        q += ` AND status IN (` + strings.Join(placeholders, ",") + `)`
    }
    res, err := tx.ExecContext(ctx, q, args...)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var current string
        err := tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = ?`, id).Scan(&current)
        if errors.Is(err, sql.ErrNoRows) {
            return ErrBookingNotFound
        }
        if err != nil {
            return err
        }
        if current == to {
            return nil // already there, treat as idempotent
        }
        return ErrConflict
    }
    return nil
}

// SettleTx writes the computed settlement back to the booking row,
// guarded by the optimistic version check: the update only applies
// when the stored version still matches the one the caller read.  A
// zero-row update on an existing booking means another session
// settled it in between, reported as ErrConflict.
func (r *BookingRepo) SettleTx(ctx context.Context, tx *sql.Tx, id, version uint64, s booking.Settlement, settledAt *time.Time) error {
    const q = `UPDATE bookings
               SET paid_cents = ?, payment_status = ?, is_settled = ?, settled_at = ?,
                   version = version + 1, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND version = ?`
    res, err := tx.ExecContext(ctx, q, s.TotalPaidCents, s.PaymentStatus, s.IsSettled, settledAt, id, version)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var exists uint64
        err := tx.QueryRowContext(ctx, `SELECT id FROM bookings WHERE id = ?`, id).Scan(&exists)
        if errors.Is(err, sql.ErrNoRows) {
            return ErrBookingNotFound
        }
        if err != nil {
            return err
        }
        return ErrConflict
    }
    return nil
}
