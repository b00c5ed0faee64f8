// Package repository contains data access logic for the hotel's
// persistent state. This file manages room types: the bookable
// categories whose status flips between available and booked as
// bookings are created and settled.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/hotel-back-office/internal/model"
)

// RoomTypeRepo manages persistence for room types.
type RoomTypeRepo struct {
    db *sql.DB
}

// NewRoomTypeRepo constructs a RoomTypeRepo with the given DB handle.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo {
    return &RoomTypeRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories, such as a booking
// insert followed by a room status update.
func (r *RoomTypeRepo) DB() *sql.DB {
    return r.db
}

const roomTypeColumns = `id, name, capacity, base_price_cents, status, maintenance_until, is_active, created_at, updated_at`

func scanRoomType(row interface{ Scan(...any) error }, rt *model.RoomType) error {
    var maint sql.NullTime
    if err := row.Scan(&rt.ID, &rt.Name, &rt.Capacity, &rt.BasePriceCents, &rt.Status,
        &maint, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
        return err
    }
    if maint.Valid {
        t := maint.Time
        rt.MaintenanceUntil = &t
    }
    return nil
}

// Create inserts a new room type and assigns the generated ID back to
// the row.  Status defaults to 'available' in the database; the
// inserted row is queried back so DB-default fields are populated.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
    const q = `INSERT INTO room_types (name, capacity, base_price_cents) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, rt.Name, rt.Capacity, rt.BasePriceCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rt.ID = uint64(id)
    const sel = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ?`
    return scanRoomType(r.db.QueryRowContext(ctx, sel, rt.ID), rt)
}

// GetByID retrieves a room type by its ID.  It returns
// ErrRoomNotFound when no row matches.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
    const q = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ?`
    var rt model.RoomType
    if err := scanRoomType(r.db.QueryRowContext(ctx, q, id), &rt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &rt, nil
}

// List returns room types ordered by name.  When activeOnly is true,
// soft-deleted rows are filtered out.
func (r *RoomTypeRepo) List(ctx context.Context, activeOnly bool) ([]model.RoomType, error) {
    q := `SELECT ` + roomTypeColumns + ` FROM room_types`
    if activeOnly {
        q += ` WHERE is_active = 1`
    }
    q += ` ORDER BY name ASC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.RoomType, 0)
    for rows.Next() {
        var rt model.RoomType
        if err := scanRoomType(rows, &rt); err != nil {
            return nil, err
        }
        result = append(result, rt)
    }
    return result, rows.Err()
}

// Update rewrites a room type's editable attributes.  Status and
// maintenance fields are managed through SetMaintenance and the
// booking flows, not here.  Returns ErrRoomNotFound when the row
// does not exist.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *model.RoomType) error {
    const q = `UPDATE room_types
               SET name = ?, capacity = ?, base_price_cents = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, rt.Name, rt.Capacity, rt.BasePriceCents, rt.IsActive, rt.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, rt.ID); err != nil {
            return err
        }
    }
    return nil
}

// SetMaintenance toggles the maintenance state of a room type.  When
// until is non-nil the room enters maintenance with that end date;
// when nil the room returns to available and the end date is cleared.
// The two fields move together so the row never carries a
// maintenance date outside maintenance status.
func (r *RoomTypeRepo) SetMaintenance(ctx context.Context, id uint64, until *time.Time) error {
    var (
        res sql.Result
        err error
    )
    if until != nil {
        const q = `UPDATE room_types SET status = 'maintenance', maintenance_until = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
        res, err = r.db.ExecContext(ctx, q, until, id)
    } else {
        const q = `UPDATE room_types SET status = 'available', maintenance_until = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
        res, err = r.db.ExecContext(ctx, q, id)
    }
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, id); err != nil {
            return err
        }
    }
    return nil
}

// MarkBookedTx flips the given room types to 'booked' within the
// caller's transaction.  Used during booking creation so the status
// change commits or rolls back with the booking insert.
func (r *RoomTypeRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
    return r.bulkStatusTx(ctx, tx, ids, "booked")
}

// ReleaseTx flips the given room types back to 'available' within the
// caller's transaction.  Used on settlement and cancellation.
func (r *RoomTypeRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
    return r.bulkStatusTx(ctx, tx, ids, "available")
}

func (r *RoomTypeRepo) bulkStatusTx(ctx context.Context, tx *sql.Tx, ids []uint64, status string) error {
    if len(ids) == 0 {
        return nil
    }
    placeholders := make([]string, 0, len(ids))
    args := make([]interface{}, 0, len(ids)+1)
    args = append(args, status)
    for _, id := range ids {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `UPDATE room_types SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id IN (` +
        strings.Join(placeholders, ",") + `)`
    _, err := tx.ExecContext(ctx, q, args...)
    return err
}
