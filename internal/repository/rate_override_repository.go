package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/hotel-back-office/internal/booking"
    "github.com/iliyamo/hotel-back-office/internal/model"
)

// RateOverrideRepo manages per-date nightly price overrides.  The
// rate_overrides table carries a unique key on (room_type_id, date)
// so a calendar day can never price ambiguously; rewriting a price
// for the same day goes through the upsert rather than a second row.
type RateOverrideRepo struct {
    db *sql.DB
}

// NewRateOverrideRepo constructs a RateOverrideRepo with the given DB handle.
func NewRateOverrideRepo(db *sql.DB) *RateOverrideRepo {
    return &RateOverrideRepo{db: db}
}

// Upsert writes the override price for one (room, date) pair,
// replacing any existing row for that day.
func (r *RateOverrideRepo) Upsert(ctx context.Context, roomTypeID uint64, date time.Time, priceCents int64, note *string) error {
    const q = `INSERT INTO rate_overrides (room_type_id, date, price_cents, note)
               VALUES (?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE price_cents = VALUES(price_cents), note = VALUES(note), updated_at = CURRENT_TIMESTAMP`
    _, err := r.db.ExecContext(ctx, q, roomTypeID, booking.DateOf(date), priceCents, note)
    return err
}

// Delete removes the override for one (room, date) pair.  Deleting a
// day without an override is a no-op.
func (r *RateOverrideRepo) Delete(ctx context.Context, roomTypeID uint64, date time.Time) error {
    const q = `DELETE FROM rate_overrides WHERE room_type_id = ? AND date = ?`
    _, err := r.db.ExecContext(ctx, q, roomTypeID, booking.DateOf(date))
    return err
}

// ListForRange returns a room's overrides with dates in [from, to],
// ordered by date ascending, for the pricing calendar display.
func (r *RateOverrideRepo) ListForRange(ctx context.Context, roomTypeID uint64, from, to time.Time) ([]model.RateOverride, error) {
    const q = `SELECT id, room_type_id, date, price_cents, note, created_at, updated_at
               FROM rate_overrides
               WHERE room_type_id = ? AND date >= ? AND date <= ?
               ORDER BY date ASC, id ASC`
    rows, err := r.db.QueryContext(ctx, q, roomTypeID, booking.DateOf(from), booking.DateOf(to))
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.RateOverride, 0)
    for rows.Next() {
        var o model.RateOverride
        var note sql.NullString
        if err := rows.Scan(&o.ID, &o.RoomTypeID, &o.Date, &o.PriceCents, &note, &o.CreatedAt, &o.UpdatedAt); err != nil {
            return nil, err
        }
        if note.Valid {
            n := note.String
            o.Note = &n
        }
        result = append(result, o)
    }
    return result, rows.Err()
}

// MapForRange returns the overrides of [from, to] keyed by calendar
// date for the availability calculator.  Should the table ever hold
// duplicate rows for a day despite the unique key, the lowest-id row
// wins deterministically.
func (r *RateOverrideRepo) MapForRange(ctx context.Context, roomTypeID uint64, from, to time.Time) (map[string]int64, error) {
    overrides, err := r.ListForRange(ctx, roomTypeID, from, to)
    if err != nil {
        return nil, err
    }
    m := make(map[string]int64, len(overrides))
    for _, o := range overrides {
        key := booking.DateOf(o.Date).Format(booking.DateKey)
        if _, ok := m[key]; ok {
            continue
        }
        m[key] = o.PriceCents
    }
    return m, nil
}
