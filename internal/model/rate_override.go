package model

import "time"

// RateOverride replaces a room type's base nightly price for a single
// calendar day.  The `rate_overrides` table holds at most one row per
// (room_type_id, date) pair, enforced with a unique key; superseding
// a price means rewriting the row, not versioning it.  The date column
// is a DATE with no time component.
//
// Fields:
//  ID         – primary key identifier.
//  RoomTypeID – room category the override applies to.
//  Date       – calendar day (midnight UTC).
//  PriceCents – nightly price in cents for that day.
//  Note       – optional operator note (e.g. "new year surcharge").
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type RateOverride struct {
    ID         uint64    `json:"id"`             // rate_overrides.id
    RoomTypeID uint64    `json:"room_type_id"`   // rate_overrides.room_type_id
    Date       time.Time `json:"date"`           // rate_overrides.date
    Note       *string   `json:"note,omitempty"` // rate_overrides.note (nullable)
    PriceCents int64     `json:"price_cents"`    // rate_overrides.price_cents
    CreatedAt  time.Time `json:"created_at"`     // rate_overrides.created_at
    UpdatedAt  time.Time `json:"updated_at"`     // rate_overrides.updated_at
}
