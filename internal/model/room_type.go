package model

import "time"

// Room type operational statuses as stored in room_types.status.
const (
    RoomStatusAvailable   = "available"
    RoomStatusBooked      = "booked"
    RoomStatusMaintenance = "maintenance"
)

// RoomType represents a bookable category of room as stored in the
// `room_types` table.  The hotel books categories rather than
// individually numbered rooms, so a RoomType carries the shared
// capacity and nightly price for every room of that kind.  Status
// reflects the current operational state and flips between
// "available" and "booked" as bookings are created and settled.
// MaintenanceUntil is set exactly when the status is "maintenance"
// and records the day the room returns to service.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – display name of the category (e.g. "Deluxe Twin").
//  Capacity         – maximum number of adults.
//  BasePriceCents   – default nightly price in cents, overridable per date.
//  Status           – operational state (available, booked, maintenance).
//  MaintenanceUntil – end of the maintenance window (nullable).
//  IsActive         – soft-delete flag; inactive rooms are hidden, never removed.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type RoomType struct {
    ID               uint64     `json:"id"`                          // room_types.id
    Name             string     `json:"name"`                        // room_types.name
    Capacity         uint32     `json:"capacity"`                    // room_types.capacity
    BasePriceCents   int64      `json:"base_price_cents"`            // room_types.base_price_cents
    Status           string     `json:"status"`                      // room_types.status
    MaintenanceUntil *time.Time `json:"maintenance_until,omitempty"` // room_types.maintenance_until (nullable)
    IsActive         bool       `json:"is_active"`                   // room_types.is_active
    CreatedAt        time.Time  `json:"created_at"`                  // room_types.created_at
    UpdatedAt        time.Time  `json:"updated_at"`                  // room_types.updated_at
}
