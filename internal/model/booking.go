package model

import "time"

// Booking lifecycle statuses as stored in bookings.status.
const (
    BookingStatusConfirmed  = "confirmed"
    BookingStatusCheckedIn  = "checked_in"
    BookingStatusCheckedOut = "checked_out"
    BookingStatusCancelled  = "cancelled"
)

// Booking records a guest's reservation of one or more room types over
// a date range.  Room associations live in the `booking_rooms` join
// table so a single booking can cover multiple categories.  Check-in
// and check-out are full timestamps: the time of day matters for
// conflict detection (a checkout at 11:00 does not collide with a
// check-in at 11:00 the same day), while pricing only looks at the
// date components.
//
// Financial fields are integer cents.  TotalAmountCents is always
// recomputed from its inputs (nightly total, discount, tax) and never
// edited independently.  Version backs the optimistic concurrency
// check on settlement: two staff settling the same booking race on
// the version column instead of silently overwriting each other.
//
// Fields:
//  ID               – primary key identifier.
//  GuestName        – full name of the guest.
//  GuestEmail       – contact email.
//  GuestPhone       – contact phone.
//  GuestAddress     – postal address (nullable).
//  CheckIn          – check-in instant (date + time of day).
//  CheckOut         – check-out instant, strictly after CheckIn.
//  Adults           – number of adults.
//  Children         – number of children.
//  BaseAmountCents  – room charge before discount and tax.
//  DiscountCents    – discount applied to the base amount.
//  TaxCents         – tax added on top of the discounted base.
//  TotalAmountCents – base - discount + tax.
//  PaidCents        – payments received so far.
//  PaymentStatus    – pending, partial or paid.
//  Status           – confirmed, checked_in, checked_out or cancelled.
//  IsSettled        – whether the booking has been fully settled.
//  SettledAt        – when settlement completed (nullable).
//  Version          – optimistic concurrency counter.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
    ID               uint64     `json:"id"`                      // bookings.id
    GuestName        string     `json:"guest_name"`              // bookings.guest_name
    GuestEmail       string     `json:"guest_email"`             // bookings.guest_email
    GuestPhone       string     `json:"guest_phone"`             // bookings.guest_phone
    GuestAddress     *string    `json:"guest_address,omitempty"` // bookings.guest_address (nullable)
    CheckIn          time.Time  `json:"check_in"`                // bookings.check_in
    CheckOut         time.Time  `json:"check_out"`               // bookings.check_out
    Adults           uint32     `json:"adults"`                  // bookings.adults
    Children         uint32     `json:"children"`                // bookings.children
    BaseAmountCents  int64      `json:"base_amount_cents"`       // bookings.base_amount_cents
    DiscountCents    int64      `json:"discount_cents"`          // bookings.discount_cents
    TaxCents         int64      `json:"tax_cents"`               // bookings.tax_cents
    TotalAmountCents int64      `json:"total_amount_cents"`      // bookings.total_amount_cents
    PaidCents        int64      `json:"paid_cents"`              // bookings.paid_cents
    PaymentStatus    string     `json:"payment_status"`          // bookings.payment_status
    Status           string     `json:"status"`                  // bookings.status
    IsSettled        bool       `json:"is_settled"`              // bookings.is_settled
    SettledAt        *time.Time `json:"settled_at,omitempty"`    // bookings.settled_at (nullable)
    Version          uint64     `json:"version"`                 // bookings.version
    CreatedAt        time.Time  `json:"created_at"`              // bookings.created_at
    UpdatedAt        time.Time  `json:"updated_at"`              // bookings.updated_at
}

// BookingRoom links a booking to one of its room types.  Each row in
// `booking_rooms` represents a single category included in the stay.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – reference to the booking.
//  RoomTypeID – room category included in the booking.
//  CreatedAt  – creation timestamp.
type BookingRoom struct {
    ID         uint64    `json:"id"`           // booking_rooms.id
    BookingID  uint64    `json:"booking_id"`   // booking_rooms.booking_id
    RoomTypeID uint64    `json:"room_type_id"` // booking_rooms.room_type_id
    CreatedAt  time.Time `json:"created_at"`   // booking_rooms.created_at
}
