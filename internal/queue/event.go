// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingSettledEvent is published when a booking is fully settled.
// It carries enough of the financial snapshot for downstream
// consumers to log or feed accounting without querying the primary
// database.
type BookingSettledEvent struct {
    BookingID        uint64   `json:"booking_id"`
    InvoiceNumber    string   `json:"invoice_number"`
    GuestName        string   `json:"guest_name"`
    RoomTypeIDs      []uint64 `json:"room_type_ids"`
    CheckIn          string   `json:"check_in"`
    CheckOut         string   `json:"check_out"`
    FinalAmountCents int64    `json:"final_amount_cents"`
    TotalPaidCents   int64    `json:"total_paid_cents"`
    BalanceCents     int64    `json:"balance_cents"`
    SettledBy        uint64   `json:"settled_by"`
    SettledAt        string   `json:"settled_at"`
}
