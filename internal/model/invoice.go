package model

import "time"

// Invoice is an immutable snapshot of a settled booking's financials,
// written once at settlement time so the front desk can reprint the
// figures later even if the booking row is edited afterwards.
//
// Fields:
//  ID               – primary key identifier.
//  Number           – human-facing invoice number (unique).
//  BookingID        – booking the snapshot was taken from.
//  GuestName        – guest name at settlement time.
//  BaseAmountCents  – pre-discount, pre-tax room charge.
//  DiscountCents    – discount applied.
//  TaxCents         – tax added.
//  FinalAmountCents – base - discount + tax.
//  PaidCents        – total received, may exceed FinalAmountCents.
//  IssuedBy         – staff user who performed the settlement.
//  IssuedAt         – when the invoice was written.
type Invoice struct {
    ID               uint64    `json:"id"`                 // invoices.id
    Number           string    `json:"number"`             // invoices.number
    BookingID        uint64    `json:"booking_id"`         // invoices.booking_id
    GuestName        string    `json:"guest_name"`         // invoices.guest_name
    BaseAmountCents  int64     `json:"base_amount_cents"`  // invoices.base_amount_cents
    DiscountCents    int64     `json:"discount_cents"`     // invoices.discount_cents
    TaxCents         int64     `json:"tax_cents"`          // invoices.tax_cents
    FinalAmountCents int64     `json:"final_amount_cents"` // invoices.final_amount_cents
    PaidCents        int64     `json:"paid_cents"`         // invoices.paid_cents
    IssuedBy         uint64    `json:"issued_by"`          // invoices.issued_by (users.id)
    IssuedAt         time.Time `json:"issued_at"`          // invoices.issued_at
}
