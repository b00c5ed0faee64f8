package booking

// Payment statuses as stored in bookings.payment_status.
const (
    PaymentStatusPending = "pending"
    PaymentStatusPartial = "partial"
    PaymentStatusPaid    = "paid"
)

// Settlement is the computed financial state of a booking after a
// payment is applied.  A non-positive balance marks the booking as
// settled; over-payment is accepted without clamping, so the balance
// may go negative and still classify as paid.  The room-release side
// effect belongs to the caller: when IsSettled flips from false to
// true, every room in the booking must be returned to available.
type Settlement struct {
    FinalAmountCents int64  `json:"final_amount_cents"`
    TotalPaidCents   int64  `json:"total_paid_cents"`
    BalanceCents     int64  `json:"balance_cents"`
    PaymentStatus    string `json:"payment_status"`
    IsSettled        bool   `json:"is_settled"`
}

// Settle computes the final amount, balance and payment status for a
// booking.  The discount applies to the base amount before tax is
// added — the same ordering the invoice snapshot records — so
// final = base - discount + tax.  Calling Settle again on an already
// settled booking with a zero additional payment returns the same
// settled state.
func Settle(baseCents, discountCents, taxCents, paidCents, additionalCents int64) Settlement {
    final := baseCents - discountCents + taxCents
    totalPaid := paidCents + additionalCents
    balance := final - totalPaid

    status := PaymentStatusPending
    switch {
    case balance <= 0:
        status = PaymentStatusPaid
    case totalPaid > 0:
        status = PaymentStatusPartial
    }

    return Settlement{
        FinalAmountCents: final,
        TotalPaidCents:   totalPaid,
        BalanceCents:     balance,
        PaymentStatus:    status,
        IsSettled:        balance <= 0,
    }
}

// RoomsToRelease deduplicates the room ids attached to a booking so
// the release-on-settlement update touches each room exactly once,
// preserving first-seen order.
func RoomsToRelease(roomIDs []uint64) []uint64 {
    out := make([]uint64, 0, len(roomIDs))
    seen := make(map[uint64]struct{}, len(roomIDs))
    for _, id := range roomIDs {
        if id == 0 {
            continue
        }
        if _, ok := seen[id]; ok {
            continue
        }
        seen[id] = struct{}{}
        out = append(out, id)
    }
    return out
}
