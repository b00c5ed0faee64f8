package booking_test

import (
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-back-office/internal/booking"
)

func TestSettleArithmetic(t *testing.T) {
    cases := []struct {
        name       string
        paid       int64
        additional int64
        wantBal    int64
        wantStatus string
        settled    bool
    }{
        {"exact payment", 0, 4700, 0, booking.PaymentStatusPaid, true},
        {"partial payment", 0, 2000, 2700, booking.PaymentStatusPartial, false},
        {"no payment", 0, 0, 4700, booking.PaymentStatusPending, false},
        {"topped up to full", 2000, 2700, 0, booking.PaymentStatusPaid, true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            s := booking.Settle(5000, 500, 200, tc.paid, tc.additional)
            require.Equal(t, int64(4700), s.FinalAmountCents)
            require.Equal(t, tc.wantBal, s.BalanceCents)
            require.Equal(t, tc.wantStatus, s.PaymentStatus)
            require.Equal(t, tc.settled, s.IsSettled)
        })
    }
}

// Over-payment is deliberately not clamped: a negative balance
// classifies as paid and settles the booking. This pins the
// permissive behavior so a future clamp shows up as a test change.
func TestSettleAcceptsOverPayment(t *testing.T) {
    s := booking.Settle(5000, 500, 200, 0, 5000)
    require.Equal(t, int64(-300), s.BalanceCents)
    require.Equal(t, booking.PaymentStatusPaid, s.PaymentStatus)
    require.True(t, s.IsSettled)
}

func TestSettleIdempotentResettlement(t *testing.T) {
    first := booking.Settle(5000, 500, 200, 0, 4700)
    require.True(t, first.IsSettled)

    // settling again with no additional payment changes nothing
    again := booking.Settle(5000, 500, 200, first.TotalPaidCents, 0)
    require.Equal(t, first.BalanceCents, again.BalanceCents)
    require.True(t, again.IsSettled)
    require.Equal(t, booking.PaymentStatusPaid, again.PaymentStatus)
}

func TestSettleDiscountBeforeTax(t *testing.T) {
    // tax is additive on top of the discounted base, never discounted itself
    s := booking.Settle(10000, 1000, 700, 0, 0)
    require.Equal(t, int64(9700), s.FinalAmountCents)
}

func TestRoomsToRelease(t *testing.T) {
    require.Equal(t, []uint64{3, 1, 7}, booking.RoomsToRelease([]uint64{3, 1, 3, 7, 1}))
    require.Empty(t, booking.RoomsToRelease([]uint64{0}))
    require.Empty(t, booking.RoomsToRelease(nil))
}
