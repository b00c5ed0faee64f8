package booking_test

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-back-office/internal/booking"
)

func timeZero() time.Time { return time.Time{} }

func TestQuoteStayBasePriceOnly(t *testing.T) {
    q := booking.QuoteStay(at("2024-03-01T14:00"), at("2024-03-04T11:00"), 1000, nil)
    require.Equal(t, 3, q.Nights)
    require.Equal(t, int64(3000), q.TotalCents)
    require.Equal(t, 1000.0, q.PerNightCents)
}

func TestQuoteStayOverridePrecedence(t *testing.T) {
    overrides := map[string]int64{
        "2024-03-02": 1500, // middle night only
    }
    q := booking.QuoteStay(at("2024-03-01T14:00"), at("2024-03-04T11:00"), 1000, overrides)
    require.Equal(t, 3, q.Nights)
    require.Equal(t, int64(3500), q.TotalCents)
    require.InDelta(t, 1166.67, q.PerNightCents, 0.01)
}

func TestQuoteStayCheckoutNightNotCharged(t *testing.T) {
    // an override on the checkout date must not affect the price
    overrides := map[string]int64{
        "2024-03-04": 9999,
    }
    q := booking.QuoteStay(at("2024-03-01T14:00"), at("2024-03-04T11:00"), 1000, overrides)
    require.Equal(t, int64(3000), q.TotalCents)
}

func TestQuoteStayMissingDates(t *testing.T) {
    q := booking.QuoteStay(at("2024-03-01T14:00"), timeZero(), 1000, nil)
    require.Zero(t, q.Nights)
    require.Zero(t, q.TotalCents)
    require.Zero(t, q.PerNightCents)
}

func TestNightsFloor(t *testing.T) {
    // same calendar date yields one night, not zero
    require.Equal(t, 1, booking.Nights(at("2024-03-01T14:00"), at("2024-03-01T18:00")))
    // inverted range also floors at one
    require.Equal(t, 1, booking.Nights(at("2024-03-05T14:00"), at("2024-03-01T11:00")))
    // checkout earlier in the day than check-in still counts whole dates
    require.Equal(t, 3, booking.Nights(at("2024-03-01T14:00"), at("2024-03-04T11:00")))
}

func TestCombineQuotesAdditivity(t *testing.T) {
    roomA := booking.QuoteStay(at("2024-03-01T14:00"), at("2024-03-03T11:00"), 1000, nil)
    roomB := booking.QuoteStay(at("2024-03-01T14:00"), at("2024-03-03T11:00"), 1200, nil)
    combined := booking.CombineQuotes(roomA, roomB)
    require.Equal(t, 2, combined.Nights)
    require.Equal(t, 2200.0, combined.PerNightCents)
    require.Equal(t, int64(4400), combined.TotalCents)
}

func TestStayTotal(t *testing.T) {
    require.Equal(t, int64(4700), booking.StayTotal(5000, 500, 200))
}

func TestTodayPrice(t *testing.T) {
    overrides := map[string]int64{"2024-03-02": 1500}
    require.Equal(t, int64(1500), booking.TodayPrice(at("2024-03-02T09:30"), 1000, overrides))
    require.Equal(t, int64(1000), booking.TodayPrice(at("2024-03-03T09:30"), 1000, overrides))
}
