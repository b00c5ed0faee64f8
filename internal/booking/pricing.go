package booking

import "time"

// DateKey is the map key format for per-date rate lookups.
const DateKey = "2006-01-02"

// StayQuote is the priced result of a candidate stay for one room
// set.  TotalCents is the sum of every night's price before discount
// and tax; PerNightCents is the blended nightly rate the booking UI
// displays even when nights carry different override prices.
type StayQuote struct {
    Nights        int     `json:"nights"`
    TotalCents    int64   `json:"total_cents"`
    PerNightCents float64 `json:"per_night_cents"`
}

// Nights returns the number of nights between the check-in and
// check-out dates, ignoring time of day.  The result is floored at 1:
// same-day or inverted ranges should be rejected upstream, but a
// non-positive night count must never reach the price arithmetic.
func Nights(checkIn, checkOut time.Time) int {
    n := int(DateOf(checkOut).Sub(DateOf(checkIn)).Hours() / 24)
    if n < 1 {
        return 1
    }
    return n
}

// NightlyRate resolves the price of a single night: the per-date
// override when one exists for that exact calendar date, otherwise
// the room's base price.
func NightlyRate(night time.Time, basePriceCents int64, overrides map[string]int64) int64 {
    if p, ok := overrides[DateOf(night).Format(DateKey)]; ok {
        return p
    }
    return basePriceCents
}

// QuoteStay prices a candidate stay for one room.  Each night in
// [checkIn, checkOut) is priced as a distinct calendar date — the
// last night charged is the day before checkout — and the blended
// per-night rate is the arithmetic mean across those nights.  Missing
// dates yield a zero quote rather than an error; callers must guard
// against booking with incomplete dates.
func QuoteStay(checkIn, checkOut time.Time, basePriceCents int64, overrides map[string]int64) StayQuote {
    if checkIn.IsZero() || checkOut.IsZero() {
        return StayQuote{}
    }
    nights := Nights(checkIn, checkOut)
    var total int64
    night := DateOf(checkIn)
    for i := 0; i < nights; i++ {
        total += NightlyRate(night, basePriceCents, overrides)
        night = night.AddDate(0, 0, 1)
    }
    return StayQuote{
        Nights:        nights,
        TotalCents:    total,
        PerNightCents: float64(total) / float64(nights),
    }
}

// CombineQuotes aggregates per-room quotes for a multi-room booking.
// Each room is priced independently and the blended rates add: two
// rooms at 1000 and 1200 a night combine to 2200 a night, never a
// recomputation over the merged set.  All quotes must cover the same
// stay, so the night count of the first quote carries over.
func CombineQuotes(quotes ...StayQuote) StayQuote {
    var combined StayQuote
    for _, q := range quotes {
        if combined.Nights == 0 {
            combined.Nights = q.Nights
        }
        combined.TotalCents += q.TotalCents
        combined.PerNightCents += q.PerNightCents
    }
    return combined
}

// StayTotal computes the amount a booking is charged: the room total
// across all nights, minus the discount, plus the tax.
func StayTotal(roomTotalCents, discountCents, taxCents int64) int64 {
    return roomTotalCents - discountCents + taxCents
}

// TodayPrice resolves the nightly price for the current calendar
// date, used by the at-a-glance room cards.  now is passed in rather
// than read from the clock so the lookup stays testable.
func TodayPrice(now time.Time, basePriceCents int64, overrides map[string]int64) int64 {
    return NightlyRate(now, basePriceCents, overrides)
}
