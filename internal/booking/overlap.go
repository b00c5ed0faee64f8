// Package booking holds the computational core of the reservation
// system: stay-interval conflict detection, nightly pricing with
// per-date overrides, and settlement arithmetic.  Everything here is
// pure; repositories feed rows in and handlers write results back.
package booking

import (
    "sort"
    "time"

    "github.com/iliyamo/hotel-back-office/internal/model"
)

// StayInterval is the slice of a booking that conflict detection
// needs: the two instants of the stay and the booking status.
// Handlers project full booking rows down to this shape instead of
// passing whole records around.
type StayInterval struct {
    CheckIn  time.Time // check-in instant (date + time of day)
    CheckOut time.Time // check-out instant
    Status   string    // booking status; cancelled stays never conflict
}

// ConflictResult reports whether a candidate stay collides with
// existing bookings, and which calendar days are inside the
// colliding stays.  BlockedDates is what the front-end greys out in
// its date picker; it uses date components only and covers each
// conflicting stay from check-in date through check-out date
// inclusive, deduplicated and sorted ascending.
type ConflictResult struct {
    Conflict     bool        `json:"conflict"`
    BlockedDates []time.Time `json:"blocked_dates"`
}

// Overlaps implements the half-open interval test on [aIn, aOut) and
// [bIn, bOut): the intervals collide iff aIn < bOut && aOut > bIn.
// Back-to-back stays where one checkout instant equals the next
// check-in instant therefore do not collide.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
    return aIn.Before(bOut) && aOut.After(bIn)
}

// FindConflicts checks a candidate stay against the existing bookings
// of the same room.  Cancelled bookings are skipped before the
// interval test.  An empty booking set yields no conflict; the
// function never fails.
func FindConflicts(checkIn, checkOut time.Time, existing []StayInterval) ConflictResult {
    res := ConflictResult{BlockedDates: []time.Time{}}
    seen := make(map[time.Time]struct{})
    for _, stay := range existing {
        if stay.Status == model.BookingStatusCancelled {
            continue
        }
        if !Overlaps(checkIn, checkOut, stay.CheckIn, stay.CheckOut) {
            continue
        }
        res.Conflict = true
        // Expand the conflicting stay day by day, check-in date through
        // check-out date inclusive, using date components only.
        for d := DateOf(stay.CheckIn); !d.After(DateOf(stay.CheckOut)); d = d.AddDate(0, 0, 1) {
            if _, ok := seen[d]; ok {
                continue
            }
            seen[d] = struct{}{}
            res.BlockedDates = append(res.BlockedDates, d)
        }
    }
    sort.Slice(res.BlockedDates, func(i, j int) bool {
        return res.BlockedDates[i].Before(res.BlockedDates[j])
    })
    return res
}

// DateOf strips the time-of-day component, returning midnight UTC of
// the same calendar date.
func DateOf(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
