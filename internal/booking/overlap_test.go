package booking_test

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-back-office/internal/booking"
    "github.com/iliyamo/hotel-back-office/internal/model"
)

func at(s string) time.Time {
    t, err := time.Parse("2006-01-02T15:04", s)
    if err != nil {
        panic(err)
    }
    return t.UTC()
}

func day(s string) time.Time {
    t, err := time.Parse("2006-01-02", s)
    if err != nil {
        panic(err)
    }
    return t.UTC()
}

func TestOverlapsSymmetry(t *testing.T) {
    cases := []struct {
        name                   string
        aIn, aOut, bIn, bOut   time.Time
        want                   bool
    }{
        {"disjoint", at("2024-03-01T14:00"), at("2024-03-03T11:00"), at("2024-03-05T14:00"), at("2024-03-07T11:00"), false},
        {"contained", at("2024-03-01T14:00"), at("2024-03-10T11:00"), at("2024-03-03T14:00"), at("2024-03-05T11:00"), true},
        {"partial", at("2024-03-01T14:00"), at("2024-03-05T11:00"), at("2024-03-04T14:00"), at("2024-03-08T11:00"), true},
        {"identical", at("2024-03-01T14:00"), at("2024-03-05T11:00"), at("2024-03-01T14:00"), at("2024-03-05T11:00"), true},
        {"touching", at("2024-03-01T14:00"), at("2024-03-05T11:00"), at("2024-03-05T11:00"), at("2024-03-08T11:00"), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            require.Equal(t, tc.want, booking.Overlaps(tc.aIn, tc.aOut, tc.bIn, tc.bOut))
            // swapping the intervals must never change the answer
            require.Equal(t, tc.want, booking.Overlaps(tc.bIn, tc.bOut, tc.aIn, tc.aOut))
        })
    }
}

func TestFindConflictsHalfOpenBoundary(t *testing.T) {
    existing := []booking.StayInterval{
        {CheckIn: at("2024-03-08T14:00"), CheckOut: at("2024-03-10T11:00"), Status: model.BookingStatusConfirmed},
    }

    // candidate starting exactly at the existing checkout instant does not conflict
    res := booking.FindConflicts(at("2024-03-10T11:00"), at("2024-03-12T11:00"), existing)
    require.False(t, res.Conflict)
    require.Empty(t, res.BlockedDates)

    // one minute earlier and the stays collide
    res = booking.FindConflicts(at("2024-03-10T10:59"), at("2024-03-12T11:00"), existing)
    require.True(t, res.Conflict)
}

func TestFindConflictsSkipsCancelled(t *testing.T) {
    existing := []booking.StayInterval{
        {CheckIn: at("2024-03-08T14:00"), CheckOut: at("2024-03-10T11:00"), Status: model.BookingStatusCancelled},
    }
    res := booking.FindConflicts(at("2024-03-08T14:00"), at("2024-03-10T11:00"), existing)
    require.False(t, res.Conflict)
    require.Empty(t, res.BlockedDates)
}

func TestFindConflictsEmptySet(t *testing.T) {
    res := booking.FindConflicts(at("2024-03-01T14:00"), at("2024-03-05T11:00"), nil)
    require.False(t, res.Conflict)
    require.NotNil(t, res.BlockedDates)
    require.Empty(t, res.BlockedDates)
}

func TestFindConflictsBlockedDates(t *testing.T) {
    existing := []booking.StayInterval{
        {CheckIn: at("2024-03-08T14:00"), CheckOut: at("2024-03-10T11:00"), Status: model.BookingStatusConfirmed},
        {CheckIn: at("2024-03-09T14:00"), CheckOut: at("2024-03-11T11:00"), Status: model.BookingStatusCheckedIn},
    }
    res := booking.FindConflicts(at("2024-03-09T14:00"), at("2024-03-12T11:00"), existing)
    require.True(t, res.Conflict)
    // both stays expand day by day, check-in date through check-out date
    // inclusive, without duplicating the shared days
    require.Equal(t, []time.Time{
        day("2024-03-08"), day("2024-03-09"), day("2024-03-10"), day("2024-03-11"),
    }, res.BlockedDates)
}
