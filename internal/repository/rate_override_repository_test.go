package repository_test

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-back-office/internal/repository"
)

func TestMapForRangeLowestIDWins(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    rates := repository.NewRateOverrideRepo(db)

    day := time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC)
    created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
    cols := []string{"id", "room_type_id", "date", "price_cents", "note", "created_at", "updated_at"}

    // two rows for the same day: the lower id must decide the price
    mock.ExpectQuery(`SELECT id, room_type_id, date, price_cents`).
        WithArgs(uint64(4), day, day.AddDate(0, 0, 1)).
        WillReturnRows(sqlmock.NewRows(cols).
            AddRow(11, 4, day, int64(9900), nil, created, created).
            AddRow(12, 4, day, int64(12000), nil, created, created).
            AddRow(13, 4, day.AddDate(0, 0, 1), int64(8000), nil, created, created))

    m, err := rates.MapForRange(context.Background(), 4, day, day.AddDate(0, 0, 1))
    require.NoError(t, err)
    require.Equal(t, int64(9900), m["2024-07-14"])
    require.Equal(t, int64(8000), m["2024-07-15"])
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRewritesDay(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    rates := repository.NewRateOverrideRepo(db)
    day := time.Date(2024, 7, 14, 18, 30, 0, 0, time.UTC) // time of day is stripped

    mock.ExpectExec(`INSERT INTO rate_overrides`).
        WithArgs(uint64(4), time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), int64(9900), nil).
        WillReturnResult(sqlmock.NewResult(11, 1))

    require.NoError(t, rates.Upsert(context.Background(), 4, day, 9900, nil))
    require.NoError(t, mock.ExpectationsWereMet())
}
