package repository_test

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-back-office/internal/booking"
    "github.com/iliyamo/hotel-back-office/internal/repository"
)

func TestSettleTxReleasesRoomsOnce(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    bookings := repository.NewBookingRepo(db)
    rooms := repository.NewRoomTypeRepo(db)

    settledAt := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)
    settlement := booking.Settle(5000, 500, 200, 0, 4700)
    require.True(t, settlement.IsSettled)

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE bookings`).
        WithArgs(settlement.TotalPaidCents, settlement.PaymentStatus, settlement.IsSettled, settledAt, uint64(7), uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    // join rows carry a duplicate room id; the release must touch each room once
    mock.ExpectQuery(`SELECT room_type_id FROM booking_rooms`).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows([]string{"room_type_id"}).AddRow(2).AddRow(5).AddRow(2))
    mock.ExpectExec(`UPDATE room_types SET status = \?`).
        WithArgs("available", uint64(2), uint64(5)).
        WillReturnResult(sqlmock.NewResult(0, 2))
    mock.ExpectCommit()

    ctx := context.Background()
    tx, err := db.BeginTx(ctx, nil)
    require.NoError(t, err)

    require.NoError(t, bookings.SettleTx(ctx, tx, 7, 3, settlement, &settledAt))

    ids, err := bookings.RoomIDsTx(ctx, tx, 7)
    require.NoError(t, err)
    release := booking.RoomsToRelease(ids)
    require.Equal(t, []uint64{2, 5}, release)

    require.NoError(t, rooms.ReleaseTx(ctx, tx, release))
    require.NoError(t, tx.Commit())
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleTxStaleVersionConflict(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    bookings := repository.NewBookingRepo(db)
    settlement := booking.Settle(5000, 500, 200, 0, 2000)

    mock.ExpectBegin()
    // another session already bumped the version, so the guarded update matches nothing
    mock.ExpectExec(`UPDATE bookings`).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(`SELECT id FROM bookings`).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
    mock.ExpectRollback()

    ctx := context.Background()
    tx, err := db.BeginTx(ctx, nil)
    require.NoError(t, err)

    err = bookings.SettleTx(ctx, tx, 7, 2, settlement, nil)
    require.ErrorIs(t, err, repository.ErrConflict)
    require.NoError(t, tx.Rollback())
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleTxMissingBooking(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    bookings := repository.NewBookingRepo(db)
    settlement := booking.Settle(5000, 0, 0, 0, 5000)

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE bookings`).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery(`SELECT id FROM bookings`).
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))
    mock.ExpectRollback()

    ctx := context.Background()
    tx, err := db.BeginTx(ctx, nil)
    require.NoError(t, err)

    err = bookings.SettleTx(ctx, tx, 99, 1, settlement, nil)
    require.ErrorIs(t, err, repository.ErrBookingNotFound)
    require.NoError(t, tx.Rollback())
    require.NoError(t, mock.ExpectationsWereMet())
}
