package services

import (
	"errors"
	"testing"
	"time"

	"cabin-backend/models"
	"cabin-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedBookings creates n bookings with totalPrice = i*100 and alternating
// status, oldest first.
func seedBookings(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	statuses := []string{
		models.BookingStatusUnconfirmed,
		models.BookingStatusCheckedIn,
		models.BookingStatusCheckedOut,
	}
	for i := 1; i <= n; i++ {
		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		end := start.AddDate(0, 0, 2)
		booking := models.Booking{
			StartDate:  &start,
			EndDate:    &end,
			NumNights:  2,
			NumGuests:  2,
			Status:     statuses[i%len(statuses)],
			TotalPrice: float64(i * 100),
		}
		require.NoError(t, db.Create(&booking).Error)
	}
}

func TestGetBookingsPagination(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	seedBookings(t, svc.DB, 25)

	asc := &SortBy{Field: "totalPrice", Direction: "asc"}

	page1, count, err := svc.GetBookings(QuerySpec{SortBy: asc, Page: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 25, count)
	require.Len(t, page1, PageSize)
	assert.Equal(t, 100.0, page1[0].TotalPrice)
	assert.Equal(t, 1000.0, page1[len(page1)-1].TotalPrice)

	// page 3 with page size 10 is rows 20..29; only 5 rows remain
	page3, count, err := svc.GetBookings(QuerySpec{SortBy: asc, Page: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 25, count, "count is independent of the page slice")
	require.Len(t, page3, 5)
	assert.Equal(t, 2100.0, page3[0].TotalPrice)
	assert.Equal(t, 2500.0, page3[len(page3)-1].TotalPrice)
}

func TestGetBookingsSortDirection(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	seedBookings(t, svc.DB, 12)

	asc, _, err := svc.GetBookings(QuerySpec{SortBy: &SortBy{Field: "totalPrice", Direction: "asc"}, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 100.0, asc[0].TotalPrice)

	// anything that is not "asc" sorts descending
	desc, _, err := svc.GetBookings(QuerySpec{SortBy: &SortBy{Field: "totalPrice", Direction: "desc"}, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, desc[0].TotalPrice)
}

func TestGetBookingsFilter(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	seedBookings(t, svc.DB, 12)

	rows, count, err := svc.GetBookings(QuerySpec{
		Filter: &Filter{Field: "status", Value: models.BookingStatusUnconfirmed},
		Page:   1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
	for _, b := range rows {
		assert.Equal(t, models.BookingStatusUnconfirmed, b.Status)
	}
}

func TestGetBookingsRejectsUnknownFields(t *testing.T) {
	svc := NewBookingService(newTestDB(t))

	_, _, err := svc.GetBookings(QuerySpec{Filter: &Filter{Field: "password_hash", Value: "x"}, Page: 1})
	assert.True(t, errors.Is(err, ErrList))

	_, _, err = svc.GetBookings(QuerySpec{SortBy: &SortBy{Field: "id; DROP TABLE bookings", Direction: "asc"}, Page: 1})
	assert.True(t, errors.Is(err, ErrList))
}

func TestCheckInMergesBreakfast(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	booking := models.Booking{Status: models.BookingStatusUnconfirmed, CabinPrice: 400, TotalPrice: 400}
	require.NoError(t, svc.DB.Create(&booking).Error)

	checked, err := svc.CheckIn(booking.ID, &Breakfast{HasBreakfast: true, ExtrasPrice: 45, TotalPrice: 445})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedIn, checked.Status)
	assert.True(t, checked.IsPaid)
	assert.True(t, checked.HasBreakfast)
	assert.Equal(t, 45.0, checked.ExtrasPrice)
	assert.Equal(t, 445.0, checked.TotalPrice)
}

func TestCheckInWithoutBreakfastLeavesPricing(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	booking := models.Booking{Status: models.BookingStatusUnconfirmed, TotalPrice: 400}
	require.NoError(t, svc.DB.Create(&booking).Error)

	checked, err := svc.CheckIn(booking.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedIn, checked.Status)
	assert.True(t, checked.IsPaid)
	assert.False(t, checked.HasBreakfast)
	assert.Equal(t, 400.0, checked.TotalPrice)
}

func TestStatusNeverMovesBackward(t *testing.T) {
	svc := NewBookingService(newTestDB(t))

	checkedOut := models.Booking{Status: models.BookingStatusCheckedOut, TotalPrice: 100}
	require.NoError(t, svc.DB.Create(&checkedOut).Error)

	_, err := svc.CheckIn(checkedOut.ID, nil)
	assert.True(t, errors.Is(err, ErrMutationRejected))

	_, err = svc.CheckOut(checkedOut.ID)
	assert.True(t, errors.Is(err, ErrMutationRejected))

	unconfirmed := models.Booking{Status: models.BookingStatusUnconfirmed}
	require.NoError(t, svc.DB.Create(&unconfirmed).Error)

	// check-out without check-in is a skipped step, also rejected
	_, err = svc.CheckOut(unconfirmed.ID)
	assert.True(t, errors.Is(err, ErrMutationRejected))

	// and the rejected transitions wrote nothing
	var reloaded models.Booking
	require.NoError(t, svc.DB.First(&reloaded, unconfirmed.ID).Error)
	assert.Equal(t, models.BookingStatusUnconfirmed, reloaded.Status)
	assert.False(t, reloaded.IsPaid)
}

func TestCheckOut(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	booking := models.Booking{Status: models.BookingStatusCheckedIn, IsPaid: true}
	require.NoError(t, svc.DB.Create(&booking).Error)

	out, err := svc.CheckOut(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedOut, out.Status)
}

func TestGetBookingMissing(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	_, err := svc.GetBooking(9999)
	assert.True(t, errors.Is(err, ErrLookup))
}

func TestUpdateBookingReturnsFreshRow(t *testing.T) {
	svc := NewBookingService(newTestDB(t))
	booking := models.Booking{Status: models.BookingStatusUnconfirmed, Observations: ""}
	require.NoError(t, svc.DB.Create(&booking).Error)

	updated, err := svc.UpdateBooking(booking.ID, map[string]interface{}{"observations": "late arrival"})
	require.NoError(t, err)
	assert.Equal(t, "late arrival", updated.Observations)
}

func TestGetStaysTodayActivity(t *testing.T) {
	svc := NewBookingService(newTestDB(t))

	today, err := utils.ParseISO(utils.GetToday())
	require.NoError(t, err)
	yesterday := today.AddDate(0, 0, -1)

	arriving := models.Booking{Status: models.BookingStatusUnconfirmed, StartDate: &today}
	departing := models.Booking{Status: models.BookingStatusCheckedIn, StartDate: &yesterday, EndDate: &today}
	done := models.Booking{Status: models.BookingStatusCheckedOut, StartDate: &yesterday, EndDate: &today}
	require.NoError(t, svc.DB.Create(&arriving).Error)
	require.NoError(t, svc.DB.Create(&departing).Error)
	require.NoError(t, svc.DB.Create(&done).Error)

	stays, err := svc.GetStaysTodayActivity()
	require.NoError(t, err)
	require.Len(t, stays, 2)

	ids := []uint{stays[0].ID, stays[1].ID}
	assert.Contains(t, ids, arriving.ID)
	assert.Contains(t, ids, departing.ID)
}

func TestGetDashboardStats(t *testing.T) {
	svc := NewBookingService(newTestDB(t))

	require.NoError(t, svc.DB.Create(&models.Cabin{Name: "001", MaxCapacity: 2, RegularPrice: 100}).Error)
	require.NoError(t, svc.DB.Create(&models.Cabin{Name: "002", MaxCapacity: 4, RegularPrice: 200}).Error)

	start := time.Now().UTC().AddDate(0, 0, -2)
	bookings := []models.Booking{
		{Status: models.BookingStatusCheckedIn, StartDate: &start, NumNights: 3, TotalPrice: 300},
		{Status: models.BookingStatusCheckedOut, StartDate: &start, NumNights: 4, TotalPrice: 500},
		{Status: models.BookingStatusUnconfirmed, StartDate: &start, NumNights: 2, TotalPrice: 200},
	}
	for i := range bookings {
		require.NoError(t, svc.DB.Create(&bookings[i]).Error)
	}

	stats, err := svc.GetDashboardStats(7)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.NumBookings)
	assert.Equal(t, 1000.0, stats.Sales)
	assert.Equal(t, 2, stats.CheckinsCount)
	// 7 nights sold over 7 days x 2 cabins = 50%
	assert.Equal(t, 50, stats.OccupancyRate)
}
