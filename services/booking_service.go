package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"cabin-backend/models"
	"cabin-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageSize is the fixed page size for booking lists.
const PageSize = 10

// Filter is a single-field equality predicate.
type Filter struct {
	Field string
	Value string
}

type SortBy struct {
	Field     string
	Direction string
}

// QuerySpec describes one list request: optional filter, optional sort and
// a 1-based page. It replaces ad-hoc query chaining so the composed query
// can be asserted against.
type QuerySpec struct {
	Filter *Filter
	SortBy *SortBy
	Page   int
}

// bookingColumns maps the API's field names to columns; anything outside
// this map is rejected before touching the database.
var bookingColumns = map[string]string{
	"status":     "status",
	"startDate":  "start_date",
	"endDate":    "end_date",
	"numNights":  "num_nights",
	"numGuests":  "num_guests",
	"totalPrice": "total_price",
	"created_at": "created_at",
}

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// GetBookings composes filter -> order -> page slice and returns the page's
// rows plus the total matching count, which is independent of the slice.
func (s *BookingService) GetBookings(spec QuerySpec) ([]models.Booking, int64, error) {
	query := s.DB.Model(&models.Booking{})

	if spec.Filter != nil {
		col, ok := bookingColumns[spec.Filter.Field]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown filter field %q", ErrList, spec.Filter.Field)
		}
		query = query.Where(col+" = ?", spec.Filter.Value)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("bookings could not be counted: %v", err)
		return nil, 0, ErrList
	}

	if spec.SortBy != nil {
		col, ok := bookingColumns[spec.SortBy.Field]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown sort field %q", ErrList, spec.SortBy.Field)
		}
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   spec.SortBy.Direction != "asc",
		})
	}

	if spec.Page > 0 {
		query = query.Offset((spec.Page - 1) * PageSize).Limit(PageSize)
	}

	var bookings []models.Booking
	if err := query.Preload("Cabin").Preload("Guest").Find(&bookings).Error; err != nil {
		log.Printf("bookings could not be loaded: %v", err)
		return nil, 0, ErrList
	}
	return bookings, count, nil
}

func (s *BookingService) GetBooking(id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Cabin").Preload("Guest").First(&booking, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("booking %d could not be loaded: %v", id, err)
		}
		return booking, ErrLookup
	}
	return booking, nil
}

// UpdateBooking applies a partial column update and returns the fresh row.
// The update either commits whole or not at all.
func (s *BookingService) UpdateBooking(id uint, updates map[string]interface{}) (models.Booking, error) {
	if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		log.Printf("booking %d could not be updated: %v", id, err)
		return models.Booking{}, ErrMutationRejected
	}
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		log.Printf("booking %d could not be read back: %v", id, err)
		return models.Booking{}, ErrLookup
	}
	return booking, nil
}

func (s *BookingService) DeleteBooking(id uint) error {
	if err := s.DB.Delete(&models.Booking{}, id).Error; err != nil {
		log.Printf("booking %d could not be deleted: %v", id, err)
		return ErrMutationRejected
	}
	return nil
}

// Breakfast is the optional check-in addendum.
type Breakfast struct {
	HasBreakfast bool    `json:"hasBreakfast"`
	ExtrasPrice  float64 `json:"extrasPrice"`
	TotalPrice   float64 `json:"totalPrice"`
}

// CheckIn moves a booking from unconfirmed to checked-in, marks it paid and
// merges the breakfast addendum when one was added at the desk. A booking
// in any other status is rejected before anything is written.
func (s *BookingService) CheckIn(id uint, breakfast *Breakfast) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("booking %d could not be loaded for check-in: %v", id, err)
			}
			return ErrLookup
		}
		if booking.Status != models.BookingStatusUnconfirmed {
			return fmt.Errorf("%w: booking #%d is already %s", ErrMutationRejected, id, booking.Status)
		}

		updates := map[string]interface{}{
			"status":  models.BookingStatusCheckedIn,
			"is_paid": true,
		}
		if breakfast != nil {
			updates["has_breakfast"] = breakfast.HasBreakfast
			updates["extras_price"] = breakfast.ExtrasPrice
			updates["total_price"] = breakfast.TotalPrice
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			log.Printf("booking %d could not be checked in: %v", id, err)
			return ErrMutationRejected
		}
		return tx.First(&booking, id).Error
	})
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// CheckOut moves a checked-in booking to checked-out. Status never moves
// backward.
func (s *BookingService) CheckOut(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("booking %d could not be loaded for check-out: %v", id, err)
			}
			return ErrLookup
		}
		if booking.Status != models.BookingStatusCheckedIn {
			return fmt.Errorf("%w: booking #%d is %s, not checked-in", ErrMutationRejected, id, booking.Status)
		}
		if err := tx.Model(&booking).Update("status", models.BookingStatusCheckedOut).Error; err != nil {
			log.Printf("booking %d could not be checked out: %v", id, err)
			return ErrMutationRejected
		}
		return tx.First(&booking, id).Error
	})
	if err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// GetBookingsAfterDate returns bookings created between the given instant
// and the end of today. Feeds the sales side of the dashboard.
func (s *BookingService) GetBookingsAfterDate(after time.Time) ([]models.Booking, error) {
	todayEnd, err := utils.ParseISO(utils.GetToday(utils.TodayOptions{End: true}))
	if err != nil {
		return nil, ErrList
	}
	var bookings []models.Booking
	if err := s.DB.
		Where("created_at >= ? AND created_at <= ?", after, todayEnd).
		Find(&bookings).Error; err != nil {
		log.Printf("recent bookings could not be loaded: %v", err)
		return nil, ErrList
	}
	return bookings, nil
}

// GetStaysAfterDate returns stays starting between the given instant and
// the start of today, with their guests.
func (s *BookingService) GetStaysAfterDate(after time.Time) ([]models.Booking, error) {
	todayStart, err := utils.ParseISO(utils.GetToday())
	if err != nil {
		return nil, ErrList
	}
	var stays []models.Booking
	if err := s.DB.Preload("Guest").
		Where("start_date >= ? AND start_date <= ?", after, todayStart).
		Find(&stays).Error; err != nil {
		log.Printf("recent stays could not be loaded: %v", err)
		return nil, ErrList
	}
	return stays, nil
}

// GetStaysTodayActivity returns today's arrivals (unconfirmed, starting
// today) and departures (checked-in, ending today).
func (s *BookingService) GetStaysTodayActivity() ([]models.Booking, error) {
	todayStart, err := utils.ParseISO(utils.GetToday())
	if err != nil {
		return nil, ErrList
	}
	var stays []models.Booking
	if err := s.DB.Preload("Guest").
		Where("(status = ? AND start_date = ?) OR (status = ? AND end_date = ?)",
			models.BookingStatusUnconfirmed, todayStart,
			models.BookingStatusCheckedIn, todayStart).
		Order("created_at").
		Find(&stays).Error; err != nil {
		log.Printf("today's activity could not be loaded: %v", err)
		return nil, ErrList
	}
	return stays, nil
}

// DashboardStats aggregates the recent-bookings window for the dashboard.
type DashboardStats struct {
	NumBookings   int     `json:"numBookings"`
	Sales         float64 `json:"sales"`
	CheckinsCount int     `json:"checkins"`
	OccupancyRate int     `json:"occupancyRate"`
}

// GetDashboardStats computes bookings count, sales, check-ins and occupancy
// over the last N days. Occupancy is nights sold over nights available
// (days x cabins), as a rounded percentage.
func (s *BookingService) GetDashboardStats(lastDays int) (DashboardStats, error) {
	after := time.Now().UTC().AddDate(0, 0, -lastDays)

	bookings, err := s.GetBookingsAfterDate(after)
	if err != nil {
		return DashboardStats{}, err
	}
	stays, err := s.GetStaysAfterDate(after)
	if err != nil {
		return DashboardStats{}, err
	}

	var cabinCount int64
	if err := s.DB.Model(&models.Cabin{}).Count(&cabinCount).Error; err != nil {
		log.Printf("cabins could not be counted: %v", err)
		return DashboardStats{}, ErrList
	}

	stats := DashboardStats{NumBookings: len(bookings)}
	for _, b := range bookings {
		stats.Sales += b.TotalPrice
	}

	var nights int
	for _, stay := range stays {
		if stay.Status == models.BookingStatusUnconfirmed {
			continue
		}
		stats.CheckinsCount++
		nights += stay.NumNights
	}
	if cabinCount > 0 && lastDays > 0 {
		rate := float64(nights) / (float64(lastDays) * float64(cabinCount))
		stats.OccupancyRate = int(math.Round(rate * 100))
	}
	return stats, nil
}
