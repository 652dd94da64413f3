package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
)

// BookingStore persists bookings. Deletes are permanent.
type BookingStore interface {
	Create(b *models.Booking) error
	ByID(id uint) (*models.Booking, error)
	Save(b *models.Booking) error
	Delete(id uint) error
	ListByCustomer(customerID uint, status models.BookingStatus) ([]models.Booking, error)
	ListByProvider(providerID uint, status models.BookingStatus) ([]models.Booking, error)
}

// ProviderStore resolves provider profiles for existence and ownership checks.
type ProviderStore interface {
	ByID(id uint) (*models.Provider, error)
	ByUserID(userID uint) (*models.Provider, error)
}

// SlotStore is the only writer of TimeSlot.Available.
//
// Claim is the conditional form used when a booking takes a slot: it succeeds
// only if the slot is still available, so two concurrent bookings cannot both
// take it. MarkUnavailable and MarkAvailable set the flag unconditionally and
// are idempotent; MarkAvailable frees a slot when the booking that held it is
// cancelled or deleted.
type SlotStore interface {
	FindSlot(providerID uint, date, slotTime string) (*models.TimeSlot, error)
	Claim(slotID uint) error
	MarkUnavailable(slotID uint) error
	MarkAvailable(slotID uint) error
	HeldByActiveBooking(slotID uint) (bool, error)
}

// NewSlotStore returns a SlotStore over the given handle, which may be a
// transaction.
func NewSlotStore(db *gorm.DB) SlotStore {
	return &gormSlotStore{db: db}
}

// ReopenSlot marks a slot available again unless a non-cancelled booking still
// holds it. It is the only way a provider may reopen a slot; freeing a slot on
// cancellation or deletion goes through MarkAvailable directly because there
// the holding booking is the one letting go.
func ReopenSlot(slots SlotStore, slotID uint) error {
	held, err := slots.HeldByActiveBooking(slotID)
	if err != nil {
		return err
	}
	if held {
		return ErrSlotBooked
	}
	return slots.MarkAvailable(slotID)
}

type gormBookingStore struct {
	db *gorm.DB
}

func (s *gormBookingStore) Create(b *models.Booking) error {
	return s.db.Create(b).Error
}

func (s *gormBookingStore) ByID(id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.db.
		Preload("Customer").
		Preload("Provider").
		Preload("Provider.User").
		Preload("Provider.Categories").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *gormBookingStore) Save(b *models.Booking) error {
	return s.db.Save(b).Error
}

func (s *gormBookingStore) Delete(id uint) error {
	return s.db.Delete(&models.Booking{}, id).Error
}

func (s *gormBookingStore) list(query *gorm.DB, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var bookings []models.Booking
	err := query.
		Preload("Customer").
		Preload("Provider").
		Preload("Provider.User").
		Preload("Provider.Categories").
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (s *gormBookingStore) ListByCustomer(customerID uint, status models.BookingStatus) ([]models.Booking, error) {
	return s.list(s.db.Where("customer_id = ?", customerID), status)
}

func (s *gormBookingStore) ListByProvider(providerID uint, status models.BookingStatus) ([]models.Booking, error) {
	return s.list(s.db.Where("provider_id = ?", providerID), status)
}

type gormProviderStore struct {
	db *gorm.DB
}

func (s *gormProviderStore) ByID(id uint) (*models.Provider, error) {
	var p models.Provider
	err := s.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormProviderStore) ByUserID(userID uint) (*models.Provider, error) {
	var p models.Provider
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type gormSlotStore struct {
	db *gorm.DB
}

func (s *gormSlotStore) FindSlot(providerID uint, date, slotTime string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := s.db.
		Joins("JOIN availabilities ON availabilities.id = time_slots.availability_id").
		Where("availabilities.provider_id = ? AND availabilities.date = ? AND time_slots.time = ?",
			providerID, date, slotTime).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No seeded slot for that day/time; the booking is unconstrained.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *gormSlotStore) Claim(slotID uint) error {
	res := s.db.Model(&models.TimeSlot{}).
		Where("id = ? AND available = ?", slotID, true).
		Update("available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent booking.
		return ErrSlotUnavailable
	}
	return nil
}

func (s *gormSlotStore) MarkUnavailable(slotID uint) error {
	return s.db.Model(&models.TimeSlot{}).Where("id = ?", slotID).Update("available", false).Error
}

func (s *gormSlotStore) MarkAvailable(slotID uint) error {
	return s.db.Model(&models.TimeSlot{}).Where("id = ?", slotID).Update("available", true).Error
}

func (s *gormSlotStore) HeldByActiveBooking(slotID uint) (bool, error) {
	var held int64
	err := s.db.Model(&models.Booking{}).
		Where("time_slot_id = ? AND status <> ?", slotID, models.StatusCancelled).
		Count(&held).Error
	if err != nil {
		return false, err
	}
	return held > 0, nil
}
