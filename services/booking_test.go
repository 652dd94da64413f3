package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
)

// MockBookingStore is a mock implementation of BookingStore.
type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockBookingStore) ByID(id uint) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) Save(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockBookingStore) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBookingStore) ListByCustomer(customerID uint, status models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(customerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingStore) ListByProvider(providerID uint, status models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(providerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

// MockProviderStore is a mock implementation of ProviderStore.
type MockProviderStore struct {
	mock.Mock
}

func (m *MockProviderStore) ByID(id uint) (*models.Provider, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockProviderStore) ByUserID(userID uint) (*models.Provider, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Provider), args.Error(1)
}

// MockSlotStore is a mock implementation of SlotStore.
type MockSlotStore struct {
	mock.Mock
}

func (m *MockSlotStore) FindSlot(providerID uint, date, slotTime string) (*models.TimeSlot, error) {
	args := m.Called(providerID, date, slotTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeSlot), args.Error(1)
}

func (m *MockSlotStore) Claim(slotID uint) error {
	args := m.Called(slotID)
	return args.Error(0)
}

func (m *MockSlotStore) MarkUnavailable(slotID uint) error {
	args := m.Called(slotID)
	return args.Error(0)
}

func (m *MockSlotStore) MarkAvailable(slotID uint) error {
	args := m.Called(slotID)
	return args.Error(0)
}

func (m *MockSlotStore) HeldByActiveBooking(slotID uint) (bool, error) {
	args := m.Called(slotID)
	return args.Bool(0), args.Error(1)
}

type fixture struct {
	bookings  *MockBookingStore
	providers *MockProviderStore
	slots     *MockSlotStore
	svc       *BookingService
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  new(MockBookingStore),
		providers: new(MockProviderStore),
		slots:     new(MockSlotStore),
	}
	f.svc = &BookingService{
		bookings:  f.bookings,
		providers: f.providers,
		slots:     f.slots,
	}
	return f
}

const (
	customerID   = uint(10)
	providerUser = uint(20)
	strangerID   = uint(99)
)

func provider() *models.Provider {
	return &models.Provider{Model: gorm.Model{ID: 5}, UserID: providerUser}
}

func pendingBooking(slotID *uint) *models.Booking {
	return &models.Booking{
		ID:         1,
		CustomerID: customerID,
		ProviderID: 5,
		Provider:   *provider(),
		Date:       "2026-09-01",
		Time:       "09:00",
		Status:     models.StatusPending,
		TimeSlotID: slotID,
	}
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ProviderID:         5,
		Date:               "2026-09-01",
		Time:               "09:00",
		ServiceAddress:     "12 Main St",
		ProblemDescription: "Leaking sink",
	}
}

func TestCreateMissingFields(t *testing.T) {
	f := newFixture()

	in := validInput()
	in.ServiceAddress = ""
	_, err := f.svc.Create(customerID, in)

	assert.ErrorIs(t, err, ErrMissingFields)
	f.providers.AssertNotCalled(t, "ByID", mock.Anything)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateProviderNotFound(t *testing.T) {
	f := newFixture()
	f.providers.On("ByID", uint(5)).Return(nil, ErrProviderNotFound)

	_, err := f.svc.Create(customerID, validInput())

	assert.ErrorIs(t, err, ErrProviderNotFound)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateSlotUnavailable(t *testing.T) {
	f := newFixture()
	f.providers.On("ByID", uint(5)).Return(provider(), nil)
	f.slots.On("FindSlot", uint(5), "2026-09-01", "09:00").
		Return(&models.TimeSlot{ID: 7, Time: "09:00", Available: false}, nil)

	_, err := f.svc.Create(customerID, validInput())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	f.slots.AssertNotCalled(t, "Claim", mock.Anything)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateClaimsSlot(t *testing.T) {
	f := newFixture()
	slotID := uint(7)
	f.providers.On("ByID", uint(5)).Return(provider(), nil)
	f.slots.On("FindSlot", uint(5), "2026-09-01", "09:00").
		Return(&models.TimeSlot{ID: slotID, Time: "09:00", Available: true}, nil)
	f.slots.On("Claim", slotID).Return(nil)

	var created *models.Booking
	f.bookings.On("Create", mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Booking)
			created.ID = 42
		}).
		Return(nil)
	f.bookings.On("ByID", uint(42)).Return(pendingBooking(&slotID), nil)

	booking, err := f.svc.Create(customerID, validInput())

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, booking.Status)
	if assert.NotNil(t, created.TimeSlotID) {
		assert.Equal(t, slotID, *created.TimeSlotID)
	}
	assert.Equal(t, customerID, created.CustomerID)
	f.slots.AssertExpectations(t)
}

func TestCreateLosesClaimRace(t *testing.T) {
	f := newFixture()
	f.providers.On("ByID", uint(5)).Return(provider(), nil)
	f.slots.On("FindSlot", uint(5), "2026-09-01", "09:00").
		Return(&models.TimeSlot{ID: 7, Time: "09:00", Available: true}, nil)
	f.slots.On("Claim", uint(7)).Return(ErrSlotUnavailable)

	_, err := f.svc.Create(customerID, validInput())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateWithoutSlotRecord(t *testing.T) {
	f := newFixture()
	f.providers.On("ByID", uint(5)).Return(provider(), nil)
	f.slots.On("FindSlot", uint(5), "2026-09-01", "09:00").Return(nil, nil)

	var created *models.Booking
	f.bookings.On("Create", mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Booking)
			created.ID = 42
		}).
		Return(nil)
	f.bookings.On("ByID", uint(42)).Return(pendingBooking(nil), nil)

	_, err := f.svc.Create(customerID, validInput())

	assert.NoError(t, err)
	assert.Nil(t, created.TimeSlotID)
	f.slots.AssertNotCalled(t, "Claim", mock.Anything)
}

func TestCreateInsertFailureFreesSlot(t *testing.T) {
	f := newFixture()
	f.providers.On("ByID", uint(5)).Return(provider(), nil)
	f.slots.On("FindSlot", uint(5), "2026-09-01", "09:00").
		Return(&models.TimeSlot{ID: 7, Time: "09:00", Available: true}, nil)
	f.slots.On("Claim", uint(7)).Return(nil)
	f.bookings.On("Create", mock.Anything).Return(assert.AnError)
	f.slots.On("MarkAvailable", uint(7)).Return(nil)

	_, err := f.svc.Create(customerID, validInput())

	assert.Error(t, err)
	f.slots.AssertCalled(t, "MarkAvailable", uint(7))
}

func TestCreateRollbackFailureStillReturnsInsertError(t *testing.T) {
	f := newFixture()
	f.providers.On("ByID", uint(5)).Return(provider(), nil)
	f.slots.On("FindSlot", uint(5), "2026-09-01", "09:00").
		Return(&models.TimeSlot{ID: 7, Time: "09:00", Available: true}, nil)
	f.slots.On("Claim", uint(7)).Return(nil)
	f.bookings.On("Create", mock.Anything).Return(assert.AnError)
	f.slots.On("MarkAvailable", uint(7)).Return(errors.New("connection reset"))

	_, err := f.svc.Create(customerID, validInput())

	assert.ErrorIs(t, err, assert.AnError)
	f.slots.AssertCalled(t, "MarkAvailable", uint(7))
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newFixture()
	f.bookings.On("ByID", uint(1)).Return(nil, ErrBookingNotFound)

	_, err := f.svc.UpdateStatus(1, customerID, UpdateStatusInput{Status: models.StatusConfirmed})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatusStrangerForbidden(t *testing.T) {
	f := newFixture()
	f.bookings.On("ByID", uint(1)).Return(pendingBooking(nil), nil)

	_, err := f.svc.UpdateStatus(1, strangerID, UpdateStatusInput{Status: models.StatusCancelled})

	assert.ErrorIs(t, err, ErrForbidden)
	f.bookings.AssertNotCalled(t, "Save", mock.Anything)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	f := newFixture()
	f.bookings.On("ByID", uint(1)).Return(pendingBooking(nil), nil)

	_, err := f.svc.UpdateStatus(1, customerID, UpdateStatusInput{Status: "rejected"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusCustomerCannotAdvance(t *testing.T) {
	for _, tc := range []struct {
		from models.BookingStatus
		to   models.BookingStatus
	}{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusInProgress},
		{models.StatusInProgress, models.StatusCompleted},
	} {
		f := newFixture()
		booking := pendingBooking(nil)
		booking.Status = tc.from
		f.bookings.On("ByID", uint(1)).Return(booking, nil)

		_, err := f.svc.UpdateStatus(1, customerID, UpdateStatusInput{Status: tc.to})

		assert.ErrorIs(t, err, ErrForbidden, "%s -> %s by customer", tc.from, tc.to)
		f.bookings.AssertNotCalled(t, "Save", mock.Anything)
	}
}

func TestUpdateStatusProviderAdvances(t *testing.T) {
	for _, tc := range []struct {
		from models.BookingStatus
		to   models.BookingStatus
	}{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusInProgress},
		{models.StatusInProgress, models.StatusCompleted},
	} {
		f := newFixture()
		booking := pendingBooking(nil)
		booking.Status = tc.from
		f.bookings.On("ByID", uint(1)).Return(booking, nil)
		f.bookings.On("Save", booking).Return(nil)

		updated, err := f.svc.UpdateStatus(1, providerUser, UpdateStatusInput{Status: tc.to})

		assert.NoError(t, err, "%s -> %s by provider", tc.from, tc.to)
		assert.Equal(t, tc.to, updated.Status)
		f.slots.AssertNotCalled(t, "MarkAvailable", mock.Anything)
	}
}

func TestUpdateStatusTerminalStatesRejected(t *testing.T) {
	for _, from := range []models.BookingStatus{models.StatusCompleted, models.StatusCancelled} {
		f := newFixture()
		booking := pendingBooking(nil)
		booking.Status = from
		f.bookings.On("ByID", uint(1)).Return(booking, nil)

		_, err := f.svc.UpdateStatus(1, providerUser, UpdateStatusInput{Status: models.StatusPending})

		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", from)
		f.bookings.AssertNotCalled(t, "Save", mock.Anything)
	}
}

func TestUpdateStatusInProgressCannotBeCancelled(t *testing.T) {
	f := newFixture()
	booking := pendingBooking(nil)
	booking.Status = models.StatusInProgress
	f.bookings.On("ByID", uint(1)).Return(booking, nil)

	_, err := f.svc.UpdateStatus(1, customerID, UpdateStatusInput{Status: models.StatusCancelled})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusCancelFreesSlot(t *testing.T) {
	slotID := uint(7)
	for _, caller := range []uint{customerID, providerUser} {
		f := newFixture()
		booking := pendingBooking(&slotID)
		f.bookings.On("ByID", uint(1)).Return(booking, nil)
		f.bookings.On("Save", booking).Return(nil)
		f.slots.On("MarkAvailable", slotID).Return(nil)

		updated, err := f.svc.UpdateStatus(1, caller, UpdateStatusInput{Status: models.StatusCancelled})

		assert.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, updated.Status)
		f.slots.AssertCalled(t, "MarkAvailable", slotID)
	}
}

func TestUpdateStatusCancelWithoutSlotIsNoOp(t *testing.T) {
	f := newFixture()
	booking := pendingBooking(nil)
	f.bookings.On("ByID", uint(1)).Return(booking, nil)
	f.bookings.On("Save", booking).Return(nil)

	_, err := f.svc.UpdateStatus(1, customerID, UpdateStatusInput{Status: models.StatusCancelled})

	assert.NoError(t, err)
	f.slots.AssertNotCalled(t, "MarkAvailable", mock.Anything)
}

func TestUpdateTotalAmountOnly(t *testing.T) {
	f := newFixture()
	booking := pendingBooking(nil)
	f.bookings.On("ByID", uint(1)).Return(booking, nil)
	f.bookings.On("Save", booking).Return(nil)

	amount := 120.50
	updated, err := f.svc.UpdateStatus(1, providerUser, UpdateStatusInput{TotalAmount: &amount})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	if assert.NotNil(t, updated.TotalAmount) {
		assert.Equal(t, amount, *updated.TotalAmount)
	}
}

func TestDeleteByProviderForbidden(t *testing.T) {
	f := newFixture()
	f.bookings.On("ByID", uint(1)).Return(pendingBooking(nil), nil)

	err := f.svc.Delete(1, providerUser)

	assert.ErrorIs(t, err, ErrForbidden)
	f.bookings.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteFreesSlot(t *testing.T) {
	f := newFixture()
	slotID := uint(7)
	f.bookings.On("ByID", uint(1)).Return(pendingBooking(&slotID), nil)
	f.slots.On("MarkAvailable", slotID).Return(nil)
	f.bookings.On("Delete", uint(1)).Return(nil)

	err := f.svc.Delete(1, customerID)

	assert.NoError(t, err)
	f.slots.AssertCalled(t, "MarkAvailable", slotID)
	f.bookings.AssertCalled(t, "Delete", uint(1))
}

func TestDeleteCancelledBookingDoesNotFreeSlot(t *testing.T) {
	f := newFixture()
	slotID := uint(7)
	booking := pendingBooking(&slotID)
	booking.Status = models.StatusCancelled
	f.bookings.On("ByID", uint(1)).Return(booking, nil)
	f.bookings.On("Delete", uint(1)).Return(nil)

	err := f.svc.Delete(1, customerID)

	assert.NoError(t, err)
	f.slots.AssertNotCalled(t, "MarkAvailable", mock.Anything)
}

func TestGetAuthorization(t *testing.T) {
	for _, tc := range []struct {
		caller uint
		ok     bool
	}{
		{customerID, true},
		{providerUser, true},
		{strangerID, false},
	} {
		f := newFixture()
		f.bookings.On("ByID", uint(1)).Return(pendingBooking(nil), nil)

		booking, err := f.svc.Get(1, tc.caller)
		if tc.ok {
			assert.NoError(t, err, "caller %d", tc.caller)
			assert.NotNil(t, booking)
		} else {
			assert.ErrorIs(t, err, ErrForbidden, "caller %d", tc.caller)
		}
	}
}

func TestListAsCustomer(t *testing.T) {
	f := newFixture()
	f.bookings.On("ListByCustomer", customerID, models.StatusPending).
		Return([]models.Booking{*pendingBooking(nil)}, nil)

	bookings, err := f.svc.List(customerID, models.RoleCustomer, models.StatusPending)

	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
	f.providers.AssertNotCalled(t, "ByUserID", mock.Anything)
}

func TestListAsProvider(t *testing.T) {
	f := newFixture()
	f.providers.On("ByUserID", providerUser).Return(provider(), nil)
	f.bookings.On("ListByProvider", uint(5), models.BookingStatus("")).
		Return([]models.Booking{}, nil)

	_, err := f.svc.List(providerUser, models.RoleProvider, "")

	assert.NoError(t, err)
	f.bookings.AssertCalled(t, "ListByProvider", uint(5), models.BookingStatus(""))
}

func TestListAsProviderWithoutProfile(t *testing.T) {
	f := newFixture()
	f.providers.On("ByUserID", customerID).Return(nil, ErrProviderNotFound)

	_, err := f.svc.List(customerID, models.RoleProvider, "")

	assert.ErrorIs(t, err, ErrNotAProvider)
}

func TestListInvalidStatusFilter(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(customerID, models.RoleCustomer, "rejected")

	assert.ErrorIs(t, err, ErrInvalidStatus)
}
