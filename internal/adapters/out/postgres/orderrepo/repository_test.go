package orderrepo_test

import (
	"testing"
	"time"

	"cargo/internal/adapters/out/postgres/orderrepo"
	"cargo/internal/adapters/out/postgres/storetest"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockChangeTracker struct {
	mock.Mock
}

func (m *MockChangeTracker) TrackStatusChanges(changes []order.StatusChanged) {
	m.Called(changes)
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockChangeTracker
	staffID    kernel.UUID
	ownerID    kernel.UUID
	createdAt  time.Time
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	s.db = storetest.OpenSQLite(s.T())
	s.tracker = new(MockChangeTracker)
	s.tracker.On("TrackStatusChanges", mock.Anything).Return()
	s.repository = orderrepo.NewGormOrderRepository(s.db, s.tracker)
	s.staffID = kernel.NewUUID()
	s.ownerID = kernel.NewUUID()
	s.createdAt = time.Date(2026, 3, 1, 8, 30, 0, 123456789, time.UTC)
}

func (s *OrderRepositoryTestSuite) newOrder() *order.Order {
	details, err := order.NewProductDetails(
		"https://detail.1688.com/offer/6620.html",
		"Stainless steel water bottle",
		24,
		"Blue, 750ml",
		"Double wall",
		"Pack in pairs",
		"screenshots/6620.png",
	)
	s.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), s.ownerID, details, s.ownerID, s.createdAt)
	s.Require().NoError(err)
	return o
}

func (s *OrderRepositoryTestSuite) TestAdd_ThenGet_RoundTrips() {
	ctx := s.T().Context()
	o := s.newOrder()
	written := o.StatusChanges()

	s.Require().NoError(s.repository.Add(ctx, o))

	s.Empty(o.PendingEntries())
	s.Equal(1, o.PersistedVersion())
	loaded, err := s.repository.Get(ctx, o.ID())
	s.Require().NoError(err)
	s.True(loaded.IsEqual(o))
	s.Equal(s.ownerID, loaded.OwnerID())
	s.Equal(order.Requested, loaded.Status())
	s.Equal(o.Details(), loaded.Details())
	s.True(s.createdAt.Truncate(time.Microsecond).Equal(loaded.CreatedAt()))
	s.Equal(1, loaded.PersistedVersion())
	s.Empty(loaded.PendingEntries())

	history := loaded.History()
	s.Require().Len(history, 1)
	s.Equal(o.History()[0].ID(), history[0].ID())
	s.Equal(order.Requested, history[0].Status())
	s.Equal(s.ownerID, history[0].ActorID())
	s.tracker.AssertCalled(s.T(), "TrackStatusChanges", written)
}

func (s *OrderRepositoryTestSuite) TestAdd_Duplicate_ReturnsAlreadyExists() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.Require().NoError(s.repository.Add(ctx, o))

	err := s.repository.Add(ctx, o)

	s.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (s *OrderRepositoryTestSuite) TestUpdate_AppendsLedgerInOrder() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.Require().NoError(s.repository.Add(ctx, o))

	loaded, err := s.repository.GetForUpdate(ctx, o.ID())
	s.Require().NoError(err)
	s.Require().NoError(loaded.AdvanceStatus(order.Purchased, s.staffID, s.createdAt.Add(time.Hour)))
	s.Require().NoError(loaded.AdvanceStatus(order.InWarehouse, s.staffID, s.createdAt.Add(2*time.Hour)))
	s.Require().NoError(s.repository.Update(ctx, loaded))

	reloaded, err := s.repository.Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.InWarehouse, reloaded.Status())
	s.Equal(3, reloaded.Version())
	s.True(s.createdAt.Add(2 * time.Hour).Truncate(time.Microsecond).Equal(reloaded.UpdatedAt()))

	statuses := make([]order.Status, 0, 3)
	for _, e := range reloaded.History() {
		statuses = append(statuses, e.Status())
	}
	s.Equal([]order.Status{order.Requested, order.Purchased, order.InWarehouse}, statuses)
}

func (s *OrderRepositoryTestSuite) TestAddThenUpdate_SameAggregate() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.Require().NoError(s.repository.Add(ctx, o))

	s.Require().NoError(o.AdvanceStatus(order.Purchased, s.staffID, s.createdAt.Add(time.Hour)))
	s.Require().NoError(s.repository.Update(ctx, o))
	s.Require().NoError(o.AdvanceStatus(order.InWarehouse, s.staffID, s.createdAt.Add(2*time.Hour)))
	s.Require().NoError(s.repository.Update(ctx, o))

	s.Empty(o.PendingEntries())
	s.Equal(3, o.PersistedVersion())

	reloaded, err := s.repository.Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.InWarehouse, reloaded.Status())
	s.Equal(3, reloaded.Version())
	s.Len(reloaded.History(), 3)

	var tracked []order.Status
	for _, call := range s.tracker.Calls {
		for _, change := range call.Arguments.Get(0).([]order.StatusChanged) {
			tracked = append(tracked, change.To)
		}
	}
	s.Equal([]order.Status{order.Requested, order.Purchased, order.InWarehouse}, tracked)
}

func (s *OrderRepositoryTestSuite) TestUpdate_NothingPending_TracksNothing() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.Require().NoError(s.repository.Add(ctx, o))

	s.Require().NoError(s.repository.Update(ctx, o))

	s.tracker.AssertNumberOfCalls(s.T(), "TrackStatusChanges", 1)
}

func (s *OrderRepositoryTestSuite) TestUpdate_StaleVersion_ReturnsConcurrentModification() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.Require().NoError(s.repository.Add(ctx, o))

	first, err := s.repository.Get(ctx, o.ID())
	s.Require().NoError(err)
	second, err := s.repository.Get(ctx, o.ID())
	s.Require().NoError(err)

	s.Require().NoError(first.AdvanceStatus(order.Purchased, s.staffID, time.Now()))
	s.Require().NoError(s.repository.Update(ctx, first))

	s.Require().NoError(second.AdvanceStatus(order.Declined, s.staffID, time.Now()))
	err = s.repository.Update(ctx, second)

	s.Require().ErrorIs(err, errs.ErrConcurrentModification)
	reloaded, err := s.repository.Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.Purchased, reloaded.Status())
	s.Len(reloaded.History(), 2)
}

func (s *OrderRepositoryTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	o := s.newOrder()

	err := s.repository.Update(s.T().Context(), o)

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	_, err := s.repository.Get(s.T().Context(), kernel.NewUUID())

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestGet_ZeroID_IsValidationError() {
	_, err := s.repository.Get(s.T().Context(), kernel.UUID{})

	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func TestEntryToDomain_RejectsUnknownStatus(t *testing.T) {
	_, err := orderrepo.EntryToDomain(orderrepo.HistoryEntryDTO{
		ID:         kernel.NewUUID().Value(),
		Status:     "LOST_AT_SEA",
		RecordedAt: time.Now(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
