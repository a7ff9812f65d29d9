package queries_test

import (
	"testing"
	"time"

	"cargo/internal/adapters/out/postgres/storetest"
	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func TestNewListOrdersQuery(t *testing.T) {
	actor := user.Actor{ID: kernel.NewUUID(), Role: user.Admin}

	q, err := queries.NewListOrdersQuery(actor, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultListLimit, q.Limit())

	_, err = queries.NewListOrdersQuery(actor, nil, nil, queries.MaxListLimit+1, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	bad := order.Unknown
	_, err = queries.NewListOrdersQuery(actor, nil, &bad, 10, 0)
	require.Error(t, err)

	_, err = queries.NewListOrdersQuery(user.Actor{}, nil, nil, 10, 0)
	require.Error(t, err)
}

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler queries.ListOrdersQueryHandler
	alice   *user.User
	bob     *user.User
	staff   *user.User
	base    time.Time
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}

func (s *ListOrdersQueryHandlerTestSuite) SetupTest() {
	s.db = storetest.OpenSQLite(s.T())
	s.handler = queries.NewListOrdersQueryHandler(s.db, services.NewOrderAccessPolicy())
	s.alice = storetest.SeedUser(s.T(), s.db, "alice@example.rw", user.Customer)
	s.bob = storetest.SeedUser(s.T(), s.db, "bob@example.rw", user.Customer)
	s.staff = storetest.SeedUser(s.T(), s.db, "wh@example.rw", user.WarehouseManager)
	s.base = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	storeOrder(s.T(), s.db, s.alice, "A-old", s.base, s.staff.ID(), order.Purchased)
	storeOrder(s.T(), s.db, s.bob, "B-mid", s.base.Add(time.Hour), s.staff.ID())
	storeOrder(s.T(), s.db, s.alice, "A-new", s.base.Add(2*time.Hour), s.staff.ID())
}

func (s *ListOrdersQueryHandlerTestSuite) list(actor user.Actor, owner *kernel.UUID, status *order.Status) ([]queries.ListOrdersQueryResponse, error) {
	q, err := queries.NewListOrdersQuery(actor, owner, status, 0, 0)
	s.Require().NoError(err)
	return s.handler.Handle(s.T().Context(), q)
}

func names(list []queries.ListOrdersQueryResponse) []string {
	out := make([]string, 0, len(list))
	for _, o := range list {
		out = append(out, o.ProductName)
	}
	return out
}

func (s *ListOrdersQueryHandlerTestSuite) TestStaffSeesAllNewestFirst() {
	list, err := s.list(s.staff.Actor(), nil, nil)

	s.Require().NoError(err)
	s.Equal([]string{"A-new", "B-mid", "A-old"}, names(list))
	s.Equal(s.bob.FullName(), list[1].OwnerName)
	s.Equal(order.Purchased, list[2].Status)
}

func (s *ListOrdersQueryHandlerTestSuite) TestStaffFiltersByOwnerAndStatus() {
	owner := s.alice.ID()
	list, err := s.list(s.staff.Actor(), &owner, nil)
	s.Require().NoError(err)
	s.Equal([]string{"A-new", "A-old"}, names(list))

	requested := order.Requested
	list, err = s.list(s.staff.Actor(), nil, &requested)
	s.Require().NoError(err)
	s.Equal([]string{"A-new", "B-mid"}, names(list))
}

func (s *ListOrdersQueryHandlerTestSuite) TestCustomerSeesOnlyOwnOrders() {
	list, err := s.list(s.bob.Actor(), nil, nil)

	s.Require().NoError(err)
	s.Equal([]string{"B-mid"}, names(list))
}

func (s *ListOrdersQueryHandlerTestSuite) TestCustomerAskingForOthersIsForbidden() {
	owner := s.alice.ID()

	_, err := s.list(s.bob.Actor(), &owner, nil)

	s.Require().ErrorIs(err, errs.ErrActionIsForbidden)
}

func (s *ListOrdersQueryHandlerTestSuite) TestPaging() {
	q, err := queries.NewListOrdersQuery(s.staff.Actor(), nil, nil, 2, 1)
	s.Require().NoError(err)

	list, err := s.handler.Handle(s.T().Context(), q)

	s.Require().NoError(err)
	s.Equal([]string{"B-mid", "A-old"}, names(list))
}

func (s *ListOrdersQueryHandlerTestSuite) TestEmptyResultIsEmptySlice() {
	fresh := storetest.SeedUser(s.T(), s.db, "new@example.rw", user.Customer)

	list, err := s.list(fresh.Actor(), nil, nil)

	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}
