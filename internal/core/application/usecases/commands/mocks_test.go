package commands_test

import (
	"context"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time { return fixedNow })
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) ListAfter(
	ctx context.Context,
	afterSeq uint64,
	notAfter time.Time,
	limit int,
) ([]ports.LedgerRecord, error) {
	args := m.Called(ctx, afterSeq, notAfter, limit)
	records, _ := args.Get(0).([]ports.LedgerRecord)
	return records, args.Error(1)
}

func (m *MockLedgerRepository) LockCursor(ctx context.Context, name string) (uint64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedgerRepository) SaveCursor(ctx context.Context, name string, seq uint64) error {
	return m.Called(ctx, name, seq).Error(0)
}

type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *mockTx) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *mockTx) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockUserUoW struct{ mockTx }

func (m *MockUserUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

type MockLedgerUoW struct{ mockTx }

func (m *MockLedgerUoW) LedgerRepository() ports.LedgerRepository {
	return m.Called().Get(0).(ports.LedgerRepository)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	return m.Called().Get(0).(commands.LedgerUoW)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash string, password string) error {
	return m.Called(hash, password).Error(0)
}

type MockLedgerPublisher struct{ mock.Mock }

func (m *MockLedgerPublisher) Publish(ctx context.Context, records []ports.LedgerRecord) error {
	return m.Called(ctx, records).Error(0)
}
