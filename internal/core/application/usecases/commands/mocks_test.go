package commands_test

import (
	"context"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) AttachProof(ctx context.Context, id kernel.UUID, p string) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Transition(
	ctx context.Context,
	id kernel.UUID,
	expected, next order.Status,
	actor *kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, id, expected, next, actor)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStudent(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, s order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, s)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRobotRepository struct{ mock.Mock }

func (m *MockRobotRepository) Add(ctx context.Context, r *robot.Robot) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRobotRepository) Get(ctx context.Context, id kernel.UUID) (*robot.Robot, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*robot.Robot)
	return r, args.Error(1)
}

func (m *MockRobotRepository) List(ctx context.Context) ([]*robot.Robot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*robot.Robot), args.Error(1)
}

func (m *MockRobotRepository) Update(ctx context.Context, r *robot.Robot) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRobotRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRobotRepository) AcquireIdle(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(*robot.Robot)
	return r, args.Error(1)
}

func (m *MockRobotRepository) Bind(ctx context.Context, robotID, orderID kernel.UUID) error {
	return m.Called(ctx, robotID, orderID).Error(0)
}

func (m *MockRobotRepository) Release(ctx context.Context, robotID kernel.UUID) (*robot.Robot, error) {
	args := m.Called(ctx, robotID)
	r, _ := args.Get(0).(*robot.Robot)
	return r, args.Error(1)
}

func (m *MockRobotRepository) ReleaseByOrder(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(*robot.Robot)
	return r, args.Error(1)
}

func (m *MockRobotRepository) ListBusy(ctx context.Context) ([]*robot.Robot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*robot.Robot), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type MockUoW struct {
	mock.Mock
	orders *MockOrderRepository
	robots *MockRobotRepository
	users  *MockUserRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders: new(MockOrderRepository),
		robots: new(MockRobotRepository),
		users:  new(MockUserRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository { return m.orders }
func (m *MockUoW) RobotRepository() ports.RobotRepository { return m.robots }
func (m *MockUoW) UserRepository() ports.UserRepository   { return m.users }

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}
