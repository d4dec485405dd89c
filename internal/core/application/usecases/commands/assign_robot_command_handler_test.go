package commands_test

import (
	"errors"
	"testing"
	"time"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockActor(t *testing.T, roles ...user.Role) *user.User {
	t.Helper()
	set, err := user.NewRoles(roles...)
	require.NoError(t, err)
	u, err := user.NewUser(kernel.NewUUID(), "mocked", set)
	require.NoError(t, err)
	return u
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testDetails(), time.Now())
	require.NoError(t, err)
	return o
}

func TestAssignRobotCommandHandler_ReleasesRobotWhenTransitionFails(t *testing.T) {
	ctx := t.Context()
	teacher := mockActor(t, user.Teacher)
	o := pendingOrder(t)
	acquired, err := robot.NewRobot(kernel.NewUUID(), "R1")
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.users.On("Get", ctx, teacher.ID()).Return(teacher, nil).Once()
	uow.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.robots.On("AcquireIdle", ctx, o.ID()).Return(acquired, nil).Once()
	uow.orders.On("Transition", ctx, o.ID(), order.Pending, order.Assigned, mock.Anything).
		Return(nil, order.ErrStaleState).Once()
	uow.robots.On("Release", ctx, acquired.ID()).Return(acquired, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAssignRobotCommand(teacher.ID(), o.ID(), services.TeacherSurface)
	require.NoError(t, err)
	_, err = commands.NewAssignRobotCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrStaleState)
	uow.AssertExpectations(t)
	uow.orders.AssertExpectations(t)
	uow.robots.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignRobotCommandHandler_ReleasesRobotWhenBindFails(t *testing.T) {
	ctx := t.Context()
	teacher := mockActor(t, user.Teacher)
	o := pendingOrder(t)
	acquired, err := robot.NewRobot(kernel.NewUUID(), "R1")
	require.NoError(t, err)
	bindErr := errors.New("bind failed")
	releaseErr := errors.New("release failed")

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.users.On("Get", ctx, teacher.ID()).Return(teacher, nil).Once()
	uow.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.robots.On("AcquireIdle", ctx, o.ID()).Return(acquired, nil).Once()
	uow.orders.On("Transition", ctx, o.ID(), order.Pending, order.Assigned, mock.Anything).Return(o, nil).Once()
	uow.robots.On("Bind", ctx, acquired.ID(), o.ID()).Return(bindErr).Once()
	uow.robots.On("Release", ctx, acquired.ID()).Return(nil, releaseErr).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAssignRobotCommand(teacher.ID(), o.ID(), services.TeacherSurface)
	require.NoError(t, err)
	_, err = commands.NewAssignRobotCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, bindErr)
	require.ErrorIs(t, err, releaseErr)
	uow.robots.AssertExpectations(t)
}

func TestAssignRobotCommandHandler_Forbidden(t *testing.T) {
	ctx := t.Context()
	student := mockActor(t, user.Student)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.users.On("Get", ctx, student.ID()).Return(student, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAssignRobotCommand(student.ID(), kernel.NewUUID(), services.TeacherSurface)
	require.NoError(t, err)
	_, err = commands.NewAssignRobotCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrForbidden)
	uow.robots.AssertNotCalled(t, "AcquireIdle", mock.Anything, mock.Anything)
}

func TestAssignRobotCommandHandler_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAssignRobotCommand(kernel.NewUUID(), kernel.NewUUID(), services.TeacherSurface)
	require.NoError(t, err)
	_, err = commands.NewAssignRobotCommandHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestAssignRobotCommand_Validation(t *testing.T) {
	_, err := commands.NewAssignRobotCommand(kernel.UUID{}, kernel.NewUUID(), services.TeacherSurface)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewAssignRobotCommand(kernel.NewUUID(), kernel.NewUUID(), services.AssignSurface(9))
	require.Error(t, err)

	var unconstructed commands.AssignRobotCommand
	_, err = commands.NewAssignRobotCommandHandler(new(MockUoWFactory)).Handle(t.Context(), unconstructed)
	assert.ErrorIs(t, err, commands.ErrAssignRobotCommandIsNotConstructed)
}
