package commands_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"campusdelivery/internal/adapters/out/memory"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/proof"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"

	"github.com/stretchr/testify/require"
)

const testSecret = "campus-test-secret"

// passthroughCodec stores the envelope itself as the "image".
type passthroughCodec struct{}

func (passthroughCodec) Encode(content []byte) ([]byte, error) {
	return bytes.Clone(content), nil
}

func (passthroughCodec) Decode(_ context.Context, r io.Reader) ([][]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 || data[0] != '{' {
		return [][]byte{}, nil
	}
	return [][]byte{data}, nil
}

type factoryAdapter struct {
	factory ports.UnitOfWorkFactory
}

func (f factoryAdapter) Create() commands.UoW {
	return f.factory.Create()
}

type fixture struct {
	store      *memory.Store
	uowFactory commands.UoWFactory
	signer     *proof.Signer
	codec      ports.ProofCodec

	orders ports.OrderRepository
	robots ports.RobotRepository
	users  ports.UserRepository

	student    *user.User
	teacher    *user.User
	dispatcher *user.User
	admin      *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	signer, err := proof.NewSigner(testSecret)
	require.NoError(t, err)

	f := &fixture{
		store:      store,
		uowFactory: factoryAdapter{factory: memory.NewUnitOfWorkFactory(store, nil, nil)},
		signer:     signer,
		codec:      passthroughCodec{},
		orders:     memory.NewOrderRepository(store),
		robots:     memory.NewRobotRepository(store),
		users:      memory.NewUserRepository(store),
	}
	f.student = f.addUser(t, "sam", user.Student)
	f.teacher = f.addUser(t, "tara", user.Teacher)
	f.dispatcher = f.addUser(t, "dora", user.Dispatcher)
	f.admin = f.addUser(t, "ada", user.Admin)
	return f
}

func (f *fixture) addUser(t *testing.T, name string, roles ...user.Role) *user.User {
	t.Helper()
	set, err := user.NewRoles(roles...)
	require.NoError(t, err)
	u, err := user.NewUser(kernel.NewUUID(), name, set)
	require.NoError(t, err)
	require.NoError(t, f.users.Add(t.Context(), u))
	return u
}

func (f *fixture) addRobot(t *testing.T, name string) *robot.Robot {
	t.Helper()
	r, err := robot.NewRobot(kernel.NewUUID(), name)
	require.NoError(t, err)
	require.NoError(t, f.robots.Add(t.Context(), r))
	return r
}

func testDetails() order.Details {
	return order.Details{
		PackageType:      "books",
		Weight:           "2kg",
		Fragile:          true,
		PickupBuilding:   "Library",
		DeliveryBuilding: "Lab 4",
		DeliverySpeed:    "standard",
	}
}

func (f *fixture) createOrder(t *testing.T, student *user.User) *order.Order {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(student.ID(), kernel.NewUUID(), testDetails())
	require.NoError(t, err)
	handler := commands.NewCreateOrderCommandHandler(f.uowFactory, f.signer, f.codec)
	created, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return created
}

func (f *fixture) assign(t *testing.T, orderID kernel.UUID) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewAssignRobotCommand(f.teacher.ID(), orderID, services.TeacherSurface)
	require.NoError(t, err)
	return commands.NewAssignRobotCommandHandler(f.uowFactory).Handle(t.Context(), cmd)
}

func (f *fixture) verify(t *testing.T, image []byte) (commands.VerifyProofResult, error) {
	t.Helper()
	cmd, err := commands.NewVerifyProofCommand(image)
	require.NoError(t, err)
	return commands.NewVerifyProofCommandHandler(f.uowFactory, f.signer, f.codec).Handle(t.Context(), cmd)
}

// imageOf turns the data URI stored on an order back into the codec image.
func imageOf(t *testing.T, o *order.Order) []byte {
	t.Helper()
	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(o.Proof(), prefix))
	img, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(o.Proof(), prefix))
	require.NoError(t, err)
	return img
}

func (f *fixture) robotCarrying(t *testing.T, orderID kernel.UUID) *robot.Robot {
	t.Helper()
	robots, err := f.robots.ListBusy(t.Context())
	require.NoError(t, err)
	for _, r := range robots {
		if r.IsCarrying(orderID) {
			return r
		}
	}
	return nil
}
