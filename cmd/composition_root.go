package cmd

import (
	"log/slog"

	httpadapter "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/adapters/out/qrcode"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/proof"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/jobs"
)

type CompositionRoot struct {
	configs    Config
	uowFactory ports.UnitOfWorkFactory
	signer     *proof.Signer
	codec      ports.ProofCodec
	logger     *slog.Logger
}

// NewCompositionRoot wires the use cases over uowFactory, which is backed by
// postgres or the in-memory store.
func NewCompositionRoot(configs Config, uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) (CompositionRoot, error) {
	signer, err := proof.NewSigner(configs.ProofSecret)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		uowFactory: uowFactory,
		signer:     signer,
		codec:      qrcode.NewCodec(qrcode.DefaultSize),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.commandUoWFactory(), c.signer, c.codec)
}

func (c *CompositionRoot) CreateAssignRobotCommandHandler() commands.AssignRobotCommandHandler {
	return commands.NewAssignRobotCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateSetDispatchStatusCommandHandler() commands.SetDispatchStatusCommandHandler {
	return commands.NewSetDispatchStatusCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateVerifyProofCommandHandler() commands.VerifyProofCommandHandler {
	return commands.NewVerifyProofCommandHandler(c.commandUoWFactory(), c.signer, c.codec)
}

func (c *CompositionRoot) CreateCreateRobotCommandHandler() commands.CreateRobotCommandHandler {
	return commands.NewCreateRobotCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateUpdateRobotCommandHandler() commands.UpdateRobotCommandHandler {
	return commands.NewUpdateRobotCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateDeleteRobotCommandHandler() commands.DeleteRobotCommandHandler {
	return commands.NewDeleteRobotCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateReleaseRobotCommandHandler() commands.ReleaseRobotCommandHandler {
	return commands.NewReleaseRobotCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateReleaseDeliveredRobotsCommandHandler() commands.ReleaseDeliveredRobotsCommandHandler {
	return commands.NewReleaseDeliveredRobotsCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateSetDispatcherCommandHandler() commands.SetDispatcherCommandHandler {
	return commands.NewSetDispatcherCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateBootstrapAdminCommandHandler() commands.BootstrapAdminCommandHandler {
	return commands.NewBootstrapAdminCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListDispatchOrdersQueryHandler() queries.ListDispatchOrdersQueryHandler {
	return queries.NewListDispatchOrdersQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListRobotsQueryHandler() queries.ListRobotsQueryHandler {
	return queries.NewListRobotsQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetCurrentUserQueryHandler() queries.GetCurrentUserQueryHandler {
	return queries.NewGetCurrentUserQueryHandler(c.uowFactory)
}

// CreateHTTPServer wires every HTTP route to its use case.
func (c *CompositionRoot) CreateHTTPServer(metrics *httpadapter.Metrics) *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		AssignRobot:        c.CreateAssignRobotCommandHandler(),
		SetDispatchStatus:  c.CreateSetDispatchStatusCommandHandler(),
		VerifyProof:        c.CreateVerifyProofCommandHandler(),
		CreateRobot:        c.CreateCreateRobotCommandHandler(),
		UpdateRobot:        c.CreateUpdateRobotCommandHandler(),
		DeleteRobot:        c.CreateDeleteRobotCommandHandler(),
		ReleaseRobot:       c.CreateReleaseRobotCommandHandler(),
		RegisterUser:       c.CreateRegisterUserCommandHandler(),
		SetDispatcher:      c.CreateSetDispatcherCommandHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		ListDispatchOrders: c.CreateListDispatchOrdersQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListRobots:         c.CreateListRobotsQueryHandler(),
		GetCurrentUser:     c.CreateGetCurrentUserQueryHandler(),
	}, metrics)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReleaseDeliveredRobotsCommandHandler(),
		c.configs.RobotReleaseSchedule,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
