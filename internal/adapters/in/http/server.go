// Package http exposes the delivery use cases over echo under /api/v1.
// Handlers translate requests into commands and queries and return errors
// unchanged; NewErrorHandler turns them into {code, detail} responses.
package http

import (
	"io"
	"log/slog"
	"net/http"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MaxProofImageBytes bounds the size of an uploaded proof image.
const MaxProofImageBytes = 10 << 20

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	AssignRobot       commands.AssignRobotCommandHandler
	SetDispatchStatus commands.SetDispatchStatusCommandHandler
	VerifyProof       commands.VerifyProofCommandHandler
	CreateRobot       commands.CreateRobotCommandHandler
	UpdateRobot       commands.UpdateRobotCommandHandler
	DeleteRobot       commands.DeleteRobotCommandHandler
	ReleaseRobot      commands.ReleaseRobotCommandHandler
	RegisterUser      commands.RegisterUserCommandHandler
	SetDispatcher     commands.SetDispatcherCommandHandler

	ListOrders         queries.ListOrdersQueryHandler
	ListDispatchOrders queries.ListDispatchOrdersQueryHandler
	GetOrder           queries.GetOrderQueryHandler
	ListRobots         queries.ListRobotsQueryHandler
	GetCurrentUser     queries.GetCurrentUserQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h       Handlers
	metrics *Metrics
}

func NewServer(h Handlers, metrics *Metrics) *Server {
	return &Server{h: h, metrics: metrics}
}

// NewEcho builds the echo instance with the error handler, the metrics and
// recovery middleware, and every route of s.
func NewEcho(s *Server, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)
	e.Use(s.metrics.Middleware(), middleware.RequestID(), middleware.Recover())
	s.Register(e)
	return e
}

// Register mounts every route on e, including /health and /metrics.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api/v1")

	api.POST("/users", s.RegisterUser)
	api.POST("/proof/verify", s.VerifyProof)

	auth := api.Group("", s.Authenticate)

	auth.GET("/users/me", s.GetMe)
	auth.POST("/users/:id/set_dispatcher", s.SetDispatcher)

	auth.POST("/orders", s.CreateOrder)
	auth.GET("/orders", s.ListOrders)
	auth.GET("/orders/:id", s.GetOrder)
	auth.PUT("/orders/:id", s.AssignRobot)

	auth.GET("/dispatch/orders", s.ListDispatchOrders)
	auth.POST("/dispatch/orders", s.ListDispatchOrders)
	auth.PATCH("/dispatch/orders/:id", s.SetDispatchStatus)

	auth.GET("/robots", s.ListRobots)
	auth.POST("/robots", s.CreateRobot)
	auth.PUT("/robots/:id", s.UpdateRobot)
	auth.DELETE("/robots/:id", s.DeleteRobot)
	auth.POST("/robots/:id/release", s.ReleaseRobot)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actorID(c), kernel.NewUUID(), req.details())
	if err != nil {
		return err
	}

	created, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOrder(queries.NewOrderResponse(created)))
}

// ListOrders handles GET /api/v1/orders: own orders for students, all for staff.
func (s *Server) ListOrders(c echo.Context) error {
	query, err := queries.NewListOrdersQuery(actorID(c))
	if err != nil {
		return err
	}

	list, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrders(list))
}

func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actorID(c), id)
	if err != nil {
		return err
	}

	found, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(found))
}

// AssignRobot handles PUT /api/v1/orders/{id}, the teacher's assign action.
func (s *Server) AssignRobot(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignRobotCommand(actorID(c), id, services.TeacherSurface)
	if err != nil {
		return err
	}

	assigned, err := s.h.AssignRobot.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(assigned)))
}

// ListDispatchOrders handles GET and POST /api/v1/dispatch/orders. The status
// filter comes from the query string or, for POST, the JSON body.
func (s *Server) ListDispatchOrders(c echo.Context) error {
	var filter DispatchFilter
	if err := c.Bind(&filter); err != nil {
		return err
	}
	if filter.Status == "" {
		filter.Status = c.QueryParam("status")
	}

	query, err := queries.NewListDispatchOrdersQuery(actorID(c), filter.Status)
	if err != nil {
		return err
	}

	list, err := s.h.ListDispatchOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrders(list))
}

// SetDispatchStatus handles PATCH /api/v1/dispatch/orders/{id}.
func (s *Server) SetDispatchStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req DispatchStatusRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewSetDispatchStatusCommand(actorID(c), id, req.Status)
	if err != nil {
		return err
	}

	updated, err := s.h.SetDispatchStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(updated)))
}

// VerifyProof handles POST /api/v1/proof/verify. It needs no authentication:
// the signed code is the credential.
func (s *Server) VerifyProof(c echo.Context) error {
	result, err := s.verifyProof(c)
	outcome := "delivered"
	if err != nil {
		_, outcome, _ = classify(err)
	}
	s.metrics.observeProof(outcome)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		OrderID:   result.OrderID.String(),
		NewStatus: result.NewStatus.String(),
	})
}

func (s *Server) verifyProof(c echo.Context) (commands.VerifyProofResult, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return commands.VerifyProofResult{}, errs.NewValueIsRequiredErrorWithCause("image", err)
	}

	file, err := header.Open()
	if err != nil {
		return commands.VerifyProofResult{}, err
	}
	defer func() {
		_ = file.Close()
	}()

	image, err := io.ReadAll(io.LimitReader(file, MaxProofImageBytes+1))
	if err != nil {
		return commands.VerifyProofResult{}, err
	}
	if len(image) > MaxProofImageBytes {
		return commands.VerifyProofResult{}, errs.NewValueIsOutOfRangeError("image size", len(image), 1, MaxProofImageBytes)
	}

	cmd, err := commands.NewVerifyProofCommand(image)
	if err != nil {
		return commands.VerifyProofResult{}, err
	}

	return s.h.VerifyProof.Handle(c.Request().Context(), cmd)
}

// RegisterUser handles POST /api/v1/users. Anyone may register as a student
// and/or teacher.
func (s *Server) RegisterUser(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), req.Username, req.IsStudent, req.IsTeacher)
	if err != nil {
		return err
	}

	registered, err := s.h.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUser(queries.NewUserResponse(registered)))
}

func (s *Server) GetMe(c echo.Context) error {
	return c.JSON(http.StatusOK, toUser(currentUser(c)))
}

// SetDispatcher handles POST /api/v1/users/{id}/set_dispatcher.
func (s *Server) SetDispatcher(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req SetDispatcherRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	if req.IsDispatcher == nil {
		return errs.NewValueIsRequiredError("is_dispatcher")
	}

	cmd, err := commands.NewSetDispatcherCommand(actorID(c), id, *req.IsDispatcher)
	if err != nil {
		return err
	}

	updated, err := s.h.SetDispatcher.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUser(queries.NewUserResponse(updated)))
}

func (s *Server) ListRobots(c echo.Context) error {
	query, err := queries.NewListRobotsQuery(actorID(c))
	if err != nil {
		return err
	}

	list, err := s.h.ListRobots.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]Robot, 0, len(list))
	for _, r := range list {
		out = append(out, toRobot(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) CreateRobot(c echo.Context) error {
	var req RobotRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateRobotCommand(actorID(c), kernel.NewUUID(), req.Name)
	if err != nil {
		return err
	}

	created, err := s.h.CreateRobot.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRobot(queries.NewRobotResponse(created)))
}

func (s *Server) UpdateRobot(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req RobotRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateRobotCommand(actorID(c), id, req.Name, req.NextAvailableTime)
	if err != nil {
		return err
	}

	updated, err := s.h.UpdateRobot.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRobot(queries.NewRobotResponse(updated)))
}

func (s *Server) DeleteRobot(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteRobotCommand(actorID(c), id)
	if err != nil {
		return err
	}

	if err = s.h.DeleteRobot.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ReleaseRobot handles POST /api/v1/robots/{id}/release, the manual override
// for a robot stuck on an order.
func (s *Server) ReleaseRobot(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReleaseRobotCommand(actorID(c), id)
	if err != nil {
		return err
	}

	released, err := s.h.ReleaseRobot.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRobot(queries.NewRobotResponse(released)))
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}
