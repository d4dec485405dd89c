package http_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/adapters/out/memory"
	"campusdelivery/internal/adapters/out/qrcode"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/proof"
	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type api struct {
	t     *testing.T
	e     *echo.Echo
	admin kernel.UUID
}

func newAPI(t *testing.T) *api {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store, nil, nil)
	cmdFactory := uowFactory{factory: factory}
	signer, err := proof.NewSigner("http-test-secret")
	require.NoError(t, err)
	codec := qrcode.NewCodec(0)

	metrics, err := httpadapter.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        commands.NewCreateOrderCommandHandler(cmdFactory, signer, codec),
		AssignRobot:        commands.NewAssignRobotCommandHandler(cmdFactory),
		SetDispatchStatus:  commands.NewSetDispatchStatusCommandHandler(cmdFactory),
		VerifyProof:        commands.NewVerifyProofCommandHandler(cmdFactory, signer, codec),
		CreateRobot:        commands.NewCreateRobotCommandHandler(cmdFactory),
		UpdateRobot:        commands.NewUpdateRobotCommandHandler(cmdFactory),
		DeleteRobot:        commands.NewDeleteRobotCommandHandler(cmdFactory),
		ReleaseRobot:       commands.NewReleaseRobotCommandHandler(cmdFactory),
		RegisterUser:       commands.NewRegisterUserCommandHandler(cmdFactory),
		SetDispatcher:      commands.NewSetDispatcherCommandHandler(cmdFactory),
		ListOrders:         queries.NewListOrdersQueryHandler(factory),
		ListDispatchOrders: queries.NewListDispatchOrdersQueryHandler(factory),
		GetOrder:           queries.NewGetOrderQueryHandler(factory),
		ListRobots:         queries.NewListRobotsQueryHandler(factory),
		GetCurrentUser:     queries.NewGetCurrentUserQueryHandler(factory),
	}, metrics)

	a := &api{
		t: t,
		e: httpadapter.NewEcho(server, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}

	bootstrap, err := commands.NewBootstrapAdminCommand(kernel.NewUUID(), "root")
	require.NoError(t, err)
	require.NoError(t, commands.NewBootstrapAdminCommandHandler(cmdFactory).Handle(t.Context(), bootstrap))
	a.admin = bootstrap.UserID()
	return a
}

func (a *api) do(method, path string, actor *kernel.UUID, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set(httpadapter.UserIDHeader, actor.String())
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) upload(imageBytes []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "proof.png")
	require.NoError(a.t, err)
	_, err = part.Write(imageBytes)
	require.NoError(a.t, err)
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/proof/verify", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) register(username string, student, teacher bool) kernel.UUID {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/users", nil, httpadapter.RegisterRequest{
		Username: username, IsStudent: student, IsTeacher: teacher,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var u httpadapter.User
	decode(a.t, rec, &u)
	id, err := kernel.UUIDFromString(u.ID)
	require.NoError(a.t, err)
	return id
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httpadapter.Error
	decode(t, rec, &body)
	return body.Code
}

func orderRequest() httpadapter.OrderRequest {
	return httpadapter.OrderRequest{
		PackageType:      "parcel",
		Weight:           "1.5kg",
		PickupBuilding:   "Main Hall",
		DeliveryBuilding: "Science 3",
		DeliverySpeed:    "standard",
		ScheduledDate:    "2026-10-21",
		ScheduledTime:    "10:30",
	}
}

func proofImage(t *testing.T, dataURI string) []byte {
	t.Helper()
	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(dataURI, prefix))
	img, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, prefix))
	require.NoError(t, err)
	return img
}

func TestDeliveryOverHTTP(t *testing.T) {
	a := newAPI(t)
	student := a.register("stu", true, false)
	teacher := a.register("tea", false, true)

	rec := a.do(http.MethodPost, "/api/v1/robots", &a.admin, httpadapter.RobotRequest{Name: "Scout"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/v1/orders", &student, orderRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created httpadapter.Order
	decode(t, rec, &created)
	assert.Equal(t, "PENDING", created.Status)
	assert.Equal(t, student.String(), created.StudentID)
	assert.Nil(t, created.AssigneeID)

	rec = a.do(http.MethodGet, "/api/v1/orders", &student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []httpadapter.Order
	decode(t, rec, &mine)
	require.Len(t, mine, 1)

	rec = a.do(http.MethodPut, "/api/v1/orders/"+created.ID, &teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var assigned httpadapter.Order
	decode(t, rec, &assigned)
	assert.Equal(t, "ASSIGNED", assigned.Status)
	require.NotNil(t, assigned.AssigneeID)
	assert.Equal(t, teacher.String(), *assigned.AssigneeID)

	img := proofImage(t, created.Proof)
	rec = a.upload(img)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var verified httpadapter.VerifyResponse
	decode(t, rec, &verified)
	assert.Equal(t, httpadapter.VerifyResponse{OrderID: created.ID, NewStatus: "DELIVERED"}, verified)

	rec = a.upload(img)
	require.Equal(t, http.StatusOK, rec.Code, "rescanning a delivered proof succeeds")

	rec = a.do(http.MethodGet, "/api/v1/robots", &student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var robots []httpadapter.Robot
	decode(t, rec, &robots)
	require.Len(t, robots, 1)
	assert.True(t, robots[0].IsAvailable)
	assert.Nil(t, robots[0].CurrentOrderID)

	rec = a.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `campusdelivery_proof_verifications_total{outcome="delivered"} 2`)
}

func TestDispatchBoardOverHTTP(t *testing.T) {
	a := newAPI(t)
	student := a.register("stu", true, false)
	dispatcher := a.register("dis", false, true)

	rec := a.do(http.MethodPost, "/api/v1/users/"+dispatcher.String()+"/set_dispatcher", &a.admin,
		map[string]any{"is_dispatcher": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var granted httpadapter.User
	decode(t, rec, &granted)
	assert.ElementsMatch(t, []string{"teacher", "dispatcher"}, granted.Roles)

	a.do(http.MethodPost, "/api/v1/robots", &a.admin, httpadapter.RobotRequest{Name: "Scout"})
	rec = a.do(http.MethodPost, "/api/v1/orders", &student, orderRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created httpadapter.Order
	decode(t, rec, &created)
	path := "/api/v1/dispatch/orders/" + created.ID

	rec = a.do(http.MethodGet, "/api/v1/dispatch/orders?status=PENDING", &dispatcher, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []httpadapter.Order
	decode(t, rec, &pending)
	require.Len(t, pending, 1)

	rec = a.do(http.MethodPatch, path, &dispatcher, httpadapter.DispatchStatusRequest{Status: "PENDING"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status_not_allowed", errorCode(t, rec))

	rec = a.do(http.MethodPatch, path, &dispatcher, httpadapter.DispatchStatusRequest{Status: "DELIVERED"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_transition", errorCode(t, rec))

	for _, status := range []string{"ASSIGNED", "DELIVERING", "DELIVERED"} {
		rec = a.do(http.MethodPatch, path, &dispatcher, httpadapter.DispatchStatusRequest{Status: status})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var moved httpadapter.Order
		decode(t, rec, &moved)
		assert.Equal(t, status, moved.Status)
	}

	rec = a.do(http.MethodPost, "/api/v1/dispatch/orders", &dispatcher, httpadapter.DispatchFilter{Status: "DELIVERED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var delivered []httpadapter.Order
	decode(t, rec, &delivered)
	require.Len(t, delivered, 1)
	assert.Equal(t, created.ID, delivered[0].ID)

	rec = a.do(http.MethodGet, "/api/v1/dispatch/orders", &student, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))
}

func TestErrorResponses(t *testing.T) {
	a := newAPI(t)
	student := a.register("stu", true, false)
	teacher := a.register("tea", false, true)
	stranger := kernel.NewUUID()

	rec := a.do(http.MethodPost, "/api/v1/orders", &student, orderRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created httpadapter.Order
	decode(t, rec, &created)

	blank := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range blank.Pix {
		blank.Pix[i] = uint8(color.White.Y)
	}
	var blankPNG bytes.Buffer
	require.NoError(t, png.Encode(&blankPNG, blank))

	t.Run("missing header", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/orders", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthenticated", errorCode(t, rec))
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/users/me", &stranger, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthenticated", errorCode(t, rec))
	})

	t.Run("no robot available", func(t *testing.T) {
		rec := a.do(http.MethodPut, "/api/v1/orders/"+created.ID, &teacher, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no_robot_available", errorCode(t, rec))
		assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	})

	t.Run("student cannot assign", func(t *testing.T) {
		rec := a.do(http.MethodPut, "/api/v1/orders/"+created.ID, &student, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "forbidden", errorCode(t, rec))
	})

	t.Run("unknown order", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), &teacher, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "unknown_order", errorCode(t, rec))
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/orders/not-a-uuid", &teacher, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_request", errorCode(t, rec))
	})

	t.Run("order missing fields", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/orders", &student, httpadapter.OrderRequest{PackageType: "box"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_request", errorCode(t, rec))
	})

	t.Run("username taken", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/users", nil, httpadapter.RegisterRequest{Username: "stu", IsStudent: true})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "username_taken", errorCode(t, rec))
	})

	t.Run("non boolean dispatcher flag", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/users/"+teacher.String()+"/set_dispatcher", &a.admin,
			map[string]any{"is_dispatcher": "yes"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_request", errorCode(t, rec))

		rec = a.do(http.MethodPost, "/api/v1/users/"+teacher.String()+"/set_dispatcher", &a.admin,
			map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("robots are admin only", func(t *testing.T) {
		rec := a.do(http.MethodPost, "/api/v1/robots", &teacher, httpadapter.RobotRequest{Name: "Rogue"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "forbidden", errorCode(t, rec))
	})

	t.Run("verify without image", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/proof/verify", nil)
		rec := httptest.NewRecorder()
		a.e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_request", errorCode(t, rec))
	})

	t.Run("verify image without code", func(t *testing.T) {
		rec := a.upload(blankPNG.Bytes())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no_code_found", errorCode(t, rec))
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/nowhere", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", errorCode(t, rec))
	})

	t.Run("health", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRobotAdminOverHTTP(t *testing.T) {
	a := newAPI(t)
	student := a.register("stu", true, false)
	teacher := a.register("tea", false, true)

	rec := a.do(http.MethodPost, "/api/v1/robots", &a.admin, httpadapter.RobotRequest{Name: "Scout"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var scout httpadapter.Robot
	decode(t, rec, &scout)
	robotPath := "/api/v1/robots/" + scout.ID

	rec = a.do(http.MethodPut, robotPath, &a.admin, map[string]any{
		"name":                "Scout II",
		"next_available_time": "2026-10-20T15:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var renamed httpadapter.Robot
	decode(t, rec, &renamed)
	assert.Equal(t, "Scout II", renamed.Name)
	require.NotNil(t, renamed.NextAvailableTime)

	rec = a.do(http.MethodPost, "/api/v1/orders", &student, orderRequest())
	var created httpadapter.Order
	decode(t, rec, &created)
	rec = a.do(http.MethodPut, "/api/v1/orders/"+created.ID, &teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodDelete, robotPath, &a.admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "robot_busy", errorCode(t, rec))

	rec = a.do(http.MethodPost, robotPath+"/release", &a.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var released httpadapter.Robot
	decode(t, rec, &released)
	assert.True(t, released.IsAvailable)

	rec = a.do(http.MethodDelete, robotPath, &a.admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodPost, robotPath+"/release", &a.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_robot", errorCode(t, rec))

	rec = a.do(http.MethodGet, "/api/v1/users/me", &a.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me httpadapter.User
	decode(t, rec, &me)
	assert.Equal(t, "root", me.Username)
	assert.Equal(t, []string{user.Admin.String()}, me.Roles)
}
