package gorouter

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	router "github.com/goliatone/go-router"

	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
	"github.com/romaluev/horyco-dashboard/components/dashboard/commands"
)

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	if err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestRegisterViewRoute(t *testing.T) {
	mock := newMockRouter()
	cfg := Config[struct{}]{
		Router:     mock,
		Controller: newTestController(),
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["GET:/admin/dashboard"]
	if !ok {
		t.Fatalf("expected dashboard route to be registered")
	}

	ctx := newMockContext()
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.status)
	}
	var view dashboard.DashboardView
	if err := json.Unmarshal(ctx.body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Columns != dashboard.GridColumns {
		t.Fatalf("unexpected view: %#v", view)
	}
}

func TestRegisterConfigRoute(t *testing.T) {
	mock := newMockRouter()
	if err := Register(Config[struct{}]{Router: mock, Controller: newTestController()}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	h, ok := mock.routes["GET:/admin/dashboard/_config"]
	if !ok {
		t.Fatalf("expected config route to be registered")
	}
	ctx := newMockContext()
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.status)
	}
}

func TestRegisterAddWidgetRoute(t *testing.T) {
	mock := newMockRouter()
	executor := &capturingExecutor{}
	cfg := Config[struct{}]{
		Router:     mock,
		Controller: newTestController(),
		API:        executor,
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["POST:/admin/dashboard/widgets"]
	if !ok {
		t.Fatalf("expected widgets route to be registered")
	}

	payload, _ := json.Marshal(dashboard.AddWidgetRequest{
		Name:          "Revenue",
		Visualization: dashboard.VisualizationNumber,
		DataSource:    dashboard.DataSource{Metric: "sales.revenue"},
	})
	ctx := newMockContext()
	ctx.body = payload
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", ctx.status, ctx.body)
	}
	if executor.adds != 1 {
		t.Fatalf("executor not invoked")
	}
}

func TestRegisterAddWidgetRejectsBadJSON(t *testing.T) {
	mock := newMockRouter()
	if err := Register(Config[struct{}]{Router: mock, Controller: newTestController(), API: &capturingExecutor{}}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	h := mock.routes["POST:/admin/dashboard/widgets"]
	ctx := newMockContext()
	ctx.body = []byte("{nope")
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.status)
	}
}

func TestRegisterRemoveWidgetRoute(t *testing.T) {
	mock := newMockRouter()
	executor := &capturingExecutor{}
	if err := Register(Config[struct{}]{Router: mock, Controller: newTestController(), API: executor}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	h, ok := mock.routes["DELETE:/admin/dashboard/widgets/:id"]
	if !ok {
		t.Fatalf("expected widget delete route to be registered")
	}
	ctx := newMockContext()
	ctx.params["id"] = "w1"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", ctx.status)
	}
	if executor.removedID != "w1" {
		t.Fatalf("expected remove of w1, got %q", executor.removedID)
	}
}

func TestRegisterRemoveWidgetRequiresID(t *testing.T) {
	mock := newMockRouter()
	if err := Register(Config[struct{}]{Router: mock, Controller: newTestController(), API: &capturingExecutor{}}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	h := mock.routes["DELETE:/admin/dashboard/widgets/:id"]
	ctx := newMockContext()
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.status)
	}
}

func TestRegisterGestureRoutes(t *testing.T) {
	mock := newMockRouter()
	executor := &capturingExecutor{}
	if err := Register(Config[struct{}]{Router: mock, Controller: newTestController(), API: executor}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	move, _ := json.Marshal(commands.MoveWidgetInput{WidgetID: "w1", X: 3, Y: 1})
	ctx := newMockContext()
	ctx.body = move
	if err := mock.routes["POST:/admin/dashboard/layout/move"](ctx); err != nil {
		t.Fatalf("move handler: %v", err)
	}
	if ctx.status != http.StatusOK || executor.moves != 1 {
		t.Fatalf("move not forwarded: status=%d calls=%d", ctx.status, executor.moves)
	}

	resize, _ := json.Marshal(commands.ResizeWidgetInput{WidgetID: "w1", W: 6, H: 3})
	ctx = newMockContext()
	ctx.body = resize
	if err := mock.routes["POST:/admin/dashboard/layout/resize"](ctx); err != nil {
		t.Fatalf("resize handler: %v", err)
	}
	if ctx.status != http.StatusOK || executor.resizes != 1 {
		t.Fatalf("resize not forwarded: status=%d calls=%d", ctx.status, executor.resizes)
	}
}

func TestRegisterWebSocketRoute(t *testing.T) {
	mock := newMockRouter()
	hook := dashboard.NewBroadcastHook()
	cfg := Config[struct{}]{
		Router:     mock,
		Controller: newTestController(),
		Broadcast:  hook,
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, ok := mock.ws["/admin/dashboard/ws"]; !ok {
		t.Fatalf("expected websocket route to be registered")
	}
}

func TestRegisterCustomBasePath(t *testing.T) {
	mock := newMockRouter()
	cfg := Config[struct{}]{
		Router:     mock,
		Controller: newTestController(),
		BasePath:   "/backoffice",
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, ok := mock.routes["GET:/backoffice/dashboard"]; !ok {
		t.Fatalf("expected custom base path to be honored")
	}
}

// --- Test helpers ---

func newTestController() *dashboard.Controller {
	store := dashboard.NewStore(dashboard.StoreOptions{Storage: dashboard.NewMemoryStorage()})
	service := dashboard.NewService(dashboard.Options{
		Store:    store,
		Registry: dashboard.NewRegistry(),
	})
	return dashboard.NewController(service)
}

type mockRouter struct {
	router.Router[struct{}]

	prefix string
	routes map[string]router.HandlerFunc
	ws     map[string]func(router.WebSocketContext) error
}

func newMockRouter() *mockRouter {
	return &mockRouter{
		routes: map[string]router.HandlerFunc{},
		ws:     map[string]func(router.WebSocketContext) error{},
	}
}

func (m *mockRouter) Group(prefix string) router.Router[struct{}] {
	return &mockRouter{
		prefix: m.prefix + prefix,
		routes: m.routes,
		ws:     m.ws,
	}
}

func (m *mockRouter) record(method, path string, handler router.HandlerFunc) {
	full := m.prefix + path
	m.routes[method+":"+full] = handler
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.GET), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.POST), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.DELETE), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	full := m.prefix + path
	m.ws[full] = handler
	return mockRouteInfo{}
}

type mockRouteInfo struct{}

func (mockRouteInfo) SetName(string) router.RouteInfo        { return mockRouteInfo{} }
func (mockRouteInfo) SetDescription(string) router.RouteInfo { return mockRouteInfo{} }
func (mockRouteInfo) SetSummary(string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddTags(...string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddParameter(name, in string, required bool, schema map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) SetRequestBody(desc string, required bool, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) AddResponse(code int, desc string, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}

// routerContext is embedded under an alias so the fallback interface does not
// collide with the Context() accessor the handlers call.
type routerContext = router.Context

type mockContext struct {
	routerContext

	ctx     context.Context
	headers map[string]string
	body    []byte
	locals  map[any]any
	params  map[string]string
	status  int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		locals:  map[any]any{},
		params:  map[string]string{},
	}
}

func (m *mockContext) Context() context.Context {
	return m.ctx
}

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Send(b []byte) error {
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.body }

func (m *mockContext) Param(name string, defaultValue ...string) string {
	if v, ok := m.params[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Locals(key any, value ...any) any {
	if len(value) == 0 {
		return m.locals[key]
	}
	m.locals[key] = value[0]
	return value[0]
}

type capturingExecutor struct {
	adds      int
	removedID string
	updates   int
	layouts   int
	moves     int
	resizes   int
	editMode  int
	selects   int
}

func (e *capturingExecutor) Add(context.Context, dashboard.AddWidgetRequest) error {
	e.adds++
	return nil
}

func (e *capturingExecutor) Remove(_ context.Context, input commands.RemoveWidgetInput) error {
	e.removedID = input.WidgetID
	return nil
}

func (e *capturingExecutor) Update(context.Context, commands.UpdateWidgetInput) error {
	e.updates++
	return nil
}

func (e *capturingExecutor) Layout(context.Context, commands.UpdateLayoutInput) error {
	e.layouts++
	return nil
}

func (e *capturingExecutor) Move(context.Context, commands.MoveWidgetInput) error {
	e.moves++
	return nil
}

func (e *capturingExecutor) Resize(context.Context, commands.ResizeWidgetInput) error {
	e.resizes++
	return nil
}

func (e *capturingExecutor) EditMode(context.Context, commands.SetEditModeInput) error {
	e.editMode++
	return nil
}

func (e *capturingExecutor) Select(context.Context, commands.SelectWidgetInput) error {
	e.selects++
	return nil
}
