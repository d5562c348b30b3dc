package commands

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/romaluev/horyco-dashboard/components/dashboard"
)

type fakeService struct {
	added     []dashboard.AddWidgetRequest
	removed   []string
	updated   map[string]dashboard.WidgetPatch
	layouts   [][]dashboard.WidgetLayoutItem
	moves     []string
	resizes   []string
	editMode  []bool
	selected  []string
	seeded    int
	returnErr error
}

func newFakeService() *fakeService {
	return &fakeService{updated: map[string]dashboard.WidgetPatch{}}
}

func (f *fakeService) AddWidget(_ context.Context, req dashboard.AddWidgetRequest) (string, error) {
	if f.returnErr != nil {
		return "", f.returnErr
	}
	f.added = append(f.added, req)
	return req.ID, nil
}

func (f *fakeService) RemoveWidget(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.returnErr
}

func (f *fakeService) UpdateWidget(_ context.Context, id string, patch dashboard.WidgetPatch) error {
	f.updated[id] = patch
	return f.returnErr
}

func (f *fakeService) UpdateLayout(_ context.Context, items []dashboard.WidgetLayoutItem) error {
	f.layouts = append(f.layouts, items)
	return f.returnErr
}

func (f *fakeService) MoveWidget(_ context.Context, id string, _, _ int) error {
	f.moves = append(f.moves, id)
	return f.returnErr
}

func (f *fakeService) ResizeWidget(_ context.Context, id string, _, _ int) error {
	f.resizes = append(f.resizes, id)
	return f.returnErr
}

func (f *fakeService) SetEditMode(_ context.Context, enabled bool) {
	f.editMode = append(f.editMode, enabled)
}

func (f *fakeService) SelectWidget(id string) {
	f.selected = append(f.selected, id)
}

func (f *fakeService) Seed(context.Context) error {
	f.seeded++
	return f.returnErr
}

func TestAddWidgetCommand(t *testing.T) {
	service := newFakeService()
	cmd := NewAddWidgetCommand(service, nil)
	req := dashboard.AddWidgetRequest{ID: "w1", Name: "Revenue", Visualization: dashboard.VisualizationNumber}
	if err := cmd.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.added) != 1 || service.added[0].ID != "w1" {
		t.Fatalf("service not invoked: %#v", service.added)
	}
}

func TestAddWidgetCommandPropagatesServiceError(t *testing.T) {
	service := newFakeService()
	service.returnErr = errors.New("unknown metric")
	cmd := NewAddWidgetCommand(service, nil)
	if err := cmd.Execute(context.Background(), dashboard.AddWidgetRequest{}); err == nil {
		t.Fatalf("expected service error to propagate")
	}
}

func TestRemoveWidgetCommandRequiresID(t *testing.T) {
	cmd := NewRemoveWidgetCommand(newFakeService(), nil)
	if err := cmd.Execute(context.Background(), RemoveWidgetInput{}); err == nil {
		t.Fatalf("expected missing id rejection")
	}
}

func TestRemoveWidgetCommand(t *testing.T) {
	service := newFakeService()
	cmd := NewRemoveWidgetCommand(service, nil)
	if err := cmd.Execute(context.Background(), RemoveWidgetInput{WidgetID: "w1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.removed) != 1 || service.removed[0] != "w1" {
		t.Fatalf("remove not forwarded: %#v", service.removed)
	}
}

func TestUpdateWidgetCommandBuildsPatch(t *testing.T) {
	service := newFakeService()
	cmd := NewUpdateWidgetCommand(service, nil)
	name := "Net Revenue"
	if err := cmd.Execute(context.Background(), UpdateWidgetInput{WidgetID: "w1", Name: &name}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	patch, ok := service.updated["w1"]
	if !ok || patch.Name == nil || *patch.Name != name {
		t.Fatalf("patch not forwarded: %#v", service.updated)
	}
}

func TestUpdateLayoutCommand(t *testing.T) {
	service := newFakeService()
	cmd := NewUpdateLayoutCommand(service, nil)
	items := []dashboard.WidgetLayoutItem{{I: "w1", W: 6, H: 2}}
	if err := cmd.Execute(context.Background(), UpdateLayoutInput{Items: items}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.layouts) != 1 || len(service.layouts[0]) != 1 {
		t.Fatalf("layout not forwarded: %#v", service.layouts)
	}
}

func TestGestureCommandsRequireWidgetID(t *testing.T) {
	service := newFakeService()
	move := NewMoveWidgetCommand(service, nil)
	if err := move.Execute(context.Background(), MoveWidgetInput{}); err == nil {
		t.Fatalf("move without id must fail")
	}
	resize := NewResizeWidgetCommand(service, nil)
	if err := resize.Execute(context.Background(), ResizeWidgetInput{}); err == nil {
		t.Fatalf("resize without id must fail")
	}
	if len(service.moves)+len(service.resizes) != 0 {
		t.Fatalf("service invoked despite invalid input")
	}
}

func TestGestureCommandsForwardToService(t *testing.T) {
	service := newFakeService()
	move := NewMoveWidgetCommand(service, nil)
	if err := move.Execute(context.Background(), MoveWidgetInput{WidgetID: "w1", X: 3, Y: 2}); err != nil {
		t.Fatalf("move: %v", err)
	}
	resize := NewResizeWidgetCommand(service, nil)
	if err := resize.Execute(context.Background(), ResizeWidgetInput{WidgetID: "w1", W: 6, H: 4}); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if len(service.moves) != 1 || len(service.resizes) != 1 {
		t.Fatalf("gestures not forwarded: %#v %#v", service.moves, service.resizes)
	}
}

func TestSessionCommands(t *testing.T) {
	service := newFakeService()
	edit := NewSetEditModeCommand(service, nil)
	if err := edit.Execute(context.Background(), SetEditModeInput{Enabled: true}); err != nil {
		t.Fatalf("edit mode: %v", err)
	}
	sel := NewSelectWidgetCommand(service, nil)
	if err := sel.Execute(context.Background(), SelectWidgetInput{WidgetID: "w1"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(service.editMode) != 1 || !service.editMode[0] {
		t.Fatalf("edit mode not forwarded: %#v", service.editMode)
	}
	if len(service.selected) != 1 || service.selected[0] != "w1" {
		t.Fatalf("selection not forwarded: %#v", service.selected)
	}
}

func TestSeedDashboardCommand(t *testing.T) {
	service := newFakeService()
	cmd := NewSeedDashboardCommand(service, nil)
	if err := cmd.Execute(context.Background(), SeedDashboardInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.seeded != 1 {
		t.Fatalf("seed not forwarded")
	}
}

func TestCommandsRejectNilService(t *testing.T) {
	ctx := context.Background()
	if err := (&AddWidgetCommand{}).Execute(ctx, dashboard.AddWidgetRequest{}); err == nil {
		t.Fatalf("add with nil service must fail")
	}
	if err := (&SeedDashboardCommand{}).Execute(ctx, SeedDashboardInput{}); err == nil {
		t.Fatalf("seed with nil service must fail")
	}
}
