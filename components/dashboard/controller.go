package dashboard

import "context"

// Controller orchestrates HTTP handlers/routes for the back-office dashboard.
type Controller struct {
	service *Service
}

// NewController wires the service into a controller.
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// View assembles the dashboard view for the caller.
func (c *Controller) View(ctx context.Context) (DashboardView, error) {
	if c.service == nil {
		return DashboardView{}, errMissingStore
	}
	return c.service.View(ctx)
}

// Config returns the current persisted dashboard config snapshot.
func (c *Controller) Config(ctx context.Context) (DashboardConfig, error) {
	if c.service == nil {
		return DashboardConfig{}, errMissingStore
	}
	return c.service.Config(ctx)
}
