package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/bwalyaChanda3/vehicle-access-system/pkg/gate"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/hub"
)

// Status describes the gatekeeper for the dashboard.
type Status struct {
	Active           bool   `json:"active"`
	RegistryURL      string `json:"registry_url"`
	CooldownSeconds  int    `json:"cooldown_seconds"`
	DashboardClients int    `json:"dashboard_clients"`
}

// handleStatus reports whether the loop is active and which registry
// endpoint it targets.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(Status{
		Active:           s.loop.Active(),
		RegistryURL:      s.registryURL,
		CooldownSeconds:  int(s.cooldown.Seconds()),
		DashboardClients: s.eventHub.ClientCount(),
	})
}

// handleStart starts the detection loop. A camera that cannot be
// opened surfaces here as a failed start.
func (s *Server) handleStart(c *fiber.Ctx) error {
	if err := s.loop.Start(); err != nil {
		if errors.Is(err, gate.ErrAlreadyRunning) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	s.logger.Info("detection started via control surface")
	return c.JSON(fiber.Map{"active": true})
}

// handleStop stops the detection loop.
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.loop.Stop()
	s.logger.Info("detection stopped via control surface")
	return c.JSON(fiber.Map{"active": false})
}

// handleEvents returns the recent detection events.
func (s *Server) handleEvents(c *fiber.Ctx) error {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	return c.JSON(s.events)
}

// handleEventsWS streams detection events to a dashboard client.
func (s *Server) handleEventsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.eventHub, conn)
	client.Run()
}
