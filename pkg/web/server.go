// Package web provides the gatekeeper's control surface: loop
// start/stop, status, and a live detection event stream.
package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/bwalyaChanda3/vehicle-access-system/internal/log"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/gate"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/hub"
)

// maxRecentEvents bounds the in-memory event buffer.
const maxRecentEvents = 100

// Controller is the detection loop surface the server drives.
type Controller interface {
	Start() error
	Stop()
	Active() bool
}

// Server is the control surface server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	loop        Controller
	registryURL string
	cooldown    time.Duration

	// Recent events ring
	events   []gate.Event
	eventsMu sync.RWMutex

	// Event fan-out to websocket clients
	eventHub *hub.Hub
}

// NewServer creates the control surface for the given detection loop.
func NewServer(port string, loop Controller, registryURL string, cooldown time.Duration) *Server {
	s := &Server{
		port:        port,
		logger:      log.With("component", "web"),
		loop:        loop,
		registryURL: registryURL,
		cooldown:    cooldown,
		events:      make([]gate.Event, 0, maxRecentEvents),
		eventHub:    hub.New("events"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Vehicle Access Gatekeeper",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/detection/start", s.handleStart)
	api.Post("/detection/stop", s.handleStop)
	api.Get("/events", s.handleEvents)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start runs the hub and the HTTP listener. Blocks.
func (s *Server) Start() error {
	s.logger.Info("control surface listening", "port", s.port)
	go s.eventHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("server error", "error", err)
		}
	}()
}

// PublishEvent records a detection event and broadcasts it to
// connected dashboard clients.
func (s *Server) PublishEvent(event gate.Event) {
	s.eventsMu.Lock()
	s.events = append(s.events, event)
	if len(s.events) > maxRecentEvents {
		s.events = s.events[1:]
	}
	s.eventsMu.Unlock()

	s.eventHub.BroadcastJSON(event)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
