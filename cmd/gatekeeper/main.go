// Gatekeeper runs the vehicle-access detection service: it pulls
// camera frames, recognizes license plates, checks them against the
// remote registry and exposes a control surface for the dashboard.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bwalyaChanda3/vehicle-access-system/internal/config"
	"github.com/bwalyaChanda3/vehicle-access-system/internal/log"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/gate"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/ocr"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/plate"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/registry"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/web"
)

func main() {
	godotenv.Load()
	log.Init(config.LogLevel())

	serverURL := config.ServerURL()
	log.Info("starting gatekeeper",
		"registry", serverURL,
		"camera", config.CameraIndex(),
		"cooldown", config.CooldownWindow(),
		"frame_interval", config.FrameInterval())

	recognizer, err := ocr.NewTesseract(ocr.DefaultTesseractConfig())
	if err != nil {
		log.Error("failed to initialize text recognition", "error", err)
		os.Exit(1)
	}
	defer recognizer.Close()

	reg := registry.NewClient(
		registry.WithBaseURL(serverURL),
		registry.WithLogger(log.L()),
	)
	localizer := plate.NewLocalizer(plate.DefaultConfig())
	cooldown := gate.NewCooldown(config.CooldownWindow())
	pipeline := gate.NewPipeline(localizer, recognizer, reg, cooldown)

	cameraIndex := config.CameraIndex()
	loop := gate.NewLoop(pipeline, func() (gate.FrameSource, error) {
		return gate.OpenCamera(cameraIndex)
	}, config.FrameInterval())

	server := web.NewServer(config.Port(), loop, reg.BaseURL(), cooldown.Window())
	loop.OnEvent = server.PublishEvent
	server.StartAsync()

	// A missing camera is not fatal to the process; the control
	// surface can retry start once the device is available.
	if err := loop.Start(); err != nil {
		log.Warn("detection not started", "error", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	loop.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error("server shutdown", "error", err)
	}
}
