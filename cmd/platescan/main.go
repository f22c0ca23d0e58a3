// Platescan runs the detection pipeline once on an image file.
// Useful for checking localization and recognition against stills
// without a camera or a running service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gocv.io/x/gocv"

	"github.com/bwalyaChanda3/vehicle-access-system/internal/config"
	"github.com/bwalyaChanda3/vehicle-access-system/internal/log"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/gate"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/ocr"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/plate"
	"github.com/bwalyaChanda3/vehicle-access-system/pkg/registry"
)

func main() {
	godotenv.Load()
	log.Init(config.LogLevel())

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: platescan <image>")
		os.Exit(2)
	}

	img := gocv.IMRead(os.Args[1], gocv.IMReadColor)
	if img.Empty() {
		fmt.Fprintf(os.Stderr, "could not load image: %s\n", os.Args[1])
		os.Exit(1)
	}
	defer img.Close()

	recognizer, err := ocr.NewTesseract(ocr.DefaultTesseractConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "text recognition unavailable: %v\n", err)
		os.Exit(1)
	}
	defer recognizer.Close()

	reg := registry.NewClient(registry.WithBaseURL(config.ServerURL()))
	pipeline := gate.NewPipeline(
		plate.NewLocalizer(plate.DefaultConfig()),
		recognizer,
		reg,
		gate.NewCooldown(config.CooldownWindow()),
	)

	event := pipeline.ProcessFrame(context.Background(), img, time.Now())

	out, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
