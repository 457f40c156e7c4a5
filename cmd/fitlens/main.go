package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/config"
	"github.com/ideal206/fitlens/internal/posedetect"
	"github.com/ideal206/fitlens/internal/server"
	"github.com/ideal206/fitlens/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to fitlens.yaml (default: ./fitlens.yaml if present)")
	staticDir := flag.String("static", "", "directory of static files to serve at /")
	flag.Parse()

	fmt.Println("fitlens - body measurement and garment fit service")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	detector, err := posedetect.NewMediaPipeDetector(posedetect.Config{
		ModelComplexity:    cfg.Detector.ModelComplexity,
		MinConfidence:      cfg.Detector.MinConfidence,
		EnableSegmentation: cfg.Detector.EnableSegmentation,
	}, cfg.Detector.Script, cfg.Detector.Python)
	if err != nil {
		log.Fatalf("Failed to initialize pose detector: %v", err)
	}
	defer detector.Close()

	var cat *catalog.Catalog
	if cfg.Charts.Path != "" {
		cat = catalog.LoadFile(cfg.Charts.Path)
	} else {
		cat = catalog.Load()
	}
	fmt.Printf("Loaded %d size charts\n", cat.Len())

	srv := server.New(server.Config{
		Store:       st,
		Detector:    detector,
		Catalog:     cat,
		Params:      cfg.Measure,
		CascadePath: cfg.Avatar.CascadePath,
		StaticDir:   *staticDir,
	})

	fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
