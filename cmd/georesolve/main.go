package main

import (
	"flag"
	"log"

	"github.com/veralens/creatorscope/internal/config"
	"github.com/veralens/creatorscope/internal/geo"
	"github.com/veralens/creatorscope/internal/logger"
	"github.com/veralens/creatorscope/internal/storage"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Reference.GeoDatabase == "" {
		logger.Fatal("reference.geo_database is required for geo resolution")
	}
	db, err := geo.LoadDatabase(cfg.Reference.GeoDatabase)
	if err != nil {
		logger.Fatal("Failed to load geo database: %v", err)
	}

	store := storage.New(cfg.Input.MasterFile, 0o644, 0o755)
	if err := store.LoadMaster(); err != nil {
		logger.Fatal("Failed to load master collection: %v", err)
	}

	records := store.GetAllRecords()
	resolved := 0
	for _, record := range records {
		if geo.PatchRecord(record, db) {
			resolved++
		}
	}

	if err := store.SaveMaster(); err != nil {
		logger.Fatal("Failed to save master collection: %v", err)
	}

	logger.Info("Geo resolution complete: %d of %d records resolved", resolved, len(records))
}
