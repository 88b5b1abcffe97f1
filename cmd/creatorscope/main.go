package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/veralens/creatorscope/internal/analyzer"
	"github.com/veralens/creatorscope/internal/batch"
	"github.com/veralens/creatorscope/internal/config"
	"github.com/veralens/creatorscope/internal/logger"
	"github.com/veralens/creatorscope/internal/models"
	"github.com/veralens/creatorscope/internal/refdata"
	"github.com/veralens/creatorscope/internal/storage"
	"github.com/veralens/creatorscope/internal/telegram"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	// Load reference tables, unreadable tables are fatal
	tables, err := refdata.Load(refdata.Paths{
		MaleNames:       cfg.Reference.MaleNames,
		FemaleNames:     cfg.Reference.FemaleNames,
		GenderedNiches:  cfg.Reference.GenderedNiches,
		CategoryTypeMap: cfg.Reference.CategoryTypeMap,
		GeoDatabase:     cfg.Reference.GeoDatabase,
	})
	if err != nil {
		logger.Fatal("Failed to load reference tables: %v", err)
	}

	// Pick the creator set: the CSV list when configured, otherwise every
	// directory under the base dir
	var usernames []string
	if cfg.Input.CreatorList != "" {
		usernames, err = batch.ReadCreatorList(cfg.Input.CreatorList)
	} else {
		usernames, err = batch.DiscoverCreators(cfg.Input.BaseDir)
	}
	if err != nil {
		logger.Fatal("Failed to list creators: %v", err)
	}
	if len(usernames) == 0 {
		logger.Fatal("No creators found under %s", cfg.Input.BaseDir)
	}

	store := storage.New(cfg.Input.MasterFile, 0o644, 0o755)
	runner := batch.NewRunner(cfg.Input.BaseDir, analyzer.New(tables), store, cfg.Batch.Workers)

	summary, err := runner.Run(usernames)
	if err != nil {
		logger.Error("Failed to persist master collection: %v", err)
	}

	printSummary(summary)

	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Error("Failed to initialize Telegram client: %v", err)
		} else if err := client.SendSummary(summary); err != nil {
			logger.Error("Failed to send Telegram summary: %v", err)
		}
	}

	if summary.Errors > 0 {
		os.Exit(1)
	}
}

func printSummary(summary *models.RunSummary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	fmt.Println()
	bold.Println("=== Creator Analysis Summary ===")
	fmt.Printf("Run ID:      %s\n", summary.RunID)
	fmt.Printf("Creators:    %d\n", summary.TotalCreators)
	green.Printf("Successful:  %d\n", summary.Successful)
	yellow.Printf("Skipped:     %d\n", summary.Skipped)
	red.Printf("Errors:      %d\n", summary.Errors)
	fmt.Printf("Success:     %.1f%%\n", summary.SuccessRate())
	cyan.Printf("USA: %d  Global: %d\n", summary.USACreators, summary.GlobalCreators)
	fmt.Printf("Elapsed:     %s\n", summary.Elapsed)

	if len(summary.SizeDistribution) > 0 {
		bold.Println("Creator sizes:")
		for tier, count := range summary.SizeDistribution {
			fmt.Printf("  %-22s %d\n", tier, count)
		}
	}
}
