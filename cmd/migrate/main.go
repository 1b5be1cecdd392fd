package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/repository"
	pkglogger "github.com/skillswap/skillswap/pkg/logger"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}

	// CLI flags
	configPath := flag.String("config", config.ConfigPath(env), "config file path")
	importPath := flag.String("import", "", "localStorage JSON export to load into the storage")
	exportPath := flag.String("export", "", "write the stored state to this file in localStorage export format")
	dryRun := flag.Bool("dry-run", false, "show what would be imported without writing")
	flag.Parse()

	if (*importPath == "") == (*exportPath == "") {
		log.Fatal("exactly one of -import or -export is required")
	}

	config.LoadDotEnv(env)
	pkglogger.InitStructured(env)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Storage.Driver == config.DriverMemory {
		log.Fatal("memory storage is not persistent, choose sqlite, mysql or redis")
	}

	substrate, err := repository.OpenSubstrate(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer substrate.Close()

	if *importPath != "" {
		runImport(substrate.KV, *importPath, *dryRun)
		return
	}
	runExport(substrate.KV, *exportPath)
}

func runImport(kv repository.KVStore, path string, dryRun bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	var dump map[string]string
	if err := json.Unmarshal(data, &dump); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	report, err := repository.ImportDump(kv, dump, dryRun)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	for _, k := range report.Skipped {
		pkglogger.Warn("skipped unknown key %s", k)
	}
	if dryRun {
		pkglogger.Info("[DRY RUN] would import %d keys: %v", len(report.Imported), report.Imported)
		return
	}

	st := repository.NewStateRepository(kv, pkglogger.WithComponent("migrate")).Load()
	pkglogger.Info("Imported %d keys: %d users, %d services, %d chat sessions, %d messages",
		len(report.Imported), len(st.Users), len(st.Services), len(st.ChatSessions), len(st.ChatMessages))
}

func runExport(kv repository.KVStore, path string) {
	dump, err := repository.ExportDump(kv)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	pkglogger.Info("Exported %d keys to %s", len(dump), path)
}
