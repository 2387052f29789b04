// Command seed loads operator-curated monitored cities and the reference
// connector's source row from a YAML file into the store, and loads the
// extractor's location alias tables from a YAML file into this process's
// in-memory extract.Default table. The alias tables are not written to the
// store, so the job binaries keep their built-in alias defaults.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oricho123/rentifier/internal/adapter/observability"
	"github.com/oricho123/rentifier/internal/adapter/repo/postgres"
	"github.com/oricho123/rentifier/internal/config"
	"github.com/oricho123/rentifier/internal/domain"
	"github.com/oricho123/rentifier/internal/extract"
)

type citiesYAML struct {
	Sources []struct {
		Name    string `yaml:"name"`
		Enabled bool   `yaml:"enabled"`
	} `yaml:"sources"`
	Cities []struct {
		ID       string `yaml:"id"`
		CityName string `yaml:"city_name"`
		CityCode string `yaml:"city_code"`
		Enabled  bool   `yaml:"enabled"`
		Priority int    `yaml:"priority"`
	} `yaml:"cities"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg, "seed")
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.ApplyEmbeddedSchema(ctx, pool); err != nil {
		slog.Error("schema apply failed", slog.Any("error", err))
		os.Exit(1)
	}

	if path := getenv("SEED_CITIES_FILE", ""); path != "" {
		if err := seedCities(ctx, pool, path); err != nil {
			slog.Error("city/source seed failed", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		slog.Info("SEED_CITIES_FILE not set, skipping city/source seed")
	}

	if path := getenv("SEED_ALIASES_FILE", ""); path != "" {
		if err := extract.Default.LoadFromYAML(path); err != nil {
			slog.Error("alias table seed failed", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("alias table loaded", slog.String("path", path))
	} else {
		slog.Info("SEED_ALIASES_FILE not set, keeping built-in alias defaults")
	}

	slog.Info("seed complete")
}

// seedCities upserts every Source and MonitoredCity row named in path.
// Idempotent: re-running with the same file converges to the same state.
func seedCities(ctx domain.Context, pool postgres.PgxPool, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("op=seed.seed_cities.read: %w", err)
	}
	var doc citiesYAML
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("op=seed.seed_cities.parse: %w", err)
	}

	sources := postgres.NewSourceRepo(pool)
	for _, s := range doc.Sources {
		if err := sources.UpsertByName(ctx, s.Name, s.Enabled); err != nil {
			return fmt.Errorf("op=seed.seed_cities.source: %w", err)
		}
		slog.Info("seeded source", slog.String("name", s.Name), slog.Bool("enabled", s.Enabled))
	}

	cities := postgres.NewCityRepo(pool)
	for _, c := range doc.Cities {
		mc := domain.MonitoredCity{ID: c.ID, CityName: c.CityName, CityCode: c.CityCode, Enabled: c.Enabled, Priority: c.Priority}
		if err := cities.Upsert(ctx, mc); err != nil {
			return fmt.Errorf("op=seed.seed_cities.city: %w", err)
		}
		slog.Info("seeded city", slog.String("id", c.ID), slog.String("city_name", c.CityName))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
