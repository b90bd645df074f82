package main

import (
	"os"
	"strconv"
	"time"

	"github.com/Bricktech2000/Sandworm/internal/engine"
)

// loadConfig starts from engine.DefaultConfig and applies any tunable the
// environment overrides, following the teacher's os.Getenv("PORT") pattern
// in main.go. A present but unparsable value is silently ignored rather
// than failing startup.
func loadConfig() engine.Config {
	cfg := engine.DefaultConfig()

	if ms, ok := envInt("SANDWORM_SEARCH_TIME_MS"); ok {
		cfg.SearchTime = time.Duration(ms) * time.Millisecond
	}
	if ms, ok := envInt("SANDWORM_TOTAL_TIME_MS"); ok {
		cfg.TotalTime = time.Duration(ms) * time.Millisecond
	}
	if v, ok := envInt("SANDWORM_MAX_DEPTH"); ok {
		cfg.MaxDepth = v
	}
	if v, ok := envInt("SANDWORM_MAX_VORONOI"); ok {
		cfg.MaxVoronoi = v
	}
	if v, ok := envInt("SANDWORM_CHECK_DEPTH"); ok {
		cfg.CheckDepth = v
	}

	return cfg
}

func envInt(name string) (int, bool) {
	raw, set := os.LookupEnv(name)
	if !set {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
