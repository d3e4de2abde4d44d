package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]any)

	// .env loading happens once per process; a missing file is not an error.
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. The first call for a given
// type reads the environment; subsequent calls return the cached value, so
// every consumer of a config type observes identical settings.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(*cfg)
	if cached, ok := cache[t]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", t, err)
	}

	cache[t] = *cfg
	return nil
}

// MustLoad is Load that panics on failure, for startup wiring.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
