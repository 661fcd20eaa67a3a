package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParse wraps errors from parsing environment variables.
var ErrParse = errors.New("config: failed to parse environment")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> value
)

// Load fills cfg from the environment.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	v, _ := cache.LoadOrStore(key, loaded)
	*cfg = v.(T)
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// LoadFiles reads the given env files into the process environment without
// overriding variables that are already set.
func LoadFiles(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}
