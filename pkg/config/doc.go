// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is read on first use; variables
// already set in the environment win. Struct fields are parsed with
// caarlos0/env tags:
//
//	type ServerConfig struct {
//	    Addr   string `env:"ADDR" envDefault:":8080"`
//	    Reload bool   `env:"RELOAD"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Each configuration type is parsed once and cached; later calls for the
// same type return the cached value.
package config
