// Package config loads typed configuration structs from environment
// variables using caarlos0/env, with optional dotenv files read by godotenv.
//
// Each package that needs configuration declares its own Config struct with
// `env` and `envDefault` tags. The binary loads them explicitly at startup
// and passes the values down:
//
//	var pgCfg pg.Config
//	if err := config.Load(&pgCfg); err != nil {
//		return err
//	}
//
// LoadEnv merges additional dotenv files without overriding variables that
// are already set in the process environment.
package config
