// Package config resolves process configuration from the environment.
package config

import "github.com/spf13/viper"

// Config holds everything the process needs, resolved once at startup and
// passed down explicitly.
type Config struct {
	MongoURI   string
	Database   string
	Collection string
	HTTPAddr   string
}

// Load reads the environment with defaults suitable for local development.
// It uses its own viper instance; no global configuration state survives the
// call.
func Load() Config {
	v := viper.New()
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db", "datagrid")
	v.SetDefault("mongo_collection", "people")
	v.SetDefault("http_addr", ":8080")
	v.AutomaticEnv()

	return Config{
		MongoURI:   v.GetString("mongo_uri"),
		Database:   v.GetString("mongo_db"),
		Collection: v.GetString("mongo_collection"),
		HTTPAddr:   v.GetString("http_addr"),
	}
}
