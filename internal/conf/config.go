package conf

/*
 Copyright 2019 - 2025 Crunchy Data Solutions, Inc.
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at
      http://www.apache.org/licenses/LICENSE-2.0
 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DatabaseConfig binds the PostGIS connection and pool settings, plus the
// table include/exclude filters applied to the introspected layers when the
// tileset catalogue is built at startup.
type DatabaseConfig struct {
	DSN           string
	MaxOpenConns  int
	MaxIdleConns  int
	TableIncludes []string
	TableExcludes []string
}

// CacheConfig binds the tile cache façade's backend selection and limits.
type CacheConfig struct {
	Enabled    bool
	MaxItems   int
	ApiKey     string
	DisableApi bool
}

// ServerConfig binds the HTTP surface's bind address and diagnostics.
type ServerConfig struct {
	HTTPPort int
	Debug    bool
	BasePath string
}

// Config is the full application configuration, per spec.md's AMBIENT
// STACK expansion — restricted to connection/pool/cache/server settings;
// tileset/layer definitions are out of scope (spec.md §1 Non-goals) and
// arrive pre-parsed as the data model in internal/layer.
type Config struct {
	Database DatabaseConfig
	Cache    CacheConfig
	Server   ServerConfig
}

// Configuration is the process-wide configuration singleton, populated by
// InitConfig.
var Configuration Config

func setDefaults() {
	viper.SetDefault("database.maxopenconns", 30)
	viper.SetDefault("database.maxidleconns", 10)
	viper.SetDefault("database.tableincludes", []string{})
	viper.SetDefault("database.tableexcludes", []string{})
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.maxitems", 1000)
	viper.SetDefault("cache.disableapi", false)
	viper.SetDefault("server.httpport", 8080)
	viper.SetDefault("server.debug", false)
	viper.SetDefault("server.basepath", "")
}

// InitConfig loads configuration from an optional TOML file at path, then
// layers environment variable overrides on top (env wins), matching the
// teacher's internal/conf pattern: prefix AppConfig.EnvPrefix, "." replaced
// by "_" in variable names.
func InitConfig(path string, debug bool) {
	viper.SetEnvPrefix(AppConfig.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			log.Warnf("conf: could not read config file %s: %v", path, err)
		}
	}

	Configuration = Config{
		Database: DatabaseConfig{
			DSN:           viper.GetString("database.dsn"),
			MaxOpenConns:  viper.GetInt("database.maxopenconns"),
			MaxIdleConns:  viper.GetInt("database.maxidleconns"),
			TableIncludes: stringList("database.tableincludes"),
			TableExcludes: stringList("database.tableexcludes"),
		},
		Cache: CacheConfig{
			Enabled:    viper.GetBool("cache.enabled"),
			MaxItems:   viper.GetInt("cache.maxitems"),
			ApiKey:     viper.GetString("cache.apikey"),
			DisableApi: viper.GetBool("cache.disableapi"),
		},
		Server: ServerConfig{
			HTTPPort: viper.GetInt("server.httpport"),
			Debug:    debug || viper.GetBool("server.debug"),
			BasePath: viper.GetString("server.basepath"),
		},
	}
}

// stringList reads a viper key as either a native string slice (from a TOML
// array) or a comma-separated environment variable value, defaulting to an
// empty (not nil) slice.
func stringList(key string) []string {
	if s, ok := viper.Get(key).(string); ok {
		if s == "" {
			return []string{}
		}
		return strings.Split(s, ",")
	}
	if raw := viper.GetStringSlice(key); len(raw) > 0 {
		return raw
	}
	return []string{}
}

// DumpConfig logs the effective configuration at startup, adapted from the
// teacher's conf.DumpConfig.
func DumpConfig() {
	log.Infof("%s %s starting with database.maxopenconns=%d cache.maxitems=%d server.httpport=%d",
		AppConfig.Name, AppConfig.Version,
		Configuration.Database.MaxOpenConns, Configuration.Cache.MaxItems, Configuration.Server.HTTPPort)
}
