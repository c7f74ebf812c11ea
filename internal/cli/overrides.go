// filepath: internal/cli/overrides.go
package cli

import (
	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/spf13/pflag"
)

// bindSettings registers the flag and environment variable of every setting with viper.
func bindSettings(flags *pflag.FlagSet, settings []setting) {
	for _, s := range settings {
		if s.flag != "" {
			if err := v.BindPFlag(s.key, flags.Lookup(s.flag)); err != nil {
				logging.Log.Fatalf("could not bind flag %s: %v", s.flag, err)
			}
		}
		if err := v.BindEnv(s.key, s.env); err != nil {
			logging.Log.Fatalf("could not bind env %s: %v", s.env, err)
		}
	}
}

// applyOverrides copies every setting given by flag or environment into c.
// Unset settings keep the value from the file, ParseAndValidate fills the rest.
func applyOverrides(c *config.Config) {
	overrideString(&c.Logging.Level, "logging.level")
	overrideString(&c.Database.Path, "database.path")
	overrideString(&c.Database.StorageRoot, "database.storage_root")
	overrideInt(&c.Preview.SquareThumbnailWidth, "preview.square_thumbnail_width")
	overrideBool(&c.Preview.SVGEnabled, "preview.svg_enabled")
	overrideString(&c.Preview.ConvertPath, "preview.convert_path")
	overrideString(&c.Preview.IconDir, "preview.icon_dir")
	overrideString(&c.Preview.DefaultOwner, "preview.default_owner")
	overrideString(&c.Cache.Backend, "cache.backend")
	overrideString(&c.Cache.RedisAddr, "cache.redis_addr")
	overrideString(&c.Cache.RedisPassword, "cache.redis_password")

	overrideString(&c.Server.Host, "server.host")
	overrideInt(&c.Server.Port, "server.port")
	overrideString(&c.Server.MaxDownloadSize, "server.max_download_size")
	overrideBool(&c.Logging.AuditEnabled, "logging.audit_enabled")
	overrideString(&c.Housekeeping.Interval, "housekeeping.interval")
	overrideString(&c.Housekeeping.MaxAge, "housekeeping.max_age")
}

func overrideString(dst *string, key string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func overrideInt(dst *int, key string) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func overrideBool(dst *bool, key string) {
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}
