package config

import (
	"github.com/spf13/viper"

	"github.com/Veraticus/arkas/internal/storage"
)

// LoadStorageConfig returns the configured submission store location.
func LoadStorageConfig(v *viper.Viper) storage.Config {
	return storage.Config{
		Backend: v.GetString("storage.backend"),
		Path:    ExpandPath(v.GetString("storage.path")),
		DSN:     v.GetString("storage.dsn"),
	}
}
