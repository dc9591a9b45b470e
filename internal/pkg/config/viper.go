package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper implements Config on top of github.com/spf13/viper with hot reload.
type Viper struct {
	v *viper.Viper
}

// NewViper loads the configuration file at pathFile and watches it for
// changes. The format is inferred from the file extension.
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()

	filename := path.Base(pathFile)
	name := filename[:len(filename)-len(path.Ext(filename))]

	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(name)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "error", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from an in-memory document. Intended
// for tests. configType is a format viper understands, such as "yaml".
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config: type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// GetString returns the value for key as a string.
func (c *Viper) GetString(key string) string {
	return c.v.GetString(key)
}

// GetBool returns the value for key as a bool.
func (c *Viper) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetInt returns the value for key as an int.
func (c *Viper) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 returns the value for key as an int64.
func (c *Viper) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetUint16 returns the value for key as a uint16.
func (c *Viper) GetUint16(key string) uint16 {
	return uint16(c.v.GetUint(key))
}

// GetFloat64 returns the value for key as a float64.
func (c *Viper) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetSecond interprets the value for key as seconds.
func (c *Viper) GetSecond(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Second
}

// GetMinute interprets the value for key as minutes.
func (c *Viper) GetMinute(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Minute
}

// GetBinary decodes the base64-encoded value for key, or nil when invalid.
func (c *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(c.v.GetString(key))
	if err != nil {
		return nil
	}
	return data
}

// GetArray splits the comma-separated value for key.
func (c *Viper) GetArray(key string) []string {
	return strings.Split(c.v.GetString(key), ",")
}

// GetMap parses the value for key from "k:v" pairs separated by commas.
func (c *Viper) GetMap(key string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(c.v.GetString(key), ",") {
		if k, v, ok := strings.Cut(pair, ":"); ok {
			out[k] = v
		}
	}
	return out
}

// Close implements io.Closer. Viper holds no closable resources.
func (c *Viper) Close() error {
	return nil
}
