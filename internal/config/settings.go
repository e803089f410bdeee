package config

import "github.com/spf13/viper"

// Settings is a read-only key lookup over the loaded configuration.
type Settings struct {
	v *viper.Viper
}

// NewSettings wraps v. A nil v uses the global viper instance.
func NewSettings(v *viper.Viper) *Settings {
	if v == nil {
		v = viper.GetViper()
	}

	return &Settings{v: v}
}

// Get returns the raw value stored under key, or nil.
func (s *Settings) Get(key string) any {
	return s.v.Get(key)
}
