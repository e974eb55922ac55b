// Package config handles process configuration for every pokertracker
// binary: a YAML file in the home directory, POKERTRACKER_* environment
// variables, and a .env file if one is lying around.
//
// TODO: I have never seen a viper setup that I liked.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	keyListenAddress  = "listen_address"
	keySessionSecret  = "session_secret"
	keySecureCookies  = "secure_cookies"
	keyMaxScreens     = "max_screens"
	keyAllowedOrigins = "allowed_origins"
	keyLogLevel       = "log_level"
	keyDefaultMode    = "default_mode"
)

var envNames = map[string]string{
	keyListenAddress:  "POKERTRACKER_LISTEN_ADDRESS",
	keySessionSecret:  "POKERTRACKER_SESSION_SECRET",
	keySecureCookies:  "POKERTRACKER_SECURE_COOKIES",
	keyMaxScreens:     "POKERTRACKER_MAX_SCREENS",
	keyAllowedOrigins: "POKERTRACKER_ALLOWED_ORIGINS",
	keyLogLevel:       "POKERTRACKER_LOG_LEVEL",
	keyDefaultMode:    "POKERTRACKER_DEFAULT_MODE",
}

// Viper-based config loader.  Safe to call more than once.
func Init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("can't load .env")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(".pokertracker")
	viper.AddConfigPath(home)
	SetDefaults(viper.GetViper())
	err = viper.ReadInConfig() // ignore error if config file missing
	if err != nil {
		log.Debug().Err(err).Msg("viper can't read config file")
	}
	log.Debug().
		Str("listen_address", ListenAddress()).
		Int("max_screens", MaxScreens()).
		Str("log_level", LogLevel()).
		Msg("configuration loaded")
}

// SetDefaults installs env bindings and defaults on v.  Init does this for
// the global viper; tests use their own.
func SetDefaults(v *viper.Viper) {
	v.AutomaticEnv()
	for key, env := range envNames {
		v.BindEnv(key, env)
	}
	v.SetDefault(keyListenAddress, ":8080")
	v.SetDefault(keySessionSecret, "")
	v.SetDefault(keySecureCookies, false)
	v.SetDefault(keyMaxScreens, 1000)
	v.SetDefault(keyAllowedOrigins, []string{})
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyDefaultMode, "mfactor")
}

func ListenAddress() string {
	return viper.GetString(keyListenAddress)
}

func SessionSecret() string {
	return viper.GetString(keySessionSecret)
}

func SecureCookies() bool {
	return viper.GetBool(keySecureCookies)
}

// MaxScreens bounds how many browser sessions the server keeps in memory.
func MaxScreens() int {
	n := viper.GetInt(keyMaxScreens)
	if n < 1 {
		return 1
	}
	return n
}

func AllowedOrigins() []string {
	return viper.GetStringSlice(keyAllowedOrigins)
}

func LogLevel() string {
	return viper.GetString(keyLogLevel)
}

func DefaultMode() string {
	return viper.GetString(keyDefaultMode)
}
