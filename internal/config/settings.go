package config

import (
	"fmt"
	"strings"

	"prefect-manager/internal/utils"

	"github.com/spf13/viper"
)

// Keys shared by the cobra flags, the env bindings and Load.
const (
	KeyHome         = "home"
	KeyActiveConfig = "active-config"
	KeyLoginCommand = "login-command"
	KeyEditor       = "editor"
	KeyTokenField   = "token-field"
	KeyLogLevel     = "log-level"

	EnvPrefix = "PREFECT_MANAGER"

	DefaultLoginCommand = "prefect auth login --token"
	DefaultTokenField   = "cloud.agent"
	DefaultLogLevel     = "warn"
)

// Settings is everything the manager needs to know about the outside world.
type Settings struct {
	StateDir         string
	ActiveConfigPath string
	LoginCommand     []string
	Editor           []string
	TokenField       []string
	LogLevel         string
}

// NewViper returns a viper instance reading PREFECT_MANAGER_* variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyLoginCommand, DefaultLoginCommand)
	v.SetDefault(KeyTokenField, DefaultTokenField)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	return v
}

// Load resolves settings from v, filling home-relative defaults for anything
// left empty.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		StateDir:         v.GetString(KeyHome),
		ActiveConfigPath: v.GetString(KeyActiveConfig),
		LogLevel:         v.GetString(KeyLogLevel),
	}

	var err error
	if s.StateDir == "" {
		if s.StateDir, err = utils.DefaultStateDir(); err != nil {
			return Settings{}, fmt.Errorf("resolve state directory: %w", err)
		}
	}
	if s.ActiveConfigPath == "" {
		if s.ActiveConfigPath, err = utils.DefaultActiveConfigPath(); err != nil {
			return Settings{}, fmt.Errorf("resolve active config path: %w", err)
		}
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}

	login := v.GetString(KeyLoginCommand)
	if login == "" {
		login = DefaultLoginCommand
	}
	s.LoginCommand = strings.Fields(login)

	editor := v.GetString(KeyEditor)
	if editor == "" {
		editor = utils.DefaultEditor()
	}
	s.Editor = strings.Fields(editor)
	if len(s.Editor) == 0 {
		return Settings{}, fmt.Errorf("editor command is empty")
	}

	s.TokenField, err = ParseFieldPath(v.GetString(KeyTokenField))
	if err != nil {
		return Settings{}, err
	}

	return s, nil
}

// ParseFieldPath splits a dotted TOML key path such as "cloud.agent".
func ParseFieldPath(raw string) ([]string, error) {
	if raw == "" {
		raw = DefaultTokenField
	}
	parts := strings.Split(raw, ".")
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("invalid token field %q: empty path segment", raw)
		}
	}
	return parts, nil
}
