// Package manager implements the profile operations: account registry
// maintenance, config templates, and activation of an account against the
// prefect CLI.
package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prefect-manager/internal/config"
	"prefect-manager/internal/configdoc"
	"prefect-manager/internal/history"
	"prefect-manager/internal/registry"
	"prefect-manager/internal/utils"

	"github.com/rs/zerolog"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrConfigNotFound  = errors.New("config not found")
	ErrEmptyValue      = errors.New("value must not be empty")
	ErrInvalidName     = errors.New("invalid config name")
	ErrNoJournal       = errors.New("activation history is not available")
)

// Journal records activations. *history.Journal satisfies it.
type Journal interface {
	Record(ctx context.Context, account, config string, at time.Time) error
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
	Last(ctx context.Context) (history.Entry, bool, error)
}

type Options struct {
	Settings config.Settings
	Runner   utils.Runner
	// Journal is optional.
	Journal Journal
	Logger  zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Manager struct {
	settings config.Settings
	runner   utils.Runner
	journal  Journal
	log      zerolog.Logger
	now      func() time.Time
}

func New(opts Options) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		settings: opts.Settings,
		runner:   opts.Runner,
		journal:  opts.Journal,
		log:      opts.Logger,
		now:      now,
	}
}

func (m *Manager) Settings() config.Settings {
	return m.settings
}

func (m *Manager) registryPath() string {
	return filepath.Join(m.settings.StateDir, registry.FileName)
}

// ConfigPath returns the template file for a config name.
func (m *Manager) ConfigPath(name string) string {
	return configdoc.Path(m.settings.StateDir, name)
}

// Initialize seeds the state directory on first run. An existing directory
// is left alone whatever it holds. seeded reports whether anything was
// written.
func (m *Manager) Initialize() (seeded bool, err error) {
	_, err = os.Stat(m.settings.StateDir)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat state directory: %w", err)
	}

	if err := os.MkdirAll(m.settings.StateDir, 0o700); err != nil {
		return false, fmt.Errorf("create state directory: %w", err)
	}
	if err := registry.NewStore(m.registryPath()).Save(); err != nil {
		return false, err
	}
	if err := configdoc.Default().Save(m.ConfigPath(configdoc.DefaultName)); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}

	m.log.Debug().Str("dir", m.settings.StateDir).Msg("initialized state directory")
	return true, nil
}

func (m *Manager) loadRegistry() (*registry.Store, error) {
	store := registry.NewStore(m.registryPath())
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// AddAccount stores token under name, replacing any previous token.
func (m *Manager) AddAccount(name, token string) error {
	if name == "" {
		return fmt.Errorf("account name: %w", ErrEmptyValue)
	}
	if token == "" {
		return fmt.Errorf("access token: %w", ErrEmptyValue)
	}

	store, err := m.loadRegistry()
	if err != nil {
		return err
	}
	_, existed := store.Token(name)
	if err := store.Put(name, token); err != nil {
		return err
	}

	m.log.Debug().Str("account", name).Bool("replaced", existed).Msg("saved account")
	return nil
}

func (m *Manager) ListAccounts() ([]string, error) {
	store, err := m.loadRegistry()
	if err != nil {
		return nil, err
	}
	return store.Names(), nil
}

// Activate writes configName with the account's token into the active
// config file and logs the prefect CLI in with that token. An empty
// configName means the default template.
func (m *Manager) Activate(ctx context.Context, account, configName string) error {
	if configName == "" {
		configName = configdoc.DefaultName
	}

	doc, err := m.loadTemplate(configName)
	if err != nil {
		return err
	}

	store, err := m.loadRegistry()
	if err != nil {
		return err
	}
	token, ok := store.Token(account)
	if !ok {
		return fmt.Errorf("%w: %q", ErrAccountNotFound, account)
	}

	doc.Set(m.settings.TokenField, token)
	if err := doc.Save(m.settings.ActiveConfigPath); err != nil {
		return fmt.Errorf("write active config: %w", err)
	}
	m.log.Debug().
		Str("account", account).
		Str("config", configName).
		Str("path", m.settings.ActiveConfigPath).
		Msg("wrote active config")

	if m.journal != nil {
		if err := m.journal.Record(ctx, account, configName, m.now()); err != nil {
			m.log.Warn().Err(err).Msg("activation not recorded")
		}
	}

	return m.login(ctx, token)
}

// login runs the login command with the token appended. The command's exit
// status is logged only; failing to start it is an error.
func (m *Manager) login(ctx context.Context, token string) error {
	if len(m.settings.LoginCommand) == 0 {
		return errors.New("login command is empty")
	}
	name := m.settings.LoginCommand[0]
	args := append(append([]string{}, m.settings.LoginCommand[1:]...), token)

	err := m.runner.Run(ctx, name, args...)
	var exit utils.ExitCoder
	switch {
	case err == nil:
		m.log.Debug().Str("command", name).Msg("login finished")
		return nil
	case errors.As(err, &exit):
		m.log.Warn().Str("command", name).Int("exit_code", exit.ExitCode()).Msg("login command exited with non-zero status")
		return nil
	default:
		return fmt.Errorf("run login command %q: %w", name, err)
	}
}

func (m *Manager) loadTemplate(name string) (configdoc.Document, error) {
	if err := validateConfigName(name); err != nil {
		return nil, err
	}
	path := m.ConfigPath(name)
	doc, err := configdoc.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q: %w", ErrConfigNotFound, name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", name, err)
	}
	return doc, nil
}

// AddConfig copies the TOML document at sourcePath into the state directory
// as name. An empty sourcePath means the active config file.
func (m *Manager) AddConfig(name, sourcePath string) error {
	if err := validateConfigName(name); err != nil {
		return err
	}
	if sourcePath == "" {
		sourcePath = m.settings.ActiveConfigPath
	}

	doc, err := configdoc.Load(sourcePath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrConfigNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("load %q: %w", sourcePath, err)
	}

	dest := m.ConfigPath(name)
	if err := doc.Save(dest); err != nil {
		return fmt.Errorf("save config %q: %w", name, err)
	}
	m.log.Debug().Str("config", name).Str("source", sourcePath).Msg("added config")
	return nil
}

func (m *Manager) ListConfigs() ([]string, error) {
	names, err := configdoc.ListNames(m.settings.StateDir)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	return names, nil
}

// EditConfig opens a template in the editor and waits for it to exit. The
// file does not have to exist yet and is not validated afterwards.
func (m *Manager) EditConfig(ctx context.Context, name string) error {
	if name == "" {
		name = configdoc.DefaultName
	}
	if err := validateConfigName(name); err != nil {
		return err
	}
	if len(m.settings.Editor) == 0 {
		return errors.New("editor command is empty")
	}

	path := m.ConfigPath(name)
	editor := m.settings.Editor[0]
	args := append(append([]string{}, m.settings.Editor[1:]...), path)

	m.log.Debug().Str("editor", editor).Str("path", path).Msg("opening editor")
	if err := m.runner.Run(ctx, editor, args...); err != nil {
		return fmt.Errorf("run editor %q: %w", editor, err)
	}
	return nil
}

// History returns up to limit activations, newest first.
func (m *Manager) History(ctx context.Context, limit int) ([]history.Entry, error) {
	if m.journal == nil {
		return nil, ErrNoJournal
	}
	return m.journal.Recent(ctx, limit)
}

// Current returns the last activation, if any.
func (m *Manager) Current(ctx context.Context) (history.Entry, bool, error) {
	if m.journal == nil {
		return history.Entry{}, false, ErrNoJournal
	}
	return m.journal.Last(ctx)
}

func validateConfigName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
