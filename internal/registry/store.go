package registry

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"prefect-manager/internal/utils"

	"gopkg.in/yaml.v3"
)

// FileName is the registry file inside the state directory.
const FileName = "accounts.yml"

// document is the on-disk shape: {accounts: {name: token}}.
type document struct {
	Accounts map[string]string `yaml:"accounts"`
}

// Store maps account names to access tokens. It is read and written whole.
type Store struct {
	path     string
	Accounts map[string]string
}

func NewStore(path string) *Store {
	return &Store{
		path:     path,
		Accounts: make(map[string]string),
	}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory accounts with the file contents. A missing
// file loads as an empty registry.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.Accounts = make(map[string]string)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read registry %q: %w", s.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse registry %q: %w", s.path, err)
	}
	if doc.Accounts == nil {
		doc.Accounts = make(map[string]string)
	}
	s.Accounts = doc.Accounts
	return nil
}

// Save rewrites the whole registry file.
func (s *Store) Save() error {
	data, err := Marshal(s.Accounts)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// Put inserts or overwrites an account and saves.
func (s *Store) Put(name, token string) error {
	s.Accounts[name] = token
	return s.Save()
}

func (s *Store) Token(name string) (string, bool) {
	token, ok := s.Accounts[name]
	return token, ok
}

// Names returns the account names in the order they are written to disk.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Accounts))
	for name := range s.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marshal renders accounts in the registry file format. yaml.v3 emits map
// keys sorted.
func Marshal(accounts map[string]string) ([]byte, error) {
	if accounts == nil {
		accounts = map[string]string{}
	}
	data, err := yaml.Marshal(document{Accounts: accounts})
	if err != nil {
		return nil, fmt.Errorf("marshal registry: %w", err)
	}
	return data, nil
}
