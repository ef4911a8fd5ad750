// Package session keeps the signed-in user between runs. Exactly two keys are
// stored: auth_user and auth_token.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// User is the profile cached with the session.
type User struct {
	ID       string  `yaml:"id" json:"id"`
	Username string  `yaml:"username" json:"username"`
	Email    string  `yaml:"email" json:"email"`
	Role     string  `yaml:"role" json:"role"`
	FullName *string `yaml:"full_name,omitempty" json:"fullName"`
	Phone    *string `yaml:"phone,omitempty" json:"phone"`
}

// DisplayName is the full name when present, else the username.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

type Data struct {
	User  *User  `yaml:"auth_user,omitempty"`
	Token string `yaml:"auth_token,omitempty"`
}

// Store is durable session storage. Load on an empty store returns a zero Data.
type Store interface {
	Load() (Data, error)
	Save(Data) error
	Clear() error
}

// File stores the session as YAML at Path.
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

func (f *File) Load() (Data, error) {
	var d Data
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d, nil
		}
		return d, fmt.Errorf("failed to read session: %w", err)
	}
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("failed to parse session: %w", err)
	}
	return d, nil
}

func (f *File) Save(d Data) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(f.Path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (f *File) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Memory is an in-process Store for tests and one-shot commands.
type Memory struct {
	mu   sync.Mutex
	data Data
}

func (m *Memory) Load() (Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *Memory) Save(d Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = d
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = Data{}
	return nil
}
