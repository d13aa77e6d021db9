/*
	mbox-builder
	Copyright (c) 2021 ModbusBox.  All right reserved.

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package credentials stores the GitHub credentials used to build the firmware.
package credentials

import (
	"strings"
	"sync"
)

const (
	usernameKey = "gh_username"
	passwordKey = "gh_password"
)

// Credentials are the GitHub username and password (or token) handed to the
// firmware builder to fetch private sources.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Empty is true when neither field is set.
func (c Credentials) Empty() bool {
	return c.Username == "" && c.Password == ""
}

// MaskedPassword returns the password with every character replaced by '*'.
func (c Credentials) MaskedPassword() string {
	return strings.Repeat("*", len(c.Password))
}

// Store persists a single pair of credentials. Store replaces both fields at
// once, there are no partial updates.
type Store interface {
	Store(c Credentials) error
	Retrieve() (Credentials, error)
	Exists() (bool, error)
}

// KeyValueStore is the backing storage of ConfigStore.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(values map[string]string) error
}

// ConfigStore keeps the credentials in a KeyValueStore under the
// gh_username and gh_password keys.
type ConfigStore struct {
	kv KeyValueStore
}

// NewConfigStore creates a Store on top of kv.
func NewConfigStore(kv KeyValueStore) *ConfigStore {
	return &ConfigStore{kv: kv}
}

// Store implements Store.
func (s *ConfigStore) Store(c Credentials) error {
	return s.kv.Set(map[string]string{
		usernameKey: c.Username,
		passwordKey: c.Password,
	})
}

// Retrieve implements Store.
func (s *ConfigStore) Retrieve() (Credentials, error) {
	username, _, err := s.kv.Get(usernameKey)
	if err != nil {
		return Credentials{}, err
	}
	password, _, err := s.kv.Get(passwordKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, Password: password}, nil
}

// Exists is true if either the username or the password is set.
func (s *ConfigStore) Exists() (bool, error) {
	c, err := s.Retrieve()
	if err != nil {
		return false, err
	}
	return !c.Empty(), nil
}

// MemoryStore is a Store living in memory only.
type MemoryStore struct {
	mu          sync.Mutex
	credentials Credentials
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Store implements Store.
func (s *MemoryStore) Store(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = c
	return nil
}

// Retrieve implements Store.
func (s *MemoryStore) Retrieve() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credentials, nil
}

// Exists implements Store.
func (s *MemoryStore) Exists() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.credentials.Empty(), nil
}
