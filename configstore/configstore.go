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

// Package configstore persists string settings in a JSON object file,
// one file per application namespace.
package configstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/arduino/go-paths-helper"
	"github.com/sirupsen/logrus"
	semver "go.bug.st/relaxed-semver"
)

// Store is a key/value store backed by a single JSON file.
type Store struct {
	mu   sync.Mutex
	path *paths.Path
}

// Namespace returns the store id for an application at a given version.
// Versions sharing the same major number share the same store, an
// unparsable version falls back to major 0.
func Namespace(application, version string) string {
	major := "0"
	if v, err := semver.Parse(version); err == nil {
		major = strings.SplitN(v.String(), ".", 2)[0]
	}
	return fmt.Sprintf("%s-v%s", application, major)
}

// DefaultDir returns the directory holding the stores of all applications.
func DefaultDir() (*paths.Path, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("getting user config dir: %w", err)
	}
	return paths.New(configDir, "configstore"), nil
}

// New returns the store with the given id inside dir.
func New(dir *paths.Path, id string) *Store {
	return &Store{path: dir.Join(id + ".json")}
}

// Path returns the location of the store file.
func (s *Store) Path() *paths.Path {
	return s.path
}

// Get returns the value of key. The boolean is false when the key is not set
// or is not a string.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := all[key].(string)
	return value, ok, nil
}

// Set writes all the given values with a single file write. Keys that are
// not in values are left untouched.
func (s *Store) Set(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range values {
		all[k] = v
	}
	return s.save(all)
}

func (s *Store) load() (map[string]interface{}, error) {
	all := map[string]interface{}{}
	if !s.path.Exist() {
		return all, nil
	}
	data, err := s.path.ReadFile()
	if err != nil {
		return nil, fmt.Errorf("reading config store %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decoding config store %s: %w", s.path, err)
	}
	return all, nil
}

func (s *Store) save(all map[string]interface{}) error {
	data, err := json.MarshalIndent(all, "", "\t")
	if err != nil {
		return fmt.Errorf("encoding config store: %w", err)
	}
	dir := s.path.Parent()
	if err := os.MkdirAll(dir.String(), 0700); err != nil {
		return fmt.Errorf("creating config store dir %s: %w", dir, err)
	}

	tmp := dir.Join(s.path.Base() + ".tmp")
	if err := os.WriteFile(tmp.String(), data, 0600); err != nil {
		return fmt.Errorf("writing config store %s: %w", tmp, err)
	}
	if err := tmp.Rename(s.path); err != nil {
		tmp.Remove()
		return fmt.Errorf("writing config store %s: %w", s.path, err)
	}
	logrus.Debugf("config store saved in %s", s.path)
	return nil
}
