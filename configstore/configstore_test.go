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

package configstore

import (
	"runtime"
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	require.Equal(t, "mbox-builder-v1", Namespace("mbox-builder", "1.4.2"))
	require.Equal(t, "mbox-builder-v0", Namespace("mbox-builder", "0.0.0-git"))
	require.Equal(t, "mbox-builder-v0", Namespace("mbox-builder", "not a version"))
}

func TestGetSet(t *testing.T) {
	store := New(paths.New(t.TempDir()), "test")

	_, found, err := store.Get("gh_username")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(map[string]string{"gh_username": "user", "gh_password": "secret"}))
	require.FileExists(t, store.Path().String())

	value, found, err := store.Get("gh_username")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "user", value)

	require.NoError(t, store.Set(map[string]string{"gh_password": "other"}))
	value, _, err = store.Get("gh_username")
	require.NoError(t, err)
	require.Equal(t, "user", value, "keys not in the update are preserved")
}

func TestStoresAreIndependent(t *testing.T) {
	dir := paths.New(t.TempDir())
	a := New(dir, "mbox-builder-v1")
	b := New(dir, "mbox-builder-v2")

	require.NoError(t, a.Set(map[string]string{"key": "a"}))
	_, found, err := b.Get("key")
	require.NoError(t, err)
	require.False(t, found)
}

func TestCorruptedStore(t *testing.T) {
	dir := paths.New(t.TempDir())
	require.NoError(t, dir.Join("broken.json").WriteFile([]byte("{not json")))

	_, _, err := New(dir, "broken").Get("key")
	require.Error(t, err)
}

func TestFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	store := New(paths.New(t.TempDir(), "nested"), "perm")
	require.NoError(t, store.Set(map[string]string{"key": "value"}))

	info, err := store.Path().Stat()
	require.NoError(t, err)
	require.Equal(t, "-rw-------", info.Mode().Perm().String())
}
