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

package app

import (
	"context"
	"testing"

	"github.com/modbusbox/mbox-builder/credentials"
	"github.com/modbusbox/mbox-builder/prompt"
	"github.com/stretchr/testify/require"
)

func TestConfigureStoresNewCredentials(t *testing.T) {
	env := newTestEnv(t, 0, "", "operator", "ghp_token")

	require.NoError(t, env.app.Configure(context.Background()))
	stored, err := env.store.Retrieve()
	require.NoError(t, err)
	require.Equal(t, operator, stored)
	require.Equal(t, []string{""}, env.prompter.rejected)
	require.Contains(t, env.out.String(), "GitHub credentials saved")
}

func TestConfigureKeepsExistingCredentials(t *testing.T) {
	env := newTestEnv(t, 0, false)
	require.NoError(t, env.store.Store(operator))

	require.NoError(t, env.app.Configure(context.Background()))
	stored, err := env.store.Retrieve()
	require.NoError(t, err)
	require.Equal(t, operator, stored)

	out := env.out.String()
	require.Contains(t, out, "Username: operator")
	require.Contains(t, out, "Password: *********")
	require.NotContains(t, out, "ghp_token")
	require.Contains(t, out, "GitHub credentials left unchanged")
}

func TestConfigureReplacesExistingCredentials(t *testing.T) {
	env := newTestEnv(t, 0, true, "maintainer", "s3cret")
	require.NoError(t, env.store.Store(operator))

	require.NoError(t, env.app.Configure(context.Background()))
	stored, err := env.store.Retrieve()
	require.NoError(t, err)
	require.Equal(t, credentials.Credentials{Username: "maintainer", Password: "s3cret"}, stored)
	require.Equal(t, []string{
		"What would you like to configure?",
		"GitHub credentials already stored, overwrite them?",
		"GitHub username",
		"GitHub password or access token",
	}, env.prompter.questions)
}

func TestConfigureInactiveSections(t *testing.T) {
	for idx, name := range []string{"Default Building Options", "Debug Info"} {
		env := newTestEnv(t, idx+1)

		require.NoError(t, env.app.Configure(context.Background()))
		require.Contains(t, env.out.String(), name+" can't be configured yet")
		exists, err := env.store.Exists()
		require.NoError(t, err)
		require.False(t, exists)
	}
}

func TestConfigureAborted(t *testing.T) {
	env := newTestEnv(t, 0, "operator")

	require.ErrorIs(t, env.app.Configure(context.Background()), prompt.ErrAborted)
	require.Contains(t, env.out.String(), "Configuration aborted")
	require.Empty(t, env.errOut.String())
	exists, err := env.store.Exists()
	require.NoError(t, err)
	require.False(t, exists)
}
