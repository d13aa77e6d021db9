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
	"errors"
	"testing"

	"github.com/modbusbox/mbox-builder/credentials"
	"github.com/modbusbox/mbox-builder/flasher"
	"github.com/modbusbox/mbox-builder/prompt"
	"github.com/stretchr/testify/require"
)

var operator = credentials.Credentials{Username: "operator", Password: "ghp_token"}

func TestUploadWithoutCredentials(t *testing.T) {
	env := newTestEnv(t, 0)
	env.helper.ports = twoPorts

	err := env.app.UploadFirmware(context.Background(), NewUploadOptions())
	require.ErrorIs(t, err, ErrCredentialsNotFound)
	require.Empty(t, env.helper.uploads)
	require.Zero(t, env.helper.getPortsCalls)
	require.Empty(t, env.prompter.questions)
	require.Contains(t, env.out.String(), "GitHub credentials not found")
}

func TestUploadDefaults(t *testing.T) {
	env := newTestEnv(t, 1)
	env.helper.ports = twoPorts
	require.NoError(t, env.store.Store(operator))

	opts := NewUploadOptions()
	require.NoError(t, env.app.UploadFirmware(context.Background(), opts))
	require.Equal(t, []uploadCall{{
		dir:  "/home/operator/firmware",
		port: "/dev/ttyUSB1",
		auth: operator,
		opts: flasher.DefaultBuildOptions(),
	}}, env.helper.uploads)
	require.Equal(t, "/home/operator/firmware", opts.Dir)
	require.Equal(t, "/dev/ttyUSB1", opts.Port)
	require.Contains(t, env.out.String(), "✔ Firmware successfully uploaded")
}

func TestUploadFlags(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Store(operator))

	opts := &UploadOptions{
		Port:      "/dev/ttyACM0",
		Dir:       "/src/mbox",
		Lock:      "ABC123",
		Slaves:    2,
		WebUI:     true,
		Trial:     true,
		TrialTime: 90,
	}
	require.NoError(t, env.app.UploadFirmware(context.Background(), opts))
	require.Len(t, env.helper.uploads, 1)
	require.Equal(t, "/src/mbox", env.helper.uploads[0].dir)
	require.Equal(t, flasher.BuildOptions{
		ChipID:      "ABC123",
		MaxSlaves:   2,
		TrialMode:   true,
		TrialTime:   90,
		UploadWebUI: true,
	}, env.helper.uploads[0].opts)
	require.Empty(t, env.prompter.questions)
}

func TestUploadInvalidSlavesFlag(t *testing.T) {
	for _, slaves := range []int{0, 5, -1} {
		env := newTestEnv(t)
		require.NoError(t, env.store.Store(operator))

		opts := NewUploadOptions()
		opts.Port = "/dev/ttyACM0"
		opts.Slaves = slaves
		require.Error(t, env.app.UploadFirmware(context.Background(), opts))
		require.Empty(t, env.helper.uploads)
	}
}

func TestUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Store(operator))
	env.helper.uploadErr = errors.New("compilation failed")

	opts := NewUploadOptions()
	opts.Port = "/dev/ttyACM0"
	require.Error(t, env.app.UploadFirmware(context.Background(), opts))
	require.Contains(t, env.out.String(), "✖ An error has ocurred trying to build and upload firmware")
	require.Contains(t, env.errOut.String(), "Error: compilation failed")
}

func TestUploadNoPort(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Store(operator))
	env.helper.ports = []*flasher.Port{}

	require.ErrorIs(t, env.app.UploadFirmware(context.Background(), NewUploadOptions()), ErrNoPortAvailable)
	require.Empty(t, env.helper.uploads)
}

func TestUploadWizard(t *testing.T) {
	env := newTestEnv(t,
		true,                 // lock
		"0", "5", "abc", "3", // slaves
		true,                 // trial
		"soon", "0",          // trial time
		true,                 // web-ui
	)
	require.NoError(t, env.store.Store(operator))
	env.helper.chipID = "C0FFEE"

	opts := NewUploadOptions()
	opts.Port = "/dev/ttyUSB0"
	opts.Wizard = true
	require.NoError(t, env.app.UploadFirmware(context.Background(), opts))

	require.Equal(t, []string{"0", "5", "abc", "soon"}, env.prompter.rejected)
	require.Equal(t, []string{"/dev/ttyUSB0"}, env.helper.chipIDPorts)
	require.Len(t, env.helper.uploads, 1)
	require.Equal(t, flasher.BuildOptions{
		ChipID:      "C0FFEE",
		MaxSlaves:   3,
		TrialMode:   true,
		TrialTime:   0,
		UploadWebUI: true,
	}, env.helper.uploads[0].opts)
}

func TestUploadWizardDefaults(t *testing.T) {
	env := newTestEnv(t, false, "", false, false)
	require.NoError(t, env.store.Store(operator))

	opts := NewUploadOptions()
	opts.Port = "/dev/ttyUSB0"
	opts.Wizard = true
	require.NoError(t, env.app.UploadFirmware(context.Background(), opts))
	require.Empty(t, env.helper.chipIDPorts)
	require.Equal(t, flasher.DefaultBuildOptions(), env.helper.uploads[0].opts)
}

func TestUploadWizardAborted(t *testing.T) {
	env := newTestEnv(t, false)
	require.NoError(t, env.store.Store(operator))

	opts := NewUploadOptions()
	opts.Port = "/dev/ttyUSB0"
	opts.Wizard = true
	require.ErrorIs(t, env.app.UploadFirmware(context.Background(), opts), prompt.ErrAborted)
	require.Empty(t, env.helper.uploads)
}

func TestValidateSlaves(t *testing.T) {
	for _, accepted := range []string{"1", "2", "3", "4", " 4 "} {
		require.NoError(t, ValidateSlaves(accepted), accepted)
	}
	for _, rejected := range []string{"0", "5", "abc", "", "-2", "2.5"} {
		require.Error(t, ValidateSlaves(rejected), rejected)
	}
}

func TestValidateTrialTime(t *testing.T) {
	for _, accepted := range []string{"0", "1440", "-30"} {
		require.NoError(t, ValidateTrialTime(accepted), accepted)
	}
	for _, rejected := range []string{"abc", "", "1.5"} {
		require.Error(t, ValidateTrialTime(rejected), rejected)
	}
}
