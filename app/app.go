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

// Package app implements the mbox-builder commands: it resolves the missing
// inputs, checks the preconditions, calls the helper and reports the outcome.
// Every failure is reported to the operator and returned, nothing here exits
// the process.
package app

import (
	"errors"

	"github.com/arduino/go-paths-helper"
	"github.com/modbusbox/mbox-builder/cli/feedback"
	"github.com/modbusbox/mbox-builder/credentials"
	"github.com/modbusbox/mbox-builder/flasher"
	"github.com/modbusbox/mbox-builder/prompt"
)

var (
	// ErrNoPortAvailable is returned when no serial port is found
	ErrNoPortAvailable = errors.New("no serial port available")
	// ErrCredentialsNotFound is returned by commands needing the GitHub credentials
	ErrCredentialsNotFound = errors.New("GitHub credentials not found")
)

// App is the application context, created once at startup and shared by all
// the commands.
type App struct {
	Helper      flasher.Helper
	Credentials credentials.Store
	Prompter    prompt.Prompter
	// Getwd returns the directory used when no firmware directory is given
	Getwd func() (*paths.Path, error)
}

// New creates an App.
func New(helper flasher.Helper, store credentials.Store, prompter prompt.Prompter) *App {
	return &App{
		Helper:      helper,
		Credentials: store,
		Prompter:    prompter,
		Getwd:       paths.Getwd,
	}
}

// reportError prints the underlying error after a failed operation.
// TODO: print the details only with --verbose once the helper errors carry a
// short summary of their own.
func reportError(err error) {
	feedback.Errorf("Error: %s", err)
}

// succeed closes loading with text and, in JSON format, prints res.
func succeed(loading *feedback.Progress, text string, res feedback.Result) {
	loading.Succeed(text)
	if feedback.GetFormat() == feedback.JSON {
		feedback.PrintResult(res)
	}
}
