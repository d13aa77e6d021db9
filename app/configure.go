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
	"fmt"

	"github.com/fatih/color"
	"github.com/modbusbox/mbox-builder/cli/feedback"
	"github.com/modbusbox/mbox-builder/credentials"
	"github.com/modbusbox/mbox-builder/prompt"
	"github.com/sirupsen/logrus"
)

type configSection struct {
	Name   string
	Value  string
	Active bool
}

var configSections = []configSection{
	{Name: "GitHub Credentials", Value: "github", Active: true},
	{Name: "Default Building Options", Value: "building"},
	{Name: "Debug Info", Value: "debug"},
}

type configOutcome int

const (
	credentialsSaved configOutcome = iota
	credentialsKept
)

// Configure shows the configuration menu and runs the selected section.
func (a *App) Configure(ctx context.Context) error {
	names := make([]string, len(configSections))
	for i, s := range configSections {
		names[i] = s.Name
	}
	idx, err := a.Prompter.Select(ctx, "What would you like to configure?", names)
	if err != nil {
		reportConfigError(err)
		return err
	}
	section := configSections[idx]
	logrus.Debugf("configuring %s", section.Value)
	if !section.Active {
		feedback.Warning(fmt.Sprintf("%s can't be configured yet", section.Name))
		return nil
	}

	outcome, err := a.configureGitHub(ctx)
	if err != nil {
		reportConfigError(err)
		return err
	}
	switch outcome {
	case credentialsSaved:
		feedback.Print(color.HiGreenString("GitHub credentials saved"))
	case credentialsKept:
		feedback.Print("GitHub credentials left unchanged")
	}
	return nil
}

func reportConfigError(err error) {
	if errors.Is(err, prompt.ErrAborted) {
		feedback.Warning("Configuration aborted")
		return
	}
	feedback.Errorf("Could not configure GitHub credentials")
	reportError(err)
}

func (a *App) configureGitHub(ctx context.Context) (configOutcome, error) {
	current, err := a.Credentials.Retrieve()
	if err != nil {
		return credentialsKept, err
	}
	if !current.Empty() {
		feedback.Printf("Username: %s", current.Username)
		feedback.Printf("Password: %s", current.MaskedPassword())
		overwrite, err := a.Prompter.Confirm(ctx, "GitHub credentials already stored, overwrite them?", false)
		if err != nil {
			return credentialsKept, err
		}
		if !overwrite {
			return credentialsKept, nil
		}
	}

	username, err := a.Prompter.Input(ctx, "GitHub username", "", prompt.NotEmpty)
	if err != nil {
		return credentialsKept, err
	}
	password, err := a.Prompter.Password(ctx, "GitHub password or access token", prompt.NotEmpty)
	if err != nil {
		return credentialsKept, err
	}
	if err := a.Credentials.Store(credentials.Credentials{Username: username, Password: password}); err != nil {
		return credentialsKept, err
	}
	return credentialsSaved, nil
}
