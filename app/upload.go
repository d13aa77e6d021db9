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
	"strconv"

	"github.com/arduino/go-paths-helper"
	"github.com/fatih/color"
	"github.com/modbusbox/mbox-builder/cli/feedback"
	"github.com/modbusbox/mbox-builder/flasher"
	"github.com/modbusbox/mbox-builder/prompt"
	"github.com/modbusbox/mbox-builder/version"
	"github.com/sirupsen/logrus"
)

// UploadOptions are the inputs of the upload command. Port and Dir are
// filled in when empty.
type UploadOptions struct {
	Port string
	Dir  string
	// Lock is the chip id the firmware is locked to
	Lock      string
	Slaves    int
	WebUI     bool
	Trial     bool
	TrialTime int
	Wizard    bool
}

// NewUploadOptions returns the options used when no flag is given.
func NewUploadOptions() *UploadOptions {
	defaults := flasher.DefaultBuildOptions()
	return &UploadOptions{
		Slaves:    defaults.MaxSlaves,
		TrialTime: defaults.TrialTime,
	}
}

// UploadFirmware builds the firmware in opts.Dir and uploads it to the
// device on opts.Port. The GitHub credentials must have been configured.
func (a *App) UploadFirmware(ctx context.Context, opts *UploadOptions) error {
	exists, err := a.Credentials.Exists()
	if err != nil {
		feedback.Errorf("Could not read GitHub credentials")
		reportError(err)
		return err
	}
	if !exists {
		feedback.Warning(fmt.Sprintf("GitHub credentials not found, run `%s config` to set them", version.Application))
		return ErrCredentialsNotFound
	}
	auth, err := a.Credentials.Retrieve()
	if err != nil {
		feedback.Errorf("Could not read GitHub credentials")
		reportError(err)
		return err
	}

	if !opts.Wizard {
		if err := validateUploadFlags(opts); err != nil {
			feedback.Errorf("Invalid upload options: %s", err)
			return err
		}
	}

	if opts.Port, err = a.resolvePort(ctx, opts.Port); err != nil {
		return err
	}

	if opts.Dir == "" {
		wd, err := a.Getwd()
		if err != nil {
			feedback.Errorf("Could not get the current working directory")
			reportError(err)
			return err
		}
		opts.Dir = wd.String()
	}
	logrus.Debugf("firmware directory: %s", opts.Dir)

	var buildOpts flasher.BuildOptions
	if opts.Wizard {
		if buildOpts, err = a.runUploadWizard(ctx, opts.Port); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				feedback.Warning("Firmware upload aborted")
			}
			return err
		}
	} else {
		buildOpts = opts.buildOptions()
	}
	logrus.Debugf("build options: %+v", buildOpts)

	loading := feedback.NewProgress().Start("Compiling and uploading firmware")
	if err := a.Helper.BuildAndUpload(ctx, paths.New(opts.Dir), opts.Port, auth, buildOpts); err != nil {
		loading.Fail("An error has ocurred trying to build and upload firmware")
		reportError(err)
		return err
	}
	msg := "Firmware successfully uploaded"
	succeed(loading, color.HiGreenString(msg), &StatusResult{Port: opts.Port, Dir: opts.Dir, Message: msg})
	return nil
}

func validateUploadFlags(opts *UploadOptions) error {
	if err := ValidateSlaves(strconv.Itoa(opts.Slaves)); err != nil {
		return fmt.Errorf("--slaves: %w", err)
	}
	return nil
}

func (opts *UploadOptions) buildOptions() flasher.BuildOptions {
	buildOpts := flasher.DefaultBuildOptions()
	buildOpts.ChipID = opts.Lock
	buildOpts.MaxSlaves = opts.Slaves
	buildOpts.UploadWebUI = opts.WebUI
	if opts.Trial {
		buildOpts.TrialMode = true
		buildOpts.TrialTime = opts.TrialTime
	}
	return buildOpts
}
