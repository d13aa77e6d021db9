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
	"strconv"
	"strings"

	"github.com/modbusbox/mbox-builder/flasher"
)

// ValidateSlaves accepts a number of slaves between 1 and 4.
func ValidateSlaves(answer string) error {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n <= 0 || n >= 5 {
		return errors.New("Please enter a number between 1 and 4")
	}
	return nil
}

// ValidateTrialTime accepts any integer number of minutes.
func ValidateTrialTime(answer string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(answer)); err != nil {
		return errors.New("Please enter a valid number of minutes")
	}
	return nil
}

// runUploadWizard asks the build options to the operator. When the firmware
// must be locked, the chip id is read from the device on port.
func (a *App) runUploadWizard(ctx context.Context, port string) (flasher.BuildOptions, error) {
	opts := flasher.DefaultBuildOptions()

	lock, err := a.Prompter.Confirm(ctx, "Lock firmware to this device's chip id?", false)
	if err != nil {
		return opts, err
	}
	if lock {
		if opts.ChipID, err = a.readChipID(ctx, port); err != nil {
			return opts, err
		}
	}

	slaves, err := a.Prompter.Input(ctx, "Maximum number of slaves", strconv.Itoa(opts.MaxSlaves), ValidateSlaves)
	if err != nil {
		return opts, err
	}
	opts.MaxSlaves, _ = strconv.Atoi(strings.TrimSpace(slaves))

	if opts.TrialMode, err = a.Prompter.Confirm(ctx, "Enable trial mode?", false); err != nil {
		return opts, err
	}
	if opts.TrialMode {
		trialTime, err := a.Prompter.Input(ctx, "Trial time (minutes)", strconv.Itoa(opts.TrialTime), ValidateTrialTime)
		if err != nil {
			return opts, err
		}
		opts.TrialTime, _ = strconv.Atoi(strings.TrimSpace(trialTime))
	}

	if opts.UploadWebUI, err = a.Prompter.Confirm(ctx, "Upload web-ui after the firmware image?", false); err != nil {
		return opts, err
	}
	return opts, nil
}
