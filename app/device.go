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
	"fmt"

	"github.com/fatih/color"
	"github.com/modbusbox/mbox-builder/cli/feedback"
)

// ChipIDResult is the output of the cid command.
type ChipIDResult struct {
	Port   string `json:"port"`
	ChipID string `json:"chip_id"`
}

// Data implements feedback.Result interface
func (r *ChipIDResult) Data() interface{} {
	return r
}

func (r *ChipIDResult) String() string {
	return fmt.Sprintf("Chip id: %s", r.ChipID)
}

// StatusResult is the output of commands with no data to return.
type StatusResult struct {
	Port    string `json:"port"`
	Dir     string `json:"dir,omitempty"`
	Message string `json:"message"`
}

// Data implements feedback.Result interface
func (r *StatusResult) Data() interface{} {
	return r
}

func (r *StatusResult) String() string {
	return r.Message
}

// GetChipID prints the chip id of the device on port, port is asked to the
// operator when empty.
func (a *App) GetChipID(ctx context.Context, port string) error {
	port, err := a.resolvePort(ctx, port)
	if err != nil {
		return err
	}
	chipID, err := a.readChipID(ctx, port)
	if err != nil {
		return err
	}
	if feedback.GetFormat() == feedback.JSON {
		feedback.PrintResult(&ChipIDResult{Port: port, ChipID: chipID})
	}
	return nil
}

func (a *App) readChipID(ctx context.Context, port string) (string, error) {
	loading := feedback.NewProgress().Start("Getting chip id from device")
	chipID, err := a.Helper.GetChipID(ctx, port)
	if err != nil {
		loading.Fail("Could not read chip id from device")
		reportError(err)
		return "", err
	}
	loading.Succeed(fmt.Sprintf("Chip id: %s", color.GreenString(chipID)))
	return chipID, nil
}

// EraseFlash erases the flash of the device on port, port is asked to the
// operator when empty.
func (a *App) EraseFlash(ctx context.Context, port string) error {
	port, err := a.resolvePort(ctx, port)
	if err != nil {
		return err
	}

	loading := feedback.NewProgress().Start(color.RedString("Performing flash erase on device"))
	if err := a.Helper.EraseFlash(ctx, port); err != nil {
		loading.Fail("An error has ocurred trying to erase device flash")
		reportError(err)
		return err
	}
	msg := "Device flash has been successfully erased"
	succeed(loading, color.HiGreenString(msg), &StatusResult{Port: port, Message: msg})
	return nil
}
