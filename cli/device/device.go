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

package device

import (
	"context"
	"os"

	"github.com/modbusbox/mbox-builder/app"
	"github.com/modbusbox/mbox-builder/cli/arguments"
	"github.com/modbusbox/mbox-builder/cli/common"
	"github.com/spf13/cobra"
)

// NewPortsCommand creates a new `ports` command
func NewPortsCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "ports",
		Short:   "Lists the available serial ports.",
		Long:    "Lists the serial ports found on this system with their manufacturer, when known.",
		Example: "  " + os.Args[0] + " ports",
		Args:    cobra.NoArgs,
		Run:     common.Action(a.ListPorts),
	}
}

// NewChipIDCommand creates a new `cid` command
func NewChipIDCommand(a *app.App) *cobra.Command {
	var port arguments.Port
	command := &cobra.Command{
		Use:   "cid",
		Short: "Reads the chip id of the device.",
		Long:  "Reads the chip id of the device connected to the given serial port. The id can be used to lock a firmware to that device.",
		Example: "" +
			"  " + os.Args[0] + " cid --port /dev/ttyUSB0\n" +
			"  " + os.Args[0] + " cid\n",
		Args: cobra.NoArgs,
		Run: common.Action(func(ctx context.Context) error {
			return a.GetChipID(ctx, port.Address)
		}),
	}
	port.AddToCommand(command)
	return command
}

// NewEraseCommand creates a new `erase` command
func NewEraseCommand(a *app.App) *cobra.Command {
	var port arguments.Port
	command := &cobra.Command{
		Use:     "erase",
		Short:   "Erases the flash of the device.",
		Long:    "Erases the whole flash of the device connected to the given serial port.",
		Example: "  " + os.Args[0] + " erase -p COM3",
		Args:    cobra.NoArgs,
		Run: common.Action(func(ctx context.Context) error {
			return a.EraseFlash(ctx, port.Address)
		}),
	}
	port.AddToCommand(command)
	return command
}
