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

package firmware

import (
	"context"
	"os"

	"github.com/modbusbox/mbox-builder/app"
	"github.com/modbusbox/mbox-builder/cli/common"
	"github.com/spf13/cobra"
)

// NewUploadCommand creates a new `upload` command
func NewUploadCommand(a *app.App) *cobra.Command {
	opts := app.NewUploadOptions()
	command := &cobra.Command{
		Use:   "upload",
		Short: "Builds and uploads the firmware to the device.",
		Long: "Compiles the firmware found in the given directory (the current one by default) and uploads it " +
			"to the device connected to the given serial port. GitHub credentials must be configured first with the `config` command.",
		Example: "" +
			"  " + os.Args[0] + " upload --port /dev/ttyUSB0 --dir ./firmware\n" +
			"  " + os.Args[0] + " upload -p COM3 -s 2 -t 60 -w\n" +
			"  " + os.Args[0] + " upload --wizard\n",
		Args: cobra.NoArgs,
		Run: common.Action(func(ctx context.Context) error {
			return a.UploadFirmware(ctx, opts)
		}),
		PreRun: func(cmd *cobra.Command, args []string) {
			opts.Trial = cmd.Flags().Changed("trial")
		},
	}
	command.Flags().StringVarP(&opts.Port, "port", "p", "", "Serial port of the device, e.g.: COM10, /dev/ttyUSB0. Asked interactively when omitted")
	command.Flags().StringVarP(&opts.Dir, "dir", "d", "", "Firmware source directory (default: current directory)")
	command.Flags().StringVarP(&opts.Lock, "lock", "l", "", "Lock the firmware to the given chip id")
	command.Flags().IntVarP(&opts.Slaves, "slaves", "s", opts.Slaves, "Maximum number of slaves, from 1 to 4")
	command.Flags().BoolVarP(&opts.WebUI, "webui", "w", false, "Upload the web-ui after the firmware image")
	command.Flags().IntVarP(&opts.TrialTime, "trial", "t", opts.TrialTime, "Enable trial mode, lasting the given number of minutes")
	command.Flags().BoolVarP(&opts.Wizard, "wizard", "a", false, "Ask the building options interactively, the other building flags are ignored")
	return command
}
