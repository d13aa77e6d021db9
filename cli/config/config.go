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

package config

import (
	"os"

	"github.com/modbusbox/mbox-builder/app"
	"github.com/modbusbox/mbox-builder/cli/common"
	"github.com/spf13/cobra"
)

// NewCommand creates a new `config` command
func NewCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   "Configures mbox-builder.",
		Long:    "Interactively sets the GitHub credentials used to fetch the firmware sources.",
		Example: "  " + os.Args[0] + " config",
		Args:    cobra.NoArgs,
		Run:     common.Action(a.Configure),
	}
}
