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

package globals

import (
	"os"

	"github.com/modbusbox/mbox-builder/plugin"
)

// HelperEnv overrides the helper executable when --helper is not given.
const HelperEnv = "MBOX_BUILDER_HELPER"

var (
	// Verbose is set by the --verbose flag
	Verbose bool
	// LogLevel is set by the --log-level flag
	LogLevel string
	// HelperPath is set by the --helper flag
	HelperPath string
)

// ResolveHelperPath returns the helper executable to run: the --helper flag,
// then the HelperEnv variable, then the default name looked up on PATH.
func ResolveHelperPath() string {
	if HelperPath != "" {
		return HelperPath
	}
	if env := os.Getenv(HelperEnv); env != "" {
		return env
	}
	return plugin.DefaultExecutable
}
