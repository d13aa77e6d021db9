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

package common

import (
	"context"
	"errors"

	"github.com/modbusbox/mbox-builder/prompt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Action adapts an operation to a cobra Run function. The operation reports
// its own failures to the user, here the error is only logged and the
// process exits normally.
func Action(op func(ctx context.Context) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		err := op(ctx)
		switch {
		case err == nil:
			logrus.Debugf("%s completed", cmd.Name())
		case errors.Is(err, prompt.ErrAborted):
			logrus.Infof("%s aborted by the user", cmd.Name())
		default:
			logrus.Infof("%s failed: %s", cmd.Name(), err)
		}
	}
}
