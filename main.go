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

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/modbusbox/mbox-builder/cli"
	"github.com/modbusbox/mbox-builder/cli/feedback"
)

// interruptedExitCode is the shell convention for SIGINT (128 + 2)
const interruptedExitCode = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mboxBuilderCmd := cli.NewCommand()
	if err := mboxBuilderCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(int(feedback.ErrBadArgument))
	}
	if ctx.Err() != nil {
		stop()
		os.Exit(interruptedExitCode)
	}
}
