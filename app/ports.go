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

	"github.com/arduino/arduino-cli/table"
	"github.com/fatih/color"
	"github.com/modbusbox/mbox-builder/cli/feedback"
	"github.com/modbusbox/mbox-builder/flasher"
	"github.com/modbusbox/mbox-builder/prompt"
	"github.com/sirupsen/logrus"
)

// ResolvePort returns explicit when set, otherwise it lists the available
// ports and asks the operator to pick one. ErrNoPortAvailable is returned
// when there is nothing to pick from.
func (a *App) ResolvePort(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	loading := feedback.NewProgress().Start("Looking for available serial ports")
	ports, err := a.Helper.GetPorts(ctx)
	if err != nil {
		loading.Fail("Could not retrieve serial ports")
		return "", fmt.Errorf("retrieving serial ports: %w", err)
	}
	if len(ports) == 0 {
		loading.Warn("No serial port available")
		return "", ErrNoPortAvailable
	}
	loading.Succeed("")

	choices := make([]string, len(ports))
	for i, port := range ports {
		choices[i] = port.String()
	}
	idx, err := a.Prompter.Select(ctx, "Please select a port", choices)
	if err != nil {
		return "", err
	}
	logrus.Debugf("port %s selected", ports[idx].Path)
	return ports[idx].Path, nil
}

// resolvePort wraps ResolvePort for the commands, reporting the failure.
func (a *App) resolvePort(ctx context.Context, explicit string) (string, error) {
	port, err := a.ResolvePort(ctx, explicit)
	switch {
	case err == nil, errors.Is(err, ErrNoPortAvailable):
	case errors.Is(err, prompt.ErrAborted):
		feedback.Warning("Port selection aborted")
	default:
		reportError(err)
	}
	return port, err
}

// ListPorts prints the available serial ports.
func (a *App) ListPorts(ctx context.Context) error {
	loading := feedback.NewProgress().Start("Looking for available serial ports")
	ports, err := a.Helper.GetPorts(ctx)
	if err != nil {
		loading.Fail("Could not retrieve serial ports")
		reportError(err)
		return err
	}
	if len(ports) == 0 {
		loading.Warn("No serial port available")
		if feedback.GetFormat() == feedback.JSON {
			feedback.PrintResult(PortListResult{})
		}
		return ErrNoPortAvailable
	}
	loading.Succeed("")
	feedback.PrintResult(PortListResult(ports))
	return nil
}

// PortListResult is the output of the ports command.
type PortListResult []*flasher.Port

// Data implements feedback.Result interface
func (r PortListResult) Data() interface{} {
	return r
}

func (r PortListResult) String() string {
	if len(r) == 0 {
		return "No serial port available"
	}
	header := color.New(color.FgBlue)
	t := table.New()
	t.SetHeader(table.NewCell("Path", header), table.NewCell("Manufacturer", header))
	for _, port := range r {
		t.AddRow(port.Path, port.Manufacturer)
	}
	return t.Render()
}
