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

package flasher

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial/enumerator"
)

// detailedPortsList is replaced in tests
var detailedPortsList = enumerator.GetDetailedPortsList

// ListSerialPorts returns the serial ports available on the host, sorted by
// path. USB ports report the product name, or VID:PID when the OS does not
// expose it, as manufacturer.
func ListSerialPorts() ([]*Port, error) {
	details, err := detailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}

	ports := []*Port{}
	for _, d := range details {
		port := &Port{Path: d.Name}
		if d.IsUSB {
			if d.Product != "" {
				port.Manufacturer = d.Product
			} else {
				port.Manufacturer = fmt.Sprintf("%s:%s", d.VID, d.PID)
			}
		}
		logrus.Debugf("found serial port %s", port)
		ports = append(ports, port)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Path < ports[j].Path })
	return ports, nil
}
