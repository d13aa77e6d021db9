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
	"context"
	"fmt"

	"github.com/arduino/go-paths-helper"
	"github.com/modbusbox/mbox-builder/credentials"
)

const (
	// DefaultMaxSlaves is the number of Modbus slaves allowed when not specified
	DefaultMaxSlaves = 4
	// DefaultTrialTime is the trial duration in minutes when not specified
	DefaultTrialTime = 1440
)

// Port is a serial port found on the host.
type Port struct {
	Path         string `json:"path"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

func (p *Port) String() string {
	if p.Manufacturer == "" {
		return p.Path
	}
	return fmt.Sprintf("%s (%s)", p.Path, p.Manufacturer)
}

// BuildOptions drive a firmware build.
type BuildOptions struct {
	// ChipID locks the firmware to a single device, empty means unlocked
	ChipID      string `json:"chip_id,omitempty"`
	MaxSlaves   int    `json:"max_slaves"`
	TrialMode   bool   `json:"trial_mode"`
	TrialTime   int    `json:"trial_time"`
	UploadWebUI bool   `json:"upload_webui"`
}

// DefaultBuildOptions returns an unlocked, non trial build.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		MaxSlaves: DefaultMaxSlaves,
		TrialTime: DefaultTrialTime,
	}
}

// Helper performs every operation that talks to the device or to the
// firmware toolchain.
type Helper interface {
	GetPorts(ctx context.Context) ([]*Port, error)
	GetChipID(ctx context.Context, port string) (string, error)
	BuildAndUpload(ctx context.Context, dir *paths.Path, port string, auth credentials.Credentials, opts BuildOptions) error
	EraseFlash(ctx context.Context, port string) error
}

// FlasherError is returned by a Helper when the operation was carried out
// and the device or toolchain reported a failure.
type FlasherError struct {
	err string
}

// NewFlasherError creates a FlasherError with the given message.
func NewFlasherError(msg string) FlasherError {
	return FlasherError{err: msg}
}

func (e FlasherError) Error() string {
	return e.err
}
