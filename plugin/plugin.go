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

package plugin

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/arduino/arduino-cli/executils"
	"github.com/arduino/go-paths-helper"
	"github.com/modbusbox/mbox-builder/credentials"
	"github.com/modbusbox/mbox-builder/flasher"
	"github.com/sirupsen/logrus"
	semver "go.bug.st/relaxed-semver"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultExecutable is the helper name looked up in PATH
	DefaultExecutable = "mbox-builder-helper"
	// APIVersion is the helper protocol version understood by this client
	APIVersion = 1

	usernameEnv = "MBOX_GH_USERNAME"
	passwordEnv = "MBOX_GH_PASSWORD"
)

// MinimumHelperVersion is the oldest helper release supported.
var MinimumHelperVersion = semver.MustParse("1.0.0")

// MboxHelper runs the external mbox-builder-helper executable to read the
// chip id, erase the flash and build and upload firmware. Serial ports are
// listed in-process.
type MboxHelper struct {
	executable string
	listPorts  func() ([]*flasher.Port, error)

	once       sync.Once
	helperPath *paths.Path
	version    *semver.Version
	initErr    error
}

// NewMboxHelper creates a helper running the given executable. An empty
// executable means DefaultExecutable from PATH. The executable is located
// and checked on first use.
func NewMboxHelper(executable string) *MboxHelper {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &MboxHelper{
		executable: executable,
		listPorts:  flasher.ListSerialPorts,
	}
}

var _ flasher.Helper = (*MboxHelper)(nil)

// GetPorts implements flasher.Helper.
func (h *MboxHelper) GetPorts(ctx context.Context) ([]*flasher.Port, error) {
	return h.listPorts()
}

// GetChipID implements flasher.Helper.
func (h *MboxHelper) GetChipID(ctx context.Context, port string) (string, error) {
	var result struct {
		ChipID string `yaml:"chip_id"`
	}
	if err := h.run(ctx, nil, &result, "chip-id", "--port", port); err != nil {
		return "", err
	}
	if result.ChipID == "" {
		return "", fmt.Errorf("helper returned an empty chip id")
	}
	return result.ChipID, nil
}

// EraseFlash implements flasher.Helper.
func (h *MboxHelper) EraseFlash(ctx context.Context, port string) error {
	return h.run(ctx, nil, nil, "erase", "--port", port)
}

// BuildAndUpload implements flasher.Helper. Credentials are handed over in
// the environment so they never appear on a command line.
func (h *MboxHelper) BuildAndUpload(ctx context.Context, dir *paths.Path, port string, auth credentials.Credentials, opts flasher.BuildOptions) error {
	env := []string{
		usernameEnv + "=" + auth.Username,
		passwordEnv + "=" + auth.Password,
	}
	return h.run(ctx, env, nil, buildUploadArgs(dir, port, opts)...)
}

func buildUploadArgs(dir *paths.Path, port string, opts flasher.BuildOptions) []string {
	args := []string{
		"build-upload",
		"--dir", dir.String(),
		"--port", port,
		"--slaves", strconv.Itoa(opts.MaxSlaves),
	}
	if opts.ChipID != "" {
		args = append(args, "--lock", opts.ChipID)
	}
	if opts.TrialMode {
		args = append(args, "--trial", strconv.Itoa(opts.TrialTime))
	}
	if opts.UploadWebUI {
		args = append(args, "--webui")
	}
	return args
}

// Version returns the version reported by the helper.
func (h *MboxHelper) Version() (*semver.Version, error) {
	if err := h.init(); err != nil {
		return nil, err
	}
	return h.version, nil
}

func (h *MboxHelper) init() error {
	h.once.Do(func() {
		h.initErr = h.locate()
	})
	return h.initErr
}

func (h *MboxHelper) locate() error {
	path, err := exec.LookPath(h.executable)
	if err != nil {
		return fmt.Errorf("helper %s not found, install it or set its path with --helper: %w", h.executable, err)
	}
	h.helperPath = paths.New(path)
	logrus.Debugf("using helper %s", h.helperPath)

	apiVersion, version, err := h.QueryAPIVersion()
	if err != nil {
		return fmt.Errorf("error getting helper version %s: %w", h.helperPath, err)
	}
	if apiVersion != APIVersion {
		return fmt.Errorf("helper %s speaks API version %d, %d is required", h.helperPath, apiVersion, APIVersion)
	}
	if version.LessThan(MinimumHelperVersion) {
		return fmt.Errorf("helper version %s is too old, at least %s is required", version, MinimumHelperVersion)
	}
	h.version = version
	logrus.Infof("helper %s version %s (API %d)", h.helperPath, version, apiVersion)
	return nil
}

// QueryAPIVersion queries the helper API version and release
func (h *MboxHelper) QueryAPIVersion() (int, *semver.Version, error) {
	proc, err := executils.NewProcessFromPath(nil, h.helperPath, "version")
	if err != nil {
		return 0, nil, err
	}
	stdout, _, err := proc.RunAndCaptureOutput(context.Background())
	if err != nil {
		return 0, nil, err
	}

	var result struct {
		APIVersion    int    `yaml:"plugin_api_version"`
		HelperVersion string `yaml:"helper_version"`
	}
	if err := yaml.Unmarshal(stdout, &result); err != nil {
		return 0, nil, err
	}
	version, err := semver.Parse(result.HelperVersion)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid helper version %q: %w", result.HelperVersion, err)
	}
	return result.APIVersion, version, nil
}

// run executes the helper with args and decodes its YAML output in result,
// when not nil.
func (h *MboxHelper) run(ctx context.Context, env []string, result interface{}, args ...string) error {
	if err := h.init(); err != nil {
		return err
	}
	logrus.Debugf("running helper: %s", strings.Join(args, " "))
	proc, err := executils.NewProcessFromPath(env, h.helperPath, args...)
	if err != nil {
		return err
	}
	stdout, stderr, err := proc.RunAndCaptureOutput(ctx)
	if err != nil {
		logrus.Debugf("helper %s failed: %s", args[0], err)
		return helperError(stdout, stderr, err)
	}
	if result == nil {
		return nil
	}
	if err := yaml.Unmarshal(stdout, result); err != nil {
		return fmt.Errorf("decoding helper output: %w", err)
	}
	return nil
}

// helperError builds the most meaningful error out of a failed run: the
// YAML error message if any, otherwise the last stderr line.
func helperError(stdout, stderr []byte, runErr error) error {
	var result struct {
		Error string `yaml:"error"`
	}
	if yaml.Unmarshal(stdout, &result) == nil && result.Error != "" {
		return flasher.NewFlasherError(result.Error)
	}
	lines := strings.Split(strings.TrimSpace(string(stderr)), "\n")
	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		return flasher.NewFlasherError(last)
	}
	return runErr
}
