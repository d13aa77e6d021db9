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

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arduino/go-paths-helper"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/modbusbox/mbox-builder/app"
	"github.com/modbusbox/mbox-builder/cli/config"
	"github.com/modbusbox/mbox-builder/cli/device"
	"github.com/modbusbox/mbox-builder/cli/feedback"
	"github.com/modbusbox/mbox-builder/cli/firmware"
	"github.com/modbusbox/mbox-builder/cli/globals"
	"github.com/modbusbox/mbox-builder/cli/version"
	"github.com/modbusbox/mbox-builder/configstore"
	"github.com/modbusbox/mbox-builder/credentials"
	"github.com/modbusbox/mbox-builder/plugin"
	"github.com/modbusbox/mbox-builder/prompt"
	v "github.com/modbusbox/mbox-builder/version"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var (
	outputFormat string
	logFile      string
	logFormat    string

	validFormats = []string{"text", "json"}

	// promptInput is where the operator answers come from
	promptInput io.Reader = os.Stdin
)

// NewCommand creates the root command, the application context is built
// from the flags once they have been parsed.
func NewCommand() *cobra.Command {
	return NewCommandWithApp(&app.App{})
}

// NewCommandWithApp creates the root command running on a. The fields left
// nil are filled in before the selected command runs.
func NewCommandWithApp(a *app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     v.Application,
		Short:   v.Description + ".",
		Long:    "MBox Builder (" + v.Application + ").\n" + v.Description + " through the " + plugin.DefaultExecutable + " executable.",
		Example: "  " + os.Args[0] + " <command> [flags...]",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			preRun(cmd, args)
			setupApp(a)
		},
	}

	rootCmd.AddCommand(version.NewCommand())
	rootCmd.AddCommand(device.NewPortsCommand(a))
	rootCmd.AddCommand(device.NewChipIDCommand(a))
	rootCmd.AddCommand(firmware.NewUploadCommand(a))
	rootCmd.AddCommand(device.NewEraseCommand(a))
	rootCmd.AddCommand(config.NewCommand(a))

	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "The output format, can be {text|json}.")

	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to the file where logs will be written")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "The output format for the logs, can be {text|json}.")
	rootCmd.PersistentFlags().StringVar(&globals.LogLevel, "log-level", "info", "Messages with this level and above will be logged. Valid levels are: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "Print the logs on the standard output.")
	rootCmd.PersistentFlags().StringVar(&globals.HelperPath, "helper", "", "Path of the helper executable (default: "+plugin.DefaultExecutable+" from PATH, or $"+globals.HelperEnv+")")

	return rootCmd
}

// Convert the string passed to the `--log-level` option to the corresponding
// logrus formal level.
func toLogLevel(s string) (t logrus.Level, found bool) {
	t, found = map[string]logrus.Level{
		"trace": logrus.TraceLevel,
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}[s]

	return
}

func preRun(cmd *cobra.Command, args []string) {
	// Prepare logging
	if globals.Verbose {
		// if we print on stdout, do it in full colors
		logrus.SetOutput(colorable.NewColorableStdout())
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors: true,
		})
	} else {
		logrus.SetOutput(io.Discard)
	}

	// Normalize the format strings
	logFormat = strings.ToLower(logFormat)
	if !slices.Contains(validFormats, logFormat) {
		feedback.Fatal(fmt.Sprintf("Invalid option for --log-format: %s", logFormat), feedback.ErrBadArgument)
		return
	}
	if logFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			feedback.Fatal(fmt.Sprintf("Unable to open file for logging: %s", logFile), feedback.ErrGeneric)
			return
		}

		// Use a hook so we don't get color codes in the log file
		if logFormat == "json" {
			logrus.AddHook(lfshook.NewHook(file, &logrus.JSONFormatter{}))
		} else {
			logrus.AddHook(lfshook.NewHook(file, &logrus.TextFormatter{}))
		}
	}

	// Configure logging filter
	lvl, found := toLogLevel(globals.LogLevel)
	if !found {
		feedback.Fatal(fmt.Sprintf("Invalid option for --log-level: %s", globals.LogLevel), feedback.ErrBadArgument)
		return
	}
	logrus.SetLevel(lvl)

	//
	// Prepare the Feedback system
	//

	// normalize the format strings
	outputFormat = strings.ToLower(outputFormat)
	// check the right output format was passed
	format, found := feedback.ParseOutputFormat(outputFormat)
	if !found {
		feedback.Fatal(fmt.Sprintf("Invalid output format: %s", outputFormat), feedback.ErrBadArgument)
		return
	}

	// use the output format to configure the Feedback
	feedback.SetFormat(format)

	logrus.Info(v.VersionInfo)

	if feedback.Interactive() {
		feedback.Print(color.CyanString("MBox Builder"))
	}

	if outputFormat != "text" {
		cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
			logrus.Warn("Calling help on JSON format")
			feedback.Fatal("Invalid Call : should show Help, but it is available only in TEXT mode.", feedback.ErrBadArgument)
		})
	}
}

// setupApp builds the collaborators a does not have yet.
func setupApp(a *app.App) {
	if a.Helper == nil {
		helperPath := globals.ResolveHelperPath()
		logrus.Debugf("using helper %s", helperPath)
		a.Helper = plugin.NewMboxHelper(helperPath)
	}
	if a.Credentials == nil {
		dir, err := configstore.DefaultDir()
		if err != nil {
			feedback.Fatal(fmt.Sprintf("Can't locate the config store: %s", err), feedback.ErrCoreConfig)
			return
		}
		store := configstore.New(dir, configstore.Namespace(v.Application, v.VersionInfo.VersionString))
		logrus.Debugf("using config store %s", store.Path())
		a.Credentials = credentials.NewConfigStore(store)
	}
	if a.Prompter == nil {
		a.Prompter = prompt.NewTerminal(promptInput, feedback.PromptOut())
	}
	if a.Getwd == nil {
		a.Getwd = paths.Getwd
	}
}
