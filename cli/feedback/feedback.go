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

package feedback

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ExitCode to be used for Fatal.
type ExitCode int

const (
	// Success (0 is the no-error return code in Unix)
	Success ExitCode = iota

	// ErrGeneric Generic error (1 is the reserved "catchall" code in Unix)
	ErrGeneric

	_ // (2 Is reserved in Unix)
	_ // (3 to 5 are unused)
	_
	_

	// ErrCoreConfig represents an error in the cli core config, for example the
	// config store directory can't be created. (6)
	ErrCoreConfig

	// ErrBadArgument is returned when the arguments are not valid (7)
	ErrBadArgument
)

// OutputFormat is an output format
type OutputFormat int

const (
	// Text is the plain text format, suitable for interactive terminals
	Text OutputFormat = iota
	// JSON format
	JSON
)

var formats map[string]OutputFormat = map[string]OutputFormat{
	"json": JSON,
	"text": Text,
}

func (f OutputFormat) String() string {
	for res, format := range formats {
		if format == f {
			return res
		}
	}
	panic("unknown output format")
}

// ParseOutputFormat parses a string and returns the corresponding OutputFormat.
// The boolean returned is true if the string was a valid OutputFormat.
func ParseOutputFormat(in string) (OutputFormat, bool) {
	format, found := formats[in]
	return format, found
}

var (
	format OutputFormat = Text
	stdOut io.Writer    = os.Stdout
	stdErr io.Writer    = os.Stderr
	// exit is replaced in tests to observe Fatal
	exit = os.Exit
)

// Result is anything more complex than a sentence that needs to be printed
// for the user.
type Result interface {
	fmt.Stringer
	Data() interface{}
}

// SetFormat can be used to change the output format at runtime
func SetFormat(f OutputFormat) {
	format = f
}

// GetFormat returns the output format currently set
func GetFormat() OutputFormat {
	return format
}

// SetOut redirects the standard output and error streams used by feedback.
func SetOut(out, err io.Writer) {
	stdOut = out
	stdErr = err
}

// PromptOut returns the writer for interactive questions: the standard
// output in Text format, the standard error otherwise.
func PromptOut() io.Writer {
	if format != Text {
		return stdErr
	}
	return stdOut
}

// Print outputs a plain message, only in Text format.
func Print(msg string) {
	if format == Text {
		fmt.Fprintln(stdOut, msg)
	}
}

// Printf behaves like Print with a format string.
func Printf(format string, args ...interface{}) {
	Print(fmt.Sprintf(format, args...))
}

// Warning outputs a highlighted warning on the standard output. In JSON
// format the warning goes to the standard error instead.
func Warning(msg string) {
	if format != Text {
		fmt.Fprintln(stdErr, msg)
		return
	}
	fmt.Fprintln(stdOut, color.YellowString(msg))
}

// Errorf outputs an error line on the standard error.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintln(stdErr, color.RedString(format, args...))
}

// Fatal outputs the errorMsg and exits with status exitCode.
func Fatal(errorMsg string, exitCode ExitCode) {
	if format == Text {
		fmt.Fprintln(stdErr, errorMsg)
		exit(int(exitCode))
		return
	}

	type FatalError struct {
		Error string `json:"error"`
	}
	res := &FatalError{
		Error: errorMsg,
	}
	var d []byte
	switch format {
	case JSON:
		d, _ = json.MarshalIndent(res, "", "  ")
	default:
		panic("unknown output format")
	}
	fmt.Fprintln(stdOut, string(d))
	exit(int(exitCode))
}

// PrintResult is a convenient wrapper to provide feedback for complex data,
// where the contents can't be just serialized to JSON but requires more
// structure.
func PrintResult(res Result) {
	var data string
	switch format {
	case JSON:
		d, err := json.MarshalIndent(res.Data(), "", "  ")
		if err != nil {
			Fatal(fmt.Sprintf("Error during JSON encoding of the output: %v", err), ErrGeneric)
			return
		}
		data = string(d)
	case Text:
		data = res.String()
	default:
		panic("unknown output format")
	}
	if data != "" {
		fmt.Fprintln(stdOut, data)
	}
}
