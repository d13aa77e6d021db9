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
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Progress shows the state of a long running operation: a spinner while the
// operation runs and a single status line once it is over. The spinner is
// animated only when the output is a terminal. In JSON format only warnings
// and failures are printed, on the standard error.
type Progress struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	text    string
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewProgress creates a Progress writing on the feedback standard output.
func NewProgress() *Progress {
	return &Progress{out: stdOut, errOut: stdErr}
}

// Start begins the operation described by text.
func (p *Progress) Start(text string) *Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text = text
	if format != Text || p.running || !isTerminal(p.out) {
		return p
	}
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.spin(p.stop, p.done)
	return p
}

func (p *Progress) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for frame := 0; ; frame++ {
		p.mu.Lock()
		fmt.Fprintf(p.out, "\r%s %s", color.CyanString(spinnerFrames[frame%len(spinnerFrames)]), p.text)
		p.mu.Unlock()
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Succeed stops the spinner and prints a success line. An empty text keeps
// the one given to Start.
func (p *Progress) Succeed(text string) {
	p.finish(color.GreenString("✔"), text, false)
}

// Warn stops the spinner and prints a warning line.
func (p *Progress) Warn(text string) {
	p.finish(color.YellowString("⚠"), text, true)
}

// Fail stops the spinner and prints a failure line.
func (p *Progress) Fail(text string) {
	p.finish(color.RedString("✖"), text, true)
}

func (p *Progress) finish(symbol, text string, problem bool) {
	p.mu.Lock()
	running := p.running
	p.running = false
	p.mu.Unlock()
	if running {
		close(p.stop)
		<-p.done
		fmt.Fprint(p.out, "\r\033[K")
	}

	if text == "" {
		text = p.text
	}
	if format != Text {
		if problem {
			fmt.Fprintln(p.errOut, text)
		}
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", symbol, text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether Text output goes to a terminal.
func Interactive() bool {
	return format == Text && isTerminal(stdOut)
}
