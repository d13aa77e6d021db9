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

// Package prompt asks questions to the operator on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// ErrAborted is returned when the input ends or the context is cancelled
// before an answer is given.
var ErrAborted = errors.New("prompt aborted")

// Validator checks an answer, the returned error message is shown to the
// operator before asking again.
type Validator func(answer string) error

// Prompter asks questions and blocks until they are answered or ctx is done.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(ctx context.Context, message string, choices []string) (int, error)
	// Input returns a free text answer, defaultValue is used for empty answers.
	Input(ctx context.Context, message, defaultValue string, validate Validator) (string, error)
	// Password reads an answer without echoing it.
	Password(ctx context.Context, message string, validate Validator) (string, error)
	Confirm(ctx context.Context, message string, defaultValue bool) (bool, error)
}

type readResult struct {
	answer string
	err    error
}

// Terminal is a line based Prompter.
type Terminal struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	// pending is the read still in flight after a cancelled question
	pending chan readResult
}

// NewTerminal creates a Terminal reading answers from in and writing
// questions on out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (t *Terminal) question(message, hint string) {
	fmt.Fprintf(t.out, "%s %s", color.GreenString("?"), color.New(color.Bold).Sprint(message))
	if hint != "" {
		fmt.Fprintf(t.out, " %s", color.HiBlackString("(%s)", hint))
	}
	fmt.Fprint(t.out, " ")
}

func (t *Terminal) invalid(msg string) {
	fmt.Fprintf(t.out, "%s %s\n", color.RedString(">>"), msg)
}

// await waits for the in flight read, started by read when none is pending.
func (t *Terminal) await(ctx context.Context, read func() (string, error)) (string, error) {
	if ctx.Err() != nil && t.pending == nil {
		return "", ErrAborted
	}
	if t.pending == nil {
		pending := make(chan readResult, 1)
		go func() {
			answer, err := read()
			pending <- readResult{answer, err}
		}()
		t.pending = pending
	}
	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		logrus.Debugf("prompt cancelled: %s", ctx.Err())
		return "", ErrAborted
	case res := <-t.pending:
		t.pending = nil
		return res.answer, res.err
	}
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	line, err := t.await(ctx, func() (string, error) {
		return t.reader.ReadString('\n')
	})
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Select implements Prompter showing a numbered list.
func (t *Terminal) Select(ctx context.Context, message string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, errors.New("nothing to select")
	}
	for {
		fmt.Fprintf(t.out, "%s %s\n", color.GreenString("?"), color.New(color.Bold).Sprint(message))
		for i, c := range choices {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, c)
		}
		fmt.Fprint(t.out, "  Answer: ")
		answer, err := t.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(choices) {
			t.invalid("Please enter a valid index")
			continue
		}
		logrus.Debugf("selected %q", choices[n-1])
		return n - 1, nil
	}
}

// Input implements Prompter.
func (t *Terminal) Input(ctx context.Context, message, defaultValue string, validate Validator) (string, error) {
	for {
		t.question(message, defaultValue)
		answer, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = defaultValue
		}
		if validate != nil {
			if err := validate(answer); err != nil {
				t.invalid(err.Error())
				continue
			}
		}
		return answer, nil
	}
}

// Password implements Prompter. When the input is a terminal the answer is
// not echoed.
func (t *Terminal) Password(ctx context.Context, message string, validate Validator) (string, error) {
	for {
		t.question(message, "")
		var answer string
		var err error
		if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			answer, err = t.readHidden(ctx, int(f.Fd()))
		} else {
			answer, err = t.readLine(ctx)
		}
		if err != nil {
			return "", err
		}
		if validate != nil {
			if err := validate(answer); err != nil {
				t.invalid(err.Error())
				continue
			}
		}
		return answer, nil
	}
}

// readHidden reads a password from the terminal fd, echo is restored when
// ctx is cancelled while reading.
func (t *Terminal) readHidden(ctx context.Context, fd int) (string, error) {
	state, err := term.GetState(fd)
	if err != nil {
		return "", err
	}
	answer, err := t.await(ctx, func() (string, error) {
		data, err := term.ReadPassword(fd)
		return string(data), err
	})
	if errors.Is(err, ErrAborted) || ctx.Err() != nil {
		term.Restore(fd, state)
		return "", ErrAborted
	}
	fmt.Fprintln(t.out)
	return answer, err
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	for {
		t.question(message, hint)
		answer, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return defaultValue, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.invalid("Please answer yes or no")
	}
}

// NotEmpty rejects blank answers.
func NotEmpty(answer string) error {
	if strings.TrimSpace(answer) == "" {
		return errors.New("Please enter a value")
	}
	return nil
}
