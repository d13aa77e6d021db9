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
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/fatih/color"
	"github.com/modbusbox/mbox-builder/cli/feedback"
	"github.com/modbusbox/mbox-builder/credentials"
	"github.com/modbusbox/mbox-builder/flasher"
	"github.com/modbusbox/mbox-builder/prompt"
)

type uploadCall struct {
	dir  string
	port string
	auth credentials.Credentials
	opts flasher.BuildOptions
}

type fakeHelper struct {
	ports     []*flasher.Port
	portsErr  error
	chipID    string
	chipErr   error
	uploadErr error
	eraseErr  error

	getPortsCalls int
	chipIDPorts   []string
	erasePorts    []string
	uploads       []uploadCall
}

func (h *fakeHelper) GetPorts(ctx context.Context) ([]*flasher.Port, error) {
	h.getPortsCalls++
	return h.ports, h.portsErr
}

func (h *fakeHelper) GetChipID(ctx context.Context, port string) (string, error) {
	h.chipIDPorts = append(h.chipIDPorts, port)
	return h.chipID, h.chipErr
}

func (h *fakeHelper) BuildAndUpload(ctx context.Context, dir *paths.Path, port string, auth credentials.Credentials, opts flasher.BuildOptions) error {
	h.uploads = append(h.uploads, uploadCall{dir: dir.String(), port: port, auth: auth, opts: opts})
	return h.uploadErr
}

func (h *fakeHelper) EraseFlash(ctx context.Context, port string) error {
	h.erasePorts = append(h.erasePorts, port)
	return h.eraseErr
}

// scriptedPrompter answers questions from a script: int for Select, string
// for Input and Password, bool for Confirm. Answers rejected by the
// validator are recorded in rejected and the next answer is used, as a
// terminal would ask again.
type scriptedPrompter struct {
	answers   []interface{}
	questions []string
	choices   [][]string
	rejected  []string
}

func (p *scriptedPrompter) next(message string) (interface{}, error) {
	p.questions = append(p.questions, message)
	if len(p.answers) == 0 {
		return nil, prompt.ErrAborted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Select(ctx context.Context, message string, choices []string) (int, error) {
	p.choices = append(p.choices, choices)
	answer, err := p.next(message)
	if err != nil {
		return 0, err
	}
	return answer.(int), nil
}

func (p *scriptedPrompter) Input(ctx context.Context, message, defaultValue string, validate prompt.Validator) (string, error) {
	for {
		answer, err := p.next(message)
		if err != nil {
			return "", err
		}
		s := answer.(string)
		if s == "" {
			s = defaultValue
		}
		if validate != nil && validate(s) != nil {
			p.rejected = append(p.rejected, s)
			continue
		}
		return s, nil
	}
}

func (p *scriptedPrompter) Password(ctx context.Context, message string, validate prompt.Validator) (string, error) {
	return p.Input(ctx, message, "", validate)
}

func (p *scriptedPrompter) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	answer, err := p.next(message)
	if err != nil {
		return false, err
	}
	return answer.(bool), nil
}

type testEnv struct {
	app      *App
	helper   *fakeHelper
	prompter *scriptedPrompter
	store    *credentials.MemoryStore
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

func newTestEnv(t *testing.T, answers ...interface{}) *testEnv {
	color.NoColor = true
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	feedback.SetOut(out, errOut)
	t.Cleanup(func() {
		feedback.SetOut(os.Stdout, os.Stderr)
		feedback.SetFormat(feedback.Text)
	})

	env := &testEnv{
		helper:   &fakeHelper{},
		prompter: &scriptedPrompter{answers: answers},
		store:    credentials.NewMemoryStore(),
		out:      out,
		errOut:   errOut,
	}
	env.app = New(env.helper, env.store, env.prompter)
	env.app.Getwd = func() (*paths.Path, error) {
		return paths.New("/home/operator/firmware"), nil
	}
	return env
}
