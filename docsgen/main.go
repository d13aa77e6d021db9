/*
	Source: https://github.com/arduino/tooling-project-assets/blob/main/workflow-templates/assets/cobra/docsgen/main.go

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

// Package main generates the Markdown and man page documentation of the
// mbox-builder commands.
package main

import (
	"os"

	"github.com/arduino/go-paths-helper"
	"github.com/modbusbox/mbox-builder/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	if len(os.Args) < 2 {
		print("error: Please provide the output folder argument")
		os.Exit(1)
	}

	out := paths.New(os.Args[1])
	if err := out.MkdirAll(); err != nil {
		panic(err)
	}

	cli := cli.NewCommand()
	cli.DisableAutoGenTag = true // Disable addition of auto-generated date stamp
	if err := doc.GenMarkdownTree(cli, out.String()); err != nil {
		panic(err)
	}

	manDir := out.Join("man")
	if err := manDir.MkdirAll(); err != nil {
		panic(err)
	}
	header := &doc.GenManHeader{Title: "MBOX-BUILDER", Section: "1"}
	if err := doc.GenManTree(cli, header, manDir.String()); err != nil {
		panic(err)
	}
}
