// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"context"
	"strings"

	"chisel/conlog"
)

func init() {
	Must(AddCommand("help", "help [prefix]: list commands", commands.printCmdList))
}

func (c *Commands) printCmdList(_ context.Context, a Arguments) error {
	args := a.Args()
	part := ""
	if len(args) > 1 {
		part = args[1].String()
	}
	count := 0
	for _, name := range c.List() {
		if strings.HasPrefix(name, part) {
			conlog.Printf("  %s\n", c.Usage(name))
			count++
		}
	}
	if part == "" {
		conlog.Printf("%v commands\n", count)
	} else {
		conlog.Printf("%v commands beginning with \"%v\"\n", count, part)
	}
	return nil
}
