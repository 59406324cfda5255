// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"log/slog"
	"strconv"
	"strings"
)

type QArg struct {
	a string
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float64() float64 {
	r, err := strconv.ParseFloat(a.a, 64)
	if err != nil {
		return 0
	}
	return r
}

func (a QArg) Bool() bool {
	switch a.a {
	case "1", "t", "T", "true", "TRUE", "True", "On", "ON", "on":
		return true
	default:
		return false
	}
}

type Arguments struct {
	args []QArg
}

// FromArgs wraps already split arguments, e.g. flag.Args().
func FromArgs(s []string) Arguments {
	args := Arguments{args: make([]QArg, 0, len(s))}
	for _, a := range s {
		args.args = append(args.args, QArg{a})
	}
	return args
}

// Parse splits s at white space.
func Parse(s string) Arguments {
	return FromArgs(strings.Fields(s))
}

func (c *Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		slog.Debug("Argv out of bounds", "index", i, "len", len(c.args))
		return QArg{""}
	}
	return c.args[i]
}

func (c *Arguments) Args() []QArg {
	return c.args
}

// ArgumentString joins all arguments after the command name.
func (c *Arguments) ArgumentString() string {
	if len(c.args) < 2 {
		return ""
	}
	s := make([]string, 0, len(c.args)-1)
	for _, a := range c.args[1:] {
		s = append(s, a.a)
	}
	return strings.Join(s, " ")
}
