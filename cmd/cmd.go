// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Func runs a command. args.Argv(0) is the command name.
type Func func(ctx context.Context, args Arguments) error

type command struct {
	f     Func
	usage string
}

type Commands map[string]command

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name, usage string, f Func) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return errors.Errorf("command %s already defined", ln)
	}
	(*c)[ln] = command{f: f, usage: usage}
	return nil
}

func (c *Commands) Exists(cmdName string) bool {
	name := strings.ToLower(cmdName)
	_, ok := (*c)[name]
	return ok
}

func (c *Commands) Usage(cmdName string) string {
	return (*c)[strings.ToLower(cmdName)].usage
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for cmd := range *c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute runs the command named by the first argument. It reports whether
// such a command exists.
func (c *Commands) Execute(ctx context.Context, a Arguments) (bool, error) {
	n := a.Args()
	if len(n) == 0 {
		return false, nil
	}
	name := strings.ToLower(n[0].String())
	if cmd, ok := (*c)[name]; ok {
		if err := cmd.f(ctx, a); err != nil {
			return true, errors.Wrap(err, name)
		}
		return true, nil
	}
	return false, nil
}

var (
	commands = make(Commands)
)

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func AddCommand(name, usage string, f Func) error {
	return commands.Add(name, usage, f)
}

func Exists(cmdName string) bool {
	return commands.Exists(cmdName)
}

func Usage(cmdName string) string {
	return commands.Usage(cmdName)
}

func Execute(ctx context.Context, a Arguments) (bool, error) {
	return commands.Execute(ctx, a)
}

func List() []string {
	return commands.List()
}
