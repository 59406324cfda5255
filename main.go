// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"chisel/cmd"
	"chisel/commandline"
	"chisel/config"
	"chisel/conlog"
	"chisel/cvar"
	"chisel/filesystem"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: chisel [flags] <command> [args]\n\ncommands:\n")
	for _, c := range cmd.List() {
		fmt.Fprintf(flag.CommandLine.Output(), "  %s\n", cmd.Usage(c))
	}
	fmt.Fprintf(flag.CommandLine.Output(), "\nflags:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	os.Exit(run())
}

func run() int {
	level, err := conlog.ParseLevel(commandline.LogLevel())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	conlog.Init(os.Stderr, level, commandline.LogJSON())
	filesystem.UseBaseDir(commandline.BaseDirectory())

	cfg := commandline.Config()
	if cfg == "" {
		if cfg, err = config.DefaultPath(); err != nil {
			slog.Warn("No config file", "err", err)
		}
	}
	if cfg != "" {
		if err := config.Load(cfg); err != nil {
			slog.Error("Could not load config", "err", err)
			return 1
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	modified := cvar.Modified()
	ok, err := cmd.Execute(ctx, cmd.FromArgs(args))
	if !ok {
		slog.Error("Unknown command", "command", args[0])
		flag.Usage()
		return 2
	}
	if err != nil {
		slog.Error("Command failed", "err", err)
		return 1
	}
	if cfg != "" && cvar.Modified() != modified {
		if err := config.Save(cfg); err != nil {
			slog.Error("Could not save config", "err", err)
			return 1
		}
	}
	return 0
}
