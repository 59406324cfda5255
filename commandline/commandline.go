// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
)

var (
	logJSON bool
	strict  bool

	workers int

	basedir  string
	config   string
	format   string
	logLevel string
	output   string
)

func register(fs *flag.FlagSet) {
	fs.BoolVar(&logJSON, "logjson", false, "log as JSON")
	fs.BoolVar(&strict, "strict", false, "fail on documents with broken solids, overrides vmf_strict")

	fs.IntVar(&workers, "workers", -1, "reconstruction goroutines, 0 is GOMAXPROCS, negative uses geom_workers")

	fs.StringVar(&basedir, "basedir", "", "directory relative document names are resolved against")
	fs.StringVar(&config, "config", "", "config file, default ~/.config/chisel/chisel.toml")
	fs.StringVar(&format, "format", "pb", "export encoding: pb or yaml")
	fs.StringVar(&logLevel, "loglevel", "info", "debug, info, warn or error")
	fs.StringVar(&output, "o", "", "output file")
}

func init() {
	register(flag.CommandLine)
}

func BaseDirectory() string {
	return basedir
}

func Config() string {
	return config
}

func Format() string {
	return format
}

func LogLevel() string {
	return logLevel
}

func LogJSON() bool {
	return logJSON
}

func Output() string {
	return output
}

func Strict() bool {
	return strict
}

// Workers returns the worker count and whether it was given.
func Workers() (int, bool) {
	return workers, workers >= 0
}
