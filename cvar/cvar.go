// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"chisel/cmd"
	"chisel/conlog"
)

var (
	mutex      sync.RWMutex
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
	// modified counts changes of archived cvars
	modified int
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1
	ROM     flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	rom      bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float64
	defaultValue string
	id           int
}

func All() []*Cvar {
	mutex.RLock()
	defer mutex.RUnlock()
	return append([]*Cvar(nil), cvarArray...)
}

// Modified changes whenever an archived cvar gets a new value.
func Modified() int {
	mutex.RLock()
	defer mutex.RUnlock()
	return modified
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.set(s)
}

func (cv *Cvar) set(s string) {
	mutex.Lock()
	if cv.archive && s != cv.stringValue {
		modified++
	}
	cv.stringValue = s
	cv.value, _ = strconv.ParseFloat(strings.TrimSpace(s), 64)
	cb := cv.callback
	mutex.Unlock()
	if cb != nil {
		cb(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return cv.stringValue
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float64 {
	mutex.RLock()
	defer mutex.RUnlock()
	return cv.value
}

// Int returns the value rounded towards zero.
func (cv *Cvar) Int() int {
	return int(math.Trunc(cv.Value()))
}

func (cv *Cvar) SetValue(value float64) {
	if float64(int64(value)) == value {
		cv.SetByString(strconv.FormatInt(int64(value), 10))
	} else {
		cv.SetByString(strconv.FormatFloat(value, 'f', -1, 64))
	}
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	s := cv.String()
	return s != "0" && s != ""
}

func Get(name string) (*Cvar, bool) {
	mutex.RLock()
	defer mutex.RUnlock()
	cv, ok := cvarByName[name]
	return cv, ok
}

func GetByID(id int) (*Cvar, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	if id < 0 || id >= len(cvarArray) {
		return nil, errors.Errorf("id %d out of bounds", id)
	}
	return cvarArray[id], nil
}

func Register(name, value string, flags flag) (*Cvar, error) {
	v, _ := strconv.ParseFloat(value, 64)
	mutex.Lock()
	defer mutex.Unlock()
	if _, ok := cvarByName[name]; ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}
	cv := &Cvar{
		name:         name,
		defaultValue: value,
		stringValue:  value,
		value:        v,
		archive:      flags&ARCHIVE != 0,
		rom:          flags&ROM != 0,
		id:           len(cvarArray),
	}
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		panic(err.Error())
	}
	return cv
}

func init() {
	cmd.Must(cmd.AddCommand("cvarlist", "cvarlist [prefix]: list tunables", list))
	cmd.Must(cmd.AddCommand("reset", "reset <cvar>: reset to default", reset))
	cmd.Must(cmd.AddCommand("resetall", "resetall: reset all tunables", resetAll))
	cmd.Must(cmd.AddCommand("set", "set <cvar> <value>: change a tunable", set))
	cmd.Must(cmd.AddCommand("toggle", "toggle <cvar>: toggle between 0 and 1", toggle))
}

func set(_ context.Context, a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		return errors.New("set <cvar> <value>")
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return errors.Errorf("variable %v not found", args[0].String())
	}
	if cv.rom {
		return errors.Errorf("variable %v is read only", cv.Name())
	}
	cv.SetByString(args[1].String())
	slog.Debug("Cvar set", "name", cv.Name(), "value", cv.String())
	return nil
}

func toggle(_ context.Context, a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		return errors.New("toggle <cvar>")
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return errors.Errorf("variable %v not found", args[0].String())
	}
	cv.Toggle()
	return nil
}

func reset(_ context.Context, a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		return errors.New("reset <cvar>")
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return errors.Errorf("variable %v not found", args[0].String())
	}
	cv.Reset()
	return nil
}

func resetAll(_ context.Context, _ cmd.Arguments) error {
	for _, cv := range All() {
		cv.Reset()
	}
	return nil
}

func list(_ context.Context, a cmd.Arguments) error {
	part := ""
	if args := a.Args(); len(args) > 1 {
		part = args[1].String()
	}
	count := 0
	for _, v := range All() {
		if !strings.HasPrefix(v.Name(), part) {
			continue
		}
		mark := " "
		if v.Archive() {
			mark = "*"
		}
		conlog.Printf("%s %s \"%s\"\n", mark, v.Name(), v.String())
		count++
	}
	conlog.Printf("%v cvars\n", count)
	return nil
}
