// SPDX-License-Identifier: GPL-2.0-or-later

package vmf

import (
	"strconv"

	"chisel/kv"
)

func takeString(n *kv.Node, block, key string) (string, error) {
	v, ok := n.TakeValue(key)
	if !ok {
		return "", &MissingFieldError{Block: block, Field: key}
	}
	return v, nil
}

func takeInt(n *kv.Node, block, key string) (int, error) {
	v, err := takeString(n, block, key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, &FieldParseError{Block: block, Field: key, Value: v, Err: err}
	}
	return i, nil
}

func takeFloat(n *kv.Node, block, key string) (float64, error) {
	v, err := takeString(n, block, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &FieldParseError{Block: block, Field: key, Value: v, Err: err}
	}
	return f, nil
}

func takeBool(n *kv.Node, block, key string) (bool, error) {
	v, err := takeString(n, block, key)
	if err != nil {
		return false, err
	}
	switch v {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, &FieldParseError{Block: block, Field: key, Value: v, Err: strconv.ErrSyntax}
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
