// SPDX-License-Identifier: GPL-2.0-or-later

package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"chisel/filesystem"
)

func TestEmpty(t *testing.T) {
	h := New(4)
	if got, ok := h.Latest(); ok || got != "" {
		t.Errorf("empty Latest() = %q, %v, want \"\", false", got, ok)
	}
	if got := h.Len(); got != 0 {
		t.Errorf("empty Len() = %d, want 0", got)
	}
}

func TestAdd(t *testing.T) {
	h := New(4)
	h.Add("a.vmf")
	h.Add("b.vmf")
	want := "b.vmf"
	got, _ := h.Latest()
	if got != want {
		t.Errorf("Latest() = %q, want %q", got, want)
	}
	h.Add("a.vmf")
	got, _ = h.Latest()
	want = "a.vmf"
	if got != want {
		t.Errorf("Latest() = %q, want %q", got, want)
	}
	if got := h.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func testHistory(max int) *History {
	h := New(max)
	for i := 0; i < 10; i++ {
		h.Add(fmt.Sprintf("map%d.vmf", i))
	}
	return h
}

func TestLimit(t *testing.T) {
	h := testHistory(3)
	want := []string{"map9.vmf", "map8.vmf", "map7.vmf"}
	got := h.Entries()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	h.SetMax(1)
	if got := h.Len(); got != 1 {
		t.Errorf("after SetMax(1) Len() = %d, want 1", got)
	}
}

func TestSaveLoad(t *testing.T) {
	filesystem.UseBaseDir(t.TempDir())
	defer filesystem.UseBaseDir("")
	h := testHistory(5)
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	l := New(5)
	if err := l.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fmt.Sprint(l.Entries()) != fmt.Sprint(h.Entries()) {
		t.Errorf("Load() = %v, want %v", l.Entries(), h.Entries())
	}
}

func TestLoadMissing(t *testing.T) {
	filesystem.UseBaseDir(t.TempDir())
	defer filesystem.UseBaseDir("")
	h := New(5)
	if err := h.Load(); err != nil {
		t.Errorf("Load() = %v, want nil", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	filesystem.UseBaseDir(dir)
	defer filesystem.UseBaseDir("")
	// tag of a length delimited field without its length
	b := protowire.AppendTag(nil, entriesField.Number(), protowire.BytesType)
	if err := os.WriteFile(filepath.Join(dir, historyFilename), b, 0644); err != nil {
		t.Fatal(err)
	}
	if err := New(5).Load(); err == nil {
		t.Errorf("Load(corrupt) succeeded")
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	e, err := encode([]string{"box.vmf"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := decode(append(b, e...))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "box.vmf" {
		t.Errorf("decode() = %v, want [box.vmf]", got)
	}
}

func TestEncodeWire(t *testing.T) {
	entries := []string{"maps/box.vmf", "caf\xe9.vmf"}
	got, err := encode(entries)
	if err != nil {
		t.Fatalf("encode(%q): %v", entries, err)
	}
	var want []byte
	for _, e := range entries {
		want = protowire.AppendTag(want, 1, protowire.BytesType)
		want = protowire.AppendString(want, e)
	}
	if string(got) != string(want) {
		t.Errorf("encode(%q) = %x, want %x", entries, got, want)
	}
	back, err := decode(got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fmt.Sprint(back) != fmt.Sprint(entries) {
		t.Errorf("decode(encode(%q)) = %q", entries, back)
	}
}
