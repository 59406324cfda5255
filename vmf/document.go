// SPDX-License-Identifier: GPL-2.0-or-later

// Package vmf maps a parsed Hammer map (kv.Node tree) to typed blocks and
// back. Every typed block keeps the fields it does not model in Rest and
// writes them back unchanged, so loading and saving a document only touches
// what was edited.
package vmf

import (
	"github.com/pkg/errors"

	"chisel/kv"
)

type Document struct {
	VersionInfo *VersionInfo
	World       *World
	Entities    []*Entity
	// BrokenEntities holds entity blocks that failed to load, they are
	// written back unchanged after Entities.
	BrokenEntities []*kv.Node
	// Problems lists every solid or entity that failed to load.
	Problems []*Problem
	Rest     *kv.Node
}

type VersionInfo struct {
	EditorVersion int
	EditorBuild   int
	MapVersion    int
	FormatVersion int
	Prefab        bool
	Rest          *kv.Node
}

// Load parses text and maps it to a Document.
func Load(text string) (*Document, error) {
	n, err := kv.Parse(text)
	if err != nil {
		return nil, err
	}
	return Parse(n)
}

func LoadBytes(data []byte) (*Document, error) {
	return Load(string(data))
}

// Parse maps n to a Document. n is consumed: the mapped fields are removed
// from it and what remains becomes Rest.
//
// A missing or broken versioninfo or world header fails the whole document.
// Broken solids and entities are recorded in Problems instead.
func Parse(n *kv.Node) (*Document, error) {
	vn, ok := n.TakeChild("versioninfo")
	if !ok {
		return nil, &MissingFieldError{Block: "document", Field: "versioninfo"}
	}
	vi, err := parseVersionInfo(vn)
	if err != nil {
		return nil, err
	}
	wn, ok := n.TakeChild("world")
	if !ok {
		return nil, &MissingFieldError{Block: "document", Field: "world"}
	}
	w, problems, err := parseWorld(wn)
	if err != nil {
		return nil, errors.Wrap(err, "world")
	}
	d := &Document{
		VersionInfo: vi,
		World:       w,
		Problems:    problems,
	}
	entities, _ := n.TakeChildren("entity")
	for i, en := range entities {
		e, problems, err := parseEntity(en.Clone())
		if err != nil {
			p := &Problem{Block: "entity", Owner: "document", Index: i, Err: err}
			if e != nil {
				p.ID = e.ID
			}
			d.Problems = append(d.Problems, p)
			d.BrokenEntities = append(d.BrokenEntities, en)
			continue
		}
		d.Problems = append(d.Problems, problems...)
		d.Entities = append(d.Entities, e)
	}
	d.Rest = n
	return d, nil
}

// Err returns a *LoadError if some blocks failed to load.
func (d *Document) Err() error {
	if len(d.Problems) == 0 {
		return nil
	}
	return &LoadError{Problems: d.Problems}
}

// AllSolids returns the world's solids followed by the solids of all
// entities.
func (d *Document) AllSolids() []*Solid {
	solids := append([]*Solid(nil), d.World.Solids...)
	for _, e := range d.Entities {
		solids = append(solids, e.Solids...)
	}
	return solids
}

func (d *Document) AsGeneric() *kv.Node {
	g := d.Rest.Clone()
	g.SetChild("versioninfo", d.VersionInfo.AsGeneric())
	g.SetChild("world", d.World.AsGeneric())
	entities := make([]*kv.Node, 0, len(d.Entities)+len(d.BrokenEntities))
	for _, e := range d.Entities {
		entities = append(entities, e.AsGeneric())
	}
	for _, b := range d.BrokenEntities {
		entities = append(entities, b.Clone())
	}
	g.SetChildren("entity", entities)
	return g
}

// Marshal returns the document in the text format.
func (d *Document) Marshal() ([]byte, error) {
	return d.AsGeneric().MarshalText()
}

func parseVersionInfo(n *kv.Node) (*VersionInfo, error) {
	const block = "versioninfo"
	var (
		vi  VersionInfo
		err error
	)
	for _, f := range []struct {
		key string
		v   *int
	}{
		{"editorversion", &vi.EditorVersion},
		{"editorbuild", &vi.EditorBuild},
		{"mapversion", &vi.MapVersion},
		{"formatversion", &vi.FormatVersion},
	} {
		if *f.v, err = takeInt(n, block, f.key); err != nil {
			return nil, err
		}
	}
	if vi.Prefab, err = takeBool(n, block, "prefab"); err != nil {
		return nil, err
	}
	vi.Rest = n
	return &vi, nil
}

func (vi *VersionInfo) AsGeneric() *kv.Node {
	g := vi.Rest.Clone()
	g.Set("editorversion", formatInt(vi.EditorVersion))
	g.Set("editorbuild", formatInt(vi.EditorBuild))
	g.Set("mapversion", formatInt(vi.MapVersion))
	g.Set("formatversion", formatInt(vi.FormatVersion))
	g.Set("prefab", formatBool(vi.Prefab))
	return g
}
