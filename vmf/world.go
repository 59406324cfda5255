// SPDX-License-Identifier: GPL-2.0-or-later

package vmf

import (
	"fmt"

	"chisel/kv"
)

// World is the worldspawn block holding the static brushes.
type World struct {
	ID        int
	ClassName string
	Solids    []*Solid
	// Broken holds solid blocks that failed to load. They are written back
	// unchanged after Solids.
	Broken []*kv.Node
	Rest   *kv.Node
}

// Entity is an entity block. Brush entities own solids, point entities don't.
type Entity struct {
	ID        int
	ClassName string
	Solids    []*Solid
	Broken    []*kv.Node
	Rest      *kv.Node
}

// parseSolids loads every solid block it can. Failed blocks are returned
// untouched together with a Problem each.
func parseSolids(owner string, nodes []*kv.Node) ([]*Solid, []*kv.Node, []*Problem) {
	var (
		solids   []*Solid
		broken   []*kv.Node
		problems []*Problem
	)
	for i, n := range nodes {
		s, err := parseSolid(n.Clone())
		if err != nil {
			p := &Problem{Block: "solid", Owner: owner, Index: i, Err: err}
			if s != nil {
				p.ID = s.ID
			}
			problems = append(problems, p)
			broken = append(broken, n)
			continue
		}
		solids = append(solids, s)
	}
	return solids, broken, problems
}

func solidNodes(solids []*Solid, broken []*kv.Node) []*kv.Node {
	nodes := make([]*kv.Node, 0, len(solids)+len(broken))
	for _, s := range solids {
		nodes = append(nodes, s.AsGeneric())
	}
	for _, b := range broken {
		nodes = append(nodes, b.Clone())
	}
	return nodes
}

func parseWorld(n *kv.Node) (*World, []*Problem, error) {
	const block = "world"
	id, err := takeInt(n, block, "id")
	if err != nil {
		return nil, nil, err
	}
	class, err := takeString(n, block, "classname")
	if err != nil {
		return nil, nil, err
	}
	w := &World{ID: id, ClassName: class}
	nodes, _ := n.TakeChildren("solid")
	var problems []*Problem
	w.Solids, w.Broken, problems = parseSolids(block, nodes)
	w.Rest = n
	return w, problems, nil
}

func (w *World) AsGeneric() *kv.Node {
	g := w.Rest.Clone()
	g.Set("id", formatInt(w.ID))
	g.Set("classname", w.ClassName)
	g.SetChildren("solid", solidNodes(w.Solids, w.Broken))
	return g
}

func parseEntity(n *kv.Node) (*Entity, []*Problem, error) {
	const block = "entity"
	id, err := takeInt(n, block, "id")
	if err != nil {
		return nil, nil, err
	}
	class, err := takeString(n, block, "classname")
	if err != nil {
		return &Entity{ID: id}, nil, err
	}
	e := &Entity{ID: id, ClassName: class}
	nodes, _ := n.TakeChildren("solid")
	var problems []*Problem
	e.Solids, e.Broken, problems = parseSolids(fmt.Sprintf("entity %d", id), nodes)
	e.Rest = n
	return e, problems, nil
}

func (e *Entity) AsGeneric() *kv.Node {
	g := e.Rest.Clone()
	g.Set("id", formatInt(e.ID))
	g.Set("classname", e.ClassName)
	g.SetChildren("solid", solidNodes(e.Solids, e.Broken))
	return g
}
