// SPDX-License-Identifier: GPL-2.0-or-later

// Package kv implements the brace delimited keyvalue text format used by
// Hammer map files:
//
//	"key" "value"
//	name
//	{
//		"key" "value"
//	}
//
// Keys and block names may repeat on the same level. A Node keeps every
// repetition in order and remembers the order in which distinct keys and
// block names first appeared, so writing a parsed Node reproduces the input
// layout.
package kv

import (
	"cogentcore.org/core/base/ordmap"
)

// Node is one level of a document: its key/value pairs and its child blocks.
// The zero value is an empty node ready to use.
type Node struct {
	fields   *ordmap.Map[string, []string]
	children *ordmap.Map[string, []*Node]
}

func New() *Node {
	return &Node{}
}

func (n *Node) init() {
	if n.fields == nil {
		n.fields = ordmap.New[string, []string]()
	}
	if n.children == nil {
		n.children = ordmap.New[string, []*Node]()
	}
}

// Value returns the first value stored for key.
func (n *Node) Value(key string) (string, bool) {
	v := n.Values(key)
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Values returns all values stored for key in input order.
// The returned slice must not be modified.
func (n *Node) Values(key string) []string {
	if n == nil || n.fields == nil {
		return nil
	}
	v, _ := n.fields.ValueByKeyTry(key)
	return v
}

// Add appends value to the values of key.
func (n *Node) Add(key, value string) {
	n.init()
	v, _ := n.fields.ValueByKeyTry(key)
	n.fields.Add(key, append(v, value))
}

// Set replaces all values of key by value. An existing key keeps its position.
func (n *Node) Set(key, value string) {
	n.SetValues(key, []string{value})
}

func (n *Node) SetValues(key string, values []string) {
	n.init()
	n.fields.Add(key, values)
}

// TakeValues removes key and returns its values. The key keeps its slot, so
// setting it again later puts it back at its old position.
func (n *Node) TakeValues(key string) ([]string, bool) {
	if n == nil || n.fields == nil {
		return nil, false
	}
	v, ok := n.fields.ValueByKeyTry(key)
	if !ok || len(v) == 0 {
		return nil, false
	}
	n.fields.Add(key, nil)
	return v, true
}

// TakeValue removes key and returns its last value. Like the format's
// consumers, a repeated key resolves to its last occurrence.
func (n *Node) TakeValue(key string) (string, bool) {
	v, ok := n.TakeValues(key)
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[len(v)-1], true
}

// Child returns the first child block called name.
func (n *Node) Child(name string) (*Node, bool) {
	c := n.ChildrenOf(name)
	if len(c) == 0 {
		return nil, false
	}
	return c[0], true
}

// ChildrenOf returns all child blocks called name in input order.
// The returned slice must not be modified.
func (n *Node) ChildrenOf(name string) []*Node {
	if n == nil || n.children == nil {
		return nil
	}
	c, _ := n.children.ValueByKeyTry(name)
	return c
}

// AddChild appends c to the blocks called name.
func (n *Node) AddChild(name string, c *Node) {
	n.init()
	v, _ := n.children.ValueByKeyTry(name)
	n.children.Add(name, append(v, c))
}

// SetChild replaces all blocks called name by c.
func (n *Node) SetChild(name string, c *Node) {
	n.SetChildren(name, []*Node{c})
}

// SetChildren replaces all blocks called name.
func (n *Node) SetChildren(name string, c []*Node) {
	n.init()
	n.children.Add(name, c)
}

// TakeChildren removes all blocks called name and returns them. Like
// TakeValues the name keeps its slot.
func (n *Node) TakeChildren(name string) ([]*Node, bool) {
	if n == nil || n.children == nil {
		return nil, false
	}
	c, ok := n.children.ValueByKeyTry(name)
	if !ok || len(c) == 0 {
		return nil, false
	}
	n.children.Add(name, nil)
	return c, true
}

// TakeChild removes all blocks called name and returns the first one.
func (n *Node) TakeChild(name string) (*Node, bool) {
	c, ok := n.TakeChildren(name)
	if !ok || len(c) == 0 {
		return nil, false
	}
	return c[0], true
}

// Keys returns the keys holding values, in order of first appearance.
func (n *Node) Keys() []string {
	if n == nil || n.fields == nil {
		return nil
	}
	var keys []string
	for _, kv := range n.fields.Order {
		if len(kv.Value) > 0 {
			keys = append(keys, kv.Key)
		}
	}
	return keys
}

// Names returns the names of child blocks, in order of first appearance.
func (n *Node) Names() []string {
	if n == nil || n.children == nil {
		return nil
	}
	var names []string
	for _, kv := range n.children.Order {
		if len(kv.Value) > 0 {
			names = append(names, kv.Key)
		}
	}
	return names
}

// Len returns the number of values plus the number of child blocks.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	l := 0
	if n.fields != nil {
		for _, kv := range n.fields.Order {
			l += len(kv.Value)
		}
	}
	if n.children != nil {
		for _, kv := range n.children.Order {
			l += len(kv.Value)
		}
	}
	return l
}

func (n *Node) Empty() bool {
	return n.Len() == 0
}

// Clone returns a deep copy of n. Empty slots left by the Take methods are
// copied as well.
func (n *Node) Clone() *Node {
	c := New()
	if n == nil {
		return c
	}
	c.init()
	if n.fields != nil {
		for _, kv := range n.fields.Order {
			c.fields.Add(kv.Key, append([]string(nil), kv.Value...))
		}
	}
	if n.children != nil {
		for _, kv := range n.children.Order {
			var dst []*Node
			for _, s := range kv.Value {
				dst = append(dst, s.Clone())
			}
			c.children.Add(kv.Key, dst)
		}
	}
	return c
}
