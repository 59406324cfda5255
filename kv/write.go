// SPDX-License-Identifier: GPL-2.0-or-later

package kv

import (
	"bufio"
	"bytes"
	"io"
)

const (
	newline = "\r\n"
	indent  = '\t'
)

// WriteTo writes n in the text format. Keys come first, then child blocks,
// each in order of first appearance. Lines end in CRLF and are indented with
// one tab per level.
//
// Values are written verbatim. A value holding a '"' can not be read back.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	n.write(bw, 0)
	err := bw.Flush()
	return cw.n, err
}

func (n *Node) MarshalText() ([]byte, error) {
	var b bytes.Buffer
	if _, err := n.WriteTo(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (n *Node) String() string {
	b, _ := n.MarshalText()
	return string(b)
}

func writeIndent(w *bufio.Writer, level int) {
	for i := 0; i < level; i++ {
		w.WriteByte(indent)
	}
}

// bufio.Writer keeps the first error, Flush reports it.
func (n *Node) write(w *bufio.Writer, level int) {
	for _, key := range n.Keys() {
		for _, value := range n.Values(key) {
			writeIndent(w, level)
			w.WriteByte('"')
			w.WriteString(key)
			w.WriteString(`" "`)
			w.WriteString(value)
			w.WriteByte('"')
			w.WriteString(newline)
		}
	}
	for _, name := range n.Names() {
		for _, c := range n.ChildrenOf(name) {
			writeIndent(w, level)
			w.WriteString(name)
			w.WriteString(newline)
			writeIndent(w, level)
			w.WriteByte('{')
			w.WriteString(newline)
			c.write(w, level+1)
			writeIndent(w, level)
			w.WriteByte('}')
			w.WriteString(newline)
		}
	}
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
