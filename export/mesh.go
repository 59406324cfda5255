// SPDX-License-Identifier: GPL-2.0-or-later

// Package export writes reconstructed brushes for other tools.
//
// The mesh encoding is the protobuf Mesh message of package protos.
package export

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"chisel/geometry"
	"chisel/math/vec"
	"chisel/protos"
)

var (
	meshBrushes = protos.Mesh.Fields().ByName("brushes")

	brushID    = protos.Brush.Fields().ByName("id")
	brushFaces = protos.Brush.Fields().ByName("faces")

	faceSideID   = protos.Face.Fields().ByName("side_id")
	faceMaterial = protos.Face.Fields().ByName("material")
	faceNormal   = protos.Face.Fields().ByName("normal")
	faceVertices = protos.Face.Fields().ByName("vertices")
)

var ErrMalformed = errors.New("malformed mesh")

// EncodeBrushes returns the Mesh message holding brushes.
func EncodeBrushes(brushes []*geometry.Brush) ([]byte, error) {
	m := dynamicpb.NewMessage(protos.Mesh)
	l := m.Mutable(meshBrushes).List()
	for _, br := range brushes {
		bm := l.NewElement()
		encodeBrush(bm.Message(), br)
		l.Append(bm)
	}
	b, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode mesh")
	}
	return b, nil
}

func encodeBrush(m protoreflect.Message, br *geometry.Brush) {
	m.Set(brushID, protoreflect.ValueOfInt64(int64(br.ID)))
	l := m.Mutable(brushFaces).List()
	for i := range br.Faces {
		fm := l.NewElement()
		encodeFace(fm.Message(), &br.Faces[i])
		l.Append(fm)
	}
}

func encodeFace(m protoreflect.Message, f *geometry.Face) {
	m.Set(faceSideID, protoreflect.ValueOfInt64(int64(f.SideID)))
	m.Set(faceMaterial, protoreflect.ValueOfString(f.Material))
	packFloats(m.Mutable(faceNormal).List(), f.Normal)
	packFloats(m.Mutable(faceVertices).List(), f.Vertices...)
}

func packFloats(l protoreflect.List, vs ...vec.Vec3) {
	for _, v := range vs {
		l.Append(protoreflect.ValueOfFloat32(v.X))
		l.Append(protoreflect.ValueOfFloat32(v.Y))
		l.Append(protoreflect.ValueOfFloat32(v.Z))
	}
}

func unpackFloats(l protoreflect.List) ([]vec.Vec3, error) {
	if l.Len()%3 != 0 {
		return nil, errors.Wrapf(ErrMalformed, "%d floats are no vectors", l.Len())
	}
	vs := make([]vec.Vec3, 0, l.Len()/3)
	for i := 0; i < l.Len(); i += 3 {
		vs = append(vs, vec.Vec3{
			X: float32(l.Get(i).Float()),
			Y: float32(l.Get(i + 1).Float()),
			Z: float32(l.Get(i + 2).Float()),
		})
	}
	return vs, nil
}

// DecodeBrushes parses a Mesh message. Unknown fields are skipped.
func DecodeBrushes(b []byte) ([]*geometry.Brush, error) {
	m := dynamicpb.NewMessage(protos.Mesh)
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%v", err)
	}
	l := m.Get(meshBrushes).List()
	brushes := make([]*geometry.Brush, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		br, err := decodeBrush(l.Get(i).Message())
		if err != nil {
			return nil, errors.Wrapf(err, "brush %d", i)
		}
		brushes = append(brushes, br)
	}
	return brushes, nil
}

func decodeBrush(m protoreflect.Message) (*geometry.Brush, error) {
	br := &geometry.Brush{ID: int(m.Get(brushID).Int())}
	l := m.Get(brushFaces).List()
	for i := 0; i < l.Len(); i++ {
		f, err := decodeFace(l.Get(i).Message())
		if err != nil {
			return nil, errors.Wrapf(err, "face %d", i)
		}
		br.Faces = append(br.Faces, f)
	}
	return br, nil
}

func decodeFace(m protoreflect.Message) (geometry.Face, error) {
	f := geometry.Face{
		SideID:   int(m.Get(faceSideID).Int()),
		Material: m.Get(faceMaterial).String(),
	}
	normal, err := unpackFloats(m.Get(faceNormal).List())
	if err != nil {
		return f, err
	}
	if len(normal) != 1 {
		return f, errors.Wrapf(ErrMalformed, "normal has %d vectors", len(normal))
	}
	f.Normal = normal[0]
	f.Vertices, err = unpackFloats(m.Get(faceVertices).List())
	return f, err
}
