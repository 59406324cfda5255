// SPDX-License-Identifier: GPL-2.0-or-later

package export

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"chisel/geometry"
	"chisel/vmf"
)

type SummaryDoc struct {
	MapVersion    int            `yaml:"map_version"`
	EditorVersion int            `yaml:"editor_version"`
	EditorBuild   int            `yaml:"editor_build"`
	Entities      int            `yaml:"entities"`
	Solids        []SolidSummary `yaml:"solids"`
	Faces         int            `yaml:"faces"`
	Vertices      int            `yaml:"vertices"`
	Problems      []string       `yaml:"problems,omitempty"`
}

type SolidSummary struct {
	ID       int     `yaml:"id"`
	Sides    int     `yaml:"sides"`
	Faces    int     `yaml:"faces"`
	Vertices int     `yaml:"vertices"`
	Bounds   *Bounds `yaml:"bounds,omitempty"`
}

type Bounds struct {
	Mins [3]float32 `yaml:"mins,flow"`
	Maxs [3]float32 `yaml:"maxs,flow"`
}

// Summary describes doc and the brushes reconstructed from
// doc.AllSolids(), brushes[i] belonging to the i-th solid.
func Summary(doc *vmf.Document, brushes []*geometry.Brush) *SummaryDoc {
	s := &SummaryDoc{
		MapVersion:    doc.VersionInfo.MapVersion,
		EditorVersion: doc.VersionInfo.EditorVersion,
		EditorBuild:   doc.VersionInfo.EditorBuild,
		Entities:      len(doc.Entities),
	}
	for i, solid := range doc.AllSolids() {
		ss := SolidSummary{ID: solid.ID, Sides: len(solid.Sides)}
		if i < len(brushes) && brushes[i] != nil {
			b := brushes[i]
			ss.Faces = len(b.Faces)
			ss.Vertices = b.VertexCount()
			if len(b.Faces) > 0 {
				mins, maxs := b.Bounds()
				ss.Bounds = &Bounds{Mins: mins.Array(), Maxs: maxs.Array()}
			}
		}
		s.Faces += ss.Faces
		s.Vertices += ss.Vertices
		s.Solids = append(s.Solids, ss)
	}
	for _, p := range doc.Problems {
		s.Problems = append(s.Problems, p.Error())
	}
	return s
}

func (s *SummaryDoc) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encode summary")
	}
	return b, nil
}
