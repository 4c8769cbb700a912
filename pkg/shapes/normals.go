package shapes

import "github.com/Faultbox/tessera/pkg/math"

// Face is an indexed polygon of an imported mesh. Indices are zero-based.
// UV and Normal are either empty or the same length as Position.
type Face struct {
	Position []int
	UV       []int
	Normal   []int
}

// HasNormals reports whether the face declares normal indices.
func (f Face) HasNormals() bool { return len(f.Normal) == len(f.Position) && len(f.Normal) > 0 }

// HasUVs reports whether the face declares texture coordinate indices.
func (f Face) HasUVs() bool { return len(f.UV) == len(f.Position) && len(f.UV) > 0 }

// Fan splits a polygon into the corner triples (0, k, k+1).
func (f Face) Fan() [][3]int {
	if len(f.Position) < 3 {
		return nil
	}
	out := make([][3]int, 0, len(f.Position)-2)
	for k := 1; k+1 < len(f.Position); k++ {
		out = append(out, [3]int{0, k, k + 1})
	}
	return out
}

// NormalReport describes the result of normal recovery.
type NormalReport struct {
	Normals []math.Vec3
	// Isolated counts positions no face touches. Their normal is zero.
	Isolated int
}

// RecoverNormals computes one normal per position as the normalized,
// unweighted sum of the face normals of every triangle touching it.
// Polygons are fan-triangulated first.
func RecoverNormals(positions []math.Vec3, faces []Face) []math.Vec3 {
	return RecoverNormalsReport(positions, faces).Normals
}

// RecoverNormalsReport is RecoverNormals plus the count of positions
// without any incident face.
func RecoverNormalsReport(positions []math.Vec3, faces []Face) NormalReport {
	sums := make([]math.Vec3, len(positions))
	touched := make([]bool, len(positions))

	for _, f := range faces {
		for _, tri := range f.Fan() {
			i0, i1, i2 := f.Position[tri[0]], f.Position[tri[1]], f.Position[tri[2]]
			p0, p1, p2 := positions[i0], positions[i1], positions[i2]
			n := p1.Sub(p0).Cross(p2.Sub(p0))

			for _, i := range [3]int{i0, i1, i2} {
				sums[i] = sums[i].Add(n)
				touched[i] = true
			}
		}
	}

	report := NormalReport{Normals: make([]math.Vec3, len(positions))}
	for i, s := range sums {
		if !touched[i] {
			report.Isolated++
			continue
		}
		report.Normals[i] = s.Normalize()
	}
	return report
}
