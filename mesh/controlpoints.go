/*
Package mesh derives pose correspondence geometry from CAD model vertices:
the nine canonical control points (eight bounding box corners and the
centroid) consumed by an external perspective-n-point solver, plus helpers to
bring raw model vertices into the camera convention used by the tracker.
*/
package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// NumControlPoints is the size of a ControlPointSet
const NumControlPoints = 9

// ControlPointSet holds the 8 bounding box corners, ordered x outer, y middle
// and z inner over {min, max}, followed by the box centroid
type ControlPointSet [NumControlPoints]r3.Vec

// Corners returns the 8 bounding box corners
func (c ControlPointSet) Corners() []r3.Vec {
	return c[:8]
}

// Centroid returns the centre of the bounding box
func (c ControlPointSet) Centroid() r3.Vec {
	return c[8]
}

// Bounds returns the per axis minimum and maximum over vertices.  An empty
// vertex set returns two zero vectors.
func Bounds(vertices []r3.Vec) (lo, hi r3.Vec) {

	if len(vertices) == 0 {
		return r3.Vec{}, r3.Vec{}
	}

	lo = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	for _, v := range vertices {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}

	return lo, hi
}

// GenerateControlPoints returns the control points of the axis aligned
// bounding box of vertices.  The ordering is fixed so correspondences made
// against it stay valid across frames.
func GenerateControlPoints(vertices []r3.Vec) ControlPointSet {

	lo, hi := Bounds(vertices)
	xyz := [2]r3.Vec{lo, hi}

	var out ControlPointSet
	n := 0

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				out[n] = r3.Vec{X: xyz[i].X, Y: xyz[j].Y, Z: xyz[k].Z}
				n++
			}
		}
	}

	out[n] = r3.Scale(0.5, r3.Add(lo, hi))

	return out
}

// ControlPointsFromMatrix generates control points from an N x 3 vertex
// matrix
func ControlPointsFromMatrix(v mat.Matrix) (ControlPointSet, error) {

	vertices, err := VerticesFromMatrix(v)

	if err != nil {
		return ControlPointSet{}, err
	}

	return GenerateControlPoints(vertices), nil
}

// VerticesFromMatrix converts an N x 3 matrix into a vertex slice
func VerticesFromMatrix(v mat.Matrix) ([]r3.Vec, error) {

	rows, cols := v.Dims()

	if cols != 3 {
		return nil, fmt.Errorf("vertex matrix must have 3 columns, got %d", cols)
	}

	out := make([]r3.Vec, rows)

	for i := 0; i < rows; i++ {
		out[i] = r3.Vec{X: v.At(i, 0), Y: v.At(i, 1), Z: v.At(i, 2)}
	}

	return out, nil
}
