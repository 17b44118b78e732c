package mesh

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is the tracker's reduced object pose: translation x, y, z and a
// rotation (yaw) about the gravity aligned Y axis
type State [4]float64

// CenterVertices translates vertices in place so their mean is the origin
func CenterVertices(vertices []r3.Vec) {

	if len(vertices) == 0 {
		return
	}

	var mean r3.Vec
	for _, v := range vertices {
		mean = r3.Add(mean, v)
	}
	mean = r3.Scale(1/float64(len(vertices)), mean)

	for i := range vertices {
		vertices[i] = r3.Sub(vertices[i], mean)
	}
}

// ScaleVertices multiplies every vertex in place by factor
func ScaleVertices(vertices []r3.Vec, factor float64) {
	for i := range vertices {
		vertices[i] = r3.Scale(factor, vertices[i])
	}
}

// RotateVerticesY rotates vertices in place by angle radians about the Y axis
func RotateVerticesY(vertices []r3.Vec, angle float64) {

	rot := r3.NewRotation(angle, r3.Vec{Y: 1})

	for i := range vertices {
		vertices[i] = rot.Rotate(vertices[i])
	}
}

// FlipVertices converts vertices in place from the graphics convention (y up,
// z towards the viewer) to the vision convention (y down, z forward)
func FlipVertices(vertices []r3.Vec) {
	for i := range vertices {
		vertices[i].Y = -vertices[i].Y
		vertices[i].Z = -vertices[i].Z
	}
}

// PoseFromState builds the 4x4 homogeneous transform of a State
func PoseFromState(s State) *mat.Dense {

	c, sn := math.Cos(s[3]), math.Sin(s[3])

	return mat.NewDense(4, 4, []float64{
		c, 0, sn, s[0],
		0, 1, 0, s[1],
		-sn, 0, c, s[2],
		0, 0, 0, 1,
	})
}

// StateFromLocalParam maps the optimizer's local parametrisation, image plane
// offsets scaled by log depth, back to a State
func StateFromLocalParam(p [4]float64) State {

	z := math.Exp(p[2])

	return State{p[0] * z, p[1] * z, z, p[3]}
}
