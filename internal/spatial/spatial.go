// Package spatial provides rigid-body transform math for model poses.
//
// A Pose is a 6-DOF transform (translation plus rotation) expressed in some
// reference frame. Poses compose associatively: if B is expressed in A's
// frame and C in B's frame, Compose(B, C) expresses C in A's frame.
package spatial

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a rigid transform: a translation followed by a rotation.
// The zero value has an invalid (zero) rotation; use Identity instead.
type Pose struct {
	// Pos is the translation component.
	Pos r3.Vec

	// Rot is the rotation component as a unit quaternion.
	Rot quat.Number
}

// Identity returns the identity transform.
func Identity() Pose {
	return Pose{Rot: quat.Number{Real: 1}}
}

// OrIdentity returns p with a zero rotation replaced by the identity
// rotation, so poses built without one compose as pure translations.
func OrIdentity(p Pose) Pose {
	if p.Rot == (quat.Number{}) {
		p.Rot = quat.Number{Real: 1}
	}
	return p
}

// New returns a pose from a translation and roll/pitch/yaw angles in radians.
func New(x, y, z, roll, pitch, yaw float64) Pose {
	return Pose{
		Pos: r3.Vec{X: x, Y: y, Z: z},
		Rot: FromEuler(roll, pitch, yaw),
	}
}

// FromEuler converts extrinsic x-y-z (roll, pitch, yaw) angles in radians to
// a unit quaternion. This is the rotation order used by pose text in model
// documents: R = Rz(yaw) * Ry(pitch) * Rx(roll).
func FromEuler(roll, pitch, yaw float64) quat.Number {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// Euler returns the rotation as roll, pitch, yaw angles in radians.
func (p Pose) Euler() (roll, pitch, yaw float64) {
	q := p.Rot
	roll = math.Atan2(2*(q.Real*q.Imag+q.Jmag*q.Kmag),
		1-2*(q.Imag*q.Imag+q.Jmag*q.Jmag))

	// Clamp to keep Asin in domain when the pitch is exactly ±π/2.
	s := 2 * (q.Real*q.Jmag - q.Kmag*q.Imag)
	switch {
	case s >= 1:
		pitch = math.Pi / 2
	case s <= -1:
		pitch = -math.Pi / 2
	default:
		pitch = math.Asin(s)
	}

	yaw = math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag),
		1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag))
	return roll, pitch, yaw
}

// Compose chains two transforms. Given b expressed in a's frame, the result
// expresses b in the frame that a itself is expressed in:
//
//	X_AC = Compose(X_AB, X_BC)
func Compose(a, b Pose) Pose {
	return Pose{
		Pos: r3.Add(a.Pos, a.Rotate(b.Pos)),
		Rot: quat.Mul(a.Rot, b.Rot),
	}
}

// Inverse returns the transform mapping in the opposite direction, so that
// Compose(p, Inverse(p)) is the identity. The rotation must be unit length.
func Inverse(p Pose) Pose {
	inv := Pose{Rot: quat.Conj(p.Rot)}
	inv.Pos = inv.Rotate(r3.Scale(-1, p.Pos))
	return inv
}

// Rotate applies the pose's rotation (only) to a vector.
func (p Pose) Rotate(v r3.Vec) r3.Vec {
	return r3.Rotation(p.Rot).Rotate(v)
}

// Parse reads a pose from the document text form "x y z roll pitch yaw",
// angles in radians, fields separated by whitespace.
func Parse(text string) (Pose, error) {
	fields := strings.Fields(text)
	if len(fields) != 6 {
		return Identity(), fmt.Errorf("pose requires 6 values, got %d", len(fields))
	}
	var v [6]float64
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Identity(), fmt.Errorf("pose value %q is not a number", field)
		}
		v[i] = value
	}
	return New(v[0], v[1], v[2], v[3], v[4], v[5]), nil
}

// String renders the pose in the same six-number form Parse reads.
func (p Pose) String() string {
	roll, pitch, yaw := p.Euler()
	values := []float64{p.Pos.X, p.Pos.Y, p.Pos.Z, roll, pitch, yaw}
	parts := make([]string, len(values))
	for i, v := range values {
		// Avoid "-0" in output for stable round trips.
		if v == 0 {
			v = 0
		}
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// ApproxEqual reports whether two poses coincide within tol: translations
// compare componentwise, rotations up to quaternion sign.
func ApproxEqual(a, b Pose, tol float64) bool {
	if math.Abs(a.Pos.X-b.Pos.X) > tol ||
		math.Abs(a.Pos.Y-b.Pos.Y) > tol ||
		math.Abs(a.Pos.Z-b.Pos.Z) > tol {
		return false
	}
	dot := a.Rot.Real*b.Rot.Real + a.Rot.Imag*b.Rot.Imag +
		a.Rot.Jmag*b.Rot.Jmag + a.Rot.Kmag*b.Rot.Kmag
	return math.Abs(math.Abs(dot)-1) <= tol
}
