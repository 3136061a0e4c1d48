package sdf

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Benny93/chassis/internal/spatial"
)

// GeometryType identifies the shape held by a Geometry.
type GeometryType string

const (
	GeometryEmpty GeometryType = "empty"
	GeometryBox   GeometryType = "box"
)

// Geometry is the shape of a visual or collision element.
type Geometry struct {
	// Type identifies which shape field is set.
	Type GeometryType

	// Box is set when Type is GeometryBox.
	Box *Box
}

// Box is an axis aligned box shape.
type Box struct {
	// Size holds the box extents along x, y, and z in meters.
	Size r3.Vec
}

// DefaultBoxSize is used when a box omits or misstates its size element.
var DefaultBoxSize = r3.Vec{X: 1, Y: 1, Z: 1}

// Visual is the rendered representation of a link.
type Visual struct {
	// Name is the visual's name attribute.
	Name string

	// Pose is the visual pose as authored.
	Pose spatial.Pose

	// PoseRelativeTo is the frame the pose is expressed in. Empty means
	// the parent link frame.
	PoseRelativeTo string

	// Geometry is the visual's shape.
	Geometry Geometry
}

// Collision is the collision representation of a link.
type Collision struct {
	// Name is the collision's name attribute.
	Name string

	// Pose is the collision pose as authored.
	Pose spatial.Pose

	// PoseRelativeTo is the frame the pose is expressed in. Empty means
	// the parent link frame.
	PoseRelativeTo string

	// Geometry is the collision's shape.
	Geometry Geometry
}
