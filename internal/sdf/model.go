// Package sdf provides the document model for SDFormat robot descriptions.
//
// It defines the element types parsed out of .sdf and .world files (models,
// links, joints, frames, lights) and the error vocabulary shared by the
// parsers and the frame analysis packages. Element order is preserved as
// authored: the first link of a model is its default canonical link.
package sdf

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Benny93/chassis/internal/spatial"
)

// ModelFrameName is the reserved name that refers to the implicit frame of
// the enclosing model.
const ModelFrameName = "__model__"

// JointType identifies the kind of motion a joint permits.
type JointType string

const (
	JointInvalid    JointType = "invalid"
	JointBall       JointType = "ball"
	JointContinuous JointType = "continuous"
	JointFixed      JointType = "fixed"
	JointGearbox    JointType = "gearbox"
	JointPrismatic  JointType = "prismatic"
	JointRevolute   JointType = "revolute"
	JointRevolute2  JointType = "revolute2"
	JointScrew      JointType = "screw"
	JointUniversal  JointType = "universal"
)

// ParseJointType maps a type attribute value to a JointType. Matching is
// case insensitive; it reports false for values outside the SDFormat
// vocabulary.
func ParseJointType(s string) (JointType, bool) {
	switch t := JointType(strings.ToLower(s)); t {
	case JointBall, JointContinuous, JointFixed, JointGearbox,
		JointPrismatic, JointRevolute, JointRevolute2,
		JointScrew, JointUniversal:
		return t, true
	default:
		return JointInvalid, false
	}
}

// Model is a named assembly of links, joints, frames, and nested models.
type Model struct {
	// Name is the model's name attribute.
	Name string

	// Pose is the model pose as authored.
	Pose spatial.Pose

	// PoseRelativeTo is the frame the pose is expressed in. Empty means
	// the default for the enclosing scope.
	PoseRelativeTo string

	// CanonicalLink is the canonical_link attribute. Empty selects the
	// first link.
	CanonicalLink string

	// Static marks the model as immovable.
	Static bool

	// SelfCollide enables collision checks between the model's own links.
	SelfCollide bool

	// AutoDisable is the allow_auto_disable flag.
	AutoDisable bool

	// EnableWind exposes the model to the world's wind.
	EnableWind bool

	Links  []Link
	Joints []Joint
	Frames []Frame
	Models []Model
}

// Link is a rigid body belonging to a model.
type Link struct {
	// Name is the link's name attribute.
	Name string

	// Pose is the link pose as authored.
	Pose spatial.Pose

	// PoseRelativeTo is the frame the pose is expressed in. Empty means
	// the model frame.
	PoseRelativeTo string

	Visuals    []Visual
	Collisions []Collision
}

// Joint connects a parent link to a child link.
type Joint struct {
	// Name is the joint's name attribute.
	Name string

	// Type is the joint's motion type.
	Type JointType

	// Parent is the name of the parent link.
	Parent string

	// Child is the name of the child link.
	Child string

	// Pose is the joint pose as authored.
	Pose spatial.Pose

	// PoseRelativeTo is the frame the pose is expressed in. Empty means
	// the child link frame.
	PoseRelativeTo string

	// Axis is the primary axis of motion, if the joint type has one.
	Axis *JointAxis

	// Axis2 is the secondary axis for revolute2 and universal joints.
	Axis2 *JointAxis
}

// JointAxis describes a joint's axis of rotation or translation.
type JointAxis struct {
	// Xyz is the axis direction as a unit vector.
	Xyz r3.Vec

	// XyzExpressedIn is the frame the axis direction is expressed in.
	// Empty means the joint frame.
	XyzExpressedIn string

	// Lower and Upper bound the joint position in radians or meters.
	Lower float64
	Upper float64

	// Effort caps the force or torque the joint may apply. Negative
	// means unlimited.
	Effort float64

	// MaxVelocity caps the joint speed. Negative means unlimited.
	MaxVelocity float64
}

// Frame is a named pose attached to another frame of the same model.
type Frame struct {
	// Name is the frame's name attribute.
	Name string

	// AttachedTo names the frame this frame is attached to. Empty means
	// the model frame.
	AttachedTo string

	// Pose is the frame pose as authored.
	Pose spatial.Pose

	// PoseRelativeTo is the frame the pose is expressed in. Empty means
	// the attached-to frame.
	PoseRelativeTo string
}

// LinkByName returns the link with the given name, or nil.
func (m *Model) LinkByName(name string) *Link {
	for i := range m.Links {
		if m.Links[i].Name == name {
			return &m.Links[i]
		}
	}
	return nil
}

// JointByName returns the joint with the given name, or nil.
func (m *Model) JointByName(name string) *Joint {
	for i := range m.Joints {
		if m.Joints[i].Name == name {
			return &m.Joints[i]
		}
	}
	return nil
}

// FrameByName returns the explicit frame with the given name, or nil.
func (m *Model) FrameByName(name string) *Frame {
	for i := range m.Frames {
		if m.Frames[i].Name == name {
			return &m.Frames[i]
		}
	}
	return nil
}

// ModelByName returns the nested model with the given name, or nil.
func (m *Model) ModelByName(name string) *Model {
	for i := range m.Models {
		if m.Models[i].Name == name {
			return &m.Models[i]
		}
	}
	return nil
}

// CanonicalLinkName returns the name of the model's canonical link: the
// canonical_link attribute when set, otherwise the first link. Empty when
// the model has no links.
func (m *Model) CanonicalLinkName() string {
	if m.CanonicalLink != "" {
		return m.CanonicalLink
	}
	if len(m.Links) > 0 {
		return m.Links[0].Name
	}
	return ""
}
