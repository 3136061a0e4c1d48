package sdf

import (
	"errors"
	"fmt"
)

// Code classifies a problem found while loading or analyzing a document.
type Code string

const (
	// CodeDuplicateName indicates two sibling elements share a name.
	CodeDuplicateName Code = "DUPLICATE_NAME"
	// CodeReservedName indicates a user element uses a reserved name.
	CodeReservedName Code = "RESERVED_NAME"
	// CodeAttributeMissing indicates a required attribute is not set.
	CodeAttributeMissing Code = "ATTRIBUTE_MISSING"
	// CodeAttributeInvalid indicates an attribute holds an invalid value.
	CodeAttributeInvalid Code = "ATTRIBUTE_INVALID"
	// CodeElementMissing indicates a required child element is absent.
	CodeElementMissing Code = "ELEMENT_MISSING"
	// CodeElementInvalid indicates a child element holds invalid data.
	CodeElementInvalid Code = "ELEMENT_INVALID"
	// CodeElementIncorrectType indicates an element of the wrong kind was supplied.
	CodeElementIncorrectType Code = "ELEMENT_INCORRECT_TYPE"
	// CodeFileRead indicates a document could not be read or parsed as XML.
	CodeFileRead Code = "FILE_READ"

	// CodeModelWithoutLink indicates a model declares no links.
	CodeModelWithoutLink Code = "MODEL_WITHOUT_LINK"
	// CodeModelCanonicalLinkInvalid indicates canonical_link names no link in the model.
	CodeModelCanonicalLinkInvalid Code = "MODEL_CANONICAL_LINK_INVALID"
	// CodeJointParentLinkInvalid indicates a joint parent names no sibling link.
	CodeJointParentLinkInvalid Code = "JOINT_PARENT_LINK_INVALID"
	// CodeJointChildLinkInvalid indicates a joint child names no sibling link.
	CodeJointChildLinkInvalid Code = "JOINT_CHILD_LINK_INVALID"

	// CodeFrameAttachedToInvalid indicates attached_to names no sibling frame.
	CodeFrameAttachedToInvalid Code = "FRAME_ATTACHED_TO_INVALID"
	// CodeFrameAttachedToCycle indicates the attachment graph contains a cycle.
	CodeFrameAttachedToCycle Code = "FRAME_ATTACHED_TO_CYCLE"
	// CodeFrameAttachedToGraphError indicates a structural defect in the attachment graph.
	CodeFrameAttachedToGraphError Code = "FRAME_ATTACHED_TO_GRAPH_ERROR"
	// CodePoseRelativeToInvalid indicates relative_to names no sibling frame.
	CodePoseRelativeToInvalid Code = "POSE_RELATIVE_TO_INVALID"
	// CodePoseRelativeToCycle indicates the pose graph contains a cycle.
	CodePoseRelativeToCycle Code = "POSE_RELATIVE_TO_CYCLE"
	// CodePoseRelativeToGraphError indicates a structural defect in the pose graph.
	CodePoseRelativeToGraphError Code = "POSE_RELATIVE_TO_GRAPH_ERROR"
	// CodeKinematicGraphCycle indicates the link/joint graph contains a cycle.
	CodeKinematicGraphCycle Code = "KINEMATIC_GRAPH_CYCLE"
	// CodeKinematicGraphError indicates a structural defect in the link/joint graph.
	CodeKinematicGraphError Code = "KINEMATIC_GRAPH_ERROR"
)

// Error describes a single loading or analysis problem.
type Error struct {
	// Code classifies the problem.
	Code Code `json:"code"`

	// Message is a human readable description.
	Message string `json:"message"`
}

// Error formats the error as "CODE: message".
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errors is an error that wraps zero or more loading errors.
type Errors []Error

// Error returns a compact summary of the collected errors.
func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return "no errors"
	case 1:
		return e[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
	}
}

// HasCode reports whether any collected error carries the given code.
func (e Errors) HasCode(code Code) bool {
	for _, err := range e {
		if err.Code == code {
			return true
		}
	}
	return false
}

// NewError builds an Error from a code and message.
func NewError(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// Errorf formats a message and builds an Error.
func Errorf(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsErrors extracts the collected loading errors from an error value.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var list Errors
	if errors.As(err, &list) {
		return list, true
	}
	return nil, false
}
