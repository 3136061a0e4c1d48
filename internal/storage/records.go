package storage

import (
	"encoding/hex"
	"time"

	"lukechampine.com/blake3"

	"github.com/Benny93/chassis/internal/sdf"
)

// DocumentRecord is the stored summary of one indexed document.
type DocumentRecord struct {
	// Path is the workspace-relative path of the document.
	Path string `json:"path"`

	// Digest is the blake3 digest of the document content, hex encoded.
	Digest string `json:"digest"`

	// Version is the declared format version, empty when the document
	// does not carry one.
	Version string `json:"version"`

	// Models lists the scoped names of every model in the document,
	// nested models as "parent::child".
	Models []string `json:"models"`

	// LinkCount, JointCount and FrameCount total the entities across all
	// models in the document.
	LinkCount  int `json:"links"`
	JointCount int `json:"joints"`
	FrameCount int `json:"frames"`

	// Errors holds the diagnostics collected while loading and analyzing
	// the document.
	Errors sdf.Errors `json:"errors,omitempty"`

	// IndexedAt is when the document was last stored.
	IndexedAt time.Time `json:"indexed_at"`
}

// FrameRecord is the stored, denormalized view of a single frame: every
// explicit frame plus the implicit model frame of each model.
type FrameRecord struct {
	// ID identifies the frame across the store. See FrameID.
	ID string `json:"id"`

	// DocPath is the workspace-relative path of the owning document.
	DocPath string `json:"doc_path"`

	// Model is the scoped name of the owning model.
	Model string `json:"model"`

	// Name is the frame name within its model.
	Name string `json:"name"`

	// Kind is the vertex kind: model, link, joint or frame.
	Kind string `json:"kind"`

	// AttachedTo is the resolved physical body, empty when resolution
	// failed.
	AttachedTo string `json:"attached_to,omitempty"`

	// RelativeTo names the frame the raw pose is expressed in.
	RelativeTo string `json:"relative_to,omitempty"`

	// RawPose is the authored pose in "x y z roll pitch yaw" form.
	RawPose string `json:"raw_pose"`

	// PoseInModel is the pose resolved into the model frame, empty when
	// resolution failed.
	PoseInModel string `json:"pose_in_model,omitempty"`

	// Resolved reports whether PoseInModel is valid.
	Resolved bool `json:"resolved"`
}

// FrameID derives the stable store ID for a frame from its document path,
// scoped model name and frame name.
func FrameID(docPath, model, name string) string {
	sum := blake3.Sum256([]byte("frame:" + docPath + ":" + model + "/" + name))
	return hex.EncodeToString(sum[:8])
}

// DigestOf returns the hex blake3 digest of document content.
func DigestOf(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}
