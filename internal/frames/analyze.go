package frames

import (
	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/spatial"
)

// FrameInfo describes one frame of an analyzed model.
type FrameInfo struct {
	// Name is the frame's name; the implicit model frame appears under
	// its reserved name.
	Name string

	// Kind is the frame graph vertex kind.
	Kind Kind

	// AttachedTo is the link the frame ultimately sits on. Empty when
	// attachment resolution was not possible.
	AttachedTo string

	// RelativeTo is the frame the raw pose is expressed in, after
	// defaults are applied. Empty for the model frame.
	RelativeTo string

	// RawPose is the pose as authored.
	RawPose spatial.Pose

	// PoseInModel is the pose resolved into the model frame. Identity
	// when Resolved is false.
	PoseInModel spatial.Pose

	// Resolved reports whether PoseInModel was computed.
	Resolved bool
}

// ModelReport summarizes the frame analysis of one model.
type ModelReport struct {
	// Model is the model name; nested models are scoped as parent::child.
	Model string

	// LinkCount and JointCount are taken from the document.
	LinkCount  int
	JointCount int

	// Frames holds one entry per frame graph vertex, in graph order.
	Frames []FrameInfo

	// Errors accumulates build, validation, and resolution diagnostics.
	Errors sdf.Errors
}

// AnalyzeModel builds and validates all three graphs of a model and, where
// the graphs hold up, resolves every frame's attachment body and pose in the
// model frame. Diagnostics from every stage are accumulated, never dropped.
func AnalyzeModel(model *sdf.Model) ModelReport {
	report := ModelReport{
		Model:      model.Name,
		LinkCount:  len(model.Links),
		JointCount: len(model.Joints),
	}

	kinematic, errs := BuildKinematicGraph(model)
	report.Errors = append(report.Errors, errs...)
	report.Errors = append(report.Errors, ValidateKinematicGraph(kinematic)...)

	attachments, errs := BuildFrameAttachedToGraph(model)
	report.Errors = append(report.Errors, errs...)
	attachmentErrs := ValidateFrameAttachedToGraph(attachments)
	report.Errors = append(report.Errors, attachmentErrs...)

	poses, errs := BuildPoseRelativeToGraph(model)
	report.Errors = append(report.Errors, errs...)
	poseErrs := ValidatePoseRelativeToGraph(poses)
	report.Errors = append(report.Errors, poseErrs...)

	for _, v := range poses.Vertices() {
		info := FrameInfo{
			Name:        v.Name,
			Kind:        v.Data,
			RawPose:     spatial.Identity(),
			PoseInModel: spatial.Identity(),
		}

		if out := poses.OutgoingEdges(v.ID); len(out) == 1 {
			head, _ := poses.VertexByID(out[0].Head)
			info.RelativeTo = head.Name
			info.RawPose = out[0].Data
		}

		if len(attachmentErrs) == 0 {
			body, rerrs := ResolveFrameAttachedToBody(attachments, v.Name)
			if len(rerrs) > 0 {
				report.Errors = append(report.Errors, rerrs...)
			} else {
				info.AttachedTo = body
			}
		}

		if len(poseErrs) == 0 {
			pose, rerrs := ResolvePoseRelativeToRoot(poses, v.Name)
			if len(rerrs) > 0 {
				report.Errors = append(report.Errors, rerrs...)
			} else {
				info.PoseInModel = pose
				info.Resolved = true
			}
		}

		report.Frames = append(report.Frames, info)
	}

	return report
}

// Analyze runs frame analysis over every model of a document, including
// models inside worlds and nested models. Each model is analyzed
// independently; nested model reports carry scoped names.
func Analyze(root *sdf.Root) []ModelReport {
	var reports []ModelReport

	var walk func(prefix string, model *sdf.Model)
	walk = func(prefix string, model *sdf.Model) {
		scoped := model.Name
		if prefix != "" {
			scoped = prefix + "::" + model.Name
		}

		report := AnalyzeModel(model)
		report.Model = scoped
		reports = append(reports, report)

		for i := range model.Models {
			walk(scoped, &model.Models[i])
		}
	}

	for _, model := range root.AllModels() {
		walk("", model)
	}
	return reports
}
