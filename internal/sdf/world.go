package sdf

import "github.com/Benny93/chassis/internal/spatial"

// Root is the top level of a parsed document.
type Root struct {
	// Version is the sdf version attribute.
	Version string

	Worlds []World
	Models []Model
	Lights []Light
}

// World groups models and lights under a simulation environment.
type World struct {
	// Name is the world's name attribute.
	Name string

	Models []Model
	Lights []Light
}

// Light is a light source belonging to a world or the document root.
type Light struct {
	// Name is the light's name attribute.
	Name string

	// Type is the light type: point, directional, or spot.
	Type string

	// Pose is the light pose as authored.
	Pose spatial.Pose

	// PoseRelativeTo is the frame the pose is expressed in.
	PoseRelativeTo string

	// CastShadows controls shadow rendering.
	CastShadows bool

	// Diffuse and Specular are the light's color components.
	Diffuse  Color
	Specular Color
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// WorldByName returns the world with the given name, or nil.
func (r *Root) WorldByName(name string) *World {
	for i := range r.Worlds {
		if r.Worlds[i].Name == name {
			return &r.Worlds[i]
		}
	}
	return nil
}

// ModelByName returns the top level model with the given name, or nil.
func (r *Root) ModelByName(name string) *Model {
	for i := range r.Models {
		if r.Models[i].Name == name {
			return &r.Models[i]
		}
	}
	return nil
}

// AllModels returns every model in the document, including models nested
// inside worlds, in document order. Nested child models are not flattened.
func (r *Root) AllModels() []*Model {
	var out []*Model
	for i := range r.Models {
		out = append(out, &r.Models[i])
	}
	for i := range r.Worlds {
		w := &r.Worlds[i]
		for j := range w.Models {
			out = append(out, &w.Models[j])
		}
	}
	return out
}

// ModelByName returns the model with the given name, or nil.
func (w *World) ModelByName(name string) *Model {
	for i := range w.Models {
		if w.Models[i].Name == name {
			return &w.Models[i]
		}
	}
	return nil
}
