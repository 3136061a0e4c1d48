package parsers

import (
	"encoding/xml"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/spatial"
)

// Raw XML element structs. Scalar values stay strings so that a malformed
// value degrades into a diagnostic instead of aborting the whole decode;
// pointers distinguish a missing element from an empty one.
type xmlRoot struct {
	XMLName xml.Name
	Version string     `xml:"version,attr"`
	Worlds  []xmlWorld `xml:"world"`
	Models  []xmlModel `xml:"model"`
	Lights  []xmlLight `xml:"light"`
}

type xmlWorld struct {
	Name   string     `xml:"name,attr"`
	Models []xmlModel `xml:"model"`
	Lights []xmlLight `xml:"light"`
}

type xmlModel struct {
	Name          string     `xml:"name,attr"`
	CanonicalLink string     `xml:"canonical_link,attr"`
	Static        *string    `xml:"static"`
	SelfCollide   *string    `xml:"self_collide"`
	AutoDisable   *string    `xml:"allow_auto_disable"`
	EnableWind    *string    `xml:"enable_wind"`
	Pose          *xmlPose   `xml:"pose"`
	Links         []xmlLink  `xml:"link"`
	Joints        []xmlJoint `xml:"joint"`
	Frames        []xmlFrame `xml:"frame"`
	Models        []xmlModel `xml:"model"`
}

type xmlPose struct {
	RelativeTo string `xml:"relative_to,attr"`
	Frame      string `xml:"frame,attr"`
	Text       string `xml:",chardata"`
}

type xmlLink struct {
	Name       string         `xml:"name,attr"`
	Pose       *xmlPose       `xml:"pose"`
	Visuals    []xmlVisual    `xml:"visual"`
	Collisions []xmlCollision `xml:"collision"`
}

type xmlJoint struct {
	Name   string   `xml:"name,attr"`
	Type   string   `xml:"type,attr"`
	Parent *string  `xml:"parent"`
	Child  *string  `xml:"child"`
	Pose   *xmlPose `xml:"pose"`
	Axis   *xmlAxis `xml:"axis"`
	Axis2  *xmlAxis `xml:"axis2"`
}

type xmlAxis struct {
	Xyz   *xmlXyz   `xml:"xyz"`
	Limit *xmlLimit `xml:"limit"`
}

type xmlXyz struct {
	ExpressedIn string `xml:"expressed_in,attr"`
	Text        string `xml:",chardata"`
}

type xmlLimit struct {
	Lower    *string `xml:"lower"`
	Upper    *string `xml:"upper"`
	Effort   *string `xml:"effort"`
	Velocity *string `xml:"velocity"`
}

type xmlFrame struct {
	Name       string   `xml:"name,attr"`
	AttachedTo string   `xml:"attached_to,attr"`
	Pose       *xmlPose `xml:"pose"`
}

type xmlLight struct {
	Name        string   `xml:"name,attr"`
	Type        string   `xml:"type,attr"`
	CastShadows *string  `xml:"cast_shadows"`
	Diffuse     *string  `xml:"diffuse"`
	Specular    *string  `xml:"specular"`
	Pose        *xmlPose `xml:"pose"`
}

type xmlVisual struct {
	Name     string       `xml:"name,attr"`
	Pose     *xmlPose     `xml:"pose"`
	Geometry *xmlGeometry `xml:"geometry"`
}

type xmlCollision struct {
	Name     string       `xml:"name,attr"`
	Pose     *xmlPose     `xml:"pose"`
	Geometry *xmlGeometry `xml:"geometry"`
}

type xmlGeometry struct {
	Box *xmlBox `xml:"box"`
}

type xmlBox struct {
	Size *string `xml:"size"`
}

// SDFParser parses SDFormat XML documents.
type SDFParser struct{}

// NewSDFParser creates a new SDFormat parser.
func NewSDFParser() *SDFParser {
	return &SDFParser{}
}

// Format returns the document format this parser handles.
func (p *SDFParser) Format() string {
	return "sdf"
}

// Parse decodes an SDFormat document into the typed model, accumulating one
// diagnostic per problem. Recoverable input never aborts the load: bad
// values fall back to defaults, duplicate siblings are kept and reported,
// and unknown reference names are left for the frame graphs to flag.
func (p *SDFParser) Parse(path string, content []byte) (*sdf.Root, sdf.Errors) {
	var raw xmlRoot
	if err := xml.Unmarshal(content, &raw); err != nil {
		return nil, sdf.Errors{sdf.Errorf(sdf.CodeFileRead,
			"Unable to parse XML in file[%s]: %v.", path, err)}
	}
	if raw.XMLName.Local != "sdf" {
		return nil, sdf.Errors{sdf.Errorf(sdf.CodeElementIncorrectType,
			"Attempting to load a document, but the root element is <%s>, expected <sdf>.",
			raw.XMLName.Local)}
	}

	var errs sdf.Errors
	root := &sdf.Root{Version: raw.Version}
	if raw.Version == "" {
		errs = append(errs, sdf.NewError(sdf.CodeAttributeMissing,
			"SDF does not have a version."))
	}

	worldNames := make(map[string]bool)
	for _, xw := range raw.Worlds {
		world := p.loadWorld(xw, &errs)
		if world.Name != "" && worldNames[world.Name] {
			errs = append(errs, sdf.Errorf(sdf.CodeDuplicateName,
				"World with name[%s] already exists. Each world must have a unique name. Skipping this world.",
				world.Name))
			continue
		}
		worldNames[world.Name] = true
		root.Worlds = append(root.Worlds, world)
	}

	root.Models = p.loadModels(raw.Models, &errs)
	root.Lights = p.loadLights(raw.Lights, &errs)

	return root, errs
}

func (p *SDFParser) loadWorld(x xmlWorld, errs *sdf.Errors) sdf.World {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A world name is required, but is not set."))
	}
	return sdf.World{
		Name:   x.Name,
		Models: p.loadModels(x.Models, errs),
		Lights: p.loadLights(x.Lights, errs),
	}
}

// loadModels loads one sibling group of models. Duplicates are reported but
// kept, so the frame graph validators can see them too.
func (p *SDFParser) loadModels(raws []xmlModel, errs *sdf.Errors) []sdf.Model {
	var models []sdf.Model
	seen := make(map[string]bool)
	for _, xm := range raws {
		model := p.loadModel(xm, errs)
		if model.Name != "" && seen[model.Name] {
			*errs = append(*errs, sdf.Errorf(sdf.CodeDuplicateName,
				"Model with name[%s] already exists. Each model must have a unique name.",
				model.Name))
		}
		seen[model.Name] = true
		models = append(models, model)
	}
	return models
}

func (p *SDFParser) loadModel(x xmlModel, errs *sdf.Errors) sdf.Model {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A model name is required, but is not set."))
	}
	p.checkReserved("model", x.Name, errs)

	model := sdf.Model{
		Name:          x.Name,
		CanonicalLink: x.CanonicalLink,
	}
	model.Pose, model.PoseRelativeTo = p.loadPose(x.Pose, "model", x.Name, errs)
	model.Static = p.loadBool(x.Static, false, "static", "model", x.Name, errs)
	model.SelfCollide = p.loadBool(x.SelfCollide, false, "self_collide", "model", x.Name, errs)
	model.AutoDisable = p.loadBool(x.AutoDisable, true, "allow_auto_disable", "model", x.Name, errs)
	model.EnableWind = p.loadBool(x.EnableWind, false, "enable_wind", "model", x.Name, errs)

	linkNames := make(map[string]bool)
	for _, xl := range x.Links {
		link := p.loadLink(xl, errs)
		if link.Name != "" && linkNames[link.Name] {
			*errs = append(*errs, sdf.Errorf(sdf.CodeDuplicateName,
				"Link with name[%s] already exists. Each link must have a unique name.",
				link.Name))
		}
		linkNames[link.Name] = true
		model.Links = append(model.Links, link)
	}

	jointNames := make(map[string]bool)
	for _, xj := range x.Joints {
		joint := p.loadJoint(xj, errs)
		if joint.Name != "" && jointNames[joint.Name] {
			*errs = append(*errs, sdf.Errorf(sdf.CodeDuplicateName,
				"Joint with name[%s] already exists. Each joint must have a unique name.",
				joint.Name))
		}
		jointNames[joint.Name] = true
		model.Joints = append(model.Joints, joint)
	}

	frameNames := make(map[string]bool)
	for _, xf := range x.Frames {
		frame := p.loadFrame(xf, errs)
		if frame.Name != "" && frameNames[frame.Name] {
			*errs = append(*errs, sdf.Errorf(sdf.CodeDuplicateName,
				"Frame with name[%s] already exists. Each frame must have a unique name.",
				frame.Name))
		}
		frameNames[frame.Name] = true
		model.Frames = append(model.Frames, frame)
	}

	model.Models = p.loadModels(x.Models, errs)
	return model
}

func (p *SDFParser) loadLink(x xmlLink, errs *sdf.Errors) sdf.Link {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A link name is required, but is not set."))
	}
	p.checkReserved("link", x.Name, errs)

	link := sdf.Link{Name: x.Name}
	link.Pose, link.PoseRelativeTo = p.loadPose(x.Pose, "link", x.Name, errs)

	for _, xv := range x.Visuals {
		link.Visuals = append(link.Visuals, p.loadVisual(xv, errs))
	}
	for _, xc := range x.Collisions {
		link.Collisions = append(link.Collisions, p.loadCollision(xc, errs))
	}
	return link
}

func (p *SDFParser) loadJoint(x xmlJoint, errs *sdf.Errors) sdf.Joint {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A joint name is required, but the name is not set."))
	}
	p.checkReserved("joint", x.Name, errs)

	joint := sdf.Joint{Name: x.Name, Type: sdf.JointInvalid}

	if x.Type == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A joint type is required, but is not set."))
	} else if t, ok := sdf.ParseJointType(x.Type); ok {
		joint.Type = t
	} else {
		*errs = append(*errs, sdf.Errorf(sdf.CodeAttributeInvalid,
			"Joint type of %s is invalid. Refer to the SDF documentation for a list of valid joint types",
			x.Type))
	}

	if x.Parent == nil {
		*errs = append(*errs, sdf.NewError(sdf.CodeElementMissing,
			"The parent element is missing."))
	} else {
		joint.Parent = strings.TrimSpace(*x.Parent)
	}

	if x.Child == nil {
		*errs = append(*errs, sdf.NewError(sdf.CodeElementMissing,
			"The child element is missing."))
	} else {
		joint.Child = strings.TrimSpace(*x.Child)
	}

	joint.Pose, joint.PoseRelativeTo = p.loadPose(x.Pose, "joint", x.Name, errs)
	joint.Axis = p.loadAxis(x.Axis, x.Name, errs)
	joint.Axis2 = p.loadAxis(x.Axis2, x.Name, errs)
	return joint
}

func (p *SDFParser) loadAxis(x *xmlAxis, jointName string, errs *sdf.Errors) *sdf.JointAxis {
	if x == nil {
		return nil
	}

	axis := &sdf.JointAxis{
		Xyz:         r3.Vec{Z: 1},
		Lower:       -1e16,
		Upper:       1e16,
		Effort:      -1,
		MaxVelocity: -1,
	}

	if x.Xyz != nil {
		axis.XyzExpressedIn = x.Xyz.ExpressedIn
		if text := strings.TrimSpace(x.Xyz.Text); text != "" {
			v, err := parseVec3(text)
			if err != nil {
				*errs = append(*errs, sdf.Errorf(sdf.CodeElementInvalid,
					"Invalid <xyz> data in axis of joint with name[%s].", jointName))
			} else {
				axis.Xyz = v
			}
		}
	}

	if x.Limit != nil {
		axis.Lower = p.loadFloat(x.Limit.Lower, axis.Lower, "lower", jointName, errs)
		axis.Upper = p.loadFloat(x.Limit.Upper, axis.Upper, "upper", jointName, errs)
		axis.Effort = p.loadFloat(x.Limit.Effort, axis.Effort, "effort", jointName, errs)
		axis.MaxVelocity = p.loadFloat(x.Limit.Velocity, axis.MaxVelocity, "velocity", jointName, errs)
	}
	return axis
}

func (p *SDFParser) loadFrame(x xmlFrame, errs *sdf.Errors) sdf.Frame {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A frame name is required, but is not set."))
	}
	p.checkReserved("frame", x.Name, errs)

	frame := sdf.Frame{Name: x.Name, AttachedTo: x.AttachedTo}
	frame.Pose, frame.PoseRelativeTo = p.loadPose(x.Pose, "frame", x.Name, errs)
	return frame
}

func (p *SDFParser) loadLights(raws []xmlLight, errs *sdf.Errors) []sdf.Light {
	var lights []sdf.Light
	seen := make(map[string]bool)
	for _, xl := range raws {
		light := p.loadLight(xl, errs)
		if light.Name != "" && seen[light.Name] {
			*errs = append(*errs, sdf.Errorf(sdf.CodeDuplicateName,
				"Light with name[%s] already exists. Each light must have a unique name.",
				light.Name))
		}
		seen[light.Name] = true
		lights = append(lights, light)
	}
	return lights
}

func (p *SDFParser) loadLight(x xmlLight, errs *sdf.Errors) sdf.Light {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A light name is required, but is not set."))
	}

	light := sdf.Light{
		Name:     x.Name,
		Type:     x.Type,
		Diffuse:  sdf.Color{R: 1, G: 1, B: 1, A: 1},
		Specular: sdf.Color{R: 1, G: 1, B: 1, A: 1},
	}
	if x.Type == "" {
		*errs = append(*errs, sdf.Errorf(sdf.CodeAttributeMissing,
			"Light[%s] has no type", x.Name))
	}

	light.Pose, light.PoseRelativeTo = p.loadPose(x.Pose, "light", x.Name, errs)
	light.CastShadows = p.loadBool(x.CastShadows, false, "cast_shadows", "light", x.Name, errs)
	light.Diffuse = p.loadColor(x.Diffuse, light.Diffuse, "diffuse", x.Name, errs)
	light.Specular = p.loadColor(x.Specular, light.Specular, "specular", x.Name, errs)
	return light
}

func (p *SDFParser) loadVisual(x xmlVisual, errs *sdf.Errors) sdf.Visual {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A visual name is required, but is not set."))
	}

	visual := sdf.Visual{Name: x.Name}
	visual.Pose, visual.PoseRelativeTo = p.loadPose(x.Pose, "visual", x.Name, errs)
	visual.Geometry = p.loadGeometry(x.Geometry, errs)
	return visual
}

func (p *SDFParser) loadCollision(x xmlCollision, errs *sdf.Errors) sdf.Collision {
	if x.Name == "" {
		*errs = append(*errs, sdf.NewError(sdf.CodeAttributeMissing,
			"A collision name is required, but is not set."))
	}

	collision := sdf.Collision{Name: x.Name}
	collision.Pose, collision.PoseRelativeTo = p.loadPose(x.Pose, "collision", x.Name, errs)
	collision.Geometry = p.loadGeometry(x.Geometry, errs)
	return collision
}

func (p *SDFParser) loadGeometry(x *xmlGeometry, errs *sdf.Errors) sdf.Geometry {
	if x == nil || x.Box == nil {
		return sdf.Geometry{Type: sdf.GeometryEmpty}
	}

	box := &sdf.Box{Size: sdf.DefaultBoxSize}
	if x.Box.Size == nil {
		*errs = append(*errs, sdf.NewError(sdf.CodeElementMissing,
			"Box geometry is missing a <size> child element. Using a size of 1, 1, 1."))
	} else if v, err := parseVec3(strings.TrimSpace(*x.Box.Size)); err != nil {
		*errs = append(*errs, sdf.NewError(sdf.CodeElementInvalid,
			"Invalid <size> data for a <box> geometry. Using a size of 1, 1, 1 "))
	} else {
		box.Size = v
	}
	return sdf.Geometry{Type: sdf.GeometryBox, Box: box}
}

// loadPose parses a pose element into a transform and its reference frame
// name. The legacy frame attribute is accepted as an alias for relative_to;
// a missing or empty pose means identity.
func (p *SDFParser) loadPose(x *xmlPose, owner, name string, errs *sdf.Errors) (spatial.Pose, string) {
	if x == nil {
		return spatial.Identity(), ""
	}

	relativeTo := x.RelativeTo
	if relativeTo == "" {
		relativeTo = x.Frame
	}

	text := strings.TrimSpace(x.Text)
	if text == "" {
		return spatial.Identity(), relativeTo
	}

	pose, err := spatial.Parse(text)
	if err != nil {
		*errs = append(*errs, sdf.Errorf(sdf.CodeElementInvalid,
			"Invalid <pose> data in %s with name[%s]: %v.", owner, name, err))
		return spatial.Identity(), relativeTo
	}
	return pose, relativeTo
}

func (p *SDFParser) loadBool(raw *string, def bool, elem, owner, name string, errs *sdf.Errors) bool {
	if raw == nil {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(*raw))
	if err != nil {
		*errs = append(*errs, sdf.Errorf(sdf.CodeElementInvalid,
			"Invalid <%s> data in %s with name[%s].", elem, owner, name))
		return def
	}
	return v
}

func (p *SDFParser) loadFloat(raw *string, def float64, elem, jointName string, errs *sdf.Errors) float64 {
	if raw == nil {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		*errs = append(*errs, sdf.Errorf(sdf.CodeElementInvalid,
			"Invalid <%s> data in limit of joint with name[%s].", elem, jointName))
		return def
	}
	return v
}

func (p *SDFParser) loadColor(raw *string, def sdf.Color, elem, lightName string, errs *sdf.Errors) sdf.Color {
	if raw == nil {
		return def
	}
	fields := strings.Fields(*raw)
	if len(fields) != 4 {
		*errs = append(*errs, sdf.Errorf(sdf.CodeElementInvalid,
			"Invalid <%s> data in light with name[%s].", elem, lightName))
		return def
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			*errs = append(*errs, sdf.Errorf(sdf.CodeElementInvalid,
				"Invalid <%s> data in light with name[%s].", elem, lightName))
			return def
		}
		vals[i] = v
	}
	return sdf.Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}
}

// checkReserved flags user entities named with the double-underscore
// convention reserved for implicit frames.
func (p *SDFParser) checkReserved(kind, name string, errs *sdf.Errors) {
	if len(name) >= 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		*errs = append(*errs, sdf.Errorf(sdf.CodeReservedName,
			"The supplied %s name [%s] is reserved.", kind, name))
	}
}

func parseVec3(text string) (r3.Vec, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return r3.Vec{}, strconv.ErrSyntax
	}
	var vals [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return r3.Vec{}, err
		}
		vals[i] = v
	}
	return r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
