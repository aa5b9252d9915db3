package main

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/chazu/kerf/pkg/assemble"
	"github.com/chazu/kerf/pkg/binding"
	dxfexport "github.com/chazu/kerf/pkg/export/dxf"
	"github.com/chazu/kerf/pkg/expr"
	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/joinery"
	"github.com/chazu/kerf/pkg/kernel"
	"github.com/chazu/kerf/pkg/kernel/sdfx"
	"github.com/chazu/kerf/pkg/param"
	svgrender "github.com/chazu/kerf/pkg/render/svg"
	"github.com/chazu/kerf/pkg/script"
	"github.com/chazu/kerf/pkg/shape"
)

// App is the Wails backend. It owns the design state (parameters, shapes,
// joinery records) and exposes resolution, preview and export operations
// to the frontend via bindings.
type App struct {
	ctx      context.Context
	params   *param.Store
	registry *binding.Registry
	scripts  *script.Engine
	joints   *joinery.Store
	kernel   kernel.Kernel
	shapes   []shape.Shape
}

// NewApp creates an App with an empty design and the sdfx kernel.
func NewApp() *App {
	return &App{
		params:   param.NewStore(),
		registry: binding.NewRegistry(),
		scripts:  script.NewEngine(),
		joints:   joinery.NewStore(),
		kernel:   sdfx.New(),
	}
}

// startup is called by Wails on app startup.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// resolver builds a binding resolver over the current parameter store.
func (a *App) resolver() *binding.Resolver {
	return binding.NewResolver(a.params)
}

// ---------------------------------------------------------------------------
// Frontend DTOs
// ---------------------------------------------------------------------------

// ErrorData is a JSON-serializable error for the frontend.
type ErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// PathData is one polyline of a shape outline in mm.
type PathData struct {
	Points [][2]float64 `json:"points"`
	Closed bool         `json:"closed"`
}

// ShapeData is a resolved shape ready for canvas drawing. Paths already
// include joinery tooth profiles.
type ShapeData struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Properties map[string]float64 `json:"properties"`
	Paths      []PathData         `json:"paths"`
}

// EdgeData identifies one edge of a resolved shape for joinery assignment.
type EdgeData struct {
	Key string     `json:"key"`
	A   [2]float64 `json:"a"`
	B   [2]float64 `json:"b"`
}

// SceneResult is the full output of a scene resolution.
type SceneResult struct {
	Shapes   []ShapeData    `json:"shapes"`
	Warnings []expr.Warning `json:"warnings"`
	Errors   []ErrorData    `json:"errors"`
}

// ScriptResult reports a parameter script run.
type ScriptResult struct {
	Parameters []param.Parameter `json:"parameters"`
	Errors     []ErrorData       `json:"errors"`
}

// PreviewResult carries the 3D assembly meshes.
type PreviewResult struct {
	Meshes []*kernel.Mesh `json:"meshes"`
	Errors []ErrorData    `json:"errors"`
}

// ---------------------------------------------------------------------------
// Parameters and scripts
// ---------------------------------------------------------------------------

// Parameters returns all current parameters.
func (a *App) Parameters() []param.Parameter {
	return a.params.GetAll()
}

// DefineParameter creates or updates a named parameter and returns it.
func (a *App) DefineParameter(name string, value float64) param.Parameter {
	return *a.params.Define(name, value)
}

// SetParameter updates an existing parameter by id.
func (a *App) SetParameter(id string, value float64) error {
	return a.params.Set(id, value)
}

// RunScript evaluates a parameter script and merges its output into the
// parameter store: names the script redefines keep their ids, so existing
// parameter bindings stay attached. Script errors leave the current
// parameters untouched.
func (a *App) RunScript(source string) ScriptResult {
	result := ScriptResult{Errors: []ErrorData{}}

	store, evalErrs, err := a.scripts.Run(source)
	if err != nil {
		log.Printf("RunScript fatal error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		result.Parameters = a.params.GetAll()
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ErrorData{Line: e.Line, Message: e.Message})
		}
		result.Parameters = a.params.GetAll()
		return result
	}

	a.params.Merge(store.GetAll())
	result.Parameters = a.params.GetAll()
	return result
}

// ---------------------------------------------------------------------------
// Shapes and bindings
// ---------------------------------------------------------------------------

// AddShape creates a shape of the given type and returns its id.
func (a *App) AddShape(shapeType string, props map[string]float64) (string, error) {
	var s shape.Shape
	switch shapeType {
	case "rect":
		s = shape.NewRect(props["x"], props["y"], props["width"], props["height"])
	case "circle":
		s = shape.NewCircle(props["x"], props["y"], props["radius"])
	case "polygon":
		s = shape.NewPolygon(props["x"], props["y"], props["radius"], int(props["sides"]))
	case "star":
		s = shape.NewStar(props["x"], props["y"], props["outerRadius"], props["innerRadius"], int(props["points"]))
	default:
		return "", fmt.Errorf("unknown shape type %q", shapeType)
	}
	a.shapes = append(a.shapes, s)
	return s.ID(), nil
}

// RemoveShape deletes a shape and cascades its joinery records.
func (a *App) RemoveShape(id string) {
	for i, s := range a.shapes {
		if s.ID() == id {
			a.shapes = append(a.shapes[:i], a.shapes[i+1:]...)
			a.joints.DeleteShape(id)
			return
		}
	}
}

// BindProperty attaches a serialized binding to a shape property.
func (a *App) BindProperty(shapeID, property string, bindingJSON string) error {
	s := a.findShape(shapeID)
	if s == nil {
		return fmt.Errorf("no shape with id %q", shapeID)
	}
	b, err := a.registry.FromJSON([]byte(bindingJSON))
	if err != nil {
		return err
	}
	s.SetBinding(property, b)
	return nil
}

// UnbindProperty detaches the binding from a shape property.
func (a *App) UnbindProperty(shapeID, property string) error {
	s := a.findShape(shapeID)
	if s == nil {
		return fmt.Errorf("no shape with id %q", shapeID)
	}
	s.RemoveBinding(property)
	return nil
}

func (a *App) findShape(id string) shape.Shape {
	for _, s := range a.shapes {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Resolution and joinery
// ---------------------------------------------------------------------------

// resolveScene resolves every shape against the current parameters.
func (a *App) resolveScene() ([]shape.Shape, []expr.Warning, error) {
	return shape.ResolveAll(a.shapes, a.resolver())
}

// ResolveScene resolves all shapes and returns their jointed outlines for
// the 2D canvas. Warnings (missing parameters) are surfaced but do not
// abort; hard failures (bad expression syntax, division by zero) do.
func (a *App) ResolveScene() SceneResult {
	result := SceneResult{Shapes: []ShapeData{}, Warnings: []expr.Warning{}, Errors: []ErrorData{}}

	resolved, warnings, err := a.resolveScene()
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}

	for _, s := range resolved {
		sd := ShapeData{
			ID:         s.ID(),
			Type:       s.Type(),
			Properties: make(map[string]float64),
		}
		for _, name := range s.BindableProperties() {
			if v, ok := s.Property(name); ok {
				sd.Properties[name] = v
			}
		}
		for _, p := range joinery.JointedOutline(s, a.joints) {
			pd := PathData{Closed: p.Closed}
			for _, pt := range p.Points {
				pd.Points = append(pd.Points, [2]float64{pt.X, pt.Y})
			}
			sd.Paths = append(sd.Paths, pd)
		}
		result.Shapes = append(result.Shapes, sd)
	}
	return result
}

// Edges returns the identity-keyed edges of a resolved shape so the
// frontend can offer per-edge joinery assignment.
func (a *App) Edges(shapeID string) ([]EdgeData, error) {
	resolved, _, err := a.resolveScene()
	if err != nil {
		return nil, err
	}
	for _, s := range resolved {
		if s.ID() != shapeID {
			continue
		}
		var out []EdgeData
		for _, e := range shape.Edges(s) {
			out = append(out, EdgeData{
				Key: e.Key(),
				A:   [2]float64{e.A.X, e.A.Y},
				B:   [2]float64{e.B.X, e.B.Y},
			})
		}
		return out, nil
	}
	return nil, fmt.Errorf("no shape with id %q", shapeID)
}

// PickShape returns the ids of resolved shapes whose bounds contain the
// given canvas point, for click selection.
func (a *App) PickShape(x, y float64) ([]string, error) {
	resolved, _, err := a.resolveScene()
	if err != nil {
		return nil, err
	}
	ix := shape.NewIndex()
	for _, s := range resolved {
		if err := ix.Insert(s); err != nil {
			return nil, err
		}
	}
	var ids []string
	for _, s := range ix.At(geom.Vec2{X: x, Y: y}) {
		ids = append(ids, s.ID())
	}
	return ids, nil
}

// SetJoinery attaches a joinery record to an edge by identity key.
func (a *App) SetJoinery(edgeKey string, rec joinery.Record) {
	a.joints.SetKey(edgeKey, rec)
}

// JoineryEntries returns all joinery records in their persistent form.
func (a *App) JoineryEntries() []joinery.Entry {
	return a.joints.Entries()
}

// LoadJoinery replaces the joinery store from its persistent form.
func (a *App) LoadJoinery(entries []joinery.Entry) {
	a.joints = joinery.FromEntries(entries)
}

// ---------------------------------------------------------------------------
// Preview and export
// ---------------------------------------------------------------------------

// Preview assembles the resolved scene into 3D meshes.
func (a *App) Preview() PreviewResult {
	result := PreviewResult{Meshes: []*kernel.Mesh{}, Errors: []ErrorData{}}

	resolved, _, err := a.resolveScene()
	if err != nil {
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}

	meshes, err := assemble.Assemble(resolved, a.joints, a.kernel, assemble.Options{})
	if err != nil {
		log.Printf("Preview error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}
	result.Meshes = meshes
	return result
}

// ExportSVG renders the resolved scene as an SVG document string.
func (a *App) ExportSVG() (string, error) {
	resolved, _, err := a.resolveScene()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	svgrender.Render(&buf, resolved, a.joints, svgrender.Options{})
	return buf.String(), nil
}

// ExportDXF writes the resolved scene to a DXF file for fabrication.
func (a *App) ExportDXF(path string) error {
	resolved, _, err := a.resolveScene()
	if err != nil {
		return err
	}
	return dxfexport.Export(path, resolved, a.joints)
}
