package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"scenelink/internal/application"
	"scenelink/internal/domain"
	"scenelink/internal/logger"
	"scenelink/internal/ports"
)

// Manifest describes a scene to write. The top level is the root node;
// its name is ignored.
type Manifest = ManifestNode

// ManifestNode is one node of a scene manifest
type ManifestNode struct {
	Name       string            `yaml:"name"`
	Tags       []string          `yaml:"tags,omitempty"`
	Transforms []TransformSample `yaml:"transforms,omitempty"`
	Bounds     []BoundSample     `yaml:"bounds,omitempty"`
	Objects    []ObjectSample    `yaml:"objects,omitempty"`
	Attributes []AttributeSample `yaml:"attributes,omitempty"`
	Link       *LinkSpec         `yaml:"link,omitempty"`
	Children   []ManifestNode    `yaml:"children,omitempty"`
}

type TransformSample struct {
	Time      float64     `yaml:"time"`
	Translate [3]float64  `yaml:"translate"`
	Scale     *[3]float64 `yaml:"scale,omitempty"`
}

type BoundSample struct {
	Time float64    `yaml:"time"`
	Min  [3]float64 `yaml:"min"`
	Max  [3]float64 `yaml:"max"`
}

type ObjectSample struct {
	Time float64    `yaml:"time"`
	Type string     `yaml:"type"`
	Min  [3]float64 `yaml:"min"`
	Max  [3]float64 `yaml:"max"`
	Data string     `yaml:"data,omitempty"`
}

// AttributeSample holds exactly one of the typed value fields
type AttributeSample struct {
	Name   string   `yaml:"name"`
	Time   float64  `yaml:"time"`
	String *string  `yaml:"string,omitempty"`
	Float  *float64 `yaml:"float,omitempty"`
	Int    *int64   `yaml:"int,omitempty"`
	Bool   *bool    `yaml:"bool,omitempty"`
}

// RemapPoint maps a time of the linking scene to a time of the target
type RemapPoint struct {
	Outer float64 `yaml:"outer"`
	Inner float64 `yaml:"inner"`
}

// LinkSpec links the node to a subtree of another file. Relative targets
// resolve against the directory of the written file.
type LinkSpec struct {
	Target string       `yaml:"target"`
	Root   string       `yaml:"root,omitempty"`
	Time   *float64     `yaml:"time,omitempty"`
	Remap  []RemapPoint `yaml:"remap,omitempty"`
}

func v3(a [3]float64) domain.V3 {
	return domain.V3{X: a[0], Y: a[1], Z: a[2]}
}

func (a AttributeSample) value() (domain.Value, error) {
	var vals []domain.Value
	if a.String != nil {
		vals = append(vals, domain.String(*a.String))
	}
	if a.Float != nil {
		vals = append(vals, domain.Float(*a.Float))
	}
	if a.Int != nil {
		vals = append(vals, domain.Int(*a.Int))
	}
	if a.Bool != nil {
		vals = append(vals, domain.Bool(*a.Bool))
	}
	if len(vals) != 1 {
		return nil, &application.ValidationError{
			Field:   "attribute",
			Message: fmt.Sprintf("%s at %g needs exactly one value, got %d", a.Name, a.Time, len(vals)),
		}
	}
	return vals[0], nil
}

// ParseManifest decodes a YAML scene manifest
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// BuildResult contains the result of writing a manifest
type BuildResult struct {
	OutputPath string
	Nodes      int
	Links      int
	Message    string
}

// BuildCommand writes a scene file from a manifest
type BuildCommand struct {
	opener       ports.Opener
	ManifestPath string
	OutputPath   string
	Force        bool
	// Manifest is used instead of reading ManifestPath when set
	Manifest *Manifest
}

// NewBuildCommand creates a new BuildCommand
func NewBuildCommand(opener ports.Opener, manifestPath, outputPath string) *BuildCommand {
	return &BuildCommand{
		opener:       opener,
		ManifestPath: manifestPath,
		OutputPath:   outputPath,
	}
}

// Validate checks if the build operation is valid
func (c *BuildCommand) Validate() error {
	if c.Manifest == nil {
		if err := application.ValidateRequired("manifestPath", c.ManifestPath); err != nil {
			return err
		}
	}
	if err := application.ValidateRequired("outputPath", c.OutputPath); err != nil {
		return err
	}
	if !c.Force {
		if _, err := os.Stat(c.OutputPath); err == nil {
			return &application.ValidationError{
				Field:   "outputPath",
				Message: fmt.Sprintf("output already exists: %s", c.OutputPath),
			}
		}
	}
	return nil
}

// Execute runs the build command
func (c *BuildCommand) Execute(ctx context.Context) (*BuildResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m := c.Manifest
	if m == nil {
		data, err := os.ReadFile(c.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		if m, err = ParseManifest(data); err != nil {
			return nil, err
		}
	}
	if err := checkManifest(m, true); err != nil {
		return nil, err
	}

	out, err := c.opener.Open(c.OutputPath, domain.ModeWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", c.OutputPath, err)
	}

	res := &BuildResult{OutputPath: c.OutputPath}
	werr := c.write(ctx, out, m, res)
	if err := errors.Join(werr, out.Close()); err != nil {
		os.Remove(c.OutputPath)
		return nil, err
	}

	res.Message = fmt.Sprintf("Wrote %s: %d nodes, %d links", c.OutputPath, res.Nodes, res.Links)
	logger.Info().Str("output", c.OutputPath).Int("nodes", res.Nodes).Int("links", res.Links).Msg("scene built")
	return res, nil
}

func checkManifest(n *ManifestNode, root bool) error {
	if !root {
		if err := application.ValidateChildName(n.Name); err != nil {
			return err
		}
	}
	if l := n.Link; l != nil {
		if err := application.ValidateRequired("linkTarget", l.Target); err != nil {
			return err
		}
		if l.Time != nil && len(l.Remap) > 0 {
			return &application.ValidationError{
				Field:   "link",
				Message: fmt.Sprintf("link at %s has both a time and a remap", n.Name),
			}
		}
	}
	seen := make(map[string]bool)
	for i := range n.Children {
		name := n.Children[i].Name
		if seen[name] {
			return &application.ValidationError{
				Field:   "childName",
				Message: fmt.Sprintf("duplicate child %q under %s", name, n.Name),
			}
		}
		seen[name] = true
		if err := checkManifest(&n.Children[i], false); err != nil {
			return err
		}
	}
	return nil
}

func (c *BuildCommand) write(ctx context.Context, s ports.Scene, n *ManifestNode, res *BuildResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res.Nodes++

	if len(n.Tags) > 0 {
		if err := s.WriteTags(n.Tags); err != nil {
			return err
		}
	}
	for _, t := range n.Transforms {
		m := domain.Translate(v3(t.Translate))
		if t.Scale != nil {
			m = m.Mul(domain.Scale(v3(*t.Scale)))
		}
		if err := s.WriteTransform(m, t.Time); err != nil {
			return err
		}
	}
	for _, a := range n.Attributes {
		v, err := a.value()
		if err != nil {
			return err
		}
		if err := s.WriteAttribute(a.Name, v, a.Time); err != nil {
			return err
		}
	}
	if n.Link != nil {
		if err := writeLink(s, n.Link); err != nil {
			return err
		}
		res.Links++
	}
	for _, b := range n.Bounds {
		if err := s.WriteBound(domain.NewBox3(v3(b.Min), v3(b.Max)), b.Time); err != nil {
			return err
		}
	}
	for _, o := range n.Objects {
		obj := domain.Object{Type: o.Type, Bound: domain.NewBox3(v3(o.Min), v3(o.Max)), Data: []byte(o.Data)}
		if err := s.WriteObject(obj, o.Time); err != nil {
			return err
		}
	}

	for i := range n.Children {
		child, err := s.CreateChild(n.Children[i].Name)
		if err != nil {
			return err
		}
		if err := c.write(ctx, child, &n.Children[i], res); err != nil {
			return err
		}
	}
	return nil
}

func writeLink(s ports.Scene, l *LinkSpec) error {
	root := domain.ParsePath(l.Root)
	if len(l.Remap) == 0 {
		d := domain.LinkDescriptor{Target: l.Target, Root: root}
		if l.Time != nil {
			d.Time = domain.TimePtr(*l.Time)
		}
		return s.WriteAttribute(domain.LinkAttribute, d, 0)
	}
	for _, p := range l.Remap {
		d := domain.LinkDescriptor{Target: l.Target, Root: root, Time: domain.TimePtr(p.Inner)}
		if err := s.WriteAttribute(domain.LinkAttribute, d, p.Outer); err != nil {
			return err
		}
	}
	return nil
}
