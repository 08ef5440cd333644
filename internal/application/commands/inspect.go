package commands

import (
	"context"
	"fmt"

	"scenelink/internal/domain"
	"scenelink/internal/linked"
	"scenelink/internal/ports"
)

// AttributeInfo summarizes one attribute channel
type AttributeInfo struct {
	Name  string
	Kind  string
	Times []float64
	// First is the value at the first sample, formatted for display
	First string
}

// InspectResult describes one virtual node
type InspectResult struct {
	Path       domain.Path
	Kind       domain.NodeKind
	Children   []string
	HasBound   bool
	Bound      *domain.Box3 // at the first bound sample, nil when the node has none
	Transform  *domain.M44  // at the first transform sample
	HasObject  bool
	ObjectType string
	Attributes []AttributeInfo
	Tags       []string // direct tags
	AllTags    []string // including descendants
	LinkHash   string
	// TargetFile and TargetPath locate the stored node backing a virtual one
	TargetFile string
	TargetPath domain.Path
	LinkDepth  int
}

// InspectCommand reports everything readable at one node
type InspectCommand struct {
	opener    ports.Opener
	ScenePath string
	NodePath  string
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand(opener ports.Opener, scenePath, nodePath string) *InspectCommand {
	return &InspectCommand{
		opener:    opener,
		ScenePath: scenePath,
		NodePath:  nodePath,
	}
}

// Validate checks if the inspect operation is valid
func (c *InspectCommand) Validate() error {
	return validateScene(c.ScenePath)
}

// Execute runs the inspect command
func (c *InspectCommand) Execute(ctx context.Context) (*InspectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, s, err := openNode(c.opener, c.ScenePath, c.NodePath)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	hash, err := linkHash(s)
	if err != nil {
		return nil, err
	}
	res := &InspectResult{
		Path:       s.Path(),
		HasBound:   s.HasBound(),
		HasObject:  s.HasObject(),
		LinkHash:   hash,
		TargetFile: s.FileName(),
		TargetPath: s.Path(),
	}
	res.Kind = classify(s, hash, false)
	if v, ok := s.(*linked.Scene); ok {
		res.TargetFile, res.TargetPath = v.Target()
		res.LinkDepth = v.Depth()
		if hash == "" && v.Depth() > 0 {
			res.Kind = domain.NodeKindLinkedIn
		}
	}

	if res.Children, err = s.ChildNames(); err != nil {
		return nil, err
	}
	if err := c.readChannels(s, res); err != nil {
		return nil, err
	}
	if err := c.readAttributes(s, res); err != nil {
		return nil, err
	}

	if res.Tags, err = s.ReadTags(false); err != nil {
		return nil, err
	}
	if res.AllTags, err = s.ReadTags(true); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *InspectCommand) readChannels(s ports.Scene, res *InspectResult) error {
	times, err := s.BoundSampleTimes()
	if err != nil {
		return err
	}
	if len(times) > 0 {
		b, err := s.ReadBound(times[0])
		if err != nil {
			return fmt.Errorf("failed to read bound at %s: %w", s.Path(), err)
		}
		res.Bound = &b
	}

	if times, err = s.TransformSampleTimes(); err != nil {
		return err
	}
	if len(times) > 0 {
		m, err := s.ReadTransform(times[0])
		if err != nil {
			return fmt.Errorf("failed to read transform at %s: %w", s.Path(), err)
		}
		res.Transform = &m
	}

	if !res.HasObject {
		return nil
	}
	if times, err = s.ObjectSampleTimes(); err != nil {
		return err
	}
	if len(times) > 0 {
		o, err := s.ReadObject(times[0])
		if err != nil {
			return fmt.Errorf("failed to read object at %s: %w", s.Path(), err)
		}
		res.ObjectType = o.Type
	}
	return nil
}

func (c *InspectCommand) readAttributes(s ports.Scene, res *InspectResult) error {
	names, err := s.AttributeNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		times, err := s.AttributeSampleTimes(name)
		if err != nil {
			return err
		}
		info := AttributeInfo{Name: name, Times: times}
		if len(times) > 0 {
			v, err := s.ReadAttribute(name, times[0])
			if err != nil {
				return fmt.Errorf("failed to read %s at %s: %w", name, s.Path(), err)
			}
			info.Kind = v.Kind().String()
			info.First = domain.FormatValue(v)
		}
		res.Attributes = append(res.Attributes, info)
	}
	return nil
}
