package commands

import (
	"context"

	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// SamplesResult lists the sample times of every channel of a node, in
// the caller's time frame
type SamplesResult struct {
	Path       domain.Path
	Bound      []float64
	Transform  []float64
	Object     []float64
	Attributes map[string][]float64
}

// SamplesCommand reads the sample times of a node
type SamplesCommand struct {
	opener    ports.Opener
	ScenePath string
	NodePath  string
}

// NewSamplesCommand creates a new SamplesCommand
func NewSamplesCommand(opener ports.Opener, scenePath, nodePath string) *SamplesCommand {
	return &SamplesCommand{
		opener:    opener,
		ScenePath: scenePath,
		NodePath:  nodePath,
	}
}

// Validate checks if the samples operation is valid
func (c *SamplesCommand) Validate() error {
	return validateScene(c.ScenePath)
}

// Execute runs the samples command
func (c *SamplesCommand) Execute(ctx context.Context) (*SamplesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, s, err := openNode(c.opener, c.ScenePath, c.NodePath)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	res := &SamplesResult{Path: s.Path(), Attributes: make(map[string][]float64)}
	if res.Bound, err = s.BoundSampleTimes(); err != nil {
		return nil, err
	}
	if res.Transform, err = s.TransformSampleTimes(); err != nil {
		return nil, err
	}
	if res.Object, err = s.ObjectSampleTimes(); err != nil {
		return nil, err
	}

	names, err := s.AttributeNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		times, err := s.AttributeSampleTimes(name)
		if err != nil {
			return nil, err
		}
		res.Attributes[name] = times
	}
	return res, nil
}
