package linked

import (
	"errors"
	"fmt"
	"path/filepath"

	"scenelink/internal/adapters/filesystem"
	"scenelink/internal/application"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// linkSample is one descriptor sample keyed by the linking scene's time
type linkSample struct {
	Outer float64
	Desc  domain.LinkDescriptor
}

// linkInfo is a decoded link location
type linkInfo struct {
	Target string // absolute
	Root   domain.Path
	Curve  Curve
}

// LinkValue builds the link attribute value pointing at target's file
// and location. A nil t links the whole animation; otherwise target is
// sampled at t.
func LinkValue(target ports.Scene, t *float64) (domain.LinkDescriptor, error) {
	abs, err := filepath.Abs(target.FileName())
	if err != nil {
		return domain.LinkDescriptor{}, fmt.Errorf("failed to resolve %s: %w", target.FileName(), err)
	}
	d := domain.LinkDescriptor{Target: abs, Root: target.Path()}
	if t != nil {
		d.Time = domain.TimePtr(*t)
	}
	return d, nil
}

// readLink decodes every link sample stored on node. Relative targets
// resolve against the directory of the file holding the link.
func readLink(node ports.Scene, identity string) (*linkInfo, error) {
	fail := func(reason string, cause error) error {
		return &application.LinkError{Path: node.Path(), Reason: reason, Err: cause}
	}

	times, err := node.AttributeSampleTimes(domain.LinkAttribute)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, fail("no link samples", application.ErrInvalidData)
	}

	samples := make([]linkSample, 0, len(times))
	for _, t := range times {
		v, err := node.ReadAttribute(domain.LinkAttribute, t)
		if err != nil {
			if errors.Is(err, application.ErrInvalidData) {
				return nil, fail("malformed link descriptor", err)
			}
			return nil, err
		}
		d, ok := v.(domain.LinkDescriptor)
		if !ok {
			return nil, fail(fmt.Sprintf("link attribute holds a %s value", v.Kind()), application.ErrInvalidData)
		}
		if err := d.Validate(); err != nil {
			return nil, fail(err.Error(), application.ErrInvalidData)
		}
		if len(samples) > 0 && !samples[0].Desc.SameTarget(d) {
			return nil, fail(fmt.Sprintf("samples disagree on target: %s vs %s", samples[0].Desc, d), application.ErrInvalidData)
		}
		samples = append(samples, linkSample{Outer: t, Desc: d})
	}

	return &linkInfo{
		Target: filesystem.ResolveTarget(identity, samples[0].Desc.Target),
		Root:   samples[0].Desc.Root.Clone(),
		Curve:  newCurve(samples),
	}, nil
}
