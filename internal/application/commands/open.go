package commands

import (
	"fmt"

	"scenelink/internal/application"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// openNode opens scenePath for reading and resolves nodePath in it.
// The caller closes the returned root.
func openNode(opener ports.Opener, scenePath, nodePath string) (root, node ports.Scene, err error) {
	root, err = opener.Open(scenePath, domain.ModeRead)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", scenePath, err)
	}
	node, err = root.Scene(domain.ParsePath(nodePath))
	if err != nil {
		root.Close()
		return nil, nil, err
	}
	return root, node, nil
}

func validateScene(scenePath string) error {
	return application.ValidateRequired("scenePath", scenePath)
}

// linkHash returns the node's link hash, or "" when it is not a link location
func linkHash(s ports.Scene) (string, error) {
	if !s.HasAttribute(domain.LinkHashAttribute) {
		return "", nil
	}
	v, err := s.ReadAttribute(domain.LinkHashAttribute, 0)
	if err != nil {
		return "", err
	}
	h, ok := v.(domain.String)
	if !ok {
		return "", fmt.Errorf("%s at %s holds a %s value", domain.LinkHashAttribute, s.Path(), v.Kind())
	}
	return string(h), nil
}

// classify returns the kind of s given whether an ancestor is a link location
func classify(s ports.Scene, hash string, belowLink bool) domain.NodeKind {
	switch {
	case hash != "":
		return domain.NodeKindLink
	case belowLink:
		return domain.NodeKindLinkedIn
	case s.Path().IsRoot():
		return domain.NodeKindRoot
	default:
		return domain.NodeKindPlain
	}
}
