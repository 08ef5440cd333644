package linked

import (
	"slices"
	"sync"

	"scenelink/internal/domain"
)

// TagSession memoizes recursive tag sets by virtual path while a caller
// reads the tags of many nodes of one scene. It never outlives the
// contents it was filled from.
type TagSession struct {
	mu        sync.Mutex
	recursive map[string][]string
}

// NewTagSession returns an empty session
func NewTagSession() *TagSession {
	return &TagSession{recursive: make(map[string][]string)}
}

func (t *TagSession) get(p domain.Path) ([]string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tags, ok := t.recursive[p.String()]
	return tags, ok
}

func (t *TagSession) put(p domain.Path, tags []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recursive[p.String()] = tags
}

// ReadTags returns the node's tags. Tags written on a link location are
// its own plus the target root's; with includeChildren they also reach
// every node below the link, and tags of linked content reach every
// ancestor of the link.
func (s *Scene) ReadTags(includeChildren bool) ([]string, error) {
	return s.ReadTagsIn(NewTagSession(), includeChildren)
}

// ReadTagsIn is ReadTags sharing recursive results through session
func (s *Scene) ReadTagsIn(session *TagSession, includeChildren bool) ([]string, error) {
	if err := s.checkRead("read tags"); err != nil {
		return nil, err
	}
	tags, err := s.tags(session, includeChildren)
	if err != nil {
		return nil, err
	}
	return slices.Clone(tags), nil
}

func (s *Scene) tags(session *TagSession, includeChildren bool) ([]string, error) {
	if includeChildren {
		if tags, ok := session.get(s.path); ok {
			return tags, nil
		}
	}

	in := s.inner()
	var all []string
	switch {
	case includeChildren && !in.links:
		// no links below, the store's own recursion is exact
		tags, err := in.node.ReadTags(true)
		if err != nil {
			return nil, err
		}
		all = append(all, tags...)
	case includeChildren:
		direct, err := in.node.ReadTags(false)
		if err != nil {
			return nil, err
		}
		all = append(all, direct...)

		names, err := in.node.ChildNames()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			child, err := s.child(name)
			if err != nil {
				return nil, err
			}
			tags, err := child.tags(session, true)
			if err != nil {
				return nil, err
			}
			all = append(all, tags...)
		}
	default:
		direct, err := in.node.ReadTags(false)
		if err != nil {
			return nil, err
		}
		all = append(all, direct...)
	}

	for i := 0; i < len(s.chain)-1; i++ {
		if !includeChildren && !s.atLink(i) {
			continue
		}
		direct, err := s.chain[i].node.ReadTags(false)
		if err != nil {
			return nil, err
		}
		all = append(all, direct...)
	}

	slices.Sort(all)
	all = slices.Compact(all)
	if includeChildren {
		session.put(s.path, all)
	}
	return all, nil
}

// HasTag reports whether the node or anything linked or nested below it
// carries the tag
func (s *Scene) HasTag(name string) (bool, error) {
	tags, err := s.ReadTags(true)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(tags, name)
	return found, nil
}
