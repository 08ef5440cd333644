package linked

import (
	"fmt"
	"slices"

	"scenelink/internal/application"
	"scenelink/internal/domain"
	"scenelink/internal/logger"
	"scenelink/internal/ports"
)

// hop is one store on the path from the outermost scene to a virtual
// node. Every hop but the last sits on a link location.
type hop struct {
	node     ports.Scene // current node in this store
	identity string      // absolute file name of the store
	content  string      // content digest of the store, if known
	entry    domain.Path // location the previous hop linked to
	local    domain.Path // path of node inside the store
	links    bool        // links stored in this file are followed
	curve    Curve       // maps the previous hop's time into this store
}

func (h hop) key() string {
	return descriptorKey(h.identity, h.entry)
}

// descended reports whether the chain moved below the hop's entry
func (h hop) descended() bool {
	return len(h.local) != len(h.entry)
}

// resolver follows links for every handle derived from one opened scene
type resolver struct {
	stores      *StoreCache
	ownsStores  bool
	descriptors *descriptorCache
}

// descend moves the last hop to its child and follows any link found there
func (r *resolver) descend(chain []hop, name string) ([]hop, error) {
	last := chain[len(chain)-1]
	child, err := last.node.Child(name)
	if err != nil {
		return nil, err
	}

	next := slices.Clone(chain)
	next[len(next)-1].node = child
	next[len(next)-1].local = last.local.Child(name)
	return r.resolve(next)
}

// resolve appends a hop for every link location the chain ends on.
// Re-entering a location already on the chain is a cycle.
func (r *resolver) resolve(chain []hop) ([]hop, error) {
	for {
		last := chain[len(chain)-1]
		if !last.links || !last.node.HasAttribute(domain.LinkAttribute) {
			return chain, nil
		}

		info, err := r.descriptors.get(last.identity, last.node)
		if err != nil {
			return nil, err
		}

		key := descriptorKey(info.Target, info.Root)
		for _, h := range chain {
			if h.key() == key {
				logger.Warn().Str("link", last.local.String()).Str("target", key).Msg("cyclic link rejected")
				return nil, &application.LinkError{
					Path:   last.local,
					Target: key,
					Reason: "cyclic link",
					Err:    application.ErrInvalidData,
				}
			}
		}

		store, err := r.stores.Get(info.Target)
		if err != nil {
			return nil, &application.LinkError{
				Path:   last.local,
				Target: info.Target,
				Reason: "cannot open target",
				Err:    err,
			}
		}

		next := hop{
			node:     store,
			identity: info.Target,
			content:  contentOf(store),
			entry:    info.Root,
			local:    domain.Path{},
			links:    interpretsLinks(info.Target),
			curve:    info.Curve,
		}
		chain = append(slices.Clone(chain), next)
		logger.Debug().Str("link", last.local.String()).Str("target", key).Int("depth", len(chain)-1).Msg("link followed")

		for _, name := range info.Root {
			chain, err = r.descend(chain, name)
			if err != nil {
				return nil, &application.LinkError{
					Path:   last.local,
					Target: key,
					Reason: fmt.Sprintf("root %s not found in target", info.Root),
					Err:    err,
				}
			}
		}
	}
}

func contentOf(s ports.Scene) string {
	if h, ok := s.(ports.ContentHasher); ok {
		return h.ContentHash()
	}
	return ""
}

func (r *resolver) close() error {
	if r.ownsStores {
		return r.stores.Close()
	}
	return nil
}
