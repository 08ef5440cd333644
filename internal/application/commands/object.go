package commands

import (
	"context"
	"fmt"

	"scenelink/internal/application"
	"scenelink/internal/cache"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// ReadObjectResult contains an object read through the result cache
type ReadObjectResult struct {
	Object domain.Object
	Hash   string
	// Key names the stored content the object was read from; empty when
	// the store has no content digest and the read bypassed the cache
	Key    string
	Cached bool
}

// ReadObjectCommand reads a node's object, reusing results already
// loaded through any path that reaches the same stored content
type ReadObjectCommand struct {
	opener    ports.Opener
	results   *cache.CachedResult
	ScenePath string
	NodePath  string
	Time      float64
}

// NewReadObjectCommand creates a new ReadObjectCommand
func NewReadObjectCommand(opener ports.Opener, results *cache.CachedResult, scenePath, nodePath string, t float64) *ReadObjectCommand {
	return &ReadObjectCommand{
		opener:    opener,
		results:   results,
		ScenePath: scenePath,
		NodePath:  nodePath,
		Time:      t,
	}
}

// Validate checks if the read operation is valid
func (c *ReadObjectCommand) Validate() error {
	if err := validateScene(c.ScenePath); err != nil {
		return err
	}
	return application.ValidateRequired("nodePath", c.NodePath)
}

// Execute runs the read object command
func (c *ReadObjectCommand) Execute(ctx context.Context) (*ReadObjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, s, err := openNode(c.opener, c.ScenePath, c.NodePath)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	if !s.HasObject() {
		return nil, &application.NotFoundError{What: "object", Name: s.Path().String()}
	}
	read := func() (domain.Object, error) {
		return s.ReadObject(c.Time)
	}

	key, ok := objectKey(s, c.Time)
	computed := !ok
	var o domain.Object
	if ok {
		o, err = c.results.Get(key, func() (domain.Object, error) {
			computed = true
			return read()
		})
	} else {
		o, err = read()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read object at %s: %w", s.Path(), err)
	}
	h, err := cache.ObjectHash(o)
	if err != nil {
		return nil, err
	}
	return &ReadObjectResult{Object: o, Hash: h.Short(), Key: key, Cached: !computed}, nil
}

// objectKey names the stored sample a read of s at t resolves to. Keys
// come from content digests, never file names, so a rewritten file gets
// new keys and equal content reached through any link shares one.
func objectKey(s ports.Scene, t float64) (string, bool) {
	if l, ok := s.(ports.ContentLocator); ok {
		k, ok := l.ContentKey(t)
		if !ok {
			return "", false
		}
		return "content:" + k, true
	}
	if h, ok := s.(ports.ContentHasher); ok && h.ContentHash() != "" {
		return fmt.Sprintf("content:%s%s@%g", h.ContentHash(), s.Path(), t), true
	}
	return "", false
}
