package sqlite

import (
	"fmt"

	"scenelink/internal/application"
	"scenelink/internal/codec"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

func (s *Scene) CreateChild(name string) (ports.Scene, error) {
	if err := s.f.check("create child", domain.ModeWrite); err != nil {
		return nil, err
	}
	if err := application.ValidateChildName(name); err != nil {
		return nil, err
	}
	if _, exists := s.n.children[name]; exists {
		return nil, &application.StructuralError{Path: s.n.path.Child(name), Reason: "child already exists"}
	}

	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	id := s.f.nextID
	if _, err := s.f.tx.Exec(`INSERT INTO nodes (id, parent, name) VALUES (?, ?, ?)`, id, s.n.id, name); err != nil {
		return nil, application.IOError("create child", err)
	}
	s.f.nextID++
	return &Scene{f: s.f, n: newNode(id, name, s.n)}, nil
}

func (s *Scene) WriteBound(b domain.Box3, t float64) error {
	if err := s.f.check("write bound", domain.ModeWrite); err != nil {
		return err
	}
	data, err := codec.EncodeBound(b)
	if err != nil {
		return err
	}
	return s.writeSample(domain.ChannelBound, t, data)
}

func (s *Scene) WriteTransform(m domain.M44, t float64) error {
	if err := s.f.check("write transform", domain.ModeWrite); err != nil {
		return err
	}
	data, err := codec.EncodeTransform(m)
	if err != nil {
		return err
	}
	return s.writeSample(domain.ChannelTransform, t, data)
}

func (s *Scene) WriteAttribute(name string, v domain.Value, t float64) error {
	if err := s.f.check("write attribute", domain.ModeWrite); err != nil {
		return err
	}
	if err := application.ValidateRequired("attribute", name); err != nil {
		return err
	}
	data, err := codec.EncodeValue(v)
	if err != nil {
		return &application.ValidationError{Field: "attribute", Message: err.Error()}
	}
	return s.writeSample(domain.AttributeChannel(name), t, data)
}

func (s *Scene) WriteObject(o domain.Object, t float64) error {
	if err := s.f.check("write object", domain.ModeWrite); err != nil {
		return err
	}
	data, err := codec.EncodeObject(o)
	if err != nil {
		return err
	}
	return s.writeSample(domain.ChannelObject, t, data)
}

func (s *Scene) WriteTags(tags []string) error {
	if err := s.f.check("write tags", domain.ModeWrite); err != nil {
		return err
	}

	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	for _, tag := range tags {
		if err := application.ValidateRequired("tag", tag); err != nil {
			return err
		}
		if !s.n.addTag(tag) {
			continue
		}
		if _, err := s.f.tx.Exec(`INSERT INTO tags (node, tag) VALUES (?, ?)`, s.n.id, tag); err != nil {
			return application.IOError("write tag", err)
		}
	}
	return nil
}

// writeSample appends one sample. Times must strictly increase per channel.
func (s *Scene) writeSample(ch domain.Channel, t float64, data []byte) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	times := s.n.channels[ch]
	if n := len(times); n > 0 && t <= times[n-1]+domain.TimeEpsilon {
		return fmt.Errorf("%s %s: sample time %g does not follow %g: %w",
			s.n.path, ch, t, times[n-1], application.ErrInvalidData)
	}

	payload, tag, err := codec.Compress(data, s.f.compression)
	if err != nil {
		return fmt.Errorf("failed to compress sample: %w", err)
	}
	_, err = s.f.tx.Exec(
		`INSERT INTO samples (node, channel, idx, time, compression, size, payload) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.n.id, string(ch), len(times), t, uint8(tag), len(data), payload,
	)
	if err != nil {
		return application.IOError("write sample", err)
	}

	s.n.channels[ch] = append(times, t)
	s.f.digests = append(s.f.digests, sampleDigest(s.n.path, ch, t, data))
	return nil
}

func sampleDigest(p domain.Path, ch domain.Channel, t float64, data []byte) codec.Hash {
	h := codec.NewHasher(codec.ContentDomain)
	fmt.Fprintf(h, "%s\x00%s\x00%v\x00", p, ch, t)
	h.Write(data)
	return h.Sum()
}
