package commands

import (
	"context"
	"slices"

	"scenelink/internal/domain"
	"scenelink/internal/logger"
	"scenelink/internal/ports"
	"scenelink/internal/sceneutil"
)

// HashGroup is a set of link locations presenting identical content
type HashGroup struct {
	Hash  string
	Paths []domain.Path
}

// HashReport lists every link location of a scene grouped by link hash
type HashReport struct {
	Links  int
	Groups []HashGroup
}

// Shared returns the groups with more than one link location
func (r *HashReport) Shared() []HashGroup {
	var out []HashGroup
	for _, g := range r.Groups {
		if len(g.Paths) > 1 {
			out = append(out, g)
		}
	}
	return out
}

// HashesCommand walks the virtual graph collecting link hashes
type HashesCommand struct {
	opener    ports.Opener
	ScenePath string
}

// NewHashesCommand creates a new HashesCommand
func NewHashesCommand(opener ports.Opener, scenePath string) *HashesCommand {
	return &HashesCommand{opener: opener, ScenePath: scenePath}
}

// Validate checks if the hashes operation is valid
func (c *HashesCommand) Validate() error {
	return validateScene(c.ScenePath)
}

// Execute runs the hashes command. Groups are ordered by first
// appearance in a depth first walk.
func (c *HashesCommand) Execute(ctx context.Context) (*HashReport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, _, err := openNode(c.opener, c.ScenePath, "/")
	if err != nil {
		return nil, err
	}
	defer root.Close()

	report := &HashReport{}
	index := make(map[string]int)
	err = sceneutil.Walk(root, func(s ports.Scene) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		hash, err := linkHash(s)
		if err != nil || hash == "" {
			return err
		}
		report.Links++
		i, ok := index[hash]
		if !ok {
			i = len(report.Groups)
			index[hash] = i
			report.Groups = append(report.Groups, HashGroup{Hash: hash})
		}
		report.Groups[i].Paths = append(report.Groups[i].Paths, s.Path())
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, g := range report.Groups {
		slices.SortFunc(g.Paths, func(a, b domain.Path) int {
			return slices.Compare(a, b)
		})
	}
	logger.Info().Str("scene", c.ScenePath).Int("links", report.Links).Int("unique", len(report.Groups)).Msg("link hashes collected")
	return report, nil
}
