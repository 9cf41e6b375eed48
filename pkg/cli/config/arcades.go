package config

import (
	"os"

	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// ArcadeCatalog is the TOML document format consumed by the seed command
type ArcadeCatalog struct {
	Arcades []ArcadeEntry `toml:"arcades"`
}

// ArcadeEntry is one arcade definition in the catalog file
type ArcadeEntry struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Tags        []string `toml:"tags"`
	MemberCount int      `toml:"member_count"`
	PostCount   int      `toml:"post_count"`
	IsOpen      bool     `toml:"is_open"`
}

// Model converts the entry to the domain model
func (e *ArcadeEntry) Model() *model.Arcade {
	return &model.Arcade{
		ID:          types.ArcadeID(e.ID),
		Name:        e.Name,
		Description: e.Description,
		Tags:        e.Tags,
		MemberCount: e.MemberCount,
		PostCount:   e.PostCount,
		IsOpen:      e.IsOpen,
	}
}

// Validate checks every entry before any write happens, so a bad catalog
// never results in a partial seed.
func (c *ArcadeCatalog) Validate() error {
	if len(c.Arcades) == 0 {
		return goerr.New("arcade catalog is empty")
	}

	seen := make(map[string]bool, len(c.Arcades))
	for i, entry := range c.Arcades {
		if err := entry.Model().Validate(); err != nil {
			return goerr.Wrap(err, "invalid arcade entry", goerr.V("index", i), goerr.V("name", entry.Name))
		}
		if entry.Name != "" && seen[entry.Name] {
			return goerr.New("duplicate arcade name in catalog", goerr.V("name", entry.Name))
		}
		seen[entry.Name] = true
	}
	return nil
}

// LoadArcadeCatalog reads and validates a TOML arcade catalog file
func LoadArcadeCatalog(path string) (*ArcadeCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read arcade catalog", goerr.V("path", path))
	}

	var catalog ArcadeCatalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse arcade catalog", goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}
