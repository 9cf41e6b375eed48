package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/central-square/centralsquare/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcades.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestLoadArcadeCatalog(t *testing.T) {
	t.Run("loads a valid catalog", func(t *testing.T) {
		path := writeCatalog(t, `
[[arcades]]
name = "AI Ethics Circle"
description = "Weekly discussions on responsible AI"
tags = ["ai", "ethics"]
member_count = 42
post_count = 120
is_open = true

[[arcades]]
name = "Green Thumbs"
tags = ["gardening"]
is_open = true
`)

		catalog, err := config.LoadArcadeCatalog(path)
		gt.NoError(t, err).Required()
		gt.Array(t, catalog.Arcades).Length(2).Required()
		gt.Value(t, catalog.Arcades[0].Name).Equal("AI Ethics Circle")
		gt.Array(t, catalog.Arcades[0].Tags).Equal([]string{"ai", "ethics"})
		gt.Bool(t, catalog.Arcades[1].IsOpen).True()
	})

	t.Run("rejects an empty catalog", func(t *testing.T) {
		path := writeCatalog(t, "")
		_, err := config.LoadArcadeCatalog(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects an entry without a name", func(t *testing.T) {
		path := writeCatalog(t, `
[[arcades]]
description = "no name"
is_open = true
`)
		_, err := config.LoadArcadeCatalog(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		path := writeCatalog(t, `
[[arcades]]
name = "Twice"
is_open = true

[[arcades]]
name = "Twice"
is_open = true
`)
		_, err := config.LoadArcadeCatalog(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		path := writeCatalog(t, "[[arcades")
		_, err := config.LoadArcadeCatalog(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := config.LoadArcadeCatalog(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Value(t, err).NotNil()
	})
}
