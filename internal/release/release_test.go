package release

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	bberrors "git.home.luguber.info/inful/bookbinder/internal/errors"
)

const manifestStringDep = `
[package]
name = "leptos-use"
version = "0.10.3"

[dependencies]
leptos = "0.6"
`

const manifestTableDep = `
[package]
version = "0.10.3"

[dependencies]
leptos = { version = "0.6", features = ["csr"] }
`

func TestParseManifest_StringDependency(t *testing.T) {
	v, err := ParseManifest([]byte(manifestStringDep), "leptos")
	require.NoError(t, err)
	assert.Equal(t, "0.10", v.CrateShort)
	assert.Equal(t, "0.10.3", v.CrateLong)
	assert.Equal(t, "0.6", v.Framework)
}

func TestParseManifest_TableDependency(t *testing.T) {
	v, err := ParseManifest([]byte(manifestTableDep), "leptos")
	require.NoError(t, err)
	assert.Equal(t, "0.6", v.Framework)
}

func TestParseManifest_MissingDependency(t *testing.T) {
	_, err := ParseManifest([]byte(manifestStringDep), "yew")
	require.Error(t, err)
}

func TestParseManifest_BadVersion(t *testing.T) {
	_, err := ParseManifest([]byte("[package]\nversion = \"next\"\n[dependencies]\nleptos = \"0.6\"\n"), "leptos")
	require.Error(t, err)
}

func releaseFixture(t *testing.T, readme, changelog string) *Updater {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.Library.Root = root

	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(manifestStringDep), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte(readme), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "CHANGELOG.md"), []byte(changelog), 0o644))

	return &Updater{Config: cfg}
}

func TestApply_StampsBothFiles(t *testing.T) {
	u := releaseFixture(t,
		"| Crate | Leptos |\n|---|---|\n| 0.9 | 0.6 |\n",
		"# Changelog\n\n## [Unreleased] - \n\n- added use_mouse\n")

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	require.NoError(t, u.Apply(now))

	readme, err := os.ReadFile(u.Config.ReadmePath())
	require.NoError(t, err)
	assert.Contains(t, string(readme), "| 0.9, 0.10 | 0.6 |")

	changelog, err := os.ReadFile(u.Config.ChangelogPath())
	require.NoError(t, err)
	assert.Contains(t, string(changelog), "## [0.10.3] - 2026-08-29")
	assert.NotContains(t, string(changelog), "Unreleased")

	// Re-running changes nothing further.
	require.NoError(t, u.Apply(now))
	readmeAgain, err := os.ReadFile(u.Config.ReadmePath())
	require.NoError(t, err)
	assert.Equal(t, string(readme), string(readmeAgain))
}

func TestCheck_DriftFailsWithoutWriting(t *testing.T) {
	readme := "| 0.9 | 0.6 |\n"
	changelog := "# Changelog\n\n## [Unreleased] - \n"
	u := releaseFixture(t, readme, changelog)

	err := u.Check(time.Now())
	require.Error(t, err)

	be, ok := err.(*bberrors.BookbinderError)
	require.True(t, ok)
	assert.Equal(t, 1, be.ExitCode)

	// Check mode never modifies files, drift or not.
	got, readErr := os.ReadFile(u.Config.ReadmePath())
	require.NoError(t, readErr)
	assert.Equal(t, readme, string(got))
	got, readErr = os.ReadFile(u.Config.ChangelogPath())
	require.NoError(t, readErr)
	assert.Equal(t, changelog, string(got))
}

func TestCheck_CleanPasses(t *testing.T) {
	u := releaseFixture(t,
		"| 0.9, 0.10 | 0.6 |\n",
		"# Changelog\n\n## [0.10.3] - 2026-08-29\n")

	require.NoError(t, u.Check(time.Now()))
}

func TestApply_MissingManifest(t *testing.T) {
	u := releaseFixture(t, "x\n", "y\n")
	require.NoError(t, os.Remove(u.Config.ManifestPath()))

	err := u.Apply(time.Now())
	require.Error(t, err)
	assert.True(t, bberrors.IsCategory(err, bberrors.CategoryRelease))
}
