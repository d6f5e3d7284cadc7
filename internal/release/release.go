// Package release stamps the compatibility table and the changelog for a
// crate release. Both updates are idempotent; a dedicated check mode gates
// the release process without writing anything.
package release

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/bookbinder/internal/anchor"
	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
)

// unreleasedMarker is the changelog heading replaced at release time.
const unreleasedMarker = "## [Unreleased] -"

// Updater applies or verifies the release doc updates.
type Updater struct {
	Config *config.Config
}

// Apply rewrites the README compatibility table and the changelog in
// place. Each file is read fully, transformed in memory and only then
// written back, so a failure never leaves a partial write behind.
func (u *Updater) Apply(now time.Time) error {
	versions, err := u.readVersions()
	if err != nil {
		return err
	}
	slog.Info("Stamping release docs",
		"crate", versions.CrateLong, "framework", versions.Framework)

	readme, updatedReadme, err := u.transformReadme(versions)
	if err != nil {
		return err
	}
	changelog, updatedChangelog, err := u.transformChangelog(versions, now)
	if err != nil {
		return err
	}

	if readme != updatedReadme {
		if err := os.WriteFile(u.Config.ReadmePath(), []byte(updatedReadme), 0o644); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write README")
		}
		slog.Info("Updated compatibility table", "file", u.Config.ReadmePath())
	}
	if changelog != updatedChangelog {
		if err := os.WriteFile(u.Config.ChangelogPath(), []byte(updatedChangelog), 0o644); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write changelog")
		}
		slog.Info("Stamped changelog heading", "file", u.Config.ChangelogPath())
	}

	return nil
}

// Check reports drift without modifying anything on disk. Drift yields an
// error carrying exit code 1, the contract gating the release pipeline.
func (u *Updater) Check(now time.Time) error {
	versions, err := u.readVersions()
	if err != nil {
		return err
	}

	readme, updatedReadme, err := u.transformReadme(versions)
	if err != nil {
		return err
	}
	if readme != updatedReadme {
		return errors.New(errors.CategoryRelease, errors.SeverityError,
			fmt.Sprintf("%s does not list crate version %s in the compatibility table; run `bookbinder release` to fix",
				u.Config.Release.ReadmeFile, versions.CrateShort)).
			WithExitCode(1)
	}
	slog.Info("Compatibility table is up to date", "file", u.Config.ReadmePath())

	changelog, updatedChangelog, err := u.transformChangelog(versions, now)
	if err != nil {
		return err
	}
	if changelog != updatedChangelog {
		return errors.New(errors.CategoryRelease, errors.SeverityError,
			fmt.Sprintf("%s still contains an [Unreleased] heading; run `bookbinder release` to fix",
				u.Config.Release.ChangelogFile)).
			WithExitCode(1)
	}
	slog.Info("Changelog has no unreleased heading", "file", u.Config.ChangelogPath())

	return nil
}

func (u *Updater) readVersions() (*Versions, error) {
	content, err := os.ReadFile(u.Config.ManifestPath())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryRelease, errors.SeverityFatal, "read manifest").
			WithContext("path", u.Config.ManifestPath())
	}
	versions, err := ParseManifest(content, u.Config.Release.FrameworkDependency)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryRelease, errors.SeverityFatal, "parse manifest")
	}
	return versions, nil
}

func (u *Updater) transformReadme(versions *Versions) (old, updated string, err error) {
	content, err := os.ReadFile(u.Config.ReadmePath())
	if err != nil {
		return "", "", errors.Wrap(err, errors.CategoryRelease, errors.SeverityFatal, "read README")
	}
	old = string(content)
	return old, anchor.AccumulateTableRow(old, versions.CrateShort, versions.Framework), nil
}

func (u *Updater) transformChangelog(versions *Versions, now time.Time) (old, updated string, err error) {
	content, err := os.ReadFile(u.Config.ChangelogPath())
	if err != nil {
		return "", "", errors.Wrap(err, errors.CategoryRelease, errors.SeverityFatal, "read changelog")
	}
	old = string(content)
	heading := fmt.Sprintf("## [%s] - %s", versions.CrateLong, now.Format("2006-01-02"))
	return old, anchor.StampHeading(old, unreleasedMarker, heading), nil
}
