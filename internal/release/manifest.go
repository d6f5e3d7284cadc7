package release

import (
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Versions are the version numbers driving the release doc update.
type Versions struct {
	// CrateShort is "major.minor", used in the compatibility table.
	CrateShort string
	// CrateLong is "major.minor.patch", used in the changelog heading.
	CrateLong string
	// Framework is the framework dependency's declared version.
	Framework string
}

type manifest struct {
	Package struct {
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]toml.Primitive `toml:"dependencies"`
}

// detailedDependency is the table form of a manifest dependency entry.
type detailedDependency struct {
	Version string `toml:"version"`
}

var crateVersionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`)

// ParseManifest extracts the crate version and the version of the named
// framework dependency from manifest content. The dependency may be
// declared as a plain string or as a detailed table with a version key.
func ParseManifest(content []byte, frameworkDep string) (*Versions, error) {
	var m manifest
	md, err := toml.Decode(string(content), &m)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	groups := crateVersionPattern.FindStringSubmatch(m.Package.Version)
	if groups == nil {
		return nil, fmt.Errorf("manifest package version %q is not major.minor.patch", m.Package.Version)
	}

	prim, ok := m.Dependencies[frameworkDep]
	if !ok {
		return nil, fmt.Errorf("manifest has no dependency %q", frameworkDep)
	}

	var frameworkVersion string
	if err := md.PrimitiveDecode(prim, &frameworkVersion); err != nil {
		var detailed detailedDependency
		if err := md.PrimitiveDecode(prim, &detailed); err != nil {
			return nil, fmt.Errorf("dependency %q has no readable version: %w", frameworkDep, err)
		}
		frameworkVersion = detailed.Version
	}
	if frameworkVersion == "" {
		return nil, fmt.Errorf("dependency %q has an empty version", frameworkDep)
	}

	return &Versions{
		CrateShort: groups[1] + "." + groups[2],
		CrateLong:  groups[0],
		Framework:  frameworkVersion,
	}, nil
}
