package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// PackageLoader identifies the mod loader a game uses
type PackageLoader string

const (
	LoaderBepInEx          PackageLoader = "BepInEx"
	LoaderMelonLoader      PackageLoader = "MelonLoader"
	LoaderNorthStar        PackageLoader = "NorthStar"
	LoaderGodotML          PackageLoader = "GodotML"
	LoaderAncientDungeonVR PackageLoader = "AncientDungeonVR"
	LoaderShimLoader       PackageLoader = "ShimLoader"
	LoaderLovely           PackageLoader = "Lovely"
	LoaderReturnOfModding  PackageLoader = "ReturnOfModding"
	LoaderGDWeave          PackageLoader = "GDWeave"
)

// Game describes a moddable game
type Game struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	ExeNames        []string      `yaml:"exe_names"`
	InstanceType    string        `yaml:"instance_type"` // "Game" or "Server"
	PackageLoader   PackageLoader `yaml:"package_loader"`
	ThunderstoreID  string        `yaml:"thunderstore_id"`
	ThunderstoreURL string        `yaml:"thunderstore_url"`
}

// ModMetadata is the version-independent part of a mod listing
type ModMetadata struct {
	Name           string   `yaml:"name"`
	Owner          string   `yaml:"owner"`
	DonationLink   string   `yaml:"donation_link,omitempty"`
	DateCreated    string   `yaml:"date_created"`
	IsDeprecated   bool     `yaml:"is_deprecated"`
	HasNSFWContent bool     `yaml:"has_nsfw_content"`
	Categories     []string `yaml:"categories"`
}

// ModVersion is one published version of a mod
type ModVersion struct {
	Description   string   `yaml:"description"`
	VersionNumber string   `yaml:"version_number"`
	Dependencies  []string `yaml:"dependencies"`
	Downloads     int64    `yaml:"downloads"`
	DateCreated   string   `yaml:"date_created"`
	WebsiteURL    string   `yaml:"website_url,omitempty"`
	IsActive      bool     `yaml:"is_active"`
	FileSize      int64    `yaml:"file_size"`
}

// ModPackage is an installed, versioned mod
type ModPackage struct {
	ModMetadata `yaml:",inline"`
	Version     ModVersion `yaml:"version"`
}

// ModID identifies a mod regardless of version
type ModID struct {
	Owner string
	Name  string
}

// String returns owner-name
func (id ModID) String() string {
	return id.Owner + "-" + id.Name
}

// Equals reports whether two ids refer to the same mod
func (id ModID) Equals(other ModID) bool {
	return id.Owner == other.Owner && id.Name == other.Name
}

// ID returns the version-independent identity of the package
func (m *ModPackage) ID() ModID {
	return ModID{Owner: m.Owner, Name: m.Name}
}

// QualifiedName returns owner-name-version
func (m *ModPackage) QualifiedName() string {
	return fmt.Sprintf("%s-%s-%s", m.Owner, m.Name, m.Version.VersionNumber)
}

// IconURL returns the Thunderstore CDN icon for this version
func (m *ModPackage) IconURL() string {
	return "https://gcdn.thunderstore.io/live/repository/icons/" + m.QualifiedName() + ".png"
}

// Created parses the version's creation date; the zero time is returned when it is missing or malformed
func (m *ModPackage) Created() time.Time {
	t, err := time.Parse(time.RFC3339, m.Version.DateCreated)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Dependency is a parsed Owner-Name-Version reference
type Dependency struct {
	Owner   string
	Name    string
	Version *semver.Version
	Raw     string
}

// ParseDependency parses a Thunderstore dependency string.
// The last two dash-separated fields are the name and version.
func ParseDependency(raw string) (Dependency, error) {
	parts := strings.Split(raw, "-")
	if len(parts) < 3 {
		return Dependency{}, fmt.Errorf("invalid dependency %q: want Owner-Name-Version", raw)
	}
	versionText := parts[len(parts)-1]
	version, err := semver.NewVersion(versionText)
	if err != nil {
		return Dependency{}, fmt.Errorf("invalid dependency %q: %w", raw, err)
	}
	return Dependency{
		Owner:   strings.Join(parts[:len(parts)-2], "-"),
		Name:    parts[len(parts)-2],
		Version: version,
		Raw:     raw,
	}, nil
}

// ID returns the id of the required mod
func (d Dependency) ID() ModID {
	return ModID{Owner: d.Owner, Name: d.Name}
}

// SatisfiedBy reports whether mod is the required mod at the required version or newer
func (d Dependency) SatisfiedBy(mod *ModPackage) bool {
	if mod == nil || !d.ID().Equals(mod.ID()) {
		return false
	}
	installed, err := semver.NewVersion(mod.Version.VersionNumber)
	if err != nil {
		return false
	}
	return !installed.LessThan(d.Version)
}

// Profile is a named set of installed mods for one game
type Profile struct {
	Name string
	Game string
	Path string // manifest path or URL; empty for the built-in profile
	Mods []*ModPackage
}
