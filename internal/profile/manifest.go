package profile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"modgrip/internal/domain"
)

// ManifestName is the file name profiles store their installed mods in
const ManifestName = "mods.yml"

//go:embed fixture.yml
var fixture []byte

// ErrInvalidManifest is returned when a manifest parses but describes an unusable profile
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is the on-disk form of a profile
type Manifest struct {
	Profile string               `yaml:"profile"`
	Game    string               `yaml:"game"`
	Mods    []*domain.ModPackage `yaml:"mods"`
}

// ParseManifest decodes and validates a mods.yml document
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	for i, mod := range m.Mods {
		if mod == nil {
			return nil, fmt.Errorf("%w: entry %d is empty", ErrInvalidManifest, i)
		}
		if mod.Name == "" || mod.Owner == "" {
			return nil, fmt.Errorf("%w: entry %d needs both name and owner", ErrInvalidManifest, i)
		}
	}

	return &m, nil
}

// Fixture returns the built-in preview profile
func Fixture() *Manifest {
	m, err := ParseManifest(bytes.NewReader(fixture))
	if err != nil {
		panic(fmt.Sprintf("built-in profile is broken: %v", err))
	}
	return m
}

// Export writes mods as a mods.yml document
func Export(w io.Writer, name, game string, mods []*domain.ModPackage) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Manifest{Profile: name, Game: game, Mods: mods}); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

func (m *Manifest) toProfile(path string) domain.Profile {
	return domain.Profile{
		Name: m.Profile,
		Game: m.Game,
		Path: path,
		Mods: m.Mods,
	}
}
