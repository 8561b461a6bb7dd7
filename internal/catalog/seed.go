package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedRecord is one record in a seed document. Every key besides id is a field value.
type SeedRecord struct {
	ID     int64             `yaml:"id"`
	Values map[string]string `yaml:",inline"`
}

// Seed is the YAML document used to populate the catalog.
type Seed struct {
	Destinations        []SeedRecord `yaml:"destinations"`
	DestinationMappings []SeedRecord `yaml:"destination_mappings"`
	BoardingStages      []SeedRecord `yaml:"boarding_stages"`
	BoardingMappings    []SeedRecord `yaml:"boarding_mappings"`
}

// ParseSeed decodes a seed document. Unknown top-level keys are rejected.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &seed, nil
}

// DefaultSeed returns the built-in sample data.
func DefaultSeed() *Seed {
	seed, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return seed
}

// LoadSeedFile reads a seed document from disk.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// Records flattens the seed into records, keeping only schema fields.
func (s *Seed) Records() []Record {
	groups := []struct {
		kind Kind
		recs []SeedRecord
	}{
		{KindDestination, s.Destinations},
		{KindDestinationMapping, s.DestinationMappings},
		{KindBoardingStage, s.BoardingStages},
		{KindBoardingMapping, s.BoardingMappings},
	}

	var out []Record
	for _, g := range groups {
		schema := schemas[g.kind]
		for _, r := range g.recs {
			out = append(out, Record{
				ID:     r.ID,
				Kind:   g.kind,
				Values: schema.Normalize(r.Values),
			})
		}
	}
	return out
}

// Apply replaces the contents of store with the seed.
func (s *Seed) Apply(ctx context.Context, store Store) error {
	return store.Replace(ctx, s.Records())
}
