package record

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed holds the fixtures loaded into a fresh store.
type Seed struct {
	Users  []Record `yaml:"users"`
	Tables []Record `yaml:"tables"`
}

// DefaultSeed returns the built-in fixtures.
func DefaultSeed() *Seed {
	s, err := parseSeed(defaultSeed)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("parsing embedded seed: %v", err))
	}
	return s
}

// ParseSeed reads fixtures from YAML.
func ParseSeed(r io.Reader) (*Seed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseSeed(data)
}

// LoadSeed reads fixtures from the YAML file at path.
func LoadSeed(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParseSeed(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

func parseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for i, r := range s.Users {
		if r.ID == "" {
			return nil, fmt.Errorf("users[%d]: missing id", i)
		}
	}
	for i, r := range s.Tables {
		if r.ID == "" {
			return nil, fmt.Errorf("tables[%d]: missing id", i)
		}
	}
	return &s, nil
}
