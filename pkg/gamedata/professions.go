package gamedata

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed professions.yaml
var defaultProfessions []byte

// Profession holds the display metadata of a profession
type Profession struct {
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

// ColorValue parses Color as an integer, accepting 0x, 0o and 0b prefixes
func (p Profession) ColorValue() (int, error) {
	value, err := strconv.ParseInt(p.Color, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid profession color %q: %w", p.Color, err)
	}
	return int(value), nil
}

// Professions maps a lowercased profession name to its metadata
type Professions map[string]Profession

// Lookup finds a profession by name, ignoring case
func (p Professions) Lookup(name string) (Profession, bool) {
	profession, ok := p[strings.ToLower(name)]
	return profession, ok
}

// Load reads the profession table from path, or the built-in table when path is empty
func Load(path string) (Professions, error) {
	data := defaultProfessions
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read game data: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes a profession table document
func Parse(data []byte) (Professions, error) {
	var doc struct {
		Professions map[string]Profession `yaml:"professions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse game data: %w", err)
	}

	professions := make(Professions, len(doc.Professions))
	for name, profession := range doc.Professions {
		if _, err := profession.ColorValue(); err != nil {
			return nil, fmt.Errorf("profession %s: %w", name, err)
		}
		professions[strings.ToLower(name)] = profession
	}
	return professions, nil
}
