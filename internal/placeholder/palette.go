package placeholder

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atikulmunna/gdkit/internal/model"
)

// paletteFile is the on-disk YAML shape of a palette:
//
//	pilots:
//	  - file: tank_commander_pilot.png
//	    name: Tank Commander
//	    color: [128, 128, 200]
type paletteFile struct {
	Pilots []pilotEntry `yaml:"pilots"`
}

type pilotEntry struct {
	File  string `yaml:"file"`
	Name  string `yaml:"name"`
	Color []int  `yaml:"color"`
}

// LoadPalette reads a YAML palette file.
func LoadPalette(path string) ([]model.ColorSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.OpError{Op: "read palette", Path: path, Err: err}
	}
	specs, err := ParsePalette(raw)
	if err != nil {
		return nil, &model.OpError{Op: "parse palette", Path: path, Err: err}
	}
	return specs, nil
}

// ParsePalette decodes palette YAML and validates every entry.
func ParsePalette(raw []byte) ([]model.ColorSpec, error) {
	var pf paletteFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, err
	}
	if len(pf.Pilots) == 0 {
		return nil, fmt.Errorf("palette has no pilots")
	}

	seen := make(map[string]bool, len(pf.Pilots))
	specs := make([]model.ColorSpec, 0, len(pf.Pilots))
	for i, p := range pf.Pilots {
		file := strings.TrimSpace(p.File)
		switch {
		case file == "":
			return nil, fmt.Errorf("pilot %d: file is required", i)
		case strings.ContainsAny(file, `/\`):
			return nil, fmt.Errorf("pilot %d: file %q must be a bare file name", i, file)
		case seen[file]:
			return nil, fmt.Errorf("pilot %d: duplicate file %q", i, file)
		case len(p.Color) != 3:
			return nil, fmt.Errorf("pilot %d: color needs 3 channels, got %d", i, len(p.Color))
		}
		for _, c := range p.Color {
			if c < 0 || c > 255 {
				return nil, fmt.Errorf("pilot %d: channel %d out of range 0-255", i, c)
			}
		}
		seen[file] = true

		name := p.Name
		if name == "" {
			name = strings.TrimSuffix(file, ".png")
		}
		specs = append(specs, model.ColorSpec{
			File: file,
			Name: name,
			R:    uint8(p.Color[0]),
			G:    uint8(p.Color[1]),
			B:    uint8(p.Color[2]),
		})
	}
	return specs, nil
}
