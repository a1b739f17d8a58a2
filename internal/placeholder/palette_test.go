package placeholder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atikulmunna/gdkit/internal/model"
)

func TestParsePalette(t *testing.T) {
	raw := []byte(`
pilots:
  - file: ace_pilot.png
    name: Ace
    color: [10, 20, 30]
  - file: rookie_pilot.png
    color: [255, 0, 0]
`)
	specs, err := ParsePalette(raw)
	require.NoError(t, err)
	require.Equal(t, []model.ColorSpec{
		{File: "ace_pilot.png", Name: "Ace", R: 10, G: 20, B: 30},
		{File: "rookie_pilot.png", Name: "rookie_pilot", R: 255},
	}, specs)
}

func TestParsePaletteErrors(t *testing.T) {
	cases := map[string]string{
		"empty":        `pilots: []`,
		"missing file": "pilots:\n  - color: [1, 2, 3]\n",
		"path in file": "pilots:\n  - file: ../x.png\n    color: [1, 2, 3]\n",
		"two channels": "pilots:\n  - file: x.png\n    color: [1, 2]\n",
		"out of range": "pilots:\n  - file: x.png\n    color: [1, 2, 300]\n",
		"negative":     "pilots:\n  - file: x.png\n    color: [-1, 2, 3]\n",
		"duplicate":    "pilots:\n  - file: x.png\n    color: [1, 2, 3]\n  - file: x.png\n    color: [1, 2, 3]\n",
		"invalid yaml": "pilots: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePalette([]byte(raw))
			require.Error(t, err)
		})
	}
}

func TestLoadPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pilots:\n  - file: a.png\n    name: A\n    color: [1, 2, 3]\n"), 0o644))

	specs, err := LoadPalette(path)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	_, err = LoadPalette(filepath.Join(t.TempDir(), "missing.yaml"))
	var opErr *model.OpError
	require.ErrorAs(t, err, &opErr)
}
