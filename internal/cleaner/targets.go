package cleaner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultBaseDir is where the space shooter scripts live, relative to the
// project root.
const DefaultBaseDir = "examples/space_shooter/scripts"

// DefaultFiles lists the gameplay and UI scripts cleaned by default.
var DefaultFiles = []string{
	"player_controller.gd",
	"enemy_base.gd",
	"game_controller.gd",
	"wave_manager.gd",
	"enemy_factory.gd",
	"entity_pool_manager.gd",
	"projectile.gd",
	"phase_system/phase_manager.gd",
	"../ui/main_menu.gd",
	"../ui/game_hud.gd",
	"../ui/weapons_hud.gd",
	"loadout_selection_ui.gd",
	"pilot_selection_ui.gd",
}

// ResolveTargets joins each entry onto baseDir. Plain entries are kept even
// if they do not exist so the batch can report them as missing. Entries
// containing glob metacharacters expand via doublestar, recursive patterns
// included; a glob matching nothing is kept as-is and reported missing.
func ResolveTargets(baseDir string, entries []string) ([]string, error) {
	var out []string
	for _, entry := range entries {
		p := entry
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, entry)
		}

		if !hasMeta(entry) {
			out = append(out, p)
			continue
		}

		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand pattern %q: %w", entry, err)
		}
		if len(matches) == 0 {
			out = append(out, p)
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
