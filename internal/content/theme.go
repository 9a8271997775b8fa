package content

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultBiomeTheme is the fallback theme family for any biome keyword the
// table doesn't recognize (DESIGN.md Open Question #2: this fallback is
// intentional for every unknown key, not just typos).
const DefaultBiomeTheme = "ancient_abyss"

// WeightedEntry is a single weighted table row shared by loot and encounter
// tables.
type WeightedEntry struct {
	TemplateID string `yaml:"template_id"`
	Weight     int    `yaml:"weight"`
}

// ThemeFamily bundles the loot and encounter tables for one biome theme.
type ThemeFamily struct {
	Name            string          `yaml:"name"`
	LootTable       []WeightedEntry `yaml:"loot_table"`
	EncounterTable  []WeightedEntry `yaml:"encounter_table"`
	FeatureTable    []WeightedEntry `yaml:"feature_table"`
	DescriptionSeed string          `yaml:"description_seed"`
}

// ThemePack is the root of the loaded theme data file.
type ThemePack struct {
	Themes map[string]ThemeFamily `yaml:"themes"`
}

// builtinThemes is the process-wide, known biome keyword → theme family map
// (spec §4.3: "ancient_abyss, magma_cave, frozen_depths, bone_crypt").
var builtinThemes = map[string]ThemeFamily{
	"ancient_abyss": {Name: "ancient_abyss", DescriptionSeed: "a yawning, lightless abyss older than memory"},
	"magma_cave":    {Name: "magma_cave", DescriptionSeed: "cracked basalt sweating with heat"},
	"frozen_depths": {Name: "frozen_depths", DescriptionSeed: "ice-slicked stone and a biting wind"},
	"bone_crypt":    {Name: "bone_crypt", DescriptionSeed: "ossuary walls stacked floor to ceiling"},
}

// ThemeTable resolves biome keywords to ThemeFamily values, with the
// configured default fallback (spec §4.3, DESIGN.md Open Question #2).
type ThemeTable struct {
	themes map[string]ThemeFamily
	log    *zap.Logger
}

// NewThemeTable builds a ThemeTable from the builtin themes, optionally
// overridden by a loaded pack.
func NewThemeTable(log *zap.Logger) *ThemeTable {
	if log == nil {
		log = zap.NewNop()
	}
	cp := make(map[string]ThemeFamily, len(builtinThemes))
	for k, v := range builtinThemes {
		cp[k] = v
	}
	return &ThemeTable{themes: cp, log: log}
}

// LoadYAML merges a YAML theme pack file into the table, overriding any
// builtin entries with the same name.
func (t *ThemeTable) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("content: read theme pack %s: %w", path, err)
	}
	var pack ThemePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return fmt.Errorf("content: parse theme pack %s: %w", path, err)
	}
	for name, fam := range pack.Themes {
		fam.Name = name
		t.themes[name] = fam
	}
	return nil
}

// ThemeFor resolves a biome keyword, falling back to DefaultBiomeTheme (and
// logging at Warn) for any keyword the table does not recognize.
func (t *ThemeTable) ThemeFor(biome string) ThemeFamily {
	if fam, ok := t.themes[biome]; ok {
		return fam
	}
	t.log.Warn("unrecognized biome theme, falling back to default",
		zap.String("biome", biome), zap.String("fallback", DefaultBiomeTheme))
	return t.themes[DefaultBiomeTheme]
}

// PickWeighted deterministically selects an entry from a weighted table
// using a caller-supplied roll in [0, totalWeight). Determinism (spec §9)
// requires content placement to consume the seeded RNG rather than
// math/rand's global source.
func PickWeighted(entries []WeightedEntry, roll int) (string, bool) {
	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return "", false
	}
	roll = roll % total
	cursor := 0
	for _, e := range entries {
		cursor += e.Weight
		if roll < cursor {
			return e.TemplateID, true
		}
	}
	return "", false
}
