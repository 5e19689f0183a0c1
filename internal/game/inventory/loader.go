package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnchantmentKind names a decorator applied over a base armor or weapon.
type EnchantmentKind string

const (
	// EnchantElven applies ElvenArmor or ElvenWeapon.
	EnchantElven EnchantmentKind = "elven"
	// EnchantDamageReduction applies DamageReduction to armor.
	EnchantDamageReduction EnchantmentKind = "damage_reduction"
	// EnchantMagic applies MagicWeapon to a weapon.
	EnchantMagic EnchantmentKind = "magic"
)

// Enchantment is one decorator in a definition. Amount is the damage
// reduction or the flat weapon bonus, depending on Kind.
type Enchantment struct {
	Kind   EnchantmentKind `yaml:"kind"`
	Amount int             `yaml:"amount"`
}

// validator is implemented by every definition type.
type validator interface {
	Validate() error
}

// loadDefs parses and validates every YAML file in dir as a T.
func loadDefs[T any, PT interface {
	*T
	validator
}](dir, op string) ([]*T, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defs := make([]*T, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: cannot read file %q: %w", op, path, err)
		}
		var def T
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("%s: cannot parse file %q: %w", op, path, err)
		}
		if err := PT(&def).Validate(); err != nil {
			return nil, fmt.Errorf("%s: invalid definition in %q: %w", op, path, err)
		}
		defs = append(defs, &def)
	}
	return defs, nil
}

// yamlFiles returns the .yaml and .yml files directly inside dir, sorted.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
