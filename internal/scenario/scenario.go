// Package scenario loads YAML combat scenarios and runs them through the
// attack resolution engine.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tdnd/internal/game/character"
	"github.com/cory-johannsen/tdnd/internal/game/inventory"
	"github.com/cory-johannsen/tdnd/internal/game/ruleset"
)

// Combatant describes one character in a scenario. Empty race, class, armor,
// and weapon fields keep the character defaults.
type Combatant struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Alignment string `yaml:"alignment"`
	// Abilities overrides individual ability scores by lowercase name.
	Abilities map[string]int `yaml:"abilities"`
	Race      string         `yaml:"race"`
	Class     string         `yaml:"class"`
	// Armor, Weapon, and Items name catalog IDs.
	Armor  string   `yaml:"armor"`
	Weapon string   `yaml:"weapon"`
	Items  []string `yaml:"items"`
}

// Attack is one scripted attack roll.
type Attack struct {
	Attacker string `yaml:"attacker"`
	Target   string `yaml:"target"`
	Roll     int    `yaml:"roll"`
}

// Scenario is a named set of combatants and the attacks they make, in order.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Combatants  []Combatant `yaml:"combatants"`
	Attacks     []Attack    `yaml:"attacks"`
	// Script is an optional Lua file, relative to the scenario file.
	Script string `yaml:"script"`

	dir string
}

// Load reads and validates the scenario file at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid Scenario or a non-nil error.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario.Load: cannot read file %q: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario.Load: %q: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates a scenario from YAML. Unknown fields are rejected.
//
// Postcondition: Returns a valid Scenario or a non-nil error.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("cannot parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadDir loads every .yaml and .yml file directly inside dir, sorted by name.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all scenarios or the first error encountered.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario.LoadDir: cannot read directory %q: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && (strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// ScriptPath returns the absolute or scenario-relative path of the Lua script,
// or "" when the scenario has none.
func (s *Scenario) ScriptPath() string {
	if s.Script == "" {
		return ""
	}
	if filepath.IsAbs(s.Script) || s.dir == "" {
		return s.Script
	}
	return filepath.Join(s.dir, s.Script)
}

// Validate reports every structural problem in the scenario. Catalog IDs are
// checked later by Build.
//
// Postcondition: Returns nil iff the scenario is well-formed.
func (s *Scenario) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(s.Combatants) == 0 {
		errs = append(errs, errors.New("combatants must not be empty"))
	}

	ids := make(map[string]bool, len(s.Combatants))
	for i, c := range s.Combatants {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("combatants[%d].id must not be empty", i))
		} else if ids[c.ID] {
			errs = append(errs, fmt.Errorf("combatants[%d].id %q is duplicated", i, c.ID))
		}
		ids[c.ID] = true

		if _, ok := character.ParseAlignment(c.Alignment); !ok {
			errs = append(errs, fmt.Errorf("combatants[%d].alignment %q is not valid", i, c.Alignment))
		}
		for name := range c.Abilities {
			if !isAbility(name) {
				errs = append(errs, fmt.Errorf("combatants[%d].abilities: %q is not an ability", i, name))
			}
		}
		if c.Race != "" {
			if _, err := ruleset.RaceByID(c.Race); err != nil {
				errs = append(errs, fmt.Errorf("combatants[%d].race: %w", i, err))
			}
		}
		if c.Class != "" {
			if _, err := ruleset.ClassByID(c.Class); err != nil {
				errs = append(errs, fmt.Errorf("combatants[%d].class: %w", i, err))
			}
		}
	}

	for i, a := range s.Attacks {
		if !ids[a.Attacker] {
			errs = append(errs, fmt.Errorf("attacks[%d].attacker %q is not a combatant", i, a.Attacker))
		}
		if !ids[a.Target] {
			errs = append(errs, fmt.Errorf("attacks[%d].target %q is not a combatant", i, a.Target))
		}
		if a.Attacker == a.Target {
			errs = append(errs, fmt.Errorf("attacks[%d]: %q cannot attack itself", i, a.Attacker))
		}
		if a.Roll < 1 || a.Roll > 20 {
			errs = append(errs, fmt.Errorf("attacks[%d].roll must be 1-20, got %d", i, a.Roll))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario validation failed: %v", errs)
	}
	return nil
}

func isAbility(name string) bool {
	for _, a := range character.AllAbilities {
		if string(a) == name {
			return true
		}
	}
	return false
}

// Build creates the scenario's characters, equipping them from reg. Race and
// class are attached before equipment so Plate eligibility sees them.
//
// Precondition: s passed Validate; reg must be non-nil.
// Postcondition: Returns a Roster in combatant order, or an error naming the
// combatant and catalog ID that failed.
func (s *Scenario) Build(reg *inventory.Registry) (*Roster, error) {
	roster := newRoster()
	for _, c := range s.Combatants {
		ch, err := buildCombatant(c, reg)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: combatant %q: %w", s.Name, c.ID, err)
		}
		roster.add(c.ID, ch)
	}
	return roster, nil
}

func buildCombatant(c Combatant, reg *inventory.Registry) (*character.Character, error) {
	scores := character.DefaultAbilityScores()
	set := character.NewAbilitySet(scores)
	for name, v := range c.Abilities {
		set.Get(character.Ability(name)).Set(v)
	}
	alignment, _ := character.ParseAlignment(c.Alignment)

	name := c.Name
	if name == "" {
		name = c.ID
	}
	ch := character.New(
		character.WithName(name),
		character.WithAlignment(alignment),
		character.WithAbilityScores(set.Scores()),
	)

	if c.Race != "" {
		r, err := ruleset.RaceByID(c.Race)
		if err != nil {
			return nil, err
		}
		ch.SetRace(r)
	}
	if c.Class != "" {
		cl, err := ruleset.ClassByID(c.Class)
		if err != nil {
			return nil, err
		}
		ch.SetClass(cl)
	}
	if c.Armor != "" {
		a, err := reg.NewArmor(c.Armor, ch)
		if err != nil {
			return nil, err
		}
		ch.SetArmor(a)
	}
	if c.Weapon != "" {
		w, err := reg.NewWeapon(c.Weapon)
		if err != nil {
			return nil, err
		}
		ch.SetWeapon(w)
	}
	for _, id := range c.Items {
		it, err := reg.NewItem(id)
		if err != nil {
			return nil, err
		}
		ch.AddItem(it)
	}
	return ch, nil
}

// Roster holds a scenario's characters by combatant ID, in declaration order.
type Roster struct {
	ids   []string
	chars map[string]*character.Character
}

func newRoster() *Roster {
	return &Roster{chars: make(map[string]*character.Character)}
}

func (r *Roster) add(id string, c *character.Character) {
	r.ids = append(r.ids, id)
	r.chars[id] = c
}

// Get returns the character for id.
//
// Postcondition: ok is true iff id is in the roster.
func (r *Roster) Get(id string) (c *character.Character, ok bool) {
	c, ok = r.chars[id]
	return c, ok
}

// IDs returns combatant IDs in declaration order.
func (r *Roster) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}
