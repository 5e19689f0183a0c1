package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tdnd/internal/game/character"
)

// RingOfProtection grants +2 armor class. Rings stack.
type RingOfProtection struct{}

func (RingOfProtection) Name() string         { return "Ring of Protection" }
func (RingOfProtection) ArmorClassBonus() int { return 2 }

// BeltOfGiantStrength raises Strength by 4 when added to a character.
// Removing the belt does not lower Strength again.
type BeltOfGiantStrength struct{}

func (BeltOfGiantStrength) Name() string         { return "Belt of Giant Strength" }
func (BeltOfGiantStrength) ArmorClassBonus() int { return 0 }

// Attach adds 4 to c's Strength score.
func (BeltOfGiantStrength) Attach(c *character.Character) {
	c.Abilities.Strength.Add(4)
}

// ItemKind names a magic item type.
type ItemKind string

const (
	KindRingOfProtection    ItemKind = "ring_of_protection"
	KindBeltOfGiantStrength ItemKind = "belt_of_giant_strength"
)

// ItemDef defines a magic item loaded from YAML.
type ItemDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kind        ItemKind `yaml:"kind"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, err := d.Build(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// Build returns the item described by d.
//
// Postcondition: Returns a non-nil Item or an error for an unknown kind.
func (d *ItemDef) Build() (character.Item, error) {
	switch d.Kind {
	case KindRingOfProtection:
		return RingOfProtection{}, nil
	case KindBeltOfGiantStrength:
		return BeltOfGiantStrength{}, nil
	default:
		return nil, fmt.Errorf("kind %q is not a valid item kind", d.Kind)
	}
}

// LoadItems reads all YAML files from dir, parses each as an ItemDef,
// validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	return loadDefs[ItemDef](dir, "LoadItems")
}
