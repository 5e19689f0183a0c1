// Package inventory provides the armor, weapons, and magic items a character
// can equip, and YAML definitions that assemble them into decorator chains.
package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tdnd/internal/game/character"
)

// Leather grants +2 armor class.
type Leather struct{}

func (Leather) Name() string                             { return "Leather Armor" }
func (Leather) ArmorClassBonus(*character.Character) int { return 2 }
func (Leather) AttackBonus(*character.Character) int     { return 0 }
func (Leather) DamageReduction() int                     { return 0 }

// ChainMail grants +5 armor class.
type ChainMail struct{}

func (ChainMail) Name() string                             { return "Chain Mail" }
func (ChainMail) ArmorClassBonus(*character.Character) int { return 5 }
func (ChainMail) AttackBonus(*character.Character) int     { return 0 }
func (ChainMail) DamageReduction() int                     { return 0 }

// Plate grants +8 armor class. Only Dwarves and Fighters may wear it.
type Plate struct{}

// NewPlate returns Plate armor for wearer.
//
// Precondition: wearer must be non-nil.
// Postcondition: returns an error wrapping character.ErrIneligibleEquipment
// unless wearer is a Dwarf or a Fighter.
func NewPlate(wearer *character.Character) (*Plate, error) {
	if wearer.RaceID() != character.RaceDwarf && wearer.ClassID() != character.ClassFighter {
		return nil, fmt.Errorf("inventory: plate armor requires a dwarf or fighter, got %s %s: %w",
			wearer.RaceID(), wearer.ClassID(), character.ErrIneligibleEquipment)
	}
	return &Plate{}, nil
}

func (*Plate) Name() string                             { return "Plate Armor" }
func (*Plate) ArmorClassBonus(*character.Character) int { return 8 }
func (*Plate) AttackBonus(*character.Character) int     { return 0 }
func (*Plate) DamageReduction() int                     { return 0 }

// DamageReduction adds a flat reduction to every hit taken while worn over Base.
type DamageReduction struct {
	Amount int
	Base   character.Armor
}

// NewDamageReduction wraps base with amount points of damage reduction.
//
// Precondition: base must be non-nil; amount >= 0.
func NewDamageReduction(amount int, base character.Armor) *DamageReduction {
	return &DamageReduction{Amount: amount, Base: base}
}

// Name returns the base name annotated with the reduction.
func (d *DamageReduction) Name() string {
	return fmt.Sprintf("%s (DR %d)", d.Base.Name(), d.Amount)
}

func (d *DamageReduction) ArmorClassBonus(wearer *character.Character) int {
	return d.Base.ArmorClassBonus(wearer)
}

func (d *DamageReduction) AttackBonus(wearer *character.Character) int {
	return d.Base.AttackBonus(wearer)
}

// DamageReduction returns the base reduction plus Amount.
func (d *DamageReduction) DamageReduction() int {
	return d.Base.DamageReduction() + d.Amount
}

// ElvenArmor grants an Elf wearer +3 armor class and +1 attack on top of Base.
// Any other wearer gets exactly what Base provides.
type ElvenArmor struct {
	Base character.Armor
}

// NewElvenArmor wraps base in elven craftsmanship.
//
// Precondition: base must be non-nil.
func NewElvenArmor(base character.Armor) *ElvenArmor {
	return &ElvenArmor{Base: base}
}

func (e *ElvenArmor) Name() string { return "Elven " + e.Base.Name() }

func (e *ElvenArmor) ArmorClassBonus(wearer *character.Character) int {
	bonus := e.Base.ArmorClassBonus(wearer)
	if wearer.RaceID() == character.RaceElf {
		bonus += 3
	}
	return bonus
}

func (e *ElvenArmor) AttackBonus(wearer *character.Character) int {
	bonus := e.Base.AttackBonus(wearer)
	if wearer.RaceID() == character.RaceElf {
		bonus++
	}
	return bonus
}

func (e *ElvenArmor) DamageReduction() int { return e.Base.DamageReduction() }

// ArmorBase names the unenchanted armor a definition starts from.
type ArmorBase string

const (
	ArmorCloth     ArmorBase = "cloth"
	ArmorLeather   ArmorBase = "leather"
	ArmorChainMail ArmorBase = "chain_mail"
	ArmorPlate     ArmorBase = "plate"
)

var validArmorBases = map[ArmorBase]struct{}{
	ArmorCloth:     {},
	ArmorLeather:   {},
	ArmorChainMail: {},
	ArmorPlate:     {},
}

// ArmorDef defines an armor piece loaded from YAML: a base armor plus
// enchantments applied in order, innermost first.
type ArmorDef struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Base         ArmorBase     `yaml:"base"`
	Enchantments []Enchantment `yaml:"enchantments"`
}

// Validate reports an error if the ArmorDef is missing required fields or contains illegal values.
//
// Precondition: a is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ArmorDef) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := validArmorBases[a.Base]; !ok {
		errs = append(errs, fmt.Errorf("base %q is not a valid armor base", a.Base))
	}
	for i, e := range a.Enchantments {
		switch e.Kind {
		case EnchantElven:
		case EnchantDamageReduction:
			if e.Amount <= 0 {
				errs = append(errs, fmt.Errorf("enchantments[%d].amount must be > 0", i))
			}
		default:
			errs = append(errs, fmt.Errorf("enchantments[%d].kind %q is not valid for armor", i, e.Kind))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor validation failed: %v", errs)
	}
	return nil
}

// Build assembles the armor for wearer.
//
// Precondition: a passed Validate; wearer must be non-nil.
// Postcondition: Returns the decorated armor, or an error wrapping
// character.ErrIneligibleEquipment when wearer cannot wear the base.
func (a *ArmorDef) Build(wearer *character.Character) (character.Armor, error) {
	var armor character.Armor
	switch a.Base {
	case ArmorCloth:
		armor = character.Cloth{}
	case ArmorLeather:
		armor = Leather{}
	case ArmorChainMail:
		armor = ChainMail{}
	case ArmorPlate:
		p, err := NewPlate(wearer)
		if err != nil {
			return nil, fmt.Errorf("building armor %q: %w", a.ID, err)
		}
		armor = p
	default:
		return nil, fmt.Errorf("building armor %q: unknown base %q", a.ID, a.Base)
	}
	for _, e := range a.Enchantments {
		switch e.Kind {
		case EnchantElven:
			armor = NewElvenArmor(armor)
		case EnchantDamageReduction:
			armor = NewDamageReduction(e.Amount, armor)
		}
	}
	return armor, nil
}

// LoadArmors reads all YAML files in dir and returns the parsed ArmorDefs.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil slice and nil error on success; all returned defs pass Validate.
func LoadArmors(dir string) ([]*ArmorDef, error) {
	return loadDefs[ArmorDef](dir, "LoadArmors")
}
