package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tdnd/internal/game/character"
)

// LongSword deals +5 damage.
type LongSword struct{}

func (LongSword) Name() string                                { return "Long Sword" }
func (LongSword) AttackBonus(_, _ *character.Character) int   { return 0 }
func (LongSword) DamageBonus(_, _ *character.Character) int   { return 5 }
func (LongSword) CriticalMultiplier(*character.Character) int { return 0 }

// WarAxe deals +6 damage and criticals for ×3, or ×5 in a Rogue's hands.
type WarAxe struct{}

func (WarAxe) Name() string                              { return "War Axe" }
func (WarAxe) AttackBonus(_, _ *character.Character) int { return 0 }
func (WarAxe) DamageBonus(_, _ *character.Character) int { return 6 }

// CriticalMultiplier returns 5 for a Rogue wielder and 3 otherwise.
func (WarAxe) CriticalMultiplier(wielder *character.Character) int {
	if wielder.ClassID() == character.ClassRogue {
		return 5
	}
	return 3
}

// NunChucks deal +6 damage. Anyone but a Monk attacks at -4.
type NunChucks struct{}

func (NunChucks) Name() string                                { return "Nunchucks" }
func (NunChucks) DamageBonus(_, _ *character.Character) int   { return 6 }
func (NunChucks) CriticalMultiplier(*character.Character) int { return 0 }

// AttackBonus returns -4 unless wielder is a Monk.
func (NunChucks) AttackBonus(wielder, _ *character.Character) int {
	if wielder.ClassID() != character.ClassMonk {
		return -4
	}
	return 0
}

// ElvenWeapon adds Bonus plus a racial bonus to Base's attack and damage.
// The racial bonus is +1 when the wielder is an Elf or the enemy is an Orc,
// and +4 when both hold.
type ElvenWeapon struct {
	Bonus int
	Base  character.Weapon
}

// NewElvenWeapon wraps base with a flat bonus.
//
// Precondition: base must be non-nil.
func NewElvenWeapon(bonus int, base character.Weapon) *ElvenWeapon {
	return &ElvenWeapon{Bonus: bonus, Base: base}
}

func (e *ElvenWeapon) Name() string {
	return fmt.Sprintf("Elven %s +%d", e.Base.Name(), e.Bonus)
}

func (e *ElvenWeapon) AttackBonus(wielder, enemy *character.Character) int {
	return e.Base.AttackBonus(wielder, enemy) + e.Bonus + elvenRacialBonus(wielder, enemy)
}

func (e *ElvenWeapon) DamageBonus(wielder, enemy *character.Character) int {
	return e.Base.DamageBonus(wielder, enemy) + e.Bonus + elvenRacialBonus(wielder, enemy)
}

func (e *ElvenWeapon) CriticalMultiplier(wielder *character.Character) int {
	return e.Base.CriticalMultiplier(wielder)
}

func elvenRacialBonus(wielder, enemy *character.Character) int {
	elf := wielder.RaceID() == character.RaceElf
	orc := enemy.RaceID() == character.RaceOrc
	switch {
	case elf && orc:
		return 4
	case elf || orc:
		return 1
	default:
		return 0
	}
}

// MagicWeapon adds an enchantment Bonus to Base's attack and damage.
type MagicWeapon struct {
	Bonus int
	Base  character.Weapon
}

// NewMagicWeapon wraps base with a +bonus enchantment.
//
// Precondition: base must be non-nil.
func NewMagicWeapon(bonus int, base character.Weapon) *MagicWeapon {
	return &MagicWeapon{Bonus: bonus, Base: base}
}

func (m *MagicWeapon) Name() string {
	return fmt.Sprintf("+%d %s", m.Bonus, m.Base.Name())
}

func (m *MagicWeapon) AttackBonus(wielder, enemy *character.Character) int {
	return m.Base.AttackBonus(wielder, enemy) + m.Bonus
}

func (m *MagicWeapon) DamageBonus(wielder, enemy *character.Character) int {
	return m.Base.DamageBonus(wielder, enemy) + m.Bonus
}

func (m *MagicWeapon) CriticalMultiplier(wielder *character.Character) int {
	return m.Base.CriticalMultiplier(wielder)
}

// WeaponBase names the unenchanted weapon a definition starts from.
type WeaponBase string

const (
	WeaponFists     WeaponBase = "fists"
	WeaponLongSword WeaponBase = "long_sword"
	WeaponWarAxe    WeaponBase = "war_axe"
	WeaponNunChucks WeaponBase = "nun_chucks"
)

// WeaponDef defines a weapon loaded from YAML: a base weapon plus
// enchantments applied in order, innermost first.
type WeaponDef struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Base         WeaponBase    `yaml:"base"`
	Enchantments []Enchantment `yaml:"enchantments"`
}

// Validate checks that the WeaponDef satisfies its invariants.
//
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, err := baseWeapon(w.Base); err != nil {
		errs = append(errs, err)
	}
	for i, e := range w.Enchantments {
		if e.Kind != EnchantElven && e.Kind != EnchantMagic {
			errs = append(errs, fmt.Errorf("enchantments[%d].kind %q is not valid for weapons", i, e.Kind))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// Build assembles the weapon described by w.
//
// Precondition: w passed Validate.
// Postcondition: Returns the decorated weapon or an error for an unknown base.
func (w *WeaponDef) Build() (character.Weapon, error) {
	weapon, err := baseWeapon(w.Base)
	if err != nil {
		return nil, fmt.Errorf("building weapon %q: %w", w.ID, err)
	}
	for _, e := range w.Enchantments {
		switch e.Kind {
		case EnchantElven:
			weapon = NewElvenWeapon(e.Amount, weapon)
		case EnchantMagic:
			weapon = NewMagicWeapon(e.Amount, weapon)
		}
	}
	return weapon, nil
}

func baseWeapon(b WeaponBase) (character.Weapon, error) {
	switch b {
	case WeaponFists:
		return character.Fists{}, nil
	case WeaponLongSword:
		return LongSword{}, nil
	case WeaponWarAxe:
		return WarAxe{}, nil
	case WeaponNunChucks:
		return NunChucks{}, nil
	default:
		return nil, fmt.Errorf("base %q is not a valid weapon base", b)
	}
}

// LoadWeapons reads all YAML files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	return loadDefs[WeaponDef](dir, "LoadWeapons")
}
