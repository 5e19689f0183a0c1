package character

import "errors"

// ErrIneligibleEquipment is returned when a character may not equip a piece of gear.
var ErrIneligibleEquipment = errors.New("ineligible equipment")

// RaceID identifies a race.
type RaceID string

const (
	RaceHuman    RaceID = "human"
	RaceOrc      RaceID = "orc"
	RaceDwarf    RaceID = "dwarf"
	RaceElf      RaceID = "elf"
	RaceHalfling RaceID = "halfling"
)

// ClassID identifies a character class.
type ClassID string

const (
	ClassPeasant ClassID = "peasant"
	ClassFighter ClassID = "fighter"
	ClassRogue   ClassID = "rogue"
	ClassMonk    ClassID = "monk"
	ClassPaladin ClassID = "paladin"
)

// Race contributes racial adjustments to a character.
//
// A character holds exactly one Race. Attach is called once when the race is
// set and may permanently alter the character's ability scores; replacing the
// race later does not undo those changes.
type Race interface {
	ID() RaceID
	Attach(c *Character)
	// ArmorClassBonus applies to AC queries that do not know the attacker.
	ArmorClassBonus() int
	// ArmorClassBonusAgainst applies when the attacker's race is known.
	ArmorClassBonusAgainst(attacker RaceID) int
	AttackBonus(target *Character) int
	// HitPointConFactor multiplies the Constitution modifier's hit point contribution.
	HitPointConFactor() int
}

// Class contributes class features to a character.
//
// Attach receives a Profile already reset to DefaultProfile and sets the
// class's base values on it.
type Class interface {
	ID() ClassID
	Attach(p *Profile)
	ArmorClassBonus(c *Character) int
	AttackBonus(target *Character) int
}

// Armor contributes to the wearer's defence. Wrappers decorate another Armor.
type Armor interface {
	Name() string
	ArmorClassBonus(wearer *Character) int
	AttackBonus(wearer *Character) int
	DamageReduction() int
}

// Weapon contributes to the wielder's attacks. Wrappers decorate another Weapon.
//
// A CriticalMultiplier of 0 defers to the wielder's profile.
type Weapon interface {
	Name() string
	AttackBonus(wielder, enemy *Character) int
	DamageBonus(wielder, enemy *Character) int
	CriticalMultiplier(wielder *Character) int
}

// Item is a carried magic item. Items stack: duplicates each contribute.
type Item interface {
	Name() string
	ArmorClassBonus() int
}

// Attacher is implemented by items with a one-time effect applied when the
// item is added to a character. The effect is not reversed on removal.
type Attacher interface {
	Attach(c *Character)
}

// Human is the default race. It has no adjustments.
type Human struct{}

func (Human) ID() RaceID                        { return RaceHuman }
func (Human) Attach(*Character)                 {}
func (Human) ArmorClassBonus() int              { return 0 }
func (Human) ArmorClassBonusAgainst(RaceID) int { return 0 }
func (Human) AttackBonus(*Character) int        { return 0 }
func (Human) HitPointConFactor() int            { return 1 }

// Peasant is the default class. It leaves the profile at its defaults.
type Peasant struct{}

func (Peasant) ID() ClassID                    { return ClassPeasant }
func (Peasant) Attach(*Profile)                {}
func (Peasant) ArmorClassBonus(*Character) int { return 0 }
func (Peasant) AttackBonus(*Character) int     { return 0 }

// Cloth is the default armor and grants nothing.
type Cloth struct{}

func (Cloth) Name() string                   { return "Cloth" }
func (Cloth) ArmorClassBonus(*Character) int { return 0 }
func (Cloth) AttackBonus(*Character) int     { return 0 }
func (Cloth) DamageReduction() int           { return 0 }

// Fists is the default weapon and grants nothing.
type Fists struct{}

func (Fists) Name() string                      { return "Fists" }
func (Fists) AttackBonus(_, _ *Character) int   { return 0 }
func (Fists) DamageBonus(_, _ *Character) int   { return 0 }
func (Fists) CriticalMultiplier(*Character) int { return 0 }
