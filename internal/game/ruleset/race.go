// Package ruleset implements the playable races and classes.
package ruleset

import "github.com/cory-johannsen/tdnd/internal/game/character"

// raceBonusAC is the armor class bonus granted by every racial defence.
const raceBonusAC = 2

// Orc: +2 Strength, -1 Intelligence/Wisdom/Charisma, and +2 armor class
// against every attacker.
type Orc struct{}

var orcModifiers = map[character.Ability]int{
	character.Strength:     2,
	character.Intelligence: -1,
	character.Wisdom:       -1,
	character.Charisma:     -1,
}

func (Orc) ID() character.RaceID                        { return character.RaceOrc }
func (Orc) Attach(c *character.Character)               { c.Abilities.Adjust(orcModifiers) }
func (Orc) ArmorClassBonus() int                        { return raceBonusAC }
func (Orc) ArmorClassBonusAgainst(character.RaceID) int { return raceBonusAC }
func (Orc) AttackBonus(*character.Character) int        { return 0 }
func (Orc) HitPointConFactor() int                      { return 1 }

// Dwarf: +1 Constitution, -1 Charisma, double Constitution hit points, and
// +2 to attack Orcs.
type Dwarf struct{}

var dwarfModifiers = map[character.Ability]int{
	character.Constitution: 1,
	character.Charisma:     -1,
}

func (Dwarf) ID() character.RaceID                        { return character.RaceDwarf }
func (Dwarf) Attach(c *character.Character)               { c.Abilities.Adjust(dwarfModifiers) }
func (Dwarf) ArmorClassBonus() int                        { return 0 }
func (Dwarf) ArmorClassBonusAgainst(character.RaceID) int { return 0 }
func (Dwarf) HitPointConFactor() int                      { return 2 }

// AttackBonus returns +2 against Orc targets.
func (Dwarf) AttackBonus(target *character.Character) int {
	if target.RaceID() == character.RaceOrc {
		return 2
	}
	return 0
}

// Elf: +1 Dexterity, -1 Constitution, and +2 armor class when attacked by an Orc.
type Elf struct{}

var elfModifiers = map[character.Ability]int{
	character.Dexterity:    1,
	character.Constitution: -1,
}

func (Elf) ID() character.RaceID                 { return character.RaceElf }
func (Elf) Attach(c *character.Character)        { c.Abilities.Adjust(elfModifiers) }
func (Elf) ArmorClassBonus() int                 { return 0 }
func (Elf) AttackBonus(*character.Character) int { return 0 }
func (Elf) HitPointConFactor() int               { return 1 }

// ArmorClassBonusAgainst returns +2 when the attacker is an Orc.
func (Elf) ArmorClassBonusAgainst(attacker character.RaceID) int {
	if attacker == character.RaceOrc {
		return raceBonusAC
	}
	return 0
}

// Halfling: +1 Dexterity, -1 Strength, and +2 armor class against anyone
// who is not a Halfling.
type Halfling struct{}

var halflingModifiers = map[character.Ability]int{
	character.Dexterity: 1,
	character.Strength:  -1,
}

func (Halfling) ID() character.RaceID                 { return character.RaceHalfling }
func (Halfling) Attach(c *character.Character)        { c.Abilities.Adjust(halflingModifiers) }
func (Halfling) ArmorClassBonus() int                 { return 0 }
func (Halfling) AttackBonus(*character.Character) int { return 0 }
func (Halfling) HitPointConFactor() int               { return 1 }

// ArmorClassBonusAgainst returns +2 unless the attacker is also a Halfling.
func (Halfling) ArmorClassBonusAgainst(attacker character.RaceID) int {
	if attacker != character.RaceHalfling {
		return raceBonusAC
	}
	return 0
}
