package ruleset

import "github.com/cory-johannsen/tdnd/internal/game/character"

// Fighter: 10 hit points per level and +1 attack every level.
type Fighter struct{}

func (Fighter) ID() character.ClassID                    { return character.ClassFighter }
func (Fighter) ArmorClassBonus(*character.Character) int { return 0 }
func (Fighter) AttackBonus(*character.Character) int     { return 0 }

// Attach sets 10 base hit points and a level divisor of 1.
func (Fighter) Attach(p *character.Profile) {
	p.BaseHitPoints = 10
	p.AttackPerLevelDivisor = 1
}

// Rogue: triple criticals, attacks flat-footed armor class, and attacks with Dexterity.
type Rogue struct{}

func (Rogue) ID() character.ClassID                    { return character.ClassRogue }
func (Rogue) ArmorClassBonus(*character.Character) int { return 0 }
func (Rogue) AttackBonus(*character.Character) int     { return 0 }

// Attach sets a critical multiplier of 3, flat-footed targeting, and Dexterity attacks.
func (Rogue) Attach(p *character.Profile) {
	p.CritMultiplier = 3
	p.TargetsFlatFooted = true
	p.AttackAbility = character.Dexterity
}

// Monk: 6 hit points per level, 3 base damage, and a positive Wisdom
// modifier added to armor class.
type Monk struct{}

func (Monk) ID() character.ClassID                { return character.ClassMonk }
func (Monk) AttackBonus(*character.Character) int { return 0 }

// Attach sets 6 base hit points and 3 base damage.
func (Monk) Attach(p *character.Profile) {
	p.BaseHitPoints = 6
	p.BaseDamage = 3
}

// ArmorClassBonus returns the Wisdom modifier, or 0 when it is negative.
func (Monk) ArmorClassBonus(c *character.Character) int {
	return max(c.Abilities.Wisdom.Modifier(), 0)
}

// Paladin: 8 hit points per level and +2 to attack Evil targets.
type Paladin struct{}

func (Paladin) ID() character.ClassID                    { return character.ClassPaladin }
func (Paladin) ArmorClassBonus(*character.Character) int { return 0 }

// Attach sets 8 base hit points.
func (Paladin) Attach(p *character.Profile) {
	p.BaseHitPoints = 8
}

// AttackBonus returns +2 against Evil targets.
func (Paladin) AttackBonus(target *character.Character) int {
	if target.Alignment == character.Evil {
		return 2
	}
	return 0
}
