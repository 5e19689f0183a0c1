package combat

import "github.com/cory-johannsen/tdnd/internal/game/character"

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	// Attacker and Target are the combatants' names.
	Attacker string
	Target   string
	// Roll is the caller-supplied d20 result.
	Roll int
	// AttackTotal is Roll plus every attack modifier.
	AttackTotal int
	// TargetAC is the armor class the attack was resolved against.
	TargetAC   int
	FlatFooted bool
	Hit        bool
	Critical   bool
	// Damage is the damage rolled on a hit, before the target's damage reduction.
	Damage int
	// DamageDealt is the damage the target actually took.
	DamageDealt int
	// ExperienceGained is the experience awarded to the attacker.
	ExperienceGained int
	// TargetDead reports whether the target is dead after the attack.
	TargetDead bool
}

// AttackTotal returns roll plus the attacker's modifiers against target, summed
// in order: attack ability modifier, class bonus, race bonus, level bonus,
// weapon bonus, armor bonus.
//
// Precondition: attacker and target must be non-nil.
func AttackTotal(roll int, attacker, target *character.Character) int {
	return roll +
		attacker.AttackModifier() +
		attacker.Class().AttackBonus(target) +
		attacker.Race().AttackBonus(target) +
		LevelBonus(attacker) +
		attacker.Weapon().AttackBonus(attacker, target) +
		attacker.Armor().AttackBonus(attacker)
}

// LevelBonus returns the attacker's level divided by its attack-per-level divisor.
// A divisor below 1 is treated as 1.
func LevelBonus(attacker *character.Character) int {
	divisor := attacker.Profile.AttackPerLevelDivisor
	if divisor < 1 {
		divisor = 1
	}
	return attacker.Level() / divisor
}

// TargetArmorClass returns the armor class attacker must beat: target's
// flat-footed AC when the attacker targets flat-footed defenders, otherwise
// target's AC against the attacker's race.
//
// Precondition: attacker and target must be non-nil.
func TargetArmorClass(attacker, target *character.Character) int {
	if attacker.Profile.TargetsFlatFooted {
		return target.FlatFootedArmorClass()
	}
	return target.ArmorClassAgainst(attacker.RaceID())
}

// Damage returns the damage a hit by attacker deals to target before damage
// reduction: base damage plus attack ability modifier plus weapon bonus,
// multiplied by the critical multiplier on a CritRoll, and at least MinimumDamage.
//
// Precondition: attacker and target must be non-nil.
// Postcondition: Returns >= MinimumDamage.
func Damage(roll int, attacker, target *character.Character) int {
	dmg := attacker.Profile.BaseDamage +
		attacker.AttackModifier() +
		attacker.Weapon().DamageBonus(attacker, target)
	if roll == CritRoll {
		dmg *= attacker.CriticalMultiplier()
	}
	return max(dmg, MinimumDamage)
}

// ResolveAttack performs a full attack by attacker against target. On a hit,
// target takes the damage and attacker gains ExperiencePerHit. On a miss
// neither character changes.
//
// Precondition: attacker and target must be non-nil.
// Postcondition: Returns a fully populated AttackResult.
func ResolveAttack(roll int, attacker, target *character.Character) AttackResult {
	total := AttackTotal(roll, attacker, target)
	ac := TargetArmorClass(attacker, target)
	res := AttackResult{
		Attacker:    attacker.Name,
		Target:      target.Name,
		Roll:        roll,
		AttackTotal: total,
		TargetAC:    ac,
		FlatFooted:  attacker.Profile.TargetsFlatFooted,
		Hit:         Hits(total, ac),
		Critical:    roll == CritRoll,
	}
	if res.Hit {
		res.Damage = Damage(roll, attacker, target)
		res.DamageDealt = target.TakeDamage(res.Damage)
		attacker.GainExperience(ExperiencePerHit)
		res.ExperienceGained = ExperiencePerHit
	}
	res.TargetDead = target.IsDead()
	return res
}
