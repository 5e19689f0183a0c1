// Package combat resolves attacks between characters.
//
// Resolution is synchronous and deterministic: the caller supplies the d20
// roll, and every modifier is read from the attacker's and target's race,
// class, armor, weapon, and items at the moment of the attack.
package combat

const (
	// CritRoll is the natural roll that scores a critical hit.
	CritRoll = 20
	// ExperiencePerHit is awarded to the attacker for every hit.
	ExperiencePerHit = 10
	// MinimumDamage is the least damage a hit deals before damage reduction.
	MinimumDamage = 1
)

// Hits reports whether an attack total beats the target's armor class.
// Ties miss.
//
// Postcondition: Returns true iff total > ac.
func Hits(total, ac int) bool {
	return total > ac
}
