// Package character defines the character aggregate, its ability scores, and
// the capability interfaces that races, classes, and equipment implement.
package character

import (
	"reflect"

	"github.com/google/uuid"
)

const (
	// BaseArmorClass is the armor class of an unarmored character before modifiers.
	BaseArmorClass = 10
	// ExperiencePerLevel is the experience needed to advance one level.
	ExperiencePerLevel = 1000
	// DefaultName is used when a character is created without a name.
	DefaultName = "John Doe"
)

// Alignment is a character's moral alignment.
type Alignment int

const (
	Good Alignment = iota
	Neutral
	Evil
)

// String returns the lowercase alignment label.
func (a Alignment) String() string {
	switch a {
	case Good:
		return "good"
	case Neutral:
		return "neutral"
	case Evil:
		return "evil"
	default:
		return "unknown"
	}
}

// ParseAlignment maps a label to an Alignment. The empty string is Neutral.
//
// Postcondition: ok is false iff s is not a known label.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "good":
		return Good, true
	case "", "neutral":
		return Neutral, true
	case "evil":
		return Evil, true
	default:
		return Neutral, false
	}
}

// Profile holds the class-derived base values used by combat.
type Profile struct {
	BaseHitPoints int
	BaseDamage    int
	// CritMultiplier is the class multiplier; the weapon may raise it.
	CritMultiplier int
	// AttackAbility supplies the modifier added to attack and damage rolls.
	AttackAbility Ability
	// TargetsFlatFooted makes attacks resolve against the target's flat-footed AC.
	TargetsFlatFooted bool
	// AttackPerLevelDivisor divides level to give the level attack bonus.
	AttackPerLevelDivisor int
}

// DefaultProfile returns the profile of an unclassed character.
func DefaultProfile() Profile {
	return Profile{
		BaseHitPoints:         5,
		BaseDamage:            1,
		CritMultiplier:        2,
		AttackAbility:         Strength,
		AttackPerLevelDivisor: 2,
	}
}

// Option customizes a Character at construction.
type Option func(*Character)

// WithName sets the character's name.
func WithName(name string) Option {
	return func(c *Character) { c.Name = name }
}

// WithAlignment sets the character's alignment.
func WithAlignment(a Alignment) Option {
	return func(c *Character) { c.Alignment = a }
}

// WithAbilityScores replaces the default ability scores. Values are clamped.
func WithAbilityScores(scores AbilityScores) Option {
	return func(c *Character) { c.Abilities = NewAbilitySet(scores) }
}

// Character is the aggregate root for one combatant.
//
// Character is not safe for concurrent use. Callers that share a Character
// across goroutines must serialize access.
type Character struct {
	ID        uuid.UUID
	Name      string
	Alignment Alignment
	Abilities AbilitySet
	Profile   Profile

	currentDamage int
	experience    int

	race   Race
	class  Class
	armor  Armor
	weapon Weapon
	items  []Item
}

// New creates a level 1 Human Peasant in Cloth with Fists and all abilities at 10.
//
// Postcondition: Level() == 1; CurrentDamage() == 0; Race() is Human; Class() is Peasant.
func New(opts ...Option) *Character {
	c := &Character{
		ID:        uuid.New(),
		Name:      DefaultName,
		Alignment: Neutral,
		Abilities: NewAbilitySet(DefaultAbilityScores()),
		Profile:   DefaultProfile(),
		race:      Human{},
		class:     Peasant{},
		armor:     Cloth{},
		weapon:    Fists{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Race returns the active race.
func (c *Character) Race() Race { return c.race }

// RaceID returns the active race's ID.
func (c *Character) RaceID() RaceID { return c.race.ID() }

// SetRace replaces the active race and applies its one-time adjustments.
// Adjustments made by a previous race are not reverted.
//
// Precondition: r must be non-nil.
func (c *Character) SetRace(r Race) {
	c.race = r
	r.Attach(c)
}

// Class returns the active class.
func (c *Character) Class() Class { return c.class }

// ClassID returns the active class's ID.
func (c *Character) ClassID() ClassID { return c.class.ID() }

// SetClass replaces the active class. The profile is reset to DefaultProfile
// before the new class is attached, so a previous class leaves no trace.
//
// Precondition: cl must be non-nil.
func (c *Character) SetClass(cl Class) {
	c.class = cl
	c.Profile = DefaultProfile()
	cl.Attach(&c.Profile)
}

// Armor returns the equipped armor.
func (c *Character) Armor() Armor { return c.armor }

// SetArmor equips a. A nil armor equips Cloth.
func (c *Character) SetArmor(a Armor) {
	if a == nil {
		a = Cloth{}
	}
	c.armor = a
}

// Weapon returns the equipped weapon.
func (c *Character) Weapon() Weapon { return c.weapon }

// SetWeapon equips w. A nil weapon equips Fists.
func (c *Character) SetWeapon(w Weapon) {
	if w == nil {
		w = Fists{}
	}
	c.weapon = w
}

// Items returns a copy of the carried items.
func (c *Character) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// AddItem carries it. If it implements Attacher its effect is applied now.
func (c *Character) AddItem(it Item) {
	c.items = append(c.items, it)
	if a, ok := it.(Attacher); ok {
		a.Attach(c)
	}
}

// RemoveItem drops one carried instance equal to it. Attach effects persist.
// Items whose dynamic type is not comparable never match.
//
// Postcondition: returns true iff an item was removed.
func (c *Character) RemoveItem(it Item) bool {
	if it == nil || !reflect.TypeOf(it).Comparable() {
		return false
	}
	for i, held := range c.items {
		if reflect.TypeOf(held) != reflect.TypeOf(it) {
			continue
		}
		if held == it {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Experience returns the accumulated experience points.
func (c *Character) Experience() int { return c.experience }

// GainExperience adds xp to the character's experience. Non-positive xp is
// ignored, so Level never falls below 1.
func (c *Character) GainExperience(xp int) {
	if xp <= 0 {
		return
	}
	c.experience += xp
}

// Level returns Experience()/1000 + 1.
//
// Postcondition: Returns >= 1.
func (c *Character) Level() int {
	return c.experience/ExperiencePerLevel + 1
}

// HitPoints returns (base hit points + Constitution bonus) × level.
// The Constitution bonus is the modifier scaled by the race's HitPointConFactor.
func (c *Character) HitPoints() int {
	conBonus := c.Abilities.Constitution.Modifier() * c.race.HitPointConFactor()
	return (c.Profile.BaseHitPoints + conBonus) * c.Level()
}

// CurrentDamage returns the damage taken so far.
func (c *Character) CurrentDamage() int { return c.currentDamage }

// RemainingHitPoints returns HitPoints() - CurrentDamage().
func (c *Character) RemainingHitPoints() int {
	return c.HitPoints() - c.currentDamage
}

// IsDead reports whether remaining hit points are zero or less.
func (c *Character) IsDead() bool {
	return c.RemainingHitPoints() <= 0
}

// DamageReduction returns the damage reduction granted by the equipped armor.
func (c *Character) DamageReduction() int {
	return c.armor.DamageReduction()
}

// TakeDamage applies damage less DamageReduction, never healing the character.
//
// Precondition: damage >= 0.
// Postcondition: returns the damage actually applied, >= 0.
func (c *Character) TakeDamage(damage int) int {
	applied := damage - c.DamageReduction()
	if applied < 0 {
		applied = 0
	}
	c.currentDamage += applied
	return applied
}

// AttackModifier returns the modifier of the profile's attack ability.
func (c *Character) AttackModifier() int {
	return c.Abilities.Modifier(c.Profile.AttackAbility)
}

// CriticalMultiplier returns the larger of the profile and weapon multipliers.
func (c *Character) CriticalMultiplier() int {
	return max(c.Profile.CritMultiplier, c.weapon.CriticalMultiplier(c))
}

// ArmorClass returns the armor class against an attacker of unknown race.
func (c *Character) ArmorClass() int {
	return c.armorClassWithoutRace() + c.Abilities.Dexterity.Modifier() + c.race.ArmorClassBonus()
}

// ArmorClassAgainst returns the armor class against an attacker of race attacker.
func (c *Character) ArmorClassAgainst(attacker RaceID) int {
	return c.armorClassWithoutRace() + c.Abilities.Dexterity.Modifier() + c.race.ArmorClassBonusAgainst(attacker)
}

// FlatFootedArmorClass returns the armor class without a positive Dexterity bonus.
// Dexterity penalties still apply.
func (c *Character) FlatFootedArmorClass() int {
	dex := min(c.Abilities.Dexterity.Modifier(), 0)
	return c.armorClassWithoutRace() + dex + c.race.ArmorClassBonus()
}

// ItemArmorClassBonus sums the armor class bonuses of all carried items.
func (c *Character) ItemArmorClassBonus() int {
	total := 0
	for _, it := range c.items {
		total += it.ArmorClassBonus()
	}
	return total
}

func (c *Character) armorClassWithoutRace() int {
	return BaseArmorClass +
		c.armor.ArmorClassBonus(c) +
		c.ItemArmorClassBonus() +
		c.class.ArmorClassBonus(c)
}
