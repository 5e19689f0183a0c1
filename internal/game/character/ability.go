package character

import "fmt"

// Ability score bounds and the score every ability starts at.
const (
	MinAbilityScore     = 1
	MaxAbilityScore     = 20
	DefaultAbilityScore = 10
)

// Ability identifies one of the six ability scores.
type Ability string

const (
	Strength     Ability = "strength"
	Dexterity    Ability = "dexterity"
	Constitution Ability = "constitution"
	Wisdom       Ability = "wisdom"
	Intelligence Ability = "intelligence"
	Charisma     Ability = "charisma"
)

// AllAbilities lists every Ability in display order.
var AllAbilities = []Ability{Strength, Dexterity, Constitution, Wisdom, Intelligence, Charisma}

// Short returns the three-letter label for the ability.
func (a Ability) Short() string {
	switch a {
	case Strength:
		return "STR"
	case Dexterity:
		return "DEX"
	case Constitution:
		return "CON"
	case Wisdom:
		return "WIS"
	case Intelligence:
		return "INT"
	case Charisma:
		return "CHA"
	default:
		return fmt.Sprintf("<%s>", string(a))
	}
}

// AbilityScore is a single ability value clamped to [MinAbilityScore, MaxAbilityScore].
//
// The zero value is not clamped; use NewAbilityScore or Set.
type AbilityScore struct {
	score int
}

// NewAbilityScore returns an AbilityScore holding v clamped to [1, 20].
func NewAbilityScore(v int) AbilityScore {
	var a AbilityScore
	a.Set(v)
	return a
}

// Score returns the current clamped score.
func (a AbilityScore) Score() int { return a.score }

// Set stores v clamped to [1, 20].
//
// Postcondition: MinAbilityScore <= Score() <= MaxAbilityScore.
func (a *AbilityScore) Set(v int) {
	switch {
	case v < MinAbilityScore:
		v = MinAbilityScore
	case v > MaxAbilityScore:
		v = MaxAbilityScore
	}
	a.score = v
}

// Add adjusts the score by delta, clamping the result.
func (a *AbilityScore) Add(delta int) {
	a.Set(a.score + delta)
}

// Modifier returns score/2 - 5 using truncating integer division.
// Scores are always >= 1, so truncation and floor agree.
func (a AbilityScore) Modifier() int {
	return a.score/2 - 5
}

// String renders the score with its signed modifier, e.g. "14 (+2)".
func (a AbilityScore) String() string {
	return fmt.Sprintf("%d (%+d)", a.score, a.Modifier())
}

// AbilityScores holds raw ability values supplied at character creation.
// Values are clamped when copied into an AbilitySet.
type AbilityScores struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Constitution int `yaml:"constitution"`
	Wisdom       int `yaml:"wisdom"`
	Intelligence int `yaml:"intelligence"`
	Charisma     int `yaml:"charisma"`
}

// DefaultAbilityScores returns scores of 10 in every ability.
func DefaultAbilityScores() AbilityScores {
	return AbilityScores{
		Strength:     DefaultAbilityScore,
		Dexterity:    DefaultAbilityScore,
		Constitution: DefaultAbilityScore,
		Wisdom:       DefaultAbilityScore,
		Intelligence: DefaultAbilityScore,
		Charisma:     DefaultAbilityScore,
	}
}

// AbilitySet is the six clamped ability scores owned by one Character.
type AbilitySet struct {
	Strength     AbilityScore
	Dexterity    AbilityScore
	Constitution AbilityScore
	Wisdom       AbilityScore
	Intelligence AbilityScore
	Charisma     AbilityScore
}

// NewAbilitySet clamps each of scores into a new AbilitySet.
func NewAbilitySet(scores AbilityScores) AbilitySet {
	return AbilitySet{
		Strength:     NewAbilityScore(scores.Strength),
		Dexterity:    NewAbilityScore(scores.Dexterity),
		Constitution: NewAbilityScore(scores.Constitution),
		Wisdom:       NewAbilityScore(scores.Wisdom),
		Intelligence: NewAbilityScore(scores.Intelligence),
		Charisma:     NewAbilityScore(scores.Charisma),
	}
}

// Get returns a pointer to the score for ability, or nil for an unknown ability.
func (s *AbilitySet) Get(ability Ability) *AbilityScore {
	switch ability {
	case Strength:
		return &s.Strength
	case Dexterity:
		return &s.Dexterity
	case Constitution:
		return &s.Constitution
	case Wisdom:
		return &s.Wisdom
	case Intelligence:
		return &s.Intelligence
	case Charisma:
		return &s.Charisma
	default:
		return nil
	}
}

// Modifier returns the modifier of ability, or 0 for an unknown ability.
func (s *AbilitySet) Modifier(ability Ability) int {
	if a := s.Get(ability); a != nil {
		return a.Modifier()
	}
	return 0
}

// Adjust adds each delta in mods to the named ability. Unknown abilities are ignored.
func (s *AbilitySet) Adjust(mods map[Ability]int) {
	for ability, delta := range mods {
		if a := s.Get(ability); a != nil {
			a.Add(delta)
		}
	}
}

// Scores returns the current values as plain integers.
func (s AbilitySet) Scores() AbilityScores {
	return AbilityScores{
		Strength:     s.Strength.Score(),
		Dexterity:    s.Dexterity.Score(),
		Constitution: s.Constitution.Score(),
		Wisdom:       s.Wisdom.Score(),
		Intelligence: s.Intelligence.Score(),
		Charisma:     s.Charisma.Score(),
	}
}
