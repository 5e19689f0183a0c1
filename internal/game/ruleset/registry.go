package ruleset

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/tdnd/internal/game/character"
)

var races = map[character.RaceID]character.Race{
	character.RaceHuman:    character.Human{},
	character.RaceOrc:      Orc{},
	character.RaceDwarf:    Dwarf{},
	character.RaceElf:      Elf{},
	character.RaceHalfling: Halfling{},
}

var classes = map[character.ClassID]character.Class{
	character.ClassPeasant: character.Peasant{},
	character.ClassFighter: Fighter{},
	character.ClassRogue:   Rogue{},
	character.ClassMonk:    Monk{},
	character.ClassPaladin: Paladin{},
}

// RaceByID returns the race with the given ID.
//
// Postcondition: Returns a non-nil Race, or a non-nil error for an unknown ID.
func RaceByID(id string) (character.Race, error) {
	r, ok := races[character.RaceID(id)]
	if !ok {
		return nil, fmt.Errorf("ruleset: unknown race %q", id)
	}
	return r, nil
}

// ClassByID returns the class with the given ID.
//
// Postcondition: Returns a non-nil Class, or a non-nil error for an unknown ID.
func ClassByID(id string) (character.Class, error) {
	c, ok := classes[character.ClassID(id)]
	if !ok {
		return nil, fmt.Errorf("ruleset: unknown class %q", id)
	}
	return c, nil
}

// Races returns every race ID in sorted order.
func Races() []string {
	out := make([]string, 0, len(races))
	for id := range races {
		out = append(out, string(id))
	}
	sort.Strings(out)
	return out
}

// Classes returns every class ID in sorted order.
func Classes() []string {
	out := make([]string, 0, len(classes))
	for id := range classes {
		out = append(out, string(id))
	}
	sort.Strings(out)
	return out
}
