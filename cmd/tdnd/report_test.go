package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tdnd/internal/game/character"
	"github.com/cory-johannsen/tdnd/internal/game/combat"
	"github.com/cory-johannsen/tdnd/internal/scenario"
)

func TestWriteReport(t *testing.T) {
	r := &scenario.Report{
		Scenario: "duel",
		Attacks: []scenario.AttackRecord{
			{AttackerID: "a", TargetID: "b", AttackResult: combat.AttackResult{Roll: 10, AttackTotal: 10, TargetAC: 10}},
			{AttackerID: "a", TargetID: "b", AttackResult: combat.AttackResult{Roll: 20, AttackTotal: 20, TargetAC: 10, Hit: true, Critical: true, DamageDealt: 6, TargetDead: true}},
			{AttackerID: "b", TargetID: "a", SkipReason: scenario.SkipAttackerDead, AttackResult: combat.AttackResult{Roll: 18}},
		},
		Combatants: []scenario.CombatantSummary{
			{ID: "a", Name: "Alice", Race: character.RaceHuman, Class: character.ClassPeasant, Level: 1, Experience: 10, HitPoints: 5, ArmorClass: 10},
			{ID: "b", Name: "Bob", Race: character.RaceOrc, Class: character.ClassRogue, Level: 1, HitPoints: 5, Damage: 6, ArmorClass: 12, Dead: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "== duel: 1 hits, 1 misses, 1 skipped ==")
	assert.Contains(t, out, "critical, kill")
	assert.Contains(t, out, "skipped (attacker is dead)")
	assert.Contains(t, out, "miss")
	assert.Regexp(t, `Alice\s+human\s+peasant\s+1\s+10\s+5/5\s+10\s+alive`, out)
	assert.Regexp(t, `Bob\s+orc\s+rogue\s+1\s+0\s+-1/5\s+12\s+dead`, out)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "hit, flat-footed, scripted",
		outcome(scenario.AttackRecord{Scripted: true, AttackResult: combat.AttackResult{Hit: true, FlatFooted: true}}))
	assert.Equal(t, "miss", outcome(scenario.AttackRecord{}))
}
