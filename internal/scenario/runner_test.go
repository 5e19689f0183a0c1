package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tdnd/internal/scenario"
)

func newTestRunner(t testing.TB, opts ...scenario.RunnerOption) (*scenario.Runner, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return scenario.NewRunner(newRegistry(t), zap.New(core), opts...), logs
}

func brawl(attacks ...scenario.Attack) *scenario.Scenario {
	return &scenario.Scenario{
		Name:       "brawl",
		Combatants: []scenario.Combatant{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
		Attacks:    attacks,
	}
}

func hit(attacker, target string, roll int) scenario.Attack {
	return scenario.Attack{Attacker: attacker, Target: target, Roll: roll}
}

func TestRunner_Run_ResolvesInOrder(t *testing.T) {
	r, logs := newTestRunner(t)
	s := brawl(hit("a", "b", 10), hit("a", "b", 18), hit("a", "b", 20), hit("a", "b", 20))

	report, err := r.Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, report.Attacks, 4)

	assert.False(t, report.Attacks[0].Hit)
	assert.Equal(t, 1, report.Attacks[1].DamageDealt)
	assert.True(t, report.Attacks[2].Critical)
	assert.Equal(t, 2, report.Attacks[2].DamageDealt)
	assert.True(t, report.Attacks[3].TargetDead)
	assert.Equal(t, "Alice", report.Attacks[0].Attacker)
	assert.Equal(t, "b", report.Attacks[0].TargetID)

	assert.Equal(t, 3, report.Hits())
	assert.Equal(t, 1, report.Misses())
	assert.Equal(t, 0, report.SkippedCount())
	assert.Equal(t, []string{"a"}, report.Survivors())

	require.Len(t, report.Combatants, 2)
	assert.Equal(t, 30, report.Combatants[0].Experience)
	assert.Equal(t, 5, report.Combatants[1].Damage)
	assert.True(t, report.Combatants[1].Dead)

	started := logs.FilterMessage("scenario started").All()
	require.Len(t, started, 1)
	assert.Equal(t, "scenario", started[0].LoggerName)
	assert.Equal(t, "brawl", started[0].ContextMap()["scenario"])
	assert.Equal(t, 1, logs.FilterMessage("scenario finished").Len())
	assert.Equal(t, 1, logs.FilterMessage("combatant killed").Len())
	assert.Equal(t, 4, logs.FilterMessage("attack resolved").Len())
}

func TestRunner_Run_SkipsDeadCombatants(t *testing.T) {
	r, _ := newTestRunner(t)
	s := brawl(hit("a", "b", 20), hit("a", "b", 20), hit("a", "b", 20), hit("a", "b", 18), hit("b", "a", 18))

	report, err := r.Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, report.Attacks, 5)

	assert.Equal(t, scenario.SkipTargetDead, report.Attacks[3].SkipReason)
	assert.Equal(t, scenario.SkipAttackerDead, report.Attacks[4].SkipReason)
	assert.Equal(t, 2, report.SkippedCount())
	assert.Equal(t, 3, report.Hits())
	assert.Equal(t, 0, report.Misses())
	assert.Equal(t, 0, report.Combatants[0].Damage)
	assert.Equal(t, 30, report.Combatants[0].Experience)
}

func TestRunner_Run_BuildErrorPropagates(t *testing.T) {
	r, _ := newTestRunner(t)
	s := brawl(hit("a", "b", 10))
	s.Combatants[0].Armor = "mithril"

	_, err := r.Run(context.Background(), s)
	assert.ErrorContains(t, err, "unknown armor")
}

func TestRunner_Run_CancelledContext(t *testing.T) {
	r, logs := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, brawl(hit("a", "b", 10)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, logs.FilterMessage("scenario cancelled").Len())
}

func TestRunner_Run_ScenarioHooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brawl.lua"), []byte(`
		hits = 0
		misses = 0
		started = false

		function on_start()
			started = true
		end

		function on_hit(atk)
			hits = hits + 1
		end

		function on_miss(atk)
			misses = misses + 1
		end

		function on_finish()
			local res = engine.combat.attack("b", "a", 18)
			local a = engine.combat.query_combatant("a")
			engine.log.info("started=" .. tostring(started) ..
				" hits=" .. hits ..
				" misses=" .. misses ..
				" scripted_hit=" .. tostring(res.hit) ..
				" a_hp=" .. a.hp)
		end
	`), 0644))

	s := brawl(hit("a", "b", 10), hit("a", "b", 18))
	s.Script = filepath.Join(dir, "brawl.lua")

	r, logs := newTestRunner(t)
	report, err := r.Run(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, report.Attacks, 3)
	scripted := report.Attacks[2]
	assert.True(t, scripted.Scripted)
	assert.True(t, scripted.Hit)
	assert.Equal(t, "a", scripted.TargetID)
	assert.Equal(t, 1, report.Combatants[0].Damage)

	assert.Equal(t, 1, logs.FilterMessage("started=true hits=1 misses=1 scripted_hit=true a_hp=4").Len())
}

func TestRunner_Run_ScriptedAttackOnDeadTargetIsSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "finish.lua"), []byte(`
		function on_finish()
			local res, err = engine.combat.attack("a", "b", 18)
			engine.log.warn(err)
		end
	`), 0644))

	s := brawl(hit("a", "b", 20), hit("a", "b", 20), hit("a", "b", 20))
	s.Script = filepath.Join(dir, "finish.lua")

	r, logs := newTestRunner(t)
	report, err := r.Run(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, report.Attacks, 4)
	assert.True(t, report.Attacks[3].Scripted)
	assert.Equal(t, scenario.SkipTargetDead, report.Attacks[3].SkipReason)
	assert.Equal(t, 1, logs.FilterMessage("attack skipped: target is dead").Len())
}

func TestRunner_Run_GlobalScriptDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "announce.lua"), []byte(`
		function on_hit(atk)
			engine.log.info(engine.entity.get_name(atk.attacker) .. " hit " .. atk.target .. " for " .. atk.damage)
		end
	`), 0644))

	r, logs := newTestRunner(t, scenario.WithScriptDir(dir), scenario.WithInstructionLimit(1000))
	_, err := r.Run(context.Background(), brawl(hit("a", "b", 18)))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Alice hit b for 1").Len())
}

func TestRunner_Run_RunawayHookIsContained(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loop.lua"), []byte(`
		function on_start()
			while true do end
		end
	`), 0644))

	r, logs := newTestRunner(t, scenario.WithScriptDir(dir), scenario.WithInstructionLimit(500))
	report, err := r.Run(context.Background(), brawl(hit("a", "b", 18)))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Hits())
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestRunner_Run_ScriptLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.lua"), []byte(`function (`), 0644))

	s := brawl(hit("a", "b", 18))
	s.Script = filepath.Join(dir, "broken.lua")
	r, _ := newTestRunner(t)
	_, err := r.Run(context.Background(), s)
	assert.Error(t, err)
}

func TestProperty_Runner_AccountsForEveryAttack(t *testing.T) {
	r, _ := newTestRunner(t)
	rapid.Check(t, func(rt *rapid.T) {
		rolls := rapid.SliceOfN(rapid.IntRange(1, 20), 1, 20).Draw(rt, "rolls")
		var attacks []scenario.Attack
		for i, roll := range rolls {
			if i%2 == 0 {
				attacks = append(attacks, hit("a", "b", roll))
			} else {
				attacks = append(attacks, hit("b", "a", roll))
			}
		}
		report, err := r.Run(context.Background(), brawl(attacks...))
		require.NoError(rt, err)
		assert.Len(rt, report.Attacks, len(rolls))
		assert.Equal(rt, len(rolls), report.Hits()+report.Misses()+report.SkippedCount())
		assert.NotEmpty(rt, report.Survivors())
	})
}
