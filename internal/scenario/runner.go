package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tdnd/internal/game/character"
	"github.com/cory-johannsen/tdnd/internal/game/combat"
	"github.com/cory-johannsen/tdnd/internal/game/inventory"
	"github.com/cory-johannsen/tdnd/internal/observability"
	"github.com/cory-johannsen/tdnd/internal/scripting"
)

// Lua hooks called during a run. Each is optional.
const (
	HookStart  = "on_start"
	HookHit    = "on_hit"
	HookMiss   = "on_miss"
	HookFinish = "on_finish"
)

// Skip reasons recorded for attacks that were not resolved.
const (
	SkipAttackerDead = "attacker is dead"
	SkipTargetDead   = "target is dead"
)

// AttackRecord is one entry in a Report.
type AttackRecord struct {
	combat.AttackResult
	AttackerID string
	TargetID   string
	// Scripted marks attacks issued by engine.combat.attack.
	Scripted bool
	// SkipReason is non-empty when the attack was not resolved.
	SkipReason string
}

// Skipped reports whether the attack was not resolved.
func (a AttackRecord) Skipped() bool { return a.SkipReason != "" }

// CombatantSummary is a combatant's state at the end of a run.
type CombatantSummary struct {
	ID         string
	Name       string
	Race       character.RaceID
	Class      character.ClassID
	Level      int
	Experience int
	HitPoints  int
	Damage     int
	ArmorClass int
	Dead       bool
}

// Report is the outcome of one scenario run.
type Report struct {
	Scenario   string
	Attacks    []AttackRecord
	Combatants []CombatantSummary
}

// Hits returns the number of resolved attacks that hit.
func (r *Report) Hits() int {
	n := 0
	for _, a := range r.Attacks {
		if !a.Skipped() && a.Hit {
			n++
		}
	}
	return n
}

// Misses returns the number of resolved attacks that missed.
func (r *Report) Misses() int {
	n := 0
	for _, a := range r.Attacks {
		if !a.Skipped() && !a.Hit {
			n++
		}
	}
	return n
}

// SkippedCount returns the number of attacks that were not resolved.
func (r *Report) SkippedCount() int {
	n := 0
	for _, a := range r.Attacks {
		if a.Skipped() {
			n++
		}
	}
	return n
}

// Survivors returns the IDs of living combatants in declaration order.
func (r *Report) Survivors() []string {
	var out []string
	for _, c := range r.Combatants {
		if !c.Dead {
			out = append(out, c.ID)
		}
	}
	return out
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithScriptDir loads every Lua file in dir as shared hooks for each run.
func WithScriptDir(dir string) RunnerOption {
	return func(r *Runner) { r.scriptDir = dir }
}

// WithInstructionLimit caps Lua opcodes per hook call. 0 uses the scripting default.
func WithInstructionLimit(limit int) RunnerOption {
	return func(r *Runner) { r.instLimit = limit }
}

// Runner executes scenarios against an equipment catalog.
//
// Runner is safe for concurrent Run calls; each run owns its characters and
// its Lua VMs.
type Runner struct {
	registry  *inventory.Registry
	engine    *combat.Engine
	logger    *zap.Logger
	scriptDir string
	instLimit int
}

// NewRunner creates a Runner.
//
// Precondition: registry and logger must be non-nil.
// Postcondition: Returns a non-nil Runner.
func NewRunner(registry *inventory.Registry, logger *zap.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: registry,
		engine:   combat.NewEngine(logger),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run builds the scenario's characters and resolves its attacks in order.
// Attacks by or on a dead combatant are skipped and recorded. When scripts
// are configured, on_start runs before the first attack, on_hit or on_miss
// after each resolved attack, and on_finish after the last.
//
// Precondition: s passed Validate.
// Postcondition: Returns a complete Report, or an error if the build fails,
// a script fails to load, or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Report, error) {
	roster, err := s.Build(r.registry)
	if err != nil {
		return nil, err
	}
	logger := observability.ForScenario(r.logger, s.Name)
	logger.Info("scenario started",
		zap.Int("combatants", len(s.Combatants)),
		zap.Int("attacks", len(s.Attacks)),
	)

	report := &Report{Scenario: s.Name}
	scripts, err := r.loadScripts(s, roster, report, logger)
	if err != nil {
		return nil, err
	}
	if scripts != nil {
		defer scripts.Close()
		scripts.CallHook(s.Name, HookStart) //nolint:errcheck
	}

	for i, a := range s.Attacks {
		if err := ctx.Err(); err != nil {
			logger.Warn("scenario cancelled", zap.Int("attack", i), zap.Error(err))
			return nil, fmt.Errorf("scenario %q cancelled at attack %d: %w", s.Name, i, err)
		}
		rec, err := r.resolve(roster, a.Attacker, a.Target, a.Roll)
		if err != nil {
			return nil, fmt.Errorf("scenario %q attack %d: %w", s.Name, i, err)
		}
		report.Attacks = append(report.Attacks, rec)
		if rec.Skipped() {
			logger.Debug("attack skipped",
				zap.String("attacker", a.Attacker),
				zap.String("target", a.Target),
				zap.String("reason", rec.SkipReason),
			)
			continue
		}
		if scripts != nil {
			hook := HookMiss
			if rec.Hit {
				hook = HookHit
			}
			scripts.CallAttackHook(s.Name, hook, attackInfo(rec)) //nolint:errcheck
		}
	}

	if scripts != nil {
		scripts.CallHook(s.Name, HookFinish) //nolint:errcheck
	}

	for _, id := range roster.IDs() {
		c, _ := roster.Get(id)
		report.Combatants = append(report.Combatants, summarize(id, c))
	}
	logger.Info("scenario finished",
		zap.Int("hits", report.Hits()),
		zap.Int("misses", report.Misses()),
		zap.Int("skipped", report.SkippedCount()),
		zap.Strings("survivors", report.Survivors()),
	)
	return report, nil
}

// resolve runs one attack between roster members, or records why it was skipped.
func (r *Runner) resolve(roster *Roster, attackerID, targetID string, roll int) (AttackRecord, error) {
	attacker, ok := roster.Get(attackerID)
	if !ok {
		return AttackRecord{}, fmt.Errorf("unknown combatant %q", attackerID)
	}
	target, ok := roster.Get(targetID)
	if !ok {
		return AttackRecord{}, fmt.Errorf("unknown combatant %q", targetID)
	}

	rec := AttackRecord{AttackerID: attackerID, TargetID: targetID}
	switch {
	case attacker.IsDead():
		rec.SkipReason = SkipAttackerDead
	case target.IsDead():
		rec.SkipReason = SkipTargetDead
	}
	if rec.Skipped() {
		rec.Attacker, rec.Target, rec.Roll = attacker.Name, target.Name, roll
		return rec, nil
	}
	rec.AttackResult = r.engine.Attack(roll, attacker, target)
	return rec, nil
}

// loadScripts returns a Manager with the shared and scenario scripts loaded,
// or nil when neither is configured. Scripted attacks are appended to report
// and do not fire hooks.
func (r *Runner) loadScripts(s *Scenario, roster *Roster, report *Report, logger *zap.Logger) (*scripting.Manager, error) {
	path := s.ScriptPath()
	if path == "" && r.scriptDir == "" {
		return nil, nil
	}

	mgr := scripting.NewManager(logger)
	if r.scriptDir != "" {
		if err := mgr.LoadGlobal(r.scriptDir, r.instLimit); err != nil {
			mgr.Close()
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	if path != "" {
		if err := mgr.Load(s.Name, path, r.instLimit); err != nil {
			mgr.Close()
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}

	mgr.GetCombatant = func(id string) *scripting.CombatantInfo {
		c, ok := roster.Get(id)
		if !ok {
			return nil
		}
		sum := summarize(id, c)
		return &scripting.CombatantInfo{
			ID:         sum.ID,
			Name:       sum.Name,
			Race:       string(sum.Race),
			Class:      string(sum.Class),
			Level:      sum.Level,
			Experience: sum.Experience,
			HP:         c.RemainingHitPoints(),
			MaxHP:      sum.HitPoints,
			AC:         sum.ArmorClass,
			Dead:       sum.Dead,
		}
	}
	mgr.Attack = func(attackerID, targetID string, roll int) (*scripting.AttackInfo, error) {
		if roll < 1 || roll > 20 {
			return nil, fmt.Errorf("roll must be 1-20, got %d", roll)
		}
		if attackerID == targetID {
			return nil, fmt.Errorf("%q cannot attack itself", attackerID)
		}
		rec, err := r.resolve(roster, attackerID, targetID, roll)
		if err != nil {
			return nil, err
		}
		rec.Scripted = true
		report.Attacks = append(report.Attacks, rec)
		if rec.Skipped() {
			return nil, fmt.Errorf("attack skipped: %s", rec.SkipReason)
		}
		return attackInfo(rec), nil
	}
	return mgr, nil
}

func attackInfo(rec AttackRecord) *scripting.AttackInfo {
	return &scripting.AttackInfo{
		Attacker: rec.AttackerID,
		Target:   rec.TargetID,
		Roll:     rec.Roll,
		Total:    rec.AttackTotal,
		AC:       rec.TargetAC,
		Hit:      rec.Hit,
		Critical: rec.Critical,
		Damage:   rec.DamageDealt,
		Dead:     rec.TargetDead,
	}
}

func summarize(id string, c *character.Character) CombatantSummary {
	return CombatantSummary{
		ID:         id,
		Name:       c.Name,
		Race:       c.RaceID(),
		Class:      c.ClassID(),
		Level:      c.Level(),
		Experience: c.Experience(),
		HitPoints:  c.HitPoints(),
		Damage:     c.CurrentDamage(),
		ArmorClass: c.ArmorClass(),
		Dead:       c.IsDead(),
	}
}
