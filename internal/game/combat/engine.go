package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tdnd/internal/game/character"
)

// Engine resolves attacks and logs every result.
//
// Engine holds no per-attack state and is safe for concurrent use, provided
// no Character takes part in two attacks at once.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine that logs to logger.
//
// Precondition: logger must be non-nil.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Attack resolves one attack with ResolveAttack and logs the result at debug
// level. A kill is logged once, on the hit that drops the target.
//
// Precondition: attacker and target must be non-nil.
// Postcondition: Returns the AttackResult; res.Hit reports whether the attack landed.
func (e *Engine) Attack(roll int, attacker, target *character.Character) AttackResult {
	wasDead := target.IsDead()
	res := ResolveAttack(roll, attacker, target)
	e.logger.Debug("attack resolved",
		zap.String("attacker", res.Attacker),
		zap.String("target", res.Target),
		zap.Int("roll", res.Roll),
		zap.Int("attack_total", res.AttackTotal),
		zap.Int("target_ac", res.TargetAC),
		zap.Bool("flat_footed", res.FlatFooted),
		zap.Bool("hit", res.Hit),
		zap.Bool("critical", res.Critical),
		zap.Int("damage", res.Damage),
		zap.Int("damage_dealt", res.DamageDealt),
	)
	if res.Hit && res.TargetDead && !wasDead {
		e.logger.Info("combatant killed",
			zap.String("attacker", res.Attacker),
			zap.String("target", res.Target),
		)
	}
	return res
}
