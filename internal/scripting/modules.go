package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.debug/info/warn/error(msg)
//	engine.entity.get_name/get_hp/get_ac/is_dead(id)
//	engine.combat.query_combatant(id) -> table or nil
//	engine.combat.attack(attacker_id, target_id, roll) -> table or nil, err
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "entity", m.entityModule(L))
	L.SetField(engine, "combat", m.combatModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logFn := range levels {
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func (m *Manager) entityModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	field := func(get func(*CombatantInfo) lua.LValue) lua.LGFunction {
		return func(L *lua.LState) int {
			info := m.combatant(L.CheckString(1))
			if info == nil {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(get(info))
			return 1
		}
	}
	L.SetField(mod, "get_name", L.NewFunction(field(func(c *CombatantInfo) lua.LValue { return lua.LString(c.Name) })))
	L.SetField(mod, "get_hp", L.NewFunction(field(func(c *CombatantInfo) lua.LValue { return lua.LNumber(c.HP) })))
	L.SetField(mod, "get_ac", L.NewFunction(field(func(c *CombatantInfo) lua.LValue { return lua.LNumber(c.AC) })))
	L.SetField(mod, "is_dead", L.NewFunction(field(func(c *CombatantInfo) lua.LValue { return lua.LBool(c.Dead) })))
	return mod
}

func (m *Manager) combatModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "query_combatant", L.NewFunction(func(L *lua.LState) int {
		info := m.combatant(L.CheckString(1))
		if info == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(CombatantTable(L, info))
		return 1
	}))
	L.SetField(mod, "attack", L.NewFunction(func(L *lua.LState) int {
		attacker := L.CheckString(1)
		target := L.CheckString(2)
		roll := L.CheckInt(3)
		if m.Attack == nil {
			L.Push(lua.LNil)
			return 1
		}
		res, err := m.Attack(attacker, target, roll)
		if err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(AttackTable(L, res))
		return 1
	}))
	return mod
}

func (m *Manager) combatant(id string) *CombatantInfo {
	if m.GetCombatant == nil {
		return nil
	}
	return m.GetCombatant(id)
}

// CombatantTable converts info to a Lua table with snake_case fields.
//
// Precondition: info must be non-nil.
func CombatantTable(L *lua.LState, info *CombatantInfo) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(info.ID))
	L.SetField(t, "name", lua.LString(info.Name))
	L.SetField(t, "race", lua.LString(info.Race))
	L.SetField(t, "class", lua.LString(info.Class))
	L.SetField(t, "level", lua.LNumber(info.Level))
	L.SetField(t, "experience", lua.LNumber(info.Experience))
	L.SetField(t, "hp", lua.LNumber(info.HP))
	L.SetField(t, "max_hp", lua.LNumber(info.MaxHP))
	L.SetField(t, "ac", lua.LNumber(info.AC))
	L.SetField(t, "dead", lua.LBool(info.Dead))
	return t
}

// AttackTable converts res to a Lua table with snake_case fields.
//
// Precondition: res must be non-nil.
func AttackTable(L *lua.LState, res *AttackInfo) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "attacker", lua.LString(res.Attacker))
	L.SetField(t, "target", lua.LString(res.Target))
	L.SetField(t, "roll", lua.LNumber(res.Roll))
	L.SetField(t, "total", lua.LNumber(res.Total))
	L.SetField(t, "ac", lua.LNumber(res.AC))
	L.SetField(t, "hit", lua.LBool(res.Hit))
	L.SetField(t, "critical", lua.LBool(res.Critical))
	L.SetField(t, "damage", lua.LNumber(res.Damage))
	L.SetField(t, "dead", lua.LBool(res.Dead))
	return t
}
