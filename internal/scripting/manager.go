package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// globalScriptID is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no script VM is found.
const globalScriptID = "__global__"

// CombatantInfo is a snapshot of a combatant's state passed to Lua callbacks.
type CombatantInfo struct {
	ID         string
	Name       string
	Race       string
	Class      string
	Level      int
	Experience int
	HP         int
	MaxHP      int
	AC         int
	Dead       bool
}

// AttackInfo is the outcome of an attack passed to Lua hooks and returned by
// engine.combat.attack.
type AttackInfo struct {
	Attacker string
	Target   string
	Roll     int
	Total    int
	AC       int
	Hit      bool
	Critical bool
	Damage   int
	Dead     bool
}

// vm is one sandboxed LState and the budget applied to each execution.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per script and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook after all Load calls complete.
// Each VM is single-threaded; its mutex serializes calls into the same VM
// while different VMs run concurrently.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	GetCombatant func(id string) *CombatantInfo
	Attack       func(attackerID, targetID string, roll int) (*AttackInfo, error)
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		logger: logger,
	}
}

// Load creates a sandboxed VM for scriptID, registers the engine.* modules,
// then executes the Lua file at path.
//
// Precondition: scriptID must be non-empty; path must be a readable file.
// Postcondition: the VM is registered, replacing any previous VM for scriptID;
// returns error on Lua load failure.
func (m *Manager) Load(scriptID, path string, instLimit int) error {
	if scriptID == "" {
		return errors.New("scripting: script ID must not be empty")
	}
	return m.loadInto(scriptID, []string{path}, instLimit)
}

// LoadGlobal creates the "__global__" VM from every *.lua file in scriptDir,
// executed in lexicographic order. Its hooks serve as a CallHook fallback for
// any script ID.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)
	return m.loadInto(globalScriptID, luaFiles, instLimit)
}

func (m *Manager) loadInto(key string, files []string, instLimit int) error {
	limit := effectiveLimit(instLimit)
	L := NewSandboxedState(limit)
	m.RegisterModules(L)

	for _, path := range files {
		cancel := setBudget(L, limit)
		err := L.DoFile(path)
		cancel()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.vms[key]; ok {
		old.close()
	}
	m.vms[key] = &vm{L: L, limit: limit}
	m.mu.Unlock()
	return nil
}

// CallHook calls the named Lua global function in scriptID's VM. If the script
// has no VM, or its VM does not define hook, the __global__ VM is tried as a
// fallback. Returns (LNil, nil) if the hook is not defined or no VM exists.
// Lua runtime errors, including an exhausted instruction budget, are logged
// at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scriptID, hook string, args ...lua.LValue) (lua.LValue, error) {
	return m.dispatch(scriptID, hook, func(*lua.LState) []lua.LValue { return args })
}

// CallAttackHook calls hook with info converted to a Lua table by the VM that
// runs it. Dispatch and error handling follow CallHook.
//
// Precondition: info must be non-nil.
func (m *Manager) CallAttackHook(scriptID, hook string, info *AttackInfo) (lua.LValue, error) {
	return m.dispatch(scriptID, hook, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{AttackTable(L, info)}
	})
}

func (m *Manager) dispatch(scriptID, hook string, args func(*lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	own := m.vms[scriptID]
	global := m.vms[globalScriptID]
	m.mu.RUnlock()

	if own == nil && global == nil {
		m.logger.Debug("scripting: no VM for script",
			zap.String("script", scriptID),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	for _, v := range []*vm{own, global} {
		if v == nil {
			continue
		}
		if ret, found := m.call(v, scriptID, hook, args); found {
			return ret, nil
		}
	}
	return lua.LNil, nil
}

// call runs hook in v under a fresh instruction budget.
//
// Postcondition: found is false iff v does not define hook.
func (m *Manager) call(v *vm, scriptID, hook string, args func(*lua.LState) []lua.LValue) (lua.LValue, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return lua.LNil, false
	}

	fn := v.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, false
	}

	cancel := setBudget(v.L, v.limit)
	defer cancel()
	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args(v.L)...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", scriptID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, true
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, true
}

// Close releases every VM.
//
// Postcondition: subsequent CallHook calls return LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, v := range m.vms {
		v.close()
		delete(m.vms, key)
	}
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L != nil {
		v.L.Close()
		v.L = nil
	}
}
