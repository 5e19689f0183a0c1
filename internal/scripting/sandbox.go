// Package scripting provides a sandboxed GopherLua execution environment
// for scenario scripts. It has no dependency on game domain packages;
// all game interactions are injected via Manager callback fields.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// script execution when no override is configured.
const DefaultInstructionLimit = 100_000

// countingContext is a context.Context that cancels itself after Done() has
// been called limit times. GopherLua's mainLoopWithContext calls Done() once
// per opcode, making this an exact instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

// Done returns the underlying cancellation channel. Each call decrements the
// remaining counter; when it reaches zero the cancel function fires,
// terminating the Lua VM on the next opcode boundary.
func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context that cancels after limit calls to Done().
// Precondition: limit > 0.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{
		Context:   base,
		cancel:    cancel,
		remaining: rem,
	}, cancel
}

// effectiveLimit maps a non-positive limit to DefaultInstructionLimit.
func effectiveLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}

// setBudget installs a fresh instruction budget of limit opcodes on L.
//
// Postcondition: the returned cancel func releases the budget's context.
func setBudget(L *lua.LState, limit int) context.CancelFunc {
	ctx, cancel := newCountingContext(limit)
	L.SetContext(ctx)
	return cancel
}

// removedGlobals are base-library functions scenario scripts may not call.
// Scripts report through engine.log rather than print.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require", "print"}

// NewSandboxedState returns an LState with only the base, table, string, and
// math libraries, removedGlobals cleared, string.rep removed, and an initial
// budget of instLimit opcodes. 0 uses DefaultInstructionLimit.
//
// Postcondition: The caller owns the LState and must Close it.
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	if str, ok := L.GetGlobal(lua.StringLibName).(*lua.LTable); ok {
		str.RawSetString("rep", lua.LNil)
	}

	setBudget(L, effectiveLimit(instLimit))
	return L
}
