package scripting

import (
	"context"
	"fmt"
	"log"

	lua "github.com/yuin/gopher-lua"
)

// VM wraps a Lua state holding one handler table.
type VM struct {
	L        *lua.LState
	handlers *lua.LTable
}

// NewVM creates a new Lua VM with the standard libraries loaded.
func NewVM() *VM {
	L := lua.NewState(lua.Options{
		CallStackSize: 120,
		RegistrySize:  120 * 20,
	})

	return &VM{L: L}
}

// Close shuts down the Lua VM.
func (vm *VM) Close() {
	vm.L.Close()
}

// LoadScript loads and executes a Lua script file.
// The script is expected to return a table with handler functions.
func (vm *VM) LoadScript(path string) error {
	if err := vm.L.DoFile(path); err != nil {
		return fmt.Errorf("load script %s: %w", path, err)
	}
	return vm.bindHandlers(path)
}

// LoadString is LoadScript for a script held in memory.
func (vm *VM) LoadString(name, source string) error {
	if err := vm.L.DoString(source); err != nil {
		return fmt.Errorf("load script %s: %w", name, err)
	}
	return vm.bindHandlers(name)
}

// bindHandlers finds the handler table - either as the return value of the
// script or as a global named "responder".
func (vm *VM) bindHandlers(name string) error {
	top := vm.L.Get(-1)
	if tbl, ok := top.(*lua.LTable); ok {
		vm.L.Pop(1)
		vm.handlers = tbl
		return nil
	}

	g := vm.L.GetGlobal("responder")
	if tbl, ok := g.(*lua.LTable); ok {
		vm.handlers = tbl
		return nil
	}

	return fmt.Errorf("script %s: no handler table found", name)
}

// HasHandler checks if the handler table has a specific function.
func (vm *VM) HasHandler(funcName string) bool {
	if vm.handlers == nil {
		return false
	}
	_, ok := vm.handlers.RawGetString(funcName).(*lua.LFunction)
	return ok
}

// CallHandler calls a handler with string arguments and returns its string
// result. A handler that returns nil yields "". ctx bounds the run time of
// the script.
func (vm *VM) CallHandler(ctx context.Context, funcName string, args ...string) (string, error) {
	if vm.handlers == nil {
		return "", fmt.Errorf("no handler table loaded")
	}
	fn, ok := vm.handlers.RawGetString(funcName).(*lua.LFunction)
	if !ok {
		return "", fmt.Errorf("handler %s is not a function", funcName)
	}

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = lua.LString(a)
	}

	vm.L.SetContext(ctx)
	defer vm.L.RemoveContext()

	if err := vm.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, largs...); err != nil {
		return "", fmt.Errorf("call %s: %w", funcName, err)
	}

	ret := vm.L.Get(-1)
	vm.L.Pop(1)
	if ret == lua.LNil {
		return "", nil
	}
	return lua.LVAsString(ret), nil
}

// RegisterModule registers a table of functions as a Lua module.
func (vm *VM) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	mod := vm.L.NewTable()
	for fname, fn := range funcs {
		mod.RawSetString(fname, vm.L.NewFunction(fn))
	}
	vm.L.SetGlobal(name, mod)
}

// LogError logs a Lua error with context.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("Lua error [%s]: %v", context, err)
	}
}
