// Package scripting runs the Lua scripts that produce simulated replies.
package scripting

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

//go:embed default_responder.lua
var defaultScript string

// callTimeout bounds a single handler call.
const callTimeout = 2 * time.Second

// Responder produces conversation greetings and simulated replies from a
// Lua script. It is safe for concurrent use; calls are serialized on the
// single Lua state.
type Responder struct {
	mu sync.Mutex
	vm *VM
}

// NewResponder loads the script at path, or the built-in script when path
// is empty.
func NewResponder(path string) (*Responder, error) {
	vm := NewVM()
	vm.RegisterModule("roomie", map[string]lua.LGFunction{
		"contains": luaContains,
		"lower":    luaLower,
	})

	var err error
	if path == "" {
		err = vm.LoadString("default_responder.lua", defaultScript)
	} else {
		err = vm.LoadScript(path)
	}
	if err != nil {
		vm.Close()
		return nil, err
	}

	for _, fn := range []string{"greeting", "reply"} {
		if !vm.HasHandler(fn) {
			vm.Close()
			return nil, fmt.Errorf("reply script: missing %s handler", fn)
		}
	}
	return &Responder{vm: vm}, nil
}

// Greeting returns the seeded exchange of a new conversation of kind: the
// opening line and the contact's acknowledgement. The acknowledgement is
// empty when the script has no acknowledge handler or returns nothing.
func (r *Responder) Greeting(kind, contact, title string) (opener, ack string, err error) {
	opener, err = r.call("greeting", kind, contact, title)
	if err != nil {
		return "", "", err
	}
	if !r.has("acknowledge") {
		return opener, "", nil
	}
	ack, err = r.call("acknowledge", kind, contact, title)
	if err != nil {
		return "", "", err
	}
	return opener, ack, nil
}

func (r *Responder) has(fn string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vm != nil && r.vm.HasHandler(fn)
}

// Reply returns the contact's simulated answer to text.
func (r *Responder) Reply(kind, contact, text string) (string, error) {
	return r.call("reply", kind, contact, text)
}

func (r *Responder) call(fn string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.vm == nil {
		return "", fmt.Errorf("responder closed")
	}
	out, err := r.vm.CallHandler(ctx, fn, args...)
	if err != nil {
		LogError(fn, err)
		return "", err
	}
	return out, nil
}

// Close releases the Lua state.
func (r *Responder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.vm != nil {
		r.vm.Close()
		r.vm = nil
	}
}

// luaContains reports whether s contains sub, ignoring case.
func luaContains(L *lua.LState) int {
	s := L.CheckString(1)
	sub := L.CheckString(2)
	L.Push(lua.LBool(strings.Contains(strings.ToLower(s), strings.ToLower(sub))))
	return 1
}

func luaLower(L *lua.LState) int {
	L.Push(lua.LString(strings.ToLower(L.CheckString(1))))
	return 1
}
