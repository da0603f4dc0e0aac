package runtime

import (
	"github.com/dolthub/swiss"
)

// Environment is a single lexical scope: a name-to-value binding plus an
// optional link to the enclosing scope. The global scope is the root of
// the chain and is the only one backed by a swiss.Map — it is long-lived
// and can grow to hold every top-level declaration in a script, where a
// hash map with open addressing pays off. Block and call scopes are
// typically tiny and created/destroyed constantly, so they use a plain Go
// map instead of paying swiss's up-front bucket allocation.
type Environment struct {
	globals *swiss.Map[string, Value]
	values  map[string]Value
	outer   *Environment
}

// NewGlobals creates the root environment.
func NewGlobals() *Environment {
	return &Environment{globals: swiss.NewMap[string, Value](64)}
}

// NewEnclosed creates a child scope of outer.
func NewEnclosed(outer *Environment) *Environment {
	return &Environment{values: make(map[string]Value), outer: outer}
}

// Define binds name to value in this environment, shadowing (or, at global
// scope, replacing) any existing binding of the same name.
func (e *Environment) Define(name string, value Value) {
	if e.globals != nil {
		e.globals.Put(name, value)
		return
	}
	e.values[name] = value
}

// Get looks up name by walking the chain from this environment outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if env.globals != nil {
			if v, ok := env.globals.Get(name); ok {
				return v, true
			}
			continue
		}
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rebinds an existing name, walking the chain outward. It reports
// false if the name is bound nowhere in the chain.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.outer {
		if env.globals != nil {
			if _, ok := env.globals.Get(name); ok {
				env.globals.Put(name, value)
				return true
			}
			continue
		}
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return true
		}
	}
	return false
}

// ancestor walks distance hops up the chain.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.outer
	}
	return env
}

// GetAt reads name from the environment distance hops up the chain — the
// fast path used once the resolver has computed a hop distance.
func (e *Environment) GetAt(distance int, name string) (Value, bool) {
	return e.ancestor(distance).Get1(name)
}

// Get1 looks up name in exactly this environment, with no chain walk.
func (e *Environment) Get1(name string) (Value, bool) {
	if e.globals != nil {
		return e.globals.Get(name)
	}
	return e.values[name]
}

// AssignAt writes name in the environment distance hops up the chain.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	env := e.ancestor(distance)
	if env.globals != nil {
		env.globals.Put(name, value)
		return
	}
	env.values[name] = value
}
