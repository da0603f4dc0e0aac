package runtime

import "fmt"

// Class is a Lox class: its name, an optional superclass (shared handle,
// possibly itself a subclass), and its own method table. Method lookup
// walks the class's table, then its superclass's, first match wins.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }

// FindMethod looks up name on c, falling back to the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods[name]; ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity reports the constructor's arity: the `init` method's, or zero if
// the class declares none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class (or an ancestor)
// declares an `init` method, runs it bound to the new instance.
func (c *Class) Call(interp Interp, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a live object: its class plus its own mutable field table.
// Fields shadow methods during Get, per spec.md §3.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (i *Instance) Type() string   { return "instance" }
func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }

// Get resolves a property read: fields win, then bound methods.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if fn, ok := i.Class.FindMethod(name); ok {
		return fn.Bind(i), true
	}
	return nil, false
}

// Set stores or overwrites a field.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}

var (
	_ Callable = (*Class)(nil)
	_ Value    = (*Instance)(nil)
)
