package pasci

import (
	"sort"
	"strings"
)

// Environment is the single flat namespace of a program run. Names are case
// sensitive.
type Environment struct {
	Entries map[string]Number
}

func NewEnvironment() *Environment {
	return &Environment{
		Entries: make(map[string]Number),
	}
}

func (e *Environment) Set(name string, val Number) {
	e.Entries[name] = val
}

func (e *Environment) Get(name string) (Number, bool) {
	val, ok := e.Entries[name]
	return val, ok
}

func (e *Environment) Len() int {
	return len(e.Entries)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.Entries))
	for name := range e.Entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (e *Environment) Merge(e2 *Environment) {
	for name, val := range e2.Entries {
		e.Entries[name] = val
	}
}

func (e *Environment) Copy() *Environment {
	e2 := NewEnvironment()
	e2.Merge(e)

	return e2
}

func (e *Environment) Reset() {
	e.Entries = make(map[string]Number)
}

func (e *Environment) String() string {
	var str strings.Builder
	str.WriteString("{")

	for i, name := range e.Names() {
		if i != 0 {
			str.WriteString(", ")
		}

		str.WriteString(name)
		str.WriteString(": ")
		str.WriteString(e.Entries[name].String())
	}
	str.WriteString("}")

	return str.String()
}
