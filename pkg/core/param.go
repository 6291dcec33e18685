package core

import "database/sql"

// Direction describes how a parameter travels through a stored
// procedure call.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
	DirInputOutput
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirOutput:
		return "output"
	case DirInputOutput:
		return "input-output"
	}
	return "input"
}

// Param is one stored-procedure call parameter. Parameters live for
// the duration of a single call; output values are readable through
// Out after the call returns.
type Param struct {
	name  string
	value any
	dir   Direction
	dest  *any
}

// Input constructs an input parameter. The value passes through to the
// driver as-is.
func Input(name string, value any) Param {
	return Param{name: name, value: value, dir: DirInput}
}

// InputOutput constructs an input-output parameter seeded with value.
func InputOutput(name string, value any) Param {
	dest := new(any)
	*dest = value
	return Param{name: name, value: value, dir: DirInputOutput, dest: dest}
}

// Output constructs an output parameter. Its value starts null.
func Output(name string) Param {
	return Param{name: name, dir: DirOutput, dest: new(any)}
}

// Name returns the parameter name.
func (p Param) Name() string { return p.name }

// Direction returns the parameter direction.
func (p Param) Direction() Direction { return p.dir }

// Out returns the value written back by the procedure for output and
// input-output parameters. It is null before the call completes and
// always null for input parameters.
func (p Param) Out() Value {
	if p.dest == nil {
		return Null()
	}
	return FromAny(*p.dest)
}

// Arg returns the argument handed to the driver. When named is true
// the parameter name travels with the argument via sql.Named; output
// directions attach an sql.Out holder so the driver can write back.
func (p Param) Arg(named bool) any {
	var v any
	switch p.dir {
	case DirOutput:
		v = sql.Out{Dest: p.dest}
	case DirInputOutput:
		v = sql.Out{Dest: p.dest, In: true}
	default:
		v = p.value
	}
	if named && p.name != "" {
		return sql.Named(p.name, v)
	}
	return v
}
