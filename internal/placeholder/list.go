package placeholder

// Type discriminates how a variable is filled in: free text or a pick from a
// fixed option list.
type Type string

const (
	TypeText   Type = "text"
	TypeOption Type = "option"
)

// TypeFromString maps a stored discriminant string to a Type. Anything
// unrecognized degrades to TypeText.
func TypeFromString(s string) Type {
	if s == string(TypeOption) {
		return TypeOption
	}
	return TypeText
}

// Variable is one editable slot of a prompt. Options may hold staged values
// even while Type is TypeText; they are dropped at persistence time, not
// here, so switching the type back and forth in the editor loses nothing.
type Variable struct {
	Name    string
	Type    Type
	Options []string
}

// Direction of a Move operation.
type Direction int

const (
	Up Direction = iota
	Down
)

// List is the ordered variable set being edited for one prompt. Position in
// the list is the only order the editor tracks; persisted order indices are
// stamped densely from it on save, so removing an item never leaves a gap.
type List struct {
	vars []Variable
}

func NewList(vars ...Variable) *List {
	l := &List{}
	l.vars = append(l.vars, vars...)
	return l
}

func (l *List) Len() int {
	return len(l.vars)
}

// Variables returns a copy of the current sequence in order.
func (l *List) Variables() []Variable {
	out := make([]Variable, len(l.vars))
	copy(out, l.vars)
	return out
}

// Append adds a variable at the end of the list.
func (l *List) Append(v Variable) {
	l.vars = append(l.vars, v)
}

// Remove deletes the variable at i and closes the gap. Out-of-range indices
// are a no-op.
func (l *List) Remove(i int) {
	if i < 0 || i >= len(l.vars) {
		return
	}
	l.vars = append(l.vars[:i], l.vars[i+1:]...)
}

// Move swaps the variable at i with its neighbor. Moving past either end is
// a no-op, not an error.
func (l *List) Move(i int, d Direction) {
	j := i - 1
	if d == Down {
		j = i + 1
	}
	if i < 0 || i >= len(l.vars) || j < 0 || j >= len(l.vars) {
		return
	}
	l.vars[i], l.vars[j] = l.vars[j], l.vars[i]
}

func (l *List) SetName(i int, name string) {
	if i < 0 || i >= len(l.vars) {
		return
	}
	l.vars[i].Name = name
}

// SetType changes the discriminant. Staged options are kept in memory even
// when switching away from TypeOption.
func (l *List) SetType(i int, t Type) {
	if i < 0 || i >= len(l.vars) {
		return
	}
	l.vars[i].Type = t
}

func (l *List) SetOptions(i int, options []string) {
	if i < 0 || i >= len(l.vars) {
		return
	}
	l.vars[i].Options = options
}

// AddOption appends an option value. Calling it on a non-option variable is
// tolerated as a no-op; the UI should prevent it but the model does not rely
// on that.
func (l *List) AddOption(i int, value string) {
	if !l.optionable(i) {
		return
	}
	l.vars[i].Options = append(l.vars[i].Options, value)
}

func (l *List) UpdateOption(i, j int, value string) {
	if !l.optionable(i) || j < 0 || j >= len(l.vars[i].Options) {
		return
	}
	l.vars[i].Options[j] = value
}

func (l *List) RemoveOption(i, j int) {
	if !l.optionable(i) || j < 0 || j >= len(l.vars[i].Options) {
		return
	}
	opts := l.vars[i].Options
	l.vars[i].Options = append(opts[:j], opts[j+1:]...)
}

func (l *List) optionable(i int) bool {
	return i >= 0 && i < len(l.vars) && l.vars[i].Type == TypeOption
}
