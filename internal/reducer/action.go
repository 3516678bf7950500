package reducer

// ActionType is the string discriminator carried by every action.
type ActionType string

const (
	TypeIncrement  ActionType = "INCREMENT"
	TypeDecrement  ActionType = "DECREMENT"
	TypeAddTodo    ActionType = "ADD_TODO"
	TypeToggleTodo ActionType = "TOGGLE_TODO"
)

// Action is an immutable description of a requested state change.
type Action interface {
	Type() ActionType
}

// ===== COUNTER ACTIONS =====

type Increment struct{}
type Decrement struct{}

// ===== TODO ACTIONS =====

type AddTodo struct {
	ID   int
	Text string
}

type ToggleTodo struct {
	ID int
}

// Unknown carries any discriminator no reducer recognizes. Reducers treat
// it as a no-op, so a Kind naming a known type reports Type() == "" rather
// than pass for the real action.
type Unknown struct {
	Kind ActionType
}

// Known reports whether t is one of the recognized discriminators.
func Known(t ActionType) bool {
	switch t {
	case TypeIncrement, TypeDecrement, TypeAddTodo, TypeToggleTodo:
		return true
	}
	return false
}

func (Increment) Type() ActionType  { return TypeIncrement }
func (Decrement) Type() ActionType  { return TypeDecrement }
func (AddTodo) Type() ActionType    { return TypeAddTodo }
func (ToggleTodo) Type() ActionType { return TypeToggleTodo }
func (u Unknown) Type() ActionType {
	if Known(u.Kind) {
		return ""
	}
	return u.Kind
}

// Envelope is the loosely typed wire form of an action:
// {"type": "ADD_TODO", "id": 0, "text": "Learn Redux"}.
// Fields that do not apply to the type are ignored.
type Envelope struct {
	Type ActionType `json:"type" yaml:"type"`
	ID   int        `json:"id,omitempty" yaml:"id,omitempty"`
	Text string     `json:"text,omitempty" yaml:"text,omitempty"`
}

// Action converts the envelope into its typed variant.
func (e Envelope) Action() Action {
	switch e.Type {
	case TypeIncrement:
		return Increment{}
	case TypeDecrement:
		return Decrement{}
	case TypeAddTodo:
		return AddTodo{ID: e.ID, Text: e.Text}
	case TypeToggleTodo:
		return ToggleTodo{ID: e.ID}
	}
	return Unknown{Kind: e.Type}
}

// EnvelopeOf is the inverse of Envelope.Action.
func EnvelopeOf(a Action) Envelope {
	switch a := a.(type) {
	case AddTodo:
		return Envelope{Type: TypeAddTodo, ID: a.ID, Text: a.Text}
	case ToggleTodo:
		return Envelope{Type: TypeToggleTodo, ID: a.ID}
	case nil:
		return Envelope{}
	}
	return Envelope{Type: a.Type()}
}
