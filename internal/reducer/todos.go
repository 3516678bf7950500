package reducer

import "github.com/idilsaglam/tada/internal/model"

// Todos returns the next todo list for action. A nil state is the empty
// list. The input slice is never written to: AddTodo and ToggleTodo build
// a fresh slice, every other action returns state untouched.
func Todos(state []model.Todo, action Action) []model.Todo {
	switch a := action.(type) {
	case AddTodo:
		next := make([]model.Todo, len(state), len(state)+1)
		copy(next, state)
		return append(next, model.Todo{ID: a.ID, Text: a.Text, Completed: false})

	case ToggleTodo:
		if len(state) == 0 {
			return state
		}
		next := make([]model.Todo, len(state))
		for i, t := range state {
			if t.ID == a.ID {
				t.Completed = !t.Completed
			}
			next[i] = t
		}
		return next
	}
	return state
}
