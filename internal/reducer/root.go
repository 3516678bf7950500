package reducer

import "github.com/idilsaglam/tada/internal/model"

// Root combines Counter and Todos over the persisted app state.
func Root(state model.State, action Action) model.State {
	return model.State{
		Counter: Counter(state.Counter, action),
		Todos:   Todos(state.Todos, action),
	}
}
