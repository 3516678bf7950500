package model

// Todo is a single task with its completion flag.
// ID is assigned by the caller; uniqueness is assumed, not checked.
type Todo struct {
	ID        int    `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// State is everything the CLI persists between runs.
type State struct {
	Counter int    `json:"counter" yaml:"counter"`
	Todos   []Todo `json:"todos" yaml:"todos"`
}

// NextID returns one past the largest ID in todos, or 0 for an empty list.
func NextID(todos []Todo) int {
	next := 0
	for _, t := range todos {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// Find returns the todo with the given id.
func Find(todos []Todo, id int) (Todo, bool) {
	for _, t := range todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// Stats counts completed and pending todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
