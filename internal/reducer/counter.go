package reducer

// DefaultCounter is the counter value when no state exists yet.
// It is also int's zero value, so an unset field already holds it.
const DefaultCounter = 0

// Counter returns the next counter value for action. Actions other than
// Increment and Decrement leave state as is.
func Counter(state int, action Action) int {
	switch action.(type) {
	case Increment:
		return state + 1
	case Decrement:
		return state - 1
	}
	return state
}
