package store

import (
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reducer"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatch(t *testing.T) {
	s := New(reducer.Root, model.State{}, quietLogger())

	s.Dispatch(reducer.AddTodo{ID: 0, Text: "Learn Redux"})
	s.Dispatch(reducer.Increment{})
	got := s.Dispatch(reducer.ToggleTodo{ID: 0})

	want := model.State{
		Counter: 1,
		Todos:   []model.Todo{{ID: 0, Text: "Learn Redux", Completed: true}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dispatch() = %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(s.State(), want) {
		t.Errorf("State() = %+v, want %+v", s.State(), want)
	}
}

func TestSubscribe(t *testing.T) {
	s := New(reducer.Counter, 0, quietLogger())

	var seen []int
	unsubscribe := s.Subscribe(func(n int) { seen = append(seen, n) })

	s.Dispatch(reducer.Increment{})
	s.Dispatch(reducer.Increment{})
	unsubscribe()
	unsubscribe()
	s.Dispatch(reducer.Decrement{})

	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Errorf("Expected [1 2], got %v", seen)
	}
	if s.State() != 1 {
		t.Errorf("Expected state 1, got %d", s.State())
	}
}

func TestSubscriberMayReadState(t *testing.T) {
	s := New(reducer.Counter, 0, quietLogger())
	var got int
	s.Subscribe(func(int) { got = s.State() })
	s.Dispatch(reducer.Increment{})
	if got != 1 {
		t.Errorf("Expected subscriber to read 1, got %d", got)
	}
}

func TestNilLoggerUsesDefault(t *testing.T) {
	s := New(reducer.Counter, 0, nil)
	if s.log == nil {
		t.Fatal("expected default logger")
	}
}

func TestConcurrentDispatch(t *testing.T) {
	s := New(reducer.Counter, 0, quietLogger())

	const workers, perWorker = 8, 250
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Dispatch(reducer.Increment{})
			}
		}()
	}
	wg.Wait()

	if got := s.State(); got != workers*perWorker {
		t.Errorf("Expected %d, got %d", workers*perWorker, got)
	}
}

func TestConcurrentSubscribersSeeOrderedStates(t *testing.T) {
	s := New(reducer.Counter, 0, quietLogger())

	var seen []int
	s.Subscribe(func(n int) { seen = append(seen, n) })

	const workers, perWorker = 8, 200
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Dispatch(reducer.Increment{})
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("Expected %d notifications, got %d", workers*perWorker, len(seen))
	}
	for i, n := range seen {
		if n != i+1 {
			t.Fatalf("notification %d carried %d; states arrived out of order", i, n)
		}
	}
}
