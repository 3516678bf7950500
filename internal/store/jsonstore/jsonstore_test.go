package jsonstore

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/tada/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "todos.json"))
	if err != nil {
		t.Fatal(err)
	}
	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if st.Counter != 0 || len(st.Todos) != 0 {
		t.Errorf("Expected zero state, got %+v", st)
	}
}

func TestSaveThenLoad(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "todos.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := model.State{
		Counter: -3,
		Todos: []model.Todo{
			{ID: 0, Text: "Learn Redux"},
			{ID: 1, Text: "Go shopping", Completed: true},
		},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s, _ := New(path)
	if err := s.Save(model.State{}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"todos": []`) {
		t.Errorf("Expected empty todos array, got %s", b)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(filepath.Join(dir, "todos.json"))
	for i := 0; i < 3; i++ {
		if err := s.Save(model.State{Counter: i}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only todos.json, found %d entries", len(entries))
	}
}

func TestSavePreservesFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s, _ := New(path)
	if err := s.Save(model.State{}); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(model.State{Counter: 1}); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o600 {
		t.Errorf("Expected mode 0600 kept, got %o", got)
	}
}

func TestSaveNewFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s, _ := New(path)
	if err := s.Save(model.State{}); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Errorf("Expected mode 0644 for a new file, got %o", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := New(path)
	if _, err := s.Load(); err == nil || !strings.HasPrefix(err.Error(), "json unmarshal:") {
		t.Errorf("Expected json unmarshal error, got %v", err)
	}
}

func TestNewDefaultsToWorkingDir(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(s.Path()) != DefaultFileName {
		t.Errorf("Expected default file name, got %s", s.Path())
	}
}
