// Package script reads recorded action sequences and replays them
// through the reducers.
//
// A script is a YAML sequence of action envelopes:
//
//	- type: ADD_TODO
//	  id: 0
//	  text: Learn Redux
//	- type: TOGGLE_TODO
//	  id: 0
//	- type: INCREMENT
//
// JSON arrays are valid YAML and decode the same way.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reducer"
)

// Decode parses a script. Unrecognized action types become
// reducer.Unknown and are replayed as no-ops.
func Decode(r io.Reader) ([]reducer.Action, error) {
	var envs []reducer.Envelope
	if err := yaml.NewDecoder(r).Decode(&envs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	actions := make([]reducer.Action, 0, len(envs))
	for _, e := range envs {
		actions = append(actions, e.Action())
	}
	return actions, nil
}

// Load decodes the script at path.
func Load(path string) ([]reducer.Action, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes actions in the format Decode reads.
func Encode(w io.Writer, actions []reducer.Action) error {
	envs := make([]reducer.Envelope, 0, len(actions))
	for _, a := range actions {
		envs = append(envs, reducer.EnvelopeOf(a))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(envs); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// Fold replays actions over state with reducer.Root.
func Fold(state model.State, actions []reducer.Action) model.State {
	for _, a := range actions {
		state = reducer.Root(state, a)
	}
	return state
}
