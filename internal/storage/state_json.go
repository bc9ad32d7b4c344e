// Package storage persists planner state under the user config
// directory and implements the export/import interchange document.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"studyplanner/internal/core/datemath"
	"studyplanner/internal/core/model"
	"studyplanner/internal/core/taskstore"
)

const stateFileName = "state.json"

// State is the persisted and exported document: both collections,
// wholesale. Sessions are stored in their merged-by-date form.
type State struct {
	Tasks    []model.Task    `json:"tasks"`
	Sessions []model.Session `json:"sessions"`
}

// LoadState reads planner state from disk. A missing file yields an
// empty state, not an error.
func LoadState(appName string) (State, error) {
	configPath, err := resolveConfigPath(appName, stateFileName)
	if err != nil {
		return State{}, err
	}
	return readState(configPath)
}

// SaveState writes planner state to disk.
func SaveState(appName string, state State) error {
	configPath, err := resolveConfigPath(appName, stateFileName)
	if err != nil {
		return err
	}
	return writeState(configPath, state)
}

func readState(path string) (State, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read state file: %w", err)
	}

	state, err := decodeState(rawData)
	if err != nil {
		return State{}, fmt.Errorf("state file %s: %w", path, err)
	}
	return state, nil
}

func writeState(path string, state State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state json: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Export writes the interchange document.
func Export(writer io.Writer, state State) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("export state: %w", err)
	}
	return nil
}

// Import parses and validates an interchange document. The returned
// state is only meant to replace the live collections after a nil
// error; on any failure the caller keeps its prior state untouched.
func Import(reader io.Reader) (State, error) {
	rawData, err := io.ReadAll(reader)
	if err != nil {
		return State{}, fmt.Errorf("read import: %w", err)
	}
	state, err := decodeState(rawData)
	if err != nil {
		return State{}, fmt.Errorf("import: %w", err)
	}
	return state, nil
}

func decodeState(rawData []byte) (State, error) {
	var state State
	if err := json.Unmarshal(rawData, &state); err != nil {
		return State{}, fmt.Errorf("parse state json: %w", err)
	}
	if err := validateState(&state); err != nil {
		return State{}, err
	}
	return state, nil
}

// validateState rejects documents the planner could not operate on
// and normalizes open-ended fields the way the task form does.
func validateState(state *State) error {
	seen := make(map[string]struct{}, len(state.Tasks))
	for index := range state.Tasks {
		task := &state.Tasks[index]
		if task.ID == "" {
			return fmt.Errorf("task %d has no id: %w", index, model.ErrValidation)
		}
		if _, duplicate := seen[task.ID]; duplicate {
			return fmt.Errorf("duplicate task id %s: %w", task.ID, model.ErrValidation)
		}
		seen[task.ID] = struct{}{}
		if task.Name == "" {
			return fmt.Errorf("task %s has no name: %w", task.ID, model.ErrValidation)
		}
		if _, err := datemath.ParseISO(task.DueDate); err != nil {
			return fmt.Errorf("task %s: %w", task.ID, err)
		}
		if task.StudyMinutes < 0 {
			return fmt.Errorf("task %s has negative study minutes: %w", task.ID, model.ErrValidation)
		}
		if task.Category == "" {
			task.Category = taskstore.DefaultCategory
		}
		if !task.Priority.Valid() {
			task.Priority = model.PriorityLow
		}
		if !task.Recurrence.Valid() {
			task.Recurrence = model.RecurrenceNone
		}
	}

	for index, session := range state.Sessions {
		if session.Minutes < 1 {
			return fmt.Errorf("session %d minutes %d: %w", index, session.Minutes, model.ErrInvalidAmount)
		}
		if _, err := datemath.ParseISO(session.Date); err != nil {
			return fmt.Errorf("session %d: %w", index, err)
		}
	}
	return nil
}
