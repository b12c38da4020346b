package article

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Task is one record of a task file, decoded on its own so that a
// malformed record does not hide its siblings.
type Task struct {
	// Position is the 1-based index of the record in the file.
	Position int
	Metadata Metadata
	// Err is set when the record could not be decoded.
	Err error
}

// PlaceholderSlug is the slug substituted for a record without one.
func PlaceholderSlug(position int) string {
	return fmt.Sprintf("cover-%d", position)
}

// DecodeTasks reads a JSON array of metadata records.
// Only a document that is not a JSON array is an error; per-record decode
// failures are reported on the Task.
func DecodeTasks(r io.Reader) ([]Task, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]Task, len(raw))
	for i, msg := range raw {
		task := Task{Position: i + 1}
		if err := json.Unmarshal(msg, &task.Metadata); err != nil {
			task.Err = fmt.Errorf("record %d: %w", i+1, err)
		}
		tasks[i] = task
	}
	return tasks, nil
}

// LoadTasks reads a task file from disk.
func LoadTasks(path string) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tasks: %w", err)
	}
	defer f.Close()
	return DecodeTasks(f)
}

// WriteTasks writes records as an indented JSON array without HTML escaping,
// so non-Latin titles stay readable.
func WriteTasks(path string, records []Metadata) error {
	if records == nil {
		records = []Metadata{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
