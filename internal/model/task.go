package model

import (
	"fmt"
	"strings"
)

const (
	MinPriority     = 1
	MaxPriority     = 3
	DefaultPriority = 2
)

// Task is a single to-do record. The JSON tags are the on-disk field names.
type Task struct {
	ID          string `json:"uuid" yaml:"uuid"`
	Description string `json:"Description" yaml:"description"`
	Priority    int    `json:"Priority" yaml:"priority"`
	Done        bool   `json:"Done" yaml:"done"`
}

func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("task description is required")
	}
	return ValidatePriority(t.Priority)
}

func ValidatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return fmt.Errorf("invalid priority %d: must be between %d and %d", p, MinPriority, MaxPriority)
	}
	return nil
}

// FormatPriority renders a priority as "P1".."P3".
func FormatPriority(p int) string {
	return fmt.Sprintf("P%d", p)
}

// NormalizeDescription joins words with single spaces and guarantees exactly
// one terminating period. Returns "" when there is no text.
func NormalizeDescription(parts []string) string {
	var words []string
	for _, p := range parts {
		words = append(words, strings.Fields(p)...)
	}
	text := strings.TrimRight(strings.Join(words, " "), ". ")
	if text == "" {
		return ""
	}
	return text + "."
}
