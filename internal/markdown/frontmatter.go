package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rogersnm/rptodo/internal/model"
	"gopkg.in/yaml.v3"
)

// taskMeta is the frontmatter block of a task document. The description
// is the document body.
type taskMeta struct {
	UUID     string `yaml:"uuid"`
	Priority int    `yaml:"priority"`
	Done     bool   `yaml:"done"`
}

// MarshalTask renders t as YAML frontmatter followed by its description.
func MarshalTask(t model.Task) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(taskMeta{UUID: t.ID, Priority: t.Priority, Done: t.Done})
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	if t.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Description)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ParseTask reads a document written by MarshalTask. Body lines are
// joined with spaces since descriptions are single-line.
func ParseTask(r io.Reader) (model.Task, error) {
	var meta taskMeta
	body, err := frontmatter.MustParse(r, &meta)
	if err != nil {
		return model.Task{}, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return model.Task{
		ID:          meta.UUID,
		Description: strings.Join(strings.Fields(string(body)), " "),
		Priority:    meta.Priority,
		Done:        meta.Done,
	}, nil
}
