package todo

import (
	"strings"

	"github.com/rogersnm/rptodo/internal/model"
)

// Search returns the tasks whose description contains query, ignoring
// case, in collection order.
func (s *Service) Search(query string) ([]model.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var results []model.Task
	for _, t := range tasks {
		if matchesQuery(q, t.Description) {
			results = append(results, t)
		}
	}
	return results, nil
}

func matchesQuery(q, text string) bool {
	return strings.Contains(strings.ToLower(text), q)
}
