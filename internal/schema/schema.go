// Package schema publishes JSON Schemas for every shape the CLI prints.
package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"basegraph.app/pulse/internal/model"
	"basegraph.app/pulse/internal/output"
	"basegraph.app/pulse/internal/report"
	"github.com/invopop/jsonschema"
)

var ErrUnknownSchema = errors.New("unknown schema")

var shapes = map[string]func() any{
	"issue":             func() any { return model.Issue{} },
	"comment":           func() any { return model.Comment{} },
	"message":           func() any { return model.Message{} },
	"search-result":     func() any { return model.SearchResult{} },
	"status-summary":    func() any { return report.ParentSummary{} },
	"assignee-workload": func() any { return report.ParentWorkload{} },
	"envelope":          func() any { return output.Envelope{} },
}

// Names lists the known schema names, sorted.
func Names() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Generate(name string) (*jsonschema.Schema, error) {
	shape, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (expected one of %s)", ErrUnknownSchema, name, strings.Join(Names(), ", "))
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := reflector.Reflect(shape())
	s.Title = name
	return s, nil
}
