package dto

import (
	"fmt"

	"github.com/graphgate/graphgate/pkg/constants"
)

// Search entity type shortcuts accepted alongside the literal Graph entity
// names.
var searchShortcuts = map[string][]string{
	"mail":     {"message"},
	"email":    {"message"},
	"files":    {"driveItem"},
	"file":     {"driveItem"},
	"events":   {"event"},
	"calendar": {"event"},
	"people":   {"person"},
	"chats":    {"chatMessage"},
	"all":      {"message", "event", "driveItem"},
}

var searchEntityTypes = map[string]bool{
	"message":     true,
	"event":       true,
	"driveItem":   true,
	"list":        true,
	"listItem":    true,
	"site":        true,
	"drive":       true,
	"chatMessage": true,
	"person":      true,
}

// SearchRequest is the body of POST /api/search. EntityTypes accepts Graph
// entity names or the shortcut intents above.
type SearchRequest struct {
	Query       string   `json:"query" validate:"required"`
	EntityTypes []string `json:"entityTypes"`
	Limit       int      `json:"limit"`
}

// Validate applies schema checks and resolves the entity type list.
func (r *SearchRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	for _, et := range r.EntityTypes {
		if _, shortcut := searchShortcuts[et]; !shortcut && !searchEntityTypes[et] {
			return Invalid("entityTypes", "unknown entity type: "+et)
		}
	}
	if r.Limit != 0 && (r.Limit < 1 || r.Limit > constants.MaxListLimit) {
		return Invalid("limit", fmt.Sprintf("must be between 1 and %d", constants.MaxListLimit))
	}
	return nil
}

// ResolvedEntityTypes expands shortcuts and deduplicates, defaulting to
// message search.
func (r *SearchRequest) ResolvedEntityTypes() []string {
	if len(r.EntityTypes) == 0 {
		return []string{"message"}
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(r.EntityTypes))
	for _, et := range r.EntityTypes {
		expanded, shortcut := searchShortcuts[et]
		if !shortcut {
			expanded = []string{et}
		}
		for _, name := range expanded {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Graph renders the /search/query payload.
func (r *SearchRequest) Graph() map[string]interface{} {
	limit := r.Limit
	if limit <= 0 {
		limit = 25
	}
	return map[string]interface{}{
		"requests": []map[string]interface{}{{
			"entityTypes": r.ResolvedEntityTypes(),
			"query":       map[string]interface{}{"queryString": r.Query},
			"size":        limit,
		}},
	}
}
