package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/graph/normalize"
	"github.com/graphgate/graphgate/pkg/constants"
)

// Search handles POST /api/search: the unified /search/query call. The
// response is the raw flattened hit array.
func (h *Handlers) Search() gin.HandlerFunc {
	return h.wrap("search", func(c *gin.Context) (int, interface{}, error) {
		var req dto.SearchRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/search/query").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, normalize.SearchHits(resp), nil
	})
}

// searchShortcut builds a fixed-entity-type search handler for the intent
// routes (/api/search/messages, /events, /files).
func (h *Handlers) searchShortcut(operation string, entityTypes []string) gin.HandlerFunc {
	return h.wrap(operation, func(c *gin.Context) (int, interface{}, error) {
		query := c.Query("q")
		if query == "" {
			return 0, nil, dto.Invalid("q", "is required")
		}
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		req := dto.SearchRequest{Query: query, EntityTypes: entityTypes, Limit: limit}
		resp, err := client.API("/search/query").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, normalize.SearchHits(resp), nil
	})
}

// SearchMessages handles GET /api/search/messages?q=.
func (h *Handlers) SearchMessages() gin.HandlerFunc {
	return h.searchShortcut("searchMessages", []string{"message"})
}

// SearchEvents handles GET /api/search/events?q=.
func (h *Handlers) SearchEvents() gin.HandlerFunc {
	return h.searchShortcut("searchEvents", []string{"event"})
}

// SearchFiles handles GET /api/search/files?q=.
func (h *Handlers) SearchFiles() gin.HandlerFunc {
	return h.searchShortcut("searchFiles", []string{"driveItem"})
}

// SearchPeople handles GET /api/search/people?q=. People are not served by
// /search/query; the relevance-ranked /me/people listing takes the search
// text directly.
func (h *Handlers) SearchPeople() gin.HandlerFunc {
	return h.wrap("searchPeople", func(c *gin.Context) (int, interface{}, error) {
		query := c.Query("q")
		if query == "" {
			return 0, nil, dto.Invalid("q", "is required")
		}
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/people").Query("$search", query).Top(limit).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		people := normalize.Collection(resp, normalize.Person)
		return http.StatusOK, dto.List(people, len(people)), nil
	})
}
