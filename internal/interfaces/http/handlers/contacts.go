package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/graph/normalize"
	"github.com/graphgate/graphgate/pkg/constants"
)

// ListContacts handles GET /api/contacts with optional search.
func (h *Handlers) ListContacts() gin.HandlerFunc {
	return h.wrap("listContacts", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}

		req := client.API("/me/contacts").Top(limit).OrderBy("displayName")
		if search := c.Query("search"); search != "" {
			escaped := strings.ReplaceAll(search, "'", "''")
			req.Filter(fmt.Sprintf("startswith(displayName,'%s') or emailAddresses/any(a:a/address eq '%s')", escaped, escaped))
		}

		resp, err := req.Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		contacts := normalize.Collection(resp, normalize.Contact)
		return http.StatusOK, dto.List(contacts, len(contacts)), nil
	})
}

// GetContact handles GET /api/contacts/:id.
func (h *Handlers) GetContact() gin.HandlerFunc {
	return h.wrap("getContact", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/contacts/" + c.Param("id")).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Success(normalize.Contact(resp)), nil
	})
}

// CreateContact handles POST /api/contacts.
func (h *Handlers) CreateContact() gin.HandlerFunc {
	return h.wrap("createContact", func(c *gin.Context) (int, interface{}, error) {
		var req dto.CreateContactRequest
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
		resp, err := client.API("/me/contacts").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.Contact(resp)), nil
	})
}

// UpdateContact handles PATCH /api/contacts/:id.
func (h *Handlers) UpdateContact() gin.HandlerFunc {
	return h.wrap("updateContact", func(c *gin.Context) (int, interface{}, error) {
		var req dto.UpdateContactRequest
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
		resp, err := client.API("/me/contacts/" + c.Param("id")).Patch(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Updated(normalize.Contact(resp)), nil
	})
}

// DeleteContact handles DELETE /api/contacts/:id.
func (h *Handlers) DeleteContact() gin.HandlerFunc {
	return h.wrap("deleteContact", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		if err := client.API("/me/contacts/" + c.Param("id")).Delete(c.Request.Context()); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Deleted(), nil
	})
}
