package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/graph/normalize"
	"github.com/graphgate/graphgate/pkg/constants"
)

// ListGroups handles GET /api/groups. Returns the raw normalized array, the
// shape this listing has always had.
func (h *Handlers) ListGroups() gin.HandlerFunc {
	return h.wrap("listGroups", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/groups").Top(limit).OrderBy("displayName").Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, normalize.Collection(resp, normalize.Group), nil
	})
}

// GetGroup handles GET /api/groups/:id.
func (h *Handlers) GetGroup() gin.HandlerFunc {
	return h.wrap("getGroup", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/groups/" + c.Param("id")).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Success(normalize.Group(resp)), nil
	})
}

// ListGroupMembers handles GET /api/groups/:id/members.
func (h *Handlers) ListGroupMembers() gin.HandlerFunc {
	return h.wrap("listGroupMembers", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/groups/" + c.Param("id") + "/members"
		resp, err := client.API(path).Top(limit).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		members := normalize.Collection(resp, normalize.GroupMember)
		return http.StatusOK, dto.List(members, len(members)), nil
	})
}

// ListMyGroups handles GET /api/groups/my: the caller's direct group
// memberships.
func (h *Handlers) ListMyGroups() gin.HandlerFunc {
	return h.wrap("listMyGroups", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/memberOf").Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		groups := normalize.Collection(resp, normalize.Group)
		return http.StatusOK, dto.List(groups, len(groups)), nil
	})
}
