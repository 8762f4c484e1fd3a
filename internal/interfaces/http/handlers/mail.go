package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/graph/normalize"
	"github.com/graphgate/graphgate/pkg/constants"
)

// ListMessages handles GET /api/mail/messages. Supports folder, limit,
// filter, and the unread convenience filter.
func (h *Handlers) ListMessages() gin.HandlerFunc {
	return h.wrap("listMessages", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}

		path := "/me/messages"
		if folder := c.Query("folder"); folder != "" {
			path = "/me/mailFolders/" + folder + "/messages"
		}
		req := client.API(path).Top(limit).OrderBy("receivedDateTime desc")
		if filter := c.Query("filter"); filter != "" {
			req.Filter(filter)
		} else if c.Query("unread") == "true" {
			req.Filter("isRead eq false")
		}

		resp, err := req.Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		messages := normalize.Collection(resp, normalize.Message)
		return http.StatusOK, dto.List(messages, len(messages)), nil
	})
}

// GetMessage handles GET /api/mail/messages/:id.
func (h *Handlers) GetMessage() gin.HandlerFunc {
	return h.wrap("getMessage", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/messages/" + c.Param("id")).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Success(normalize.Message(resp)), nil
	})
}

// SendMail handles POST /api/mail/send.
func (h *Handlers) SendMail() gin.HandlerFunc {
	return h.wrap("sendMail", func(c *gin.Context) (int, interface{}, error) {
		var req dto.SendMailRequest
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
		if _, err := client.API("/me/sendMail").Post(c.Request.Context(), req.Graph()); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, gin.H{"success": true, "sent": true}, nil
	})
}

// ReplyMessage handles POST /api/mail/messages/:id/reply.
func (h *Handlers) ReplyMessage() gin.HandlerFunc {
	return h.wrap("replyMessage", func(c *gin.Context) (int, interface{}, error) {
		var req dto.ReplyMailRequest
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
		action := "/reply"
		if req.ReplyAll {
			action = "/replyAll"
		}
		path := "/me/messages/" + c.Param("id") + action
		if _, err := client.API(path).Post(c.Request.Context(), gin.H{"comment": req.Comment}); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, gin.H{"success": true, "sent": true}, nil
	})
}

// DeleteMessage handles DELETE /api/mail/messages/:id.
func (h *Handlers) DeleteMessage() gin.HandlerFunc {
	return h.wrap("deleteMessage", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		if err := client.API("/me/messages/" + c.Param("id")).Delete(c.Request.Context()); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Deleted(), nil
	})
}

// MoveMessage handles POST /api/mail/messages/:id/move.
func (h *Handlers) MoveMessage() gin.HandlerFunc {
	return h.wrap("moveMessage", func(c *gin.Context) (int, interface{}, error) {
		var req dto.MoveMailRequest
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
		path := "/me/messages/" + c.Param("id") + "/move"
		resp, err := client.API(path).Post(c.Request.Context(), gin.H{"destinationId": req.DestinationID})
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Success(normalize.Message(resp)), nil
	})
}

// ListMailFolders handles GET /api/mail/folders.
func (h *Handlers) ListMailFolders() gin.HandlerFunc {
	return h.wrap("listMailFolders", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/mailFolders").Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		folders := normalize.Collection(resp, normalize.MailFolder)
		return http.StatusOK, dto.List(folders, len(folders)), nil
	})
}
