package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/graph/normalize"
	"github.com/graphgate/graphgate/pkg/constants"
)

// ListTeams handles GET /api/teams.
func (h *Handlers) ListTeams() gin.HandlerFunc {
	return h.wrap("listTeams", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/joinedTeams").Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		teams := normalize.Collection(resp, normalize.Team)
		return http.StatusOK, dto.List(teams, len(teams)), nil
	})
}

// ListChannels handles GET /api/teams/:teamId/channels.
func (h *Handlers) ListChannels() gin.HandlerFunc {
	return h.wrap("listChannels", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/teams/" + c.Param("teamId") + "/channels"
		resp, err := client.API(path).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		channels := normalize.Collection(resp, normalize.Channel)
		return http.StatusOK, dto.List(channels, len(channels)), nil
	})
}

// ListChannelMessages handles GET /api/teams/:teamId/channels/:channelId/messages.
func (h *Handlers) ListChannelMessages() gin.HandlerFunc {
	return h.wrap("listChannelMessages", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/teams/" + c.Param("teamId") + "/channels/" + c.Param("channelId") + "/messages"
		resp, err := client.API(path).Top(limit).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		messages := normalize.Collection(resp, normalize.ChatMessage)
		return http.StatusOK, dto.List(messages, len(messages)), nil
	})
}

// SendChannelMessage handles POST /api/teams/:teamId/channels/:channelId/messages.
func (h *Handlers) SendChannelMessage() gin.HandlerFunc {
	return h.wrap("sendChannelMessage", func(c *gin.Context) (int, interface{}, error) {
		var req dto.SendMessageRequest
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
		path := "/teams/" + c.Param("teamId") + "/channels/" + c.Param("channelId") + "/messages"
		resp, err := client.API(path).Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.ChatMessage(resp)), nil
	})
}

// ListChats handles GET /api/teams/chats.
func (h *Handlers) ListChats() gin.HandlerFunc {
	return h.wrap("listChats", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/chats").Top(limit).Query("$expand", "members").Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		chats := normalize.Collection(resp, normalize.Chat)
		return http.StatusOK, dto.List(chats, len(chats)), nil
	})
}

// ListChatMessages handles GET /api/teams/chats/:chatId/messages.
func (h *Handlers) ListChatMessages() gin.HandlerFunc {
	return h.wrap("listChatMessages", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/chats/" + c.Param("chatId") + "/messages"
		resp, err := client.API(path).Top(limit).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		messages := normalize.Collection(resp, normalize.ChatMessage)
		return http.StatusOK, dto.List(messages, len(messages)), nil
	})
}

// SendChatMessage handles POST /api/teams/chats/:chatId/messages.
func (h *Handlers) SendChatMessage() gin.HandlerFunc {
	return h.wrap("sendChatMessage", func(c *gin.Context) (int, interface{}, error) {
		var req dto.SendMessageRequest
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
		path := "/chats/" + c.Param("chatId") + "/messages"
		resp, err := client.API(path).Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.ChatMessage(resp)), nil
	})
}

// CreateChat handles POST /api/teams/chats.
func (h *Handlers) CreateChat() gin.HandlerFunc {
	return h.wrap("createChat", func(c *gin.Context) (int, interface{}, error) {
		var req dto.CreateChatRequest
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
		resp, err := client.API("/chats").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.Chat(resp)), nil
	})
}

// CreateMeeting handles POST /api/teams/meetings.
func (h *Handlers) CreateMeeting() gin.HandlerFunc {
	return h.wrap("createMeeting", func(c *gin.Context) (int, interface{}, error) {
		var req dto.CreateMeetingRequest
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
		resp, err := client.API("/me/onlineMeetings").Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.OnlineMeeting(resp)), nil
	})
}

// ListMeetings handles GET /api/teams/meetings: calendarView filtered to
// online meetings.
func (h *Handlers) ListMeetings() gin.HandlerFunc {
	return h.wrap("listMeetings", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		start, end := c.Query("start"), c.Query("end")
		if start == "" || end == "" {
			return 0, nil, dto.Invalid("start", "start and end are required")
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/calendarView").
			Query("startDateTime", start).
			Query("endDateTime", end).
			Filter("isOnlineMeeting eq true").
			Top(limit).
			OrderBy("start/dateTime").
			Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		meetings := normalize.Collection(resp, normalize.Event)
		return http.StatusOK, dto.List(meetings, len(meetings)), nil
	})
}

// ListTranscripts handles GET /api/teams/meetings/:meetingId/transcripts.
func (h *Handlers) ListTranscripts() gin.HandlerFunc {
	return h.wrap("listTranscripts", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/me/onlineMeetings/" + c.Param("meetingId") + "/transcripts"
		resp, err := client.API(path).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		transcripts := normalize.Collection(resp, normalize.Transcript)
		return http.StatusOK, dto.List(transcripts, len(transcripts)), nil
	})
}

// ListChannelFiles handles GET /api/teams/:teamId/channels/:channelId/files.
func (h *Handlers) ListChannelFiles() gin.HandlerFunc {
	return h.wrap("listChannelFiles", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		folder, err := h.channelFolder(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/groups/" + c.Param("teamId") + "/drive/root:/" + folder + ":/children"
		resp, err := client.API(path).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		files := normalize.Collection(resp, normalize.DriveItem)
		return http.StatusOK, dto.List(files, len(files)), nil
	})
}

// GetChannelFile handles GET /api/teams/:teamId/channels/:channelId/files/:filename.
func (h *Handlers) GetChannelFile() gin.HandlerFunc {
	return h.wrap("getChannelFile", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		folder, err := h.channelFolder(c)
		if err != nil {
			return 0, nil, err
		}
		filename := channelFilename(c)
		path := "/groups/" + c.Param("teamId") + "/drive/root:/" + folder + "/" + filename
		resp, err := client.API(path).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Success(normalize.DriveItem(resp)), nil
	})
}

// GetChannelFileDownloadURL handles
// GET /api/teams/:teamId/channels/:channelId/files/:filename/download.
func (h *Handlers) GetChannelFileDownloadURL() gin.HandlerFunc {
	return h.wrap("getChannelFileDownloadURL", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		folder, err := h.channelFolder(c)
		if err != nil {
			return 0, nil, err
		}
		filename := channelFilename(c)
		path := "/groups/" + c.Param("teamId") + "/drive/root:/" + folder + "/" + filename
		resp, err := client.API(path).Select("id,name,@microsoft.graph.downloadUrl").Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		item := normalize.DriveItem(resp)
		return http.StatusOK, dto.Success(gin.H{
			"name":        item["name"],
			"downloadUrl": item["downloadUrl"],
		}), nil
	})
}

// channelFolder resolves a channel's drive folder name from its display
// name: the channel folder in the team drive carries the same name.
func (h *Handlers) channelFolder(c *gin.Context) (string, error) {
	client, err := h.client(c)
	if err != nil {
		return "", err
	}
	path := "/teams/" + c.Param("teamId") + "/channels/" + c.Param("channelId")
	resp, err := client.API(path).Select("displayName").Get(c.Request.Context())
	if err != nil {
		return "", err
	}
	name, _ := resp["displayName"].(string)
	if name == "" {
		name = "General"
	}
	return name, nil
}

// channelFilename returns the filename path parameter. The router matches on
// the already-decoded request path, so the value has been URL-decoded exactly
// once; decoding again would corrupt names containing literal percent signs.
func channelFilename(c *gin.Context) string {
	return c.Param("filename")
}
