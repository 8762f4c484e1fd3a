// Package router assembles the gin engine: middleware chain, route table,
// and the operational endpoints (metrics, pprof, health).
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/config"
	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/internal/interfaces/http/handlers"
	"github.com/graphgate/graphgate/internal/interfaces/http/middleware"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
	"github.com/graphgate/graphgate/pkg/logger"
)

// New builds the fully wired engine.
func New(
	cfg *config.Config,
	h *handlers.Handlers,
	sessions session.Store,
	tracer trace.Tracer,
	log logger.Logger,
) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", constants.HeaderRequestID, constants.HeaderSessionID},
		AllowCredentials: false,
	}))
	engine.Use(middleware.RequestID())
	if tracer != nil {
		engine.Use(middleware.Tracing(tracer))
	}
	engine.Use(middleware.DeviceAuth(cfg.Auth.DeviceJWTSecret, log))
	engine.Use(middleware.SessionLoad(sessions, log))

	engine.NoRoute(func(c *gin.Context) {
		appErr := apperrors.NewNotFound("route")
		c.JSON(appErr.HTTPStatus, dto.ErrorEnvelope{
			Error:            string(appErr.Code),
			ErrorDescription: appErr.Message,
			ErrorID:          appErr.ID,
		})
	})

	engine.GET("/health/live", h.Live())
	engine.GET("/health/ready", h.Ready())
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.PprofEnabled {
		pprof.Register(engine)
	}

	api := engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/external-token", h.InjectToken())
		auth.GET("/external-token/status", h.TokenStatus())
		auth.DELETE("/external-token", h.ClearToken())
		auth.POST("/external-token/switch", h.SwitchTokenSource())
		auth.POST("/external-token/login", h.TokenLogin())
	}

	mail := api.Group("/mail")
	{
		mail.GET("/messages", h.ListMessages())
		mail.GET("/messages/:id", h.GetMessage())
		mail.POST("/send", h.SendMail())
		mail.POST("/messages/:id/reply", h.ReplyMessage())
		mail.POST("/messages/:id/move", h.MoveMessage())
		mail.DELETE("/messages/:id", h.DeleteMessage())
		mail.GET("/folders", h.ListMailFolders())
	}

	calendar := api.Group("/calendar")
	{
		calendar.GET("/events", h.ListEvents())
		calendar.GET("/events/:id", h.GetEvent())
		calendar.POST("/create", h.CreateEvent())
		calendar.PATCH("/events/:id", h.UpdateEvent())
		calendar.DELETE("/events/:id", h.DeleteEvent())
		calendar.POST("/findMeetingTimes", h.FindMeetingTimes())
		calendar.POST("/availability", h.Availability())
	}

	contacts := api.Group("/contacts")
	{
		contacts.GET("", h.ListContacts())
		contacts.GET("/:id", h.GetContact())
		contacts.POST("", h.CreateContact())
		contacts.PATCH("/:id", h.UpdateContact())
		contacts.DELETE("/:id", h.DeleteContact())
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("/lists", h.ListTaskLists())
		tasks.POST("/lists", h.CreateTaskList())
		tasks.GET("/lists/:listId/tasks", h.ListTasks())
		tasks.POST("/lists/:listId/tasks", h.CreateTask())
		tasks.PATCH("/lists/:listId/tasks/:id", h.UpdateTask())
		tasks.POST("/lists/:listId/tasks/:id/complete", h.CompleteTask())
		tasks.DELETE("/lists/:listId/tasks/:id", h.DeleteTask())
	}

	teams := api.Group("/teams")
	{
		teams.GET("", h.ListTeams())
		teams.GET("/chats", h.ListChats())
		teams.POST("/chats", h.CreateChat())
		teams.GET("/chats/:chatId/messages", h.ListChatMessages())
		teams.POST("/chats/:chatId/messages", h.SendChatMessage())
		teams.GET("/meetings", h.ListMeetings())
		teams.POST("/meetings", h.CreateMeeting())
		teams.GET("/meetings/:meetingId/transcripts", h.ListTranscripts())
		teams.GET("/:teamId/channels", h.ListChannels())
		teams.GET("/:teamId/channels/:channelId/messages", h.ListChannelMessages())
		teams.POST("/:teamId/channels/:channelId/messages", h.SendChannelMessage())
		teams.GET("/:teamId/channels/:channelId/files", h.ListChannelFiles())
		teams.GET("/:teamId/channels/:channelId/files/:filename", h.GetChannelFile())
		teams.GET("/:teamId/channels/:channelId/files/:filename/download", h.GetChannelFileDownloadURL())
	}

	groups := api.Group("/groups")
	{
		groups.GET("", h.ListGroups())
		groups.GET("/my", h.ListMyGroups())
		groups.GET("/:id", h.GetGroup())
		groups.GET("/:id/members", h.ListGroupMembers())
	}

	search := api.Group("/search")
	{
		search.POST("", h.Search())
		search.GET("/messages", h.SearchMessages())
		search.GET("/events", h.SearchEvents())
		search.GET("/files", h.SearchFiles())
		search.GET("/people", h.SearchPeople())
	}

	return engine
}
