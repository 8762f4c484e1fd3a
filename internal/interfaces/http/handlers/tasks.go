package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/graph/normalize"
	"github.com/graphgate/graphgate/pkg/constants"
)

// ListTaskLists handles GET /api/tasks/lists.
func (h *Handlers) ListTaskLists() gin.HandlerFunc {
	return h.wrap("listTaskLists", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		resp, err := client.API("/me/todo/lists").Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		lists := normalize.Collection(resp, normalize.TaskList)
		return http.StatusOK, dto.List(lists, len(lists)), nil
	})
}

// CreateTaskList handles POST /api/tasks/lists.
func (h *Handlers) CreateTaskList() gin.HandlerFunc {
	return h.wrap("createTaskList", func(c *gin.Context) (int, interface{}, error) {
		var req dto.CreateTaskListRequest
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
		resp, err := client.API("/me/todo/lists").Post(c.Request.Context(),
			gin.H{"displayName": req.DisplayName})
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.TaskList(resp)), nil
	})
}

// ListTasks handles GET /api/tasks/lists/:listId/tasks.
func (h *Handlers) ListTasks() gin.HandlerFunc {
	return h.wrap("listTasks", func(c *gin.Context) (int, interface{}, error) {
		limit, errs := dto.ParseLimit(c.Query("limit"), constants.DefaultListLimit, constants.MaxListLimit)
		if errs != nil {
			return 0, nil, errs
		}
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/me/todo/lists/" + c.Param("listId") + "/tasks"
		resp, err := client.API(path).Top(limit).Get(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		tasks := normalize.Collection(resp, normalize.Task)
		return http.StatusOK, dto.List(tasks, len(tasks)), nil
	})
}

// CreateTask handles POST /api/tasks/lists/:listId/tasks.
func (h *Handlers) CreateTask() gin.HandlerFunc {
	return h.wrap("createTask", func(c *gin.Context) (int, interface{}, error) {
		var req dto.CreateTaskRequest
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
		path := "/me/todo/lists/" + c.Param("listId") + "/tasks"
		resp, err := client.API(path).Post(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, dto.Created(normalize.Task(resp)), nil
	})
}

// UpdateTask handles PATCH /api/tasks/lists/:listId/tasks/:id.
func (h *Handlers) UpdateTask() gin.HandlerFunc {
	return h.wrap("updateTask", func(c *gin.Context) (int, interface{}, error) {
		var req dto.UpdateTaskRequest
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
		path := "/me/todo/lists/" + c.Param("listId") + "/tasks/" + c.Param("id")
		resp, err := client.API(path).Patch(c.Request.Context(), req.Graph())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Updated(normalize.Task(resp)), nil
	})
}

// CompleteTask handles POST /api/tasks/lists/:listId/tasks/:id/complete.
func (h *Handlers) CompleteTask() gin.HandlerFunc {
	return h.wrap("completeTask", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/me/todo/lists/" + c.Param("listId") + "/tasks/" + c.Param("id")
		resp, err := client.API(path).Patch(c.Request.Context(), gin.H{"status": "completed"})
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Completed(normalize.Task(resp)), nil
	})
}

// DeleteTask handles DELETE /api/tasks/lists/:listId/tasks/:id.
func (h *Handlers) DeleteTask() gin.HandlerFunc {
	return h.wrap("deleteTask", func(c *gin.Context) (int, interface{}, error) {
		client, err := h.client(c)
		if err != nil {
			return 0, nil, err
		}
		path := "/me/todo/lists/" + c.Param("listId") + "/tasks/" + c.Param("id")
		if err := client.API(path).Delete(c.Request.Context()); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, dto.Deleted(), nil
	})
}
