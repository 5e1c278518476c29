package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/convert"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := api.Decode(c.Request.Body, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	result, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", result.User.ID)
	c.JSON(http.StatusCreated, authResponse(result))
}

func (s *HTTPServer) login(c *gin.Context) {
	var req api.LoginRequest
	if err := api.Decode(c.Request.Body, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	result, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse(result))
}

func (s *HTTPServer) me(c *gin.Context) {
	user, err := s.users.Me(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convert.User(*user))
}

func (s *HTTPServer) listTasks(c *gin.Context) {
	page, err := intQuery(c, "page", services.DefaultPage)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	limit, err := intQuery(c, "limit", services.DefaultLimit)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	filter := convert.Filter(api.ListTasksRequest{Status: c.Query("status"), Priority: c.Query("priority")})

	result, err := s.tasks.List(c.Request.Context(), c.GetString(userIDKey), page, limit, filter)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convert.TaskPage(result))
}

func (s *HTTPServer) board(c *gin.Context) {
	board, err := s.tasks.Board(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convert.Board(board))
}

func (s *HTTPServer) getTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convert.Task(task))
}

func (s *HTTPServer) createTask(c *gin.Context) {
	var req api.CreateTaskRequest
	if err := api.Decode(c.Request.Body, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	in, err := convert.NewTask(req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	userID := c.GetString(userIDKey)
	task, err := s.tasks.Create(c.Request.Context(), userID, in)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Task created", "task_id", task.ID, "user_id", userID)
	c.JSON(http.StatusCreated, convert.Task(task))
}

func (s *HTTPServer) updateTask(c *gin.Context) {
	var req api.UpdateTaskRequest
	if err := api.Decode(c.Request.Body, &req); err != nil {
		s.abortWithError(c, err)
		return
	}

	patch, err := convert.Patch(req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), patch)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convert.Task(task))
}

func (s *HTTPServer) deleteTask(c *gin.Context) {
	userID := c.GetString(userIDKey)
	if err := s.tasks.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		s.abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Task deleted", "task_id", c.Param("id"), "user_id", userID)
	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func authResponse(r *services.AuthResult) api.AuthResponse {
	return api.AuthResponse{Token: r.Token, ExpiresAt: r.ExpiresAt, User: convert.User(r.User)}
}
