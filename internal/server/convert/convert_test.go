package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask_IgnoresOwnerFields(t *testing.T) {
	var req api.CreateTaskRequest
	body := `{"title":"t","description":"d","dueDate":"2025-04-01","userId":"someone-else","assignedTo":{"id":"x"}}`
	require.NoError(t, api.DecodeBytes([]byte(body), &req))

	in, err := NewTask(req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), in.DueDate)
	assert.Equal(t, models.Priority(""), in.Priority)
}

func TestNewTask_BadDate(t *testing.T) {
	for _, due := range []string{"", "01/04/2025", "2025-13-01"} {
		_, err := NewTask(api.CreateTaskRequest{Title: "t", Description: "d", DueDate: due})

		var ve *common.ValidationError
		require.True(t, errors.As(err, &ve), due)
		assert.Equal(t, "dueDate", ve.Field)
	}
}

func TestPatch_RejectsOwnerChange(t *testing.T) {
	for body, field := range map[string]string{
		`{"title":"x","userId":"other"}`:          "userId",
		`{"title":"x","assignedTo":{"id":"u2"}}`: "assignedTo",
	} {
		var req api.UpdateTaskRequest
		require.NoError(t, api.DecodeBytes([]byte(body), &req))

		_, err := Patch(req)
		var ve *common.ValidationError
		require.True(t, errors.As(err, &ve), body)
		assert.Equal(t, field, ve.Field)
	}
}

func TestPatch(t *testing.T) {
	var req api.UpdateTaskRequest
	require.NoError(t, api.DecodeBytes([]byte(`{"status":"completed","dueDate":"2025-05-02","expectedVersion":3}`), &req))

	p, err := Patch(req)
	require.NoError(t, err)
	assert.Nil(t, p.Title)
	require.NotNil(t, p.Status)
	assert.Equal(t, models.StatusCompleted, *p.Status)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, "2025-05-02", p.DueDate.Format(models.DateLayout))
	require.NotNil(t, p.ExpectedVersion)
	assert.Equal(t, int64(3), *p.ExpectedVersion)
}

func TestFilter(t *testing.T) {
	assert.Equal(t, models.TaskFilter{}, Filter(api.ListTasksRequest{}))

	f := Filter(api.ListTasksRequest{Status: "pending", Priority: "low"})
	require.NotNil(t, f.Status)
	require.NotNil(t, f.Priority)
	assert.Equal(t, models.StatusPending, *f.Status)
	assert.Equal(t, models.PriorityLow, *f.Priority)
}

func TestTask(t *testing.T) {
	task := &models.Task{
		ID:       "id-1",
		Title:    "t",
		DueDate:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:   models.StatusPending,
		Priority: models.PriorityHigh,
		Version:  2,
		Owner:    models.Owner{ID: "u", Name: "Ann", Email: "ann@example.com"},
	}

	got := Task(task)
	assert.Equal(t, "2025-04-01", got.DueDate)
	assert.Equal(t, "high", got.Priority)
	assert.Equal(t, "Ann", got.AssignedTo.Name)

	assert.NotNil(t, Tasks(nil))
}
