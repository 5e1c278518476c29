package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

const taskColumns = `t.id, t.user_id, t.title, t.description, t.due_date, t.status, t.priority,
		 t.version, t.created_at, t.updated_at, u.name, u.email`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*models.Task, error) {
	t := &models.Task{}
	var status, priority string
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &status, &priority,
		&t.Version, &t.CreatedAt, &t.UpdatedAt, &t.Owner.Name, &t.Owner.Email)
	if err != nil {
		return nil, err
	}
	t.Status = models.Status(status)
	t.Priority = models.Priority(priority)
	t.Owner.ID = t.UserID
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`WITH t AS (
		   INSERT INTO tasks (id, user_id, title, description, due_date, status, priority, created_at, updated_at)
		   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		   RETURNING *
		 )
		 SELECT ` + taskColumns + `
		 FROM t JOIN users u ON u.id = t.user_id
		 `

	row := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.DueDate.Format(models.DateLayout),
		string(task.Status), string(task.Priority), task.CreatedAt, task.UpdatedAt)

	created, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + `
		 FROM tasks t JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1 AND t.user_id = $2
		 `

	return r.getOne(ctx, query, id, userID)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, userID, id string) (*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + `
		 FROM tasks t JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1 AND t.user_id = $2
		 FOR UPDATE OF t
		 `

	return r.getOne(ctx, query, id, userID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// Update writes the mutable fields of task and bumps its version. The
// owner column is never written.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks
		 SET title = $3, description = $4, due_date = $5, status = $6, priority = $7,
		     updated_at = $8, version = version + 1
		 WHERE id = $1 AND user_id = $2
		 RETURNING version, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.DueDate.Format(models.DateLayout),
		string(task.Status), string(task.Priority), task.UpdatedAt).Scan(&task.Version, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TaskFilter, limit, offset int) ([]*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + `
		 FROM tasks t JOIN users u ON u.id = t.user_id
		 WHERE t.user_id = $1
		   AND ($2::text IS NULL OR t.status = $2)
		   AND ($3::text IS NULL OR t.priority = $3)
		 ORDER BY t.created_at DESC, t.id DESC
		 LIMIT $4 OFFSET $5
		 `

	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := r.db.QueryContext(ctx, query, userID, statusArg(filter), priorityArg(filter), lim, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID string, filter models.TaskFilter) (int64, error) {
	query :=
		`SELECT COUNT(*) FROM tasks t
		 WHERE t.user_id = $1
		   AND ($2::text IS NULL OR t.status = $2)
		   AND ($3::text IS NULL OR t.priority = $3)
		 `

	var n int64
	if err := r.db.QueryRowContext(ctx, query, userID, statusArg(filter), priorityArg(filter)).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func statusArg(f models.TaskFilter) any {
	if f.Status == nil {
		return nil
	}
	return string(*f.Status)
}

func priorityArg(f models.TaskFilter) any {
	if f.Priority == nil {
		return nil
	}
	return string(*f.Priority)
}
