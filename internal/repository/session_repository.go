package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `id, plan_id, title, start_time, end_time, status, created_at`

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет новое занятие. check получает уже сохранённые занятия плана и может отклонить новое.
// Строка плана блокируется (FOR UPDATE) до конца транзакции,
// поэтому check видит все занятия плана, и два параллельных Create по одному плану не пересекутся.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session, check func(existing []model.Session) error) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = model.SessionStatusScheduled
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM plans WHERE id = $1 FOR UPDATE`, session.PlanID).Scan(&locked)
	if base.IsNotFound(err) {
		return fmt.Errorf("plan %s: %w", session.PlanID, calendar.ErrPlanNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock plan: %w", err)
	}

	if check != nil {
		existing, err := r.listByPlan(ctx, tx, session.PlanID)
		if err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO sessions (id, plan_id, title, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err = tx.QueryRow(ctx, query,
		session.ID,
		session.PlanID,
		session.Title,
		session.StartTime,
		session.EndTime,
		session.Status,
	).Scan(&session.CreatedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// listByPlan читает занятия плана внутри транзакции
func (r *SessionRepository) listByPlan(ctx context.Context, tx pgx.Tx, planID uuid.UUID) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE plan_id = $1 ORDER BY created_at, id`

	rows, err := tx.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// GetByID получает занятие по ID
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	s, err := scanSession(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return s, nil
}

// UpdateStatus обновляет статус занятия
func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE sessions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

func scanSession(row rowScanner) (*model.Session, error) {
	s := &model.Session{}
	err := row.Scan(
		&s.ID,
		&s.PlanID,
		&s.Title,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
