package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/Freeeeeet/tutor_calendar/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const planColumns = `id, title, type, status, start_date, end_date, created_at`

// PlanRepository загружает планы вместе с днями недели, занятиями и записями студентов
type PlanRepository struct {
	*base.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewPlanRepository создаёт новый репозиторий.
// loc - зона, в которой интерпретируются колонки типа date.
func NewPlanRepository(pool *pgxpool.Pool, loc *time.Location, logger *zap.Logger) *PlanRepository {
	if loc == nil {
		loc = time.Local
	}
	return &PlanRepository{
		Repository: base.NewRepository(pool),
		loc:        loc,
		logger:     logger,
	}
}

// GetByID получает полностью загруженный план по ID. Возвращает nil, nil если плана нет.
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	plan, err := r.scanPlan(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan by id: %w", err)
	}

	if err := r.hydrate(ctx, []*model.Plan{plan}); err != nil {
		return nil, err
	}

	return plan, nil
}

// GetAll получает все планы, упорядоченные по дате начала
func (r *PlanRepository) GetAll(ctx context.Context) ([]*model.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY start_date, id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all plans: %w", err)
	}
	defer rows.Close()

	var plans []*model.Plan
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}

	if err := r.hydrate(ctx, plans); err != nil {
		return nil, err
	}

	return plans, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PlanRepository) scanPlan(row rowScanner) (*model.Plan, error) {
	plan := &model.Plan{}
	err := row.Scan(
		&plan.ID,
		&plan.Title,
		&plan.Type,
		&plan.Status,
		&plan.StartDate,
		&plan.EndDate,
		&plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	plan.StartDate = r.dateOnly(plan.StartDate)
	plan.EndDate = r.dateOnly(plan.EndDate)
	return plan, nil
}

// dateOnly переносит значение колонки date (UTC-полночь) в полночь зоны репозитория
func (r *PlanRepository) dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.loc)
}

// hydrate догружает дни, занятия и записи для пачки планов тремя запросами
func (r *PlanRepository) hydrate(ctx context.Context, plans []*model.Plan) error {
	if len(plans) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*model.Plan, len(plans))
	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
		ids = append(ids, p.ID.String())
	}

	if err := r.loadDays(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadSessions(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadEnrollments(ctx, ids, byID); err != nil {
		return err
	}

	r.logger.Debug("Plans hydrated", zap.Int("plans", len(plans)))
	return nil
}

// planDayRow - строка таблицы plan_days как она хранится в БД
type planDayRow struct {
	ID           uuid.UUID
	PlanID       uuid.UUID
	WeekdayFlag  int16
	StartMinutes int
	EndMinutes   int
}

// toModel декодирует битовый флаг дня недели и переводит минуты в смещения от полуночи
func (row planDayRow) toModel() (model.PlanDay, error) {
	if row.WeekdayFlag < 0 || row.WeekdayFlag > 255 {
		return model.PlanDay{}, fmt.Errorf("plan day %s: %w: %d", row.ID, model.ErrInvalidWeekdayFlag, row.WeekdayFlag)
	}
	weekday, err := model.WeekdayFlag(row.WeekdayFlag).Weekday()
	if err != nil {
		return model.PlanDay{}, fmt.Errorf("plan day %s: %w", row.ID, err)
	}

	return model.PlanDay{
		ID:          row.ID,
		PlanID:      row.PlanID,
		Weekday:     weekday,
		StartOffset: time.Duration(row.StartMinutes) * time.Minute,
		EndOffset:   time.Duration(row.EndMinutes) * time.Minute,
	}, nil
}

func (r *PlanRepository) loadDays(ctx context.Context, ids []string, byID map[uuid.UUID]*model.Plan) error {
	query := `
		SELECT id, plan_id, weekday_flag, start_offset_minutes, end_offset_minutes
		FROM plan_days
		WHERE plan_id = ANY($1::uuid[])
		ORDER BY plan_id, weekday_flag
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("get plan days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row planDayRow
		if err := rows.Scan(&row.ID, &row.PlanID, &row.WeekdayFlag, &row.StartMinutes, &row.EndMinutes); err != nil {
			return fmt.Errorf("scan plan day: %w", err)
		}

		d, err := row.toModel()
		if err != nil {
			r.logger.Error("Malformed weekday flag in plan_days",
				zap.String("plan_day_id", row.ID.String()),
				zap.Int16("weekday_flag", row.WeekdayFlag))
			return err
		}

		if p, ok := byID[d.PlanID]; ok {
			p.Days = append(p.Days, d)
		}
	}

	return rows.Err()
}

func (r *PlanRepository) loadSessions(ctx context.Context, ids []string, byID map[uuid.UUID]*model.Plan) error {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE plan_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("get plan sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return fmt.Errorf("scan session: %w", err)
		}
		if p, ok := byID[s.PlanID]; ok {
			p.Sessions = append(p.Sessions, *s)
		}
	}

	return rows.Err()
}

func (r *PlanRepository) loadEnrollments(ctx context.Context, ids []string, byID map[uuid.UUID]*model.Plan) error {
	query := `
		SELECT e.id, e.plan_id, e.student_id, e.fee, e.notes, e.enrolled_at,
		       s.first_name, s.middle_name, s.last_name, s.address, s.phone
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE e.plan_id = ANY($1::uuid[])
		ORDER BY e.enrolled_at, e.id
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("get plan enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var en model.Enrollment
		err := rows.Scan(
			&en.ID,
			&en.PlanID,
			&en.StudentID,
			&en.Fee,
			&en.Notes,
			&en.EnrolledAt,
			&en.Student.FirstName,
			&en.Student.MiddleName,
			&en.Student.LastName,
			&en.Student.Address,
			&en.Student.Phone,
		)
		if err != nil {
			return fmt.Errorf("scan enrollment: %w", err)
		}
		if p, ok := byID[en.PlanID]; ok {
			p.Enrollments = append(p.Enrollments, en)
		}
	}

	return rows.Err()
}
