package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanRepository отдаёт полностью загруженные планы
type PlanRepository interface {
	// GetByID возвращает nil, nil если плана нет
	GetByID(ctx context.Context, id uuid.UUID) (*model.Plan, error)
	GetAll(ctx context.Context) ([]*model.Plan, error)
}

// SessionRepository сохраняет занятия
type SessionRepository interface {
	// Create атомарно по плану: check вызывается с актуальными занятиями плана перед вставкой
	Create(ctx context.Context, session *model.Session, check func(existing []model.Session) error) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error
}

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionNotCancelable = errors.New("session cannot be canceled")
)

type CalendarService struct {
	planRepo    PlanRepository
	sessionRepo SessionRepository
	engine      *calendar.Engine
	logger      *zap.Logger
}

func NewCalendarService(
	planRepo PlanRepository,
	sessionRepo SessionRepository,
	engine *calendar.Engine,
	logger *zap.Logger,
) *CalendarService {
	return &CalendarService{
		planRepo:    planRepo,
		sessionRepo: sessionRepo,
		engine:      engine,
		logger:      logger,
	}
}

// Location возвращает временную зону календаря
func (s *CalendarService) Location() *time.Location {
	return s.engine.Location()
}

// getPlan загружает план или возвращает calendar.ErrPlanNotFound
func (s *CalendarService) getPlan(ctx context.Context, planID uuid.UUID) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: %s", calendar.ErrPlanNotFound, planID)
	}
	return plan, nil
}

// GenerateCalendar строит календарь плана. Без from/to используются даты самого плана.
func (s *CalendarService) GenerateCalendar(ctx context.Context, planID uuid.UUID, from, to *time.Time) (*model.Calendar, error) {
	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	cal, err := s.engine.Assemble(ctx, []*model.Plan{plan}, from, to)
	if err != nil {
		s.logger.Warn("Failed to generate plan calendar",
			zap.String("plan_id", planID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Plan calendar generated",
		zap.String("plan_id", planID.String()),
		zap.Int("total", cal.Total))

	return cal, nil
}

// GenerateCalendarForAllPlans строит общий календарь по всем планам
func (s *CalendarService) GenerateCalendarForAllPlans(ctx context.Context, from, to *time.Time) (*model.Calendar, error) {
	plans, err := s.planRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all plans: %w", err)
	}

	cal, err := s.engine.Assemble(ctx, plans, from, to)
	if err != nil {
		s.logger.Warn("Failed to generate calendar for all plans", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Calendar generated for all plans",
		zap.Int("plans", len(plans)),
		zap.Int("total", cal.Total))

	return cal, nil
}

// UnfilledSlots возвращает ожидаемые занятия всех планов, для которых ещё нет записи о занятии
func (s *CalendarService) UnfilledSlots(ctx context.Context, from, to time.Time) ([]model.CalendarEntry, error) {
	cal, err := s.GenerateCalendarForAllPlans(ctx, &from, &to)
	if err != nil {
		return nil, err
	}

	var unfilled []model.CalendarEntry
	for _, entry := range cal.Entries {
		if entry.PlanStatus != model.PlanStatusActive || entry.HasSession() {
			continue
		}
		unfilled = append(unfilled, entry)
	}

	return unfilled, nil
}

// ValidateNewSession проверяет предложенное занятие, ничего не сохраняя
func (s *CalendarService) ValidateNewSession(ctx context.Context, proposal model.NewSession) error {
	plan, err := s.getPlan(ctx, proposal.PlanID)
	if err != nil {
		return err
	}
	return s.engine.ValidateNewSession(plan, proposal)
}

// CreateSession проверяет предложенное занятие и сохраняет его.
// Проверка повторяется при сохранении на свежих данных, чтобы параллельные вызовы не создали пересечение.
func (s *CalendarService) CreateSession(ctx context.Context, proposal model.NewSession) (*model.Session, error) {
	plan, err := s.getPlan(ctx, proposal.PlanID)
	if err == nil {
		err = s.engine.ValidateNewSession(plan, proposal)
	}
	if err != nil {
		s.logRejected(proposal, err)
		return nil, err
	}

	session := &model.Session{
		PlanID:    proposal.PlanID,
		Title:     proposal.Title,
		StartTime: proposal.StartTime,
		EndTime:   proposal.EndTime,
		Status:    model.SessionStatusScheduled,
	}

	var rejected error
	err = s.sessionRepo.Create(ctx, session, func(existing []model.Session) error {
		fresh := *plan
		fresh.Sessions = existing
		rejected = s.engine.ValidateNewSession(&fresh, proposal)
		return rejected
	})
	if rejected != nil {
		s.logRejected(proposal, rejected)
		return nil, rejected
	}
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.String("plan_id", session.PlanID.String()),
		zap.Time("start_time", session.StartTime))

	return session, nil
}

func (s *CalendarService) logRejected(proposal model.NewSession, err error) {
	s.logger.Info("Session rejected",
		zap.String("plan_id", proposal.PlanID.String()),
		zap.Time("start_time", proposal.StartTime),
		zap.Time("end_time", proposal.EndTime),
		zap.Error(err))
}

// CancelSession отменяет запланированное занятие; слот снова станет свободным для новых занятий
func (s *CalendarService) CancelSession(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.Status != model.SessionStatusScheduled {
		return fmt.Errorf("%w: status %s", ErrSessionNotCancelable, session.Status)
	}

	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, model.SessionStatusCanceled); err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}

	s.logger.Info("Session canceled",
		zap.String("session_id", sessionID.String()),
		zap.String("plan_id", session.PlanID.String()))

	return nil
}

// ListPlans возвращает все планы
func (s *CalendarService) ListPlans(ctx context.Context) ([]*model.Plan, error) {
	plans, err := s.planRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all plans: %w", err)
	}
	return plans, nil
}

// GetPlan возвращает план по ID
func (s *CalendarService) GetPlan(ctx context.Context, planID uuid.UUID) (*model.Plan, error) {
	return s.getPlan(ctx, planID)
}
