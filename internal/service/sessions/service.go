package sessions

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ResourceBooking/internal/constraint"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/internal/selection"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/commit_bookings"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/prepare_booking"
)

// Config настройки сервиса сессий
type Config struct {
	AdminPasscode string        // Пусто = разблокировка администратора выключена
	IdleTTL       time.Duration // Сессия без событий дольше IdleTTL удаляется
}

// Service реестр экземпляров сетки
// Каждый экземпляр владеет своим хранилищем выделения и автоматом, общего состояния между ними нет
type Service struct {
	mu        sync.RWMutex
	instances map[string]*instance

	grids        GridRegistry
	reservations ReservationLister
	prepare      PrepareUseCase
	check        CheckUseCase
	commit       CommitUseCase
	metrics      Metrics
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	grids GridRegistry,
	reservations ReservationLister,
	prepare PrepareUseCase,
	check CheckUseCase,
	commit CommitUseCase,
	metrics Metrics,
	config Config,
	logger Logger,
) *Service {
	return &Service{
		instances:    make(map[string]*instance),
		grids:        grids,
		reservations: reservations,
		prepare:      prepare,
		check:        check,
		commit:       commit,
		metrics:      metrics,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Open создает экземпляр сетки домена на текущей неделе
func (s *Service) Open(ctx context.Context, domainName string) (*Snapshot, error) {
	s.logger.Info("Open: domain=%s", domainName)

	g, err := s.grids.Grid(domainName)
	if err != nil {
		if errors.Is(err, grid.ErrDomainNotFound) {
			return nil, ErrDomainNotFound
		}
		return nil, fmt.Errorf("%w: Open - grid: %v", ErrInternal, err)
	}
	policy, err := s.grids.Policy(domainName)
	if err != nil {
		return nil, fmt.Errorf("%w: Open - policy: %v", ErrInternal, err)
	}

	store := selection.NewStore(g)
	inst := &instance{
		session: domain.Session{
			ID:     uuid.NewString(),
			Domain: domainName,
		},
		policy:   policy,
		grid:     g,
		store:    store,
		machine:  selection.NewMachine(g, store, constraint.NewValidator(g, policy)),
		view:     View{WeekStart: domain.WeekStart(g.Now())},
		lastSeen: s.timeProvider.Now(),
	}
	// Любое изменение выделения делает прошлую проверку конфликтов недействительной
	store.Subscribe(func(selection.Change) { inst.resetReport() })

	if err := s.loadOccupancy(ctx, inst); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.instances[inst.session.ID] = inst
	s.mu.Unlock()

	s.logger.Info("Open: session=%s opened for domain=%s", inst.session.ID, domainName)
	snapshot := inst.snapshot()
	return &snapshot, nil
}

// Close удаляет экземпляр сетки
func (s *Service) Close(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.instances, sessionID)
	s.logger.Info("Close: session=%s closed", sessionID)
	return nil
}

// Navigate меняет неделю или зафиксированный ресурс
// При зафиксированном ресурсе указатель и Select принимают только его ячейки
// Выделение очищается, снимок занятости перечитывается
func (s *Service) Navigate(ctx context.Context, sessionID string, view View) (*Snapshot, error) {
	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	if view.WeekStart.IsZero() {
		return nil, fmt.Errorf("%w: week start is required", ErrInvalidInput)
	}
	if view.ResourceID != nil {
		if _, ok := inst.grid.Resource(*view.ResourceID); !ok {
			s.logger.Warn("Navigate: session=%s unknown resource=%s", sessionID, *view.ResourceID)
			return nil, ErrResourceNotFound
		}
	}

	inst.machine.Reset()
	inst.resetReport()
	inst.view = View{WeekStart: domain.WeekStart(view.WeekStart), ResourceID: view.ResourceID}

	if err := s.loadOccupancy(ctx, inst); err != nil {
		return nil, err
	}

	s.logger.Info("Navigate: session=%s week=%s", sessionID, inst.view.WeekStart.Format(domain.DateFormat))
	snapshot := inst.snapshot()
	return &snapshot, nil
}

// Unlock разблокирует admin-only ресурсы для сессии
func (s *Service) Unlock(sessionID, passcode string) (*Snapshot, error) {
	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	if s.config.AdminPasscode == "" ||
		subtle.ConstantTimeCompare([]byte(passcode), []byte(s.config.AdminPasscode)) != 1 {
		s.logger.Warn("Unlock: session=%s invalid passcode", sessionID)
		return nil, ErrInvalidPasscode
	}

	inst.session.AdminUnlocked = true
	s.logger.Info("Unlock: session=%s unlocked admin resources", sessionID)
	snapshot := inst.snapshot()
	return &snapshot, nil
}

// Pointer передаёт событие указателя автомату выделения
// Нарушение политики возвращается как *domain.ConstraintViolation, выделение при этом не меняется
func (s *Service) Pointer(sessionID string, event PointerEvent) (*PointerResult, error) {
	if !event.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown pointer event %q", ErrInvalidInput, event.Kind)
	}

	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	if event.Kind == PointerDown || event.Kind == PointerEnter {
		if err := inst.checkResource(event.Cell); err != nil {
			s.logger.Warn("Pointer: session=%s: %v", sessionID, err)
			return nil, err
		}
	}

	var outcome selection.Outcome
	switch event.Kind {
	case PointerDown:
		outcome, err = inst.machine.PointerDown(inst.session, event.Cell)
	case PointerEnter:
		outcome = inst.machine.PointerEnter(event.Cell)
	case PointerUp:
		outcome, err = inst.machine.PointerUp(inst.session)
	case PointerLeave:
		outcome = inst.machine.PointerLeave()
	}

	if err != nil {
		if errors.Is(err, selection.ErrUnknownCell) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.rejected(inst, err)
		return nil, err
	}

	return &PointerResult{Outcome: outcome, Snapshot: inst.snapshot()}, nil
}

// Select программно добавляет ячейки к выделению
func (s *Service) Select(sessionID string, cells []domain.SelectionCell) (*Snapshot, error) {
	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	if err := inst.checkResource(cells...); err != nil {
		s.logger.Warn("Select: session=%s: %v", sessionID, err)
		return nil, err
	}

	if _, err := inst.machine.Select(inst.session, cells); err != nil {
		if errors.Is(err, selection.ErrUnknownCell) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.rejected(inst, err)
		return nil, err
	}

	snapshot := inst.snapshot()
	return &snapshot, nil
}

// Selection текущее выделение
func (s *Service) Selection(sessionID string) (*Snapshot, error) {
	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	snapshot := inst.snapshot()
	return &snapshot, nil
}

// Cancel отменяет выделение
func (s *Service) Cancel(sessionID string) (*Snapshot, error) {
	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	inst.machine.Reset()
	inst.resetReport()

	s.logger.Info("Cancel: session=%s selection cleared", sessionID)
	snapshot := inst.snapshot()
	return &snapshot, nil
}

// Check валидирует форму, разворачивает повторы и проверяет конфликты по свежему списку
// Отчёт запоминается до следующего изменения выделения
func (s *Service) Check(ctx context.Context, sessionID string, form domain.BookingForm) (*domain.ConflictReport, error) {
	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	// 1. Кандидаты из слитого выделения
	prepared, err := s.prepare.Execute(ctx, &prepare_booking.Request{
		Domain:     inst.session.Domain,
		Selections: inst.store.MergedView(),
		Form:       form,
	})
	if err != nil {
		return nil, err
	}

	// 2. Проверка конфликтов
	checked, err := s.check.Execute(ctx, &check_conflicts.Request{
		Domain:     inst.session.Domain,
		Candidates: prepared.Candidates,
	})
	if err != nil {
		return nil, err
	}

	inst.candidates = prepared.Candidates
	inst.report = checked.Report
	s.logger.Info("Check: session=%s valid=%d conflicting=%d",
		sessionID, len(checked.Report.Valid), len(checked.Report.Conflicting))
	return checked.Report, nil
}

// Commit сохраняет valid-часть отчёта
// Перед записью кандидаты перепроверяются по свежему списку: подтверждение относится только к конфликтам,
// которые пользователь уже видел. Новые конфликты возвращаются как *StaleReportError
// При конфликтах требуется acceptPartial; после цикла выделение очищено, занятость перечитана
func (s *Service) Commit(
	ctx context.Context,
	sessionID string,
	acceptPartial bool,
	onProgress func(commit_bookings.Progress),
) (*commit_bookings.Response, error) {
	inst, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer inst.mu.Unlock()

	// 1. Отчёт должен соответствовать текущему выделению
	accepted := inst.report
	if accepted == nil {
		return nil, ErrNotChecked
	}
	if accepted.HasConflicts() && !acceptPartial {
		s.logger.Warn("Commit: session=%s has %d conflicting candidates", sessionID, len(accepted.Conflicting))
		return nil, ErrConflictsPending
	}

	// 2. Перечитать и перепроверить непосредственно перед записью
	checked, err := s.check.Execute(ctx, &check_conflicts.Request{
		Domain:     inst.session.Domain,
		Candidates: inst.candidates,
	})
	if err != nil {
		return nil, err
	}
	fresh := checked.Report
	if added := newConflicts(accepted, fresh); added > 0 {
		inst.report = fresh
		s.logger.Warn("Commit: session=%s found %d new conflicts since check", sessionID, added)
		return nil, &StaleReportError{Report: fresh}
	}

	// 3. Последовательное сохранение
	resp, commitErr := s.commit.Execute(ctx, &commit_bookings.Request{
		Domain:     inst.session.Domain,
		Candidates: fresh.Valid,
		Selection:  inst.store,
		OnProgress: onProgress,
	})
	inst.resetReport()

	// 4. Сетка должна увидеть новые бронирования
	if resp != nil {
		if err := s.loadOccupancy(ctx, inst); err != nil {
			s.logger.Warn("Commit: session=%s occupancy reload failed: %v", sessionID, err)
		}
	}

	return resp, commitErr
}

// newConflicts число конфликтующих кандидатов fresh, которых не было среди конфликтов accepted
func newConflicts(accepted, fresh *domain.ConflictReport) int {
	known := make(map[string]struct{}, len(accepted.Conflicting))
	for _, c := range accepted.Conflicting {
		known[candidateKey(c)] = struct{}{}
	}
	added := 0
	for _, c := range fresh.Conflicting {
		if _, ok := known[candidateKey(c)]; !ok {
			added++
		}
	}
	return added
}

func candidateKey(c domain.BookingCandidate) string {
	return fmt.Sprintf("%s|%s|%s|%d",
		c.Selection.ResourceID, c.Selection.Date.Format(domain.DateFormat), c.Selection.Start, c.Occurrence)
}

// EvictIdle удаляет сессии без событий дольше IdleTTL
func (s *Service) EvictIdle() int {
	if s.config.IdleTTL <= 0 {
		return 0
	}
	deadline := s.timeProvider.Now().Add(-s.config.IdleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, inst := range s.instances {
		inst.mu.Lock()
		idle := inst.lastSeen.Before(deadline)
		inst.mu.Unlock()
		if idle {
			delete(s.instances, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Info("EvictIdle: evicted %d idle sessions", evicted)
	}
	return evicted
}

// RunJanitor периодически удаляет простаивающие сессии до отмены ctx
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle()
		}
	}
}

// Count число открытых сессий
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// acquire находит экземпляр и захватывает его блокировку
// Вызывающий обязан отпустить inst.mu
func (s *Service) acquire(sessionID string) (*instance, error) {
	s.mu.RLock()
	inst, ok := s.instances[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	inst.mu.Lock()
	inst.lastSeen = s.timeProvider.Now()
	return inst, nil
}

func (s *Service) loadOccupancy(ctx context.Context, inst *instance) error {
	list, err := s.reservations.List(ctx, inst.occupancyFilter(), false)
	if err != nil {
		s.logger.Error("loadOccupancy: session=%s: %v", inst.session.ID, err)
		return fmt.Errorf("%w: loadOccupancy - %v", ErrInternal, err)
	}
	inst.machine.SetOccupancy(selection.NewOccupancy(list))
	return nil
}

func (s *Service) rejected(inst *instance, err error) {
	var violation *domain.ConstraintViolation
	if errors.As(err, &violation) {
		s.metrics.SelectionRejected(inst.session.Domain, string(violation.Rule))
		s.logger.Info("Pointer: session=%s selection rejected by %s: %s",
			inst.session.ID, violation.Rule, violation.Message)
		return
	}
	s.logger.Error("Pointer: session=%s: %v", inst.session.ID, err)
}
