package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	repo    ReservationRepository
	cache   ReservationCache
	domains DomainRegistry
	logger  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	repo ReservationRepository,
	cache ReservationCache,
	domains DomainRegistry,
	logger Logger,
) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		domains: domains,
		logger:  logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// List получает бронирования домена через кэш
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for domain=%s", req.Domain)

	if strings.TrimSpace(req.Domain) == "" {
		return nil, fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}
	if !s.knownDomain(req.Domain) {
		s.logger.Warn("List: domain=%s not found", req.Domain)
		return nil, ErrDomainNotFound
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	list, err := s.cache.List(ctx, req.ToDomainFilter(), false)
	if err != nil {
		s.logger.Error("List: failed to list reservations for domain=%s: %v", req.Domain, err)
		return nil, fmt.Errorf("%w: List - cache error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d reservations for domain=%s", len(list), req.Domain)
	return models.FromDomainReservations(list), nil
}

// Cancel отменяет бронирование (status → cancelled)
// Отменённое бронирование больше не участвует в проверке конфликтов
func (s *Service) Cancel(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	// Получаем бронирование, чтобы знать, кэш какого домена сбрасывать
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.IsActive() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return nil, ErrCannotCancel
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrCannotCancel):
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Invalidate(ctx, reservation.Domain); err != nil {
		s.logger.Error("Cancel: failed to invalidate cache for domain=%s: %v", reservation.Domain, err)
	}

	reservation.Status = domain.StatusCancelled
	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

func (s *Service) knownDomain(name string) bool {
	for _, d := range s.domains.Domains() {
		if d == name {
			return true
		}
	}
	return false
}
