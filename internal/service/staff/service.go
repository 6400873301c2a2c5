package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// GridConfig параметры сетки слотов для материализации расписания
type GridConfig struct {
	Open  types.TimeOfDay
	Close types.TimeOfDay
	Step  int
}

// Service сервис для работы с мастерами
type Service struct {
	staffRepo        StaffRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	location         *time.Location
	grid             GridConfig
	logger           Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(
	staffRepo StaffRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	location *time.Location,
	grid GridConfig,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:        staffRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		grid:             grid,
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает мастера и материализует его сетку слотов
// на весь горизонт записи. Администратору сетка не создается
func (s *Service) Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: invalid request for username=%s: %v", req.Username, err)
		return nil, err
	}

	s.logger.Info("Create: creating staff username=%s admin=%t", req.Username, req.IsAdmin)

	member := req.ToDomain()
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		created, err := s.staffRepo.Create(ctx, member)
		if err != nil {
			if errors.Is(err, staffRepo.ErrUsernameTaken) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		member = created

		if !member.IsBookable() {
			return nil
		}

		// Новый мастер сразу доступен для записи на текущую и следующую неделю
		grid := domain.GenerateGrid(s.grid.Open, s.grid.Close, s.grid.Step)
		now := s.timeProvider.Now()
		for offset := 0; offset < domain.BookableWeeks; offset++ {
			weekStart := domain.WeekStart(now, s.location).AddDate(0, 0, offset*7)
			if err := s.availabilityRepo.MaterializeWeek(ctx, member.ID, weekStart, grid); err != nil {
				return fmt.Errorf("%w: Create - materialize week: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			s.logger.Warn("Create: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Create: failed for username=%s: %v", req.Username, err)
		return nil, err
	}

	s.logger.Info("Create: created staff id=%d username=%s", member.ID, member.Username)
	return models.FromDomainStaff(member), nil
}

// GetByID получает мастера по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.StaffResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("GetByID: staff id=%d not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetByID: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaff(member), nil
}

// List возвращает мастеров по имени
// onlyBookable исключает администраторов из выдачи
func (s *Service) List(ctx context.Context, onlyBookable bool) (*models.StaffListResponse, error) {
	members, err := s.staffRepo.List(ctx, onlyBookable)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaffList(members), nil
}

// Update обновляет данные мастера
// Пустой пароль в запросе означает "оставить прежний"
func (s *Service) Update(ctx context.Context, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Username) == "" {
		s.logger.Warn("Update: empty name or username for staff id=%d", req.ID)
		return nil, fmt.Errorf("%w: name and username are required", ErrInvalidInput)
	}

	member, err := s.staffRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Update: staff id=%d not found", req.ID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: repository error for staff id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	member.Name = req.Name
	member.Username = req.Username
	if req.Password != "" {
		member.Password = req.Password
	}
	member.Photo = req.Photo
	member.Phone = req.Phone
	member.CommissionPct = req.CommissionPct

	if err := s.staffRepo.Update(ctx, member); err != nil {
		if errors.Is(err, staffRepo.ErrUsernameTaken) {
			s.logger.Warn("Update: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Update: repository error for staff id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated staff id=%d", req.ID)
	return s.GetByID(ctx, req.ID)
}

// UpdatePassword меняет пароль мастера
func (s *Service) UpdatePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	if err := s.staffRepo.UpdatePassword(ctx, id, password); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("UpdatePassword: staff id=%d not found", id)
			return ErrStaffNotFound
		}
		s.logger.Error("UpdatePassword: repository error for staff id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdatePassword - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePassword: updated password for staff id=%d", id)
	return nil
}

// Delete удаляет мастера вместе с его расписанием и записями
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting staff id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.availabilityRepo.DeleteByStaff(ctx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete schedule: %v", ErrInternal, err)
		}
		if err := s.staffRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				return ErrStaffNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			s.logger.Warn("Delete: staff id=%d not found", id)
			return ErrStaffNotFound
		}
		s.logger.Error("Delete: failed for staff id=%d: %v", id, err)
		return err
	}

	s.logger.Info("Delete: deleted staff id=%d", id)
	return nil
}

// Authenticate проверяет логин и пароль мастера
func (s *Service) Authenticate(ctx context.Context, req *models.AuthRequest) (*models.StaffResponse, error) {
	member, err := s.staffRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Authenticate: unknown username=%s", req.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Authenticate - repository error: %v", ErrInternal, err)
	}

	if member.Password != req.Password {
		s.logger.Warn("Authenticate: wrong password for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Authenticate: staff id=%d authenticated", member.ID)
	return models.FromDomainStaff(member), nil
}

// MaterializeWeekForAll материализует сетку указанной недели для всех
// записываемых мастеров (используется еженедельной фоновой задачей)
func (s *Service) MaterializeWeekForAll(ctx context.Context, staffIDs []int64, weekStart time.Time) error {
	grid := domain.GenerateGrid(s.grid.Open, s.grid.Close, s.grid.Step)
	for _, id := range staffIDs {
		if err := s.availabilityRepo.MaterializeWeek(ctx, id, weekStart, grid); err != nil {
			return fmt.Errorf("%w: MaterializeWeekForAll - staff id=%d: %v", ErrInternal, id, err)
		}
	}
	return nil
}

func validateCreate(req *models.CreateStaffRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if req.CommissionPct < 0 || req.CommissionPct > 100 {
		return fmt.Errorf("%w: commissionPct must be within [0, 100]", ErrInvalidInput)
	}
	return nil
}
