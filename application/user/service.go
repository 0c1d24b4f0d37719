package user

import (
	"context"
	"time"

	"dddkit/domain/shared"
	"dddkit/domain/user"
	"dddkit/mapper"
	"dddkit/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService User application service - coordinates user-related business processes
// 事务内完成：业务写入、通知构建、映射、集成事件入发件箱。
// 领域事件的进程内发布由 UoW 在提交成功后完成。
type ApplicationService struct {
	userRepo          user.Repository
	userDomainService *user.DomainService
	uowFactory        shared.UnitOfWorkFactory
	registry          *mapper.Registry
	outbox            shared.IntegrationEventOutbox
}

// NewApplicationService Create user application service
func NewApplicationService(
	userRepo user.Repository,
	uowFactory shared.UnitOfWorkFactory,
	registry *mapper.Registry,
	outbox shared.IntegrationEventOutbox,
) *ApplicationService {
	return &ApplicationService{
		userRepo:          userRepo,
		userDomainService: user.NewDomainService(userRepo),
		uowFactory:        uowFactory,
		registry:          registry,
		outbox:            outbox,
	}
}

// CreateUserRequest Create user request DTO
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UserResponse User response DTO
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUser Create user
// DDD principle: Application service orchestrates business processes
func (s *ApplicationService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	var u *user.User

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.userDomainService.EnsureEmailAvailable(ctx, req.Email); err != nil {
			return err
		}

		var err error
		u, err = user.NewUser(req.Name, req.Email)
		if err != nil {
			return err
		}

		// Save user (uses transaction from context)
		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}

		// Map recorded events to outbound contracts inside the transaction
		if err := s.dispatchOutbound(ctx, u); err != nil {
			return err
		}

		// Register aggregate with UoW for post-commit event publishing
		uow.RegisterNew(u)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.convertToResponse(u), nil
}

// GetUser Get user information
func (s *ApplicationService) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.convertToResponse(u), nil
}

// UpdateUserStatusRequest Update user status request DTO
type UpdateUserStatusRequest struct {
	Active bool `json:"active"`
}

// UpdateUserStatus Update user status
func (s *ApplicationService) UpdateUserStatus(ctx context.Context, userID string, req UpdateUserStatusRequest) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		if req.Active {
			u.Activate()
		} else {
			u.Deactivate()
		}

		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}

		if err := s.dispatchOutbound(ctx, u); err != nil {
			return err
		}

		uow.RegisterDirty(u)
		return nil
	})
}

// dispatchOutbound 把聚合已记录的领域事件包装成通知、跑映射注册表，
// 产出的集成事件写入发件箱（与业务写入同一事务）。
// 弱类型映射产出只进审计日志，不入发件箱。
func (s *ApplicationService) dispatchOutbound(ctx context.Context, u *user.User) error {
	for _, event := range u.RecordedEvents() {
		notification, err := notificationFor(event)
		if err != nil {
			return err
		}
		if notification == nil {
			continue
		}

		integrationEvents, err := s.registry.Dispatch(ctx, notification)
		if err != nil {
			return err
		}
		for _, ie := range integrationEvents {
			if err := s.outbox.SaveEvent(ctx, ie); err != nil {
				return err
			}
		}

		payloads, err := s.registry.DispatchFlexible(ctx, notification)
		if err != nil {
			return err
		}
		for _, payload := range payloads {
			logger.Debug("Outbound audit payload",
				zap.String("event", event.EventName()),
				zap.Any("payload", payload),
			)
		}
	}
	return nil
}

// notificationFor 为需要对外映射的领域事件构建通知。
// 没有对外契约的事件返回 nil，直接跳过。
func notificationFor(event shared.DomainEvent) (shared.DomainEventNotification, error) {
	switch e := event.(type) {
	case *user.UserCreatedEvent:
		return user.NewUserCreatedNotification(e)
	case *user.UserDeactivatedEvent:
		return user.NewUserDeactivatedNotification(e)
	default:
		return nil, nil
	}
}

func (s *ApplicationService) convertToResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().Value(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
