/*
Domain Service

Handles business rules that don't fit in a single aggregate.
Core principle: domain service only reads, does not write.
*/
package user

import "context"

// DomainService User domain service
type DomainService struct {
	userRepository Repository
}

// NewDomainService Create user domain service
func NewDomainService(userRepo Repository) *DomainService {
	return &DomainService{
		userRepository: userRepo,
	}
}

// EnsureEmailAvailable 校验邮箱业务唯一性约束。
// 先做值对象归一化，避免大小写变体绕过查重。
func (s *DomainService) EnsureEmailAvailable(ctx context.Context, email string) error {
	normalized, err := NewEmail(email)
	if err != nil {
		return err
	}
	existing, _ := s.userRepository.FindByEmail(ctx, normalized.Value())
	if existing != nil {
		return NewEmailAlreadyExistsError(normalized.Value())
	}
	return nil
}
