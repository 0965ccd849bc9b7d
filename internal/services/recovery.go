package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"grouppass/internal/domain"
)

type recoveryService struct {
	group  domain.GroupManager
	logger *slog.Logger
}

// NewRecoveryService returns a RecoveryService backed by the group manager.
func NewRecoveryService(group domain.GroupManager, logger *slog.Logger) domain.RecoveryService {
	return &recoveryService{group: group, logger: logger}
}

// Unban lifts a ban on the member. Platform-side rejections become an
// UnbanResult with the platform's description rather than an error, so the
// caller can return them in a well-formed 200 envelope.
func (s *recoveryService) Unban(ctx context.Context, memberID int64) (*domain.UnbanResult, error) {
	if memberID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if err := s.group.UnbanMember(ctx, memberID); err != nil {
		var platformErr *domain.GroupPlatformError
		if errors.As(err, &platformErr) {
			s.logger.WarnContext(ctx, "platform rejected unban", "member_id", memberID, "description", platformErr.Description)
			return &domain.UnbanResult{Success: false, Message: platformErr.Description}, nil
		}
		return nil, fmt.Errorf("unban member %d: %w", memberID, err)
	}

	s.logger.InfoContext(ctx, "member unbanned", "member_id", memberID)
	return &domain.UnbanResult{Success: true, Message: "user unbanned successfully"}, nil
}
