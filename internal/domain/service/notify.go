package service

import (
	"github.com/mozteach/teach-api/internal/domain/entity"
	"github.com/mozteach/teach-api/pkg/logger/types"
)

type mailer interface {
	SendClubCreated(to string, username string) error
	SendStaffClubNotification(to []string, username, email, clubName, clubLocation, clubWebsite, clubDescription string) error
}

type NotifyService struct {
	mailer      mailer
	staffEmails []string
	logger      *types.Logger
}

func NewNotifyService(mailer mailer, staffEmails []string, logger *types.Logger) *NotifyService {
	return &NotifyService{
		mailer:      mailer,
		staffEmails: staffEmails,
		logger:      logger,
	}
}

// ClubCreated sends the creation notifications: one to the owner's
// registered email and, when a staff recipient list is configured, one
// to that list. Send failures are logged and dropped; they must never
// fail the originating request.
func (s *NotifyService) ClubCreated(owner *entity.User, club *entity.Club) {
	if owner.Email != "" {
		if err := s.mailer.SendClubCreated(owner.Email, owner.Username); err != nil {
			s.logger.Errorf("failed to send club creation email to %s: %v", owner.Email, err)
		}
	}

	if len(s.staffEmails) == 0 {
		return
	}
	err := s.mailer.SendStaffClubNotification(
		s.staffEmails,
		owner.Username,
		owner.Email,
		club.Name,
		club.Location,
		club.Website,
		club.Description,
	)
	if err != nil {
		s.logger.Errorf("failed to send staff notification for club %d: %v", club.ID, err)
	}
}
