package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/datatypes"

	"github.com/vassimdr/dr-sahin-durmus-backend/config"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/callback"
	"github.com/vassimdr/dr-sahin-durmus-backend/utils"
)

// Service fans clinic alerts out over email and FCM push. Every delivery
// is best-effort: failures are logged and recorded, never propagated to
// the public form that triggered them.
type Service struct {
	repo   Repository
	pusher Pusher
	cfg    *config.Config
}

func NewService(repo Repository, pusher Pusher, cfg *config.Config) *Service {
	return &Service{repo: repo, pusher: pusher, cfg: cfg}
}

// ===========================
// 📱 Device token registry
func (s *Service) RegisterToken(ctx context.Context, req RegisterTokenRequest) (*FCMDeviceToken, error) {
	token := &FCMDeviceToken{
		DeviceToken: req.DeviceToken,
		DeviceType:  req.DeviceType,
		DeviceName:  req.DeviceName,
	}
	if err := s.repo.UpsertToken(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *Service) UnregisterToken(ctx context.Context, deviceToken string) error {
	return s.repo.DeactivateToken(ctx, deviceToken)
}

func (s *Service) ListLogs(ctx context.Context, limit, offset int) ([]NotificationLog, int64, error) {
	return s.repo.ListLogs(ctx, limit, offset)
}

// ===========================
// 📞 New callback request alert
func (s *Service) NotifyNewCallback(ctx context.Context, req *callback.CallbackRequest) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("⚠️ Recovered in callback alert fan-out: %v\n", r)
			}
		}()

		bg := context.Background()

		if s.cfg.ClinicInbox != "" {
			err := utils.SendCallbackAlertEmail(s.cfg.ClinicInbox, req.Name, req.Phone, req.Source)
			s.recordLog(bg, ChannelEmail, "New callback request",
				fmt.Sprintf("%s (%s) via %s", req.Name, req.Phone, req.Source),
				[]string{s.cfg.ClinicInbox}, err)
		}

		s.pushToAdmins(bg, "New callback request",
			fmt.Sprintf("%s is waiting for a call (%s)", req.Name, req.Source))
	}()
}

// ===========================
// ⭐ New review alert
func (s *Service) NotifyNewReview(ctx context.Context, patientName string, rating int) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("⚠️ Recovered in review alert fan-out: %v\n", r)
			}
		}()

		bg := context.Background()

		if s.cfg.ClinicInbox != "" {
			err := utils.SendReviewAlertEmail(s.cfg.ClinicInbox, patientName, rating)
			s.recordLog(bg, ChannelEmail, "New review awaiting approval",
				fmt.Sprintf("%s left a %d-star review", patientName, rating),
				[]string{s.cfg.ClinicInbox}, err)
		}

		s.pushToAdmins(bg, "New review awaiting approval",
			fmt.Sprintf("%s left a %d-star review", patientName, rating))
	}()
}

func (s *Service) pushToAdmins(ctx context.Context, title, body string) {
	if s.pusher == nil || !utils.IsFCMEnabled() {
		return
	}

	tokens, err := s.repo.ActiveTokens(ctx)
	if err != nil {
		log.Printf("❌ Failed to load device tokens: %v\n", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	err = s.pusher.Push(ctx, tokens, title, body)
	s.recordLog(ctx, ChannelPush, title, body, tokens, err)
}

func (s *Service) recordLog(ctx context.Context, channel, subject, body string, recipients []string, sendErr error) {
	raw, err := json.Marshal(recipients)
	if err != nil {
		raw = []byte("[]")
	}

	entry := &NotificationLog{
		Channel:    channel,
		Subject:    subject,
		Body:       body,
		Recipients: datatypes.JSON(raw),
		Status:     "sent",
	}
	if sendErr != nil {
		entry.Status = "failed"
		msg := sendErr.Error()
		entry.Error = &msg
	}

	if err := s.repo.CreateLog(ctx, entry); err != nil {
		log.Printf("❌ Failed to record notification log: %v\n", err)
	}
}
