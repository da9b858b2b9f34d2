package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/vassimdr/dr-sahin-durmus-backend/utils"
)

// Pusher sends a push notification to a set of device tokens.
type Pusher interface {
	Push(ctx context.Context, tokens []string, title, body string) error
}

// FCMPusher delivers through Firebase Cloud Messaging using the shared
// client from utils.InitFirebase.
type FCMPusher struct{}

func NewFCMPusher() *FCMPusher {
	return &FCMPusher{}
}

func (p *FCMPusher) Push(ctx context.Context, tokens []string, title, body string) error {
	client := utils.GetFCMClient()
	if client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	// FCM allows max 500 tokens per multicast.
	batchSize := 500
	var failed int
	sent := 0

	for i := 0; i < len(tokens); i += batchSize {
		end := i + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[i:end]

		message := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:        "default",
					ChannelID:    "clinic_alerts",
					Priority:     messaging.PriorityHigh,
					DefaultSound: true,
				},
			},
			Webpush: &messaging.WebpushConfig{
				Notification: &messaging.WebpushNotification{
					Title: title,
					Body:  body,
					Icon:  "/icon-192x192.png",
				},
			},
		}

		response, err := client.SendMulticast(ctx, message)
		if err != nil {
			log.Printf("❌ Error sending FCM multicast batch: %v\n", err)
			failed += len(batch)
			continue
		}

		sent += response.SuccessCount
		failed += response.FailureCount
	}

	if failed > 0 {
		return fmt.Errorf("failed to send to %d/%d tokens", failed, len(tokens))
	}

	log.Printf("✅ FCM alert delivered to %d device(s)\n", sent)
	return nil
}
