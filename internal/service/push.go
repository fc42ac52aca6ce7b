package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
)

type pushService struct {
	client *messaging.Client
}

// NewPushService builds a Firebase Cloud Messaging sender from a service
// account credentials file.
func NewPushService(ctx context.Context, credentialsFile string) (PushService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &pushService{client: client}, nil
}

func (s *pushService) SendPush(ctx context.Context, deviceToken, title, body string) error {
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	logger.ExternalServiceCall("fcm", "Send", "title", title)
	id, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "Send", err, "message_id", id)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
