package fcm

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging. When no credentials are configured
// the client stays disabled and every send is a no-op error, so the rest of
// the service runs without push delivery.
type Client struct {
	client *messaging.Client
}

// NewClient initializes FCM from FIREBASE_CREDENTIALS_PATH or, failing that,
// the inline FIREBASE_CREDENTIALS_JSON value.
func NewClient(ctx context.Context) (*Client, error) {
	var opt option.ClientOption

	if credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH"); credPath != "" {
		opt = option.WithCredentialsFile(credPath)
	} else if credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON"); credJSON != "" {
		opt = option.WithCredentialsJSON([]byte(credJSON))
	} else {
		log.Println("no Firebase credentials found, push notifications disabled")
		return &Client{client: nil}, nil
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("fcm: init app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("fcm: messaging client: %w", err)
	}

	log.Println("Firebase Cloud Messaging initialized")
	return &Client{client: client}, nil
}

// SendNotification pushes one message to a single device token.
func (c *Client) SendNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("fcm: client not initialized")
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:    data,
		Android: androidConfig(),
	}

	response, err := c.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("fcm: send: %w", err)
	}

	log.Printf("fcm: sent message %s", response)
	return nil
}

// SendMulticast pushes one message to every token in the list.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("fcm: client not initialized")
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:    data,
		Android: androidConfig(),
	}

	response, err := c.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("fcm: multicast: %w", err)
	}

	log.Printf("fcm: sent %d messages (%d failures)", response.SuccessCount, response.FailureCount)
	return nil
}

func androidConfig() *messaging.AndroidConfig {
	return &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			ChannelID: "sentinel_alerts",
			Priority:  messaging.PriorityHigh,
		},
	}
}

// IsEnabled reports whether FCM credentials were configured.
func (c *Client) IsEnabled() bool {
	return c.client != nil
}
