package push

import (
	"fmt"
	"time"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
	"github.com/sirupsen/logrus"
)

// Client delivers notifications to a device token via APNs, and can defer
// delivery by a number of seconds with an in-process timer.
type Client struct {
	client *apns2.Client
	topic  string
}

// NewClient builds an APNs client from a .p8 signing key.
func NewClient(authKeyPath, keyID, teamID, topic string, production bool) (*Client, error) {
	authKey, err := token.AuthKeyFromFile(authKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs auth key: %v", err)
	}

	t := &token.Token{
		AuthKey: authKey,
		KeyID:   keyID,
		TeamID:  teamID,
	}

	client := apns2.NewTokenClient(t)
	if production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &Client{client: client, topic: topic}, nil
}

// Push sends a notification to the device immediately.
func (c *Client) Push(deviceToken, title, body string, data map[string]interface{}) error {
	p := payload.NewPayload().
		AlertTitle(title).
		AlertBody(body).
		Sound("default")
	for k, v := range data {
		p.Custom(k, v)
	}

	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       c.topic,
		Payload:     p,
	}

	res, err := c.client.Push(notification)
	if err != nil {
		return fmt.Errorf("failed to push notification: %v", err)
	}
	if !res.Sent() {
		return fmt.Errorf("notification rejected: %s", res.Reason)
	}
	return nil
}

// ScheduleAfter delivers the notification after the given number of seconds.
// Delivery is best-effort; errors after the timer fires are only logged.
func (c *Client) ScheduleAfter(seconds int64, deviceToken, title, body string, data map[string]interface{}) error {
	if seconds < 1 {
		return fmt.Errorf("delay must be at least 1 second")
	}
	time.AfterFunc(time.Duration(seconds)*time.Second, func() {
		if err := c.Push(deviceToken, title, body, data); err != nil {
			logrus.WithError(err).Warn("Scheduled notification delivery failed")
		}
	})
	return nil
}
