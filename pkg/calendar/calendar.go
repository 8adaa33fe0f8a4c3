package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotFound is returned when an event id no longer resolves, typically
// because the user deleted the event directly in their calendar app.
var ErrNotFound = errors.New("calendar event not found")

// Event mirrors a date night into the user's personal calendar.
type Event struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Provider is the device-calendar collaborator. Implementations talk to
// whatever calendar backend the user connected; internals are out of scope.
type Provider interface {
	CreateEvent(ctx context.Context, accessToken string, event *Event) (string, error)
	GetEvent(ctx context.Context, accessToken, eventID string) (*Event, error)
	DeleteEvent(ctx context.Context, accessToken, eventID string) error
}

// RESTProvider implements Provider against a calendar bridge API.
type RESTProvider struct {
	baseURL string
	client  *http.Client
}

func NewRESTProvider(baseURL string) *RESTProvider {
	return &RESTProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *RESTProvider) CreateEvent(ctx context.Context, accessToken string, event *Event) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to encode event: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calendar request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("calendar returned status %d", resp.StatusCode)
	}

	var created Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode calendar response: %v", err)
	}
	return created.ID, nil
}

func (p *RESTProvider) GetEvent(ctx context.Context, accessToken, eventID string) (*Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/events/"+eventID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar returned status %d", resp.StatusCode)
	}

	var event Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response: %v", err)
	}
	return &event, nil
}

func (p *RESTProvider) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.baseURL+"/events/"+eventID, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("calendar returned status %d", resp.StatusCode)
	}
	return nil
}
