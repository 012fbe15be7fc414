package provider

import (
	"context"

	"github.com/aide-app/aide/internal/agent"
)

// Mock is the demo provider. It serves a fixed dataset and fakes the
// account link, standing in for a real calendar/tasks integration.
type Mock struct{}

// NewMock returns the demo provider.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Events(ctx context.Context) ([]agent.Entry, error) {
	return []agent.Entry{
		{ID: "gcal-1", Type: agent.EntryEvent, Title: "Project sync-up", Time: "10:00 AM"},
		{ID: "gcal-2", Type: agent.EntryEvent, Title: "Lunch with Sarah", Time: "12:30 PM"},
		{ID: "gcal-3", Type: agent.EntryEvent, Title: "Dentist appointment", Time: "3:00 PM"},
	}, nil
}

func (m *Mock) Tasks(ctx context.Context) ([]agent.Entry, error) {
	return []agent.Entry{
		{ID: "gtasks-1", Type: agent.EntryTask, Title: "Finalize Q3 report"},
		{ID: "gtasks-2", Type: agent.EntryTask, Title: "Buy groceries", Completed: true},
		{ID: "gtasks-3", Type: agent.EntryTask, Title: "Call the bank"},
	}, nil
}

func (m *Mock) Emails(ctx context.Context) ([]agent.Email, error) {
	return []agent.Email{
		{ID: "1", Subject: "Re: Project Update", Sender: "Alex", Snippet: "Just wanted to check in on the latest...", Read: false},
		{ID: "2", Subject: "Your order has shipped!", Sender: "Online Store", Snippet: "Your order #12345 is on its way.", Read: true},
		{ID: "3", Subject: "Weekly Newsletter", Sender: "Tech Weekly", Snippet: "The latest in AI, startups, and more.", Read: false},
	}, nil
}

func (m *Mock) Connect(ctx context.Context) (agent.Profile, error) {
	return agent.Profile{
		Name:      "Alex Doe",
		Email:     "alex.doe@example.com",
		AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=alexdoe",
	}, nil
}

func (m *Mock) Disconnect(ctx context.Context) error {
	return nil
}
