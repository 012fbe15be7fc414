package ops

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aide-app/aide/internal/agent"
	"github.com/aide-app/aide/internal/config"
	"github.com/aide-app/aide/internal/db"
	"github.com/aide-app/aide/internal/logging"
	"github.com/aide-app/aide/internal/model"
	"github.com/aide-app/aide/internal/provider"
)

// fakeGenerator is a scripted model for turn-protocol tests.
type fakeGenerator struct {
	mu         sync.Mutex
	reply      string
	err        error
	calls      int
	lastTurns  []model.Turn
	lastSystem string
}

func (f *fakeGenerator) GenerateReply(ctx context.Context, turns []model.Turn, system string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastTurns = append([]model.Turn(nil), turns...)
	f.lastSystem = system
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// blockingGenerator parks inside GenerateReply until released, to exercise
// the AwaitingReply guard.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingGenerator) GenerateReply(ctx context.Context, turns []model.Turn, system string) (string, error) {
	close(b.started)
	<-b.release
	return "done waiting", nil
}

// failingProvider rejects every query, for fetch-degradation tests.
type failingProvider struct{}

func (failingProvider) Events(ctx context.Context) ([]agent.Entry, error) {
	return nil, fmt.Errorf("calendar unreachable")
}

func (failingProvider) Tasks(ctx context.Context) ([]agent.Entry, error) {
	return nil, fmt.Errorf("tasks unreachable")
}

func (failingProvider) Emails(ctx context.Context) ([]agent.Email, error) {
	return nil, fmt.Errorf("mail unreachable")
}

func (failingProvider) Connect(ctx context.Context) (agent.Profile, error) {
	return agent.Profile{}, fmt.Errorf("auth unreachable")
}

func (failingProvider) Disconnect(ctx context.Context) error {
	return fmt.Errorf("auth unreachable")
}

// testDeps builds Deps over a temp database, a scripted model, and the
// demo provider.
func testDeps(t *testing.T) (*Deps, *fakeGenerator) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	gen := &fakeGenerator{reply: "Here's your day."}
	deps := &Deps{
		DB:       database,
		Cfg:      config.DefaultConfig(),
		Model:    gen,
		Provider: provider.NewMock(),
		Log:      logging.Nop(),
	}
	return deps, gen
}

// connect links the demo account so data capabilities become visible.
func connect(t *testing.T, deps *Deps) {
	t.Helper()
	if _, err := Connect(context.Background(), deps); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
}
