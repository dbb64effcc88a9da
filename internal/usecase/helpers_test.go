package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"ticket-service/internal/data/repository"
	"ticket-service/internal/dto/request"
	"ticket-service/internal/event"
	"ticket-service/pkg/lock"
	"ticket-service/pkg/metrics"
	"ticket-service/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.ScreeningEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev event.ScreeningEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	repo      *repository.Repository
	service   *Service
	publisher *recordingPublisher
	config    *utils.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	config := &utils.Config{
		Auth: utils.AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "admin",
			JWTSecret:     "test-secret",
			SessionTTL:    time.Hour,
			BcryptCost:    4,
		},
	}
	repo := repository.NewMemoryRepository(zap.NewNop())
	publisher := &recordingPublisher{}
	svc := NewService(repo, config, lock.NewLocalLocker(), publisher, metrics.New(), zap.NewNop())
	return &fixture{repo: repo, service: svc, publisher: publisher, config: config}
}

func (f *fixture) movie(t *testing.T, name string, length int) {
	t.Helper()
	_, err := f.service.Movie.CreateMovie(context.Background(), &request.MovieRequest{Name: name, Genre: "drama", Length: length})
	require.NoError(t, err)
}

func (f *fixture) room(t *testing.T, name string) {
	t.Helper()
	_, err := f.service.Room.CreateRoom(context.Background(), &request.RoomRequest{Name: name, Rows: 10, Columns: 10})
	require.NoError(t, err)
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := utils.ParseScreeningTime(value)
	require.NoError(t, err)
	return ts
}
