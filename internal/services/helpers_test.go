package services

import (
	"context"
	"sync"
	"testing"

	"campus-connect/internal/events"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/testutil"
	"campus-connect/pkg/logger"

	"gorm.io/gorm"
)

type emitted struct {
	Room  string
	Event string
	Data  interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []emitted
}

func (b *recordingBroadcaster) EmitToRoom(room, event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, emitted{Room: room, Event: event, Data: data})
}

func (b *recordingBroadcaster) inRoom(room string) []emitted {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []emitted
	for _, e := range b.events {
		if e.Room == room {
			out = append(out, e)
		}
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type testEnv struct {
	db            *gorm.DB
	users         *postgres.UserRepository
	requests      *postgres.RequestRepository
	chats         *postgres.ChatRepository
	messages      *postgres.MessageRepository
	notifications *postgres.NotificationRepository
	broadcaster   *recordingBroadcaster
	publisher     *recordingPublisher
	notifier      *NotificationService
	requestSvc    *RequestService
	chatSvc       *ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.NewNop()

	env := &testEnv{
		db:            db,
		users:         postgres.NewUserRepository(db),
		requests:      postgres.NewRequestRepository(db),
		chats:         postgres.NewChatRepository(db),
		messages:      postgres.NewMessageRepository(db),
		notifications: postgres.NewNotificationRepository(db),
		broadcaster:   &recordingBroadcaster{},
		publisher:     &recordingPublisher{},
	}
	env.notifier = NewNotificationService(env.notifications, env.broadcaster, log)
	env.requestSvc = NewRequestService(env.requests, env.users, env.notifier, env.publisher, log)
	env.chatSvc = NewChatService(env.chats, env.messages, env.users, env.requests, env.notifier, env.broadcaster, env.publisher, log)
	return env
}

func (e *testEnv) user(t *testing.T, name string, role models.Role) *models.User {
	return testutil.CreateUser(t, e.db, name, name+"@campus.edu", role)
}

// acceptedPair creates a junior and a senior linked by an accepted request.
func (e *testEnv) acceptedPair(t *testing.T) (*models.User, *models.User, uint) {
	t.Helper()
	junior := e.user(t, "junior", models.RoleJunior)
	senior := e.user(t, "senior", models.RoleSenior)

	ctx := context.Background()
	req, err := e.requestSvc.Create(ctx, junior.ID, &models.CreateMentorshipRequest{ToUserID: models.FlexID(senior.ID)})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	resp, err := e.requestSvc.Respond(ctx, senior.ID, req.ID, models.ActionAccept)
	if err != nil {
		t.Fatalf("accept request: %v", err)
	}
	return junior, senior, *resp.ChatID
}
