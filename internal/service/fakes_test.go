package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/realtime"
	"github.com/offloadr/connect-api/internal/repository"
)

// In-memory repository fakes. IDs are assigned sequentially so tests can
// assert ordering without caring about uuid values.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User

	roleChanges []string
	deletes     []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	r.roleChanges = append(r.roleChanges, id)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	r.deletes = append(r.deletes, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeWorkspaceRepo struct {
	mu         sync.Mutex
	seq        int
	workspaces map[string]*domain.Workspace
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[string]*domain.Workspace)}
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, ws *domain.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws.ID == "" {
		r.seq++
		ws.ID = fmt.Sprintf("w%d", r.seq)
	}
	r.workspaces[ws.ID] = ws
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ws
	return &copied, nil
}

func (r *fakeWorkspaceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workspaces[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.workspaces, id)
	return nil
}

func (r *fakeWorkspaceRepo) List(_ context.Context) ([]domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Workspace, 0, len(r.workspaces))
	for _, ws := range r.workspaces {
		out = append(out, *ws)
	}
	return out, nil
}

func (r *fakeWorkspaceRepo) ListByClient(_ context.Context, clientID string) ([]domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Workspace, 0)
	for _, ws := range r.workspaces {
		if ws.ClientID == clientID {
			out = append(out, *ws)
		}
	}
	return out, nil
}

func (r *fakeWorkspaceRepo) UpdateProgress(_ context.Context, id string, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ws.Progress = progress
	return nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		r.seq++
		task.ID = fmt.Sprintf("t%d", r.seq)
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) ListByWorkspace(_ context.Context, workspaceID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, 0)
	for _, task := range r.tasks {
		if task.WorkspaceID == workspaceID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) SetCompleted(_ context.Context, id string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return pgx.ErrNoRows
	}
	task.Completed = completed
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	seq      int
	messages []domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	msg.ID = fmt.Sprintf("m%d", r.seq)
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListByChannel(_ context.Context, channelID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, 0)
	for _, msg := range r.messages {
		if msg.ChannelID == channelID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListByChannelAndType(_ context.Context, channelID string, msgType domain.MessageType) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, 0)
	for _, msg := range r.messages {
		if msg.ChannelID == channelID && msg.Type == msgType {
			out = append(out, msg)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	seq           int
	notifications []*domain.Notification

	failCreate bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return fmt.Errorf("write rejected")
	}
	r.seq++
	n.ID = fmt.Sprintf("n%d", r.seq)
	copied := *n
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) ListUnreadByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	unread, err := r.ListUnreadByUser(context.Background(), userID)
	return len(unread), err
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeNotificationRepo) byUser(userID string) []domain.Notification {
	out, _ := r.ListByUser(context.Background(), userID)
	return out
}

type fakeResetRepo struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = fmt.Sprintf("r%d", r.seq)
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

// fakeFeed records realtime publishes.
type fakeFeed struct {
	mu      sync.Mutex
	changes []struct {
		Topic  string
		Change realtime.Change
	}
}

func (f *fakeFeed) Publish(_ context.Context, topic string, change realtime.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, struct {
		Topic  string
		Change realtime.Change
	}{topic, change})
}
