// Package realtime fans committed mutations out to live subscribers. It is
// the replacement for the hosted backend's snapshot listeners: writers
// publish a small change descriptor per topic, subscribers get notified and
// re-fetch the collection through the normal (visibility-filtered) read
// path. Delivery is at-most-once per event; a dropped event only delays the
// re-fetch until the next one.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Change describes one committed mutation.
type Change struct {
	Collection string    `json:"collection"` // workspaces|tasks|messages|notifications|users
	Action     string    `json:"action"`     // created|updated|deleted
	EntityID   string    `json:"entity_id"`
	ChannelID  string    `json:"channel_id,omitempty"`
	At         time.Time `json:"at"`
}

const topicPattern = "change:*"

// WorkspaceTopic scopes changes inside one workspace (tasks, messages,
// progress). The global staff channel uses its sentinel id here too.
func WorkspaceTopic(workspaceID string) string {
	return "change:workspace:" + workspaceID
}

// UserTopic scopes per-user changes (notifications).
func UserTopic(userID string) string {
	return "change:user:" + userID
}

// WorkspaceIndexTopic carries workspace create/delete for dashboard lists.
const WorkspaceIndexTopic = "change:workspaces"

// Hub routes changes from publishers to in-process subscribers, bridging
// across service instances over Redis pub/sub. Without a Redis client it
// degrades to single-instance local delivery.
type Hub struct {
	rdb    *redis.Client
	logger *zap.Logger

	mu     sync.RWMutex
	subs   map[string]map[int64]chan Change
	nextID int64
}

// NewHub creates a hub. rdb may be nil.
func NewHub(rdb *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		rdb:    rdb,
		logger: logger,
		subs:   make(map[string]map[int64]chan Change),
	}
}

// Run consumes the Redis side of the bridge until ctx ends. It must run
// before remote changes can reach local subscribers; with no Redis client it
// returns immediately and the hub stays local-only.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	pubsub := h.rdb.PSubscribe(ctx, topicPattern)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				h.logger.Warn("malformed change payload", zap.String("topic", msg.Channel), zap.Error(err))
				continue
			}
			h.deliverLocal(msg.Channel, change)
		}
	}
}

// Publish sends a change to every subscriber of the topic, across instances
// when Redis is available. Publish failures are logged, never returned:
// losing a wakeup must not fail the write that caused it.
func (h *Hub) Publish(ctx context.Context, topic string, change Change) {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	if h.rdb == nil {
		h.deliverLocal(topic, change)
		return
	}

	payload, err := json.Marshal(change)
	if err != nil {
		h.logger.Error("marshal change", zap.Error(err))
		return
	}
	if err := h.rdb.Publish(ctx, topic, payload).Err(); err != nil {
		h.logger.Warn("redis publish failed, delivering locally", zap.String("topic", topic), zap.Error(err))
		h.deliverLocal(topic, change)
	}
}

// Subscribe registers a listener for one topic. The returned teardown must
// be called exactly once when the subscriber goes away; after it returns the
// channel is closed and no further sends happen.
func (h *Hub) Subscribe(topic string) (<-chan Change, func()) {
	ch := make(chan Change, 16)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int64]chan Change)
	}
	h.subs[topic][id] = ch
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[topic], id)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

func (h *Hub) deliverLocal(topic string, change Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[topic] {
		select {
		case ch <- change:
		default:
			// slow subscriber; it will catch up on the next change
		}
	}
}
