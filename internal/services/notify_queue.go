package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/iffypixy/metaorta/internal/config"
	"github.com/iffypixy/metaorta/pkg/logger"
)

const TaskTypeNotify = "notify:deliver"

// notifyTask is the queued form of a notification: the envelope is
// serialized as raw JSON so the worker can hand it to the hub unchanged.
type notifyTask struct {
	UserID uint            `json:"user_id"`
	Name   string          `json:"event"`
	Raw    json.RawMessage `json:"payload"`
}

// SyncNotifier delivers events directly into the hub on the caller's
// goroutine. Used when Redis is disabled; the hub send is non-blocking so
// this still never stalls the write path.
type SyncNotifier struct {
	hub *Hub
}

func NewSyncNotifier(hub *Hub) *SyncNotifier {
	return &SyncNotifier{hub: hub}
}

func (n *SyncNotifier) Notify(userID uint, event Event) {
	n.hub.Notify(userID, event)
}

// QueueNotifier pushes events through a Redis-backed asynq queue. A
// same-process worker drains the queue into the hub, keeping delivery off
// the request's critical path. Enqueue failures are logged and discarded.
type QueueNotifier struct {
	client *asynq.Client
}

func NewQueueNotifier(cfg *config.RedisConfig) (*QueueNotifier, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &QueueNotifier{client: client}, nil
}

func (n *QueueNotifier) Notify(userID uint, event Event) {
	raw, err := json.Marshal(event.Payload)
	if err != nil {
		logger.Error().Err(err).Str("event", event.Name).Msg("notify: marshal payload failed")
		return
	}

	payload, err := json.Marshal(notifyTask{UserID: userID, Name: event.Name, Raw: raw})
	if err != nil {
		logger.Error().Err(err).Str("event", event.Name).Msg("notify: marshal task failed")
		return
	}

	t := asynq.NewTask(TaskTypeNotify, payload)
	if _, err := n.client.Enqueue(t, asynq.Queue("default"), asynq.MaxRetry(3)); err != nil {
		logger.Error().Err(err).Str("event", event.Name).Msg("notify: enqueue failed")
	}
}

func (n *QueueNotifier) Close() error {
	return n.client.Close()
}

// NotifyWorker drains queued notifications into the hub.
type NotifyWorker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	hub     *Hub
	mu      sync.Mutex
	running bool
}

func NewNotifyWorker(cfg *config.RedisConfig, hub *Hub) *NotifyWorker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("task", task.Type()).Msg("notify worker: task failed")
			}),
		},
	)

	return &NotifyWorker{
		server: server,
		mux:    asynq.NewServeMux(),
		hub:    hub,
	}
}

func (w *NotifyWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true

	w.mux.HandleFunc(TaskTypeNotify, w.handleNotifyTask)

	go func() {
		logger.Info().Msg("notify worker started")
		if err := w.server.Run(w.mux); err != nil {
			logger.Error().Err(err).Msg("notify worker stopped")
		}
	}()
}

func (w *NotifyWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	w.server.Shutdown()
}

func (w *NotifyWorker) handleNotifyTask(ctx context.Context, t *asynq.Task) error {
	var task notifyTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		return err
	}

	w.hub.Notify(task.UserID, Event{Name: task.Name, Payload: task.Raw})
	return nil
}

// InitNotifier picks the delivery path based on config: Redis-backed queue
// when enabled and reachable, otherwise direct in-process delivery.
func InitNotifier(cfg *config.Config, hub *Hub) (Notifier, *NotifyWorker) {
	if !cfg.Redis.Enabled {
		logger.Info().Msg("notifier: sync delivery (redis disabled)")
		return NewSyncNotifier(hub), nil
	}

	queue, err := NewQueueNotifier(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("notifier: redis unavailable, falling back to sync delivery")
		return NewSyncNotifier(hub), nil
	}

	worker := NewNotifyWorker(&cfg.Redis, hub)
	worker.Start()
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("notifier: async delivery via redis")
	return queue, worker
}
