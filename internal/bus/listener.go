package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/pkg/dbctx"
	"github.com/docukit/docgraph-backend/internal/utils"
)

// CascadeDeleter is the slice of AuthorService the listener needs.
type CascadeDeleter interface {
	CascadeDeleteAuthorAndWorks(dbc dbctx.Context, authorID int) error
}

// DeletionListener consumes author-deletion events from the deletion
// channel and triggers the full cascade for each one.
type DeletionListener struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
	cascade CascadeDeleter
}

func NewDeletionListener(log *logger.Logger, channel string, cascade CascadeDeleter) (*DeletionListener, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cascade == nil {
		return nil, fmt.Errorf("cascade deleter required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "localhost:6379", log))
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &DeletionListener{
		log:     log.With("service", "DeletionListener"),
		rdb:     rdb,
		channel: channel,
		cascade: cascade,
	}, nil
}

// Start subscribes and processes events until ctx is cancelled.
func (l *DeletionListener) Start(ctx context.Context) error {
	if l == nil || l.rdb == nil {
		return fmt.Errorf("deletion listener not initialized")
	}

	sub := l.rdb.Subscribe(ctx, l.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				l.handle(ctx, []byte(m.Payload))
			}
		}
	}()
	return nil
}

func (l *DeletionListener) handle(ctx context.Context, payload []byte) {
	authorID, ok := decodeDeletionEvent(payload)
	if !ok {
		l.log.Debug("ignoring deletion message without author id", "payload", string(payload))
		return
	}
	l.log.Info("deletion event received", "author_id", authorID)
	if err := l.cascade.CascadeDeleteAuthorAndWorks(dbctx.Context{Ctx: ctx}, authorID); err != nil {
		l.log.Error("cascade delete failed", "author_id", authorID, "error", err)
	}
}

// decodeDeletionEvent extracts the author id from a deletion event. The
// contract is a JSON object with an "ID" key; anything else is ignored
// rather than treated as an error.
func decodeDeletionEvent(payload []byte) (int, bool) {
	var event struct {
		ID *int `json:"ID"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return 0, false
	}
	if event.ID == nil {
		return 0, false
	}
	return *event.ID, true
}

func (l *DeletionListener) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
