// Package service holds the side-channel integrations the handlers
// call after a state change commits: redis fan-out for room status and
// the message-broker publisher for settlement events.
package service

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "github.com/redis/go-redis/v9"
)

// roomStatusMsg is the payload published on the room status channel.
type roomStatusMsg struct {
    RoomTypeID uint64 `json:"room_type_id"`
    Status     string `json:"status"`
    ChangedAt  string `json:"changed_at"`
}

// RoomNotifier broadcasts room status flips over redis pub/sub and
// drops the cached GET responses that embedded the old status.  Both
// actions are best effort: a failed notification is logged, never
// surfaced to the request that triggered it.
type RoomNotifier struct {
    rdb         *redis.Client
    channel     string
    cachePrefix string
}

// NewRoomNotifier returns a notifier publishing on channel and
// invalidating cache keys under cachePrefix.  A nil client yields a
// nil notifier, which callers treat as "notifications disabled".
func NewRoomNotifier(rdb *redis.Client, channel, cachePrefix string) *RoomNotifier {
    if rdb == nil {
        return nil
    }
    if channel == "" {
        channel = "rooms.status"
    }
    return &RoomNotifier{rdb: rdb, channel: channel, cachePrefix: cachePrefix}
}

// RoomStatusChanged publishes the new status of a room and flushes
// the response cache so the next availability lookup sees fresh data.
func (n *RoomNotifier) RoomStatusChanged(ctx context.Context, roomTypeID uint64, status string) {
    msg := roomStatusMsg{
        RoomTypeID: roomTypeID,
        Status:     status,
        ChangedAt:  time.Now().UTC().Format(time.RFC3339),
    }
    body, err := json.Marshal(msg)
    if err != nil {
        log.Printf("room-notifier: marshal failed: %v", err)
        return
    }
    if err := n.rdb.Publish(ctx, n.channel, body).Err(); err != nil {
        log.Printf("room-notifier: publish failed: %v", err)
    }
    n.invalidateCache(ctx)
}

// invalidateCache deletes every cached response under the configured
// prefix.  Keys are SHA-1 hashed so a targeted delete is not
// possible; the cache is small and rebuilt on the next request.
func (n *RoomNotifier) invalidateCache(ctx context.Context) {
    if n.cachePrefix == "" {
        return
    }
    iter := n.rdb.Scan(ctx, 0, n.cachePrefix+":*", 100).Iterator()
    var keys []string
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if err := iter.Err(); err != nil {
        log.Printf("room-notifier: cache scan failed: %v", err)
        return
    }
    if len(keys) == 0 {
        return
    }
    if err := n.rdb.Del(ctx, keys...).Err(); err != nil {
        log.Printf("room-notifier: cache invalidate failed: %v", err)
    }
}
