package middleware

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	defaultReplayTTL = 24 * time.Hour
	replayKeyPrefix  = "waypoint:idempotency:"
)

var (
	_ IdempotencyCacher = new(ReplayMap)
	_ IdempotencyCacher = ReplayRedis{}
)

// A Replay is the response to a request made with an idempotency key.
// A zero Status means the request is still being handled.
type Replay struct {
	Body        []byte
	ContentType string
	Digest      []byte
	Status      int
	URI         string
}

// An IdempotencyCacher stores Replays paired to idempotency keys.
type IdempotencyCacher interface {
	// Claim saves rp for key unless key is already paired,
	// reporting whether it did.
	Claim(ctx context.Context, key string, rp Replay) (bool, error)

	// Get retrieves the Replay paired to key, reporting whether there is one.
	Get(ctx context.Context, key string) (Replay, bool, error)

	// Set pairs rp to key, overwriting any Replay already paired.
	Set(ctx context.Context, key string, rp Replay) error
}

// A ReplayMap stores Replays in memory.
//
// Server restarts reset a ReplayMap.
type ReplayMap struct {
	mu  sync.Mutex
	ttl time.Duration
	val map[string]replayMapVal
}

type replayMapVal struct {
	Replay

	at time.Time
}

// NewReplayMap constructs a *ReplayMap evicting Replays older than ttl.
func NewReplayMap(ttl time.Duration) *ReplayMap {
	return &ReplayMap{ttl: ttl, val: make(map[string]replayMapVal)}
}

// Claim pairs rp to key unless key is already paired.
func (m *ReplayMap) Claim(ctx context.Context, key string, rp Replay) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.evict()
	if _, ok := m.val[key]; ok {
		return false, nil
	}

	m.val[key] = replayMapVal{Replay: rp, at: time.Now()}
	return true, nil
}

// Get retrieves the Replay paired to key.
func (m *ReplayMap) Get(ctx context.Context, key string) (Replay, bool, error) {
	if err := ctx.Err(); err != nil {
		return Replay{}, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.evict()
	v, ok := m.val[key]
	return v.Replay, ok, nil
}

// Set overwrites the Replay paired to key.
func (m *ReplayMap) Set(ctx context.Context, key string, rp Replay) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.val[key] = replayMapVal{Replay: rp, at: time.Now()}
	return nil
}

// evict deletes Replays older than the ttl.
// m.mu must be held.
func (m *ReplayMap) evict() {
	cutoff := time.Now().Add(-m.ttl)
	for k, v := range m.val {
		if v.at.Before(cutoff) {
			delete(m.val, k)
		}
	}
}

// A ReplayRedis stores Replays in Redis, gob-encoded,
// so processes sharing a Redis instance honor each other's idempotency keys.
type ReplayRedis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayRedis constructs a ReplayRedis on client, expiring Replays after ttl.
func NewReplayRedis(client *redis.Client, ttl time.Duration) ReplayRedis {
	if ttl <= 0 {
		ttl = defaultReplayTTL
	}

	return ReplayRedis{client: client, ttl: ttl}
}

// Claim pairs rp to key with SETNX.
func (c ReplayRedis) Claim(ctx context.Context, key string, rp Replay) (bool, error) {
	b, err := encodeReplay(rp)
	if err != nil {
		return false, err
	}

	return c.client.SetNX(ctx, replayKeyPrefix+key, b, c.ttl).Result()
}

// Get retrieves the Replay paired to key.
func (c ReplayRedis) Get(ctx context.Context, key string) (Replay, bool, error) {
	b, err := c.client.Get(ctx, replayKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Replay{}, false, nil
	}

	if err != nil {
		return Replay{}, false, err
	}

	var rp Replay
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&rp); err != nil {
		return Replay{}, false, err
	}

	return rp, true, nil
}

// Set overwrites the Replay paired to key.
func (c ReplayRedis) Set(ctx context.Context, key string, rp Replay) error {
	b, err := encodeReplay(rp)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, replayKeyPrefix+key, b, c.ttl).Err()
}

func encodeReplay(rp Replay) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rp); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
