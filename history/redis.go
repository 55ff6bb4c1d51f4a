package history

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix     = "waypoint:history:"
	popMessage    = "pop"
	readyMessage  = "ready"
	maxTxRetries  = 10
	rootPath      = "/"
	emptyIndexVal = -1
)

var (
	_ History  = (*Redis)(nil)
	_ Notifier = (*Redis)(nil)
)

func init() {
	gob.Register(map[string]any{})
}

// A Redis is a History kept in a Redis backend under a session key,
// so any process connected to that backend sees the same stack.
//
// Entries are gob-encoded.
// Concrete types used as Entry.State other than basic types and map[string]any
// must be registered with [encoding/gob.Register].
//
// A session with no entries reads as the root path.
type Redis struct {
	client  *redis.Client
	session string

	mu     sync.Mutex
	pubsub *redis.PubSub
	pop    listeners
	ready  listeners
}

// NewRedis constructs a *Redis connecting with the options passed in.
func NewRedis(opts *redis.Options, session string) *Redis {
	return NewRedisFromClient(redis.NewClient(opts), session)
}

// NewRedisFromClient constructs a *Redis using an already connected client.
func NewRedisFromClient(client *redis.Client, session string) *Redis {
	return &Redis{client: client, session: session}
}

// Session returns the session key the Redis stores its entries under.
func (r *Redis) Session() string { return r.session }

func (r *Redis) entriesKey() string { return keyPrefix + r.session + ":entries" }
func (r *Redis) indexKey() string   { return keyPrefix + r.session + ":index" }
func (r *Redis) channel() string    { return keyPrefix + r.session + ":signals" }

// Location returns the current Entry.
func (r *Redis) Location(ctx context.Context) (Entry, error) {
	idx, err := readIndex(ctx, r.client, r.indexKey())
	if err != nil {
		return Entry{}, err
	}

	if idx == emptyIndexVal {
		return Entry{Path: rootPath}, nil
	}

	b, err := r.client.LIndex(ctx, r.entriesKey(), int64(idx)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{Path: rootPath}, nil
	}

	if err != nil {
		return Entry{}, err
	}

	return decodeEntry(b)
}

// Push discards the entries after the current one and appends e.
func (r *Redis) Push(ctx context.Context, e Entry) error {
	b, err := encodeEntry(e)
	if err != nil {
		return err
	}

	return r.transact(ctx, func(tx *redis.Tx) error {
		idx, err := readIndex(ctx, tx, r.indexKey())
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if idx == emptyIndexVal {
				pipe.Del(ctx, r.entriesKey())
			} else {
				pipe.LTrim(ctx, r.entriesKey(), 0, int64(idx))
			}
			pipe.RPush(ctx, r.entriesKey(), b)
			pipe.Set(ctx, r.indexKey(), idx+1, 0)
			return nil
		})

		return err
	})
}

// Replace overwrites the current Entry.
// Replacing in an empty session pushes e.
func (r *Redis) Replace(ctx context.Context, e Entry) error {
	b, err := encodeEntry(e)
	if err != nil {
		return err
	}

	return r.transact(ctx, func(tx *redis.Tx) error {
		idx, err := readIndex(ctx, tx, r.indexKey())
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if idx == emptyIndexVal {
				pipe.Del(ctx, r.entriesKey())
				pipe.RPush(ctx, r.entriesKey(), b)
				pipe.Set(ctx, r.indexKey(), 0, 0)
				return nil
			}

			pipe.LSet(ctx, r.entriesKey(), int64(idx), b)
			return nil
		})

		return err
	})
}

// Back is Go(ctx, -1).
func (r *Redis) Back(ctx context.Context) error { return r.Go(ctx, -1) }

// Forward is Go(ctx, 1).
func (r *Redis) Forward(ctx context.Context) error { return r.Go(ctx, 1) }

// Go moves the current Entry delta entries away
// and publishes a pop signal to every process subscribed to the session.
// Moving out of bounds does nothing.
func (r *Redis) Go(ctx context.Context, delta int) error {
	if delta == 0 {
		return nil
	}

	var moved bool
	err := r.transact(ctx, func(tx *redis.Tx) error {
		moved = false
		idx, err := readIndex(ctx, tx, r.indexKey())
		if err != nil {
			return err
		}

		n, err := tx.LLen(ctx, r.entriesKey()).Result()
		if err != nil {
			return err
		}

		next := idx + delta
		if idx == emptyIndexVal || next < 0 || int64(next) >= n {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.indexKey(), next, 0)
			return nil
		})
		moved = err == nil

		return err
	})
	if err != nil || !moved {
		return err
	}

	return r.client.Publish(ctx, r.channel(), popMessage).Err()
}

// Ready publishes a ready signal to every process subscribed to the session.
func (r *Redis) Ready(ctx context.Context) error {
	return r.client.Publish(ctx, r.channel(), readyMessage).Err()
}

// OnPop subscribes fn to pop signals published for the session.
func (r *Redis) OnPop(fn func()) func() {
	return r.subscribe(&r.pop, fn)
}

// OnReady subscribes fn to ready signals published for the session.
func (r *Redis) OnReady(fn func()) func() {
	return r.subscribe(&r.ready, fn)
}

// Close stops listening for signals and closes the client.
func (r *Redis) Close() error {
	r.mu.Lock()
	ps := r.pubsub
	r.pubsub = nil
	r.mu.Unlock()

	if ps != nil {
		if err := ps.Close(); err != nil {
			return err
		}
	}

	return r.client.Close()
}

func (r *Redis) subscribe(ls *listeners, fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := ls.add(fn)
	if r.pubsub == nil {
		r.pubsub = r.client.Subscribe(context.Background(), r.channel())
		go r.listen(r.pubsub.Channel())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			ls.remove(id)
		})
	}
}

// listen dispatches signals until ch closes.
func (r *Redis) listen(ch <-chan *redis.Message) {
	for msg := range ch {
		r.mu.Lock()
		var fns []func()
		switch msg.Payload {
		case popMessage:
			fns = r.pop.snapshot()
		case readyMessage:
			fns = r.ready.snapshot()
		}
		r.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}

// transact runs fn in an optimistic transaction watching the session's keys,
// retrying when another client changed them first.
func (r *Redis) transact(ctx context.Context, fn func(*redis.Tx) error) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, fn, r.indexKey(), r.entriesKey())
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		return err
	}

	return fmt.Errorf("%w: session %s", redis.TxFailedErr, r.session)
}

// A getter is either a *redis.Client or a *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// readIndex reads the current index, or emptyIndexVal if the session has none.
func readIndex(ctx context.Context, c getter, key string) (int, error) {
	idx, err := c.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return emptyIndexVal, nil
	}

	if err != nil {
		return 0, err
	}

	return idx, nil
}

func encodeEntry(e Entry) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := gob.NewEncoder(b).Encode(e); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCodec, err)
	}

	return b.Bytes(), nil
}

func decodeEntry(b []byte) (Entry, error) {
	var e Entry
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrCodec, err)
	}

	return e, nil
}
