package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// The ledger's durable state lives under two fixed keys: the serialized
// ticket list and the last issued queue number.
const (
	keyTickets    = "pos:queue:tickets"
	keyLastNumber = "pos:queue:last_number"
)

// RedisTicketStore persists the queue ledger snapshot. Ticket timestamps go
// through encoding/json's time.Time encoding (RFC 3339 with nanoseconds),
// so they round-trip as points in time.
type RedisTicketStore struct {
	rdb *redis.Client
}

func NewRedisTicketStore(rdb *redis.Client) *RedisTicketStore {
	return &RedisTicketStore{rdb: rdb}
}

func (s *RedisTicketStore) Save(ctx context.Context, snap usecase.QueueSnapshot) error {
	raw, err := json.Marshal(snap.Tickets)
	if err != nil {
		return fmt.Errorf("encode tickets: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, keyTickets, raw, 0)
	pipe.Set(ctx, keyLastNumber, strconv.FormatInt(snap.LastNumber, 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save queue state: %w", err)
	}
	return nil
}

func (s *RedisTicketStore) Load(ctx context.Context) (usecase.QueueSnapshot, error) {
	var snap usecase.QueueSnapshot

	raw, err := s.rdb.Get(ctx, keyTickets).Bytes()
	switch {
	case err == redis.Nil:
		// nothing stored yet
	case err != nil:
		return snap, fmt.Errorf("load tickets: %w", err)
	default:
		if err := json.Unmarshal(raw, &snap.Tickets); err != nil {
			return snap, fmt.Errorf("%w: tickets: %v", usecase.ErrCorruptSnapshot, err)
		}
	}

	val, err := s.rdb.Get(ctx, keyLastNumber).Result()
	switch {
	case err == redis.Nil:
		return snap, nil
	case err != nil:
		return snap, fmt.Errorf("load last number: %w", err)
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return snap, fmt.Errorf("%w: last number %q", usecase.ErrCorruptSnapshot, val)
	}
	snap.LastNumber = n
	return snap, nil
}

var _ usecase.TicketStore = (*RedisTicketStore)(nil)
