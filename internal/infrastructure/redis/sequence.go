package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/config"
)

// Ensure Sequence implements inventory.SequenceGenerator.
var _ inventory.SequenceGenerator = (*Sequence)(nil)

const (
	defaultKeyPrefix = "fulfillment:seq:"
	// Las claves son diarias; pasado este tiempo ya no se consultan.
	defaultTTL = 48 * time.Hour
)

// Sequence contador compartido entre instancias con INCR.
type Sequence struct {
	client    goredis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewClient abre la conexión y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return client, nil
}

// NewSequence crea el contador sobre un cliente existente.
func NewSequence(client goredis.UniversalClient) *Sequence {
	return &Sequence{client: client, keyPrefix: defaultKeyPrefix, ttl: defaultTTL}
}

// Next incrementa y devuelve el contador de key, empezando en 1.
// INCR y EXPIRE van en la misma transacción MULTI.
func (s *Sequence) Next(ctx context.Context, key string) (int64, error) {
	k := s.keyPrefix + key
	var incr *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("incrementar %s: %w", k, err)
	}
	return incr.Val(), nil
}
