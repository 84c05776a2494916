package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/redact"
	"github.com/phrazzld/cards-api/internal/store"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	mobileKeyPrefix = "cards:mobile:"
	idKeyPrefix     = "cards:id:"

	// EpochKey is incremented on every write. A cache fill only commits if the
	// epoch it observed before reading the store is still current.
	EpochKey = "cards:epoch"
)

// errStaleFill aborts a cache fill that lost a race with a write.
var errStaleFill = errors.New("card cache fill is stale")

// MobileKey returns the cache key holding the card for a mobile number.
func MobileKey(mobileNumber string) string {
	return mobileKeyPrefix + mobileNumber
}

// IDKey returns the cache key mapping a card ID to its mobile number.
func IDKey(id int64) string {
	return idKeyPrefix + strconv.FormatInt(id, 10)
}

// CachedCardStore is a store.CardStore decorator that caches lookups by mobile number.
type CachedCardStore struct {
	next   store.CardStore
	client redis.UniversalClient
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var (
	_ store.CardStore = (*CachedCardStore)(nil)
	_ store.Pinger    = (*CachedCardStore)(nil)
)

// NewCachedCardStore wraps next with a Redis cache whose entries expire after ttl.
func NewCachedCardStore(
	next store.CardStore,
	client redis.UniversalClient,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedCardStore {
	// ALLOW-PANIC: constructor enforcing required dependencies
	if next == nil {
		panic("next store cannot be nil")
	}
	// ALLOW-PANIC: constructor enforcing required dependencies
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedCardStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "card_cache")),
	}
}

func (c *CachedCardStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, c.logger)
}

// FindByMobileNumber implements store.CardStore. Concurrent misses for the same
// mobile number share a single call to the underlying store.
func (c *CachedCardStore) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Card, error) {
	log := c.log(ctx)
	key := MobileKey(mobileNumber)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var card domain.Card
		if jsonErr := json.Unmarshal(raw, &card); jsonErr == nil {
			log.Debug("card cache hit", slog.String("mobile_number", redact.MobileNumber(mobileNumber)))
			return &card, nil
		}
		log.Warn("discarding undecodable cache entry", slog.String("key", MobileKey(redact.MobileNumber(mobileNumber))))
	case errors.Is(err, redis.Nil):
	default:
		log.Warn("card cache read failed", slog.String("error", redact.Error(err)))
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// The epoch must be read before the store so a write landing in between invalidates the fill.
		epoch, epochErr := c.epoch(ctx)
		card, err := c.next.FindByMobileNumber(ctx, mobileNumber)
		if err != nil {
			return nil, err
		}
		if epochErr == nil {
			c.put(ctx, card, epoch)
		}
		return card, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers may mutate the result; shared singleflight values must not leak between them.
	card := *v.(*domain.Card)
	return &card, nil
}

// FindByCardNumber implements store.CardStore. Card number lookups are not cached.
func (c *CachedCardStore) FindByCardNumber(ctx context.Context, cardNumber string) (*domain.Card, error) {
	return c.next.FindByCardNumber(ctx, cardNumber)
}

// Save implements store.CardStore and refreshes the cache entry for the saved card.
func (c *CachedCardStore) Save(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	var previous string
	if !card.IsNew() {
		previous, _ = c.client.Get(ctx, IDKey(card.ID)).Result()
	}

	saved, err := c.next.Save(ctx, card)
	if err != nil {
		return nil, err
	}

	if previous != "" && previous != saved.MobileNumber {
		c.evict(ctx, MobileKey(previous))
	}

	epoch, err := c.bump(ctx)
	if err != nil {
		// Entries written without a fresh epoch can be overwritten by an older fill.
		c.evict(ctx, MobileKey(saved.MobileNumber), IDKey(saved.ID))
		return saved, nil
	}
	c.put(ctx, saved, epoch)
	return saved, nil
}

// DeleteByID implements store.CardStore and evicts the deleted card.
func (c *CachedCardStore) DeleteByID(ctx context.Context, id int64) error {
	if err := c.next.DeleteByID(ctx, id); err != nil {
		return err
	}

	// Bumping first fences out fills that read the card before it was deleted.
	_, _ = c.bump(ctx)

	mobileNumber, err := c.client.Get(ctx, IDKey(id)).Result()
	switch {
	case err == nil:
		c.evict(ctx, MobileKey(mobileNumber), IDKey(id))
	case errors.Is(err, redis.Nil):
	default:
		c.log(ctx).Warn("card cache index read failed",
			slog.Int64("card_id", id),
			slog.String("error", redact.Error(err)))
	}
	return nil
}

// Ping checks Redis and, when supported, the underlying store.
func (c *CachedCardStore) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return err
	}
	if p, ok := c.next.(store.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// epoch returns the current write epoch; a missing key is epoch zero.
func (c *CachedCardStore) epoch(ctx context.Context) (int64, error) {
	n, err := c.client.Get(ctx, EpochKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.log(ctx).Warn("card cache epoch read failed", slog.String("error", redact.Error(err)))
		return 0, err
	}
	return n, nil
}

func (c *CachedCardStore) bump(ctx context.Context) (int64, error) {
	n, err := c.client.Incr(ctx, EpochKey).Result()
	if err != nil {
		c.log(ctx).Warn("card cache epoch bump failed", slog.String("error", redact.Error(err)))
		return 0, err
	}
	return n, nil
}

// put caches card if no write has bumped the epoch past the value observed by the caller.
func (c *CachedCardStore) put(ctx context.Context, card *domain.Card, epoch int64) {
	raw, err := json.Marshal(card)
	if err != nil {
		c.log(ctx).Warn("failed to encode card for cache", slog.String("error", err.Error()))
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, EpochKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != epoch {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, MobileKey(card.MobileNumber), raw, c.ttl)
			pipe.Set(ctx, IDKey(card.ID), card.MobileNumber, c.ttl)
			return nil
		})
		return err
	}, EpochKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.log(ctx).Debug("skipped stale card cache fill", slog.Int64("card_id", card.ID))
	default:
		c.log(ctx).Warn("card cache write failed", slog.String("error", redact.Error(err)))
	}
}

func (c *CachedCardStore) evict(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log(ctx).Warn("card cache eviction failed", slog.String("error", redact.Error(err)))
	}
}
