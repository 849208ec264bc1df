package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes a lock key only when it still carries the caller's
// token, so a slow client can never delete a lock that has since expired and
// been re-acquired by someone else.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// SeatLockKey is the advisory lock key for one seat of one show.
func SeatLockKey(showID, showSeatID uuid.UUID) string {
	return fmt.Sprintf("hold:show:%s:showSeat:%s", showID.String(), showSeatID.String())
}

// SeatLocker acquires and releases short-lived advisory locks over show seats.
// The lock value is the owning hold ID; the database remains the source of
// truth for seat state, the lock only serializes concurrent hold attempts.
type SeatLocker interface {
	// AcquireAll takes the lock for every seat or none. On the first seat that
	// is already locked it releases everything acquired so far and returns the
	// conflicting seat ID.
	AcquireAll(ctx context.Context, showID uuid.UUID, showSeatIDs []uuid.UUID, token string, ttl time.Duration) (conflict *uuid.UUID, err error)

	// ReleaseAll deletes the locks that still carry the given token. Best
	// effort: expired locks are already gone.
	ReleaseAll(ctx context.Context, showID uuid.UUID, showSeatIDs []uuid.UUID, token string)
}

type seatLocker struct {
	client *redis.Client
	log    *zap.Logger
}

func NewSeatLocker(client *redis.Client, log *zap.Logger) SeatLocker {
	return &seatLocker{
		client: client,
		log:    log.With(zap.String("component", "seat_locker")),
	}
}

func (l *seatLocker) AcquireAll(ctx context.Context, showID uuid.UUID, showSeatIDs []uuid.UUID, token string, ttl time.Duration) (*uuid.UUID, error) {
	var acquired []uuid.UUID
	for _, seatID := range showSeatIDs {
		ok, err := l.client.SetNX(ctx, SeatLockKey(showID, seatID), token, ttl).Result()
		if err != nil {
			l.rollback(ctx, showID, acquired, token)
			l.log.Error("Failed to acquire seat lock",
				zap.Error(err),
				zap.String("show_id", showID.String()),
				zap.String("show_seat_id", seatID.String()),
			)
			return nil, fmt.Errorf("acquire seat lock %s: %w", seatID.String(), err)
		}
		if !ok {
			l.rollback(ctx, showID, acquired, token)
			conflict := seatID
			return &conflict, nil
		}
		acquired = append(acquired, seatID)
	}

	return nil, nil
}

func (l *seatLocker) ReleaseAll(ctx context.Context, showID uuid.UUID, showSeatIDs []uuid.UUID, token string) {
	l.rollback(ctx, showID, showSeatIDs, token)
}

func (l *seatLocker) rollback(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID, token string) {
	for _, seatID := range seatIDs {
		key := SeatLockKey(showID, seatID)
		if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && err != redis.Nil {
			l.log.Warn("Failed to release seat lock",
				zap.Error(err),
				zap.String("key", key),
			)
		}
	}
}
