package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bsm/redislock"
	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
	"github.com/redis/go-redis/v9"
)

const (
	redisCounterKey = "parking:session:counter"
	redisIndexKey   = "parking:sessions"
	redisKeyPrefix  = "parking:session:"
	redisLockPrefix = "LOCK:parking:session:"
)

// RedisStore keeps each session in a hash keyed by id, the id counter in a
// plain INCR key, and an id list for insertion-order listing. Completion runs
// under a per-session lock so concurrent exits settle on a single exit time.
type RedisStore struct {
	rdb      *redis.Client
	locker   *redislock.Client
	lockOpts *redislock.Options
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		locker: redislock.New(rdb),
		lockOpts: &redislock.Options{
			RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 3),
		},
	}
}

func sessionKey(id int64) string {
	return redisKeyPrefix + strconv.FormatInt(id, 10)
}

func (s *RedisStore) Create(ctx context.Context, vehicleID string, entryTime time.Time) (sessiondomain.Session, error) {
	id, err := s.rdb.Incr(ctx, redisCounterKey).Result()
	if err != nil {
		return sessiondomain.Session{}, fmt.Errorf("failed to allocate session id: %w", err)
	}
	if vehicleID == "" {
		vehicleID = sessiondomain.PlaceholderVehicleID(id)
	}
	sess := sessiondomain.Session{
		SessionID: id,
		VehicleID: vehicleID,
		EntryTime: entryTime,
		Status:    sessiondomain.StatusActive,
	}
	if err := s.save(ctx, sess); err != nil {
		return sessiondomain.Session{}, err
	}
	if err := s.rdb.RPush(ctx, redisIndexKey, id).Err(); err != nil {
		return sessiondomain.Session{}, fmt.Errorf("failed to index session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) save(ctx context.Context, sess sessiondomain.Session) error {
	state := map[string]string{
		"vehicle_id": sess.VehicleID,
		"entry_time": sess.EntryTime.Format(time.RFC3339Nano),
		"exit_time":  formatExitTime(sess.ExitTime),
		"status":     string(sess.Status),
	}
	if err := s.rdb.HSet(ctx, sessionKey(sess.SessionID), state).Err(); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id int64) (sessiondomain.Session, error) {
	state, err := s.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return sessiondomain.Session{}, fmt.Errorf("failed to fetch session state: %w", err)
	}
	if len(state) == 0 {
		return sessiondomain.Session{}, sessiondomain.ErrNotFound
	}
	return parseSession(id, state)
}

func (s *RedisStore) Complete(ctx context.Context, id int64, exitTime time.Time) (sessiondomain.Session, error) {
	lock, err := s.locker.Obtain(ctx, redisLockPrefix+strconv.FormatInt(id, 10), time.Second, s.lockOpts)
	if err != nil {
		return sessiondomain.Session{}, fmt.Errorf("failed to obtain session lock: %w", err)
	}
	defer lock.Release(ctx)

	sess, err := s.Get(ctx, id)
	if err != nil {
		return sessiondomain.Session{}, err
	}
	if sess.Status == sessiondomain.StatusCompleted {
		return sess, nil
	}
	t := exitTime
	sess.ExitTime = &t
	sess.Status = sessiondomain.StatusCompleted
	if err := s.save(ctx, sess); err != nil {
		return sessiondomain.Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) ListAll(ctx context.Context) ([]sessiondomain.Session, error) {
	ids, err := s.rdb.LRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list session ids: %w", err)
	}
	sessions := make([]sessiondomain.Session, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt session index entry %q: %w", raw, err)
		}
		sess, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	ids, err := s.rdb.LRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list session ids: %w", err)
	}
	keys := make([]string, 0, len(ids)+2)
	for _, raw := range ids {
		keys = append(keys, redisKeyPrefix+raw)
	}
	keys = append(keys, redisIndexKey, redisCounterKey)
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

func parseSession(id int64, state map[string]string) (sessiondomain.Session, error) {
	sess := sessiondomain.Session{
		SessionID: id,
		VehicleID: state["vehicle_id"],
		Status:    sessiondomain.Status(state["status"]),
	}
	var err error
	if raw := state["entry_time"]; raw != "" {
		if sess.EntryTime, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return sessiondomain.Session{}, fmt.Errorf("failed to parse entry time: %w", err)
		}
	}
	if raw := state["exit_time"]; raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return sessiondomain.Session{}, fmt.Errorf("failed to parse exit time: %w", err)
		}
		sess.ExitTime = &t
	}
	return sess, nil
}

func formatExitTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
