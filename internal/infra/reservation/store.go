package reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// ErrStore возвращается при ошибке обращения к Redis
var ErrStore = errors.New("reservation.store: redis operation failed")

// TimeProvider предоставляет текущее время (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Store хранилище мягких резерваций слотов в Redis.
// Резервация — рекомендательный сигнал "слот кто-то оформляет":
// она уменьшает число видимых мест, но не заменяет проверку
// вместимости в транзакции БД при создании приёма.
//
// Ключ resv:{dentistID}:{date}:{time} — sorted set, member = sessionID,
// score = unix-время истечения резервации. Истёкшие члены вычищаются
// лениво при каждом обращении к ключу.
type Store struct {
	client       *redis.Client
	ttl          time.Duration
	timeProvider TimeProvider
}

// NewStore создает новое хранилище резерваций
func NewStore(client *redis.Client, ttl time.Duration, timeProvider TimeProvider) *Store {
	return &Store{
		client:       client,
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Reserve ставит мягкую резервацию слота от имени сессии.
// Повторный вызов той же сессией продлевает резервацию.
func (s *Store) Reserve(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString, sessionID string) error {
	key := s.key(dentistID, date, slotTime)
	now := s.timeProvider.Now()
	expiresAt := now.Add(s.ttl)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", formatScore(now))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(expiresAt.Unix()), Member: sessionID})
	// Ключ живёт чуть дольше самой резервации, чтобы ленивые чистки успевали
	pipe.Expire(ctx, key, s.ttl+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Reserve %s: %v", ErrStore, key, err)
	}

	return nil
}

// Release снимает резервацию сессии со слота
func (s *Store) Release(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString, sessionID string) error {
	key := s.key(dentistID, date, slotTime)

	if err := s.client.ZRem(ctx, key, sessionID).Err(); err != nil {
		return fmt.Errorf("%w: Release %s: %v", ErrStore, key, err)
	}

	return nil
}

// CountForeign считает живые резервации слота, принадлежащие чужим сессиям.
// Собственная резервация sessionID не считается — иначе сессия
// заблокировала бы слот сама для себя.
func (s *Store) CountForeign(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString, sessionID string) (int, error) {
	key := s.key(dentistID, date, slotTime)
	now := s.timeProvider.Now()

	if err := s.client.ZRemRangeByScore(ctx, key, "-inf", formatScore(now)).Err(); err != nil {
		return 0, fmt.Errorf("%w: CountForeign prune %s: %v", ErrStore, key, err)
	}

	members, err := s.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: CountForeign range %s: %v", ErrStore, key, err)
	}

	count := 0
	for _, member := range members {
		if member != sessionID {
			count++
		}
	}

	return count, nil
}

// CountAll считает все живые резервации слота
func (s *Store) CountAll(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString) (int, error) {
	return s.CountForeign(ctx, dentistID, date, slotTime, "")
}

func (s *Store) key(dentistID int64, date time.Time, slotTime types.TimeString) string {
	return fmt.Sprintf("resv:%d:%s:%s", dentistID, date.Format("2006-01-02"), slotTime.String())
}

func formatScore(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
