package autofill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

var (
	// ErrStore возвращается при ошибке обращения к Redis
	ErrStore = errors.New("autofill.store: redis operation failed")

	// ErrNotFound возвращается, когда сохранённых контактов нет
	ErrNotFound = errors.New("autofill.store: contact info not found")
)

const (
	fieldName  = "name"
	fieldPhone = "phone"
	fieldEmail = "email"
)

// DefaultTTL срок хранения контактов, когда встраивающий код не задал свой
const DefaultTTL = 30 * 24 * time.Hour

// Store хранилище контактных данных пациента для автозаполнения
// следующей записи. Данные живут в Redis-хэше с ограниченным TTL
// и сохраняются только с явного согласия пациента.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище автозаполнения.
// Неположительный ttl заменяется на DefaultTTL
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Save сохраняет контактные данные сессии
func (s *Store) Save(ctx context.Context, sessionID string, contact domain.ContactInfo) error {
	key := s.key(sessionID)

	fields := map[string]interface{}{
		fieldName:  contact.Name,
		fieldPhone: contact.Phone,
	}
	if contact.Email != nil {
		fields[fieldEmail] = *contact.Email
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Save %s: %v", ErrStore, key, err)
	}

	return nil
}

// Get получает сохранённые контактные данные сессии
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.ContactInfo, error) {
	key := s.key(sessionID)

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Get %s: %v", ErrStore, key, err)
	}

	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	contact := &domain.ContactInfo{
		Name:  fields[fieldName],
		Phone: fields[fieldPhone],
	}
	if email, ok := fields[fieldEmail]; ok && email != "" {
		contact.Email = &email
	}

	return contact, nil
}

// Delete удаляет сохранённые контактные данные сессии
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete %s: %v", ErrStore, s.key(sessionID), err)
	}

	return nil
}

func (s *Store) key(sessionID string) string {
	return "autofill:" + sessionID
}
