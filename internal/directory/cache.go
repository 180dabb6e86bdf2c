package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	lecturerKeyPrefix = "nau:lecturer:"
	groupKeyPrefix    = "nau:group:"
	facultyKeyPrefix  = "nau:faculty:"
)

// LecturerSource источник кратких записей преподавателей
type LecturerSource interface {
	LookupLecturers(ctx context.Context, codes []string) ([]model.LecturerShort, error)
}

// CachedLecturers кэширует ответы источника преподавателей в Redis.
// С nil клиентом работает как прямой вызов источника.
type CachedLecturers struct {
	source LecturerSource
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedLecturers(source LecturerSource, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedLecturers {
	return &CachedLecturers{
		source: source,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// LookupLecturers берёт известные коды из кэша, остальные запрашивает у источника
func (c *CachedLecturers) LookupLecturers(ctx context.Context, codes []string) ([]model.LecturerShort, error) {
	if c.rdb == nil || len(codes) == 0 {
		return c.source.LookupLecturers(ctx, codes)
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = lecturerKeyPrefix + code
	}

	cached, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("Redis MGET failed, falling back to source", zap.Error(err))
		return c.source.LookupLecturers(ctx, codes)
	}

	result := make([]model.LecturerShort, 0, len(codes))
	var missing []string
	for i, v := range cached {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, codes[i])
			continue
		}
		var l model.LecturerShort
		if err := sonic.UnmarshalString(s, &l); err != nil {
			missing = append(missing, codes[i])
			continue
		}
		result = append(result, l)
	}

	if len(missing) == 0 {
		return result, nil
	}

	fresh, err := c.source.LookupLecturers(ctx, missing)
	if err != nil {
		return nil, err
	}

	pipe := c.rdb.Pipeline()
	for _, l := range fresh {
		data, err := sonic.MarshalString(l)
		if err != nil {
			continue
		}
		pipe.Set(ctx, lecturerKeyPrefix+l.Code, data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Redis pipeline failed", zap.Error(err))
	}

	return append(result, fresh...), nil
}

// GroupSource справочник групп и факультетов
type GroupSource interface {
	GetGroup(ctx context.Context, groupCode string) (*model.Group, error)
	GetFaculty(ctx context.Context, code string) (*model.Faculty, error)
	Groups(ctx context.Context, faculty string) ([]model.Group, error)
	Lecturers(ctx context.Context) ([]model.LecturerFull, error)
}

// CachedGroups кэширует группы и факультеты в Redis
type CachedGroups struct {
	GroupSource
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedGroups(source GroupSource, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedGroups {
	return &CachedGroups{
		GroupSource: source,
		rdb:         rdb,
		ttl:         ttl,
		logger:      logger,
	}
}

// GetGroup группа из кэша или справочника
func (c *CachedGroups) GetGroup(ctx context.Context, groupCode string) (*model.Group, error) {
	return cached(ctx, c, groupKeyPrefix+groupCode, func() (*model.Group, error) {
		return c.GroupSource.GetGroup(ctx, groupCode)
	})
}

// GetFaculty факультет из кэша или справочника
func (c *CachedGroups) GetFaculty(ctx context.Context, code string) (*model.Faculty, error) {
	return cached(ctx, c, facultyKeyPrefix+code, func() (*model.Faculty, error) {
		return c.GroupSource.GetFaculty(ctx, code)
	})
}

func cached[T any](ctx context.Context, c *CachedGroups, key string, load func() (*T, error)) (*T, error) {
	if c.rdb == nil {
		return load()
	}

	data, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var v T
		if err := sonic.UnmarshalString(data, &v); err == nil {
			return &v, nil
		}
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Redis GET failed", zap.String("key", key), zap.Error(err))
	}

	v, err := load()
	if err != nil || v == nil {
		return v, err
	}

	encoded, err := sonic.MarshalString(v)
	if err != nil {
		return nil, fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis SET failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
