// Package cache decorates the reference-data repositories with a Redis
// read-through cache. Reference data (divisions, categories, persons,
// groups) is read on every statement build but changes rarely, so a short
// TTL removes most of the read load. Cache failures degrade to the
// underlying repository rather than failing the request.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	"github.com/unionbooks/chapter_ledger/internal/middleware"
)

const (
	divisionsKey  = "ref:divisions"
	categoriesKey = "ref:categories"
	personsKey    = "ref:persons"
	groupsKey     = "ref:groups"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Fallback to treating the value as a plain host:port address.
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// WrapReferenceRepositories replaces the reference repositories in the
// provider with cached decorators sharing one Redis client.
func WrapReferenceRepositories(provider *portsrepo.RepositoryProvider, client *redis.Client, ttl time.Duration) {
	provider.DivisionRepo = &cachedDivisionRepository{inner: provider.DivisionRepo, client: client, ttl: ttl}
	provider.CategoryRepo = &cachedCategoryRepository{inner: provider.CategoryRepo, client: client, ttl: ttl}
	provider.PersonRepo = &cachedPersonRepository{inner: provider.PersonRepo, client: client, ttl: ttl}
	provider.GroupRepo = &cachedGroupRepository{inner: provider.GroupRepo, client: client, ttl: ttl}
}

// readThrough fetches a cached JSON list or loads it from the repository
// and stores it. Any Redis error falls back to the loader.
func readThrough[T any](ctx context.Context, client *redis.Client, key string, ttl time.Duration, load func(context.Context) ([]T, error)) ([]T, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cached, err := client.Get(ctx, key).Bytes()
	if err == nil {
		var items []T
		if jsonErr := json.Unmarshal(cached, &items); jsonErr == nil {
			return items, nil
		}
		logger.Warn("Discarding malformed cache entry", slog.String("key", key))
	} else if err != redis.Nil {
		logger.Warn("Cache read failed, falling back to database", slog.String("key", key), slog.String("error", err.Error()))
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(items); jsonErr == nil {
		if setErr := client.Set(ctx, key, payload, ttl).Err(); setErr != nil {
			logger.Warn("Cache write failed", slog.String("key", key), slog.String("error", setErr.Error()))
		}
	}
	return items, nil
}

func invalidate(ctx context.Context, client *redis.Client, key string) {
	if err := client.Del(ctx, key).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

type cachedDivisionRepository struct {
	inner  portsrepo.DivisionRepository
	client *redis.Client
	ttl    time.Duration
}

func (r *cachedDivisionRepository) SaveDivision(ctx context.Context, division domain.Division) error {
	if err := r.inner.SaveDivision(ctx, division); err != nil {
		return err
	}
	invalidate(ctx, r.client, divisionsKey)
	return nil
}

func (r *cachedDivisionRepository) ListDivisions(ctx context.Context) ([]domain.Division, error) {
	return readThrough(ctx, r.client, divisionsKey, r.ttl, r.inner.ListDivisions)
}

func (r *cachedDivisionRepository) DeleteDivision(ctx context.Context, divisionID string) error {
	if err := r.inner.DeleteDivision(ctx, divisionID); err != nil {
		return err
	}
	invalidate(ctx, r.client, divisionsKey)
	return nil
}

type cachedCategoryRepository struct {
	inner  portsrepo.CategoryRepository
	client *redis.Client
	ttl    time.Duration
}

func (r *cachedCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	if err := r.inner.SaveCategory(ctx, category); err != nil {
		return err
	}
	invalidate(ctx, r.client, categoriesKey)
	return nil
}

func (r *cachedCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return readThrough(ctx, r.client, categoriesKey, r.ttl, r.inner.ListCategories)
}

func (r *cachedCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := r.inner.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	invalidate(ctx, r.client, categoriesKey)
	return nil
}

type cachedPersonRepository struct {
	inner  portsrepo.PersonRepository
	client *redis.Client
	ttl    time.Duration
}

func (r *cachedPersonRepository) SavePerson(ctx context.Context, person domain.Person) error {
	if err := r.inner.SavePerson(ctx, person); err != nil {
		return err
	}
	invalidate(ctx, r.client, personsKey)
	return nil
}

func (r *cachedPersonRepository) ListPersons(ctx context.Context) ([]domain.Person, error) {
	return readThrough(ctx, r.client, personsKey, r.ttl, r.inner.ListPersons)
}

func (r *cachedPersonRepository) DeletePerson(ctx context.Context, personID string) error {
	if err := r.inner.DeletePerson(ctx, personID); err != nil {
		return err
	}
	invalidate(ctx, r.client, personsKey)
	return nil
}

type cachedGroupRepository struct {
	inner  portsrepo.GroupRepository
	client *redis.Client
	ttl    time.Duration
}

func (r *cachedGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	if err := r.inner.SaveGroup(ctx, group); err != nil {
		return err
	}
	invalidate(ctx, r.client, groupsKey)
	return nil
}

func (r *cachedGroupRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return readThrough(ctx, r.client, groupsKey, r.ttl, r.inner.ListGroups)
}

func (r *cachedGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	if err := r.inner.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	invalidate(ctx, r.client, groupsKey)
	return nil
}
