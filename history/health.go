package history

import (
	"context"

	"github.com/kbukum/linguist/observability"
)

// CheckHealth lists the store root.
func (s *StorageStore) CheckHealth(ctx context.Context) observability.Health {
	if _, err := s.objects.List(ctx, ""); err != nil {
		return observability.Health{Name: "history", Status: observability.HealthStatusDegraded, Message: err.Error()}
	}
	return observability.Health{Name: "history", Status: observability.HealthStatusUp, Details: map[string]string{"backend": s.opts.backend}}
}

// CheckHealth pings Redis.
func (s *RedisStore) CheckHealth(ctx context.Context) observability.Health {
	if err := s.client.Ping(ctx); err != nil {
		return observability.Health{Name: "history", Status: observability.HealthStatusDegraded, Message: err.Error()}
	}
	return observability.Health{Name: "history", Status: observability.HealthStatusUp, Details: map[string]string{"backend": "redis"}}
}

var (
	_ observability.HealthChecker = (*StorageStore)(nil)
	_ observability.HealthChecker = (*RedisStore)(nil)
)
