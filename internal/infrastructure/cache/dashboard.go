// Package cache guarda reportes del painel en Redis por filtro.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pdv-planilha-api/internal/application/ports"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
)

const (
	dashboardKeyPrefix  = "dashboard:report"
	scanBatchSize       = 100
	defaultDashboardTTL = time.Minute
)

var (
	_ ports.DashboardCache = (*RedisDashboardCache)(nil)
	_ ports.DashboardCache = NoopDashboardCache{}
)

// RedisDashboardCache caché del painel en Redis.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDashboardCache ttl <= 0 usa un minuto.
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) *RedisDashboardCache {
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}
	return &RedisDashboardCache{client: client, ttl: ttl}
}

func (c *RedisDashboardCache) Get(ctx context.Context, f dashboard.Filter) (*dashboard.Report, bool, error) {
	payload, err := c.client.Get(ctx, Key(f)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var r dashboard.Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, false, fmt.Errorf("decodificar reporte en caché: %w", err)
	}
	return &r, true, nil
}

func (c *RedisDashboardCache) Set(ctx context.Context, f dashboard.Filter, r *dashboard.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("codificar reporte: %w", err)
	}
	if err := c.client.Set(ctx, Key(f), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateAll borra todas las claves del painel con SCAN + DEL.
func (c *RedisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, dashboardKeyPrefix+":*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Key clave estable por filtro resuelto. El preset entra en la clave porque
// se devuelve en la respuesta.
func Key(f dashboard.Filter) string {
	raw := "start=" + f.Start + "|end=" + f.End + "|preset=" + f.Preset
	sum := sha1.Sum([]byte(raw))
	return dashboardKeyPrefix + ":" + hex.EncodeToString(sum[:])
}

// NoopDashboardCache caché deshabilitada.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(context.Context, dashboard.Filter) (*dashboard.Report, bool, error) {
	return nil, false, nil
}

func (NoopDashboardCache) Set(context.Context, dashboard.Filter, *dashboard.Report) error {
	return nil
}

func (NoopDashboardCache) InvalidateAll(context.Context) error { return nil }
