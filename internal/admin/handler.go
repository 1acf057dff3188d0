// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

type Handler struct {
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
	dbPing     func(ctx context.Context) error
	userCount  func(ctx context.Context) (int, error)
	bookCount  func(ctx context.Context) (int, error)
	hostStats  func(ctx context.Context) (*HostStats, error)
}

// HandlerConfig wires the stats sources. Nil functions are reported as
// absent; RedisStats and RedisPing are nil when Redis is not configured.
type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
	UserCount  func(ctx context.Context) (int, error)
	BookCount  func(ctx context.Context) (int, error)
	HostStats  func(ctx context.Context) (*HostStats, error)
}

func NewHandler(cfg HandlerConfig) *Handler {
	hostStats := cfg.HostStats
	if hostStats == nil {
		hostStats = ReadHostStats
	}
	return &Handler{
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
		dbPing:     cfg.DBPing,
		userCount:  cfg.UserCount,
		bookCount:  cfg.BookCount,
		hostStats:  hostStats,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
		r.Get("/stats/host", h.GetHostStats)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.getCounts(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	dbHealthy := true
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			dbHealthy = false
		}
	}

	redisStatus := RedisStatus{Enabled: h.redisPing != nil}
	if redisStatus.Enabled {
		redisStatus.Healthy = h.redisPing(ctx) == nil
		redisStatus.Stats = h.getRedisStats()
	}

	host, err := h.hostStats(ctx)
	if err != nil {
		slog.WarnContext(ctx, "host stats unavailable", "error", err)
	}

	core.OK(w, SystemStatsResponse{
		Counts: counts,
		Database: DatabaseStatus{
			Healthy: dbHealthy,
			Stats:   h.getDBStats(),
		},
		Redis:   redisStatus,
		Runtime: readRuntimeStats(),
		Host:    host,
	})
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, readRuntimeStats())
}

func (h *Handler) GetHostStats(w http.ResponseWriter, r *http.Request) {
	host, err := h.hostStats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, host)
}

func (h *Handler) getCounts(ctx context.Context) (Counts, error) {
	var counts Counts
	var err error

	if h.userCount != nil {
		if counts.Users, err = h.userCount(ctx); err != nil {
			return counts, err
		}
	}
	if h.bookCount != nil {
		if counts.Books, err = h.bookCount(ctx); err != nil {
			return counts, err
		}
	}

	return counts, nil
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	if stats == nil {
		return nil
	}
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

func readRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

// ReadHostStats samples host memory and CPU usage. The CPU figure is the
// utilisation since the previous call.
func ReadHostStats(ctx context.Context) (*HostStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	stats := &HostStats{
		MemTotal:       vm.Total,
		MemUsed:        vm.Used,
		MemUsedPercent: vm.UsedPercent,
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.CPUCount = n
	}

	return stats, nil
}

type SystemStatsResponse struct {
	Counts   Counts         `json:"counts"`
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
	Host     *HostStats     `json:"host,omitempty"`
}

type Counts struct {
	Users int `json:"users"`
	Books int `json:"books"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Enabled bool            `json:"enabled"`
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxIdleTimeClosed  int64  `json:"max_idle_time_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}

type HostStats struct {
	MemTotal       uint64  `json:"mem_total_bytes"`
	MemUsed        uint64  `json:"mem_used_bytes"`
	MemUsedPercent float64 `json:"mem_used_percent"`
	CPUPercent     float64 `json:"cpu_percent"`
	CPUCount       int     `json:"cpu_count"`
}
