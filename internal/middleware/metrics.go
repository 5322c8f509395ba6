package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// EngagementEvents counts like/unlike/comment operations by kind.
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_engagement_events_total",
		Help: "Total number of engagement operations by kind",
	}, []string{"kind"})

	// FollowEvents counts follow/unfollow operations by kind.
	FollowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_follow_events_total",
		Help: "Total number of relationship operations by kind",
	}, []string{"kind"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The instance is shared: the collectors live in the default registry
// and can only be registered once per process.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(service)
	})
	return promInstance
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
