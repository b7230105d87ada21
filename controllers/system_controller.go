package controllers

import (
	"context"
	"net/http"
	"time"

	"myapp/config"
	"myapp/docs"
	apierrors "myapp/errors"
	"myapp/metrics"
	"myapp/models"
	"myapp/services"
	"myapp/utils"

	"github.com/gin-gonic/gin"
)

// SystemController serves the operational endpoints and the HTML pages.
type SystemController struct {
	cfg      *config.Config
	registry *metrics.Registry
	probe    *services.StatusProbe
	// provider answers /metrics/; gauges feeds the prometheus scrape and must not block.
	provider services.MetricsProvider
	gauges   services.MetricsProvider
}

func NewSystemController(cfg *config.Config, registry *metrics.Registry, probe *services.StatusProbe, provider, gauges services.MetricsProvider) *SystemController {
	return &SystemController{
		cfg:      cfg,
		registry: registry,
		probe:    probe,
		provider: provider,
		gauges:   gauges,
	}
}

// Health always answers 200 while the process is serving.
func (sc *SystemController) Health(c *gin.Context) {
	health := models.HealthResponse{
		Status:    "healthy",
		Hostname:  services.Hostname(),
		Timestamp: services.Now(),
		Version:   sc.cfg.Version,
	}
	utils.Negotiate(c, "health.html", "health", health)
}

func (sc *SystemController) Status(c *gin.Context) {
	utils.Negotiate(c, "status.html", "status", sc.probe.Status(c.Request.Context()))
}

// Metrics reports a failed sample as a 200 with an error body.
func (sc *SystemController) Metrics(c *gin.Context) {
	sample, err := sc.provider.Sample(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, models.ProviderError{
			Error:     err.Error(),
			Hostname:  services.Hostname(),
			Timestamp: services.Now(),
		})
		return
	}
	utils.Negotiate(c, "metrics.html", "metrics", sample)
}

func (sc *SystemController) DemoLB(c *gin.Context) {
	sc.registry.CountRequest(http.MethodGet, "demo_lb")

	now := time.Now()
	host := services.Hostname()
	lb := models.DemoLBResponse{
		RequestID: now.UnixMilli(),
		Hostname:  host,
		Timestamp: now.Format("15:04:05"),
		Message:   "Handled by pod: " + host,
	}
	utils.Negotiate(c, "demo_lb.html", "lb", lb)
}

func (sc *SystemController) Prometheus(c *gin.Context) {
	sc.registry.UpdateHostGauges(c.Request.Context(), func(ctx context.Context) (metrics.Sample, error) {
		m, err := sc.gauges.Sample(ctx)
		if err != nil {
			return metrics.Sample{}, err
		}
		return metrics.Sample{CPUPercent: m.CPUPercent, MemoryPercent: m.MemoryPercent}, nil
	})
	sc.registry.CountRequest(http.MethodGet, "prometheus_metrics")

	sc.registry.Handler().ServeHTTP(c.Writer, c.Request)
}

func (sc *SystemController) APIRoot(c *gin.Context) {
	wsBase := "ws://" + sc.cfg.PublicHost
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to MyApp API",
		"version": sc.cfg.Version,
		"endpoints": gin.H{
			"health":       "/health/",
			"status":       "/status/",
			"metrics":      "/metrics/",
			"demo_lb":      "/demo-lb/",
			"prometheus":   "/prometheus/",
			"api_v1":       "/api/v1/",
			"api_auth":     "/api/auth/",
			"swagger_docs": "/api/docs/",
			"redoc_docs":   "/api/redoc/",
			"api_schema":   "/api/schema/",
		},
		"api_v1_resources": gin.H{
			"posts":    "/api/v1/posts/",
			"comments": "/api/v1/comments/",
			"users":    "/api/v1/users/",
		},
		"websocket_endpoints": gin.H{
			"metrics": wsBase + "/ws/metrics/",
			"status":  wsBase + "/ws/status/",
		},
	})
}

func (sc *SystemController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"version": sc.cfg.Version})
}

func (sc *SystemController) WSTest(c *gin.Context) {
	c.HTML(http.StatusOK, "ws_test.html", nil)
}

func (sc *SystemController) Schema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
}

func (sc *SystemController) Redoc(c *gin.Context) {
	c.HTML(http.StatusOK, "redoc.html", gin.H{"schemaURL": "/api/schema/"})
}

// NoMethod answers 405 in the API error shape.
func (sc *SystemController) NoMethod(c *gin.Context) {
	apierrors.MethodNotAllowed(c)
}

// NoRoute answers 404 in the API error shape.
func (sc *SystemController) NoRoute(c *gin.Context) {
	apierrors.Respond(c, apierrors.ErrNotFound)
}
