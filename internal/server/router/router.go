package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters. Webhook and Metrics are optional.
type Handlers struct {
	Records *handlers.RecordsHandler
	Reports *handlers.ReportHandler
	Webhook *handlers.WebhookHandler
	Metrics http.Handler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	broilers := r.Group("/broilers")
	broilers.POST("", h.Records.CreateBroilers)
	broilers.POST("/sold", h.Records.SellBroilers)
	broilers.GET("", h.Records.ListBroilers)
	broilers.GET("/:id", h.Records.GetBroiler)

	layers := r.Group("/layers")
	layers.POST("", h.Records.CreateLayers)
	layers.POST("/sold", h.Records.SellLayers)
	layers.GET("", h.Records.ListLayers)
	layers.GET("/:id", h.Records.GetLayer)

	eggs := r.Group("/eggs")
	eggs.POST("/laid", h.Records.RecordLaidEggs)
	eggs.POST("/sold", h.Records.RecordSoldEggs)
	eggs.POST("/damaged", h.Records.RecordDamagedEggs)
	eggs.GET("", h.Records.ListEggs)
	eggs.GET("/:id", h.Records.GetEgg)

	profiles := r.Group("/poultry-records")
	profiles.POST("", h.Records.CreatePoultryRecord)
	profiles.GET("", h.Records.ListPoultryRecords)
	profiles.GET("/:id", h.Records.GetPoultryRecord)

	if h.Reports != nil {
		r.GET("/reports/inventory", h.Reports.Inventory)
	}

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/send-message", h.Webhook.SendMessage)
	}

	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Info("router initialized", zap.Bool("webhook", h.Webhook != nil), zap.Bool("metrics", h.Metrics != nil))

	return r
}

// requestIDMiddleware keeps an incoming X-Request-ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString(requestIDHeader)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
