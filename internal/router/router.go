package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"aimscope/internal/analysis"
	"aimscope/internal/handlers"
)

// healthPath is exempt from request logging.
const healthPath = "/healthz"

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, opts analysis.Options) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Imports parse and analyze whole session logs; keep the rate modest.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	runsHandler := handlers.NewRunsHandler(log)
	importHandler := handlers.NewImportHandler(log, opts)

	router.GET(healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	runs := router.Group("/runs")
	{
		runs.GET("", runsHandler.List)
		runs.GET("/:id", runsHandler.Get)
		runs.GET("/:id/report", runsHandler.Report)
		runs.GET("/:id/charts", runsHandler.Charts)
		runs.DELETE("/:id", runsHandler.Delete)
		runs.POST("/import", limiter, importHandler.Import)
	}

	return router
}
