package control

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/service/jukebox"
)

const (
	htmlContentType  = "text/html; charset=utf-8"
	bytesPerMegabyte = 1024 * 1024
)

// Controller is the part of a play session driven by the control surface.
type Controller interface {
	// AdvanceToNextSong stops the current song.
	AdvanceToNextSong(ctx context.Context)
	// TogglePausePlay pauses or resumes playback.
	TogglePausePlay(ctx context.Context)
	// Info returns a snapshot of the playback state.
	Info() jukebox.Info
	// Done is closed once the session is ending.
	Done() <-chan struct{}
}

// MemoryUsageFunc returns the resident memory of the process in bytes.
type MemoryUsageFunc func(ctx context.Context) (uint64, error)

// MemoryUsageResponse is the body of the memory usage endpoint.
type MemoryUsageResponse struct {
	MemoryUseMegabytes float64 `json:"memoryUseMegabytes"`
}

// ErrorResponse is the body of a failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler holds the HTTP handlers of the control surface.
type Handler struct {
	controller  Controller
	gatherer    prometheus.Gatherer
	memoryUsage MemoryUsageFunc
}

// NewHandler creates the control surface handlers.
// A nil gatherer disables the metrics endpoint; a nil memoryUsage reads the RSS of the current process.
func NewHandler(controller Controller, gatherer prometheus.Gatherer, memoryUsage MemoryUsageFunc) *Handler {
	if memoryUsage == nil {
		memoryUsage = processMemoryUsage
	}

	return &Handler{
		controller:  controller,
		gatherer:    gatherer,
		memoryUsage: memoryUsage,
	}
}

// SetMode switches gin between its debug and release modes.
// It must be called before any engine is created.
func SetMode(debug bool) {
	if debug {
		gin.SetMode(gin.DebugMode)

		return
	}

	gin.SetMode(gin.ReleaseMode)
}

// NewEngine creates a gin engine with the control surface routes.
func (h *Handler) NewEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	h.RegisterRoutes(engine)

	return engine
}

// RegisterRoutes sets up all control surface routes on the given engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/songAdvance/", h.SongAdvance)
	r.GET("/togglePausePlay/", h.TogglePausePlay)

	api := r.Group("/api")
	{
		api.GET("/info/", h.Info)
		api.GET("/memoryUsage/", h.MemoryUsage)
	}

	if h.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	r.NoRoute(h.HelloWorld)
}

// SongAdvance stops the current song so the next one starts.
func (h *Handler) SongAdvance(c *gin.Context) {
	h.controller.AdvanceToNextSong(c.Request.Context())
	c.Data(http.StatusOK, htmlContentType, htmlBody("advanced to next song"))
}

// TogglePausePlay pauses or resumes playback.
func (h *Handler) TogglePausePlay(c *gin.Context) {
	h.controller.TogglePausePlay(c.Request.Context())
	c.Data(http.StatusOK, htmlContentType, htmlBody("toggled pause/play"))
}

// Info returns the playback state.
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Info())
}

// MemoryUsage returns the resident memory of the process in megabytes.
func (h *Handler) MemoryUsage(c *gin.Context) {
	rss, err := h.memoryUsage(c.Request.Context())
	if err != nil {
		logger.Warnf(c.Request.Context(), "Failed to read memory usage: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})

		return
	}

	c.JSON(http.StatusOK, MemoryUsageResponse{
		MemoryUseMegabytes: float64(rss) / bytesPerMegabyte,
	})
}

// HelloWorld answers every unknown path.
func (h *Handler) HelloWorld(c *gin.Context) {
	c.Data(http.StatusOK, htmlContentType, htmlBody("Hello world!"))
}

func htmlBody(text string) []byte {
	return []byte("<HTML><BODY>" + text + "</BODY></HTML>")
}

func processMemoryUsage(ctx context.Context) (uint64, error) {
	//nolint:gosec // Process IDs fit in int32 on every supported platform.
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	memoryInfo, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}

	return memoryInfo.RSS, nil
}

// requestLogger logs every request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		logger.Debugf(c.Request.Context(), "control request: %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(startTime))
	}
}
