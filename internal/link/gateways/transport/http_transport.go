package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haukened/linkcheck/internal/link/common/clock"
	"github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/domain"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDKey        = "request_id"
	defaultStopTimeout  = 5 * time.Second
	defaultMaxUpload    = 5 << 20
	readHeaderTimeout   = 5 * time.Second
	imageFormField      = "image"
	multipartFormMemory = 8 << 20
)

// HTTPOptions configures an HTTPTransport.
type HTTPOptions struct {
	Addr           string
	MaxUploadBytes int64
	Clock          clock.Clock
	Logger         log.Logger
}

// HTTPTransport serves the JSON API with gin:
//
//	POST /api/v1/check  {"url": "..."}
//	POST /api/v1/scan   multipart form, file field "image"
//	GET  /healthz
type HTTPTransport struct {
	addr      string
	maxUpload int64
	clock     clock.Clock
	logger    log.Logger

	mu       sync.RWMutex
	running  bool
	server   *http.Server
	listener net.Listener
}

type checkRequest struct {
	URL string `json:"url"`
}

type verdictResponse struct {
	domain.Verdict
	RequestID string    `json:"request_id"`
	CheckedAt time.Time `json:"checked_at"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func NewHTTPTransport(opts HTTPOptions) *HTTPTransport {
	t := &HTTPTransport{
		addr:      opts.Addr,
		maxUpload: opts.MaxUploadBytes,
		clock:     opts.Clock,
		logger:    opts.Logger,
	}
	if t.maxUpload <= 0 {
		t.maxUpload = defaultMaxUpload
	}
	if t.clock == nil {
		t.clock = clock.RealClock{}
	}
	if t.logger == nil {
		t.logger = log.NewNoopLogger()
	}
	return t
}

// Start binds the TCP listener and serves in the background.
func (t *HTTPTransport) Start(ctx context.Context, handler Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("HTTP transport already running")
	}

	ln, err := net.Listen("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to bind TCP socket on %s: %w", t.addr, err)
	}

	t.listener = ln
	t.server = &http.Server{
		Handler:           t.Router(handler),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	t.running = true

	srv := t.server
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error(map[string]any{"error": err.Error()}, "HTTP server stopped unexpectedly")
		}
	}()
	go func() {
		<-ctx.Done()
		_ = t.Stop()
	}()

	t.logger.Info(map[string]any{
		"transport": "http",
		"address":   ln.Addr().String(),
	}, "HTTP transport started")
	return nil
}

// Stop shuts the server down, waiting for in-flight requests up to a timeout.
func (t *HTTPTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}
	t.running = false

	ctx, cancel := context.WithTimeout(context.Background(), defaultStopTimeout)
	defer cancel()
	err := t.server.Shutdown(ctx)
	if err != nil {
		t.logger.Warn(map[string]any{"error": err.Error()}, "Error shutting down HTTP server")
	}

	t.logger.Info(map[string]any{
		"transport": "http",
		"address":   t.listener.Addr().String(),
	}, "HTTP transport stopped")
	return err
}

// Address returns the bound address once started, the configured one before.
func (t *HTTPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.listener != nil {
		return t.listener.Addr().String()
	}
	return t.addr
}

// Router builds the gin engine serving handler.
func (t *HTTPTransport) Router(handler Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = multipartFormMemory
	r.Use(gin.Recovery(), t.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rules": handler.Rules().Counts()})
	})

	api := r.Group("/api/v1")
	api.POST("/check", func(c *gin.Context) {
		var req checkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			t.fail(c, http.StatusBadRequest, "request body must be JSON like {\"url\": \"...\"}")
			return
		}
		t.respond(c, handler.Check(c.Request.Context(), req.URL))
	})
	api.POST("/scan", func(c *gin.Context) {
		data, status, err := t.readImage(c)
		if err != nil {
			t.fail(c, status, err.Error())
			return
		}
		t.respond(c, handler.Scan(c.Request.Context(), data))
	})
	return r
}

// readImage extracts the uploaded image, enforcing the upload limit.
func (t *HTTPTransport) readImage(c *gin.Context) ([]byte, int, error) {
	if c.Request.ContentLength > t.maxUpload {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", t.maxUpload)
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, t.maxUpload)

	fh, err := c.FormFile(imageFormField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", t.maxUpload)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("multipart field %q with an image is required", imageFormField)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, t.maxUpload+1))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > t.maxUpload {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", t.maxUpload)
	}
	return data, http.StatusOK, nil
}

func (t *HTTPTransport) respond(c *gin.Context, v domain.Verdict) {
	c.JSON(http.StatusOK, verdictResponse{
		Verdict:   v,
		RequestID: c.GetString(requestIDKey),
		CheckedAt: t.clock.Now(),
	})
}

func (t *HTTPTransport) fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, RequestID: c.GetString(requestIDKey)})
}

// requestLogger assigns each request an ID and logs it on completion.
func (t *HTTPTransport) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		t.logger.Debug(map[string]any{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}, "http_request")
	}
}

var _ ServerTransport = (*HTTPTransport)(nil)
