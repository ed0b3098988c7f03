// Package web mounts the GraphQL schema on an HTTP router.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go/relay"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/hmans/crudql/internal/graph"
)

// DefaultPath is where the GraphQL endpoint is mounted.
const DefaultPath = "/graphql"

// RequestIDHeader carries the request id on responses.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps client-supplied request ids; longer ones are replaced.
const maxRequestIDLength = 64

// Options configures the router.
type Options struct {
	Path       string
	Playground bool
	Title      string
}

// NewRouter returns a gin engine serving the schema at opts.Path:
//   - POST: GraphQL-over-HTTP JSON requests
//   - GET with a query parameter: queries only, mutations are refused
//   - GET without a query parameter: the playground, if enabled
func NewRouter(schema *graph.Schema, opts Options, log zerolog.Logger) *gin.Engine {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Title == "" {
		opts.Title = "crudql"
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	h := &handler{
		schema: schema,
		relay:  &relay.Handler{Schema: schema.Executable()},
	}
	if opts.Playground {
		h.playground = playground.Handler(opts.Title, opts.Path)
	}

	r.POST(opts.Path, gin.WrapH(h.relay))
	r.GET(opts.Path, h.get)

	return r
}

type handler struct {
	schema     *graph.Schema
	relay      http.Handler
	playground http.Handler
}

type errorResponse struct {
	Errors []errorMessage `json:"errors"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Errors: []errorMessage{{Message: msg}}})
}

func (h *handler) get(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		if h.playground != nil {
			h.playground.ServeHTTP(c.Writer, c.Request)
			return
		}
		abortWithError(c, http.StatusBadRequest, "missing query parameter")
		return
	}

	var variables map[string]any
	if raw := c.Query("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid variables JSON: "+err.Error())
			return
		}
	}

	operationName := c.Query("operationName")
	if graph.IsMutation(query, operationName) {
		c.Header("Allow", http.MethodPost)
		abortWithError(c, http.StatusMethodNotAllowed, "mutations must be sent with POST")
		return
	}

	resp := h.schema.Exec(c.Request.Context(), query, operationName, variables)
	c.JSON(http.StatusOK, resp)
}

// requestLogger tags each request with an id and logs it once it completes.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			var err error
			if id, err = gonanoid.New(); err != nil {
				id = "-"
			}
		}
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
