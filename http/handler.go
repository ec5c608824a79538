package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
)

// MediaPrefix is the fixed path prefix under which objects are served.
const MediaPrefix = "/m/"

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig
}

// Handler serves signed media requests. It holds only immutable
// collaborators, so one Handler serves all requests concurrently.
type Handler struct {
	config   HandlerConfig
	verifier *mediagate.Verifier
	store    mediagate.ObjectStore
}

// NewHandler creates a new Handler with the given configuration, token
// verifier, and object store.
func NewHandler(config *HandlerConfig, verifier *mediagate.Verifier, store mediagate.ObjectStore) *Handler {
	return &Handler{
		config:   *config,
		verifier: verifier,
		store:    store,
	}
}

// Router returns an http.Handler serving GET and HEAD under MediaPrefix.
// Unknown paths and unsupported methods both answer 404; the gateway does
// not advertise what it does not serve.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "not_found", "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "not_found", "Not found")
	})

	r.Get(MediaPrefix+"*", h.handleMedia)
	r.Head(MediaPrefix+"*", h.handleMedia)

	return r
}

func (h *Handler) handleMedia(w http.ResponseWriter, r *http.Request) {
	if !h.verifier.Configured() {
		WriteError(w, http.StatusServiceUnavailable, "worker_not_configured", "Media gateway is not configured")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, MediaPrefix)
	if key == "" {
		WriteError(w, http.StatusBadRequest, "bad_request", "Empty object key")
		return
	}

	token := r.URL.Query().Get("t")
	if token == "" {
		WriteError(w, http.StatusUnauthorized, "restricted", "Access token required")
		return
	}

	grant, err := h.verifier.Verify(key, token)
	if err != nil {
		HandleError(w, err)
		return
	}

	rng := mediagate.ParseRange(r.Header.Get("Range"))

	obj, err := h.store.Fetch(r.Context(), key, rng)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() { _ = obj.Body.Close() }()

	writeObject(w, r, obj, grant.Mode)
}

// writeObject assembles status and headers from object metadata and the
// verified mode, then streams the body unless the request was a HEAD.
func writeObject(w http.ResponseWriter, r *http.Request, obj *mediagate.ObjectHandle, mode mediagate.Mode) {
	hdr := w.Header()

	for k, v := range obj.Metadata {
		hdr.Set(k, v)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	hdr.Set("Content-Type", contentType)
	hdr.Set("ETag", obj.ETag)
	hdr.Set("Accept-Ranges", "bytes")

	// The mode only drives cache policy. Public tokens name
	// content-addressed media that shared caches may keep for a year;
	// private media must never land in any cache, since the URL+token
	// pair is the only access control.
	if mode == mediagate.ModePublic {
		hdr.Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		hdr.Set("Cache-Control", "private, no-store")
	}

	status := http.StatusOK
	length := obj.Size

	// Trust the store's effective range, not the client's request: the
	// store may have clamped or ignored an unsatisfiable range.
	if obj.Range != nil && obj.Range.Length > 0 {
		hdr.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d",
			obj.Range.Offset, obj.Range.Offset+obj.Range.Length-1, obj.Size))
		status = http.StatusPartialContent
		length = obj.Range.Length
	}

	hdr.Set("Content-Length", strconv.FormatInt(length, 10))
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	_, _ = io.Copy(w, obj.Body)
}
