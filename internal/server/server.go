// Package server exposes cover composition over HTTP.
//
//	GET  /healthz         liveness
//	GET  /themes          palette catalog and keyword rules
//	POST /covers          compose the JSON metadata record in the body
//	GET  /covers/{slug}   compose from title, description and tags query parameters
//
// Cover responses are image/svg+xml and carry the document digest in the
// X-Cover-Digest header, plus the palette and symbol in X-Cover-Theme and
// X-Cover-Symbol.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/cover"
	"github.com/roach88/covergen/internal/theme"
)

// Response headers.
const (
	HeaderDigest = "X-Cover-Digest"
	HeaderTheme  = "X-Cover-Theme"
	HeaderSymbol = "X-Cover-Symbol"
)

// maxBody caps POST /covers request bodies.
const maxBody = 1 << 20

// Handler serves covers from one Composer.
type Handler struct {
	composer *cover.Composer
	logger   *slog.Logger
}

// NewHandler creates a handler. A nil composer means cover.New().
func NewHandler(composer *cover.Composer, logger *slog.Logger) *Handler {
	if composer == nil {
		composer = cover.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{composer: composer, logger: logger}
}

// Routes returns the router for all endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", h.Healthz)
	r.Get("/themes", h.Themes)
	r.Post("/covers", h.CreateCover)
	r.Get("/covers/{slug}", h.GetCover)
	return r
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaletteResponse describes one palette.
type PaletteResponse struct {
	theme.Palette
	Keywords []string `json:"keywords"`
}

// ThemesResponse describes the catalog.
type ThemesResponse struct {
	Default  string              `json:"default"`
	Palettes []PaletteResponse   `json:"palettes"`
	Rules    []theme.KeywordRule `json:"rules"`
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, http.StatusText(http.StatusOK))
}

// Themes lists the palettes with the keywords selecting each.
func (h *Handler) Themes(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, DescribeCatalog(h.composer.Catalog()))
}

// CreateCover composes the metadata record in the request body.
func (h *Handler) CreateCover(w http.ResponseWriter, r *http.Request) {
	var m article.Metadata
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(&m); err != nil {
		h.logger.Warn("Fail to decode request", "error", err)
		if errors.Is(err, io.EOF) {
			h.fail(w, r, http.StatusBadRequest, "request body is empty")
			return
		}
		h.fail(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.write(w, m)
}

// GetCover composes a cover for the slug in the path. Tags may repeat or
// be comma separated.
func (h *Handler) GetCover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m := article.Metadata{
		Slug:        chi.URLParam(r, "slug"),
		Title:       q.Get("title"),
		Description: q.Get("description"),
		Tags:        splitTags(q["tags"]),
	}
	h.write(w, m)
}

func (h *Handler) write(w http.ResponseWriter, m article.Metadata) {
	doc := h.composer.Compose(m)
	data := doc.Bytes()

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set(HeaderDigest, doc.Digest())
	w.Header().Set(HeaderTheme, doc.Theme)
	w.Header().Set(HeaderSymbol, string(doc.Symbol))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write cover", "slug", doc.Slug, "error", err)
		return
	}
	h.logger.Debug("Cover served", "slug", doc.Slug, "theme", doc.Theme, "symbol", doc.Symbol)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

// DescribeCatalog lists the catalog palettes with the keywords selecting each.
func DescribeCatalog(c *theme.Catalog) ThemesResponse {
	rules := c.Rules()
	keywords := make(map[string][]string)
	for _, rule := range rules {
		keywords[rule.Palette] = append(keywords[rule.Palette], rule.Keyword)
	}

	resp := ThemesResponse{
		Default: c.Default().Name,
		Rules:   rules,
	}
	for _, p := range c.Palettes() {
		kw := keywords[p.Name]
		if kw == nil {
			kw = []string{}
		}
		resp.Palettes = append(resp.Palettes, PaletteResponse{Palette: p, Keywords: kw})
	}
	return resp
}

func splitTags(values []string) article.StringList {
	var out article.StringList
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}
