package rpcdoc

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	swaggerFiles "github.com/swaggo/files"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// DefaultRPCPort is the RPC transport's well-known port. The interactive
// console targets the inbound host on this port.
const DefaultRPCPort = 8788

// DefaultAssetPath is where the console's renderer assets are mounted.
const DefaultAssetPath = "/console-assets"

// DocsHandler serves the generated API description.
//
// The format selector picks the output form: "json" and "yaml" return the
// raw text forms; anything else, including no selector at all, returns the
// interactive console. The document is regenerated on every request; the
// snapshot is immutable, so no synchronization or caching is involved.
//
// Example:
//
//	snap, _ := rpcdoc.NewSnapshot(endpoints...)
//	h := rpcdoc.NewDocsHandler(snap, meta).WithRPCPort(9000)
//	http.Handle("/docs/", h)
type DocsHandler struct {
	snap      *Snapshot
	meta      Meta
	logger    *slog.Logger
	rpcPort   int
	assetPath string
	assets    http.Handler
}

// NewDocsHandler creates a handler serving documentation for the snapshot.
func NewDocsHandler(snap *Snapshot, meta Meta) *DocsHandler {
	return &DocsHandler{
		snap:      snap,
		meta:      meta,
		rpcPort:   DefaultRPCPort,
		assetPath: DefaultAssetPath,
		assets:    newAssetHandler(DefaultAssetPath),
	}
}

// newAssetHandler builds a renderer-asset file server for the given mount
// prefix. Each DocsHandler owns its copy: the swaggo package-level handler
// is shared mutable state and must not be touched per request.
func newAssetHandler(assetPath string) http.Handler {
	assets := *swaggerFiles.Handler
	assets.Prefix = assetPath + "/"
	return &assets
}

// WithLogger sets a custom logger. If not set, slog.Default() is used.
func (h *DocsHandler) WithLogger(logger *slog.Logger) *DocsHandler {
	h.logger = logger
	return h
}

// WithRPCPort sets the port the console's outbound calls should target.
func (h *DocsHandler) WithRPCPort(port int) *DocsHandler {
	h.rpcPort = port
	return h
}

// WithAssetPath sets the URL prefix the console renderer assets are
// mounted under.
func (h *DocsHandler) WithAssetPath(path string) *DocsHandler {
	h.assetPath = strings.TrimSuffix(path, "/")
	h.assets = newAssetHandler(h.assetPath)
	return h
}

// docQuery is the recognized document-request query surface.
type docQuery struct {
	Format string `schema:"format"`
}

func (h *DocsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, h.assetPath+"/") {
		h.assets.ServeHTTP(w, r)
		return
	}

	var q docQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		// Unrecognized query shapes fall back to the console.
		q = docQuery{}
	}

	switch strings.ToLower(q.Format) {
	case "json":
		h.serveText(w, RenderJSONIndent, "application/json")
	case "yaml":
		h.serveText(w, RenderYAML, "application/yaml")
	default:
		h.serveConsole(w, r)
	}
}

func (h *DocsHandler) serveText(w http.ResponseWriter, render func(*Document) ([]byte, error), contentType string) {
	doc, err := Generate(h.snap, h.meta)
	if err != nil {
		writeError(w, asDocError(err), h.logger)
		return
	}
	data, err := render(doc)
	if err != nil {
		writeError(w, asDocError(err), h.logger)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		h.log().Warn("failed to write document", slog.Any("error", err))
	}
}

func (h *DocsHandler) serveConsole(w http.ResponseWriter, r *http.Request) {
	meta := h.meta
	meta.ServerURL = h.consoleServerURL(r)
	meta.ServerDescription = "RPC transport"

	doc, err := Generate(h.snap, meta)
	if err != nil {
		writeError(w, asDocError(err), h.logger)
		return
	}

	html, err := ConsoleHTML(doc, h.assetPath)
	if err != nil {
		// Recoverable: show an inline error page instead of the console.
		h.log().Warn("console embed failed", slog.Any("error", err))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, werr := w.Write([]byte(consoleErrorHTML(err.Error()))); werr != nil {
			h.log().Warn("failed to write console error page", slog.Any("error", werr))
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		h.log().Warn("failed to write console", slog.Any("error", err))
	}
}

// consoleServerURL derives the console's target server URL: the inbound
// request's scheme and host with the port replaced by the RPC port.
func (h *DocsHandler) consoleServerURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if hostOnly, _, err := net.SplitHostPort(host); err == nil {
		host = hostOnly
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(h.rpcPort))
}

func (h *DocsHandler) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func asDocError(err error) *Error {
	if docErr, ok := err.(*Error); ok {
		return docErr
	}
	return NewError(CodeInternal, err.Error())
}
