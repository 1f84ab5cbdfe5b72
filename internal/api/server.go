// Package api configures and exposes the HTTP server: the activation
// directory page, the bot lifecycle route, the manual batch trigger, plus
// metrics and profiling endpoints.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"reporter/internal/bot"
	"reporter/internal/config"
	"reporter/internal/report"
	"reporter/pkg/controller"
	"reporter/pkg/logger"
	"reporter/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options holds configuration for the HTTP server.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":3000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	// Batch runs execute synchronously inside the request, so this must cover a full run.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// BotCoordinator is the bot lifecycle surface driven by the HTTP routes.
// *bot.Coordinator implements it.
type BotCoordinator interface {
	State() bot.State
	Start(ctx context.Context) error
}

// Deps are the collaborators the HTTP routes need.
type Deps struct {
	Reporter report.Reporter
	Bot      BotCoordinator
}

// Router builds the HTTP handler tree: the three activation routes, the
// Prometheus metrics endpoint and pprof, wrapped with CORS and access
// logging.
func Router(deps Deps, metricsPath string) http.Handler {
	h := routeHandler{deps: deps}

	mux := chi.NewRouter()
	mux.Get("/", h.directory)
	mux.Get("/iniciar/bot", h.startBot)
	mux.Get("/enviar/pdf", h.sendReports)

	mux.Handle(metricsPath, promhttp.Handler())
	mux.Handle("/debug/pprof/*", controller.PprofMux())

	var handler http.Handler = mux
	handler = controller.WithCORS(handler)
	handler = controller.WithLogger(handler)

	return handler
}

// NewServer wires up and returns a configured *http.Server using the provided
// Options. Unlike a typical API server there is no global request timeout:
// the manual batch trigger runs a full report batch inside the request, so
// WriteTimeout alone bounds it.
func NewServer(deps Deps, opts Options) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           Router(deps, opts.MetricsPath),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}
}

type routeHandler struct {
	deps Deps
}

// directory serves the activation page: current bot state plus links to the
// two action routes.
func (h routeHandler) directory(w http.ResponseWriter, r *http.Request) {
	running := h.deps.Bot.State() == bot.StateRunning

	status := "❌ INACTIVO"
	action := `<a href="/iniciar/bot">➡️ INICIAR BOT AHORA</a>`
	linkColor := "gray"
	if running {
		status = "✅ ACTIVO"
		action = "El Bot está listo para el comando /enviar_pdf."
		linkColor = "green"
	}

	writePage(w, http.StatusOK, fmt.Sprintf(`
		<html>
			<body style="font-family: sans-serif; padding: 30px; line-height: 1.6;">
				<h1 style="color: #007bff;">🚀 Directorio de Activación del Sistema</h1>
				<h2>1. Estado e Inicio del Bot</h2>
				<p><b>Estado Actual:</b> %s</p>
				<p>%s</p>
				<hr>
				<h2>2. Generar Reporte PDF (Activación Web Manual)</h2>
				<p>Usa esta opción para forzar la generación y el envío de los reportes.</p>
				<p style="font-size: 1.1em;">
					<a href="/enviar/pdf" style="color: %s; font-weight: bold;">➡️ /enviar/pdf</a>
				</p>
				<small>Nota: La activación del PDF requiere que el Bot esté iniciado.</small>
			</body>
		</html>`, status, action, linkColor))
}

// startBot transitions the bot to Running. Hitting the route while the bot is
// already running is answered with a warning page, not an error.
func (h routeHandler) startBot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.deps.Bot.Start(ctx)
	if errors.Is(err, serrors.ErrAlreadyStarted) {
		logger.Warn(ctx, "bot start requested but bot is already running")
		writePage(w, http.StatusOK,
			`<html><body><h1>⚠️ El Bot de Telegram ya estaba activo.</h1><p>El bot ya está haciendo polling.</p><p><a href="/">Volver al Directorio</a></p></body></html>`)

		return
	}
	if err != nil {
		logger.Error(ctx, "could not start bot", zap.Error(err))
		writePage(w, http.StatusInternalServerError,
			`<html><body><h1>❌ Error al iniciar el Bot.</h1><p>Revise el token.</p><p><a href="/">Volver al Directorio</a></p></body></html>`)

		return
	}

	logger.Info(ctx, "bot started via web route")
	writePage(w, http.StatusOK, `
		<html>
			<body>
				<h1 style="color: green;">🤖 Bot Iniciado.</h1>
				<p>El Bot está listo. Regresa al directorio.</p>
				<p><a href="/">Volver al Directorio Principal</a></p>
			</body>
		</html>`)
}

// sendReports runs one batch synchronously. The route is gated on the bot
// being started first.
func (h routeHandler) sendReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.deps.Bot.State() != bot.StateRunning {
		writePage(w, http.StatusForbidden,
			`<html><body><h1>❌ Bot No Iniciado.</h1><p>Debe iniciar el bot primero visitando <a href="/iniciar/bot">/iniciar/bot</a></p></body></html>`)

		return
	}

	logger.Info(ctx, "batch run triggered from web route")

	summary, err := h.deps.Reporter.SendReports(ctx)
	if err != nil {
		logger.Error(ctx, "batch run triggered from web route failed", zap.Error(err))
		writePage(w, http.StatusInternalServerError, fmt.Sprintf(
			`<html><body><h1>❌ ERROR CRÍTICO.</h1><p>Fallo al ejecutar el proceso de PDF.</p><p>Detalle: %s</p><p><a href="/">Volver al Directorio</a></p></body></html>`,
			err.Error()))

		return
	}

	writePage(w, http.StatusOK, fmt.Sprintf(`
		<html>
			<body>
				<h1 style="color: green;">✅ Proceso de Envío de PDF Terminado.</h1>
				<p>Los reportes han sido enviados (%d de %d). Verifique sus correos.</p>
				<p><a href="/">Volver al Directorio</a></p>
			</body>
		</html>`, summary.Delivered, summary.Total))
}

func writePage(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
