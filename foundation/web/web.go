// Package web provides a thin layer of support for writing HTTP
// services, built on top of httptreemux. It carries request-scoped
// values (trace id, start time, response status) through context, and
// converts a handler's returned error into a uniform JSON response.
package web

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/dimfeld/httptreemux/v5"
	"github.com/google/uuid"
)

// A Handler is a type that handles an http request within our own little
// mini framework. The fact that it returns an error is a big deal. See
// the Respond/RespondError code for how this is handled.
type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

// App is the entrypoint into our application and what configures our
// context object for each of our http handlers. It carries the
// dependencies required by every handler and manages the mux itself.
type App struct {
	mux      *httptreemux.ContextMux
	otr      *httptreemux.Group
	shutdown chan os.Signal
	mw       []Middleware
}

// NewApp creates an App value that handles a set of routes for the
// application. It sets up a context mux which calls the contextHandler
// for further processing.
func NewApp(shutdown chan os.Signal, mw ...Middleware) *App {
	mux := httptreemux.NewContextMux()

	return &App{
		mux:      mux,
		otr:      mux.NewGroup(""),
		shutdown: shutdown,
		mw:       mw,
	}
}

// SignalShutdown is used to gracefully shut down the app when an
// integrity issue is identified.
func (a *App) SignalShutdown() {
	a.shutdown <- syscall.SIGTERM
}

// ServeHTTP implements the http.Handler interface.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Handle sets a handler function for a given HTTP method and path pair
// to the application server mux. group is prefixed to path (e.g. the
// API version), separated by a slash.
func (a *App) Handle(method string, group string, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	h := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		v := Values{
			TraceID: uuid.NewString(),
			Now:     time.Now(),
		}
		ctx = context.WithValue(ctx, key, &v)

		if err := handler(ctx, w, r); err != nil {
			if IsShutdown(err) {
				a.SignalShutdown()
				return
			}
			_ = RespondError(ctx, w, err)
		}
	}

	finalPath := path
	if group != "" {
		finalPath = "/" + group + path
	}
	a.otr.Handle(method, finalPath, h)
}
