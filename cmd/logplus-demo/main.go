// Command logplus-demo exercises the library end to end: plain and
// structured payloads, derived and context-bound fields, and the request
// logging middleware on a chi router.
package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/tactlabs/logplus"
	"github.com/tactlabs/logplus/middleware"
)

func main() {
	cfg, err := logplus.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logplus-demo: %v\n", err)
		os.Exit(1)
	}

	logger, err := logplus.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logplus-demo: %v\n", err)
		os.Exit(1)
	}

	logger.Info("message test")
	logger.Debug("resolving caller location per call")
	logger.Warning("disk usage above threshold")
	logger.Error("upstream unreachable")

	logger.Info(logplus.Fields{
		logplus.F("result", 1),
		logplus.F("a", "two"),
		logplus.F("b", logplus.Fields{logplus.F("one", "two")}),
	})

	worker := logger.With(logplus.Fields{logplus.F("component", "demo")})
	worker.Info("derived handle carries bound fields")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			logger.Error(logplus.Fields{
				logplus.F("path", path),
				logplus.F("error", err.Error()),
			})
			continue
		}
		resp.Body.Close()
	}
}
