package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type lookupResponse struct {
	Zone   string `json:"zone"`
	ZoneID string `json:"zoneId"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type server struct {
	echo       *echo.Echo
	httpServer *http.Server
	table      *zoneTable
	resolver   Resolver
	metrics    *metrics
}

func newServer(table *zoneTable, resolver Resolver, m *metrics) *server {
	s := &server{
		echo:     echo.New(),
		table:    table,
		resolver: resolver,
		metrics:  m,
	}

	s.echo.Use(s.recoverPanics)
	s.setupRoutes()

	// h2c allows HTTP/2 without TLS; plain HTTP/1.1 clients are unaffected.
	h2s := &http2.Server{}
	s.httpServer = &http.Server{
		Handler: h2c.NewHandler(s.echo, h2s),
	}

	return s
}

func (s *server) setupRoutes() {
	s.echo.GET("/healthz", s.healthHandler)
	s.echo.GET("/readyz", s.healthHandler)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.handler()))
	s.echo.GET("/*", s.lookupHandler)
}

func (s *server) healthHandler(c *echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// lookupHandler resolves the FQDN encoded in the request path and answers
// with the availability zone of the first configured subnet containing the
// resolved address.
func (s *server) lookupHandler(c *echo.Context) error {
	path := c.Request().URL.Path

	// Not reachable through normal routing, but kept as a guard against
	// handler reuse with a raw request.
	if !strings.HasPrefix(path, "/") {
		return s.sendError(c, errInvalidPath)
	}

	fqdn := strings.Trim(path, "/")
	if fqdn == "" {
		return s.sendError(c, errEmptyFQDN)
	}

	log.Infof("Received lookup request for FQDN: %s", fqdn)

	start := time.Now()
	addrs, err := s.resolver.LookupIPAddr(c.Request().Context(), fqdn)
	s.metrics.observeResolveDuration(time.Since(start))
	if err != nil || len(addrs) == 0 {
		log.Errorf("DNS lookup failed for FQDN %s: %v", fqdn, err)
		return s.sendError(c, errResolutionFailed)
	}

	ip := addrs[0].IP
	log.Infof("Resolved %s to IP address: %s", fqdn, ip)

	zone, zoneID, ok := s.table.lookup(ip)
	if !ok {
		log.Warnf("No matching zone found for IP %s", ip)
		return s.sendError(c, errZoneNotFound)
	}

	log.Infof("Found matching zone %s (%s) for IP %s", zone, zoneID, ip)
	s.metrics.countLookup("ok")

	return c.JSON(http.StatusOK, lookupResponse{Zone: zone, ZoneID: zoneID})
}

func (s *server) sendError(c *echo.Context, kind lookupErrorKind) error {
	s.metrics.countLookup(kind.metricResult())

	return c.JSON(kind.statusCode(), errorResponse{Error: kind.message()})
}

// recoverPanics converts a panicking handler into a 500 response so a single
// bad request cannot take down the process or other in-flight requests.
func (s *server) recoverPanics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("panic while handling %s: %v\n%s", c.Request().URL.Path, r, debug.Stack())
				s.metrics.countLookup(errInternal.metricResult())
				if err := c.JSON(errInternal.statusCode(), errorResponse{Error: errInternal.message()}); err != nil {
					log.Errorf("could not write error response: %v", err)
				}
			}
		}()

		return next(c)
	}
}

// handler exposes the full middleware/routing stack for tests.
func (s *server) handler() http.Handler {
	return s.httpServer.Handler
}

func (s *server) listenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.serve(ln)
}

// serve blocks until the server is shut down. A graceful shutdown is
// reported as a clean return.
func (s *server) serve(ln net.Listener) error {
	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// shutdown stops accepting new connections and waits for in-flight requests
// to finish, up to the deadline of ctx.
func (s *server) shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
