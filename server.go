// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"DemoLab/DemoServer/activity"
	"DemoLab/DemoServer/config"
	"DemoLab/DemoServer/counter"
	"DemoLab/DemoServer/guard"
	"DemoLab/DemoServer/hello"
	"DemoLab/DemoServer/pages"
	"DemoLab/DemoServer/prompts"
	"DemoLab/DemoServer/quote"
	"DemoLab/DemoServer/session"
	"DemoLab/DemoServer/tools"
)

const shutdownTimeout = 10 * time.Second

// app owns every long-lived service of the server.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	feed     *activity.Feed
	store    session.Store
	manager  *session.Manager
	sessions *session.Middleware
	rules    guard.Rules
	counter  *counter.Store
	quotes   quote.Source
	greeter  *hello.Handler
	mcp      *mcp.Server
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret is required")
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		feed:   activity.NewFeed(activity.DefaultMaxEntries),
		rules: guard.Rules{
			ProtectedPath: cfg.Guard.ProtectedPath,
			LoginPath:     cfg.Guard.LoginPath,
		},
	}

	if cfg.Session.DBPath != "" {
		store, err := session.OpenSQLiteStore(cfg.Session.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open session database: %w", err)
		}
		logger.Info("Persisting sessions", zap.String("path", cfg.Session.DBPath))
		a.store = store
	} else {
		a.store = session.NewInMemoryStore()
	}

	a.manager = session.NewManager(a.store, cfg.Session.TTL, logger.Named("session"), a.feed)
	a.sessions = session.NewMiddleware(
		a.manager,
		session.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL),
		cfg.Session.CookieName,
		cfg.Session.SecureCookie,
		logger.Named("session"),
	)

	a.counter = counter.NewStore(
		counter.WithInit(cfg.Counter.InitValue, cfg.Counter.InitDelay),
		counter.WithLogger(logger.Named("counter")),
		counter.WithRecorder(a.feed),
	)
	a.quotes = quote.NewFetcher(cfg.Quote.URL, cfg.Quote.Delay, quote.WithLogger(logger.Named("quote")))
	a.greeter = hello.NewHandler(cfg.Hello.Message, nil)

	if cfg.MCP.Enabled {
		a.mcp = mcp.NewServer(&mcp.Implementation{
			Name:    "demo-server",
			Version: "1.0.0",
		}, nil)

		tools.RegisterAll(a.mcp, logger.Named("mcp"), tools.All(tools.Deps{
			Quotes:   a.quotes,
			Greeter:  a.greeter,
			Counter:  a.counter,
			Activity: a.feed,
		})...)
		prompts.RegisterAll(a.mcp, logger.Named("mcp"))
	}

	return a, nil
}

// Close releases the session store.
func (a *app) Close() error {
	if closer, ok := a.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func healthCheckHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "mcp-protocol-version", "Mcp-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "Mcp-Session-Id"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowOrigins = nil
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			break
		}
	}
	return cors.New(cfg)
}

// Router builds the HTTP routes.
func (a *app) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), loggingMiddleware(a.logger.Named("http")))
	if len(a.cfg.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(a.cfg.AllowedOrigins))
	}
	router.SetHTMLTemplate(pages.Templates())

	router.GET("/health", healthCheckHandler)

	if a.mcp != nil {
		handler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
			return a.mcp
		}, &mcp.StreamableHTTPOptions{
			SessionTimeout: a.cfg.MCP.SessionTimeout,
		})
		router.Any("/mcp", gin.WrapH(handler))
	}

	quoteHandler := quote.NewHandler(a.quotes, a.logger.Named("quote"), a.feed)
	counterHandler := counter.NewHandler(a.counter)
	activityHandler := activity.NewHandler(a.feed)

	api := router.Group("/api")
	{
		api.GET("/hello", a.greeter.Get)
		api.GET("/post", quoteHandler.Get)

		api.GET("/counter", counterHandler.Get)
		api.POST("/counter/increment", counterHandler.Increment)
		api.POST("/counter/decrement", counterHandler.Decrement)
		api.POST("/counter/init", counterHandler.Init)

		api.GET("/activity", activityHandler.GetHistory)
		api.GET("/activity/stream", activityHandler.Stream)
	}

	// Routes that need the caller's session
	web := router.Group("/", a.sessions.Handler())
	{
		sessionHandler := session.NewHandler(a.rules.ProtectedPath, "/")
		web.POST("/api/login", sessionHandler.Login)
		web.POST("/api/logout", sessionHandler.Logout)
		web.GET("/api/session", sessionHandler.Get)

		pages.NewHandler(a.rules, a.counter).Register(web, guard.Middleware(a.rules, a.logger.Named("guard"), a.feed))
	}

	return router
}

// Serve runs the HTTP server and the session sweeper until ctx is done, then
// shuts the server down gracefully.
func (a *app) Serve(ctx context.Context) error {
	if !a.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Demo server listening",
			zap.String("addr", srv.Addr),
			zap.Bool("mcp", a.mcp != nil),
			zap.String("protected", a.rules.ProtectedPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.manager.Run(gctx, a.cfg.Session.SweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
