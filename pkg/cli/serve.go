package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/modelscore/pkg/metric"
	"github.com/mchmarny/modelscore/pkg/resource"
	"github.com/mchmarny/modelscore/pkg/store"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
)

var (
	portFlag = &urfave.IntFlag{
		Name:  "port",
		Usage: "Port on which the server will listen",
		Value: serverPortDefault,
	}

	serveCmd = &urfave.Command{
		Name:            "serve",
		Aliases:         []string{"server"},
		HideHelpCommand: true,
		Usage:           "Start local HTTP scoring server",
		Action:          cmdServe,
		Flags: []urfave.Flag{
			portFlag,
		},
	}
)

func cmdServe(c *urfave.Context) error {
	app := getAppConfig(c)
	address := fmt.Sprintf("127.0.0.1:%d", c.Int(portFlag.Name))

	scorer := metric.NewScorer(c.Context, app.Config)
	router := makeRouter(scorer, app.Store, app.Debug)

	s := &http.Server{
		Addr:           address,
		Handler:        router,
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error starting server", "error", err)
		}
	}()

	slog.Info("server started", "address", fmt.Sprintf("http://%s", address))

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}

type scoreRequest struct {
	URL     string `json:"url" binding:"required"`
	NoCache bool   `json:"no_cache"`
}

func makeRouter(scorer *metric.Scorer, st *store.Store, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
	})

	r.POST("/score", func(c *gin.Context) {
		var req scoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		if !req.NoCache {
			if cached, err := st.GetFresh(req.URL, store.DefaultMaxAge); err == nil && cached != nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		d := resource.Parse(req.URL)
		rating := scorer.Rate(c.Request.Context(), d)

		if !req.NoCache {
			if err := st.Save(req.URL, rating); err != nil {
				slog.Debug("error caching rating", "url", req.URL, "error", err)
			}
		}

		c.JSON(http.StatusOK, rating)
	})

	return r
}
