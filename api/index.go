package api

import (
	"context"
	"net/http"
	"sync"

	"quickbite/app"
	"quickbite/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		config.SetupLogger(cfg)

		application, initErr = app.New(context.Background(), cfg)
		if initErr != nil {
			log.Error().Err(initErr).Msg("failed to build application")
		}
	})
}

// Handler serves every request through the lazily built router.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		http.Error(w, `{"success":false,"message":"Service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	application.Router.ServeHTTP(w, r)
}
