package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"school-builder/config"
	"school-builder/database"
	orgapi "school-builder/internal/api/org"
	siteapi "school-builder/internal/api/site"
	"school-builder/internal/app/builder"
	routes "school-builder/internal/app/http"
	"school-builder/internal/domain/blocks"
	"school-builder/internal/domain/site"
	"school-builder/internal/infra/kvstore"
	orgclient "school-builder/internal/infra/orgapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func openStore() (site.Store, func() error) {
	switch config.STORE_DRIVER {
	case "memory":
		log.Println("[store] using in-memory store, nothing survives a restart")
		m := kvstore.NewMemory()
		return m, m.Close
	case "postgres":
		database.InitDB()
		return kvstore.NewGorm(database.DB), func() error { return nil }
	default:
		s, err := kvstore.OpenSQLite(config.SQLITE_PATH)
		if err != nil {
			log.Fatalf("[store] open sqlite %s: %v", config.SQLITE_PATH, err)
		}
		log.Printf("[store] sqlite at %s", config.SQLITE_PATH)
		return s, s.Close
	}
}

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	store, closeStore := openStore()
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("[store] close: %v", err)
		}
	}()

	catalog, err := site.LoadCatalog()
	if err != nil {
		log.Fatalf("load site templates: %v", err)
	}

	mgr := builder.New(blocks.DefaultRegistry(), store, builder.Options{
		Variant:       site.Variant(config.EDITOR_VARIANT),
		PublishDelay:  config.PUBLISH_DELAY,
		MaxWorkspaces: config.WORKSPACE_CACHE,
	})
	defer mgr.Close()

	sites, err := siteapi.NewHandler(mgr, catalog, config.PREVIEW_CACHE_SIZE, config.PUBLIC_BASE_DOMAIN)
	if err != nil {
		log.Fatalf("site handler: %v", err)
	}

	var client *orgclient.Client
	if config.ORG_API_URL != "" {
		client = orgclient.NewClient(config.ORG_API_URL, nil)
	} else {
		log.Println("[orgapi] ORG_API_URL not set, organization routes are disabled")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, sites, orgapi.NewHandler(client), routes.Limits{
		PublishRPS:   config.PUBLISH_RPS,
		PublishBurst: config.PUBLISH_BURST,
	})

	srv := &http.Server{Addr: ":" + config.PORT, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()
	log.Printf("listening on :%s", config.PORT)

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
