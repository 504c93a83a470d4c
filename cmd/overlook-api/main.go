// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"overlook/internal/config"
	httptransport "overlook/internal/http"
	"overlook/internal/infra"
	"overlook/internal/maps"
	"overlook/internal/modules/pricing"
	"overlook/internal/modules/ride"
	"overlook/internal/secrets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	homeBase, err := secrets.DecryptHomeBase(cfg.HomeBaseCipher)
	if err != nil {
		log.Fatalf("home base secret: %v", err)
	}

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("OVERLOOK_FIREBASE_PROJECT_ID is required")
	}
	app, err := infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	verifier, err := infra.NewTokenVerifier(ctx, app)
	if err != nil {
		log.Fatalf("firebase auth init: %v", err)
	}
	fsClient, err := infra.NewFirestore(ctx, app)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer fsClient.Close()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	routes, err := maps.NewRouteService(cfg.Maps.APIKey, homeBase)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	quoteStore := pricing.NewQuoteStore(redisClient, cfg.Redis.QuoteTTL)
	fareService := pricing.NewService(pricing.DefaultConfig(), routes, quoteStore)

	rideStore := ride.NewFirestoreStore(fsClient)
	eventStore := ride.NewEventStore(dbPool)
	rideService := ride.NewService(rideStore, fareService, eventStore)

	handler := httptransport.NewRouter(verifier, fareService, rideService)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
