package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-kost-market.git/internal/booking"
	"github.com/ariefcatur/go-kost-market.git/internal/config"
	"github.com/ariefcatur/go-kost-market.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-kost-market.git/internal/kafka"
	"github.com/ariefcatur/go-kost-market.git/internal/kost"
	"github.com/ariefcatur/go-kost-market.git/internal/postgres"
	"github.com/ariefcatur/go-kost-market.git/internal/redisx"
	"github.com/ariefcatur/go-kost-market.git/internal/stats"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	prodCreated := kafkax.NewProducer(cfg.KafkaBrokers, booking.TopicBookingCreated, 1024)
	prodCreated.Start(ctx)
	prodCancelled := kafkax.NewProducer(cfg.KafkaBrokers, booking.TopicBookingCancelled, 1024)
	prodCancelled.Start(ctx)

	// Repos, service & handlers
	bookingRepo := &booking.Repo{DB: db}
	kostRepo := &kost.Repo{DB: db}
	statsSvc := &stats.Service{Bookings: bookingRepo, Kosts: kostRepo}

	router := httpx.NewRouter()
	httpx.Mount(router, rdb,
		&httpx.StatsHandler{Stats: statsSvc},
		&httpx.KostHandler{Repo: kostRepo},
		&httpx.BookingHandler{
			Repo:           bookingRepo,
			Producer:       prodCreated,
			ProducerCancel: prodCancelled,
			Redis:          rdb,
			Service:        cfg.ServiceName,
		},
	)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// tutup inbox -> flush & close writer
	prodCreated.Close()
	prodCancelled.Close()
	prodCreated.WaitClosed()
	prodCancelled.WaitClosed()
}
