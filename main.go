package main

import (
	"log"

	"qrdine/config"
	httpapi "qrdine/internal/api/http"
	"qrdine/internal/service"
	"qrdine/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.SessionEventsTopic())
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	tokenCache := storage.NewTokenCache(rdb, config.GuestTokenTTL())
	publisher := storage.NewKafkaPublisher(writer)

	tables := service.NewTableService(repo, service.DefaultQRGenerator{BaseURL: config.ScanBaseURL()})
	guests := service.NewGuestService(repo, repo, repo, tokenCache)
	sessions := service.NewSessionService(repo, repo, tables, guests, publisher)
	carts := service.NewCartService(repo, repo, repo, repo, repo, publisher)
	billing := service.NewBillingService(repo, repo, repo, repo, repo, repo)

	handler := httpapi.NewHandler(tables, sessions, guests, carts, billing)
	httpapi.StartServer(config.ListenAddr(), httpapi.NewRouter(handler))
}
