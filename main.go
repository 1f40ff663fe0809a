package main

import (
	"log"
	"net/http"

	"linebell/ai"
	"linebell/commands"
	"linebell/config"
	"linebell/handlers"
	"linebell/line"
	"linebell/metrics"
	"linebell/middleware"
	"linebell/store"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer s.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Ops event feed
	hub := handlers.NewHub()
	go hub.Run()

	// Collaborator clients
	lineClient := line.NewClient(cfg.LineChannelAccessToken)
	aiClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Reminder core
	executor := commands.NewExecutor(s, collector)
	limiter := middleware.NewSenderLimiter(cfg.WebhookRatePerMin, cfg.WebhookBurst)
	webhookHandler := handlers.NewWebhookHandler(cfg.LineChannelSecret, cfg.CommandPrefix, executor, aiClient, lineClient, limiter, collector)

	dispatcher := handlers.NewDispatcher(s, lineClient, hub, collector)
	dispatcher.StartScheduler(cfg.DispatchInterval)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("POST /callback", webhookHandler.HandleCallback)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler(registry))

	// Ops API (scan trigger, admin listing, event feed)
	if cfg.AdminEnabled() {
		auth := middleware.NewAuthenticator(cfg.JWTSecret)
		adminHandler, err := handlers.NewAdminHandler(s, auth, cfg.AdminPassword)
		if err != nil {
			log.Fatal("Failed to initialize admin handler: ", err)
		}

		mux.HandleFunc("POST /api/admin/login", adminHandler.Login)
		mux.HandleFunc("GET /api/admin/reminders", auth.RequireAuth(adminHandler.ListReminders))
		mux.HandleFunc("POST /api/dispatch/run", auth.RequireAuth(dispatcher.Trigger))
		mux.HandleFunc("GET /api/events", auth.RequireAuth(hub.HandleWebSocket))
	} else {
		log.Println("ADMIN_PASSWORD not set. Ops API disabled.")
	}

	handler := middleware.LogRequests(mux)

	log.Printf("linebell server starting on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
