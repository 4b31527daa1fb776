// Package main is the entry point for the Aegis Protocol game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/aegisprotocol/aegis-server/internal/directory"
	"github.com/aegisprotocol/aegis-server/internal/events"
	"github.com/aegisprotocol/aegis-server/internal/game"
	"github.com/aegisprotocol/aegis-server/internal/infra/storage"
	"github.com/aegisprotocol/aegis-server/internal/network"
	"github.com/aegisprotocol/aegis-server/internal/platform/config"
	"github.com/aegisprotocol/aegis-server/internal/platform/logger"
	"github.com/aegisprotocol/aegis-server/internal/platform/metrics"
)

// SQLitePersisterAdapter translates domain events to archive rows.
type SQLitePersisterAdapter struct {
	repo *storage.SQLiteEventRepository
}

func (a *SQLitePersisterAdapter) Append(event events.GameEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		payloadBytes = []byte("{}")
	}

	started := time.Now()
	err = a.repo.Append(context.Background(), storage.StoredEvent{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		Payload:   payloadBytes,
	})
	metrics.Get().RecordEventWrite(time.Since(started), err)
	return err
}

func main() {
	log.Println("[AEGIS-SERVER] Initializing Aegis Protocol authoritative server...")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[AEGIS-SERVER] Invalid configuration: %v", err)
	}

	appLogger := logger.NewLogger()

	seed := cfg.Seed
	if seed == 0 {
		seed, err = config.NewSeed()
		if err != nil {
			appLogger.Error("Failed to draw random seed: " + err.Error())
			os.Exit(1)
		}
	}
	appLogger.Info("Game seed: " + strconv.FormatInt(seed, 10))

	appLogger.Info("Initializing SQLite event archive at '" + cfg.DatabasePath + "'...")
	db, err := storage.InitSQLite(cfg.DatabasePath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	eventRepo := storage.NewSQLiteEventRepository(db)
	eventPersister := &SQLitePersisterAdapter{repo: eventRepo}

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(eventPersister)

	appLogger.Info("Bootstrapping game engine...")
	settings := game.Settings{
		MaxTimer:         cfg.MaxTimer,
		StartTimer:       cfg.StartTimer,
		DecayRate:        cfg.DecayRate,
		TickInterval:     cfg.TickInterval,
		Milestones:       cfg.Milestones,
		RewardMultiplier: cfg.RewardMultiplier,
	}
	rng := rand.New(rand.NewSource(seed))
	engine := game.NewEngine(settings, eventLog, appLogger, rng)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine.Start(time.Now())

	scheduler := game.NewScheduler(engine, appLogger)
	go scheduler.Start(ctx)

	appLogger.Info("Bootstrapping WebSocket Hub...")
	dir := directory.NewStatic()
	announcer := network.NewAnnouncer(dir)
	hub := network.NewHub(engine, announcer, appLogger)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, eventLog)

	// API routes
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	http.HandleFunc("/api/attack", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		type requestParams struct {
			ParticipantID string `json:"participant_id"`
			Phrase        string `json:"phrase"`
		}
		var req requestParams
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if req.ParticipantID == "" || req.Phrase == "" {
			http.Error(w, "participant_id and phrase are required", http.StatusBadRequest)
			return
		}

		outcome := engine.SubmitAttack(req.ParticipantID, req.Phrase, time.Now())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"kind":    outcome.Kind,
			"text":    announcer.FormatAttackOutcome(outcome),
			"outcome": outcome,
		})
	})

	http.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(engine.Snapshot())
	})

	http.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		archived, err := eventRepo.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, "Archive unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(archived)
	})

	http.HandleFunc("/metrics", metrics.Handler())
	http.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())

	go func() {
		log.Printf("[AEGIS-SERVER] HTTP API & WS server listening on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[AEGIS-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[AEGIS-SERVER] Shutting down...")
	scheduler.Stop()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for web clients
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection")
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
