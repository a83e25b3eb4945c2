package main

import (
	"database/sql"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"ayurveda-ai/internal/agent"
	"ayurveda-ai/internal/assessment"
	"ayurveda-ai/internal/platform/telegram"
	"ayurveda-ai/internal/report"
	"ayurveda-ai/internal/web"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 1. Infrastructure. The service runs without a database: the
	// assessment pipeline is stateless, only the audit endpoints need it.
	var db *sql.DB
	dbConnStr := os.Getenv("DATABASE_URL")
	if dbConnStr != "" {
		db, err = sql.Open("postgres", dbConnStr)
		if err == nil {
			err = db.Ping()
		}
		if err != nil {
			logger.Warn("could not connect to database, history endpoints disabled", zap.Error(err))
			db = nil
		} else {
			logger.Info("connected to database")
			m, err := migrate.New("file://migrations", dbConnStr)
			if err != nil {
				logger.Warn("migration init failed", zap.Error(err))
			} else if err := m.Up(); err != nil && err != migrate.ErrNoChange {
				logger.Warn("migration up failed", zap.Error(err))
			} else {
				logger.Info("migrations applied")
			}
		}
	} else {
		logger.Info("DATABASE_URL not set, history endpoints disabled")
	}

	// 2. Clients
	modelCfg := agent.Config{
		APIKey:        os.Getenv("OPENAI_API_KEY"),
		BaseURL:       os.Getenv("OPENAI_BASE_URL"),
		GuidanceModel: os.Getenv("GUIDANCE_MODEL"),
		VisionModel:   os.Getenv("VISION_MODEL"),
	}
	gen := agent.NewMedGemmaClient(modelCfg)

	var tgClient report.TelegramClient
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		tgClient = telegram.NewClient(token)
	}
	practitionerChatID, _ := strconv.ParseInt(os.Getenv("PRACTITIONER_CHAT_ID"), 10, 64)
	if tgClient != nil && practitionerChatID == 0 {
		logger.Warn("PRACTITIONER_CHAT_ID is not set or invalid, reports will not be sent")
	}

	// 3. Services
	var repo assessment.Repository
	if db != nil {
		repo = assessment.NewRepository(db)
	}
	reportSvc := report.NewService(tgClient, practitionerChatID, logger)
	svc := assessment.NewService(repo, gen, reportSvc, logger)
	handler := assessment.NewHandler(svc, guidanceModelName(modelCfg))

	webSrv, err := web.NewServer(svc)
	if err != nil {
		logger.Fatal("failed to load web templates", zap.Error(err))
	}

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if req.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Route("/api", func(r chi.Router) {
		assessment.RegisterRoutes(r, handler)
	})
	web.RegisterRoutes(r, webSrv)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func guidanceModelName(cfg agent.Config) string {
	if cfg.GuidanceModel != "" {
		return cfg.GuidanceModel
	}
	return "medgemma-4b-it-ft"
}
