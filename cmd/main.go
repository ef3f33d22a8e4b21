package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/handlers"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/predictor"
	"github.com/ukydev/fleet-maintenance/internal/schema"
	"github.com/ukydev/fleet-maintenance/internal/store"
	"github.com/ukydev/fleet-maintenance/internal/telemetry"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using process environment")
	}

	// Dataset and model are both optional at startup: lookups degrade to
	// an empty store, predictions report the model as unavailable.
	recordStore, err := store.Load(getenv("DATASET_PATH", "truck_dataset.csv"))
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	invoker := predictor.NewInvoker(getenv("MODEL_PATH", "truck_maintenance_regressor.json"))

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	database := client.Database(getenv("MONGO_DB", "fleet_maintenance"))
	userCollection := &db.MongoUserCollection{Collection: database.Collection("users")}
	auditCollection := &db.MongoAuditCollection{Collection: database.Collection("prediction_audit")}

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	feed := telemetry.NewFeed()
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		topic := getenv("MQTT_TOPIC", "fleet/telemetry")
		if _, err := telemetry.Subscribe(broker, "fleet-maintenance-api", topic, feed); err != nil {
			log.WithError(err).Warn("live telemetry feed disabled")
		}
	}

	authHandler := handlers.NewAuthHandler(authService, userCollection)
	recordsHandler := handlers.NewRecordsHandler(recordStore)
	predictHandler := handlers.NewPredictHandler(schema.V1(), invoker, auditCollection)
	telemetryHandler := handlers.NewTelemetryHandler(feed)
	statusHandler := &handlers.StatusHandler{Store: recordStore, Regressor: invoker}

	authMW := middleware.NewAuthMiddleware(authService)
	rateMW := middleware.NewRateLimitMiddleware()

	requires := func(action string, h http.HandlerFunc) http.Handler {
		return authMW.RequirePermission(action)(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/profile", authHandler.GetProfile)
	mux.Handle("/api/records/lookup", requires(models.ActionViewRecords, recordsHandler.Lookup))
	mux.Handle("/api/records/export", requires(models.ActionExportDataset, recordsHandler.Export))
	mux.Handle("/api/records", requires(models.ActionViewRecords, recordsHandler.Browse))
	mux.Handle("/api/fleet/summary", requires(models.ActionViewRecords, recordsHandler.Summary))
	mux.Handle("/api/predict", requires(models.ActionRunPrediction, predictHandler.Predict))
	mux.Handle("/api/telemetry/latest", requires(models.ActionViewTelemetry, telemetryHandler.Latest))
	mux.HandleFunc("/health", statusHandler.Health)

	root := rateMW.RateLimit(120, 60)(authMW.Authenticate(mux))

	port := getenv("PORT", "8080")
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, root))
}
