package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"digi-agency/microservices/graphics-service/handlers"
	"digi-agency/microservices/graphics-service/logging"
	"digi-agency/microservices/graphics-service/middleware"
	"digi-agency/microservices/graphics-service/repositories"
	"digi-agency/microservices/graphics-service/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Graphics Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Fatalf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)

	// Snapshot feed prati tasks, clients i employees kolekcije uživo.
	feed := repositories.NewSnapshotFeed(db)
	if err := feed.Start(context.Background()); err != nil {
		logging.Logger.Fatalf("Event ID: FEED_START_FAILED, Description: Failed to load initial snapshots: %v", err)
	}
	defer feed.Close()

	notificationsBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	notifier := services.NewHTTPNotifier(os.Getenv("NOTIFICATIONS_SERVICE_URL"), notificationsBreaker)

	taskStore := repositories.NewMongoTaskStore(db.Collection("tasks"))
	taskService := services.NewTaskService(taskStore, notifier)
	viewService := services.NewViewService()
	reportService := services.NewReportService()
	sessionService := services.NewSessionService(feed)

	taskHandler := handlers.NewTaskHandler(taskService, feed)
	viewHandler := handlers.NewViewHandler(feed, viewService)
	reportHandler := handlers.NewReportHandler(feed, viewService, reportService)

	r := mux.NewRouter()

	r.HandleFunc("/api/graphics/tasks", viewHandler.GetDerivedView).Methods(http.MethodGet)
	r.HandleFunc("/api/graphics/tasks/status", taskHandler.ChangeTaskStatus).Methods(http.MethodPost)
	r.HandleFunc("/api/graphics/tasks/extra", taskHandler.CreateExtraTask).Methods(http.MethodPost)
	r.HandleFunc("/api/graphics/tasks/{taskID}/assign", taskHandler.AssignToMember).Methods(http.MethodPost)
	r.HandleFunc("/api/graphics/tasks/{taskID}/send-for-approval", taskHandler.SendForApproval).Methods(http.MethodPost)
	r.HandleFunc("/api/graphics/employees/assignable", viewHandler.GetAssignableEmployees).Methods(http.MethodGet)
	r.HandleFunc("/api/graphics/reports", reportHandler.GetReport).Methods(http.MethodGet)
	r.HandleFunc("/api/graphics/reports/export", reportHandler.ExportReportCSV).Methods(http.MethodGet)

	protected := middleware.JWTAuthMiddleware(sessionService, r)
	corsRouter := enableCORS(protected)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
