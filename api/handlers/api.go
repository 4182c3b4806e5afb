package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/api/scheduler"
	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases"
	"github.com/whosonpole/whos-on-pole-api/models"
)

// requestTimeout bounds every api route; slow mongo round trips surface
// as 408 instead of hanging the dyno
const requestTimeout = 30 * time.Second

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	DB        databases.CollectionHelper
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	reputationDB := databases.NewReputationDatabase(a.dbHelper)
	reportDB := databases.NewReportDatabase(a.dbHelper)
	contentDB := databases.NewContentDatabase(a.dbHelper)
	userDB := databases.NewUserDatabase(a.dbHelper)

	gate := api.BanGate{DB: reputationDB}
	adminGate := api.AdminGate{RDB: reputationDB, JWTSecret: a.Config.JWTSecret}

	hub := NewHub(databases.NewChatMessageDatabase(a.dbHelper))
	go hub.Run()

	media := NewMedia(a.Config)
	mailer := NewMailer(a.Config)

	report := Report{
		RDB: reportDB,
		CDB: contentDB,
		MDB: databases.NewChatMessageDatabase(a.dbHelper),
	}
	moderation := Moderation{
		DB:        reputationDB,
		ReportDB:  reportDB,
		ContentDB: contentDB,
		UserDB:    userDB,
		Mailer:    mailer,
		Media:     media,
	}
	chat := Chat{Hub: hub, UDB: userDB}
	admin := Admin{DB: databases.NewAdminDatabase(a.dbHelper), Config: a.Config}
	leaderboard := Leaderboard{Config: a.Config}

	// authenticated member routes pass through the session middleware and
	// then the ban gate, so a suspension lands on the very next request
	member := func(h http.HandlerFunc) http.Handler {
		return api.Middleware(gate.Check(h))
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(requestTimeout))

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/reports", member(report.SubmitReportHandler)).Methods("POST")
	apiCreate.Handle("/chat/report", member(report.ChatReportHandler)).Methods("POST")
	apiCreate.Handle("/chat/ws", member(chat.ServeWsHandler)).Methods("GET")

	apiCreate.Handle("/admin/login", http.HandlerFunc(admin.AdminLoginHandler)).Methods("POST")
	apiCreate.Handle("/admin/users/actions", adminGate.RequireAdmin(http.HandlerFunc(moderation.UserActionsHandler))).Methods("POST")
	apiCreate.Handle("/admin/users/points", adminGate.RequireAdmin(http.HandlerFunc(moderation.PointsOverviewHandler))).Methods("GET")
	apiCreate.Handle("/admin/users/reports", adminGate.RequireAdmin(http.HandlerFunc(report.UserReportsHandler))).Methods("GET")
	apiCreate.Handle("/admin/leaderboard/generate", adminGate.RequireAdmin(http.HandlerFunc(leaderboard.GenerateHandler))).Methods("POST")
	apiCreate.Handle("/reports/remove", adminGate.RequireAdmin(http.HandlerFunc(moderation.RemoveContentHandler))).Methods("POST")
	apiCreate.Handle("/reports/ignore", adminGate.RequireAdmin(http.HandlerFunc(moderation.IgnoreReportHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("whos-on-pole-api has connected to the database")

	// background jobs: moderation digest + leaderboard refresh
	a.Scheduler = scheduler.New(
		databases.NewReportDatabase(a.dbHelper),
		databases.NewSchedulerLockDatabase(a.dbHelper),
		a.Config,
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

// respondError writes the structured error envelope used across the
// moderation surface
func respondError(w http.ResponseWriter, httpStatusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
	w.Write(b)
}
