package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"taskmanager/config"
	"taskmanager/handlers"
	"taskmanager/logging"
	"taskmanager/middleware"
	"taskmanager/repositories"
	"taskmanager/services"
	"taskmanager/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	logging.InitLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_LOAD_ERROR, Description: Invalid configuration: %v", err)
	}

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Manager API...")

	db, err := repositories.NewDB(cfg.DatabaseURL)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection failed: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to database at %s", cfg.DatabaseURL)

	blackList := map[string]bool{}
	if cfg.BlacklistFile != "" {
		blackList, err = services.LoadBlackList(cfg.BlacklistFile)
		if err != nil {
			logging.Logger.Fatalf("Event ID: BLACKLIST_LOAD_FAILED, Description: Failed to load password blacklist: %v", err)
		}
		logging.Logger.Infof("Event ID: BLACKLIST_LOADED, Description: Loaded %d blacklisted passwords", len(blackList))
	}

	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(userRepo, blackList)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	captcha := utils.NewCaptchaVerifier(cfg.CaptchaSecret, utils.NewHTTPClient())
	if captcha != nil {
		logging.Logger.Info("Event ID: CAPTCHA_ENABLED, Description: reCAPTCHA verification enabled for registration")
	}

	userHandler := &handlers.UserHandler{UserService: userService, Captcha: captcha}
	loginHandler := &handlers.LoginHandler{UserService: userService, JWTService: jwtService}
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	router := handlers.NewRouter(userHandler, loginHandler, projectHandler, taskHandler, middleware.RequireAuth(jwtService))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      middleware.EnableCORS(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_LISTENING, Description: Server is running on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_STOPPED, Description: Server stopped: %v", err)
	}
}
