package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every API route. authMW guards the routes that need an
// authenticated identity; registration, login and refresh stay open.
func NewRouter(
	userHandler *UserHandler,
	loginHandler *LoginHandler,
	projectHandler *ProjectHandler,
	taskHandler *TaskHandler,
	authMW func(http.Handler) http.Handler,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/token/refresh", loginHandler.Refresh).Methods(http.MethodPost)

	api.Handle("/auth/profile", authMW(http.HandlerFunc(userHandler.Profile))).Methods(http.MethodGet)
	api.Handle("/auth/change-password", authMW(http.HandlerFunc(userHandler.ChangePassword))).Methods(http.MethodPut, http.MethodPatch)

	api.Handle("/projects", authMW(http.HandlerFunc(projectHandler.List))).Methods(http.MethodGet)
	api.Handle("/projects", authMW(http.HandlerFunc(projectHandler.Create))).Methods(http.MethodPost)
	api.Handle("/projects/{id:[0-9]+}", authMW(http.HandlerFunc(projectHandler.Get))).Methods(http.MethodGet)
	api.Handle("/projects/{id:[0-9]+}", authMW(http.HandlerFunc(projectHandler.Update))).Methods(http.MethodPut, http.MethodPatch)
	api.Handle("/projects/{id:[0-9]+}", authMW(http.HandlerFunc(projectHandler.Delete))).Methods(http.MethodDelete)

	api.Handle("/tasks", authMW(http.HandlerFunc(taskHandler.List))).Methods(http.MethodGet)
	api.Handle("/tasks", authMW(http.HandlerFunc(taskHandler.Create))).Methods(http.MethodPost)
	api.Handle("/tasks/{id:[0-9]+}", authMW(http.HandlerFunc(taskHandler.Get))).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}", authMW(http.HandlerFunc(taskHandler.Update))).Methods(http.MethodPut, http.MethodPatch)
	api.Handle("/tasks/{id:[0-9]+}", authMW(http.HandlerFunc(taskHandler.Delete))).Methods(http.MethodDelete)

	return r
}
