package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/auth"
	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	cfg        *config.Config
	log        *logrus.Logger
	db         database.Service
	tokens     *auth.TokenManager
	auth       service.AuthService
	tasks      service.TaskService
	taskLists  service.TaskListService
	checklists service.ChecklistService
}

// Deps bundles everything the HTTP layer delegates to.
type Deps struct {
	Config     *config.Config
	Log        *logrus.Logger
	DB         database.Service
	Tokens     *auth.TokenManager
	Auth       service.AuthService
	Tasks      service.TaskService
	TaskLists  service.TaskListService
	Checklists service.ChecklistService
}

// NewServer builds the http.Server with sensible timeouts.
func NewServer(deps Deps) *http.Server {
	appServer := &Server{
		cfg:        deps.Config,
		log:        deps.Log,
		db:         deps.DB,
		tokens:     deps.Tokens,
		auth:       deps.Auth,
		tasks:      deps.Tasks,
		taskLists:  deps.TaskLists,
		checklists: deps.Checklists,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", deps.Config.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
