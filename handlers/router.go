package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/config"
	"github.com/ZacxDev/commands-site/content"
	"github.com/ZacxDev/commands-site/session"
	"github.com/ZacxDev/commands-site/store"
	"github.com/ZacxDev/commands-site/utils"
)

// Dependencies are the long-lived services the router is built from.
type Dependencies struct {
	Config   *config.Site
	Logger   *zap.Logger
	Sessions *session.Manager
	// Assets maps javascript target names to their compiled public paths.
	Assets map[string]string
}

type site struct {
	cfg      *config.Site
	logger   *zap.Logger
	store    *store.DataStore
	sessions *session.Manager
	assets   map[string]string
}

func SetupRouter(deps Dependencies) (*mux.Router, error) {
	if deps.Config == nil {
		return nil, errors.New("router: config is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("router: session manager is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Assets == nil {
		deps.Assets = map[string]string{}
	}

	s := &site{
		cfg:      deps.Config,
		logger:   deps.Logger,
		store:    store.New(deps.Config.Paths.Data),
		sessions: deps.Sessions,
		assets:   deps.Assets,
	}

	router := mux.NewRouter()
	router.Use(s.requestContextMiddleware)
	router.NotFoundHandler = s.requestContextMiddleware(http.HandlerFunc(Custom404Handler))

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(deps.Config.Paths.Static))))

	api := s.apiRouter()
	router.PathPrefix("/admin/api/").Handler(api)
	router.Handle("/admin/save", api).Methods(http.MethodPost)

	router.Handle("/admin", http.RedirectHandler("/admin/", http.StatusMovedPermanently))
	router.HandleFunc("/admin/", s.adminHandler).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/admin/login", s.loginHandler).Methods(http.MethodPost)
	router.HandleFunc("/admin/logout", s.logoutHandler).Methods(http.MethodGet, http.MethodPost)

	router.HandleFunc("/sitemap.xml", s.sitemapHandler).Methods(http.MethodGet)

	router.HandleFunc("/", s.publicPageHandler).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/{lang:[A-Za-z0-9_-]{2,10}}/", s.publicPageHandler).Methods(http.MethodGet, http.MethodHead)

	return router, nil
}

func (s *site) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	rc := FromRequest(r)
	doc := content.ForDisplay(s.store.Read())
	sitemap, err := utils.GenerateSitemapContent(rc.Config.Server.Origin, doc.Languages, s.store.LastModified(time.DateOnly))
	if err != nil {
		rc.Logger.Error("generate sitemap", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write([]byte(sitemap)); err != nil {
		rc.Logger.Warn("write response", zap.Error(err))
	}
}
