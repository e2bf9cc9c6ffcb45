package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/service"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

type Dependencies struct {
	Logger          *log.Logger
	Addr            string
	AuthService     *service.AuthService
	DocumentService *service.DocumentService
	RequestService  *service.RequestService
	Sessions        *service.SessionRegistry
}

type Server struct {
	httpServer      *http.Server
	logger          *log.Logger
	mux             *http.ServeMux
	authService     *service.AuthService
	documentService *service.DocumentService
	requestService  *service.RequestService
	sessions        *service.SessionRegistry
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:          d.Logger,
		mux:             mux,
		authService:     d.AuthService,
		documentService: d.DocumentService,
		requestService:  d.RequestService,
		sessions:        d.Sessions,
	}

	mux.HandleFunc("POST /v1/login", s.handleLogin)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /v1/requests/defaults", s.requireOfficer(s.handleDefaults))
	mux.HandleFunc("POST /v1/documents/{kind}", s.requireOfficer(s.handleUpload))
	mux.HandleFunc("POST /v1/requests", s.requireOfficer(s.handleSubmit))
	mux.HandleFunc("GET /v1/requests", s.requireOfficer(s.handleListRequests))
	mux.HandleFunc("GET /v1/requests/{id}", s.requireOfficer(s.handleGetRequest))

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_body", "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "login", err)
		return
	}

	respond(w, r, http.StatusOK, resp)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.requestService.Catalog()
	respond(w, r, http.StatusOK, types.CatalogResponse{
		Departments: nonNil(c.Departments),
		Employees:   nonNil(c.Employees),
		Documents:   service.DocumentLimits(),
	})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request, _ types.Principal) {
	respond(w, r, http.StatusOK, s.requestService.Defaults())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, _ types.Principal) {
	kind := types.DocumentKind(r.PathValue("kind"))

	var req types.UploadRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_body", "invalid request body")
		return
	}

	name, err := s.documentService.Upload(r.Context(), kind, req.SourcePath)
	if err != nil {
		s.writeServiceError(w, r, "upload", err)
		return
	}

	respond(w, r, http.StatusOK, types.UploadResponse{OK: true, Kind: kind, Filename: name})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, p types.Principal) {
	var form types.RequestForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_body", "invalid request body")
		return
	}

	id, err := s.requestService.Submit(r.Context(), p, form)
	if err != nil {
		s.writeServiceError(w, r, "submit", err)
		return
	}

	respond(w, r, http.StatusCreated, types.SubmitResponse{
		OK:       true,
		ID:       id,
		Defaults: s.requestService.Defaults(),
	})
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request, _ types.Principal) {
	ids, err := s.requestService.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "list requests", err)
		return
	}
	respond(w, r, http.StatusOK, types.RequestListResponse{IDs: nonNil(ids)})
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request, _ types.Principal) {
	id := r.PathValue("id")
	rec, err := s.requestService.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "get request", err)
		return
	}
	respond(w, r, http.StatusOK, types.StoredRequest{ID: id, Request: rec})
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
