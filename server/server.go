package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"github.com/tvrenamer/tvrenamer/pkg/manager"
	"github.com/tvrenamer/tvrenamer/pkg/renamer"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    *error `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server houses all dependencies the rename server needs such as loggers, the session manager, and the background worker.
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    *manager.RenameManager
	worker     *renamer.Worker
}

// New creates a new rename server
func New(logger *zap.SugaredLogger, manager *manager.RenameManager, worker *renamer.Worker) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
		worker:     worker,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: &err,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(ctx context.Context, port int) error {
	s.worker.Start(ctx)

	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/search", s.SearchShows()).Methods(http.MethodGet)
	v1.HandleFunc("/show", s.SelectShow()).Methods(http.MethodPost)

	v1.HandleFunc("/files", s.ListFiles()).Methods(http.MethodGet)
	v1.HandleFunc("/scan", s.ScanLibrary()).Methods(http.MethodPost)

	v1.HandleFunc("/preview", s.PreviewRenames()).Methods(http.MethodPost)
	v1.HandleFunc("/rename", s.RenameFiles()).Methods(http.MethodPost)
	v1.HandleFunc("/undo", s.UndoRenames()).Methods(http.MethodPost)

	v1.HandleFunc("/activity", s.GetActivity()).Methods(http.MethodGet)
	v1.HandleFunc("/history", s.GetHistory()).Methods(http.MethodGet)
	v1.HandleFunc("/stats", s.GetStats()).Methods(http.MethodGet)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsHandler,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	select {
	case <-c:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// SearchShows searches for show metadata via tmdb
func (s Server) SearchShows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		qps := r.URL.Query()
		query := qps.Get("query")

		result, err := s.manager.SearchShows(r.Context(), query)
		if err != nil {
			writeErrorResponse(w, http.StatusOK, err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: result})
		if err != nil {
			log.Error("failed to write response", zap.Error(err))
			return
		}
	}
}

// SelectShowRequest pins a show and season for the session.
type SelectShowRequest struct {
	Name   string `json:"name"`
	Season int    `json:"season"`
}

// SelectShow pins the show and season every later preview uses
func (s Server) SelectShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		b, err := io.ReadAll(r.Body)
		if err != nil {
			log.Debug("invalid request body", zap.Error(err))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		var request SelectShowRequest
		err = json.Unmarshal(b, &request)
		if err != nil {
			log.Debug("invalid request body", zap.ByteString("body", b))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if request.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		selection, err := s.manager.SelectShow(r.Context(), request.Name, request.Season)
		if err != nil {
			writeErrorResponse(w, http.StatusNotFound, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: selection})
	}
}

// ListFiles lists the current working set
func (s Server) ListFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.manager.Files()})
	}
}

// ScanLibrary rebuilds the working set from disk
func (s Server) ScanLibrary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		entries, err := s.manager.Scan(r.Context())
		if err != nil {
			log.Error("failed to scan library", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: entries})
	}
}

// PreviewRequest selects the renaming method for a preview pass.
type PreviewRequest struct {
	Method string `json:"method"`
}

// PreviewRenames queues a preview pass on the background worker
func (s Server) PreviewRenames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		b, err := io.ReadAll(r.Body)
		if err != nil {
			log.Debug("invalid request body", zap.Error(err))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		var request PreviewRequest
		err = json.Unmarshal(b, &request)
		if err != nil {
			log.Debug("invalid request body", zap.ByteString("body", b))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		method, err := renamer.ParseMethod(request.Method)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = s.worker.Submit(func(ctx context.Context) (any, error) {
			return s.manager.Preview(ctx, method)
		})
		if err != nil {
			writeErrorResponse(w, http.StatusServiceUnavailable, err)
			return
		}

		writeResponse(w, http.StatusAccepted, GenericResponse{Response: "preview queued"})
	}
}

// RenameFiles queues the previewed renames on the background worker
func (s Server) RenameFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.worker.Submit(func(ctx context.Context) (any, error) {
			return s.manager.Rename(ctx)
		})
		if err != nil {
			writeErrorResponse(w, http.StatusServiceUnavailable, err)
			return
		}

		writeResponse(w, http.StatusAccepted, GenericResponse{Response: "rename queued"})
	}
}

// UndoRequest limits an undo to specific files. An empty list undoes the last batch.
type UndoRequest struct {
	Paths []string `json:"paths"`
}

// UndoRenames restores original names, either the last batch or a selection
func (s Server) UndoRenames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		b, err := io.ReadAll(r.Body)
		if err != nil {
			log.Debug("invalid request body", zap.Error(err))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		var request UndoRequest
		if len(b) > 0 {
			if err := json.Unmarshal(b, &request); err != nil {
				log.Debug("invalid request body", zap.ByteString("body", b))
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
		}

		var restored int
		if len(request.Paths) > 0 {
			restored, err = s.manager.UndoSelected(r.Context(), request.Paths)
		} else {
			restored, err = s.manager.UndoLast(r.Context())
		}
		if err != nil {
			writeErrorResponse(w, http.StatusConflict, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: restored})
	}
}

// GetActivity drains finished background work
func (s Server) GetActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := s.worker.Drain()

		type activity struct {
			Result any    `json:"result,omitempty"`
			Error  string `json:"error,omitempty"`
		}

		out := make([]activity, 0, len(results))
		for _, res := range results {
			a := activity{Result: res.Value}
			if res.Err != nil {
				a.Error = res.Err.Error()
			}
			out = append(out, a)
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: out})
	}
}

// GetHistory lists completed undo operations, newest first
func (s Server) GetHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.manager.History()})
	}
}

// GetStats reports metadata cache and lookup counters
func (s Server) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.manager.Stats()})
	}
}
