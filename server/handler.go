package server

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// handler creates the router for the server's endpoints.  Requests are
// logged in Apache common log format.
func (s *Server) handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/play", s.handlePlay).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	return handlers.LoggingHandler(s.log.Writer(), r)
}

// handlePlay upgrades the request to a websocket connection and registers
// it with the stream.  The token stays anonymous until the client sends a
// room or join request.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		s.log.Printf("upgrading connection: %v", err)
		return
	}
	s.stream.Add(s.runCtx, conn)
}

// handleHealth reports that the server is accepting connections.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// handleVersion writes the server version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(s.Version))
}
