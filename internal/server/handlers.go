package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"mediashelf/internal/api"
	"mediashelf/internal/auth"
	"mediashelf/internal/catalog"
	"mediashelf/internal/github"
	"mediashelf/internal/logging"
)

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	filter, sort := api.FilterFromValues(r.URL.Query(), s.defaultSort)
	resp, err := s.deps.Catalog.Items(r.Context(), filter, sort)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp, err := s.deps.Catalog.Meta(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	resp, err := s.deps.Catalog.Validate(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := s.deps.Gate.Login(r.Context(), req.Password)
	if errors.Is(err, auth.ErrInvalidPassword) {
		logging.WithContext(r.Context(), s.logger).Warn("login rejected")
		s.writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.LoginResponse{
		Token:     session.Token,
		ExpiresAt: api.FormatTime(session.ExpiresAt),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	token, _ := bearerToken(r)
	if err := s.deps.Gate.Logout(token); err != nil {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	w.Header().Del(SessionHeader)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getData(w, r)
	case http.MethodPut:
		s.authMiddleware(s.putData)(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) getData(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.Data.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(OriginHeader, string(result.Origin))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, result.Text)
}

func (s *Server) putData(w http.ResponseWriter, r *http.Request) {
	records, err := catalog.ParseReader(http.MaxBytesReader(w, r.Body, maxCatalogBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := s.deps.Data.SaveLocal(r.Context(), records); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := api.ValidateRecords(records, nil)
	s.writeJSON(w, http.StatusOK, api.SaveResponse{Records: resp.Records, Diagnostics: resp.Diagnostics})
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.CommitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCatalogBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := req.Text
	if text == "" {
		snap, _, err := s.deps.Catalog.Current(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		text = catalog.Format(snap.Records)
	}

	override := github.Settings{Owner: req.Owner, Repo: req.Repo, Branch: req.Branch, Path: req.Path, Token: req.Token}
	commit, err := s.deps.Publisher.Commit(r.Context(), override, text)
	if err != nil {
		s.writeError(w, commitStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.CommitResponse{
		SHA:       commit.SHA,
		ShortSHA:  github.ShortSHA(commit.SHA),
		CommitURL: commit.CommitURL,
		Message:   commit.Message,
	})
}

func commitStatus(err error) int {
	switch {
	case errors.Is(err, github.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, github.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, github.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
