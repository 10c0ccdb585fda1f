package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/docvault/docvault/internal/common"
	"github.com/docvault/docvault/internal/server/documents"
)

const maxUploadBytes = 32 << 20

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type documentResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	S3Key       string    `json:"s3_key"`
	UploadDate  time.Time `json:"upload_date"`
	IsEncrypted bool      `json:"is_encrypted"`
}

func toDocumentResponse(d *documents.Document) documentResponse {
	return documentResponse{
		ID:          d.ID,
		Filename:    d.Filename,
		S3Key:       d.S3Key,
		UploadDate:  d.UploadDate,
		IsEncrypted: d.IsEncrypted,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	s.logger.Info(r.Context(), "Registration request", "username", req.Username)

	user, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			respondWithError(w, http.StatusBadRequest, "user already registered")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Confirmation only; the stored hash never leaves the server.
	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "user created",
		"user":    user.Username,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			respondWithError(w, http.StatusBadRequest, "incorrect username or password")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {

	user, ok := CurrentUser(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"user": user.Username})
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {

	user, ok := CurrentUser(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	docs, err := s.documents.List(r.Context(), user.ID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"user_requesting": user.Username,
		"documents":       out,
	})
}

func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) {

	user, ok := CurrentUser(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	doc, err := s.documents.Upload(r.Context(), user.ID, header.Filename, file)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		respondWithError(w, http.StatusInternalServerError, "could not store the file")
		return
	}

	s.logger.Info(r.Context(), "Document uploaded", "username", user.Username, "s3_key", doc.S3Key)

	respondWithJSON(w, http.StatusCreated, toDocumentResponse(doc))
}
