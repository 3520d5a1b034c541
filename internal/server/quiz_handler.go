// Package server serves the noun quiz over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/nounquiz/internal/config"
	"github.com/at-ishikawa/nounquiz/internal/sentence"
)

// SentenceResponse is the body of the sentence endpoints.
type SentenceResponse struct {
	Sentence  string   `json:"sentence"`
	Nouns     []string `json:"nouns"`
	NounCount int      `json:"noun_count"`
	Title     string   `json:"title"`
	Test      string   `json:"test"`
	Group     string   `json:"group"`
}

func newSentenceResponse(record sentence.Record) SentenceResponse {
	return SentenceResponse{
		Sentence:  record.Sentence,
		Nouns:     record.Nouns,
		NounCount: len(record.Nouns),
		Title:     record.Title,
		Test:      record.Test,
		Group:     record.Group,
	}
}

// maxRequestBodyBytes bounds the check-answers body.
const maxRequestBodyBytes = 1 << 20

type CheckAnswersRequest struct {
	Sentence string   `json:"sentence" validate:"notblank"`
	Answers  []string `json:"answers"`
}

type TitlesResponse struct {
	Titles       []sentence.TitleEntry `json:"titles"`
	Groups       []string              `json:"groups"`
	TestsByGroup map[string][]string   `json:"tests_by_group"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// QuizHandler answers the quiz API from a read-only store.
type QuizHandler struct {
	store      *sentence.Store
	validator  *validator.Validate
	translator ut.Translator
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(store *sentence.Store) (*QuizHandler, error) {
	validate, trans, err := config.NewValidator("json")
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	return &QuizHandler{
		store:      store,
		validator:  validate,
		translator: trans,
	}, nil
}

// GetRandomSentence handles GET /api/get-random-sentence.
func (h *QuizHandler) GetRandomSentence(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.Random()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSentenceResponse(record))
}

// GetSentenceByTitle handles GET /api/get-sentence-by-title?title=.
func (h *QuizHandler) GetSentenceByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	record, err := h.store.FindByTitle(title)
	if errors.Is(err, sentence.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no sentence titled %q", title))
		return
	}
	if err != nil {
		slog.Default().Error("failed to find a sentence", "title", title, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, newSentenceResponse(record))
}

// CheckAnswers handles POST /api/check-answers.
func (h *QuizHandler) CheckAnswers(w http.ResponseWriter, r *http.Request) {
	var req CheckAnswersRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, h.translate(err))
		return
	}

	result := h.store.CheckAnswer(req.Sentence, req.Answers)
	if !result.Found {
		slog.Default().Debug("answer checked for an unknown sentence", "sentence", req.Sentence)
	}
	writeJSON(w, http.StatusOK, result)
}

// GetAllTitles handles GET /api/all-titles?test=. The catalog is included so
// a client can build its filters from one request.
func (h *QuizHandler) GetAllTitles(w http.ResponseWriter, r *http.Request) {
	catalog := h.store.Catalog()
	writeJSON(w, http.StatusOK, TitlesResponse{
		Titles:       h.store.ListTitles(r.URL.Query().Get("test")),
		Groups:       catalog.Groups,
		TestsByGroup: catalog.TestsByGroup,
	})
}

// GetGroups handles GET /api/groups.
func (h *QuizHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Catalog())
}

func (h *QuizHandler) translate(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Translate(h.translator))
	}
	return strings.Join(messages, "; ")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to write a response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
