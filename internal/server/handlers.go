package server

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"jsonspect/internal/emitter"
	"jsonspect/internal/errors"
	"jsonspect/internal/export"
	"jsonspect/internal/history"
	"jsonspect/internal/inspector"
	"jsonspect/internal/mock"
	"jsonspect/internal/models"
	"jsonspect/internal/parser"
)

func parseDocument(jsonStr string) (models.Value, error) {
	return parser.ParseString(jsonStr)
}

type formatRequest struct {
	JSON string `json:"json"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	formatted, value, err := inspector.Format(req.JSON)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := s.session(w, r)
	sess.Append(history.Entry{
		Timestamp: time.Now(),
		Kind:      history.KindFormat,
		Source:    value,
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"formatted": formatted,
		"value":     value,
	})
}

type diffRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := inspector.Compare(req.A, req.B)
	if err != nil {
		respondError(w, err)
		return
	}

	if result.Empty() {
		respondJSON(w, http.StatusOK, map[string]any{"identical": true, "differences": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"identical": false, "differences": result})
}

type mockRequest struct {
	Example json.RawMessage `json:"example"`
	Count   int             `json:"count"`
}

func (s *Server) handleMock(w http.ResponseWriter, r *http.Request) {
	var req mockRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	example, err := parseExample(req.Example)
	if err != nil {
		respondError(w, err)
		return
	}

	records, err := mock.Generate(example, req.Count, newRNG(), s.cfg.Mock)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := s.session(w, r)
	sess.Append(history.Entry{
		Timestamp: time.Now(),
		Kind:      history.KindMock,
		Source:    example,
		Batch:     records,
	})

	respondJSON(w, http.StatusOK, map[string]any{"records": records})
}

type schemaRequest struct {
	Example json.RawMessage `json:"example"`
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	var req schemaRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	example, err := parseExample(req.Example)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"schema": mock.Describe(mock.BuildSchema(example)),
	})
}

type typedefsRequest struct {
	Example  json.RawMessage `json:"example"`
	Language string          `json:"language"`
	RootName string          `json:"root_name"`
}

func (s *Server) handleTypedefs(w http.ResponseWriter, r *http.Request) {
	var req typedefsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	lang, err := emitter.ParseLanguage(req.Language)
	if err != nil {
		respondError(w, err)
		return
	}

	example, err := parseExample(req.Example)
	if err != nil {
		respondError(w, err)
		return
	}

	rootName := req.RootName
	if rootName == "" {
		rootName = s.cfg.RootName
	}

	em := emitter.New()
	em.Package = s.cfg.Package
	definitions, err := em.Emit(mock.BuildSchema(example), lang, rootName)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"language":    string(lang),
		"definitions": definitions,
	})
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if !inspector.IsJSONRelated(req.Question) {
		respondError(w, errors.NewAIError("the question does not seem to be about the JSON document", errors.ErrOffTopicQuestion))
		return
	}

	sess := s.session(w, r)
	latest, ok := sess.Latest()
	if !ok {
		respondError(w, errors.NewAIError("format or generate a document first", errors.ErrNoDocument))
		return
	}

	if !sess.TryUseAI(s.cfg.AI.FreeUses) {
		respondError(w, errors.NewAIError("free AI question limit reached", errors.ErrQuotaExceeded))
		return
	}

	answer, err := s.ai.Ask(r.Context(), req.Question, latest.Source)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	respondJSON(w, http.StatusOK, map[string]any{
		"session": sess.ID(),
		"entries": sess.Entries(),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Clear()
	respondJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	batch, ok := sess.LatestBatch()
	if !ok {
		respondError(w, errors.NewOutputError("no generated batch to export", errors.ErrNoDocument))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="mock_data.csv"`)
	if err := export.WriteCSV(w, batch); err != nil {
		respondError(w, err)
	}
}
