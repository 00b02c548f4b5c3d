package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bull/qubz-assistant/internal/benchmark"
	"github.com/bull/qubz-assistant/internal/chat"
	"github.com/bull/qubz-assistant/internal/storage"
)

type chatRequest struct {
	Message  string `json:"message"`
	Provider string `json:"provider,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON body"})
		return
	}

	resp, err := s.chat.HandleChatWith(r.Context(), req.Provider, req.Message)
	if err != nil {
		var verr *chat.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Message is required"})
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type uploadResponse struct {
	Message  string              `json:"message"`
	Filename string              `json:"filename"`
	Type     storage.ContentType `json:"type"`
	Archived bool                `json:"archived"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("document")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Could not read upload"})
		return
	}

	doc, err := s.loader.Parse(header.Filename, data)
	if err != nil {
		s.logger.Warn("Upload rejected", "filename", header.Filename, "error", err)
		s.writeError(w, r, fmt.Errorf("parse %s: %w", header.Filename, err))
		return
	}

	doc.AddedAt = time.Now()
	s.store.Add(*doc)

	archived := false
	if s.archive != nil {
		if err := s.archive.Archive(r.Context(), *doc); err != nil {
			s.logger.Warn("Failed to archive upload", "filename", doc.Identifier, "error", err)
		} else {
			archived = true
		}
	}

	s.logger.Info("Document uploaded", "filename", doc.Identifier, "type", doc.Type, "size", len(doc.Content))
	writeJSON(w, http.StatusOK, uploadResponse{
		Message:  "Document uploaded successfully",
		Filename: doc.Identifier,
		Type:     doc.Type,
		Archived: archived,
	})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summaries())
}

type benchmarkRunRequest struct {
	TestType string `json:"testType"`
}

type benchmarkRunData struct {
	Summary    benchmark.Summary `json:"summary"`
	TotalTests int               `json:"totalTests"`
	Filename   string            `json:"filename"`
	Timestamp  time.Time         `json:"timestamp"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) handleBenchmarkRun(w http.ResponseWriter, r *http.Request) {
	var req benchmarkRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON body"})
		return
	}
	req.TestType = benchmark.NormalizeTestType(req.TestType)

	scenarios, err := benchmark.ScenariosFor(req.TestType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !s.startBenchmark() {
		writeJSON(w, http.StatusConflict, errorBody{Error: ErrBenchmarkRunning.Error()})
		return
	}
	defer s.finishBenchmark()

	s.logger.Info("Starting benchmark via API", "type", req.TestType)
	report, err := s.runner.Run(r.Context(), req.TestType, scenarios)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var filename string
	if s.reports != nil {
		filename, err = s.reports.Save(report)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Benchmark completed successfully",
		Data: benchmarkRunData{
			Summary:    report.Summary,
			TotalTests: len(report.DetailedResults),
			Filename:   filename,
			Timestamp:  report.GeneratedAt,
		},
	})
}

func (s *Server) startBenchmark() bool {
	s.benchMu.Lock()
	defer s.benchMu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Server) finishBenchmark() {
	s.benchMu.Lock()
	s.running = false
	s.benchMu.Unlock()
}

func (s *Server) handleBenchmarkList(w http.ResponseWriter, r *http.Request) {
	files, err := s.reports.List()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool                   `json:"success"`
		Files   []benchmark.ReportFile `json:"files"`
	}{Success: true, Files: files})
}

func (s *Server) handleBenchmarkGet(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Load(r.PathValue("filename"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: report})
}

func (s *Server) handleBenchmarkDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.reports.Delete(r.PathValue("filename")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Benchmark result deleted successfully"})
}

func (s *Server) handleBenchmarkInfo(w http.ResponseWriter, r *http.Request) {
	var providers []string
	if s.runner != nil {
		providers = s.runner.Providers()
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Info    benchmark.Info `json:"info"`
	}{Success: true, Info: benchmark.Describe(providers)})
}
