// Package server exposes the document-delivery boundary over HTTP: report
// and transcript generation endpoints returning application/pdf payloads
// that degrade to text/plain.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"observation-processor/pkg/config"
	"observation-processor/pkg/pdf"
	"observation-processor/pkg/pipeline"
)

// Runner is the pipeline surface the server drives; a fake stands in for it
// in tests.
type Runner interface {
	Run(ctx context.Context, req pipeline.ReportRequest) (*pipeline.ReportResult, error)
	Transcript(ctx context.Context, teacherText, observerText string, date time.Time) (pdf.Document, string, string, error)
}

type Server struct {
	router *chi.Mux
	cfg    *config.Config
	pipe   Runner
}

func New(cfg *config.Config, pipe Runner) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors)

	s := &Server{router: router, cfg: cfg, pipe: pipe}

	router.Get("/health", s.health)
	router.Post("/api/v1/report", s.report)
	router.Post("/api/v1/transcript", s.transcript)
	router.Post("/api/v1/solo", s.solo)

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Start() error {
	addr := ":" + s.cfg.Port
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	startTime := time.Now()
	log.Printf("=== NEW REPORT REQUEST %s from %s ===", requestID, r.RemoteAddr)
	defer func() {
		log.Printf("=== REQUEST %s COMPLETED IN %v ===", requestID, time.Since(startTime))
	}()

	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		log.Printf("FORM PARSE ERROR: %v", err)
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	req := pipeline.ReportRequest{
		TeacherName:   r.FormValue("teacher_name"),
		ObserverName:  r.FormValue("observer_name"),
		ObserverNotes: r.FormValue("observer_notes"),
		CriteriaText:  r.FormValue("criteria_text"),
		Length:        r.FormValue("length"),
		Date:          time.Now(),
	}
	if sections := strings.TrimSpace(r.FormValue("sections")); sections != "" {
		for _, section := range strings.Split(sections, ",") {
			if section = strings.TrimSpace(section); section != "" {
				req.Sections = append(req.Sections, section)
			}
		}
	}

	var err error
	if req.TeacherAudio, err = formAudio(r, "teacher_audio"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ObserverAudio, err = formAudio(r, "observer_audio"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CriteriaPDF, err = formBytes(r, "criteria_pdf"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	result, err := s.pipe.Run(ctx, req)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.writeDocument(w, requestID, result.Document, pdf.ArtifactReport)
}

func (s *Server) transcript(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log.Printf("=== NEW TRANSCRIPT REQUEST %s from %s ===", requestID, r.RemoteAddr)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	doc, _, _, err := s.pipe.Transcript(ctx,
		r.FormValue("teacher_text"), r.FormValue("observer_text"), time.Now())
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.writeDocument(w, requestID, doc, pdf.ArtifactTranscript)
}

type soloRequest struct {
	Transcription string            `json:"transcription"`
	Chat          []pdf.ChatMessage `json:"chat"`
}

func (s *Server) solo(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log.Printf("=== NEW SOLO SESSION REQUEST %s from %s ===", requestID, r.RemoteAddr)

	var req soloRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	doc, err := pdf.ProduceSoloDocument(req.Transcription, req.Chat, time.Now().Format("January 2, 2006"))
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.writeDocument(w, requestID, doc, pdf.ArtifactSolo)
}

func (s *Server) writeDocument(w http.ResponseWriter, requestID string, doc pdf.Document, artifact string) {
	filename := doc.Filename(artifact, time.Now())
	log.Printf("Request %s: delivering %s (%s, %d bytes, tier %s)",
		requestID, filename, doc.MIME, len(doc.Data), doc.Tier)

	w.Header().Set("Content-Type", doc.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("X-Document-Tier", doc.Tier.String())
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Data)
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	var verr *pdf.ValidationError
	status := http.StatusInternalServerError
	if errors.As(err, &verr) || strings.HasPrefix(err.Error(), "no inputs") {
		status = http.StatusBadRequest
	}
	log.Printf("Request %s failed (%d): %v", requestID, status, err)
	http.Error(w, err.Error(), status)
}

func formAudio(r *http.Request, field string) (*pipeline.AudioInput, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s file is empty or corrupted", field)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = audioMIMEFromName(header.Filename)
	}
	return &pipeline.AudioInput{Data: data, MIME: mimeType}, nil
}

func formBytes(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

func audioMIMEFromName(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return "audio/mpeg"
	}
	switch strings.ToLower(name[idx+1:]) {
	case "wav":
		return "audio/wav"
	case "ogg":
		return "audio/ogg"
	case "m4a", "mp4":
		return "audio/mp4"
	case "flac":
		return "audio/flac"
	default:
		return "audio/mpeg"
	}
}
