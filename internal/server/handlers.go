package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/lowaak/smart-trainer/workout-editor/internal/editor"
	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
	"github.com/lowaak/smart-trainer/workout-editor/internal/presets"
	"github.com/lowaak/smart-trainer/workout-editor/internal/textparser"
	"github.com/lowaak/smart-trainer/workout-editor/internal/workout"
	"github.com/lowaak/smart-trainer/workout-editor/internal/zwo"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respond writes v as JSON, or as YAML when the request asks for ?format=yaml
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if r.URL.Query().Get("format") != "yaml" {
		writeJSON(w, status, v)
		return
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(status)
	w.Write(out)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, zwo.ErrMalformedFile),
		errors.Is(err, mode.ErrModeMismatch),
		errors.Is(err, editor.ErrUnknownIntervalType),
		errors.Is(err, workout.ErrLengthMismatch):
		return http.StatusBadRequest
	case errors.Is(err, workout.ErrInstructionOutOfRange):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Printf("Server: %v", err)
	}
	writeError(w, status, err.Error())
}

func readBody(r *http.Request) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func queryFloat(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("query parameter %q must be a number", name))
		return 0, false
	}
	return v, true
}

func (s *Server) workoutView() workoutView {
	return newWorkoutView(s.editor.Workout(), s.editor.Revision())
}

type changeResponse struct {
	Changed bool        `json:"changed" yaml:"changed"`
	Workout workoutView `json:"workout" yaml:"workout"`
}

func (s *Server) respondChange(w http.ResponseWriter, r *http.Request, changed bool) {
	s.respond(w, r, http.StatusOK, changeResponse{Changed: changed, Workout: s.workoutView()})
}

func (s *Server) requireInterval(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !slices.ContainsFunc(s.editor.Workout().Intervals, func(iv workout.Interval) bool { return iv.IntervalID() == id }) {
			writeError(w, http.StatusNotFound, "interval not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireInstruction(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !slices.ContainsFunc(s.editor.Workout().Instructions, func(in workout.Instruction) bool { return in.ID == id }) {
			writeError(w, http.StatusNotFound, "instruction not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, s.workoutView())
}

func (s *Server) handleSetMetadata(w http.ResponseWriter, r *http.Request) {
	var md editor.Metadata
	if !decodeJSON(w, r, &md) {
		return
	}
	s.respondChange(w, r, s.editor.SetMetadata(md))
}

type resetRequest struct {
	SportType  string `json:"sportType"`
	LengthType string `json:"lengthType"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sport, err := workout.ParseSportType(req.SportType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lengthType := workout.LengthTypeTime
	if req.LengthType != "" {
		if lengthType, err = workout.ParseLengthType(req.LengthType); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s.editor.Reset(sport, lengthType)
	s.respond(w, r, http.StatusOK, s.workoutView())
}

func (s *Server) handleImportText(w http.ResponseWriter, r *http.Request) {
	text, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	added, err := s.editor.ImportText(text)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, r, http.StatusOK, map[string]any{"added": added, "workout": s.workoutView()})
}

func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	text, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	blocks := s.editor.ParseText(text)
	if blocks == nil {
		blocks = []textparser.Block{}
	}
	s.respond(w, r, http.StatusOK, blocks)
}

func (s *Server) handleExportXML(w http.ResponseWriter, r *http.Request) {
	out, err := s.editor.ExportXML()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	if name := s.editor.Workout().Name; name != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zwo"))
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

func (s *Server) handleLoadXML(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.editor.LoadXML(data); err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, r, http.StatusOK, s.workoutView())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.editor.Stats()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, r, http.StatusOK, st)
}

type addIntervalRequest struct {
	Type workout.IntervalType `json:"type"`
}

func (s *Server) handleAddInterval(w http.ResponseWriter, r *http.Request) {
	var req addIntervalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	iv, err := s.editor.AddInterval(req.Type)
	if err != nil {
		s.fail(w, err)
		return
	}
	run := s.editor.Workout().SportType == workout.SportTypeRun
	s.respond(w, r, http.StatusCreated, newIntervalView(iv, run))
}

func (s *Server) handleRemoveInterval(w http.ResponseWriter, r *http.Request) {
	s.respondChange(w, r, s.editor.Remove(chi.URLParam(r, "id")))
}

func (s *Server) handleMoveInterval(w http.ResponseWriter, r *http.Request) {
	dir, err := strconv.Atoi(r.URL.Query().Get("dir"))
	if err != nil || (dir != 1 && dir != -1) {
		writeError(w, http.StatusBadRequest, `query parameter "dir" must be 1 or -1`)
		return
	}
	s.respondChange(w, r, s.editor.Move(chi.URLParam(r, "id"), dir))
}

func (s *Server) handleUpdateDuration(w http.ResponseWriter, r *http.Request) {
	delta, ok := queryFloat(w, r, "delta")
	if !ok {
		return
	}
	s.respondChange(w, r, s.editor.UpdateDuration(chi.URLParam(r, "id"), delta))
}

func (s *Server) handleUpdateIntensity(w http.ResponseWriter, r *http.Request) {
	delta, ok := queryFloat(w, r, "delta")
	if !ok {
		return
	}
	s.respondChange(w, r, s.editor.UpdateIntensity(chi.URLParam(r, "id"), delta))
}

func (s *Server) handleDuplicateInterval(w http.ResponseWriter, r *http.Request) {
	s.respondChange(w, r, s.editor.Duplicate(chi.URLParam(r, "id")))
}

type instructionRequest struct {
	Text   string  `json:"text"`
	Offset float64 `json:"offset"`
}

func (s *Server) handleAddInstruction(w http.ResponseWriter, r *http.Request) {
	var req instructionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := s.editor.AddInstruction(req.Text, req.Offset)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, r, http.StatusCreated, instructionView{ID: in.ID, Text: in.Text, Offset: newLengthView(in.Offset)})
}

func (s *Server) handleUpdateInstruction(w http.ResponseWriter, r *http.Request) {
	var req instructionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	changed, err := s.editor.UpdateInstruction(chi.URLParam(r, "id"), req.Text, req.Offset)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondChange(w, r, changed)
}

func (s *Server) handleRemoveInstruction(w http.ResponseWriter, r *http.Request) {
	s.respondChange(w, r, s.editor.RemoveInstruction(chi.URLParam(r, "id")))
}

type presetView struct {
	Name       string             `json:"name" yaml:"name"`
	SportType  workout.SportType  `json:"sportType" yaml:"sport_type"`
	LengthType workout.LengthType `json:"lengthType,omitempty" yaml:"length_type,omitempty"`
	Tags       []string           `json:"tags" yaml:"tags"`
	Text       string             `json:"text" yaml:"text"`
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	out := make([]presetView, 0, len(presets.All))
	for _, p := range presets.All {
		out = append(out, presetView{Name: p.Name, SportType: p.SportType, LengthType: p.LengthType, Tags: p.Tags, Text: p.Text})
	}
	s.respond(w, r, http.StatusOK, out)
}

func (s *Server) handleLoadPreset(w http.ResponseWriter, r *http.Request) {
	p, ok := presets.ByName(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "preset not found")
		return
	}
	var bike mode.BikeMode
	if s.bike != nil {
		bike = s.bike()
	}
	wk, err := p.Build(bike)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.editor.Load(wk); err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, r, http.StatusOK, s.workoutView())
}
