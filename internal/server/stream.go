package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lowaak/smart-trainer/workout-editor/internal/editor"
)

const streamBuffer = 16

type changeEvent struct {
	Revision uint64      `json:"revision"`
	Op       string      `json:"op"`
	Workout  workoutView `json:"workout"`
}

// handleEvents streams every editor change as a server-sent event until the client goes
// away. A client too slow to drain its buffer misses changes; the revision numbers expose
// the gap.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch := make(chan editor.Change, streamBuffer)
	unregister := s.changes.Listen(ch)
	defer unregister()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, ": revision %d\n\n", s.editor.Revision())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case change := <-ch:
			data, err := json.Marshal(changeEvent{
				Revision: change.Revision,
				Op:       change.Op,
				Workout:  newWorkoutView(change.Workout, change.Revision),
			})
			if err != nil {
				s.logger.Printf("Server: encoding change %d: %v", change.Revision, err)
				continue
			}
			fmt.Fprintf(w, "id: %d\nevent: change\ndata: %s\n\n", change.Revision, data)
			flusher.Flush()
		}
	}
}
