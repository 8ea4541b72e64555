package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"state":    s.reader.Status(),
		"mentions": s.reader.Len(),
	})
}

func (s *Server) handleListSplits(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"splits": s.reader.Stats()})
}

func (s *Server) handleSplitIDs(w http.ResponseWriter, r *http.Request) {
	split, ok := s.splitParam(w, r)
	if !ok {
		return
	}
	ids, err := s.reader.IDs(split)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	pmids, err := s.reader.PMIDs(split)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"split":       split,
		"pmids":       pmids,
		"mention_ids": ids,
	})
}

// handleSplitInstances streams one JSON instance per line. Errors after the
// first byte has been written can only be reported in-band, as a final
// {"error": ...} line.
func (s *Server) handleSplitInstances(w http.ResponseWriter, r *http.Request) {
	split, ok := s.splitParam(w, r)
	if !ok {
		return
	}
	limit := -1
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	log := s.log.With("split", split)
	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	sent := 0
	if limit == 0 {
		return
	}
	for inst, err := range s.reader.Read(r.Context(), split) {
		if err != nil {
			log.Error("instance stream failed", "sent", sent, "error", err)
			enc.Encode(map[string]string{"error": err.Error()})
			return
		}
		if err := enc.Encode(inst); err != nil {
			log.Warn("client went away", "sent", sent, "error", err)
			return
		}
		sent++
		if sent == limit {
			break
		}
		if flusher != nil && sent%256 == 0 {
			flusher.Flush()
		}
	}
	log.Debug("instance stream complete", "sent", sent)
}

func (s *Server) handleGetMention(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "mention id must be an integer", http.StatusBadRequest)
		return
	}
	m, pmid, err := s.reader.Mention(id)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	split, err := s.reader.SplitOf(id)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"mention_id": id,
		"split":      split,
		"pmid":       pmid,
		"mention":    m,
	})
}

func (s *Server) splitParam(w http.ResponseWriter, r *http.Request) (corpus.Split, bool) {
	split, err := corpus.ParseSplit(chi.URLParam(r, "split"))
	if err != nil {
		if errors.Is(err, corpus.ErrUnknownSplit) {
			jsonError(w, err.Error(), http.StatusBadRequest)
		} else {
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return "", false
	}
	return split, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
