package api

import (
	"net/http"

	"github.com/dgallion1/mentionset/internal/report"
)

const reportPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>mentionset</title></head>
<body>
`

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	md := report.FromSource("Corpus summary", s.reader)
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
		return
	}
	body, err := report.HTML(md)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(reportPage + body + "</body></html>\n"))
}
