package server

import (
	"html/template"
	"net/http"
)

var landingPage = template.Must(template.New("landing").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Planet Defense</title>
<style>
body { background: #05050f; color: #ddd; font-family: monospace; max-width: 40em; margin: 3em auto; }
code { color: #ffd700; }
td { padding: 0 1em; }
</style>
</head>
<body>
<h1>PLANET DEFENSE</h1>
<p>Connect with <code>ssh -t {{.SSHHost}}{{if .SSHPort}} -p {{.SSHPort}}{{end}}</code>, then aim with the mouse and click to shoot.</p>
<p>Players online: {{.Players}}</p>
{{if .Scores}}
<h2>Best scores</h2>
<table>
{{range $i, $e := .Scores}}<tr><td>{{inc $i}}.</td><td>{{$e.Username}}</td><td>{{$e.Score}}</td><td>{{if $e.Won}}won{{end}}</td><td>{{$e.At.UTC.Format "2006-01-02 15:04"}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`))

// LandingOptions configures the landing page handler.
type LandingOptions struct {
	SSHHost string // Host shown in the connect command
	SSHPort string // Omitted from the command when empty or "22"
	Top     int    // Leaderboard rows
}

// LandingHandler serves a page with the connect command, the player count
// and the best scores of gs.
func LandingHandler(gs GameServer, opts LandingOptions) http.Handler {
	port := opts.SSHPort
	if port == "22" {
		port = ""
	}
	top := opts.Top
	if top <= 0 {
		top = 10
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := landingPage.Execute(w, struct {
			SSHHost string
			SSHPort string
			Players int
			Scores  []TopScoreEntry
		}{opts.SSHHost, port, gs.Players(), gs.TopScores(top)})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
