// Package main implements a mock Grand Exchange and wiki server for local
// development. It serves a small fixed catalog as the items, prices and
// volumes endpoints and renders matching equipment slot and food tables, so
// every sync job can run without touching the real services.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// fixtureItem is one catalog entry. Gear entries carry a slot and stats in
// wiki column order; food entries carry the wiki heal text.
type fixtureItem struct {
	ID      int
	Name    string
	Members bool
	Value   int
	Price   int
	Trend   string
	Volume  int
	Slot    string
	Stats   []string
	Heals   string
}

var catalog = []fixtureItem{
	{ID: 1079, Name: "Rune platelegs", Value: 64000, Price: 38150, Trend: "neutral", Volume: 4210, Slot: "legs",
		Stats: []string{"0", "0", "0", "-7", "-4", "+51", "+49", "+47", "-4", "+49", "0", "0", "+0", "0", "9.071"}},
	{ID: 1127, Name: "Rune platebody", Value: 65000, Price: 38290, Trend: "positive", Volume: 3905, Slot: "body",
		Stats: []string{"0", "0", "0", "-30", "-10", "+82", "+80", "+72", "-6", "+80", "0", "0", "+0", "0", "9.979"}},
	{ID: 1163, Name: "Rune full helm", Value: 35200, Price: 20850, Trend: "neutral", Volume: 6120, Slot: "head",
		Stats: []string{"0", "0", "0", "-6", "-2", "+30", "+32", "+27", "-1", "+30", "0", "0", "+0", "0", "2.721"}},
	{ID: 1153, Name: "Iron full helm", Value: 308, Price: 152, Trend: "negative", Volume: 20455, Slot: "head",
		Stats: []string{"0", "0", "0", "-6", "-2", "+9", "+10", "+7", "-1", "+9", "0", "0", "+0", "0", "2.721"}},
	{ID: 1333, Name: "Rune scimitar", Value: 25600, Price: 14980, Trend: "neutral", Volume: 11834, Slot: "weapon",
		Stats: []string{"+7", "+45", "-2", "0", "0", "0", "+1", "0", "0", "0", "+44", "0", "+0", "0", "1.814", "4"}},
	{ID: 4587, Name: "Dragon scimitar", Members: true, Value: 100000, Price: 59870, Trend: "positive", Volume: 9321,
		Slot: "weapon",
		Stats: []string{"+8", "+67", "-2", "0", "0", "0", "0", "0", "0", "0", "+66", "0", "+0", "0", "1.814", "4"}},
	{ID: 1725, Name: "Amulet of strength", Value: 2025, Price: 1489, Trend: "neutral", Volume: 8720, Slot: "neck",
		Stats: []string{"0", "0", "0", "0", "0", "0", "0", "0", "0", "0", "+10", "0", "+0", "0", "0.007"}},
	{ID: 385, Name: "Shark", Members: true, Value: 300, Price: 812, Trend: "neutral", Volume: 1580220, Heals: "20"},
	{ID: 379, Name: "Lobster", Value: 268, Price: 176, Trend: "neutral", Volume: 2034110, Heals: "12"},
	{ID: 1891, Name: "Cake", Value: 50, Price: 120, Trend: "negative", Volume: 18402, Heals: "4 × 3"},
	{ID: 3144, Name: "Cooked karambwan", Members: true, Value: 460, Price: 590, Trend: "positive", Volume: 912330,
		Heals: "18"},
	{ID: 7479, Name: "Spicy stew", Members: true, Value: 20, Price: 350, Trend: "neutral", Volume: 210,
		Heals: "Random"},
}

const tablePage = `<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head>
<body>
<table class="wikitable sortable">
<tbody>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body></html>
`

var pageTmpl = template.Must(template.New("page").Parse(tablePage))

var equipmentHeaders = []string{
	"", "Name", "Members", "Stab", "Slash", "Crush", "Magic", "Ranged",
	"Stab", "Slash", "Crush", "Magic", "Ranged", "Str", "Rstr", "Mdmg", "Prayer", "Weight", "Speed",
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock GE and wiki server", "addr", addr, "items", len(catalog))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items", itemsHandler(logger))
	mux.HandleFunc("GET /api/prices", pricesHandler(logger))
	mux.HandleFunc("GET /api/volumes", volumesHandler(logger))
	mux.HandleFunc("GET /w/Food/All_food", foodHandler(logger))
	mux.HandleFunc("GET /w/{page}", slotHandler(logger))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func itemsHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]map[string]any, 0, len(catalog))
		for _, it := range catalog {
			out = append(out, map[string]any{
				"id":       it.ID,
				"name":     it.Name,
				"members":  it.Members,
				"value":    it.Value,
				"highalch": it.Value * 3 / 5,
				"lowalch":  it.Value * 2 / 5,
				"limit":    10000,
				"icon":     strings.ReplaceAll(it.Name, " ", "_") + ".png",
			})
		}
		writeJSON(w, out)
		logger.Info("items", "returned", len(out))
	}
}

func pricesHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make(map[string]any, len(catalog))
		for _, it := range catalog {
			out[fmt.Sprint(it.ID)] = map[string]any{
				"id":      it.ID,
				"current": map[string]any{"price": it.Price, "trend": it.Trend},
				"today":   map[string]any{"price": "+0", "trend": "neutral"},
			}
		}
		writeJSON(w, out)
		logger.Info("prices", "returned", len(out))
	}
}

func volumesHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]map[string]any, 0, len(catalog))
		for _, it := range catalog {
			out = append(out, map[string]any{"id": it.ID, "volume": it.Volume})
		}
		writeJSON(w, map[string]any{"items": out})
		logger.Info("volumes", "returned", len(out))
	}
}

// slotHandler renders /w/<Slot>_slot_table with every fixture item in the
// slot. Unknown pages are 404.
func slotHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.PathValue("page")
		slot, ok := strings.CutSuffix(page, "_slot_table")
		if !ok {
			http.NotFound(w, r)
			return
		}
		slot = strings.ToLower(slot)

		var rows [][]string
		for _, it := range catalog {
			if it.Slot != slot {
				continue
			}
			row := append([]string{"", it.Name, members(it.Members)}, it.Stats...)
			rows = append(rows, row)
		}

		renderTable(w, page, equipmentHeaders, rows)
		logger.Info("slot table", "slot", slot, "rows", len(rows))
	}
}

func foodHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var rows [][]string
		for _, it := range catalog {
			if it.Heals == "" {
				continue
			}
			rows = append(rows, []string{"", it.Name, it.Heals})
		}
		renderTable(w, "All food", []string{"Item", "Name", "Heals"}, rows)
		logger.Info("food table", "rows", len(rows))
	}
}

func renderTable(w http.ResponseWriter, title string, headers []string, rows [][]string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	pageTmpl.Execute(w, map[string]any{"Title": title, "Headers": headers, "Rows": rows})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func members(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
