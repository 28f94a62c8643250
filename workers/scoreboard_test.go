package workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		period   int
		want     string
		wantLive bool
	}{
		{"numeric pregame", float64(1), 0, StatusPregame, false},
		{"numeric live without period", float64(2), 0, StatusLive, true},
		{"numeric live first period", float64(2), 1, "1st Period", true},
		{"numeric live third period", float64(2), 3, "3rd Period", true},
		{"numeric live overtime", float64(2), 4, StatusOvertime, true},
		{"numeric live shootout", float64(2), 5, StatusShootout, true},
		{"numeric final", float64(3), 3, StatusFinal, false},
		{"numeric final alternate code", float64(4), 3, StatusFinal, false},
		{"numeric unrecognized", float64(9), 0, StatusUnknown, false},
		{"textual final", "Final", 3, StatusFinal, false},
		{"textual final with suffix", "final/ot", 4, StatusFinal, false},
		{"textual in progress", "In Progress", 2, "2nd Period", true},
		{"textual live", "LIVE", 1, "1st Period", true},
		{"textual live without period", "live", 0, StatusLive, true},
		{"textual overtime", "Overtime", 4, StatusOvertime, true},
		{"textual ot shorthand", "OT", 4, StatusOvertime, true},
		{"textual shootout", "Shootout", 5, StatusShootout, true},
		{"textual pregame", "Pregame", 0, StatusPregame, false},
		{"textual scheduled", "scheduled", 0, StatusScheduled, false},
		{"empty string", "", 0, StatusScheduled, false},
		{"missing status", nil, 0, StatusScheduled, false},
		{"garbage text", "zamboni break", 0, StatusUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, live := normalizeStatus(tt.raw, tt.period)
			if got != tt.want || live != tt.wantLive {
				t.Fatalf("normalizeStatus(%v, %d) = (%q, %t), want (%q, %t)",
					tt.raw, tt.period, got, live, tt.want, tt.wantLive)
			}
		})
	}
}

func TestMatchesTeam(t *testing.T) {
	tests := []struct {
		candidate, team string
		want            bool
	}{
		{"Shining Stars", "Shining Stars", true},
		{"shining stars", "Shining Stars", true},
		{"Fairbanks Shining Stars", "Shining Stars", true},
		{"Shining Stárs", "Shining Stars", true}, // feed drops to accented text sometimes
		{"Ice Hawks", "Shining Stars", false},
		{"", "Shining Stars", false},
		{"Shining Stars", "", false},
	}

	for _, tt := range tests {
		if got := MatchesTeam(tt.candidate, tt.team); got != tt.want {
			t.Fatalf("MatchesTeam(%q, %q) = %t, want %t", tt.candidate, tt.team, got, tt.want)
		}
	}
}

func TestBuildLiveGameDefaultsMissingFields(t *testing.T) {
	// A bare game entry is a scoreless scheduled game, not an error.
	lg := BuildLiveGame(map[string]interface{}{
		"homeTeam": "Shining Stars",
		"awayTeam": "Ice Hawks",
	})

	if lg.HomeScore != 0 || lg.AwayScore != 0 || lg.HomeShots != 0 || lg.AwayShots != 0 {
		t.Fatalf("missing numerics must default to zero: %+v", lg)
	}
	if lg.IsLive {
		t.Fatal("missing status must not be live")
	}
	if lg.GameStatus != StatusScheduled {
		t.Fatalf("status = %q, want %q", lg.GameStatus, StatusScheduled)
	}
}

func TestBuildLiveGameParsesStringScores(t *testing.T) {
	lg := BuildLiveGame(map[string]interface{}{
		"homeTeam":  "Shining Stars",
		"awayTeam":  "Ice Hawks",
		"homeScore": "3",
		"awayScore": float64(2),
		"homeShots": "21",
		"awayShots": float64(17),
		"period":    float64(2),
		"clock":     "12:41",
		"status":    "In Progress",
	})

	if lg.HomeScore != 3 || lg.AwayScore != 2 {
		t.Fatalf("scores = %d-%d, want 3-2", lg.HomeScore, lg.AwayScore)
	}
	if lg.HomeShots != 21 || lg.AwayShots != 17 {
		t.Fatalf("shots = %d-%d, want 21-17", lg.HomeShots, lg.AwayShots)
	}
	if !lg.IsLive || lg.GameStatus != "2nd Period" || lg.TimeRemaining != "12:41" {
		t.Fatalf("unexpected live state: %+v", lg)
	}
}

func TestCurrentGameFindsTeam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scoreboard" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"games":[
			{"homeTeam":"River Kings","awayTeam":"Ice Hawks","status":2,"period":1},
			{"homeTeam":"Shining Stars","awayTeam":"Glacier Bears","homeScore":4,"awayScore":2,"status":"Final"}
		]}`))
	}))
	defer srv.Close()

	client := NewScoreboardClient(srv.URL, "Shining Stars")
	client.HTTPClient = srv.Client()

	lg, found, err := client.CurrentGame(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected to find our game")
	}
	if lg.HomeTeam != "Shining Stars" || lg.HomeScore != 4 || lg.GameStatus != StatusFinal {
		t.Fatalf("wrong game extracted: %+v", lg)
	}
}

func TestCurrentGameNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"games":[{"homeTeam":"River Kings","awayTeam":"Ice Hawks"}]}`))
	}))
	defer srv.Close()

	client := NewScoreboardClient(srv.URL, "Shining Stars")
	client.HTTPClient = srv.Client()

	_, found, err := client.CurrentGame(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("no game for our team should report not found, not an error")
	}
}

func TestCurrentGameBadResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		}},
		{"garbage payload", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewScoreboardClient(srv.URL, "Shining Stars")
			client.HTTPClient = srv.Client()

			_, found, err := client.CurrentGame(context.Background())
			if err == nil {
				t.Fatal("expected an error for callers to absorb")
			}
			if found {
				t.Fatal("bad response must never report a found game")
			}
		})
	}
}
