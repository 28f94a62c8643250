package services

import (
	"testing"
	"time"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
)

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	now := time.Date(2026, 1, 15, 19, 30, 0, 0, loc)

	start, end := DayWindow(now)

	if !start.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, loc)) {
		t.Fatalf("window start = %v", start)
	}
	if !end.Equal(time.Date(2026, 1, 16, 0, 0, 0, 0, loc)) {
		t.Fatalf("window end = %v", end)
	}

	// An evening game tonight is inside the window; tomorrow's matinee
	// is not.
	tonight := time.Date(2026, 1, 15, 19, 0, 0, 0, loc)
	if tonight.Before(start) || !tonight.Before(end) {
		t.Fatal("tonight's game should fall inside today's window")
	}
	tomorrow := time.Date(2026, 1, 16, 13, 0, 0, 0, loc)
	if tomorrow.Before(end) {
		t.Fatal("tomorrow's game should fall outside today's window")
	}
}

func TestSynthesizeScheduledHomeGame(t *testing.T) {
	game := models.Game{Opponent: "Ice Hawks", Home: true}

	lg := SynthesizeScheduled(game, "Shining Stars")

	if lg.HomeTeam != "Shining Stars" || lg.AwayTeam != "Ice Hawks" {
		t.Fatalf("unexpected matchup: %s vs %s", lg.HomeTeam, lg.AwayTeam)
	}
	if lg.IsLive {
		t.Fatal("synthesized record must not be live")
	}
	if lg.GameStatus != "Scheduled" {
		t.Fatalf("status = %q, want Scheduled", lg.GameStatus)
	}
	if lg.HomeScore != 0 || lg.AwayScore != 0 {
		t.Fatalf("synthesized record must be scoreless, got %d-%d", lg.HomeScore, lg.AwayScore)
	}
}

func TestSynthesizeScheduledRoadGame(t *testing.T) {
	game := models.Game{Opponent: "Ice Hawks", Home: false}

	lg := SynthesizeScheduled(game, "Shining Stars")

	if lg.HomeTeam != "Ice Hawks" || lg.AwayTeam != "Shining Stars" {
		t.Fatalf("unexpected matchup: %s vs %s", lg.HomeTeam, lg.AwayTeam)
	}
}

func TestSameMatchup(t *testing.T) {
	a := &models.LiveGame{HomeTeam: "Shining Stars", AwayTeam: "Ice Hawks"}
	b := &models.LiveGame{HomeTeam: "Shining Stars", AwayTeam: "Ice Hawks", HomeScore: 3}
	c := &models.LiveGame{HomeTeam: "Shining Stars", AwayTeam: "River Kings"}

	if !a.SameMatchup(b) {
		t.Fatal("same pairing with different score is still the same matchup")
	}
	if a.SameMatchup(c) {
		t.Fatal("different opponent is a new matchup")
	}
	if a.SameMatchup(nil) {
		t.Fatal("nil is never the same matchup")
	}
}
