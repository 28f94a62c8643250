// workers/scoreboard.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/aidanleach15-hash/shining-stars-sub000/utils"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The provider mixes numeric and textual status codes game to game, so
// everything funnels through normalizeStatus into this fixed set.
const (
	StatusPregame   = "Pregame"
	StatusLive      = "Live"
	StatusOvertime  = "Overtime"
	StatusShootout  = "Shootout"
	StatusFinal     = "Final"
	StatusScheduled = "Scheduled"
	StatusUnknown   = "Unknown"
)

var titleCaser = cases.Title(language.English)

// ScoreboardClient fetches the league's live scoreboard feed and
// extracts our team's game. Any network or shape problem is reported
// as an error; callers treat that as "no data from this source".
type ScoreboardClient struct {
	BaseURL    string
	Team       string
	HTTPClient *http.Client
}

func NewScoreboardClient(baseURL, team string) *ScoreboardClient {
	return &ScoreboardClient{
		BaseURL:    baseURL,
		Team:       team,
		HTTPClient: utils.FeedClient,
	}
}

// CurrentGame fetches the scoreboard and returns our team's game if
// one is listed today. The bool reports whether a game was found.
func (c *ScoreboardClient) CurrentGame(ctx context.Context) (*models.LiveGame, bool, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/scoreboard", nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating scoreboard request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetching scoreboard: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, false, fmt.Errorf("scoreboard returned %d: %s", resp.StatusCode, string(body))
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decoding scoreboard: %w", err)
	}

	for _, raw := range extractArray(payload, "games") {
		game, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		home := extractString(game, "homeTeam")
		away := extractString(game, "awayTeam")
		if !MatchesTeam(home, c.Team) && !MatchesTeam(away, c.Team) {
			continue
		}
		lg := BuildLiveGame(game)
		return &lg, true, nil
	}

	return nil, false, nil
}

// BuildLiveGame converts one raw scoreboard entry into the canonical
// live-game shape. Missing fields default rather than reject: a game
// with no score yet is a 0-0 game, not an error.
func BuildLiveGame(game map[string]interface{}) models.LiveGame {
	period := extractInt(game, "period")
	status, isLive := normalizeStatus(game["status"], period)

	return models.LiveGame{
		HomeTeam:      DisplayName(extractString(game, "homeTeam")),
		AwayTeam:      DisplayName(extractString(game, "awayTeam")),
		HomeScore:     extractInt(game, "homeScore"),
		AwayScore:     extractInt(game, "awayScore"),
		Period:        periodLabel(period),
		TimeRemaining: extractString(game, "clock"),
		HomeShots:     extractInt(game, "homeShots"),
		AwayShots:     extractInt(game, "awayShots"),
		IsLive:        isLive,
		GameStatus:    status,
	}
}

// normalizeStatus maps the provider's heterogeneous status codes
// (numeric or textual) onto the fixed status set. Live games take
// their label from the current period.
func normalizeStatus(raw interface{}, period int) (string, bool) {
	switch v := raw.(type) {
	case float64:
		return numericStatus(int(v), period)
	case int:
		return numericStatus(v, period)
	case string:
		return textualStatus(v, period)
	case nil:
		return StatusScheduled, false
	default:
		return StatusUnknown, false
	}
}

func numericStatus(code, period int) (string, bool) {
	switch code {
	case 1:
		return StatusPregame, false
	case 2:
		return liveLabel(period), true
	case 3, 4:
		return StatusFinal, false
	default:
		return StatusUnknown, false
	}
}

func textualStatus(s string, period int) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case t == "":
		return StatusScheduled, false
	case strings.Contains(t, "final"):
		return StatusFinal, false
	case strings.Contains(t, "shootout"):
		return StatusShootout, true
	case strings.Contains(t, "overtime") || t == "ot":
		return StatusOvertime, true
	case strings.Contains(t, "progress") || strings.Contains(t, "live"):
		return liveLabel(period), true
	case strings.Contains(t, "pre"):
		return StatusPregame, false
	case strings.Contains(t, "sched"):
		return StatusScheduled, false
	default:
		return StatusUnknown, false
	}
}

// liveLabel names an in-progress game. A live game whose period is not
// reported yet gets the generic label rather than "Pregame".
func liveLabel(period int) string {
	if period < 1 {
		return StatusLive
	}
	return periodLabel(period)
}

// periodLabel names a hockey period; 4 is overtime, anything past that
// is the shootout.
func periodLabel(period int) string {
	switch period {
	case 1:
		return "1st Period"
	case 2:
		return "2nd Period"
	case 3:
		return "3rd Period"
	case 4:
		return StatusOvertime
	default:
		if period > 4 {
			return StatusShootout
		}
		return StatusPregame
	}
}

// MatchesTeam reports whether a feed team name refers to team. The
// feed sometimes prefixes city names or drops accents, so comparison
// runs on folded ASCII and allows containment either way.
func MatchesTeam(candidate, team string) bool {
	a := foldName(candidate)
	b := foldName(team)
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
}

// DisplayName normalizes a feed team name for display.
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	if name == strings.ToLower(name) || name == strings.ToUpper(name) {
		return titleCaser.String(strings.ToLower(name))
	}
	return name
}

// --- loosely-typed extraction helpers; feed shapes drift ---

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(val))
		return i
	default:
		return 0
	}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arr, ok := v.([]interface{}); ok {
			return arr
		}
	}
	return []interface{}{}
}
