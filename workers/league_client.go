// workers/league_client.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aidanleach15-hash/shining-stars-sub000/models"
	"github.com/aidanleach15-hash/shining-stars-sub000/utils"
)

// LeagueClient pulls reference data (schedule, standings, stats,
// roster, merch, headlines) from the league/team data service. Each
// fetch returns fully-mapped model rows ready for a bulk replace.
type LeagueClient struct {
	BaseURL    string
	Team       string
	HTTPClient *http.Client
}

func NewLeagueClient(baseURL, team string) *LeagueClient {
	return &LeagueClient{
		BaseURL:    baseURL,
		Team:       team,
		HTTPClient: utils.FeedClient,
	}
}

func (c *LeagueClient) get(ctx context.Context, path string, out interface{}) error {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid league feed URL %q: %w", c.BaseURL, err)
	}
	endpoint := base.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", endpoint, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return nil
}

// Schedule fetches the season schedule. Rows with unparseable dates
// are skipped, not fatal.
func (c *LeagueClient) Schedule(ctx context.Context) ([]models.Game, error) {
	var payload struct {
		Games []struct {
			Date          string `json:"date"`
			Opponent      string `json:"opponent"`
			Home          bool   `json:"home"`
			Location      string `json:"location"`
			Status        string `json:"status"`
			StarsScore    *int   `json:"starsScore"`
			OpponentScore *int   `json:"opponentScore"`
		} `json:"games"`
	}
	if err := c.get(ctx, "schedule", &payload); err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(payload.Games))
	for _, g := range payload.Games {
		when, err := parseGameDate(g.Date)
		if err != nil {
			continue
		}
		game := models.Game{
			GameDate: when,
			Opponent: DisplayName(g.Opponent),
			Home:     g.Home,
			Location: g.Location,
			Status:   scheduleStatus(g.Status),
		}
		if game.Status == models.GameStatusFinal {
			game.StarsScore = g.StarsScore
			game.OpponentScore = g.OpponentScore
			if game.StarsScore == nil || game.OpponentScore == nil {
				// A final without both scores is unusable for settlement.
				game.Status = models.GameStatusScheduled
				game.StarsScore = nil
				game.OpponentScore = nil
			}
		}
		games = append(games, game)
	}
	return games, nil
}

func (c *LeagueClient) Standings(ctx context.Context) ([]models.Standing, error) {
	var payload struct {
		Standings []struct {
			Team     string `json:"team"`
			Wins     int    `json:"wins"`
			Losses   int    `json:"losses"`
			OTLosses int    `json:"otLosses"`
			Points   int    `json:"points"`
		} `json:"standings"`
	}
	if err := c.get(ctx, "standings", &payload); err != nil {
		return nil, err
	}

	rows := make([]models.Standing, 0, len(payload.Standings))
	for i, s := range payload.Standings {
		rows = append(rows, models.Standing{
			Team:     DisplayName(s.Team),
			Wins:     s.Wins,
			Losses:   s.Losses,
			OTLosses: s.OTLosses,
			Points:   s.Points,
			Rank:     i + 1,
		})
	}
	return rows, nil
}

func (c *LeagueClient) PlayerStats(ctx context.Context) ([]models.PlayerStat, error) {
	var payload struct {
		Players []struct {
			Name    string `json:"name"`
			Number  int    `json:"number"`
			Pos     string `json:"position"`
			Games   int    `json:"games"`
			Goals   int    `json:"goals"`
			Assists int    `json:"assists"`
			PIM     int    `json:"pim"`
		} `json:"players"`
	}
	if err := c.get(ctx, "stats", &payload); err != nil {
		return nil, err
	}

	rows := make([]models.PlayerStat, 0, len(payload.Players))
	for _, p := range payload.Players {
		rows = append(rows, models.PlayerStat{
			Name:    p.Name,
			Number:  p.Number,
			Pos:     p.Pos,
			Games:   p.Games,
			Goals:   p.Goals,
			Assists: p.Assists,
			Points:  p.Goals + p.Assists,
			PIM:     p.PIM,
		})
	}
	return rows, nil
}

func (c *LeagueClient) Roster(ctx context.Context) ([]models.RosterPlayer, error) {
	var payload struct {
		Roster []struct {
			Name     string `json:"name"`
			Number   int    `json:"number"`
			Pos      string `json:"position"`
			Shoots   string `json:"shoots"`
			Height   string `json:"height"`
			Weight   string `json:"weight"`
			Hometown string `json:"hometown"`
		} `json:"roster"`
	}
	if err := c.get(ctx, "roster", &payload); err != nil {
		return nil, err
	}

	rows := make([]models.RosterPlayer, 0, len(payload.Roster))
	for _, p := range payload.Roster {
		rows = append(rows, models.RosterPlayer{
			Name:     p.Name,
			Number:   p.Number,
			Pos:      p.Pos,
			Shoots:   p.Shoots,
			Height:   p.Height,
			Weight:   p.Weight,
			Hometown: p.Hometown,
		})
	}
	return rows, nil
}

func (c *LeagueClient) Merchandise(ctx context.Context) ([]models.MerchItem, error) {
	var payload struct {
		Items []struct {
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			ImageURL string  `json:"imageUrl"`
			BuyURL   string  `json:"buyUrl"`
		} `json:"items"`
	}
	if err := c.get(ctx, "merchandise", &payload); err != nil {
		return nil, err
	}

	rows := make([]models.MerchItem, 0, len(payload.Items))
	for _, m := range payload.Items {
		rows = append(rows, models.MerchItem{
			Name:     m.Name,
			Price:    m.Price,
			ImageURL: m.ImageURL,
			BuyURL:   m.BuyURL,
		})
	}
	return rows, nil
}

func (c *LeagueClient) Headlines(ctx context.Context) ([]models.Headline, error) {
	var payload struct {
		Headlines []struct {
			Title       string `json:"title"`
			Excerpt     string `json:"excerpt"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
		} `json:"headlines"`
	}
	if err := c.get(ctx, "headlines", &payload); err != nil {
		return nil, err
	}

	rows := make([]models.Headline, 0, len(payload.Headlines))
	for _, h := range payload.Headlines {
		when, err := parseGameDate(h.PublishedAt)
		if err != nil {
			when = time.Now()
		}
		rows = append(rows, models.Headline{
			Title:       h.Title,
			Excerpt:     h.Excerpt,
			URL:         h.URL,
			PublishedAt: when,
		})
	}
	return rows, nil
}

// parseGameDate accepts the handful of date layouts the sources have
// been seen to emit.
func parseGameDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func scheduleStatus(s string) models.GameStatus {
	switch models.GameStatus(s) {
	case models.GameStatusFinal:
		return models.GameStatusFinal
	case models.GameStatusInProgress:
		return models.GameStatusInProgress
	default:
		return models.GameStatusScheduled
	}
}
