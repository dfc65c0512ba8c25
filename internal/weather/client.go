package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yananas974/pokebattle/internal/game"
	"github.com/yananas974/pokebattle/internal/logging"
)

// Provider resolves coordinates to the battle weather snapshot. The engine
// consumes it exactly once, at battle creation.
type Provider interface {
	Resolve(ctx context.Context, lat, lon float64, now time.Time) game.WeatherEffect
}

const (
	defaultBaseURL = "https://api.openweathermap.org"
	currentPath    = "/data/2.5/weather"
)

// Client fetches current conditions from an OpenWeather-compatible API. A
// provider failure is never surfaced as a battle error: the battle falls
// back to the clear day/night variant for the local hour.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	// group deduplicates concurrent lookups for the same rounded
	// coordinates so a burst of battle creations costs one upstream call.
	group singleflight.Group
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type observation struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Resolve maps the provider's description to the fixed condition set. Any
// failure (missing key, transport error, bad payload) resolves to the clear
// variant so battle creation never blocks on the collaborator.
func (c *Client) Resolve(ctx context.Context, lat, lon float64, now time.Time) game.WeatherEffect {
	if c.apiKey == "" {
		return EffectFor(clearVariant(now.Hour()), now)
	}
	description, err := c.fetchDescription(ctx, lat, lon)
	if err != nil {
		logging.Error("weather lookup failed; using clear fallback", err, logging.Fields{"lat": lat, "lon": lon})
		return EffectFor(clearVariant(now.Hour()), now)
	}
	return EffectFor(ConditionFor(description, now.Hour()), now)
}

func (c *Client) fetchDescription(ctx context.Context, lat, lon float64) (string, error) {
	key := fmt.Sprintf("%.2f,%.2f", lat, lon)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		q := url.Values{}
		q.Set("lat", fmt.Sprintf("%f", lat))
		q.Set("lon", fmt.Sprintf("%f", lon))
		q.Set("appid", c.apiKey)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+currentPath+"?"+q.Encode(), nil)
		if err != nil {
			return "", err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("weather provider returned status %d", resp.StatusCode)
		}
		var obs observation
		if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
			return "", err
		}
		if len(obs.Weather) == 0 {
			return "", fmt.Errorf("weather provider returned no conditions")
		}
		return obs.Weather[0].Description, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Static is a Provider pinned to one condition; used by tests and by the
// quick-battle path where no location is supplied.
type Static struct {
	Condition game.WeatherCondition
}

func (s Static) Resolve(_ context.Context, _, _ float64, now time.Time) game.WeatherEffect {
	return EffectFor(s.Condition, now)
}
