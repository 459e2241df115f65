// Package tools bundles the built-in demo capabilities and exposes them as a
// discovery source. Real deployments register their own capabilities; these
// exist so the examples and the CLI have something to dispatch to out of the
// box.
package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/registry"
)

// Source returns the built-in capability descriptors.
func Source() registry.StaticSource {
	return registry.StaticSource{
		{
			Name:        "get_weather",
			Description: "Fetch simple weather text from wttr.in (demo)",
			Parameters: []core.Parameter{
				{Name: "city_name", Type: "string", Description: "City name"},
			},
			EntryPoint: GetWeather,
		},
		{
			Name:        "search_news",
			Description: "Demo news search returning templated results",
			Parameters: []core.Parameter{
				{Name: "query", Type: "string", Description: "Search query"},
			},
			EntryPoint: SearchNews,
		},
		{
			Name:        "simple_stock",
			Description: "Demo stock price tool (placeholder)",
			Parameters: []core.Parameter{
				{Name: "symbol", Type: "string", Description: "Stock symbol"},
			},
			EntryPoint: SimpleStock,
		},
	}
}

var weatherClient = &http.Client{Timeout: 5 * time.Second}

// GetWeather fetches a one-line weather summary from the public wttr.in
// endpoint. No API key required.
func GetWeather(ctx context.Context, input string) (string, error) {
	city := strings.TrimSpace(input)
	if city == "" {
		return "No city provided.", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://wttr.in/"+city+"?format=3", nil)
	if err != nil {
		return "", fmt.Errorf("build weather request: %w", err)
	}

	resp, err := weatherClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read weather response: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// SearchNews returns templated demo articles.
func SearchNews(_ context.Context, input string) (string, error) {
	q := strings.TrimSpace(input)
	if q == "" {
		return "No query provided.", nil
	}
	return fmt.Sprintf("Found demo articles for %q: [1] Example A; [2] Example B", q), nil
}

// SimpleStock returns a placeholder quote.
func SimpleStock(_ context.Context, input string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(input))
	if sym == "" {
		return "No symbol provided.", nil
	}
	return fmt.Sprintf("%s: PRICE=123.45 (demo placeholder)", sym), nil
}
