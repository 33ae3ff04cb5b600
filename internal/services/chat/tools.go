// File: internal/services/chat/tools.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/2witstudios/pagespace.team/internal/services/ai"
)

// weatherResult is the deterministic shape every getWeather call returns.
type weatherResult struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Message     string `json:"message"`
}

// WeatherTool declares the getWeather tool offered to every generation.
func WeatherTool() ai.ToolDefinition {
	return ai.ToolDefinition{
		Name:        "getWeather",
		Description: "Get the weather in a location",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"location": {
					Type:        jsonschema.String,
					Description: "The location to get the weather for",
				},
			},
			Required: []string{"location"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Location string `json:"location"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid getWeather arguments: %w", err)
			}

			// Simulated lookup, same range as the product behavior.
			temperature := rand.Intn(90-32+1) + 32
			return weatherResult{
				Location:    params.Location,
				Temperature: temperature,
				Message:     fmt.Sprintf("The weather in %s is currently %d°F.", params.Location, temperature),
			}, nil
		},
	}
}

// TurnTools is the declared tool set for a turn.
func TurnTools() []ai.ToolDefinition {
	return []ai.ToolDefinition{WeatherTool()}
}
