package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/velourlabs/scentbot/agent/contract"
	openrouterx "github.com/velourlabs/scentbot/pkg/openrouter"
)

// Config is the base OpenRouter configuration plus per-agent overrides.
// The planner defaults to a low temperature and JSON response mode; the
// responder produces free text at the base temperature.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"openai/gpt-4o-mini"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	PlannerModel         string  `envconfig:"PLANNER_MODEL" split_words:"true"`
	ResponderModel       string  `envconfig:"RESPONDER_MODEL" split_words:"true"`
	PlannerTemperature   float32 `envconfig:"PLANNER_TEMPERATURE" split_words:"true" default:"0.2"`
	ResponderTemperature float32 `envconfig:"RESPONDER_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature
	jsonResponse := false

	switch agentType {
	case contractx.AgentTypePlanner:
		if v := strings.TrimSpace(c.PlannerModel); v != "" {
			modelName = v
		}
		if c.PlannerTemperature >= 0 {
			temp = c.PlannerTemperature
		}
		jsonResponse = true
	case contractx.AgentTypeResponder:
		if v := strings.TrimSpace(c.ResponderModel); v != "" {
			modelName = v
		}
		if c.ResponderTemperature >= 0 {
			temp = c.ResponderTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
		JSONResponse:       jsonResponse,
	}
}
