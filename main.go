package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	actorx "github.com/velourlabs/scentbot/agent/actor"
	"github.com/velourlabs/scentbot/agent/agents/pipeline"
	"github.com/velourlabs/scentbot/agent/agents/planner"
	"github.com/velourlabs/scentbot/agent/agents/responder"
	cartx "github.com/velourlabs/scentbot/agent/cart"
	catalogx "github.com/velourlabs/scentbot/agent/catalog"
	contractx "github.com/velourlabs/scentbot/agent/contract"
	faqx "github.com/velourlabs/scentbot/agent/faq"
	llmx "github.com/velourlabs/scentbot/agent/llm"
	"github.com/velourlabs/scentbot/agent/orderlog"
	promptx "github.com/velourlabs/scentbot/agent/prompt"
	"github.com/velourlabs/scentbot/api"
	configx "github.com/velourlabs/scentbot/pkg/config"
	_ "github.com/velourlabs/scentbot/pkg/logger/autoload"
	openrouterx "github.com/velourlabs/scentbot/pkg/openrouter"
	twiliox "github.com/velourlabs/scentbot/pkg/twilio"
)

type AppConfig struct {
	Port           string `envconfig:"PORT" default:"8080"`
	BrandName      string `envconfig:"BRAND_NAME" default:"Velour Fragrances"`
	Currency       string `envconfig:"DEFAULT_CURRENCY" default:"PKR"`
	DeliveryWindow string `envconfig:"DELIVERY_TIME_WINDOW" default:"2-4 business days"`
	ReturnPolicy   string `envconfig:"RETURN_POLICY" default:"Returns accepted within 7 days if unopened."`
	CartBackend    string `envconfig:"CART_BACKEND" default:"memory"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		panic(err)
	}

	// A missing credential must fail startup, not the first webhook.
	if openrouterx.NewClient(llmCfg.OpenRouterFor(contractx.AgentTypePlanner)) == nil {
		panic("failed to initialize openrouter client")
	}

	cat := catalogx.Default(appCfg.BrandName, appCfg.Currency)
	prompts := promptx.Render(promptx.Vars{
		Brand:    appCfg.BrandName,
		Currency: appCfg.Currency,
		Catalog:  cat.Lines(),
	})

	plannerCfg := llmCfg.OpenRouterFor(contractx.AgentTypePlanner)
	plannerModel, err := plannerCfg.New(ctx)
	if err != nil {
		panic(fmt.Errorf("build planner model: %w", err))
	}
	plannerAgent, err := planner.New(ctx, plannerModel, prompts.Planner)
	if err != nil {
		panic(fmt.Errorf("build planner: %w", err))
	}

	responderCfg := llmCfg.OpenRouterFor(contractx.AgentTypeResponder)
	responderModel, err := responderCfg.New(ctx)
	if err != nil {
		panic(fmt.Errorf("build responder model: %w", err))
	}
	responderAgent, err := responder.New(ctx, responderModel, prompts.Responder)
	if err != nil {
		panic(fmt.Errorf("build responder: %w", err))
	}

	store := buildCartStore(appCfg.CartBackend)
	journal := buildOrderJournal(ctx)

	cartSvc, err := cartx.NewService(store, cat, journal, cartx.Config{
		Currency:       appCfg.Currency,
		DeliveryWindow: appCfg.DeliveryWindow,
	})
	if err != nil {
		panic(fmt.Errorf("build cart service: %w", err))
	}

	faqSvc := faqx.NewService(faqx.Config{
		DeliveryWindow: appCfg.DeliveryWindow,
		ReturnPolicy:   appCfg.ReturnPolicy,
	})

	act, err := actorx.New(cat, cartSvc, faqSvc)
	if err != nil {
		panic(fmt.Errorf("build actor: %w", err))
	}

	pipe, err := pipeline.New(plannerAgent, act, responderAgent)
	if err != nil {
		panic(fmt.Errorf("build pipeline: %w", err))
	}

	router := api.NewRouter(pipe, buildSignatureValidator())

	addr := ":" + appCfg.Port
	log.Info().
		Str("addr", addr).
		Str("brand", appCfg.BrandName).
		Int("catalog_size", cat.Len()).
		Msg("scentbot listening")
	if err := http.ListenAndServe(addr, router); err != nil {
		panic(err)
	}
}

func buildCartStore(backend string) cartx.Store {
	if backend != "upstash" {
		return cartx.NewMemoryStore()
	}

	cfg := configx.MustNew[cartx.UpstashRedisConfig]("UPSTASH_REDIS")
	store, err := cartx.NewUpstashRedisStore(*cfg)
	if err != nil {
		panic(fmt.Errorf("build upstash cart store: %w", err))
	}
	log.Info().Msg("cart store: upstash redis")
	return store
}

func buildOrderJournal(ctx context.Context) cartx.OrderJournal {
	cfg := configx.MustNew[orderlog.Config]("ORDER_DB")
	if !cfg.Enabled() {
		return nil
	}

	journal, err := orderlog.NewBunJournal(*cfg)
	if err != nil {
		panic(fmt.Errorf("build order journal: %w", err))
	}
	if err := journal.EnsureSchema(ctx); err != nil {
		panic(fmt.Errorf("prepare order journal: %w", err))
	}
	log.Info().Msg("order journal: postgres")
	return journal
}

func buildSignatureValidator() *twiliox.Validator {
	cfg := configx.MustNew[twiliox.Config]("TWILIO")
	if !cfg.ValidateSignature {
		return nil
	}

	validator, err := twiliox.NewValidator(cfg.AuthToken)
	if err != nil {
		panic(fmt.Errorf("build twilio validator: %w", err))
	}
	return validator
}
