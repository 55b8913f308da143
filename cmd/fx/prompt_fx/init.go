package prompt_fx

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hospilog/internal/config"
	"hospilog/internal/repositories"
	"hospilog/internal/services"
	"hospilog/pkg/utils"
)

var Module = fx.Provide(
	ProvideSummarizer,
	ProvideInsightService)

// ProvideSummarizer picks the model provider from AI_PROVIDER. Without an API
// key it returns nil and insights answer with the raw order context.
func ProvideSummarizer(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.Summarizer, error) {
	ai := cfg.AI
	switch strings.ToLower(ai.Provider) {
	case "openai":
		if ai.OpenAIKey == "" {
			logger.Warn("OPENAI_API_KEY not set; insights fall back to raw context")
			return nil, nil
		}
		return utils.NewOpenAISummarizer(ai.OpenAIKey, ai.OpenAIModel), nil
	case "gemini":
		if ai.GeminiKey == "" {
			logger.Warn("GEMINI_API_KEY not set; insights fall back to raw context")
			return nil, nil
		}
		g, err := utils.NewGeminiSummarizer(context.Background(), ai.GeminiKey, ai.GeminiModel)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return g.Close() }})
		return g, nil
	default:
		logger.Warn("unknown AI_PROVIDER; insights fall back to raw context", zap.String("provider", ai.Provider))
		return nil, nil
	}
}

func ProvideInsightService(
	cfg *config.Config,
	accountRepo repositories.AccountRepository,
	orderRepo repositories.OrderRepository,
	shipmentRepo repositories.ShipmentRepository,
	summarizer utils.Summarizer,
	logger *zap.Logger,
) services.InsightServiceInterface {
	return services.NewInsightService(accountRepo, orderRepo, shipmentRepo, summarizer, cfg.AI.Timeout, logger)
}
