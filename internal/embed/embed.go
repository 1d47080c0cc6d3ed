// File path: internal/embed/embed.go
package embed

import (
	"context"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/novachain/mentormatch/internal/common"
)

// Provider generates fixed-dimension vectors for free text. The matcher
// treats it as an opaque external service: one call per match request.
type Provider interface {
	Embed(ctx context.Context, input []string) ([][]float32, error)
	Name() string
}

// NewProvider selects the embedding backend from the environment: OpenAI
// when OPENAI_API_KEY is set, otherwise the deterministic local provider.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("embed: OPENAI_API_KEY not set; falling back to local provider")
		return NewLocalProvider(localDimension)
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			logger.Warn("embed: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
		} else {
			opts = append(opts, option.WithRequestTimeout(timeout))
		}
	}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("embed: using custom OpenAI endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)
	logger.Info("embed: OpenAI provider selected")
	return NewOpenAIProvider(client)
}
