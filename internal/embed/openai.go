// File path: internal/embed/openai.go
package embed

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"

	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/common/telemetry"
)

// OpenAIProvider embeds text through the hosted OpenAI embeddings API.
type OpenAIProvider struct {
	client openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIProvider(client openai.Client) *OpenAIProvider {
	model := openai.EmbeddingModel(strings.TrimSpace(os.Getenv("OPENAI_EMBED_MODEL")))
	if model == "" {
		model = openai.EmbeddingModelTextEmbedding3Small
	}
	common.Logger().Info("embed: OpenAI provider configured", "model", model)
	return &OpenAIProvider{client: client, model: model}
}

func (o *OpenAIProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	if len(input) == 0 {
		return nil, nil
	}
	logger := common.Logger()
	logger.Debug("embed: creating embeddings", "model", o.model, "items", len(input))
	start := time.Now()
	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: o.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: input},
	})
	if err != nil {
		telemetry.RecordEmbedding(true, time.Since(start))
		logger.Error("embed: embedding request failed", "error", err)
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	telemetry.RecordEmbedding(false, time.Since(start))
	vectors := make([][]float32, 0, len(resp.Data))
	for _, data := range resp.Data {
		vec := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vec[i] = float32(v)
		}
		vectors = append(vectors, vec)
	}
	logger.Debug("embed: embedding request succeeded", "returned", len(vectors))
	return vectors, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
