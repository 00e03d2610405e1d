package infra

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

type OpenAI struct {
	client *openai.Client
}

// NewOpenAI returns (nil, nil) when no API key is configured; the summary
// feature is simply off in that case.
func NewOpenAI() (*OpenAI, error) {
	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("AZURE_OPENAI_KEY") == "" {
		return nil, nil
	}
	client, err := newOpenAIClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return &OpenAI{
		client: client,
	}, nil
}

func newOpenAIClient() (*openai.Client, error) {
	if os.Getenv("AZURE_OPENAI_ENDPOINT") != "" {
		return newAzureClient()
	}

	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	options := []option.RequestOption{
		option.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
	}

	c := openai.NewClient(options...)
	return &c, nil
}

func newAzureClient() (*openai.Client, error) {
	key := os.Getenv("AZURE_OPENAI_KEY")
	if key == "" {
		return nil, fmt.Errorf("AZURE_OPENAI_KEY is not set")
	}
	var azureOpenAIEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")

	var azureOpenAIAPIVersion = "2025-01-01-preview"

	if os.Getenv("AZURE_OPENAI_API_VERSION") != "" {
		azureOpenAIAPIVersion = os.Getenv("AZURE_OPENAI_API_VERSION")
	}

	c := openai.NewClient(
		azure.WithEndpoint(azureOpenAIEndpoint, azureOpenAIAPIVersion),
		azure.WithAPIKey(key),
	)
	return &c, nil
}

// SummarizeApplication produces a short reviewer-facing summary of an
// applicant's answers, in Spanish.
func (h *OpenAI) SummarizeApplication(username string, answers map[string]string) (string, error) {
	var sb strings.Builder
	for q, a := range answers {
		fmt.Fprintf(&sb, "- %s: %s\n", q, a)
	}

	prompt := fmt.Sprintf(`## Tarea
Te paso las respuestas de una postulación para el equipo de staff.
Resume en 2 o 3 frases lo más relevante para quien la revisa:
experiencia, disponibilidad y cualquier señal de alerta.
Responde en español, sin encabezados.

## Postulante
%s

## Respuestas
%s`, username, sb.String())

	response, err := h.client.Chat.Completions.New(context.TODO(), openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: os.Getenv("OPENAI_MODEL"),
	})

	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}

	return response.Choices[0].Message.Content, nil
}
