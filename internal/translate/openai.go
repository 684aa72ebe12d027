package translate

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/alnah/go-codestory/internal/lang"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

const openAISystemPrompt = `You translate programming tutorials. Translate the user's text from %s to %s.
Keep markdown markers, inline code, link URLs and line breaks exactly as they are.
Reply with the translation only.`

// OpenAITranslator translates with an OpenAI compatible chat completion API.
type OpenAITranslator struct {
	Model string
	Opts  []option.RequestOption
}

// NewOpenAITranslator builds a translator. Extra request options are applied
// after the key and base URL.
func NewOpenAITranslator(apiKey, baseURL, model string, extra ...option.RequestOption) (*OpenAITranslator, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, extra...)
	return &OpenAITranslator{Model: model, Opts: opts}, nil
}

// Translate implements Translator.
func (o *OpenAITranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(openAISystemPrompt, lang.Name(source), lang.Name(target))),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Translator = (*OpenAITranslator)(nil)
