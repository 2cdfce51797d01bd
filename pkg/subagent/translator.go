package subagent

import (
	"context"
	"fmt"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
)

// DefaultTargetLanguage is used when a translation request omits the language.
const DefaultTargetLanguage = "Urdu"

const translatePromptTemplate = `Translate the following technical content to %s.

Important:
- Maintain technical terms in English (e.g., ROS 2, NVIDIA Isaac, Gazebo)
- Keep code snippets unchanged
- Preserve markdown formatting
- Ensure technical accuracy

Content:
%s`

// Translator renders an answer in another language, keeping technical terms
// and code intact. On any failure the original content comes back unchanged.
type Translator struct {
	llm    llm.Provider
	logger logger.ILogger
}

func NewTranslator(provider llm.Provider, log logger.ILogger) *Translator {
	return &Translator{
		llm:    provider,
		logger: log,
	}
}

func (t *Translator) Translate(ctx context.Context, content string, targetLanguage string) string {
	if targetLanguage == "" {
		targetLanguage = DefaultTargetLanguage
	}

	prompt := fmt.Sprintf(translatePromptTemplate, targetLanguage, content)

	res, err := t.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(1500),
	)
	if err != nil {
		t.logger.Warn("subagent", "translation failed, returning original content", map[string]interface{}{
			"target_language": targetLanguage,
			"error":           err.Error(),
		})
		return content
	}
	return res.Content
}
