package subagent

import (
	"context"
	"fmt"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/rag"
)

const personalizePromptTemplate = `You are a personalization expert. Adapt the following content based on the user's background:

User Profile:
- Software Background: %s
- Hardware Background: %s

Original Content:
%s

Task: Rewrite this content to match the user's experience level.
- If beginner: Add more foundational explanations and analogies
- If intermediate: Add practical examples and best practices
- If advanced: Add deeper technical details and optimization tips

Keep the same core information but adjust the depth and style.`

// Personalizer rewrites an answer to match the student's experience level.
// It is a best-effort enhancement: any failure returns the input unchanged.
type Personalizer struct {
	llm    llm.Provider
	logger logger.ILogger
}

func NewPersonalizer(provider llm.Provider, log logger.ILogger) *Personalizer {
	return &Personalizer{
		llm:    provider,
		logger: log,
	}
}

func (p *Personalizer) Personalize(ctx context.Context, content string, profile rag.Profile) string {
	software := profile.SoftwareBackground
	if software == "" {
		software = "beginner"
	}
	hardware := profile.HardwareBackground
	if hardware == "" {
		hardware = "beginner"
	}

	prompt := fmt.Sprintf(personalizePromptTemplate, software, hardware, content)

	res, err := p.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(800),
	)
	if err != nil {
		p.logger.Warn("subagent", "personalization failed, returning original content", map[string]interface{}{
			"error": err.Error(),
		})
		return content
	}
	return res.Content
}
