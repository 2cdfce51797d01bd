package subagent

import (
	"context"
	"fmt"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
)

const explainPromptTemplate = `You are a robotics code expert. Explain this code clearly and concisely.

%s

Code:
` + "```" + `
%s
` + "```" + `

Provide:
1. What this code does (1-2 sentences)
2. Key components explained line-by-line or block-by-block
3. Why this pattern is used in robotics/Physical AI
4. Common pitfalls or best practices

Keep explanations clear and practical.`

// CodeExplainer expands a code snippet into a guided explanation. Like the
// other subagents it never fails a request: errors return the input as-is.
type CodeExplainer struct {
	llm    llm.Provider
	logger logger.ILogger
}

func NewCodeExplainer(provider llm.Provider, log logger.ILogger) *CodeExplainer {
	return &CodeExplainer{
		llm:    provider,
		logger: log,
	}
}

func (e *CodeExplainer) Explain(ctx context.Context, code string, contextHint string) string {
	hint := ""
	if contextHint != "" {
		hint = "Context: " + contextHint
	}

	prompt := fmt.Sprintf(explainPromptTemplate, hint, code)

	res, err := e.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.6),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		e.logger.Warn("subagent", "code explanation failed, returning original content", map[string]interface{}{
			"error": err.Error(),
		})
		return code
	}
	return res.Content
}
