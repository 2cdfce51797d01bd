package rag

import (
	"context"
	"time"

	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/vectorindex"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeEmbedder struct {
	dimension int
	vector    []float32
	err       error
	calls     int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dimension }

type fakeIndex struct {
	dimension   int
	hits        []vectorindex.Hit
	searchErr   error
	searchCalls int
}

func (f *fakeIndex) Upsert(ctx context.Context, id uuid.UUID, vector []float32, payload vectorindex.Payload) error {
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, vector []float32, k int) ([]vectorindex.Hit, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}

func (f *fakeIndex) Count(ctx context.Context) (int64, error) { return int64(len(f.hits)), nil }

func (f *fakeIndex) Dimension() int { return f.dimension }

type fakeLLM struct {
	result      *llm.ChatResult
	err         error
	lastHistory []llm.Message
	lastOptions llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.ChatResult, error) {
	f.lastHistory = history
	for _, opt := range options {
		opt(&f.lastOptions)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (*llm.ChatResult, error) {
	return f.Chat(ctx, []llm.Message{{Role: RoleUser, Content: prompt}}, options...)
}

type appendedTurn struct {
	UserId    uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
}

type fakeTurnStore struct {
	turns      []Turn
	recentErr  error
	appendErr  error
	appendOnly string // when set, only this role fails to append
	appended   []appendedTurn
}

func (f *fakeTurnStore) AppendTurn(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, role, content string, metadata map[string]string) error {
	if f.appendErr != nil && (f.appendOnly == "" || f.appendOnly == role) {
		return f.appendErr
	}
	f.appended = append(f.appended, appendedTurn{
		UserId:    userId,
		SessionId: sessionId,
		Role:      role,
		Content:   content,
	})
	return nil
}

func (f *fakeTurnStore) RecentTurns(ctx context.Context, sessionId uuid.UUID, limit int) ([]Turn, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.turns) > limit {
		return f.turns[len(f.turns)-limit:], nil
	}
	return f.turns, nil
}

func makeTurns(n int) []Turn {
	turns := make([]Turn, n)
	for i := 0; i < n; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		turns[i] = Turn{
			Role:      role,
			Content:   "turn " + string(rune('a'+i)),
			CreatedAt: time.Now(),
		}
	}
	return turns
}
