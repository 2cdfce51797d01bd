package service

import (
	"context"
	"time"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"
	"ai-tutor-be/pkg/rag"
	"ai-tutor-be/pkg/subagent"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	profileCacheTTL     = 5 * time.Minute
	profileCacheCleanup = 10 * time.Minute
)

type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error)
	GetSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error)
}

type chatService struct {
	engine           *rag.Engine
	personalizer     *subagent.Personalizer
	translator       *subagent.Translator
	codeExplainer    *subagent.CodeExplainer
	userRepo         contract.UserRepository
	conversationRepo contract.ConversationRepository
	profileCache     *gocache.Cache
	logger           logger.ILogger
}

func NewChatService(
	engine *rag.Engine,
	personalizer *subagent.Personalizer,
	translator *subagent.Translator,
	codeExplainer *subagent.CodeExplainer,
	userRepo contract.UserRepository,
	conversationRepo contract.ConversationRepository,
	log logger.ILogger,
) IChatService {
	return &chatService{
		engine:           engine,
		personalizer:     personalizer,
		translator:       translator,
		codeExplainer:    codeExplainer,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		profileCache:     gocache.New(profileCacheTTL, profileCacheCleanup),
		logger:           log,
	}
}

// SendMessage is the single entry point external routing needs: it runs the
// pipeline and applies at most one post-processing action.
func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := uuid.New()
	if req.SessionId != nil {
		sessionId = *req.SessionId
	}

	profile, err := s.loadProfile(ctx, userId)
	if err != nil {
		// Profile only conditions prompt phrasing; its absence is valid.
		s.logger.Warn("chat", "failed to load user profile, continuing unqualified", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		profile = nil
	}

	result, err := s.engine.Generate(ctx, rag.GenerateInput{
		UserId:     userId,
		SessionId:  sessionId,
		Query:      req.Message,
		PinnedText: req.SelectedText,
		Profile:    profile,
	})
	if err != nil {
		return nil, err
	}

	answer := s.applyAction(ctx, req, profile, result.Answer)

	sources := make([]dto.SourceDTO, len(result.Sources))
	for i, doc := range result.Sources {
		sources[i] = dto.SourceDTO{
			Content:  doc.Content,
			Score:    doc.Score,
			Section:  doc.Section,
			Metadata: doc.Metadata,
		}
	}

	return &dto.ChatResponse{
		Response:   answer,
		SessionId:  sessionId,
		Sources:    sources,
		TokensUsed: result.TokensUsed,
		Degraded:   result.Degraded,
	}, nil
}

// applyAction runs the selected best-effort transform. Transforms are
// mutually exclusive and never fail the request.
func (s *chatService) applyAction(ctx context.Context, req *dto.ChatRequest, profile *rag.Profile, answer string) string {
	switch req.Action {
	case constant.ChatActionPersonalize:
		if profile == nil {
			return answer
		}
		return s.personalizer.Personalize(ctx, answer, *profile)
	case constant.ChatActionTranslate:
		return s.translator.Translate(ctx, answer, req.TargetLanguage)
	case constant.ChatActionExplainCode:
		if req.SelectedText == "" {
			return answer
		}
		return s.codeExplainer.Explain(ctx, req.SelectedText, req.Message)
	default:
		return answer
	}
}

func (s *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatHistoryResponse, error) {
	turns, err := s.conversationRepo.FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.ChatHistoryResponse, len(turns))
	for i, turn := range turns {
		history[i] = &dto.ChatHistoryResponse{
			Id:        turn.Id,
			Role:      turn.Role,
			Content:   turn.Content,
			CreatedAt: turn.CreatedAt,
		}
	}
	return history, nil
}

func (s *chatService) GetSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error) {
	summaries, err := s.conversationRepo.SessionsByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SessionSummaryResponse, len(summaries))
	for i, summary := range summaries {
		responses[i] = &dto.SessionSummaryResponse{
			SessionId:    summary.SessionId,
			StartedAt:    summary.StartedAt,
			LastActivity: summary.LastActivity,
			TurnCount:    summary.TurnCount,
		}
	}
	return responses, nil
}

func (s *chatService) loadProfile(ctx context.Context, userId uuid.UUID) (*rag.Profile, error) {
	if cached, found := s.profileCache.Get(userId.String()); found {
		profile := cached.(rag.Profile)
		return &profile, nil
	}

	user, err := s.userRepo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	profile := rag.Profile{}
	if user.SoftwareBackground != nil {
		profile.SoftwareBackground = *user.SoftwareBackground
	}
	if user.HardwareBackground != nil {
		profile.HardwareBackground = *user.HardwareBackground
	}

	s.profileCache.Set(userId.String(), profile, gocache.DefaultExpiration)
	return &profile, nil
}
