package service

import (
	"context"
	"encoding/json"
	"time"

	"stat-practice/internal/cache"
	"stat-practice/internal/domain"
	"stat-practice/internal/dto"
	"stat-practice/internal/logger"
	"stat-practice/internal/util"

	"go.uber.org/zap"
)

// CatalogService defines the interface for topic and pattern catalog operations
type CatalogService interface {
	GetTopics(ctx context.Context) ([]dto.TopicResponse, error)
	GetPatterns(ctx context.Context, topicID string) ([]dto.PatternResponse, error)
	SuggestPatterns(ctx context.Context, req *dto.SuggestPatternsRequest) (*dto.SuggestPatternsResponse, error)
	SavePatterns(ctx context.Context, req *dto.SavePatternsRequest) (*dto.SavePatternsResponse, error)
	UpdateTopicApproach(ctx context.Context, topicID string, approach string) error
	UpdatePatternApproach(ctx context.Context, patternID string, approach string) error
}

// catalogService implements CatalogService
type catalogService struct {
	topicRepo   domain.TopicRepository
	patternRepo domain.PatternRepository
	suggester   domain.PatternSuggester
	cache       domain.Cache
	cacheTTL    time.Duration
}

// NewCatalogService creates a new instance of catalogService. cache may
// be nil, in which case listings always hit the database.
func NewCatalogService(
	topicRepo domain.TopicRepository,
	patternRepo domain.PatternRepository,
	suggester domain.PatternSuggester,
	cacheAdapter domain.Cache,
	cacheTTL time.Duration,
) CatalogService {
	return &catalogService{
		topicRepo:   topicRepo,
		patternRepo: patternRepo,
		suggester:   suggester,
		cache:       cacheAdapter,
		cacheTTL:    cacheTTL,
	}
}

func topicsCacheKey() string {
	return cache.GenerateCacheKey("catalog", "topics", "all")
}

func patternsCacheKey(topicID string) string {
	return cache.GenerateCacheKey("catalog", "patterns", topicID)
}

// GetTopics implements CatalogService
func (s *catalogService) GetTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	key := topicsCacheKey()
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var resp []dto.TopicResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached topics, falling through to DB", zap.String("key", key))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Cache get failed for topics", zap.Error(err))
		}
	}

	topics, err := s.topicRepo.GetAllTopics(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topics", err)
	}

	resp := make([]dto.TopicResponse, 0, len(topics))
	for _, t := range topics {
		resp = append(resp, dto.TopicToResponse(t))
	}

	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// GetPatterns implements CatalogService
func (s *catalogService) GetPatterns(ctx context.Context, topicID string) ([]dto.PatternResponse, error) {
	if topicID == "" {
		return nil, domain.NewInvalidInputError("topic ID is required")
	}

	key := patternsCacheKey(topicID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var resp []dto.PatternResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached patterns, falling through to DB", zap.String("key", key))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Cache get failed for patterns", zap.Error(err))
		}
	}

	patterns, err := s.patternRepo.GetPatternsByTopic(ctx, topicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get patterns", err)
	}

	resp := make([]dto.PatternResponse, 0, len(patterns))
	for _, p := range patterns {
		resp = append(resp, dto.PatternToResponse(p))
	}

	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// SuggestPatterns implements CatalogService. Suggestions are returned
// for instructor review only; nothing is persisted here.
func (s *catalogService) SuggestPatterns(ctx context.Context, req *dto.SuggestPatternsRequest) (*dto.SuggestPatternsResponse, error) {
	if req.TopicID == "" {
		return nil, domain.NewInvalidInputError("topic ID is required")
	}

	topic, err := s.topicRepo.GetTopicByID(ctx, req.TopicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topic", err)
	}
	if topic == nil {
		return nil, domain.NewError(domain.CodeTopicNotFound, "Topic not found with ID: "+req.TopicID, nil)
	}

	patterns, err := s.patternRepo.GetPatternsByTopic(ctx, req.TopicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get patterns", err)
	}

	existing := make([]dto.PatternResponse, 0, len(patterns))
	texts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		existing = append(existing, dto.PatternToResponse(p))
		texts = append(texts, p.Pattern)
	}

	additions, err := s.suggester.SuggestPatterns(ctx, topic.Name, texts)
	if err != nil {
		return nil, err
	}
	if additions == nil {
		additions = []string{}
	}

	return &dto.SuggestPatternsResponse{
		Existing:  existing,
		Additions: additions,
	}, nil
}

// SavePatterns implements CatalogService. Texts are whitespace-normalized
// before insert; blanks are dropped and duplicates skip silently on the
// (topic_id, pattern) constraint.
func (s *catalogService) SavePatterns(ctx context.Context, req *dto.SavePatternsRequest) (*dto.SavePatternsResponse, error) {
	if req.TopicID == "" {
		return nil, domain.NewInvalidInputError("topic ID is required")
	}

	texts := make([]string, 0, len(req.Patterns))
	for _, t := range req.Patterns {
		normalized := util.NormalizeWhitespace(util.CleanText(t))
		if normalized == "" {
			continue
		}
		texts = append(texts, normalized)
	}
	if len(texts) == 0 {
		return nil, domain.NewInvalidInputError("no non-empty patterns to save")
	}

	inserted, err := s.patternRepo.SavePatterns(ctx, req.TopicID, texts)
	if err != nil {
		return nil, domain.NewInternalError("Failed to save patterns", err)
	}

	s.invalidatePatterns(ctx, req.TopicID)

	logger.Get().Info("Saved patterns",
		zap.String("topicID", req.TopicID),
		zap.Int("requested", len(texts)),
		zap.Int("inserted", inserted))

	return &dto.SavePatternsResponse{Success: true, Inserted: inserted}, nil
}

// UpdateTopicApproach implements CatalogService. An empty approach is a
// deliberate clear, not an error.
func (s *catalogService) UpdateTopicApproach(ctx context.Context, topicID string, approach string) error {
	if topicID == "" {
		return domain.NewInvalidInputError("topic ID is required")
	}
	if err := s.topicRepo.UpdatePreferredApproach(ctx, topicID, util.CleanText(approach)); err != nil {
		return domain.NewInternalError("Failed to update topic approach", err)
	}
	s.invalidateTopics(ctx)
	return nil
}

// UpdatePatternApproach implements CatalogService
func (s *catalogService) UpdatePatternApproach(ctx context.Context, patternID string, approach string) error {
	if patternID == "" {
		return domain.NewInvalidInputError("pattern ID is required")
	}

	pattern, err := s.patternRepo.GetPatternByID(ctx, patternID)
	if err != nil {
		return domain.NewInternalError("Failed to get pattern", err)
	}
	if pattern == nil {
		return domain.NewError(domain.CodePatternNotFound, "Pattern not found with ID: "+patternID, nil)
	}

	if err := s.patternRepo.UpdatePreferredApproach(ctx, patternID, util.CleanText(approach)); err != nil {
		return domain.NewInternalError("Failed to update pattern approach", err)
	}
	s.invalidatePatterns(ctx, pattern.TopicID)
	return nil
}

func (s *catalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warn("Failed to marshal catalog cache value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		logger.Get().Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *catalogService) invalidateTopics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, topicsCacheKey()); err != nil {
		logger.Get().Warn("Cache invalidation failed for topics", zap.Error(err))
	}
}

func (s *catalogService) invalidatePatterns(ctx context.Context, topicID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, patternsCacheKey(topicID)); err != nil {
		logger.Get().Warn("Cache invalidation failed for patterns", zap.String("topicID", topicID), zap.Error(err))
	}
}
