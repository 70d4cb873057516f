package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kbforge/kbforge/ai"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// Searcher runs access-scoped hybrid retrieval over documents: scope
// resolution, lexical or semantic matching, then ranking with provenance
// hydration.
type Searcher struct {
	docs     storage.DocumentRepository
	users    storage.UserRepository
	scope    *ScopeResolver
	lexical  *LexicalMatcher
	semantic *SemanticMatcher
	ranker   *Ranker
	config   Config
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig overrides the default search configuration.
func WithConfig(config Config) Option {
	return func(s *Searcher) error {
		config.normalize()
		s.config = config
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	docs storage.DocumentRepository,
	users storage.UserRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		docs:   docs,
		users:  users,
		config: DefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	var err error
	if s.scope, err = NewScopeResolver(users); err != nil {
		return nil, err
	}
	if s.lexical, err = NewLexicalMatcher(docs, s.config); err != nil {
		return nil, err
	}
	if s.semantic, err = NewSemanticMatcher(docs, provider.Embedder(), s.config); err != nil {
		return nil, err
	}
	if s.ranker, err = NewRanker(users); err != nil {
		return nil, err
	}

	return s, nil
}

// Search runs a scoped search for the given user.
// Returns ErrQueryRequired or ErrUserRequired on missing input,
// storage.ErrNotFound for an unknown user, and an empty result list when
// nothing in the authorized corpus qualifies.
func (s *Searcher) Search(ctx context.Context, query string, mode Mode, userID core.ID) ([]*core.ScoredResult, error) {
	return s.SearchWithMonitor(ctx, query, mode, userID, nil)
}

// SearchWithMonitor runs a scoped search with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, mode Mode, userID core.ID, monitor SearchMonitor) ([]*core.ScoredResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, ErrQueryRequired
	}
	if userID == 0 {
		return nil, ErrUserRequired
	}

	var matcher Matcher
	switch mode {
	case ModeLexical:
		matcher = s.lexical
	case ModeSemantic:
		matcher = s.semantic
	default:
		return nil, ErrUnknownMode
	}

	monitor.Start(query, mode)

	// Authorization first: no document is read before the scope is known
	scope, err := s.scope.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	monitor.AfterScopeResolution(scope.TeamIDs)

	raw, err := matcher.Match(ctx, query, scope)
	if err != nil {
		s.logger.Error("match failed", "mode", mode, "err", err)
		return nil, err
	}
	monitor.AfterMatch(raw)

	results, err := s.ranker.Finalize(ctx, raw, scope)
	if err != nil {
		return nil, err
	}
	monitor.Finish(results)

	return results, nil
}
