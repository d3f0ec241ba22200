package relevance

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/relevance/ai"
	"github.com/poiesic/relevance/ai/mock"
	"github.com/poiesic/relevance/core"
	"github.com/poiesic/relevance/scoring"
)

const (
	budgetPrimary   = "Sarah Johnson approved the AWS budget of $5,000 on March 3rd, 2025."
	budgetSecondary = "The AWS budget review happens after Sarah Johnson signs off."
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := NewEngine(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("without embedder", func(t *testing.T) {
		engine := newTestEngine(t)
		assert.Equal(t, []core.Pipeline{core.PipelineLexical, core.PipelineEntityTopic}, engine.Pipelines())
		assert.NotNil(t, engine.logger)
	})

	t.Run("with embedder", func(t *testing.T) {
		engine := newTestEngine(t, WithEmbedder(mock.NewMockEmbedder()), WithPoolSize(2))
		assert.Equal(t, core.Pipelines, engine.Pipelines())
	})

	t.Run("with ai config and key", func(t *testing.T) {
		engine := newTestEngine(t, WithAIConfig(ai.NewConfig(ai.WithAPIKey("test-key"))))
		assert.Contains(t, engine.Pipelines(), core.PipelineSemantic)
		assert.NotNil(t, engine.provider)
	})

	t.Run("with ai config missing key", func(t *testing.T) {
		engine := newTestEngine(t, WithAIConfig(ai.NewConfig()))
		assert.NotContains(t, engine.Pipelines(), core.PipelineSemantic)
	})

	t.Run("with invalid ai config", func(t *testing.T) {
		_, err := NewEngine(WithAIConfig(ai.NewConfig(ai.WithAPIKey("k"), ai.WithEmbeddingModel(""))))
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrConfig))
	})

	t.Run("with negative timeout", func(t *testing.T) {
		_, err := NewEngine(WithEmbeddingTimeout(-1))
		assert.ErrorIs(t, err, core.ErrConfig)
	})
}

func TestCalculate_Lexical(t *testing.T) {
	engine := newTestEngine(t)

	a, err := engine.Calculate(context.Background(), core.PipelineLexical, budgetPrimary, budgetSecondary)
	require.NoError(t, err)

	r := a.Result
	assert.True(t, r.IsRelevant)
	assert.Greater(t, r.Score, 0.3)
	assert.Greater(t, r.Components[core.ComponentKeywordOverlap], 0.0)
	assert.Greater(t, r.Components[core.ComponentEntityOverlap], 0.0)
	assert.Contains(t, r.Explanation, "Sarah Johnson")
	assert.Contains(t, r.Explanation, "aws")
	assert.Contains(t, a.PrimaryEntities, "Sarah Johnson")
	assert.Contains(t, a.SecondaryEntities, "Sarah Johnson")
}

func TestCalculate_NothingShared(t *testing.T) {
	engine := newTestEngine(t)

	a, err := engine.Calculate(context.Background(), core.PipelineLexical, "Cats sleep quietly.", "Dogs bark loudly.")
	require.NoError(t, err)
	assert.Zero(t, a.Result.Components[core.ComponentKeywordOverlap])
	assert.Zero(t, a.Result.Components[core.ComponentEntityOverlap])
	assert.Zero(t, a.Result.Score)
	assert.False(t, a.Result.IsRelevant)
}

func TestCalculate_SemanticFallback(t *testing.T) {
	embedder := mock.NewMockEmbedder().WithEmbedTextFunc(func(context.Context, string) ([]float32, error) {
		return nil, errors.New("connection refused")
	})
	engine := newTestEngine(t, WithEmbedder(embedder))

	a, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.NoError(t, err)

	c := a.Result.Components
	assert.Equal(t, 0.6*c[core.ComponentKeywordOverlap]+0.4*c[core.ComponentEntityOverlap], c[core.ComponentSemanticSimilarity])
	assert.NoError(t, core.ValidateResult(&a.Result))
	assert.Contains(t, a.Result.Explanation, "embedding service was unavailable")
}

func TestCalculate_EmptyText(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	engine := newTestEngine(t, WithEmbedder(embedder))

	for _, p := range core.Pipelines {
		for _, pair := range [][2]string{{"", budgetSecondary}, {budgetPrimary, ""}, {"  ", "\n"}} {
			a, err := engine.Calculate(context.Background(), p, pair[0], pair[1])
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidInput))
			assert.True(t, errors.Is(err, core.ErrEmptyText))
			assert.False(t, a.Result.IsRelevant)
			assert.Zero(t, a.Result.Score)
			assert.Contains(t, a.Result.Explanation, "Unable to assess relevance")
		}
	}
	assert.Zero(t, embedder.CallCount())
}

func TestCalculate_SemanticWithoutCredential(t *testing.T) {
	engine := newTestEngine(t, WithAIConfig(ai.NewConfig()))

	a, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfig))
	assert.True(t, errors.Is(err, core.ErrMissingCredential))
	assert.False(t, a.Result.IsRelevant)
	assert.Zero(t, a.Result.Score)
}

func TestCalculate_UnknownPipeline(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Calculate(context.Background(), core.Pipeline("bm25"), budgetPrimary, budgetSecondary)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	assert.True(t, errors.Is(err, core.ErrUnknownPipeline))
}

func TestCalculate_DimensionMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder().WithEmbedTextFunc(func(_ context.Context, text string) ([]float32, error) {
		if text == budgetPrimary {
			return []float32{1, 0}, nil
		}
		return []float32{1, 0, 0}, nil
	})
	engine := newTestEngine(t, WithEmbedder(embedder))

	a, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDimensionMismatch))
	assert.False(t, a.Result.IsRelevant)
}

type countingMonitor struct {
	scoring.NoopMonitor
	mu       sync.Mutex
	started  int
	finished int
	failed   []error
}

func (m *countingMonitor) Start(_ core.Pipeline, _ core.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *countingMonitor) Finish(_ core.ID, _ *core.Breakdown) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished++
}

func (m *countingMonitor) Failed(_ core.ID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, err)
}

func TestCalculate_MonitorPairsStartWithFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder().WithEmbedTextFunc(func(_ context.Context, text string) ([]float32, error) {
		if text == budgetPrimary {
			return []float32{1, 0}, nil
		}
		return []float32{1, 0, 0}, nil
	})
	monitor := &countingMonitor{}
	engine := newTestEngine(t, WithEmbedder(embedder), WithMonitor(monitor))

	_, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.Error(t, err)

	assert.Equal(t, 1, monitor.started)
	assert.Zero(t, monitor.finished)
	require.Len(t, monitor.failed, 1)
	assert.ErrorIs(t, monitor.failed[0], core.ErrDimensionMismatch)
}

func TestCalculate_NonFiniteEmbedding(t *testing.T) {
	embedder := mock.NewMockEmbedder().WithEmbedTextFunc(func(context.Context, string) ([]float32, error) {
		return []float32{float32(math.NaN()), 1}, nil
	})
	engine := newTestEngine(t, WithEmbedder(embedder))

	a, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.NoError(t, err)
	assert.NoError(t, core.ValidateResult(&a.Result))
	assert.False(t, math.IsNaN(a.Result.Score))

	_, err = json.Marshal(a)
	assert.NoError(t, err)
}

// embedFunc satisfies ai.Embedder with a single function.
type embedFunc func(ctx context.Context, text string) ([]float32, error)

func (f embedFunc) EmbedText(ctx context.Context, text string) ([]float32, error) { return f(ctx, text) }

func TestCalculate_SingleTextEmbedder(t *testing.T) {
	var calls atomic.Int32
	embedder := embedFunc(func(context.Context, string) ([]float32, error) {
		calls.Add(1)
		return []float32{1, 0}, nil
	})
	engine := newTestEngine(t, WithEmbedder(embedder))

	a, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a.Result.Components[core.ComponentSemanticSimilarity], 1e-9)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCalculate_Concurrent(t *testing.T) {
	monitor := &countingMonitor{}
	engine := newTestEngine(t, WithEmbedder(mock.NewMockEmbedder()), WithMonitor(monitor), WithPoolSize(2))

	want, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, monitor.started)
	assert.Equal(t, 9, monitor.finished)
	assert.Empty(t, monitor.failed)
}

type fixedFormatter struct{}

func (fixedFormatter) Explain(_ *core.Breakdown) string { return "custom" }

func TestCalculate_CustomFormatter(t *testing.T) {
	engine := newTestEngine(t, WithFormatter(fixedFormatter{}))

	a, err := engine.Calculate(context.Background(), core.PipelineEntityTopic, budgetPrimary, budgetSecondary)
	require.NoError(t, err)
	assert.Equal(t, "custom", a.Result.Explanation)
}

func TestClose(t *testing.T) {
	engine, err := NewEngine(WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	require.NoError(t, engine.Close())

	_, err = engine.Calculate(context.Background(), core.PipelineSemantic, budgetPrimary, budgetSecondary)
	require.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrExternalService))

	a, err := engine.Calculate(context.Background(), core.PipelineLexical, budgetPrimary, budgetSecondary)
	require.NoError(t, err)
	assert.True(t, a.Result.IsRelevant)
}
