package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/okondratev/devdocs-qa/internal/config"
	"github.com/okondratev/devdocs-qa/internal/core/ports"
	"github.com/okondratev/devdocs-qa/internal/core/usecase"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/catalog"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/chunking"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/llm/azureopenai"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/queue/nats"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/repository/postgres"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/resilience"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/search/docsearch"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	AnswerLog ports.AnswerLog
	QA        ports.QuestionAnswerer

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	answerLog := postgres.NewAnswerRepository(db)
	if err := answerLog.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	qa, err := NewPipeline(cfg, executor)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Queue:     queue,
		AnswerLog: answerLog,
		QA:        qa,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// NewPipeline assembles the question answering pipeline without the
// persistence and queue sides. The CLI uses it directly.
func NewPipeline(cfg config.Config, executor *resilience.Executor) (ports.QuestionAnswerer, error) {
	domainCatalog, err := catalog.Load(cfg.DomainsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load domain catalog: %w", err)
	}

	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}

	generator := azureopenai.New(azureopenai.Config{
		Endpoint:           cfg.AzureOpenAIEndpoint,
		Deployment:         cfg.AzureOpenAIDeployment,
		APIVersion:         cfg.AzureOpenAIAPIVersion,
		APIKey:             cfg.AzureOpenAIAPIKey,
		DefaultMaxTokens:   cfg.LLMMaxTokens,
		DefaultTemperature: cfg.LLMTemperature,
		RateLimitRPS:       cfg.LLMRateLimitRPS,
		Executor:           executor,
	})

	searcher := docsearch.New(cfg.SearchBaseURL, docsearch.Options{
		Timeout:  time.Duration(cfg.SearchTimeoutSeconds) * time.Second,
		Executor: executor,
	})

	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)

	classifier := usecase.NewClassifier(generator, domainCatalog, cfg.DomainMatchCutoff)
	router := usecase.NewRouter(classifier, domainCatalog, cfg.ConfidenceThreshold, cfg.MaxDomains)
	assessor := usecase.NewAssessor(generator, cfg.RelevanceThreshold, cfg.BatchDocChars, cfg.SingleDocChars)
	retriever := usecase.NewRetriever(searcher, assessor, cfg.SearchMaxResults)
	synthesizer := usecase.NewSynthesizer(generator, chunker, cfg.SynthContextBudget)

	return usecase.NewQAService(classifier, router, retriever, synthesizer), nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
