package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"courierbot/internal/adapters/out/anthropic"
	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/adapters/out/postgres"
	"courierbot/internal/adapters/out/postgres/knowledgerepo"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
	"courierbot/internal/jobs"
)

type CompositionRoot struct {
	config       Config
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	contextStore *memory.ContextStore
	gateway      ports.GenerationGateway
	logger       *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	gateway, err := anthropic.NewGateway(anthropic.Config{
		APIKey: config.AnthropicAPIKey,
		Model:  config.AnthropicModel,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		contextStore: memory.NewContextStore(config.ContextTTL, 0, 0),
		gateway:      gateway,
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessMessageCommandHandler() commands.ProcessMessageCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessMessageCommandHandler(
		f,
		c.contextStore,
		c.CreateUpdateDeliveryStatusCommandHandler(),
		services.NewIntentRouter(services.IntentRouterConfig{}),
		services.NewResponseSynthesizer(c.gateway, services.SynthesizerConfig{
			Timeout: c.config.GenerationTimeout,
		}),
		services.NewSuggestionGenerator(),
		c.config.KnowledgeLimit,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchKnowledgeQueryHandler() queries.SearchKnowledgeQueryHandler {
	return queries.NewSearchKnowledgeQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPerformanceMetricsQueryHandler() queries.GetPerformanceMetricsQueryHandler {
	return queries.NewGetPerformanceMetricsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateKnowledgeRepository() ports.KnowledgeRepository {
	return knowledgerepo.NewGormKnowledgeRepository(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.contextStore, c.logger)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
