// Package di wires the application together. Providers construct each
// dependency; wire generates the assembly in wire_gen.go.
package di

import (
	"context"
	"fmt"

	"saju-backend/application/commands"
	commandbus "saju-backend/application/commands/bus"
	commandhandlers "saju-backend/application/commands/handlers"
	"saju-backend/application/ports"
	"saju-backend/application/queries"
	querybus "saju-backend/application/queries/bus"
	queryhandlers "saju-backend/application/queries/handlers"
	"saju-backend/infrastructure/config"
	"saju-backend/infrastructure/generation"
	"saju-backend/infrastructure/messaging/eventbridge"
	"saju-backend/infrastructure/persistence/dynamodb"
	"saju-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	InsightRepo ports.InsightRepository
	ProfileRepo ports.ProfileRepository
	Generator   ports.TextGenerator
	Publisher   ports.EventPublisher
	Cache       ports.Cache
	Metrics     *observability.Metrics
	Tracer      *observability.Tracer
	CommandBus  *commandbus.CommandBus
	QueryBus    *querybus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideInsightRepository creates the insight repository
func ProvideInsightRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.InsightRepository {
	return dynamodb.NewInsightRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideProfileRepository creates the profile repository
func ProvideProfileRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileRepository {
	return dynamodb.NewProfileRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideTextGenerator creates the generation client
func ProvideTextGenerator(cfg *config.Config, logger *zap.Logger) ports.TextGenerator {
	return generation.NewClient(generation.ClientConfig{
		BaseURL:     cfg.GenerationBaseURL,
		APIKey:      cfg.GenerationAPIKey,
		Model:       cfg.GenerationModel,
		Timeout:     cfg.GenerationTimeout,
		MaxRetries:  cfg.GenerationRetries,
		BackoffBase: cfg.GenerationBackoff,
		MaxTokens:   cfg.GenerationMaxTokens,
	}, logger)
}

// ProvideEventPublisher creates the EventBridge publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("Saju/%s", cfg.Environment)
	return observability.NewMetrics(client, namespace, cfg.EnableMetrics, logger)
}

// ProvideTracer creates the request tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("saju-backend")
}

// ProvideInMemoryCache creates the warm-container cache
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	insightRepo ports.InsightRepository,
	profileRepo ports.ProfileRepository,
	generator ports.TextGenerator,
	publisher ports.EventPublisher,
	cache ports.Cache,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	logged := querybus.LoggingMiddleware(logger)

	dailyHandler := queryhandlers.NewGetDailyInsightHandler(
		insightRepo,
		profileRepo,
		generator,
		publisher,
		cache,
		metrics,
		tracer,
		logger,
	)
	if err := queryBus.Register(queries.GetDailyInsight{}, logged(dailyHandler)); err != nil {
		return nil, err
	}

	listHandler := queryhandlers.NewListInsightsHandler(insightRepo, logger)
	if err := queryBus.Register(queries.ListInsights{}, logged(listHandler)); err != nil {
		return nil, err
	}

	profileHandler := queryhandlers.NewGetProfileHandler(profileRepo)
	if err := queryBus.Register(queries.GetProfile{}, logged(profileHandler)); err != nil {
		return nil, err
	}

	return queryBus, nil
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	profileRepo ports.ProfileRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) (*commandbus.CommandBus, error) {
	commandBus := commandbus.NewCommandBus()
	logged := commandbus.LoggingMiddleware(logger)

	updateHandler := commandhandlers.NewUpdateProfileHandler(profileRepo, publisher, logger)
	if err := commandBus.Register(commands.UpdateProfile{}, logged(updateHandler)); err != nil {
		return nil, err
	}

	return commandBus, nil
}
