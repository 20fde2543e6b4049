package dynamodb

import (
	"context"
	"time"

	"saju-backend/application/ports"
	"saju-backend/domain/insight"
	apperrors "saju-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	userKeyPrefix    = "USER#"
	insightKeyPrefix = "INSIGHT#"
)

// insightItem is the DynamoDB item structure for a stored insight.
// GeneratedAt is epoch milliseconds to match the API contract exactly
// across round trips.
type insightItem struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	EntityType    string `dynamodbav:"EntityType"`
	LocalDate     string `dynamodbav:"LocalDate"`
	TimeZoneID    string `dynamodbav:"TimeZoneId"`
	DayElement    string `dynamodbav:"DayElement"`
	ElementTheme  string `dynamodbav:"ElementTheme"`
	HeavenlyStem  string `dynamodbav:"HeavenlyStem"`
	EarthlyBranch string `dynamodbav:"EarthlyBranch"`
	InsightText   string `dynamodbav:"InsightText"`
	GeneratedAt   int64  `dynamodbav:"GeneratedAt"`
	Version       string `dynamodbav:"Version"`
	Source        string `dynamodbav:"Source"`
}

// InsightRepository implements ports.InsightRepository using DynamoDB.
// Items are written once and never updated; a concurrent writer for
// the same key simply overwrites with equivalent content.
type InsightRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewInsightRepository creates a new InsightRepository
func NewInsightRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.InsightRepository {
	return &InsightRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Get returns the stored insight for (user, dateKey), or nil on a miss.
func (r *InsightRepository) Get(ctx context.Context, userID, dateKey string) (*insight.Insight, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userKeyPrefix + userID},
			"SK": &types.AttributeValueMemberS{Value: insightKeyPrefix + dateKey},
		},
	})
	if err != nil {
		r.logger.Error("failed to read insight",
			zap.String("user_id", userID),
			zap.String("date_key", dateKey),
			zap.Error(err),
		)
		return nil, apperrors.NewStorageError("failed to read insight").WithCause(err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item insightItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.NewStorageError("failed to unmarshal insight").WithCause(err)
	}

	ins := item.toDomain()
	return &ins, nil
}

// Put stores a freshly generated insight.
func (r *InsightRepository) Put(ctx context.Context, userID, dateKey string, ins *insight.Insight) error {
	item := insightItem{
		PK:            userKeyPrefix + userID,
		SK:            insightKeyPrefix + dateKey,
		EntityType:    "INSIGHT",
		LocalDate:     ins.LocalDate,
		TimeZoneID:    ins.TimeZoneID,
		DayElement:    ins.DayElement,
		ElementTheme:  ins.ElementTheme,
		HeavenlyStem:  ins.HeavenlyStem,
		EarthlyBranch: ins.EarthlyBranch,
		InsightText:   ins.InsightText,
		GeneratedAt:   ins.GeneratedAt.UnixMilli(),
		Version:       ins.Version,
		Source:        ins.Source,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewStorageError("failed to marshal insight").WithCause(err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("failed to store insight",
			zap.String("user_id", userID),
			zap.String("date_key", dateKey),
			zap.Error(err),
		)
		return apperrors.NewStorageError("failed to store insight").WithCause(err)
	}

	return nil
}

// ListRecent returns up to limit insights for the user, newest first.
// The INSIGHT# sort key prefix embeds the local date, so descending
// key order is descending date order.
func (r *InsightRepository) ListRecent(ctx context.Context, userID string, limit int) ([]insight.Insight, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userKeyPrefix + userID)).
		And(expression.Key("SK").BeginsWith(insightKeyPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build insight query").WithCause(err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(int32(limit)),
	})
	if err != nil {
		r.logger.Error("failed to list insights",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewStorageError("failed to list insights").WithCause(err)
	}

	var items []insightItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, apperrors.NewStorageError("failed to unmarshal insights").WithCause(err)
	}

	insights := make([]insight.Insight, 0, len(items))
	for _, item := range items {
		insights = append(insights, item.toDomain())
	}
	return insights, nil
}

func (item insightItem) toDomain() insight.Insight {
	return insight.Insight{
		LocalDate:     item.LocalDate,
		TimeZoneID:    item.TimeZoneID,
		DayElement:    item.DayElement,
		ElementTheme:  item.ElementTheme,
		HeavenlyStem:  item.HeavenlyStem,
		EarthlyBranch: item.EarthlyBranch,
		InsightText:   item.InsightText,
		GeneratedAt:   time.UnixMilli(item.GeneratedAt).UTC(),
		Version:       item.Version,
		Source:        item.Source,
	}
}
