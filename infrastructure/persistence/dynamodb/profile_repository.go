package dynamodb

import (
	"context"
	"time"

	"saju-backend/application/ports"
	"saju-backend/domain/insight"
	apperrors "saju-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const profileSortKey = "PROFILE"

// profileItem is the DynamoDB item structure for a user's birth
// profile. Every payload field is optional: the document may predate
// the birth-date onboarding step.
type profileItem struct {
	PK              string   `dynamodbav:"PK"`
	SK              string   `dynamodbav:"SK"`
	EntityType      string   `dynamodbav:"EntityType"`
	BirthDate       *int64   `dynamodbav:"BirthDate,omitempty"`
	PersonalAnchors []string `dynamodbav:"PersonalAnchors,omitempty"`
	UpdatedAt       int64    `dynamodbav:"UpdatedAt"`
}

// ProfileRepository implements ports.ProfileRepository using DynamoDB.
type ProfileRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProfileRepository {
	return &ProfileRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// GetBirthProfile returns the user's birth profile, or nil when no
// profile document exists.
func (r *ProfileRepository) GetBirthProfile(ctx context.Context, userID string) (*insight.BirthProfile, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userKeyPrefix + userID},
			"SK": &types.AttributeValueMemberS{Value: profileSortKey},
		},
	})
	if err != nil {
		r.logger.Error("failed to read profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewStorageError("failed to read profile").WithCause(err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.NewStorageError("failed to unmarshal profile").WithCause(err)
	}

	profile := &insight.BirthProfile{
		PersonalAnchors: item.PersonalAnchors,
	}
	if item.BirthDate != nil {
		bd := time.UnixMilli(*item.BirthDate).UTC()
		profile.BirthDate = &bd
	}

	return profile, nil
}

// PutBirthProfile upserts the user's birth profile.
func (r *ProfileRepository) PutBirthProfile(ctx context.Context, userID string, profile *insight.BirthProfile) error {
	item := profileItem{
		PK:              userKeyPrefix + userID,
		SK:              profileSortKey,
		EntityType:      "PROFILE",
		PersonalAnchors: profile.PersonalAnchors,
		UpdatedAt:       time.Now().UnixMilli(),
	}
	if profile.BirthDate != nil {
		millis := profile.BirthDate.UnixMilli()
		item.BirthDate = &millis
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewStorageError("failed to marshal profile").WithCause(err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("failed to store profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return apperrors.NewStorageError("failed to store profile").WithCause(err)
	}

	return nil
}
