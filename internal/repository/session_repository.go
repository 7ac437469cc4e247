package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// SessionRepository is the durable session store, backing "remember me"
// logins. Items share the user table, keyed by auth token.
type SessionRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewSessionRepository(client *dynamodb.Client, tableName string) *SessionRepository {
	return &SessionRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *SessionRepository) PutSession(ctx context.Context, s domain.Session) error {
	av, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: sessionPK(s.AuthToken)}
	av["SK"] = &types.AttributeValueMemberS{Value: "CURRENT"}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, token string) (domain.Session, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: sessionPK(token)},
			"SK": &types.AttributeValueMemberS{Value: "CURRENT"},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Session{}, err
	}
	if len(out.Item) == 0 {
		return domain.Session{}, fmt.Errorf("session: %w", domain.ErrNotFound)
	}

	var sess domain.Session
	if err := attributevalue.UnmarshalMap(out.Item, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: sessionPK(token)},
			"SK": &types.AttributeValueMemberS{Value: "CURRENT"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionPK(token string) string {
	return fmt.Sprintf("SESSION#%s", token)
}
