package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// UserRepository persists registered accounts in a single DynamoDB table,
// one item per user keyed by email.
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepository(client *dynamodb.Client, tableName string) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *UserRepository) PutUser(ctx context.Context, u domain.User) error {
	av, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	av["PK"] = &types.AttributeValueMemberS{Value: userPK(u.Email)}
	av["SK"] = &types.AttributeValueMemberS{Value: "PROFILE"}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to put user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(email)},
			"SK": &types.AttributeValueMemberS{Value: "PROFILE"},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.User{}, err
	}
	if len(out.Item) == 0 {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}

	var user domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// GetUserByName scans for a user by display name. Name is not a key, so this
// is a filtered scan; acceptable at this table's size.
func (r *UserRepository) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#n = :name AND SK = :sk"),
		ExpressionAttributeNames: map[string]string{
			"#n": "Name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
			":sk":   &types.AttributeValueMemberS{Value: "PROFILE"},
		},
	})
	if err != nil {
		return domain.User{}, err
	}
	if len(out.Items) == 0 {
		return domain.User{}, fmt.Errorf("user %s: %w", name, domain.ErrNotFound)
	}

	var user domain.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func userPK(email string) string {
	return fmt.Sprintf("USER#%s", email)
}
