package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-marketplace-gate/internal/domain"
)

// ShopperRepo provides typed DynamoDB operations for the shoppers table.
type ShopperRepo struct {
	client    API
	tableName string
}

func NewShopperRepo(client API, tableName string) *ShopperRepo {
	return &ShopperRepo{client: client, tableName: tableName}
}

func (r *ShopperRepo) Put(ctx context.Context, u *domain.Shopper) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal shopper: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ShopperRepo) GetByGoogleSub(ctx context.Context, sub string) (*domain.Shopper, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("google_sub-index"),
		KeyConditionExpression:    aws.String("google_sub = :s"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":s": &types.AttributeValueMemberS{Value: sub}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("shopper not found: %w", domain.ErrNotFound)
	}
	var u domain.Shopper
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}
