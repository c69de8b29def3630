package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-marketplace-gate/internal/domain"
)

// SellerRepo is the credential store for seller accounts.
type SellerRepo struct {
	client    API
	tableName string
}

func NewSellerRepo(client API, tableName string) *SellerRepo {
	return &SellerRepo{client: client, tableName: tableName}
}

func (r *SellerRepo) Put(ctx context.Context, s *domain.Seller) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal seller: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SellerRepo) Get(ctx context.Context, sellerID string) (*domain.Seller, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("seller_id", sellerID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("seller not found: %w", domain.ErrNotFound)
	}
	var s domain.Seller
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SellerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	return r.queryGSI(ctx, "email-index", "email", email)
}

func (r *SellerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Seller, error) {
	return r.queryGSI(ctx, "phone-index", "phone", phone)
}

// UpdatePasswordHash replaces the stored bcrypt hash.
func (r *SellerRepo) UpdatePasswordHash(ctx context.Context, sellerID, hash string) error {
	return r.updateExisting(ctx, sellerID, map[string]interface{}{fieldPasswordHash: hash})
}

// UpdateStatus moves a seller between approval states.
func (r *SellerRepo) UpdateStatus(ctx context.Context, sellerID string, status domain.SellerStatus) error {
	return r.updateExisting(ctx, sellerID, map[string]interface{}{fieldStatus: string(status)})
}

func (r *SellerRepo) updateExisting(ctx context.Context, sellerID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("seller_id", sellerID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(seller_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("seller not found: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *SellerRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Seller, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("seller not found: %w", domain.ErrNotFound)
	}
	var s domain.Seller
	if err := attributevalue.UnmarshalMap(out.Items[0], &s); err != nil {
		return nil, err
	}
	return &s, nil
}
