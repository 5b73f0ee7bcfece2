package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jobboard-api/internal/domain"
)

// StaffRepo provides typed DynamoDB operations for a back-office account
// table. Recruiters and admins share the same record shape, so one repo type
// is instantiated once per table.
type StaffRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewStaffRepo(client *dynamodb.Client, tableName string) *StaffRepo {
	return &StaffRepo{client: client, tableName: tableName}
}

func (r *StaffRepo) Put(ctx context.Context, s *domain.Staff) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal staff: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *StaffRepo) Get(ctx context.Context, staffID string) (*domain.Staff, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("staff_id", staffID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("staff not found: %w", domain.ErrNotFound)
	}
	var s domain.Staff
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("email-index"),
		KeyConditionExpression:    aws.String("email = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":e": &types.AttributeValueMemberS{Value: email}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("staff not found: %w", domain.ErrNotFound)
	}
	var s domain.Staff
	if err := attributevalue.UnmarshalMap(out.Items[0], &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepo) Update(ctx context.Context, staffID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("staff_id", staffID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *StaffRepo) SoftDelete(ctx context.Context, staffID string) error {
	return r.Update(ctx, staffID, map[string]interface{}{"enable": false})
}

func (r *StaffRepo) Scan(ctx context.Context) ([]domain.Staff, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("enable = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var staff []domain.Staff
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}
