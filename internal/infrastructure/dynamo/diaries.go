package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-crm-api/internal/domain"
)

// DiaryRepo provides typed DynamoDB operations for the diary entries table.
type DiaryRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDiaryRepo(client *dynamodb.Client, tableName string) *DiaryRepo {
	return &DiaryRepo{client: client, tableName: tableName}
}

func (r *DiaryRepo) Put(ctx context.Context, e *domain.DiaryEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal diary entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DiaryRepo) Get(ctx context.Context, entryID string) (*domain.DiaryEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("entry_id", entryID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("diary entry %s: %w", entryID, domain.ErrNotFound)
	}
	var e domain.DiaryEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *DiaryRepo) ScanLive(ctx context.Context) ([]domain.DiaryEntry, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("dlt_sts = :live"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":live": numAttr(domain.DeleteStatusLive),
		},
	})
	if err != nil {
		return nil, err
	}
	var entries []domain.DiaryEntry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *DiaryRepo) Update(ctx context.Context, entryID string, updates map[string]interface{}) error {
	if t, ok := updates["entry_date"].(time.Time); ok {
		updates["entry_date"] = t.Unix()
	}
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("entry_id", entryID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
