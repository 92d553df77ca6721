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

// ContactRepo provides typed DynamoDB operations for the contacts table.
type ContactRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewContactRepo(client *dynamodb.Client, tableName string) *ContactRepo {
	return &ContactRepo{client: client, tableName: tableName}
}

func (r *ContactRepo) Put(ctx context.Context, c *domain.Contact) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ContactRepo) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("contact_id", contactID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("contact %s: %w", contactID, domain.ErrNotFound)
	}
	var c domain.Contact
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) Update(ctx context.Context, contactID string, updates map[string]interface{}) error {
	// next_alert is the due-index range key and stored as epoch seconds.
	if t, ok := updates["next_alert"].(time.Time); ok {
		updates["next_alert"] = t.Unix()
	}
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("contact_id", contactID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// ScanLive returns all non-deleted contacts, optionally restricted to one
// assignee. Listing is a filtered scan, like the legacy system's unindexed
// find; sorting and paging happen in the service.
func (r *ContactRepo) ScanLive(ctx context.Context, assignee string) ([]domain.Contact, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("dlt_sts = :live"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":live": numAttr(domain.DeleteStatusLive),
		},
	}
	if assignee != "" {
		input.FilterExpression = aws.String("dlt_sts = :live AND assigned_to = :a")
		input.ExpressionAttributeValues[":a"] = &types.AttributeValueMemberS{Value: assignee}
	}

	var contacts []domain.Contact
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.Contact
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		contacts = append(contacts, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return contacts, nil
}

// ListDueBetween queries the sparse due-index for non-deleted contacts whose
// next_alert falls in [start, end]. This is the daily sweep's working set.
func (r *ContactRepo) ListDueBetween(ctx context.Context, start, end time.Time) ([]domain.Contact, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("due-index"),
		KeyConditionExpression: aws.String("dlt_sts = :live AND next_alert BETWEEN :s AND :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":live": numAttr(domain.DeleteStatusLive),
			":s":    epochAttr(start),
			":e":    epochAttr(end),
		},
	})
	if err != nil {
		return nil, err
	}
	var contacts []domain.Contact
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// AppendAudio pushes an audio reference onto the contact's audio list,
// creating the list when absent.
func (r *ContactRepo) AppendAudio(ctx context.Context, contactID string, ref domain.AudioRef) error {
	av, err := attributevalue.Marshal([]domain.AudioRef{ref})
	if err != nil {
		return fmt.Errorf("marshal audio ref: %w", err)
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("contact_id", contactID),
		UpdateExpression: aws.String("SET audio = list_append(if_not_exists(audio, :empty), :ref)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref":   av,
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
	})
	return err
}
