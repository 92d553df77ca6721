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

// AlertRepo provides typed DynamoDB operations for the alerts table.
//
// The pending alert for a contact lives under the deterministic key
// domain.PendingAlertID(contactID), so Put doubles as an atomic
// upsert-per-contact: concurrent writers converge on one item and the
// single-pending-alert invariant is held by the table key.
type AlertRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAlertRepo(client *dynamodb.Client, tableName string) *AlertRepo {
	return &AlertRepo{client: client, tableName: tableName}
}

func (r *AlertRepo) Put(ctx context.Context, a *domain.Alert) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AlertRepo) Get(ctx context.Context, alertID string) (*domain.Alert, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("alert_id", alertID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("alert %s: %w", alertID, domain.ErrNotFound)
	}
	var a domain.Alert
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetPending returns the contact's live pending alert, or ErrNotFound.
func (r *AlertRepo) GetPending(ctx context.Context, contactID string) (*domain.Alert, error) {
	a, err := r.Get(ctx, domain.PendingAlertID(contactID))
	if err != nil {
		return nil, err
	}
	if a.IsDeleted() || a.Status != domain.AlertStatusPending {
		return nil, fmt.Errorf("no pending alert for contact %s: %w", contactID, domain.ErrNotFound)
	}
	return a, nil
}

// ListLiveByContact returns every non-deleted alert referencing the contact,
// whatever its status.
func (r *AlertRepo) ListLiveByContact(ctx context.Context, contactID string) ([]domain.Alert, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("contact_id-index"),
		KeyConditionExpression: aws.String("contact_id = :cid"),
		FilterExpression:       aws.String("dlt_sts = :live"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":  &types.AttributeValueMemberS{Value: contactID},
			":live": numAttr(domain.DeleteStatusLive),
		},
	})
	if err != nil {
		return nil, err
	}
	var alerts []domain.Alert
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *AlertRepo) Update(ctx context.Context, alertID string, updates map[string]interface{}) error {
	// alert_time is the GSI range key and stored as epoch seconds.
	if t, ok := updates["alert_time"].(time.Time); ok {
		updates["alert_time"] = t.Unix()
	}
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("alert_id", alertID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *AlertRepo) HardDelete(ctx context.Context, alertID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("alert_id", alertID),
	})
	return err
}

// HardDeleteByContact removes every alert referencing the contact, deleted
// or not, and returns how many were removed.
func (r *AlertRepo) HardDeleteByContact(ctx context.Context, contactID string) (int, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("contact_id-index"),
		KeyConditionExpression: aws.String("contact_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: contactID},
		},
		ProjectionExpression: aws.String("alert_id"),
	})
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range out.Items {
		idAttr, ok := item["alert_id"].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		if err := r.HardDelete(ctx, idAttr.Value); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// SoftDeleteByContact stamps every live alert for the contact as deleted
// and returns how many were stamped.
func (r *AlertRepo) SoftDeleteByContact(ctx context.Context, contactID string, stamps map[string]interface{}) (int, error) {
	alerts, err := r.ListLiveByContact(ctx, contactID)
	if err != nil {
		return 0, err
	}
	for i := range alerts {
		if err := r.Update(ctx, alerts[i].AlertID, stamps); err != nil {
			return i, err
		}
	}
	return len(alerts), nil
}

// ListDueForAssignee returns the assignee's live pending alerts whose
// alert_time falls in [start, end].
func (r *AlertRepo) ListDueForAssignee(ctx context.Context, assignee string, start, end time.Time) ([]domain.Alert, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("assigned_to-alert_time-index"),
		KeyConditionExpression: aws.String("assigned_to = :a AND alert_time BETWEEN :s AND :e"),
		FilterExpression:       aws.String("#st = :pending AND dlt_sts = :live"),
		ExpressionAttributeNames: map[string]string{
			"#st": "status", // reserved word in expressions
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":a":       &types.AttributeValueMemberS{Value: assignee},
			":s":       epochAttr(start),
			":e":       epochAttr(end),
			":pending": numAttr(domain.AlertStatusPending),
			":live":    numAttr(domain.DeleteStatusLive),
		},
	})
	if err != nil {
		return nil, err
	}
	var alerts []domain.Alert
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}
