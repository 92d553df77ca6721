package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-crm-api/internal/domain"
)

// MedicineRepo provides typed DynamoDB operations for the medicines table.
type MedicineRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMedicineRepo(client *dynamodb.Client, tableName string) *MedicineRepo {
	return &MedicineRepo{client: client, tableName: tableName}
}

func (r *MedicineRepo) Put(ctx context.Context, m *domain.Medicine) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal medicine: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MedicineRepo) Get(ctx context.Context, medicineID string) (*domain.Medicine, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("medicine_id", medicineID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("medicine %s: %w", medicineID, domain.ErrNotFound)
	}
	var m domain.Medicine
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MedicineRepo) ScanLive(ctx context.Context) ([]domain.Medicine, error) {
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
	var meds []domain.Medicine
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &meds); err != nil {
		return nil, err
	}
	return meds, nil
}

func (r *MedicineRepo) Update(ctx context.Context, medicineID string, updates map[string]interface{}) error {
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("medicine_id", medicineID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
