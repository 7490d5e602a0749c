package repository

import (
	"context"
	"errors"
	"time"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPreferencesTableName = "payment_preferences"
	preferencesEventIDIndex     = "event_id-index"

	conditionExists  = "attribute_exists(#id)"
	conditionPending = "attribute_exists(#id) AND #status = :pending"
)

// dynamoAPI is the subset of *dynamodb.Client used by the repository.
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

type guestItem struct {
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
	CPF   string `dynamodbav:"cpf"`
	Phone string `dynamodbav:"phone,omitempty"`
}

type pixItem struct {
	PaymentID    string `dynamodbav:"payment_id"`
	QRCode       string `dynamodbav:"qr_code"`
	QRCodeBase64 string `dynamodbav:"qr_code_base64,omitempty"`
	TicketURL    string `dynamodbav:"ticket_url,omitempty"`
	ExpiresAt    string `dynamodbav:"expires_at,omitempty"`
}

type paymentPreferenceItem struct {
	ID                  string     `dynamodbav:"id"`
	EventID             string     `dynamodbav:"event_id"`
	BatchID             string     `dynamodbav:"batch_id,omitempty"`
	UserID              string     `dynamodbav:"user_id,omitempty"`
	TicketQuantity      int        `dynamodbav:"ticket_quantity"`
	UnitPrice           string     `dynamodbav:"unit_price"`
	TotalAmount         string     `dynamodbav:"total_amount"`
	Status              string     `dynamodbav:"status"`
	Metadata            *guestItem `dynamodbav:"metadata,omitempty"`
	ExternalReference   string     `dynamodbav:"external_reference"`
	Environment         string     `dynamodbav:"environment"`
	GatewayPreferenceID string     `dynamodbav:"gateway_preference_id,omitempty"`
	CheckoutURL         string     `dynamodbav:"checkout_url,omitempty"`
	GatewayPaymentID    string     `dynamodbav:"gateway_payment_id,omitempty"`
	Pix                 *pixItem   `dynamodbav:"pix,omitempty"`
	RegeneratedFrom     string     `dynamodbav:"regenerated_from,omitempty"`
	CreatedAt           string     `dynamodbav:"created_at"`
	UpdatedAt           string     `dynamodbav:"updated_at"`
}

// PaymentPreferenceDynamoRepository persists PaymentPreference entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: event_id-index (PK: event_id)
//
// Status writes are conditional on the stored status being pending, so a
// terminal status is never overwritten even under concurrent webhooks.

type PaymentPreferenceDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPaymentPreferenceRepository = (*PaymentPreferenceDynamoRepository)(nil)

func NewPaymentPreferenceDynamoRepository(ddb *dynamodb.Client) *PaymentPreferenceDynamoRepository {
	return newPaymentPreferenceRepository(ddb, getenvDefault("PREFERENCES_TABLE", defaultPreferencesTableName))
}

func newPaymentPreferenceRepository(ddb dynamoAPI, table string) *PaymentPreferenceDynamoRepository {
	return &PaymentPreferenceDynamoRepository{ddb: ddb, tableName: table}
}

func (r *PaymentPreferenceDynamoRepository) Create(ctx context.Context, p entities.PaymentPreference) (entities.PaymentPreference, error) {
	av, err := attributevalue.MarshalMap(toPaymentPreferenceItem(p))
	if err != nil {
		return entities.PaymentPreference{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentPreference{}, err
	}
	return p, nil
}

func (r *PaymentPreferenceDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentPreference, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentPreference{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentPreference{}, nil
	}

	var it paymentPreferenceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentPreference{}, err
	}
	return fromPaymentPreferenceItem(it), nil
}

func (r *PaymentPreferenceDynamoRepository) ListByEventID(ctx context.Context, eventID string) ([]entities.PaymentPreference, error) {
	var (
		items    []entities.PaymentPreference
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(preferencesEventIDIndex),
			KeyConditionExpression: aws.String("event_id = :eid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":eid": &types.AttributeValueMemberS{Value: eventID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentPreferenceItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromPaymentPreferenceItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	if items == nil {
		items = []entities.PaymentPreference{}
	}
	return items, nil
}

func (r *PaymentPreferenceDynamoRepository) UpdateGatewayData(ctx context.Context, id string, gw entities.GatewayPreference) (entities.PaymentPreference, error) {
	return r.update(ctx, id, conditionExists, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #gateway_preference_id = :gpid, #checkout_url = :url, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":gpid":       &types.AttributeValueMemberS{Value: gw.ID},
			":url":        &types.AttributeValueMemberS{Value: gw.CheckoutURL},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#gateway_preference_id": "gateway_preference_id",
			"#checkout_url":          "checkout_url",
			"#updated_at":            "updated_at",
		}
		return expr, vals, names
	})
}

func (r *PaymentPreferenceDynamoRepository) UpdatePix(ctx context.Context, id string, pix entities.PixData) (entities.PaymentPreference, error) {
	pixAV, err := attributevalue.Marshal(toPixItem(pix))
	if err != nil {
		return entities.PaymentPreference{}, err
	}
	return r.update(ctx, id, conditionPending, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #pix = :pix, #gateway_payment_id = :pid, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":pix":        pixAV,
			":pid":        &types.AttributeValueMemberS{Value: pix.PaymentID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":pending":    &types.AttributeValueMemberS{Value: string(entities.PreferenceStatusPending)},
		}
		names := map[string]string{
			"#pix":                "pix",
			"#gateway_payment_id": "gateway_payment_id",
			"#updated_at":         "updated_at",
			"#status":             "status",
		}
		return expr, vals, names
	})
}

func (r *PaymentPreferenceDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.PreferenceStatus, gatewayPaymentID string) (entities.PaymentPreference, error) {
	return r.update(ctx, id, conditionPending, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":pending":    &types.AttributeValueMemberS{Value: string(entities.PreferenceStatusPending)},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		if gatewayPaymentID != "" {
			expr += ", #gateway_payment_id = :pid"
			vals[":pid"] = &types.AttributeValueMemberS{Value: gatewayPaymentID}
			names["#gateway_payment_id"] = "gateway_payment_id"
		}
		return expr, vals, names
	})
}

// update returns a zero value when the condition fails.
func (r *PaymentPreferenceDynamoRepository) update(
	ctx context.Context,
	id string,
	condition string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.PaymentPreference, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentPreference{}, nil
		}
		return entities.PaymentPreference{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentPreference{}, nil
	}
	var it paymentPreferenceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentPreference{}, err
	}
	return fromPaymentPreferenceItem(it), nil
}

func toPaymentPreferenceItem(p entities.PaymentPreference) paymentPreferenceItem {
	it := paymentPreferenceItem{
		ID:                  p.ID,
		EventID:             p.EventID,
		BatchID:             p.BatchID,
		UserID:              p.UserID,
		TicketQuantity:      p.TicketQuantity,
		UnitPrice:           floatToString(p.UnitPrice),
		TotalAmount:         floatToString(p.TotalAmount),
		Status:              string(p.Status),
		ExternalReference:   p.ExternalReference,
		Environment:         string(p.Environment),
		GatewayPreferenceID: p.GatewayPreferenceID,
		CheckoutURL:         p.CheckoutURL,
		GatewayPaymentID:    p.GatewayPaymentID,
		RegeneratedFrom:     p.RegeneratedFrom,
		CreatedAt:           formatTime(p.CreatedAt),
		UpdatedAt:           formatTime(p.UpdatedAt),
	}
	if p.Metadata != nil {
		it.Metadata = &guestItem{Name: p.Metadata.Name, Email: p.Metadata.Email, CPF: p.Metadata.CPF, Phone: p.Metadata.Phone}
	}
	if p.Pix != nil {
		px := toPixItem(*p.Pix)
		it.Pix = &px
	}
	return it
}

func toPixItem(p entities.PixData) pixItem {
	return pixItem{
		PaymentID:    p.PaymentID,
		QRCode:       p.QRCode,
		QRCodeBase64: p.QRCodeBase64,
		TicketURL:    p.TicketURL,
		ExpiresAt:    formatTime(p.ExpiresAt),
	}
}

func fromPaymentPreferenceItem(it paymentPreferenceItem) entities.PaymentPreference {
	p := entities.PaymentPreference{
		ID:                  it.ID,
		EventID:             it.EventID,
		BatchID:             it.BatchID,
		UserID:              it.UserID,
		TicketQuantity:      it.TicketQuantity,
		UnitPrice:           parseFloat(it.UnitPrice),
		TotalAmount:         parseFloat(it.TotalAmount),
		Status:              entities.PreferenceStatus(it.Status),
		ExternalReference:   it.ExternalReference,
		Environment:         entities.Environment(it.Environment),
		GatewayPreferenceID: it.GatewayPreferenceID,
		CheckoutURL:         it.CheckoutURL,
		GatewayPaymentID:    it.GatewayPaymentID,
		RegeneratedFrom:     it.RegeneratedFrom,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
	}
	if it.Metadata != nil {
		p.Metadata = &entities.GuestInfo{Name: it.Metadata.Name, Email: it.Metadata.Email, CPF: it.Metadata.CPF, Phone: it.Metadata.Phone}
	}
	if it.Pix != nil {
		p.Pix = &entities.PixData{
			PaymentID:    it.Pix.PaymentID,
			QRCode:       it.Pix.QRCode,
			QRCodeBase64: it.Pix.QRCodeBase64,
			TicketURL:    it.Pix.TicketURL,
			ExpiresAt:    parseTime(it.Pix.ExpiresAt),
		}
	}
	return p
}
