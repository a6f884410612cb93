package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/CreativeUnicorns/stationprefs"
)

const defaultDynamoTable = "station-preferences"

// dynamoAPI is the subset of *dynamodb.Client used by DynamoStorage.
type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoConfig configures NewDynamoStorage.
type DynamoConfig struct {
	Table  string
	Region string
	// Endpoint overrides the service URL, e.g. for DynamoDB Local.
	Endpoint string
}

// DynamoStorage stores one item per preference. The partition key is the
// owner ("SYSTEM" or "USER#<id>") and the sort key is the preference key, so
// PutItem is the upsert.
type DynamoStorage struct {
	client dynamoAPI
	table  string
}

// NewDynamoStorage loads the default AWS configuration and creates a client.
func NewDynamoStorage(ctx context.Context, cfg DynamoConfig) (*DynamoStorage, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: loading AWS config: %w", err)
	}

	return newDynamoStorage(dynamodb.NewFromConfig(awsCfg), cfg.Table), nil
}

func newDynamoStorage(client dynamoAPI, table string) *DynamoStorage {
	if table == "" {
		table = defaultDynamoTable
	}
	return &DynamoStorage{client: client, table: table}
}

func partitionKey(scope stationprefs.Scope, ownerID string) string {
	if scope == stationprefs.ScopeUser {
		return "USER#" + ownerID
	}
	return "SYSTEM"
}

func (s *DynamoStorage) Get(ctx context.Context, key string, scope stationprefs.Scope, ownerID string) (*stationprefs.Preference, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: partitionKey(scope, ownerID)},
			"SK": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: GetItem %q: %w", key, err)
	}
	if out.Item == nil {
		return nil, stationprefs.ErrNotFound
	}
	return unmarshalPreference(out.Item)
}

func (s *DynamoStorage) Upsert(ctx context.Context, pref *stationprefs.Preference) error {
	updatedAt := pref.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"PK":        &types.AttributeValueMemberS{Value: partitionKey(pref.Scope, pref.OwnerID)},
			"SK":        &types.AttributeValueMemberS{Value: pref.Key},
			"scope":     &types.AttributeValueMemberN{Value: strconv.Itoa(int(pref.Scope))},
			"subjid":    &types.AttributeValueMemberS{Value: pref.OwnerID},
			"valstr":    &types.AttributeValueMemberS{Value: pref.Value},
			"updatedAt": &types.AttributeValueMemberS{Value: updatedAt.UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb: PutItem %q: %w", pref.Key, err)
	}
	return nil
}

func (s *DynamoStorage) List(ctx context.Context, scope stationprefs.Scope, ownerID string) ([]*stationprefs.Preference, error) {
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: partitionKey(scope, ownerID)},
		},
		ConsistentRead: aws.Bool(true),
	})

	prefs := []*stationprefs.Preference{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: Query %s: %w", scope, err)
		}
		for _, item := range page.Items {
			pref, err := unmarshalPreference(item)
			if err != nil {
				return nil, err
			}
			prefs = append(prefs, pref)
		}
	}
	return prefs, nil
}

// Close is a no-op; the AWS client holds no resources that need releasing.
func (s *DynamoStorage) Close() error {
	return nil
}

func unmarshalPreference(item map[string]types.AttributeValue) (*stationprefs.Preference, error) {
	var pref stationprefs.Preference

	key, ok := item["SK"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("%w: dynamodb: item without SK", stationprefs.ErrSerialization)
	}
	pref.Key = key.Value

	if v, ok := item["valstr"].(*types.AttributeValueMemberS); ok {
		pref.Value = v.Value
	}
	if v, ok := item["subjid"].(*types.AttributeValueMemberS); ok {
		pref.OwnerID = v.Value
	}
	if v, ok := item["scope"].(*types.AttributeValueMemberN); ok {
		n, err := strconv.Atoi(v.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: dynamodb: scope %q of %s", stationprefs.ErrSerialization, v.Value, pref.Key)
		}
		pref.Scope = stationprefs.Scope(n)
	}
	if v, ok := item["updatedAt"].(*types.AttributeValueMemberS); ok {
		t, err := time.Parse(time.RFC3339Nano, v.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: dynamodb: updatedAt of %s: %v", stationprefs.ErrSerialization, pref.Key, err)
		}
		pref.UpdatedAt = t
	}
	return &pref, nil
}
