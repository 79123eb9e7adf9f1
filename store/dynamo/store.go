// Package dynamo stores the snapshot as a single DynamoDB item.
package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Item attribute names. Slot is the table's partition key.
const (
	attrSlot       = "Slot"
	attrRotationID = "RotationID"
	attrPayload    = "Payload"
	attrUpdatedAt  = "UpdatedAt"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Store implements store.Store on DynamoDB. PutItem replaces a whole item
// in one operation.
type Store struct {
	ddb   DynamoDBAPI
	table string
	slot  string
}

// Open builds a client from the default AWS configuration chain.
func Open(ctx context.Context, table, region string) (*Store, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("rotawatch/dynamo: load aws config: %w", err)
	}
	return New(dynamodb.NewFromConfig(cfg), table), nil
}

// New uses an existing client.
func New(ddb DynamoDBAPI, table string) *Store {
	return &Store{ddb: ddb, table: table, slot: store.DefaultSlot}
}

func (s *Store) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrSlot: &types.AttributeValueMemberS{Value: s.slot},
	}
}

// Load reads the snapshot item with a strongly consistent read.
func (s *Store) Load(ctx context.Context) (*rotation.Snapshot, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("rotawatch/dynamo: get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, rotawatch.ErrSnapshotNotFound
	}

	payload, ok := out.Item[attrPayload].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("rotawatch/dynamo: %w: %s is not a string", rotation.ErrMalformedSnapshot, attrPayload)
	}

	var snap rotation.Snapshot
	if err := json.Unmarshal([]byte(payload.Value), &snap); err != nil {
		return nil, fmt.Errorf("rotawatch/dynamo: %w", err)
	}
	return &snap, nil
}

// Save puts the snapshot item.
func (s *Store) Save(ctx context.Context, snap *rotation.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("rotawatch/dynamo: marshal: %w", err)
	}

	item := s.key()
	item[attrRotationID] = &types.AttributeValueMemberS{Value: snap.RotationID}
	item[attrPayload] = &types.AttributeValueMemberS{Value: string(payload)}
	item[attrUpdatedAt] = &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)}

	if _, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("rotawatch/dynamo: put item: %w", err)
	}
	return nil
}

// Ping checks that the table exists and is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}); err != nil {
		return fmt.Errorf("rotawatch/dynamo: describe table %s: %w", s.table, err)
	}
	return nil
}

// Close is a no-op; the AWS client holds no connections that need closing.
func (s *Store) Close() error { return nil }
