package ratelimit

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// DynamoAPI is the slice of the DynamoDB client the counter uses
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// counterItem is one (client, window) row. Table layout:
//
//	pk        S  partition key, "<blake2b(client key)>#<window unix>"
//	count     N  requests seen in the window
//	expiresAt N  TTL attribute; rows outlive their window by one extra window
type counterItem struct {
	PK        string `dynamodbav:"pk"`
	Count     int    `dynamodbav:"count"`
	ExpiresAt int64  `dynamodbav:"expiresAt"`
}

var _ httprate.LimitCounter = (*DynamoCounter)(nil)

// DynamoCounter is an httprate.LimitCounter shared by every Lambda container through one
// DynamoDB table. Client keys are hashed before they are written, so raw IPs never reach
// the table.
//
// httprate calls the counter without a context, so each call gets its own timeout. Errors
// are logged and swallowed: a DynamoDB outage lets traffic through rather than blocking
// every visitor.
type DynamoCounter struct {
	client       DynamoAPI
	table        string
	windowLength time.Duration
	timeout      time.Duration
	logger       *zap.Logger
}

// NewDynamoCounter creates a counter backed by table
func NewDynamoCounter(client DynamoAPI, table string, logger *zap.Logger) *DynamoCounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DynamoCounter{
		client:       client,
		table:        table,
		windowLength: time.Minute,
		timeout:      2 * time.Second,
		logger:       logger,
	}
}

func (c *DynamoCounter) Config(requestLimit int, windowLength time.Duration) {
	c.windowLength = windowLength
}

func (c *DynamoCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *DynamoCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	expiresAt := currentWindow.Add(2 * c.windowLength).Unix()
	_, err := c.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: c.itemKey(key, currentWindow)},
		},
		UpdateExpression: aws.String("ADD #count :amount SET #ttl = if_not_exists(#ttl, :ttl)"),
		ExpressionAttributeNames: map[string]string{
			"#count": "count",
			"#ttl":   "expiresAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount": &types.AttributeValueMemberN{Value: strconv.Itoa(amount)},
			":ttl":    &types.AttributeValueMemberN{Value: strconv.FormatInt(expiresAt, 10)},
		},
	})
	if err != nil {
		c.logger.Warn("rate limit increment failed", zap.String("table", c.table), zap.Error(err))
	}
	return nil
}

func (c *DynamoCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	curr, err := c.count(ctx, c.itemKey(key, currentWindow))
	if err != nil {
		c.logger.Warn("rate limit lookup failed", zap.String("table", c.table), zap.Error(err))
		return 0, 0, nil
	}
	prev, err := c.count(ctx, c.itemKey(key, previousWindow))
	if err != nil {
		c.logger.Warn("rate limit lookup failed", zap.String("table", c.table), zap.Error(err))
		return curr, 0, nil
	}
	return curr, prev, nil
}

func (c *DynamoCounter) count(ctx context.Context, pk string) (int, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("get counter %s: %w", pk, err)
	}
	if len(out.Item) == 0 {
		return 0, nil
	}

	var item counterItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, fmt.Errorf("decode counter %s: %w", pk, err)
	}
	return item.Count, nil
}

func (c *DynamoCounter) itemKey(key string, window time.Time) string {
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16]) + "#" + strconv.FormatInt(window.Unix(), 10)
}
