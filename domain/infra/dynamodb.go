package infra

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mineback/postulaciones/domain/model"
)

type DynamoDB struct {
	db *dynamodb.Client
}

var submissionTableName = "postulaciones_submission"

const reviewMessageIndexName = "ReviewMessageIndex"

func NewDynamoDB() (*DynamoDB, error) {
	if os.Getenv("DYNAMO_SUBMISSION_TABLE_NAME") != "" {
		submissionTableName = os.Getenv("DYNAMO_SUBMISSION_TABLE_NAME")
	}
	var db *dynamodb.Client
	if os.Getenv("DYNAMO_LOCAL") != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO(),
			config.WithRegion("dummy"),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "dummy")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %v", err)
		}

		db = dynamodb.NewFromConfig(cfg,
			func(o *dynamodb.Options) {
				o.BaseEndpoint = aws.String("http://localhost:8000")
			},
		)
	} else {
		cfg, err := config.LoadDefaultConfig(context.TODO())
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %v", err)
		}

		db = dynamodb.NewFromConfig(cfg)
	}
	d := &DynamoDB{
		db: db,
	}
	if os.Getenv("DYNAMO_LOCAL") != "" {
		if err := d.EnsureTable(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

const (
	waitInterval = 2 * time.Second
	maxRetries   = 30
)

func (d *DynamoDB) EnsureTable() error {
	_, err := d.db.DescribeTable(context.TODO(), &dynamodb.DescribeTableInput{
		TableName: aws.String(submissionTableName),
	})
	if err == nil {
		return nil
	}

	if err := d.createTable(); err != nil {
		return err
	}

	for i := 0; i < maxRetries; i++ {
		out, err := d.db.DescribeTable(context.TODO(), &dynamodb.DescribeTableInput{
			TableName: aws.String(submissionTableName),
		})
		if err != nil {
			return fmt.Errorf("failed to describe table %s: %v", submissionTableName, err)
		}

		if out.Table.TableStatus == types.TableStatusActive {
			return nil
		}

		time.Sleep(waitInterval)
	}

	return fmt.Errorf("table %s creation timed out", submissionTableName)
}

func (d *DynamoDB) createTable() error {
	createTableInput := &dynamodb.CreateTableInput{
		TableName: aws.String(submissionTableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("user_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("review_message_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(reviewMessageIndexName),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("review_message_id"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{
					ProjectionType: types.ProjectionTypeAll,
				},
				ProvisionedThroughput: &types.ProvisionedThroughput{
					ReadCapacityUnits:  aws.Int64(5),
					WriteCapacityUnits: aws.Int64(5),
				},
			},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
	}

	_, err := d.db.CreateTable(context.TODO(), createTableInput)
	if err != nil {
		return fmt.Errorf("failed to create table %s: %v", submissionTableName, err)
	}

	return nil
}

func (d *DynamoDB) SaveSubmission(sub *model.Submission) error {
	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	decidedAt := ""
	if !sub.DecidedAt.IsZero() {
		decidedAt = sub.DecidedAt.Format(time.RFC3339)
	}
	input := &dynamodb.PutItemInput{
		TableName: aws.String(submissionTableName),
		Item: map[string]types.AttributeValue{
			"id":                &types.AttributeValueMemberS{Value: sub.ID},
			"user_id":           &types.AttributeValueMemberS{Value: sub.UserID},
			"username":          &types.AttributeValueMemberS{Value: sub.Username},
			"source":            &types.AttributeValueMemberS{Value: sub.Source},
			"status":            &types.AttributeValueMemberS{Value: sub.Status},
			"answers":           &types.AttributeValueMemberS{Value: sub.Answers},
			"review_message_id": &types.AttributeValueMemberS{Value: sub.ReviewMessageID},
			"decided_by":        &types.AttributeValueMemberS{Value: sub.DecidedBy},
			"created_at":        &types.AttributeValueMemberS{Value: createdAt.Format(time.RFC3339)},
			"decided_at":        &types.AttributeValueMemberS{Value: decidedAt},
		},
	}

	_, err := d.db.PutItem(context.TODO(), input)
	return err
}

func (d *DynamoDB) GetSubmissionByReviewMessage(messageID string) (*model.Submission, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(submissionTableName),
		IndexName:              aws.String(reviewMessageIndexName),
		KeyConditionExpression: aws.String("review_message_id = :mid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":mid": &types.AttributeValueMemberS{Value: messageID},
		},
		Limit: aws.Int32(1),
	}

	result, err := d.db.Query(context.TODO(), input)
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	sub := itemToSubmission(result.Items[0])
	return &sub, nil
}

func (d *DynamoDB) UpdateSubmissionStatus(reviewMessageID, status, decidedBy string) error {
	sub, err := d.GetSubmissionByReviewMessage(reviewMessageID)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("submission not found: reviewMessageID=%s", reviewMessageID)
	}
	sub.Status = status
	sub.DecidedBy = decidedBy
	sub.DecidedAt = time.Now()
	return d.SaveSubmission(sub)
}

func (d *DynamoDB) UpdateSubmissionReview(userID, id, reviewMessageID string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(submissionTableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
			"id":      &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: aws.String("SET review_message_id = :mid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":mid": &types.AttributeValueMemberS{Value: reviewMessageID},
		},
	}
	_, err := d.db.UpdateItem(context.TODO(), input)
	return err
}

// HasSubmitted only counts web submissions; a chat application must not
// lock the applicant out of the form. No Limit here: it would apply before
// the filter and could hide a web row behind a chat row.
func (d *DynamoDB) HasSubmitted(userID string) (bool, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(submissionTableName),
		KeyConditionExpression: aws.String("user_id = :uid"),
		FilterExpression:       aws.String("#src = :src"),
		ExpressionAttributeNames: map[string]string{
			"#src": "source",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
			":src": &types.AttributeValueMemberS{Value: "web"},
		},
	}

	result, err := d.db.Query(context.TODO(), input)
	if err != nil {
		return false, err
	}
	return len(result.Items) > 0, nil
}

func (d *DynamoDB) GetLatestSubmissions() ([]model.Submission, error) {
	// Admin-facing query over a small table, a Scan is enough.
	result, err := d.db.Scan(context.TODO(), &dynamodb.ScanInput{
		TableName: aws.String(submissionTableName),
	})
	if err != nil {
		return nil, err
	}

	var subs []model.Submission
	for _, item := range result.Items {
		subs = append(subs, itemToSubmission(item))
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	if len(subs) > latestSubmissionsLimit {
		subs = subs[:latestSubmissionsLimit]
	}
	return subs, nil
}

func itemToSubmission(item map[string]types.AttributeValue) model.Submission {
	sub := model.Submission{
		ID:              getStringValue(item, "id"),
		UserID:          getStringValue(item, "user_id"),
		Username:        getStringValue(item, "username"),
		Source:          getStringValue(item, "source"),
		Status:          getStringValue(item, "status"),
		Answers:         getStringValue(item, "answers"),
		ReviewMessageID: getStringValue(item, "review_message_id"),
		DecidedBy:       getStringValue(item, "decided_by"),
	}
	if v := getStringValue(item, "created_at"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			sub.CreatedAt = t
		}
	}
	if v := getStringValue(item, "decided_at"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			sub.DecidedAt = t
		}
	}
	return sub
}

func getStringValue(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
