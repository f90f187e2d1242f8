package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Secrets is the credential bundle the bot needs at startup
type Secrets struct {
	SlackBotToken      string `json:"slack_bot_token"`
	SlackSigningSecret string `json:"slack_signing_secret"`
}

// SecretStore defines the interface for loading the bot's secrets
type SecretStore interface {
	GetSecrets(ctx context.Context) (Secrets, error)
}

// objectGetter is the subset of *s3.Client the store uses
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3SecretStore implements SecretStore by reading one JSON object from S3
type S3SecretStore struct {
	client     objectGetter
	bucketName string
	key        string
}

// NewS3SecretStore creates a new S3SecretStore instance
func NewS3SecretStore(client *s3.Client, bucketName, key string) *S3SecretStore {
	return &S3SecretStore{
		client:     client,
		bucketName: bucketName,
		key:        key,
	}
}

// NewDefaultS3SecretStore builds the S3 client from the default AWS
// credential chain (the Lambda execution role when deployed).
func NewDefaultS3SecretStore(ctx context.Context, bucketName, key string) (*S3SecretStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3SecretStore(s3.NewFromConfig(cfg), bucketName, key), nil
}

// GetSecrets downloads and decodes the secret bundle
func (s *S3SecretStore) GetSecrets(ctx context.Context) (Secrets, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return Secrets{}, fmt.Errorf("failed to get secrets from s3://%s/%s: %w", s.bucketName, s.key, err)
	}
	defer result.Body.Close()

	var secrets Secrets
	if err := json.NewDecoder(result.Body).Decode(&secrets); err != nil {
		return Secrets{}, fmt.Errorf("failed to decode secrets: %w", err)
	}

	return secrets, nil
}
