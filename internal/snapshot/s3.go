package snapshot

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// s3API is the slice of the S3 client the archive uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Archive keeps immutable gzip-compressed JSON copies of the dataset in S3,
// one object per export.
type Archive struct {
	client s3API
	bucket string
	prefix string
}

// NewArchive creates an S3-backed dataset archive using the default AWS
// credential chain.
func NewArchive(ctx context.Context, bucket, prefix, region string) (*Archive, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Archive{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

// Export uploads a dataset snapshot and returns the object key.
func (a *Archive) Export(ctx context.Context, ds *domain.Dataset) (string, error) {
	data, err := json.Marshal(ds)
	if err != nil {
		return "", fmt.Errorf("serialize dataset: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return "", fmt.Errorf("compress dataset: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("compress dataset: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.json.gz",
		a.prefix, time.Now().UTC().Format("2006-01-02"), uuid.New().String())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"compressed":  "true",
			"exported_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload dataset: %w", err)
	}

	log.Printf("[snapshot] archived dataset to s3://%s/%s (%d bytes)", a.bucket, key, buf.Len())
	return key, nil
}

// Load fetches and decodes an archived dataset by object key.
func (a *Archive) Load(ctx context.Context, key string) (*domain.Dataset, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download dataset: %w", err)
	}
	defer out.Body.Close()

	gz, err := gzip.NewReader(out.Body)
	if err != nil {
		return nil, fmt.Errorf("decompress dataset: %w", err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var ds domain.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("deserialize dataset: %w", err)
	}
	return &ds, nil
}
