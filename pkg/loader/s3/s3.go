package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/singleflight"

	"coachnet/internal/util"
	"coachnet/pkg/loader"
)

const maxFetchTries = 3

// S3TableFileLoader is a TableFileLoader implementation that loads dataset
// tables from an S3 bucket, for deployments where the scraper publishes its
// exports to object storage instead of the local filesystem.
type S3TableFileLoader struct {
	bucket string
	client *s3.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewS3TableFileLoaderWithClient creates a new S3TableFileLoader using an
// existing s3.Client, e.g. one preconfigured with custom credentials.
func NewS3TableFileLoaderWithClient(bucket string, client *s3.Client) *S3TableFileLoader {
	return &S3TableFileLoader{
		bucket: bucket,
		client: client,
		cache:  make(map[string][]byte),
	}
}

// NewS3TableFileLoaderParams defines the configuration for creating a new
// S3TableFileLoader. Endpoint allows overriding the S3 endpoint for
// S3-compatible storage like MinIO.
type NewS3TableFileLoaderParams struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3TableFileLoader creates a new S3TableFileLoader with static
// credentials and the given endpoint/region.
func NewS3TableFileLoader(ctx context.Context, params NewS3TableFileLoaderParams) (*S3TableFileLoader, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return NewS3TableFileLoaderWithClient(params.Bucket, client), nil
}

// GetFileBytes fetches the object from S3. Results are cached; fetches are
// retried because object storage is the one transient-failure surface the
// dataset load has.
func (l *S3TableFileLoader) GetFileBytes(ctx context.Context, file loader.TableFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := util.RetryWithContext(ctx, maxFetchTries, func(ctx context.Context) ([]byte, error) {
			return l.fetch(ctx, file.FilePath)
		})
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = content
		l.cacheMu.Unlock()

		return content, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (l *S3TableFileLoader) fetch(ctx context.Context, key string) ([]byte, error) {
	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q from S3: %w", key, err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, result.Body); err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", key, err)
	}

	return buf.Bytes(), nil
}
