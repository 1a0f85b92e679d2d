package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	// PresetPrefix is the key prefix every preset is stored under
	PresetPrefix = "presets/"
	// PresetExt is appended to preset names to form keys
	PresetExt = ".bass"
	// PresetContentType is the content type presets are stored with
	PresetContentType = "text/csv"
)

var (
	// ErrPresetNotFound is returned when no object exists for a preset name
	ErrPresetNotFound = errors.New("preset not found")
	// ErrInvalidPresetName is returned for names that cannot form a key
	ErrInvalidPresetName = errors.New("invalid preset name")
)

var presetName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,99}$`)

// Object describes a stored preset
type Object struct {
	Name         string
	Key          string
	Size         int64
	LastModified time.Time
}

// PresetStore handles preset file storage operations
type PresetStore interface {
	List(ctx context.Context) ([]Object, error)
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) (Object, error)
	Delete(ctx context.Context, name string) error
	GenerateDownloadURL(ctx context.Context, name string) (string, error)
}

type s3PresetStore struct {
	client    *s3.Client
	bucket    string
	urlExpiry time.Duration
}

// S3Config holds configuration for the S3 preset store
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// DownloadURLExpiry is how long a pre-signed preset URL stays valid
const DownloadURLExpiry = 15 * time.Minute

// NewS3PresetStore creates a preset store backed by S3, or by MinIO when an
// endpoint is configured.
func NewS3PresetStore(ctx context.Context, cfg S3Config) (PresetStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	region := cfg.Region
	if cfg.Endpoint != "" {
		region = "us-east-1" // MinIO doesn't care about region
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "http://" + endpoint
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true // MinIO requires path-style URLs
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &s3PresetStore{
		client:    client,
		bucket:    cfg.Bucket,
		urlExpiry: DownloadURLExpiry,
	}, nil
}

// PresetKey maps a preset name to its object key. A trailing ".bass" on the
// name is accepted and not doubled.
func PresetKey(name string) (string, error) {
	name = strings.TrimSuffix(name, PresetExt)
	if !presetName.MatchString(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPresetName, name)
	}
	return PresetPrefix + name + PresetExt, nil
}

// PresetName is the inverse of PresetKey
func PresetName(key string) string {
	return strings.TrimSuffix(path.Base(key), PresetExt)
}

// List returns every preset in the bucket sorted by name
func (s *s3PresetStore) List(ctx context.Context) ([]Object, error) {
	var out []Object

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(PresetPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list presets: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, PresetExt) {
				continue
			}
			out = append(out, Object{
				Name:         PresetName(key),
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get downloads a preset
func (s *s3PresetStore) Get(ctx context.Context, name string) ([]byte, error) {
	key, err := PresetKey(name)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
		}
		return nil, fmt.Errorf("failed to download preset: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	return data, nil
}

// Put uploads a preset, replacing any existing one with the same name
func (s *s3PresetStore) Put(ctx context.Context, name string, data []byte) (Object, error) {
	key, err := PresetKey(name)
	if err != nil {
		return Object{}, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(PresetContentType),
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to upload preset: %w", err)
	}

	return Object{
		Name:         PresetName(key),
		Key:          key,
		Size:         int64(len(data)),
		LastModified: time.Now(),
	}, nil
}

// Delete removes a preset. Deleting a missing preset is not an error.
func (s *s3PresetStore) Delete(ctx context.Context, name string) error {
	key, err := PresetKey(name)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	return nil
}

// GenerateDownloadURL generates a pre-signed URL for downloading a preset
func (s *s3PresetStore) GenerateDownloadURL(ctx context.Context, name string) (string, error) {
	key, err := PresetKey(name)
	if err != nil {
		return "", err
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:              aws.String(s.bucket),
		Key:                 aws.String(key),
		ResponseContentType: aws.String(PresetContentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.urlExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}

	return request.URL, nil
}
