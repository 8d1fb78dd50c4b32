package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/matcheat/internal/common"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// S3Gateway implements Gateway on top of aws-sdk-go-v2.
type S3Gateway struct {
	settings Settings
	client   *s3.Client
	presign  *s3.PresignClient
}

func NewS3Gateway(ctx context.Context, settings Settings) (*S3Gateway, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(settings.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			settings.AccessKeyID,
			settings.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%w: load config: %w", common.ErrStorageGateway, err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if settings.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Gateway{
		settings: settings,
		client:   client,
		presign:  newS3PresignClient(client),
	}, nil
}

// PresignUpload signs a PUT for key that is valid for UploadExpiry and makes
// the stored object publicly readable.
func (g *S3Gateway) PresignUpload(ctx context.Context, key, contentType string) (*UploadURL, error) {
	req, err := presignPutObject(g.presign, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.settings.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}, s3.WithPresignExpires(UploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("%w: presign put: %w", common.ErrStorageGateway, err)
	}

	return &UploadURL{
		SignedRequest: req.URL,
		URL:           g.settings.PublicURL(key),
	}, nil
}

func (g *S3Gateway) DeleteObject(ctx context.Context, key string) error {
	_, err := deleteObject(g.client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.settings.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %q: %w", common.ErrStorageGateway, key, err)
	}
	return nil
}

func (g *S3Gateway) KeyFromURL(url string) string {
	return keyFromURL(g.settings, url)
}
