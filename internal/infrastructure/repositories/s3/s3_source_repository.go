package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/schollz/progressbar/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	"github.com/rios0rios0/modrelease/internal/infrastructure/repositories/filesystem"
)

const (
	progressWidth    = 40
	progressThrottle = 65 * time.Millisecond
	progressSpinner  = 14
)

// ObjectClient is the subset of the S3 API the source needs.
type ObjectClient interface {
	GetObject(
		ctx context.Context,
		params *awsS3.GetObjectInput,
		optFns ...func(*awsS3.Options),
	) (*awsS3.GetObjectOutput, error)
}

// SourceRepository fetches pre-built dependency zips from the dependency bucket.
type SourceRepository struct {
	settings *entities.Settings
	progress io.Writer

	clientOnce sync.Once
	client     ObjectClient
	clientErr  error
}

// NewSourceRepository creates a source whose S3 client is built from the
// default AWS credential chain on first use.
func NewSourceRepository(settings *entities.Settings) *SourceRepository {
	return &SourceRepository{settings: settings, progress: os.Stderr}
}

// NewSourceRepositoryWithClient creates a source using the given client.
// Progress output is discarded.
func NewSourceRepositoryWithClient(settings *entities.Settings, client ObjectClient) *SourceRepository {
	it := &SourceRepository{settings: settings, progress: io.Discard, client: client}
	it.clientOnce.Do(func() {})
	return it
}

func (it *SourceRepository) Kind() entities.SourceKind { return entities.SourceObjectStorage }

// Fetch downloads {name}_{version}.zip into scratchPath and extracts it into buildPath.
func (it *SourceRepository) Fetch(
	ctx context.Context,
	spec entities.DependencySpec,
	scratchPath, buildPath string,
) error {
	timeout := it.settings.Timeouts.Transfer
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bucket := it.settings.Storage.Bucket
	key := path.Join(it.settings.Storage.Prefix, spec.ObjectName())
	logger.Infof("[s3] Pulling s3://%s/%s", bucket, key)

	client, err := it.objectClient(ctx)
	if err != nil {
		return transferError(spec, "configure client", err, timeout)
	}

	output, err := client.GetObject(ctx, &awsS3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return transferError(spec, "download", err, timeout)
	}
	defer output.Body.Close()

	target := filepath.Join(scratchPath, spec.ObjectName())
	if downloadErr := it.writeObject(target, output); downloadErr != nil {
		return transferError(spec, "download", downloadErr, timeout)
	}

	if extractErr := filesystem.ExtractZip(target, buildPath); extractErr != nil {
		return transferError(spec, "extract", extractErr, timeout)
	}
	logger.Debugf("[s3] Extracted %s into %s", target, buildPath)
	return nil
}

func (it *SourceRepository) writeObject(target string, output *awsS3.GetObjectOutput) error {
	file, err := os.Create(target)
	if err != nil {
		return err
	}

	size := int64(-1)
	if output.ContentLength != nil {
		size = *output.ContentLength
	}
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetDescription("Downloading "+filepath.Base(target)),
		progressbar.OptionSetWriter(it.progress),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(progressWidth),
		progressbar.OptionThrottle(progressThrottle),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprint(it.progress, "\n")
		}),
		progressbar.OptionSpinnerType(progressSpinner),
		progressbar.OptionFullWidth(),
	)

	if _, copyErr := io.Copy(io.MultiWriter(file, bar), output.Body); copyErr != nil {
		_ = file.Close()
		return copyErr
	}
	_ = bar.Finish()
	return file.Close()
}

func (it *SourceRepository) objectClient(ctx context.Context) (ObjectClient, error) {
	it.clientOnce.Do(func() {
		cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(it.settings.Storage.Region))
		if err != nil {
			it.clientErr = fmt.Errorf("failed to load AWS configuration: %w", err)
			return
		}
		endpoint := it.settings.Storage.Endpoint
		it.client = awsS3.NewFromConfig(cfg, func(o *awsS3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			}
		})
	})
	return it.client, it.clientErr
}

func transferError(spec entities.DependencySpec, op string, err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", timeout, err)
	}
	return &entities.TransferError{Dependency: spec.Name, Op: op, Err: err}
}
