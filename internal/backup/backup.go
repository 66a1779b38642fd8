package backup

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/berth-dev/berth/internal/logging"
	"github.com/berth-dev/berth/internal/manifest"
)

var log = logging.For("backup")

// Uploader pushes service volume snapshots to an S3 bucket.
type Uploader struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewUploader builds an Uploader from the ambient AWS configuration
// (environment, shared config files, instance role).
func NewUploader(ctx context.Context, bucket, prefix string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &Uploader{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

// ArchiveKey returns the object key for one service snapshot.
func ArchiveKey(prefix, project, service string, ts time.Time) string {
	key := fmt.Sprintf("%s/%s-%s.tar.gz", project, service, ts.UTC().Format("20060102-150405"))
	if prefix != "" {
		key = path.Join(prefix, key)
	}
	return key
}

// Snapshot archives the host side of the service's volume bindings and
// uploads the archive. The archive is streamed straight into the multipart
// upload, nothing is staged on disk.
func (u *Uploader) Snapshot(ctx context.Context, projectDir, project string, svc manifest.Service) (string, error) {
	hostPaths := make([]string, 0, len(svc.Volumes))
	for _, vol := range svc.Volumes {
		hostPath, _, err := manifest.SplitVolume(vol)
		if err != nil {
			return "", fmt.Errorf("service %s: %w", svc.Name, err)
		}
		hostPaths = append(hostPaths, hostPath)
	}
	if len(hostPaths) == 0 {
		return "", fmt.Errorf("service %q declares no volumes to back up", svc.Name)
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(writeArchive(pw, projectDir, hostPaths))
	}()

	key := ArchiveKey(u.prefix, project, svc.Name, time.Now())
	log.WithField("service", svc.Name).WithField("key", key).Info("uploading snapshot")

	if _, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   pr,
	}); err != nil {
		return "", fmt.Errorf("failed to upload snapshot for %s: %w", svc.Name, err)
	}
	return key, nil
}
