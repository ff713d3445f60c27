package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	MaxUploadSize  = 5 << 20
	MaxUploadFiles = 5
)

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// ImageStorage stores an uploaded image under key and returns its public URL.
type ImageStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type UploadedImage struct {
	URL          string `json:"imageUrl"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

type UploadService struct {
	storage ImageStorage
}

func NewUploadService(storage ImageStorage) *UploadService {
	return &UploadService{storage: storage}
}

// SaveImage validates and stores one uploaded file under a fresh name.
func (s *UploadService) SaveImage(ctx context.Context, fh *multipart.FileHeader) (*UploadedImage, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return nil, invalid("only jpg, jpeg, png and gif images are allowed")
	}
	if fh.Size > MaxUploadSize {
		return nil, invalid("%s exceeds the 5MB limit", fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	// Sniff the content so a renamed non-image is rejected.
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	if sniffed := http.DetectContentType(head[:n]); !strings.HasPrefix(sniffed, "image/") {
		return nil, invalid("%s is not an image", fh.Filename)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	name := uuid.NewString() + ext
	url, err := s.storage.Put(ctx, name, contentType, f, fh.Size)
	if err != nil {
		return nil, err
	}
	return &UploadedImage{URL: url, Filename: name, OriginalName: fh.Filename, Size: fh.Size}, nil
}

// LocalStorage writes images to a directory served under PublicPrefix.
type LocalStorage struct {
	Dir          string
	PublicPrefix string
}

func NewLocalStorage(dir, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{Dir: dir, PublicPrefix: publicPrefix}, nil
}

func (l *LocalStorage) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	dst, err := os.Create(filepath.Join(l.Dir, filepath.Base(key)))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, body); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return path.Join(l.PublicPrefix, filepath.Base(key)), nil
}

// S3Storage uploads images to a bucket.
type S3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Storage(ctx context.Context, bucket, region string) (*S3Storage, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Storage{client: s3.NewFromConfig(cfg), bucket: bucket, region: cfg.Region}, nil
}

func (s *S3Storage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	key = "uploads/" + key
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
