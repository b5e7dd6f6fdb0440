package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"mutual/internal/utils"
)

var log = logging.Logger("storage")

// Storage хранилище файлов-доказательств по сделкам.
type Storage interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	GetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Service хранилище на MinIO/S3.
type Service struct {
	client *minio.Client
	bucket string
}

// New создаёт сервис хранения. Без endpoint используется хранилище в памяти.
func New(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (Storage, error) {
	if endpoint == "" {
		log.Warn("MINIO_ENDPOINT not set, evidence is kept in memory")
		return NewMemory(), nil
	}
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating minio client")
	}
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, errors.Wrap(err, "checking bucket")
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "creating bucket %s", bucket)
		}
	}
	return &Service{client: cli, bucket: bucket}, nil
}

// Upload загружает объект в хранилище.
func (s *Service) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "uploading %s", objectName)
	}
	return objectName, nil
}

// GetURL генерирует временный URL для объекта.
func (s *Service) GetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", errors.Wrapf(err, "presigning %s", objectName)
	}
	return u.String(), nil
}

// EvidenceKey ключ объекта для файла сделки: deals/<deal>/<id>-<имя>.
func EvidenceKey(dealID, fileName string) (string, error) {
	id, err := utils.GenerateNanoID()
	if err != nil {
		return "", err
	}
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return path.Join("deals", dealID, id+"-"+name), nil
}

var _ Storage = (*Service)(nil)
