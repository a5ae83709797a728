package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ReportRepo хранит выгруженные отчёты в бакете MinIO.
type ReportRepo struct {
	mc     *minio.Client
	bucket string
}

func NewReportRepo(mc *minio.Client, bucket string) *ReportRepo {
	return &ReportRepo{
		mc:     mc,
		bucket: bucket,
	}
}

// Upload загружает отчёт и возвращает ключ объекта.
func (r *ReportRepo) Upload(ctx context.Context, report *domain.Report) (string, error) {
	info, err := r.mc.PutObject(ctx, r.bucket, report.ObjectKey, bytes.NewReader(report.Body), int64(len(report.Body)), minio.PutObjectOptions{
		ContentType: report.ContentType,
		UserMetadata: map[string]string{
			"created-at": report.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// PresignedURL возвращает временную ссылку на скачивание, браузер сохранит файл под его именем.
func (r *ReportRepo) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))

	u, err := r.mc.PresignedGetObject(ctx, r.bucket, key, ttl, params)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (r *ReportRepo) Delete(ctx context.Context, key string) error {
	if err := r.mc.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
