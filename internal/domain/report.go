package domain

import "time"

// Report описывает выгрузку складского отчёта, которая хранится в S3
type Report struct {
	ObjectKey   string
	ContentType string
	Body        []byte
	CreatedAt   time.Time
}

func NewReport(objectKey string, contentType string, body []byte, createdAt time.Time) *Report {
	return &Report{
		ObjectKey:   objectKey,
		ContentType: contentType,
		Body:        body,
		CreatedAt:   createdAt,
	}
}
