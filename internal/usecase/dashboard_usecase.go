package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/google/uuid"
)

// DashboardUseCase считает сводку склада и выгружает отчёты.
type DashboardUseCase struct {
	productRepo  ProductRepository
	reportRepo   ReportRepository
	renderer     ReportRenderer
	normalizer   *analytics.Normalizer
	defaultTopN  int
	reportURLTTL time.Duration
	now          func() time.Time
	logger       logger.Logger
}

// NewDashboardUC создаёт usecase дашборда. reportRepo может быть nil — тогда выгрузка отчётов отключена.
func NewDashboardUC(
	productRepo ProductRepository,
	reportRepo ReportRepository,
	renderer ReportRenderer,
	normalizer *analytics.Normalizer,
	defaultTopN int,
	reportURLTTL time.Duration,
	logger logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:  productRepo,
		reportRepo:   reportRepo,
		renderer:     renderer,
		normalizer:   normalizer,
		defaultTopN:  defaultTopN,
		reportURLTTL: reportURLTTL,
		now:          time.Now,
		logger:       logger,
	}
}

// Dashboard считает сводку по свежей выборке. topN <= 0 означает значение по умолчанию.
func (d *DashboardUseCase) Dashboard(ctx context.Context, topN int) *DashboardView {
	const op = "DashboardUseCase.Dashboard"

	view := &DashboardView{
		Summary:   analytics.Summarize(nil, 0),
		NoneLabel: d.normalizer.NoneLabel(),
		Notices:   []Notice{},
	}

	rows, err := d.fetchRows(ctx)
	if err != nil {
		d.logger.Warnf("%v", e.Wrap(op, err))
		view.Notices = append(view.Notices, fetchErrorNotice("dashboard data"))
		return view
	}

	view.Summary = analytics.Summarize(rows, d.topN(topN))
	view.ProductCount = len(rows)
	if len(rows) == 0 {
		view.Notices = append(view.Notices, infoNotice("the warehouse is empty"))
	}

	return view
}

// ExportReport рендерит строки склада и сводку в файл, сохраняет его в S3
// и возвращает ссылку на скачивание.
func (d *DashboardUseCase) ExportReport(ctx context.Context, topN int) (*ReportRes, error) {
	const op = "DashboardUseCase.ExportReport"

	if d.reportRepo == nil {
		return nil, e.Wrap(op, e.ErrReportsDisabled)
	}

	rows, err := d.fetchRows(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	body, err := d.renderer.Render(rows, analytics.Summarize(rows, d.topN(topN)))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	createdAt := d.now().UTC()
	objectKey := fmt.Sprintf("reports/%s-%s.%s", createdAt.Format("20060102T150405Z"), uuid.NewString(), d.renderer.Extension())

	key, err := d.reportRepo.Upload(ctx, domain.NewReport(objectKey, d.renderer.ContentType(), body, createdAt))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	url, err := d.reportRepo.PresignedURL(ctx, key, d.reportURLTTL)
	if err != nil {
		// Без ссылки отчёт никому не доступен.
		if delErr := d.reportRepo.Delete(ctx, key); delErr != nil {
			d.logger.Warnf("%s: failed to remove orphaned report %s: %v", op, key, delErr)
		}
		return nil, e.Wrap(op, err)
	}

	d.logger.Infof("report exported: key=%s rows=%d", key, len(rows))

	return &ReportRes{
		ObjectKey: key,
		URL:       url,
		ExpiresAt: createdAt.Add(d.reportURLTTL),
	}, nil
}

func (d *DashboardUseCase) fetchRows(ctx context.Context) ([]analytics.Row, error) {
	raw, err := d.productRepo.ListJoined(ctx)
	if err != nil {
		return nil, err
	}
	return d.normalizer.NormalizeAll(raw), nil
}

func (d *DashboardUseCase) topN(n int) int {
	if n <= 0 {
		return d.defaultTopN
	}
	return n
}
