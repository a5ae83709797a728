package http

import (
	"net/http"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUC
	logger           logger.Logger
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUC, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase, logger: logger}
}

// dashboard
//
//	@Summary		Сводка склада
//	@Description	Общая стоимость, количество, средняя цена, стоимость по категориям и топ продуктов по стоимости.
//	@Tags			dashboard
//	@Produce		json
//	@Param			top	query		int	false	"Размер топа (1..100)"
//	@Success		200	{object}	usecase.DashboardView
//	@Failure		400	{object}	ErrorResponse
//	@Router			/dashboard [get]
func (d *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	topN, err := parseTopN(r)
	if err != nil {
		d.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, d.dashboardUsecase.Dashboard(r.Context(), topN))
}

// exportReport
//
//	@Summary		Выгрузка отчёта
//	@Description	Формирует CSV-отчёт, кладёт его в S3 и возвращает временную ссылку на скачивание.
//	@Tags			dashboard
//	@Produce		json
//	@Param			top	query		int	false	"Размер топа (1..100)"
//	@Success		201	{object}	usecase.ReportRes
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse	"Хранилище отчётов не настроено"
//	@Router			/dashboard/reports [post]
func (d *DashboardHandler) exportReport(w http.ResponseWriter, r *http.Request) {
	topN, err := parseTopN(r)
	if err != nil {
		d.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := d.dashboardUsecase.ExportReport(r.Context(), topN)
	if err != nil {
		if e.IsClientError(err) {
			d.logger.Warnf("export report: %s", err.Error())
		} else {
			d.logger.Errorf(err, "export report")
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}
