// Package report сериализует данные склада в файлы для выгрузки.
package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// CSVRenderer пишет отчёт из четырёх блоков: таблица продуктов, сводка, разбивка по категориям
// и топ по стоимости. Блоки разделены пустой строкой.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (CSVRenderer) ContentType() string { return "text/csv" }

func (CSVRenderer) Extension() string { return "csv" }

func (CSVRenderer) Render(rows []analytics.Row, summary analytics.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"id", "name", "category", "quantity", "unit_price", "value"}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(r.ID, 10),
			cell(r.Name),
			cell(r.Category),
			strconv.FormatInt(r.Quantity, 10),
			r.UnitPrice.StringFixed(2),
			r.Value.StringFixed(2),
		})
	}

	average := ""
	if summary.AveragePrice.Valid {
		average = summary.AveragePrice.Decimal.StringFixed(2)
	}
	records = append(records,
		[]string{},
		[]string{"metric", "value"},
		[]string{"total_value", summary.TotalValue.StringFixed(2)},
		[]string{"total_quantity", strconv.FormatInt(summary.TotalQuantity, 10)},
		[]string{"average_price", average},
		[]string{},
		[]string{"category", "quantity", "value"},
	)
	for _, c := range summary.ByCategory {
		records = append(records, []string{cell(c.Category), strconv.FormatInt(c.Quantity, 10), c.Value.StringFixed(2)})
	}

	records = append(records, []string{}, []string{"rank", "id", "name", "category", "value"})
	for i, r := range summary.Top {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(r.ID, 10),
			cell(r.Name),
			cell(r.Category),
			r.Value.StringFixed(2),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return buf.Bytes(), nil
}

// cell экранирует пользовательский текст, который табличный редактор принял бы за формулу.
func cell(s string) string {
	if s != "" && strings.ContainsAny(s[:1], "=+-@\t\r") {
		return "'" + s
	}
	return s
}
