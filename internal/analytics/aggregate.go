package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal — сумма количества и стоимости по одной категории.
type CategoryTotal struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// Summary — все показатели дашборда, посчитанные за один проход.
type Summary struct {
	TotalValue    decimal.Decimal     `json:"total_value"`
	TotalQuantity int64               `json:"total_quantity"`
	AveragePrice  decimal.NullDecimal `json:"average_price"`
	ByCategory    []CategoryTotal     `json:"by_category"`
	Top           []Row               `json:"top"`
}

func TotalValue(rows []Row) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Value)
	}
	return total
}

func TotalQuantity(rows []Row) int64 {
	var total int64
	for _, r := range rows {
		total += r.Quantity
	}
	return total
}

// AveragePrice возвращает среднюю цену за единицу. Для пустого набора ok == false.
func AveragePrice(rows []Row) (avg decimal.Decimal, ok bool) {
	if len(rows) == 0 {
		return decimal.Zero, false
	}

	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.UnitPrice)
	}
	return sum.Div(decimal.NewFromInt(int64(len(rows)))), true
}

// ByCategory группирует строки по метке категории в порядке первого появления.
func ByCategory(rows []Row) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)

	for _, r := range rows {
		i, ok := index[r.Category]
		if !ok {
			i = len(totals)
			index[r.Category] = i
			totals = append(totals, CategoryTotal{Category: r.Category, Value: decimal.Zero})
		}
		totals[i].Quantity += r.Quantity
		totals[i].Value = totals[i].Value.Add(r.Value)
	}

	return totals
}

// TopN возвращает n строк с наибольшей стоимостью по убыванию.
// При равной стоимости сохраняется исходный порядок. Входной срез не изменяется.
func TopN(rows []Row, n int) []Row {
	if n <= 0 {
		return []Row{}
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value.GreaterThan(sorted[j].Value)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func Summarize(rows []Row, topN int) Summary {
	avg, ok := AveragePrice(rows)

	return Summary{
		TotalValue:    TotalValue(rows),
		TotalQuantity: TotalQuantity(rows),
		AveragePrice:  decimal.NullDecimal{Decimal: avg, Valid: ok},
		ByCategory:    ByCategory(rows),
		Top:           TopN(rows, topN),
	}
}
