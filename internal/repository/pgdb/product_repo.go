package pgdb

import (
	"context"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// ListJoined возвращает все продукты вместе с названием категории.
// Продукты без категории тоже попадают в выборку (LEFT JOIN), NULL-поля не заменяются.
func (p *ProductRepo) ListJoined(ctx context.Context) ([]analytics.RawProduct, error) {
	query := `
		SELECT pr.id, pr.name, pr.quantity, pr.unit_price, pr.category_id, cat.name
		FROM products pr
		LEFT JOIN categories cat ON pr.category_id = cat.id
		ORDER BY pr.id;
	`

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]analytics.RawProduct, 0)
	for rows.Next() {
		var model converter.JoinedProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Quantity, &model.UnitPrice, &model.CategoryID, &model.CategoryName,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, p.conv.ToRaw(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// ListOptions возвращает пары id/название для формы удаления.
func (p *ProductRepo) ListOptions(ctx context.Context) ([]domain.ProductOption, error) {
	query := `SELECT id, name FROM products ORDER BY id;`

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.ProductOption, 0)
	for rows.Next() {
		var option domain.ProductOption
		if err := rows.Scan(&option.ID, &option.Name); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, option)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Create сохраняет продукт как есть. Ссылка на несуществующую категорию
// отклоняется внешним ключом и возвращается как e.ErrCategoryNotFound.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, quantity, unit_price, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, quantity, unit_price, category_id, created_at;
	`

	model := p.conv.ToModel(product)
	err := tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query, model.Name, model.Quantity, model.UnitPrice, model.CategoryID).
		Scan(
			&model.ID, &model.Name, &model.Quantity, &model.UnitPrice, &model.CategoryID, &model.CreatedAt,
		)
	if err != nil {
		if postgresForeignKey(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Delete удаляет продукт по id. Если строки нет, возвращается e.ErrProductNotFound.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1;`

	tag, err := tr.QuerierFromCtx(ctx, p.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}
