package pgdb

import (
	"context"

	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// List возвращает все категории, упорядоченные по id.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY id;
	`

	rows, err := tr.QuerierFromCtx(ctx, c.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Description, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *c.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Create сохраняет категорию. Имена не обязаны быть уникальными.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories(name, description) VALUES ($1, $2)
		RETURNING id, name, description, created_at;
	`

	model := c.conv.ToModel(category)
	if err := tr.QuerierFromCtx(ctx, c.pool).QueryRow(ctx, query, model.Name, model.Description).
		Scan(
			&model.ID, &model.Name, &model.Description, &model.CreatedAt,
		); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// Delete удаляет категорию. Ссылки из products не каскадируются:
// база отклоняет удаление, и возвращается e.ErrCategoryInUse.
func (c *CategoryRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1;`

	tag, err := tr.QuerierFromCtx(ctx, c.pool).Exec(ctx, query, id)
	if err != nil {
		if postgresForeignKey(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrCategoryInUse)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
	}

	return nil
}
