package usecase

import "context"

// CategoryUC — обработчики взаимодействий на экране категорий.
type CategoryUC interface {
	CategoriesView(ctx context.Context) *CategoriesView
	CreateCategory(ctx context.Context, req *CreateCategoryReq) (*CategoriesView, error)
	DeleteCategory(ctx context.Context, id int64) (*CategoriesView, error)
}

// ProductUC — обработчики взаимодействий на экране склада.
type ProductUC interface {
	ProductsView(ctx context.Context) *ProductsView
	ProductForm(ctx context.Context) *ProductFormView
	DeleteOptions(ctx context.Context) *DeleteOptionsView
	CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductsView, error)
	DeleteProduct(ctx context.Context, req *DeleteProductReq) (*ProductsView, error)
}

// DashboardUC — сводные показатели и выгрузка отчётов.
type DashboardUC interface {
	Dashboard(ctx context.Context, topN int) *DashboardView
	ExportReport(ctx context.Context, topN int) (*ReportRes, error)
}
