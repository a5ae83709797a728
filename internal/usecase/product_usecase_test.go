package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	store    *memStore
	events   *recordingEvents
	observer *recordingObserver
	uc       *ProductUseCase
}

func newProductFixture(noneLabel string) *productFixture {
	store := newMemStore()
	f := &productFixture{
		store:    store,
		events:   &recordingEvents{},
		observer: &recordingObserver{},
	}
	f.uc = NewProductUC(
		memProductRepo{s: store},
		memCategoryRepo{s: store},
		&memTxManager{s: store},
		analytics.NewNormalizer(noneLabel),
		f.events,
		f.observer,
		logger.Nop{},
	)
	return f
}

func nullPrice(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// --- Tests: ProductsView ---

func TestProductsView_NormalizesRows(t *testing.T) {
	f := newProductFixture("Brak")
	tools := f.store.addCategory("Tools")
	f.store.addProduct("Hammer", int64Ptr(2), "10.50", &tools)
	f.store.addProduct("Loose", nil, "", nil)

	view := f.uc.ProductsView(context.Background())

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Tools", view.Rows[0].Category)
	assert.True(t, decimal.RequireFromString("21").Equal(view.Rows[0].Value))

	assert.Equal(t, "Brak", view.Rows[1].Category)
	assert.Equal(t, int64(0), view.Rows[1].Quantity)
	assert.True(t, view.Rows[1].UnitPrice.IsZero())
	assert.True(t, view.Rows[1].Value.IsZero())

	assert.Equal(t, int64(2), view.TotalQuantity)
	assert.Empty(t, view.Notices)
}

func TestProductsView_Notices(t *testing.T) {
	testCases := []struct {
		name          string
		setup         func(s *memStore)
		expectedLevel NoticeLevel
	}{
		{name: "Empty warehouse", setup: func(*memStore) {}, expectedLevel: NoticeInfo},
		{name: "Fetch failure", setup: func(s *memStore) { s.listErr = errStoreDown }, expectedLevel: NoticeError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProductFixture(analytics.DefaultNoneLabel)
			tc.setup(f.store)

			view := f.uc.ProductsView(context.Background())

			assert.NotNil(t, view.Rows)
			assert.Empty(t, view.Rows)
			assert.Zero(t, view.TotalQuantity)
			require.Len(t, view.Notices, 1)
			assert.Equal(t, tc.expectedLevel, view.Notices[0].Level)
		})
	}
}

// --- Tests: ProductForm / DeleteOptions ---

func TestProductForm(t *testing.T) {
	t.Run("No categories warns", func(t *testing.T) {
		f := newProductFixture(analytics.DefaultNoneLabel)

		view := f.uc.ProductForm(context.Background())

		assert.Empty(t, view.Categories)
		require.Len(t, view.Notices, 1)
		assert.Equal(t, NoticeWarning, view.Notices[0].Level)
	})

	t.Run("Lists categories", func(t *testing.T) {
		f := newProductFixture(analytics.DefaultNoneLabel)
		id := f.store.addCategory("Tools")

		view := f.uc.ProductForm(context.Background())

		assert.Equal(t, []CategoryOption{{ID: id, Name: "Tools"}}, view.Categories)
		assert.Empty(t, view.Notices)
	})
}

func TestDeleteOptions(t *testing.T) {
	f := newProductFixture(analytics.DefaultNoneLabel)
	id := f.store.addProduct("Hammer", nil, "", nil)

	view := f.uc.DeleteOptions(context.Background())

	require.Len(t, view.Options, 1)
	assert.Equal(t, id, view.Options[0].ID)
	assert.Equal(t, "Hammer (ID: 1)", view.Options[0].Label)
}

// --- Tests: CreateProduct ---

func TestCreateProduct(t *testing.T) {
	f := newProductFixture(analytics.DefaultNoneLabel)
	catID := f.store.addCategory("Tools")

	view, err := f.uc.CreateProduct(context.Background(), &CreateProductReq{
		Name:       "Hammer",
		Quantity:   int64Ptr(3),
		UnitPrice:  nullPrice("4.25"),
		CategoryID: &catID,
	})
	require.NoError(t, err)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Hammer", view.Rows[0].Name)
	assert.Equal(t, "Tools", view.Rows[0].Category)
	assert.True(t, decimal.RequireFromString("12.75").Equal(view.Rows[0].Value))
	assert.Equal(t, NoticeSuccess, view.Notices[0].Level)

	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	assert.Equal(t, ProductCreated, ev.Type)
	assert.Equal(t, "4.25", ev.Fields["unit_price"])
	assert.Equal(t, catID, ev.Fields["category_id"])
}

func TestCreateProduct_StoresNullFieldsAsGiven(t *testing.T) {
	f := newProductFixture(analytics.DefaultNoneLabel)
	catID := f.store.addCategory("Tools")

	_, err := f.uc.CreateProduct(context.Background(), &CreateProductReq{Name: "Mystery", CategoryID: &catID})
	require.NoError(t, err)

	require.Len(t, f.store.products, 1)
	for _, p := range f.store.products {
		assert.Nil(t, p.Quantity)
		assert.False(t, p.UnitPrice.Valid)
	}
}

func TestCreateProduct_UnknownCategoryCreatesNothing(t *testing.T) {
	f := newProductFixture(analytics.DefaultNoneLabel)

	view, err := f.uc.CreateProduct(context.Background(), &CreateProductReq{
		Name:       "Ghost",
		Quantity:   int64Ptr(1),
		CategoryID: int64Ptr(999),
	})

	assert.ErrorIs(t, err, e.ErrCategoryNotFound)
	assert.Nil(t, view)
	assert.Empty(t, f.uc.ProductsView(context.Background()).Rows)
	assert.Empty(t, f.events.events)
}

func TestCreateProduct_Validation(t *testing.T) {
	catID := int64(1)

	testCases := []struct {
		name        string
		req         *CreateProductReq
		expectedErr error
	}{
		{
			name:        "Blank name",
			req:         &CreateProductReq{Name: " ", CategoryID: &catID},
			expectedErr: e.ErrProductNameRequired,
		},
		{
			name:        "Missing category",
			req:         &CreateProductReq{Name: "Hammer"},
			expectedErr: e.ErrCategoryRequired,
		},
		{
			name:        "Negative quantity",
			req:         &CreateProductReq{Name: "Hammer", Quantity: int64Ptr(-1), CategoryID: &catID},
			expectedErr: e.ErrNegativeQuantity,
		},
		{
			name:        "Negative price",
			req:         &CreateProductReq{Name: "Hammer", UnitPrice: nullPrice("-0.01"), CategoryID: &catID},
			expectedErr: e.ErrNegativePrice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProductFixture(analytics.DefaultNoneLabel)
			f.store.addCategory("Tools")

			_, err := f.uc.CreateProduct(context.Background(), tc.req)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.True(t, e.IsValidation(err))
			assert.Empty(t, f.store.products)
			assert.Empty(t, f.observer.ops)
		})
	}
}

// --- Tests: DeleteProduct ---

func TestDeleteProduct(t *testing.T) {
	testCases := []struct {
		name          string
		req           func(id int64) *DeleteProductReq
		expectedErr   error
		expectedCount int
	}{
		{
			name:          "Confirmed delete",
			req:           func(id int64) *DeleteProductReq { return &DeleteProductReq{ID: id, Confirmed: true} },
			expectedCount: 0,
		},
		{
			name:          "Not confirmed",
			req:           func(id int64) *DeleteProductReq { return &DeleteProductReq{ID: id} },
			expectedErr:   e.ErrDeleteNotConfirmed,
			expectedCount: 1,
		},
		{
			name:          "Unknown product",
			req:           func(id int64) *DeleteProductReq { return &DeleteProductReq{ID: id + 100, Confirmed: true} },
			expectedErr:   e.ErrProductNotFound,
			expectedCount: 1,
		},
		{
			name:          "Invalid id",
			req:           func(int64) *DeleteProductReq { return &DeleteProductReq{ID: 0, Confirmed: true} },
			expectedErr:   e.ErrInvalidID,
			expectedCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProductFixture(analytics.DefaultNoneLabel)
			id := f.store.addProduct("Hammer", int64Ptr(1), "1", nil)

			view, err := f.uc.DeleteProduct(context.Background(), tc.req(id))

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, view)
			} else {
				require.NoError(t, err)
				assert.Empty(t, view.Rows)
				require.Len(t, f.events.events, 1)
				assert.Equal(t, ProductDeleted, f.events.events[0].Type)
			}
			assert.Len(t, f.store.products, tc.expectedCount)
		})
	}
}
