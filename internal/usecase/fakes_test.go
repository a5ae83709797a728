package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/domain"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// --- In-memory store with foreign key semantics ---

type memStore struct {
	nextID     int64
	categories map[int64]domain.Category
	products   map[int64]domain.Product

	listErr   error
	createErr error
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[int64]domain.Category{},
		products:   map[int64]domain.Product{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		nextID:     s.nextID,
		categories: make(map[int64]domain.Category, len(s.categories)),
		products:   make(map[int64]domain.Product, len(s.products)),
	}
	for k, v := range s.categories {
		cp.categories[k] = v
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.nextID = from.nextID
	s.categories = from.categories
	s.products = from.products
}

func (s *memStore) addCategory(name string) int64 {
	id := s.id()
	s.categories[id] = domain.Category{ID: id, Name: name}
	return id
}

func (s *memStore) addProduct(name string, quantity *int64, unitPrice string, categoryID *int64) int64 {
	id := s.id()
	p := domain.Product{ID: id, Name: name, Quantity: quantity, CategoryID: categoryID}
	if unitPrice != "" {
		p.UnitPrice = decimal.NewNullDecimal(decimal.RequireFromString(unitPrice))
	}
	s.products[id] = p
	return id
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type memCategoryRepo struct{ s *memStore }

func (r memCategoryRepo) List(context.Context) ([]domain.Category, error) {
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	out := make([]domain.Category, 0, len(r.s.categories))
	for _, id := range sortedKeys(r.s.categories) {
		out = append(out, r.s.categories[id])
	}
	return out, nil
}

func (r memCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	created := *c
	created.ID = r.s.id()
	created.CreatedAt = time.Now()
	r.s.categories[created.ID] = created
	return &created, nil
}

func (r memCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.categories[id]; !ok {
		return e.ErrCategoryNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return e.ErrCategoryInUse
		}
	}
	delete(r.s.categories, id)
	return nil
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) ListJoined(context.Context) ([]analytics.RawProduct, error) {
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	out := make([]analytics.RawProduct, 0, len(r.s.products))
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		raw := analytics.RawProduct{ID: p.ID, Name: p.Name, Quantity: p.Quantity, UnitPrice: p.UnitPrice}
		if p.CategoryID != nil {
			if c, ok := r.s.categories[*p.CategoryID]; ok {
				name := c.Name
				raw.Category = &analytics.RawCategory{Name: &name}
			}
		}
		out = append(out, raw)
	}
	return out, nil
}

func (r memProductRepo) ListOptions(context.Context) ([]domain.ProductOption, error) {
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	out := make([]domain.ProductOption, 0, len(r.s.products))
	for _, id := range sortedKeys(r.s.products) {
		out = append(out, domain.ProductOption{ID: id, Name: r.s.products[id].Name})
	}
	return out, nil
}

func (r memProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	if p.CategoryID != nil {
		if _, ok := r.s.categories[*p.CategoryID]; !ok {
			return nil, e.ErrCategoryNotFound
		}
	}
	created := *p
	created.ID = r.s.id()
	r.s.products[created.ID] = created
	return &created, nil
}

func (r memProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

// --- Transaction manager that rolls back the store on error ---

type memTxManager struct {
	s     *memStore
	calls int
}

func (m *memTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	before := m.s.snapshot()
	if err := fn(ctx); err != nil {
		m.s.restore(before)
		return err
	}
	return nil
}

// --- Event recorder ---

type recordingEvents struct {
	events []*ChangeEvent
	err    error
}

func (r *recordingEvents) Record(_ context.Context, ev *ChangeEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

// --- Write observer ---

type recordingObserver struct {
	ops  []string
	errs []error
}

func (o *recordingObserver) ObserveWrite(op string, err error) {
	o.ops = append(o.ops, op)
	o.errs = append(o.errs, err)
}

// --- Report storage and renderer ---

type memReportRepo struct {
	uploaded   []*domain.Report
	deleted    []string
	uploadErr  error
	presignErr error
}

func (m *memReportRepo) Upload(_ context.Context, r *domain.Report) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploaded = append(m.uploaded, r)
	return r.ObjectKey, nil
}

func (m *memReportRepo) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if m.presignErr != nil {
		return "", m.presignErr
	}
	return "https://storage.local/" + key, nil
}

func (m *memReportRepo) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

type stubRenderer struct {
	rows    []analytics.Row
	summary analytics.Summary
}

func (s *stubRenderer) Render(rows []analytics.Row, summary analytics.Summary) ([]byte, error) {
	s.rows = rows
	s.summary = summary
	return []byte("report"), nil
}

func (s *stubRenderer) ContentType() string { return "text/csv" }
func (s *stubRenderer) Extension() string   { return "csv" }

var errStoreDown = errors.New("store is down")

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}
