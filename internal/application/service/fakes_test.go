package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/pkg/pagination"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{}}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	out := map[uuid.UUID]*entity.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: map[uuid.UUID]*entity.Customer{}}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email != nil && strings.EqualFold(*c.Email, email) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// fakeQuoteRepo stores quotes in memory. createDelay makes Create block
// until the delay passes or ctx ends.
type fakeQuoteRepo struct {
	mu          sync.Mutex
	quotes      map[uuid.UUID]*entity.Quote
	createDelay time.Duration
	createErr   error
	createCalls int
}

func newFakeQuoteRepo(quotes ...*entity.Quote) *fakeQuoteRepo {
	r := &fakeQuoteRepo{quotes: map[uuid.UUID]*entity.Quote{}}
	for _, q := range quotes {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		r.quotes[q.ID] = q
	}
	return r
}

func (r *fakeQuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	r.mu.Lock()
	r.createCalls++
	r.mu.Unlock()

	if r.createDelay > 0 {
		select {
		case <-time.After(r.createDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[q.ID] = q
	return nil
}

func (r *fakeQuoteRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls
}

func (r *fakeQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuoteRepo) GetByReference(ctx context.Context, reference string) (*entity.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotes {
		if q.Reference == reference {
			cp := *q
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuoteRepo) List(ctx context.Context, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	quotes, _ := r.ListByStatuses(ctx, enum.QuoteStatuses)
	return quotes, int64(len(quotes)), nil
}

func (r *fakeQuoteRepo) ListByStatuses(ctx context.Context, statuses []enum.QuoteStatus) ([]entity.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[enum.QuoteStatus]bool{}
	for _, s := range statuses {
		want[s] = true
	}
	var out []entity.Quote
	for _, q := range r.quotes {
		if want[q.Status] {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

func (r *fakeQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[id].Status = status
	return nil
}

func (r *fakeQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.quotes, id)
	return nil
}

type fakeConfigRepo struct {
	cfg   *entity.FinancialConfig
	saves int
}

func (r *fakeConfigRepo) Get(ctx context.Context) (*entity.FinancialConfig, error) {
	if r.cfg == nil {
		return nil, nil
	}
	cp := *r.cfg
	return &cp, nil
}

func (r *fakeConfigRepo) Save(ctx context.Context, cfg *entity.FinancialConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cp := *cfg
	r.cfg = &cp
	r.saves++
	return nil
}
