package store

import (
	"context"
	"time"

	perrors "github.com/p-blackswan/storefront/internal/errors"
)

// Category groups products on the storefront.
type Category struct {
	ID        string    `json:"id" yaml:"-"`
	Name      string    `json:"name" yaml:"name"`
	Slug      string    `json:"slug" yaml:"slug"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// Product is a catalog entry.
type Product struct {
	ID          string    `json:"id" yaml:"-"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Images      []string  `json:"images" yaml:"images"`
	Price       string    `json:"price" yaml:"price"`
	Category    string    `json:"category" yaml:"category"`
	Inclusions  []string  `json:"inclusions" yaml:"inclusions"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
}

// Image returns the first product image, or "" when there is none.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Inquiry is a contact form submission.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductFilter narrows ListProducts.
type ProductFilter struct {
	// Category restricts results to a category slug when non-empty.
	Category string
}

// --- Categories ---

// ListCategories returns all categories, newest first.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.list(ctx)
	return rows, perrors.NewStoreError("fetch categories", err)
}

// GetCategory returns the category with the given id or ErrNotFound.
func (s *Store) GetCategory(ctx context.Context, id string) (Category, error) {
	c, err := s.categories.get(ctx, id)
	return c, perrors.NewStoreError("fetch category", err)
}

// CreateCategory assigns an id and creation time to c and stores it.
func (s *Store) CreateCategory(ctx context.Context, c *Category) error {
	c.ID = s.newID()
	c.CreatedAt = s.now().UTC()
	return perrors.NewStoreError("create category", s.categories.insert(ctx, c.ID, c.CreatedAt, *c))
}

// UpdateCategory replaces the stored category with the same id.
func (s *Store) UpdateCategory(ctx context.Context, c Category) error {
	return perrors.NewStoreError("update category", s.categories.update(ctx, c.ID, c))
}

// DeleteCategory removes a category. Deleting a missing id is not an error.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return perrors.NewStoreError("delete category", s.categories.delete(ctx, id))
}

// UpsertCategoryBySlug updates the category sharing c's slug or creates it.
func (s *Store) UpsertCategoryBySlug(ctx context.Context, c Category) (Category, error) {
	all, err := s.ListCategories(ctx)
	if err != nil {
		return Category{}, err
	}
	for _, existing := range all {
		if existing.Slug == c.Slug {
			c.ID, c.CreatedAt = existing.ID, existing.CreatedAt
			return c, s.UpdateCategory(ctx, c)
		}
	}
	return c, s.CreateCategory(ctx, &c)
}

// --- Products ---

// ListProducts returns products matching f, newest first.
func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	rows, err := s.products.list(ctx)
	if err != nil {
		return nil, perrors.NewStoreError("fetch products", err)
	}
	if f.Category == "" {
		return rows, nil
	}
	filtered := make([]Product, 0, len(rows))
	for _, p := range rows {
		if p.Category == f.Category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetProduct returns the product with the given id or ErrNotFound.
func (s *Store) GetProduct(ctx context.Context, id string) (Product, error) {
	p, err := s.products.get(ctx, id)
	return p, perrors.NewStoreError("fetch product", err)
}

// CreateProduct assigns an id and creation time to p and stores it.
func (s *Store) CreateProduct(ctx context.Context, p *Product) error {
	p.ID = s.newID()
	p.CreatedAt = s.now().UTC()
	return perrors.NewStoreError("create product", s.products.insert(ctx, p.ID, p.CreatedAt, *p))
}

// UpdateProduct replaces the stored product with the same id.
func (s *Store) UpdateProduct(ctx context.Context, p Product) error {
	return perrors.NewStoreError("update product", s.products.update(ctx, p.ID, p))
}

// DeleteProduct removes a product. Deleting a missing id is not an error.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return perrors.NewStoreError("delete product", s.products.delete(ctx, id))
}

// UpsertProductByTitle updates the product sharing p's title or creates it.
func (s *Store) UpsertProductByTitle(ctx context.Context, p Product) (Product, error) {
	all, err := s.ListProducts(ctx, ProductFilter{})
	if err != nil {
		return Product{}, err
	}
	for _, existing := range all {
		if existing.Title == p.Title {
			p.ID, p.CreatedAt = existing.ID, existing.CreatedAt
			return p, s.UpdateProduct(ctx, p)
		}
	}
	return p, s.CreateProduct(ctx, &p)
}

// --- Inquiries ---

// ListInquiries returns all inquiries, newest first.
func (s *Store) ListInquiries(ctx context.Context) ([]Inquiry, error) {
	rows, err := s.inquiries.list(ctx)
	return rows, perrors.NewStoreError("fetch inquiries", err)
}

// CreateInquiry assigns an id and creation time to i and stores it.
func (s *Store) CreateInquiry(ctx context.Context, i *Inquiry) error {
	i.ID = s.newID()
	i.CreatedAt = s.now().UTC()
	return perrors.NewStoreError("create inquiry", s.inquiries.insert(ctx, i.ID, i.CreatedAt, *i))
}
