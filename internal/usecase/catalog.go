package usecase

import (
	"context"
	"fmt"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"golang.org/x/sync/singleflight"
)

// Catalog is the read/CRUD surface over the remote product and category
// records. Product lists go through a cache; concurrent misses for the list
// are collapsed with singleflight so the remote service sees one call.
type Catalog struct {
	store CatalogStore
	cache ProductCache
	sfg   singleflight.Group
}

func NewCatalog(store CatalogStore, cache ProductCache) *Catalog {
	return &Catalog{store: store, cache: cache}
}

func (c *Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("products", func() (interface{}, error) {
		if c.cache != nil {
			if products, ok := c.cache.GetProducts(ctx); ok {
				return products, nil
			}
		}
		products, err := c.store.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		if c.cache != nil {
			_ = c.cache.SetProducts(ctx, products)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *Catalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := c.store.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (c *Catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	list, err := c.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (c *Catalog) invalidate(ctx context.Context) {
	if c.cache != nil {
		_ = c.cache.Invalidate(ctx)
	}
}

func (c *Catalog) CreateProduct(ctx context.Context, p domain.Product) error {
	if err := c.store.CreateProduct(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog) UpdateProduct(ctx context.Context, p domain.Product) error {
	if err := c.store.UpdateProduct(ctx, p); err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	if err := c.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog) CreateCategory(ctx context.Context, cat domain.Category) error {
	if err := c.store.CreateCategory(ctx, cat); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (c *Catalog) UpdateCategory(ctx context.Context, cat domain.Category) error {
	if err := c.store.UpdateCategory(ctx, cat); err != nil {
		return fmt.Errorf("update category %s: %w", cat.ID, err)
	}
	return nil
}

func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	if err := c.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}
