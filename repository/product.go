package repository

import (
	"context"
	"strings"

	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// likeEscaper neutralises LIKE wildcards; backslash is the default ESCAPE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *ProductRepository) filtered(ctx context.Context, q ProductQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Product{})

	if q.Search != "" {
		like := "%" + likeEscaper.Replace(q.Search) + "%"
		tx = tx.Where("products.name ILIKE ? OR products.description ILIKE ?", like, like)
	}
	if q.CategoryID != nil {
		tx = tx.Where("products.category_id = ?", *q.CategoryID)
	}
	if q.CategorySlug != "" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", q.CategorySlug)
	}
	if q.MinPrice != nil {
		tx = tx.Where("products.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("products.price < ?", *q.MaxPrice)
	}
	if q.Color != "" {
		tx = tx.Where("? = ANY(products.colors)", q.Color)
	}
	if q.Size != "" {
		tx = tx.Where("? = ANY(products.sizes)", q.Size)
	}
	if q.MinRating != nil {
		tx = tx.Where("products.rating >= ?", *q.MinRating)
	}
	if q.InStock {
		tx = tx.Where("products.stock > 0")
	}
	return tx
}

func (r *ProductRepository) page(ctx context.Context, q ProductQuery) *gorm.DB {
	return r.filtered(ctx, q).
		Preload("Category").
		Order(q.Sort.orderClause()).
		Offset(q.Offset()).
		Limit(q.Limit)
}

// List returns one page of products matching q and the total match count.
func (r *ProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := []models.Product{}
	if err := r.page(ctx, q).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// GetMany loads the products with the given ids, keyed by id.
func (r *ProductRepository) GetMany(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]models.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(p)
	return translate(res.Error)
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
