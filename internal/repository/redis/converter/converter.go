package converter

import "github.com/blogbox-store/go-backend/internal/domain"

// ProductConverter преобразует товары между domain и моделью кэша Redis.
// Временные поля в кэш сознательно не попадают: витрине нужны только
// идентичность и цены.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

func (ProductConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:        entity.ID,
		Name:      entity.Name,
		Price:     entity.Price,
		SalePrice: entity.SalePrice,
		IsOnSale:  entity.IsOnSale,
	}
}

func (ProductConverter) ToEntity(model *ProductRedisModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		SalePrice: model.SalePrice,
		IsOnSale:  model.IsOnSale,
	}
}

func (c ProductConverter) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	result := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}

	return result
}
