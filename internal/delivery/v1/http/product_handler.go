package http

import (
	"encoding/json"
	"net/http"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/internal/usecase"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type addProductRequest struct {
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	SalePrice json.Number `json:"salePrice"`
	IsOnSale  bool        `json:"isOnSale"`
}

type productResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"salePrice"`
	IsOnSale  bool    `json:"isOnSale"`
}

func newProductResponse(product *domain.Product) *productResponse {
	return &productResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     centsToAmount(product.Price),
		SalePrice: centsToAmount(product.SalePrice),
		IsOnSale:  product.IsOnSale,
	}
}

// registerNewProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает или обновляет товар каталога
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		addProductRequest	true	"Товар"
//	@Success		201		{object}	productResponse		"Созданный товар"
//	@Failure		422		{object}	ErrorResponse		"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) registerNewProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d invalid product body: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	price, err := parsePriceToCents(req.Price.String())
	if err != nil {
		WriteError(w, err)
		return
	}

	// Цена распродажи необязательна, если товар не на распродаже
	var salePrice int64
	if req.SalePrice != "" {
		salePrice, err = parsePriceToCents(req.SalePrice.String())
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	product, err := p.productUsecase.RegisterNewProduct(r.Context(), usecase.NewAddNewProductReq(req.Name, price, salePrice, req.IsOnSale))
	if err != nil {
		p.logger.Warnf("register product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newProductResponse(product))
}

// getProducts
//
//	@Summary	Каталог товаров
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	productResponse	"Список товаров"
//	@Router		/products [get]
func (p *ProductHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.GetProducts(r.Context())
	if err != nil {
		p.logger.Warnf("get products failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	responses := make([]productResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *newProductResponse(&products[i]))
	}

	WriteSuccess(w, http.StatusOK, responses)
}
