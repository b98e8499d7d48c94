package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/internal/usecase"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type submitOrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type submitOrderRequest struct {
	CustomerEmail string                   `json:"customerEmail"`
	Items         []submitOrderItemRequest `json:"items"`
}

type updateOrderStatusRequest struct {
	Status int `json:"status"`
}

type orderItemResponse struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"productId"`
	ProductName     string  `json:"productName"`
	Quantity        int32   `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

type orderResponse struct {
	ID            int64               `json:"id"`
	CustomerEmail string              `json:"customerEmail"`
	TotalAmount   float64             `json:"totalAmount"`
	Status        int                 `json:"status"`
	CreatedDate   time.Time           `json:"createdDate"`
	CompletedDate *time.Time          `json:"completedDate"`
	OrderItems    []orderItemResponse `json:"orderItems"`
}

func newOrderResponse(order *domain.Order) *orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: centsToAmount(item.PriceAtPurchase),
		})
	}

	return &orderResponse{
		ID:            order.ID,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   centsToAmount(order.TotalAmount),
		Status:        statusToWire(order.Status),
		CreatedDate:   order.CreatedDate,
		CompletedDate: order.CompletedDate,
		OrderItems:    items,
	}
}

// submitOrder
//
//	@Summary		Оформление заказа
//	@Description	Создает заказ: валидирует корзину, фиксирует цены и названия товаров на момент покупки
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		submitOrderRequest	true	"Корзина и email покупателя"
//	@Success		201		{object}	orderResponse		"Созданный заказ"
//	@Failure		422		{object}	ErrorResponse		"Ошибка валидации"
//	@Router			/orders [post]
func (h *OrderHandler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d invalid order body: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	items := make([]usecase.SubmitOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.SubmitOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderUsecase.SubmitOrder(r.Context(), usecase.NewSubmitOrderReq(req.CustomerEmail, items))
	if err != nil {
		h.logger.Warnf("submit order failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newOrderResponse(order))
}

// getOrder
//
//	@Summary	Получение заказа
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int				true	"ID заказа"
//	@Success	200	{object}	orderResponse	"Заказ"
//	@Failure	404	{object}	ErrorResponse	"Заказ не найден"
//	@Router		/orders/{id} [get]
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orderUsecase.GetOrder(r.Context(), id)
	if err != nil {
		h.logger.Warnf("get order %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(order))
}

// deleteOrder
//
//	@Summary	Удаление заказа
//	@Tags		orders
//	@Param		id	path	int	true	"ID заказа"
//	@Success	204	"Заказ удален вместе с позициями"
//	@Failure	404	{object}	ErrorResponse	"Заказ не найден"
//	@Router		/orders/{id} [delete]
func (h *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.orderUsecase.DeleteOrder(r.Context(), id); err != nil {
		h.logger.Warnf("delete order %d failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateOrderStatus
//
//	@Summary		Смена статуса заказа
//	@Description	Переводит заказ в новый статус; дата завершения фиксируется один раз
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"ID заказа"
//	@Param			status	body		updateOrderStatusRequest	true	"Новый статус (0 - pending, 1 - completed, 2 - failed)"
//	@Success		200		{object}	orderResponse				"Обновленный заказ"
//	@Failure		404		{object}	ErrorResponse				"Заказ не найден"
//	@Failure		422		{object}	ErrorResponse				"Неизвестный статус"
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseOrderID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	status, err := wireToStatus(req.Status)
	if err != nil {
		WriteError(w, e.Validation("status", err))
		return
	}

	order, err := h.orderUsecase.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		h.logger.Warnf("update order %d status failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(order))
}

func parseOrderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, e.ErrStatusBadRequest
	}
	return id, nil
}
