package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// QueryUseCase consultas de solo lectura sobre órdenes y devoluciones.
type QueryUseCase struct {
	salesRepo      repository.SalesTransactionRepository
	itemRepo       repository.SalesTransactionItemRepository
	returnRepo     repository.SalesReturnRepository
	returnItemRepo repository.SalesReturnItemRepository
	customerRepo   repository.CustomerRepository
}

func NewQueryUseCase(
	salesRepo repository.SalesTransactionRepository,
	itemRepo repository.SalesTransactionItemRepository,
	returnRepo repository.SalesReturnRepository,
	returnItemRepo repository.SalesReturnItemRepository,
	customerRepo repository.CustomerRepository,
) *QueryUseCase {
	return &QueryUseCase{
		salesRepo:      salesRepo,
		itemRepo:       itemRepo,
		returnRepo:     returnRepo,
		returnItemRepo: returnItemRepo,
		customerRepo:   customerRepo,
	}
}

// GetTransaction busca por ID interno y, si no hay match, por el ID legible (SLS-...).
func (uc *QueryUseCase) GetTransaction(ctx context.Context, id string) (*dto.SalesTransactionResponse, error) {
	tx, err := uc.salesRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		tx, err = uc.salesRepo.GetByTransactionID(id)
		if err != nil {
			return nil, err
		}
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}

	items, err := uc.itemRepo.GetByTransaction(tx.ID)
	if err != nil {
		return nil, err
	}

	customerName := ""
	if customer, err := uc.customerRepo.GetByID(tx.CustomerID); err == nil && customer != nil {
		customerName = customer.Name
	}
	return toTransactionResponse(tx, customerName, items), nil
}

// ListTransactions lista órdenes con filtros y paginación.
func (uc *QueryUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) (*dto.SalesTransactionListResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	txs, err := uc.salesRepo.List(filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesTransactionListResponse{
		Items: make([]dto.SalesTransactionResponse, 0, len(txs)),
		Page: dto.PageResponse{
			Limit:  filter.Limit,
			Offset: filter.Offset,
			Total:  len(txs),
		},
	}
	for _, tx := range txs {
		resp.Items = append(resp.Items, *toTransactionResponse(tx, "", nil))
	}
	return resp, nil
}

// GetReturn devuelve una devolución con sus ítems.
func (uc *QueryUseCase) GetReturn(ctx context.Context, id string) (*dto.SalesReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, fmt.Errorf("%w: devolución %s", domain.ErrNotFound, id)
	}
	items, err := uc.returnItemRepo.GetByReturn(ret.ID)
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret, items), nil
}

// ListReturnsByTransaction devoluciones de una orden.
func (uc *QueryUseCase) ListReturnsByTransaction(ctx context.Context, transactionID string) ([]*dto.SalesReturnResponse, error) {
	rets, err := uc.returnRepo.ListByTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SalesReturnResponse, 0, len(rets))
	for _, ret := range rets {
		items, err := uc.returnItemRepo.GetByReturn(ret.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toReturnResponse(ret, items))
	}
	return out, nil
}

// OutstandingBalance saldo total pendiente de un cliente.
func (uc *QueryUseCase) OutstandingBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return decimal.Zero, err
	}
	if customer == nil {
		return decimal.Zero, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customerID)
	}
	return uc.salesRepo.GetCustomerOutstandingBalance(customerID)
}

// SalesSummary agregados de ventas para un período.
func (uc *QueryUseCase) SalesSummary(ctx context.Context, from, to time.Time) (*dto.SalesSummaryResponse, error) {
	summary, err := uc.salesRepo.GetSalesSummary(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:          from,
		To:            to,
		TotalOrders:   summary.TotalOrders,
		TotalRevenue:  summary.TotalRevenue,
		TotalTax:      summary.TotalTax,
		TotalDiscount: summary.TotalDiscount,
		TotalPaid:     summary.TotalPaid,
	}, nil
}

// ReturnSummary agregados de devoluciones para un período.
func (uc *QueryUseCase) ReturnSummary(ctx context.Context, from, to time.Time) (*dto.ReturnSummaryResponse, error) {
	summary, err := uc.returnRepo.GetReturnSummary(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.ReturnSummaryResponse{
		From:          from,
		To:            to,
		TotalReturns:  summary.TotalReturns,
		TotalRefunded: summary.TotalRefunded,
		TotalFees:     summary.TotalFees,
	}, nil
}

// OverdueTransactions órdenes impagas con fecha de vencimiento superada. Se
// filtra por fecha y no por el estado persistido: OVERDUE solo se escribe al
// registrar un pago, y una orden vencida sin abonos sigue como PENDING en BD.
func (uc *QueryUseCase) OverdueTransactions(ctx context.Context, limit, offset int) (*dto.SalesTransactionListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	txs, err := uc.salesRepo.ListOverdue(time.Now(), limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.SalesTransactionListResponse{
		Items: make([]dto.SalesTransactionResponse, 0, len(txs)),
		Page: dto.PageResponse{
			Limit:  limit,
			Offset: offset,
			Total:  len(txs),
		},
	}
	for _, tx := range txs {
		resp.Items = append(resp.Items, *toTransactionResponse(tx, "", nil))
	}
	return resp, nil
}

// StatusFilter valida los filtros opcionales de status que llegan de la capa HTTP.
func StatusFilter(status, paymentStatus string) (sales.Status, sales.PaymentStatus, error) {
	var st sales.Status
	var pst sales.PaymentStatus
	if status != "" {
		st = sales.Status(status)
		if !st.IsValid() {
			return "", "", fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, status)
		}
	}
	if paymentStatus != "" {
		pst = sales.PaymentStatus(paymentStatus)
		if !pst.IsValid() {
			return "", "", fmt.Errorf("%w: estado de pago desconocido %q", domain.ErrInvalidInput, paymentStatus)
		}
	}
	return st, pst, nil
}
