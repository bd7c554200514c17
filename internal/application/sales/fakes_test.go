package sales_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/inventory"
	appsales "github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// memDB base de datos en memoria compartida por todos los repos fake. Los
// Get* devuelven copias para imitar la semántica de lectura de la BD real:
// mutar la entidad leída no cambia lo almacenado hasta llamar Update.
type memDB struct {
	customers  map[string]*entity.Customer
	invItems   map[string]*entity.InventoryItem
	warehouses map[string]*entity.Warehouse

	orders     map[string]*entity.SalesTransaction
	orderItems map[string]*entity.SalesTransactionItem

	returns     map[string]*entity.SalesReturn
	returnItems map[string]*entity.SalesReturnItem

	stock     map[string]*entity.Stock // key: itemID + "|" + warehouseID
	movements []*entity.StockMovement

	lastSeq map[string]string
}

func newMemDB() *memDB {
	return &memDB{
		customers:   map[string]*entity.Customer{},
		invItems:    map[string]*entity.InventoryItem{},
		warehouses:  map[string]*entity.Warehouse{},
		orders:      map[string]*entity.SalesTransaction{},
		orderItems:  map[string]*entity.SalesTransactionItem{},
		returns:     map[string]*entity.SalesReturn{},
		returnItems: map[string]*entity.SalesReturnItem{},
		stock:       map[string]*entity.Stock{},
		lastSeq:     map[string]string{},
	}
}

func stockKey(itemID, warehouseID string) string { return itemID + "|" + warehouseID }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (db *memDB) setStock(itemID, warehouseID string, quantity int) {
	db.stock[stockKey(itemID, warehouseID)] = &entity.Stock{
		ItemID: itemID, WarehouseID: warehouseID, Quantity: quantity,
	}
}

func (db *memDB) stockQty(itemID, warehouseID string) int {
	if s, ok := db.stock[stockKey(itemID, warehouseID)]; ok {
		return s.Quantity
	}
	return 0
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ db *memDB }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { cp := *c; r.db.customers[c.ID] = &cp; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.db.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error                    { cp := *c; r.db.customers[c.ID] = &cp; return nil }
func (r *fakeCustomerRepo) Deactivate(id string) error                         { delete(r.db.customers, id); return nil }

type fakeInvItemRepo struct{ db *memDB }

func (r *fakeInvItemRepo) Create(i *entity.InventoryItem) error { cp := *i; r.db.invItems[i.ID] = &cp; return nil }
func (r *fakeInvItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	if i, ok := r.db.invItems[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeInvItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, i := range r.db.invItems {
		if i.SKU == sku {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeInvItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) { return nil, nil }
func (r *fakeInvItemRepo) Update(i *entity.InventoryItem) error                    { cp := *i; r.db.invItems[i.ID] = &cp; return nil }
func (r *fakeInvItemRepo) Deactivate(id string) error                              { delete(r.db.invItems, id); return nil }

type fakeWarehouseRepo struct{ db *memDB }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { cp := *w; r.db.warehouses[w.ID] = &cp; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.db.warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error                    { cp := *w; r.db.warehouses[w.ID] = &cp; return nil }
func (r *fakeWarehouseRepo) Deactivate(id string) error                          { delete(r.db.warehouses, id); return nil }

type fakeSalesRepo struct{ db *memDB }

func (r *fakeSalesRepo) Create(tx *entity.SalesTransaction) error {
	if _, ok := r.db.orders[tx.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *tx
	r.db.orders[tx.ID] = &cp
	return nil
}
func (r *fakeSalesRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	if tx, ok := r.db.orders[id]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeSalesRepo) GetByTransactionID(transactionID string) (*entity.SalesTransaction, error) {
	for _, tx := range r.db.orders {
		if tx.TransactionID == transactionID {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeSalesRepo) Update(tx *entity.SalesTransaction) error {
	if _, ok := r.db.orders[tx.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *tx
	r.db.orders[tx.ID] = &cp
	return nil
}
func (r *fakeSalesRepo) List(filter repository.TransactionFilter) ([]*entity.SalesTransaction, error) {
	var out []*entity.SalesTransaction
	for _, tx := range r.db.orders {
		if filter.CustomerID != "" && tx.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && tx.PaymentStatus != filter.PaymentStatus {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	return out, nil
}
func (r *fakeSalesRepo) ListOverdue(asOf time.Time, limit, offset int) ([]*entity.SalesTransaction, error) {
	var out []*entity.SalesTransaction
	for _, tx := range r.db.orders {
		if tx.Status == sales.StatusCANCELLED || !tx.PaymentStatus.IsUnpaid() {
			continue
		}
		if tx.PaymentDueDate == nil || !tx.PaymentDueDate.Before(asOf) {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	return out, nil
}
func (r *fakeSalesRepo) UpdatePaymentStatus(id string, status sales.PaymentStatus, amountPaid decimal.Decimal) error {
	tx, ok := r.db.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	tx.PaymentStatus = status
	tx.AmountPaid = amountPaid
	return nil
}
func (r *fakeSalesRepo) GetCustomerOutstandingBalance(customerID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range r.db.orders {
		if tx.CustomerID == customerID && tx.Status != sales.StatusCANCELLED && tx.PaymentStatus.IsUnpaid() {
			total = total.Add(tx.GrandTotal.Sub(tx.AmountPaid))
		}
	}
	return total, nil
}
func (r *fakeSalesRepo) GetSalesSummary(from, to time.Time) (*repository.SalesSummary, error) {
	summary := &repository.SalesSummary{
		TotalRevenue:  decimal.Zero,
		TotalTax:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalPaid:     decimal.Zero,
	}
	for _, tx := range r.db.orders {
		if tx.Status == sales.StatusCANCELLED || tx.OrderDate.Before(from) || tx.OrderDate.After(to) {
			continue
		}
		summary.TotalOrders++
		summary.TotalRevenue = summary.TotalRevenue.Add(tx.GrandTotal)
		summary.TotalTax = summary.TotalTax.Add(tx.TaxAmount)
		summary.TotalDiscount = summary.TotalDiscount.Add(tx.DiscountAmount)
		summary.TotalPaid = summary.TotalPaid.Add(tx.AmountPaid)
	}
	return summary, nil
}

type fakeItemLineRepo struct{ db *memDB }

func (r *fakeItemLineRepo) Create(i *entity.SalesTransactionItem) error {
	cp := *i
	r.db.orderItems[i.ID] = &cp
	return nil
}
func (r *fakeItemLineRepo) GetByID(id string) (*entity.SalesTransactionItem, error) {
	if i, ok := r.db.orderItems[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeItemLineRepo) GetByTransaction(transactionID string) ([]*entity.SalesTransactionItem, error) {
	var out []*entity.SalesTransactionItem
	for _, i := range r.db.orderItems {
		if i.TransactionID == transactionID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakeItemLineRepo) Update(i *entity.SalesTransactionItem) error {
	if _, ok := r.db.orderItems[i.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *i
	r.db.orderItems[i.ID] = &cp
	return nil
}
func (r *fakeItemLineRepo) Deactivate(id string) error { delete(r.db.orderItems, id); return nil }

type fakeReturnRepo struct{ db *memDB }

func (r *fakeReturnRepo) Create(ret *entity.SalesReturn) error {
	cp := *ret
	r.db.returns[ret.ID] = &cp
	return nil
}
func (r *fakeReturnRepo) GetByID(id string) (*entity.SalesReturn, error) {
	if ret, ok := r.db.returns[id]; ok {
		cp := *ret
		return &cp, nil
	}
	for _, ret := range r.db.returns {
		if ret.ReturnID == id {
			cp := *ret
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeReturnRepo) Update(ret *entity.SalesReturn) error {
	if _, ok := r.db.returns[ret.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ret
	r.db.returns[ret.ID] = &cp
	return nil
}
func (r *fakeReturnRepo) ListByTransaction(salesTransactionID string) ([]*entity.SalesReturn, error) {
	var out []*entity.SalesReturn
	for _, ret := range r.db.returns {
		if ret.SalesTransactionID == salesTransactionID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakeReturnRepo) GetTotalRefundAmount(salesTransactionID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, ret := range r.db.returns {
		if ret.SalesTransactionID == salesTransactionID && ret.IsActive {
			total = total.Add(ret.RefundAmount)
		}
	}
	return total, nil
}
func (r *fakeReturnRepo) GetReturnSummary(from, to time.Time) (*repository.ReturnSummary, error) {
	summary := &repository.ReturnSummary{
		TotalRefunded: decimal.Zero,
		TotalFees:     decimal.Zero,
	}
	for _, ret := range r.db.returns {
		if !ret.IsActive || ret.ReturnDate.Before(from) || ret.ReturnDate.After(to) {
			continue
		}
		summary.TotalReturns++
		summary.TotalRefunded = summary.TotalRefunded.Add(ret.RefundAmount)
		summary.TotalFees = summary.TotalFees.Add(ret.RestockingFee)
	}
	return summary, nil
}

type fakeReturnItemRepo struct{ db *memDB }

func (r *fakeReturnItemRepo) Create(i *entity.SalesReturnItem) error {
	cp := *i
	r.db.returnItems[i.ID] = &cp
	return nil
}
func (r *fakeReturnItemRepo) GetByReturn(salesReturnID string) ([]*entity.SalesReturnItem, error) {
	var out []*entity.SalesReturnItem
	for _, i := range r.db.returnItems {
		if i.SalesReturnID == salesReturnID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakeReturnItemRepo) GetTotalReturnedQuantity(salesItemID string) (int, error) {
	total := 0
	for _, i := range r.db.returnItems {
		if i.SalesItemID != salesItemID || !i.IsActive {
			continue
		}
		if parent, ok := r.db.returns[i.SalesReturnID]; ok && !parent.IsActive {
			continue
		}
		total += i.Quantity
	}
	return total, nil
}

type fakeStockRepo struct{ db *memDB }

func (r *fakeStockRepo) Get(itemID, warehouseID string) (*entity.Stock, error) {
	if s, ok := r.db.stock[stockKey(itemID, warehouseID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ItemID: itemID, WarehouseID: warehouseID}, nil
}
func (r *fakeStockRepo) GetForUpdate(itemID, warehouseID string) (*entity.Stock, error) {
	return r.Get(itemID, warehouseID)
}
func (r *fakeStockRepo) Upsert(s *entity.Stock) error {
	cp := *s
	r.db.stock[stockKey(s.ItemID, s.WarehouseID)] = &cp
	return nil
}

type fakeMovementRepo struct{ db *memDB }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.db.movements = append(r.db.movements, &cp)
	return nil
}
func (r *fakeMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if m.Reference == reference {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSequenceRepo struct{ db *memDB }

func (r *fakeSequenceRepo) NextID(prefix string) (string, error) {
	next := sales.NextID(r.db.lastSeq[prefix], prefix)
	r.db.lastSeq[prefix] = next
	return next, nil
}

// fakeTxRunner pasa los repos en memoria directamente; los tests no ejercitan
// semántica de rollback.
type fakeTxRunner struct{ db *memDB }

func (t *fakeTxRunner) RunSales(_ context.Context, fn func(
	repository.SalesTransactionRepository,
	repository.SalesTransactionItemRepository,
	repository.StockRepository,
	repository.StockMovementRepository,
	repository.SequenceRepository,
) error) error {
	return fn(
		&fakeSalesRepo{t.db}, &fakeItemLineRepo{t.db},
		&fakeStockRepo{t.db}, &fakeMovementRepo{t.db}, &fakeSequenceRepo{t.db},
	)
}

func (t *fakeTxRunner) RunReturns(_ context.Context, fn func(
	repository.SalesTransactionRepository,
	repository.SalesTransactionItemRepository,
	repository.SalesReturnRepository,
	repository.SalesReturnItemRepository,
	repository.StockRepository,
	repository.StockMovementRepository,
	repository.SequenceRepository,
) error) error {
	return fn(
		&fakeSalesRepo{t.db}, &fakeItemLineRepo{t.db},
		&fakeReturnRepo{t.db}, &fakeReturnItemRepo{t.db},
		&fakeStockRepo{t.db}, &fakeMovementRepo{t.db}, &fakeSequenceRepo{t.db},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mundo de pruebas
// ──────────────────────────────────────────────────────────────────────────────

// world entrelaza los fakes con los casos de uso reales (incluido el motor de
// stock real, no un mock).
type world struct {
	db *memDB

	createUC  *appsales.CreateTransactionUseCase
	confirmUC *appsales.ConfirmOrderUseCase
	fulfillUC *appsales.FulfillmentUseCase
	paymentUC *appsales.UpdatePaymentUseCase
	priceUC   *appsales.UpdateItemPriceUseCase
	returnUC  *appsales.ProcessReturnUseCase
	approveUC *appsales.ApproveReturnUseCase
	queryUC   *appsales.QueryUseCase
}

func newWorld() *world {
	db := newMemDB()
	runner := &fakeTxRunner{db}
	stockSvc := inventory.NewStockUseCase(&fakeStockRepo{db})

	customerRepo := &fakeCustomerRepo{db}
	invItemRepo := &fakeInvItemRepo{db}
	warehouseRepo := &fakeWarehouseRepo{db}
	salesRepo := &fakeSalesRepo{db}
	lineRepo := &fakeItemLineRepo{db}
	returnRepo := &fakeReturnRepo{db}
	returnItemRepo := &fakeReturnItemRepo{db}

	return &world{
		db:        db,
		createUC:  appsales.NewCreateTransactionUseCase(runner, stockSvc, customerRepo, invItemRepo, warehouseRepo, salesRepo),
		confirmUC: appsales.NewConfirmOrderUseCase(runner, stockSvc),
		fulfillUC: appsales.NewFulfillmentUseCase(runner, stockSvc),
		paymentUC: appsales.NewUpdatePaymentUseCase(runner),
		priceUC:   appsales.NewUpdateItemPriceUseCase(runner),
		returnUC:  appsales.NewProcessReturnUseCase(runner, stockSvc),
		approveUC: appsales.NewApproveReturnUseCase(returnRepo, returnItemRepo),
		queryUC:   appsales.NewQueryUseCase(salesRepo, lineRepo, returnRepo, returnItemRepo, customerRepo),
	}
}

// seedBasics cliente, ítem y bodega listos para vender.
func (w *world) seedBasics() {
	w.db.customers["cust-1"] = &entity.Customer{
		ID: "cust-1", Name: "Comercial Andina", Address: "Calle 10 # 5-31", IsActive: true,
	}
	w.db.invItems["inv-1"] = &entity.InventoryItem{
		ID: "inv-1", SKU: "TEC-001", Name: "Teclado mecánico",
		Price: dec("100"), Cost: dec("60"), TaxRate: dec("19"), IsActive: true,
	}
	w.db.warehouses["wh-1"] = &entity.Warehouse{ID: "wh-1", Name: "Bodega Central", IsActive: true}
	w.db.setStock("inv-1", "wh-1", 100)
}
