package sales

import (
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func toItemResponse(item *entity.SalesTransactionItem) dto.SalesItemResponse {
	return dto.SalesItemResponse{
		ID:                 item.ID,
		ItemID:             item.InventoryItemID,
		WarehouseID:        item.WarehouseID,
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice,
		DiscountPercentage: item.DiscountPercentage,
		DiscountAmount:     item.DiscountAmount,
		TaxRate:            item.TaxRate,
		TaxAmount:          item.TaxAmount,
		Subtotal:           item.Subtotal,
		Total:              item.Total,
		SerialNumbers:      item.SerialNumbers,
		Notes:              item.Notes,
	}
}

func toTransactionResponse(tx *entity.SalesTransaction, customerName string, items []*entity.SalesTransactionItem) *dto.SalesTransactionResponse {
	resp := &dto.SalesTransactionResponse{
		ID:                  tx.ID,
		TransactionID:       tx.TransactionID,
		InvoiceNumber:       tx.InvoiceNumber,
		CustomerID:          tx.CustomerID,
		CustomerName:        customerName,
		OrderDate:           tx.OrderDate,
		DeliveryDate:        tx.DeliveryDate,
		Status:              string(tx.Status),
		PaymentStatus:       string(tx.PaymentStatus),
		PaymentTerms:        string(tx.PaymentTerms),
		PaymentDueDate:      tx.PaymentDueDate,
		Subtotal:            tx.Subtotal,
		DiscountAmount:      tx.DiscountAmount,
		TaxAmount:           tx.TaxAmount,
		ShippingAmount:      tx.ShippingAmount,
		GrandTotal:          tx.GrandTotal,
		AmountPaid:          tx.AmountPaid,
		BalanceDue:          tx.BalanceDue(),
		ShippingAddress:     tx.ShippingAddress,
		BillingAddress:      tx.BillingAddress,
		PurchaseOrderNumber: tx.PurchaseOrderNumber,
		Notes:               tx.Notes,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}

func toReturnResponse(ret *entity.SalesReturn, items []*entity.SalesReturnItem) *dto.SalesReturnResponse {
	resp := &dto.SalesReturnResponse{
		ID:                 ret.ID,
		ReturnID:           ret.ReturnID,
		SalesTransactionID: ret.SalesTransactionID,
		ReturnDate:         ret.ReturnDate,
		Reason:             ret.Reason,
		ApprovedByID:       ret.ApprovedByID,
		IsApproved:         ret.IsApproved(),
		RefundAmount:       ret.RefundAmount,
		RestockingFee:      ret.RestockingFee,
		NetRefundAmount:    ret.NetRefundAmount(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.ReturnItemResponse{
			ID:            item.ID,
			SalesItemID:   item.SalesItemID,
			Quantity:      item.Quantity,
			Condition:     item.Condition,
			Resellable:    item.IsResellable(),
			SerialNumbers: item.SerialNumbers,
		})
	}
	return resp
}
