package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ApproveReturnUseCase aprueba una devolución. La aprobación es de una sola
// vía y una sola vez; una devolución aprobada queda congelada (ni la razón ni
// el cargo por reposición pueden cambiar después).
type ApproveReturnUseCase struct {
	returnRepo     repository.SalesReturnRepository
	returnItemRepo repository.SalesReturnItemRepository
}

func NewApproveReturnUseCase(returnRepo repository.SalesReturnRepository, returnItemRepo repository.SalesReturnItemRepository) *ApproveReturnUseCase {
	return &ApproveReturnUseCase{returnRepo: returnRepo, returnItemRepo: returnItemRepo}
}

// Execute registra al aprobador sobre la devolución.
func (uc *ApproveReturnUseCase) Execute(ctx context.Context, approverID, returnID string) (*dto.SalesReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, fmt.Errorf("%w: devolución %s", domain.ErrNotFound, returnID)
	}
	if err := ret.Approve(approverID); err != nil {
		return nil, err
	}
	ret.UpdatedAt = time.Now()
	if err := uc.returnRepo.Update(ret); err != nil {
		return nil, err
	}

	items, err := uc.returnItemRepo.GetByReturn(ret.ID)
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret, items), nil
}

// UpdateDetails cambia la razón o el cargo por reposición de una devolución
// todavía no aprobada.
func (uc *ApproveReturnUseCase) UpdateDetails(ctx context.Context, returnID, reason string, restockingFeePct *decimal.Decimal) (*dto.SalesReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, fmt.Errorf("%w: devolución %s", domain.ErrNotFound, returnID)
	}
	if ret.IsApproved() {
		return nil, fmt.Errorf("%w: la devolución %s ya está aprobada", domain.ErrConflict, ret.ReturnID)
	}

	if reason != "" {
		ret.Reason = reason
	}
	if restockingFeePct != nil {
		if err := ret.ApplyRestockingFee(*restockingFeePct); err != nil {
			return nil, err
		}
	}
	ret.UpdatedAt = time.Now()
	if err := uc.returnRepo.Update(ret); err != nil {
		return nil, err
	}

	items, err := uc.returnItemRepo.GetByReturn(ret.ID)
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret, items), nil
}
