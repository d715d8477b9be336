package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/domain/repository"
)

// adminUpdateNotes marks history entries produced by the panel.
const adminUpdateNotes = "Status updated by administrator"

// Notifier receives order status change events after a transition commits.
// Delivery is best-effort and must never block or fail the transition.
type Notifier interface {
	Notify(userID, orderID int64, status model.OrderStatus)
}

// TransitionRequest carries one operator-requested status change.
type TransitionRequest struct {
	OrderID    int64
	Status     model.OrderStatus
	Remains    *int64
	StartCount *int64
	Actor      string
}

// TransitionUseCase applies order status transitions together with their
// ledger, transaction and history side effects in one atomic unit of work.
type TransitionUseCase struct {
	units    repository.UnitRunner
	notifier Notifier
}

// NewTransitionUseCase constructs TransitionUseCase.
func NewTransitionUseCase(units repository.UnitRunner, notifier Notifier) *TransitionUseCase {
	return &TransitionUseCase{units: units, notifier: notifier}
}

// ApplyTransition moves an order to the requested status. Financial side
// effects fire only when the status actually changes, so resubmitting a
// terminal status never refunds twice. On any error the unit of work rolls
// back and the order is left untouched.
func (u *TransitionUseCase) ApplyTransition(ctx context.Context, req TransitionRequest) (*model.Order, error) {
	if _, ok := model.ParseOrderStatus(string(req.Status)); !ok {
		return nil, domainErrors.ErrUnknownStatus
	}

	var updated *model.Order
	changed := false

	err := u.units.WithinUnit(ctx, func(uow repository.UnitOfWork) error {
		order, err := uow.Orders().GetForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if req.Status == model.OrderStatusPartial {
			if req.Remains == nil || *req.Remains < 0 || *req.Remains >= order.Quantity {
				return domainErrors.ErrInvalidRemains
			}
		}

		prev := order.Status
		order.Status = req.Status
		if req.Remains != nil {
			order.Remains = *req.Remains
		}
		// start_count is captured once when processing begins.
		if req.Status == model.OrderStatusProcessing && req.StartCount != nil && order.StartCount == nil {
			count := *req.StartCount
			order.StartCount = &count
		}
		order.UpdatedAt = time.Now()

		if err := uow.Orders().Update(ctx, order); err != nil {
			return err
		}

		if prev != req.Status {
			if err := u.settle(ctx, uow, order); err != nil {
				return err
			}
			entry := &model.HistoryEntry{
				OrderID:   order.ID,
				OldStatus: prev,
				NewStatus: order.Status,
				ChangedBy: actorOrSystem(req.Actor),
				ChangedAt: order.UpdatedAt,
				Notes:     adminUpdateNotes,
			}
			if err := uow.History().Append(ctx, entry); err != nil {
				return err
			}
			changed = true
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		u.notifier.Notify(updated.UserID, updated.ID, updated.Status)
	}

	return updated, nil
}

// settle applies the ledger movements and refund transaction owed by the
// order's new status. Callers guarantee the status actually changed.
func (u *TransitionUseCase) settle(ctx context.Context, uow repository.UnitOfWork, order *model.Order) error {
	plan := planSettlement(order)
	ledger := uow.Ledger()

	if !plan.inUse.IsZero() {
		if err := ledger.AdjustInUse(ctx, order.UserID, plan.inUse); err != nil {
			return err
		}
	}
	if !plan.spent.IsZero() {
		if err := ledger.AdjustSpent(ctx, order.UserID, plan.spent); err != nil {
			return err
		}
	}
	if !plan.balance.IsZero() {
		if err := ledger.AdjustBalance(ctx, order.UserID, plan.balance); err != nil {
			return err
		}
	}

	if plan.refund != nil {
		tx := &model.Transaction{
			UserID:      order.UserID,
			Amount:      *plan.refund,
			Type:        model.TransactionTypeRefund,
			Status:      model.TransactionStatusCompleted,
			Reference:   uuid.NewString(),
			Description: plan.refundDescription,
			CreatedAt:   order.UpdatedAt,
		}
		if err := uow.Transactions().Append(ctx, tx); err != nil {
			return err
		}
	}

	return nil
}

// settlement holds the ledger deltas owed by a transition. Zero deltas are
// skipped by the engine.
type settlement struct {
	balance           decimal.Decimal
	inUse             decimal.Decimal
	spent             decimal.Decimal
	refund            *decimal.Decimal
	refundDescription string
}

// planSettlement computes the monetary effect of the order's new status.
// Partial settlement pro-rates spend and refund by the delivered fraction;
// used + refund always equals the original amount exactly, because the
// refund is computed as the difference rather than rounded independently.
func planSettlement(order *model.Order) settlement {
	amount := order.Amount

	switch order.Status {
	case model.OrderStatusCompleted:
		return settlement{
			inUse: amount.Neg(),
			spent: amount,
		}
	case model.OrderStatusCancelled:
		refund := amount
		return settlement{
			inUse:             amount.Neg(),
			balance:           refund,
			refund:            &refund,
			refundDescription: fmt.Sprintf("Refund for cancelled order #%d", order.ID),
		}
	case model.OrderStatusFailed:
		refund := amount
		return settlement{
			inUse:             amount.Neg(),
			balance:           refund,
			refund:            &refund,
			refundDescription: fmt.Sprintf("Refund for failed order #%d", order.ID),
		}
	case model.OrderStatusPartial:
		delivered := decimal.NewFromInt(order.Quantity - order.Remains)
		fraction := delivered.Div(decimal.NewFromInt(order.Quantity))
		used := amount.Mul(fraction)
		refund := amount.Sub(used)
		return settlement{
			inUse:             amount.Neg(),
			spent:             used,
			balance:           refund,
			refund:            &refund,
			refundDescription: fmt.Sprintf("Partial refund for order #%d", order.ID),
		}
	}

	// pending and processing move no funds.
	return settlement{}
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return model.SystemActor
	}
	return actor
}
