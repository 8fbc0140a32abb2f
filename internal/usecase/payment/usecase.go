package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	applicationDomain "rentflow-backend/internal/domain/application"
	"rentflow-backend/internal/domain/fault"
	paymentDomain "rentflow-backend/internal/domain/payment"
	"rentflow-backend/internal/domain/uow"
	"rentflow-backend/internal/gateway/paygate"
	"rentflow-backend/internal/notify"
	"rentflow-backend/pkg/id"
)

type Usecase struct {
	apps     applicationDomain.Repository
	payments paymentDomain.Repository
	uow      uow.UnitOfWork
	gateway  paygate.Client
	notifier notify.Notifier
}

func NewUsecase(apps applicationDomain.Repository, payments paymentDomain.Repository, tx uow.UnitOfWork, gw paygate.Client, n notify.Notifier) *Usecase {
	return &Usecase{apps: apps, payments: payments, uow: tx, gateway: gw, notifier: n}
}

// RequestPayment turns an approved application into a payment obligation.
// Repeated calls for the same application return the existing intent
// unchanged; the conditional insert on application_id is what makes N
// concurrent calls collapse to one row.
func (u *Usecase) RequestPayment(ctx context.Context, applicationID, callerID string) (*PaymentDTO, error) {
	app, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("application %s not found", applicationID)
		}
		return nil, fault.Transient("load application", err)
	}
	if app.Status != applicationDomain.StatusApproved {
		return nil, fault.Precondition("application %s is %s, not approved", applicationID, app.Status)
	}
	if callerID != app.TenantID {
		return nil, fault.Validation("caller is not the applicant tenant")
	}

	intent := &paymentDomain.PaymentIntent{
		PaymentID:      id.NewID32(),
		ApplicationID:  app.ApplicationID,
		TenantID:       app.TenantID,
		LandlordID:     app.LandlordID,
		UnitID:         app.UnitID,
		Amount:         app.RentAmount + app.DepositAmount,
		Status:         paymentDomain.StatusPending,
		DueDate:        app.MoveInDate,
		StateUpdatedAt: time.Now().UTC(),
	}
	got, created, err := u.payments.CreateIfAbsent(ctx, intent)
	if err != nil {
		return nil, fault.Transient("create payment intent", err)
	}

	// A failed reference request leaves the intent without a gateway ref; the
	// caller retries the whole operation and lands here again.
	if got.GatewayRef == "" {
		ref, err := u.gateway.RequestReference(ctx, got.PaymentID, got.Amount)
		if err != nil {
			return nil, err
		}
		got.GatewayRef = ref
		if err := u.payments.Save(ctx, got); err != nil {
			return nil, fault.Transient("save gateway ref", err)
		}
	}

	if created {
		_ = u.notifier.Emit(ctx, app.TenantID,
			"Payment required",
			fmt.Sprintf("Pay %.2f (rent + deposit) to secure unit %s.", got.Amount, app.UnitID),
			"payment-required",
			"/payments/"+got.PaymentID)
	}
	return toDTO(got), nil
}

func (u *Usecase) Get(ctx context.Context, paymentID string) (*PaymentDTO, error) {
	p, err := u.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("payment %s not found", paymentID)
		}
		return nil, fault.Transient("load payment", err)
	}
	return toDTO(p), nil
}

// Confirm applies the gateway's push confirmation. It is the only writer of
// the pending→paid/failed transition and is safe under at-least-once
// delivery: redelivering the same terminal status is a no-op, a
// contradictory one is a conflict.
func (u *Usecase) Confirm(ctx context.Context, in Confirmation) (*PaymentDTO, error) {
	target := paymentDomain.Status(in.Status)
	if target != paymentDomain.StatusPaid && target != paymentDomain.StatusFailed {
		return nil, fault.Validation("confirmation status must be paid or failed")
	}

	var out *paymentDomain.PaymentIntent
	var flipped bool
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, in.PaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.NotFound("payment %s not found", in.PaymentID)
			}
			return fault.Transient("lock payment", err)
		}

		switch {
		case p.Status == target:
			// duplicate delivery, inert
			out = p
			return nil
		case p.Status.Terminal():
			return fault.Conflict("payment %s already %s", p.PaymentID, p.Status)
		}

		now := time.Now().UTC()
		p.Status = target
		p.StateUpdatedAt = now
		if target == paymentDomain.StatusPaid {
			p.PaidAt = &now
			p.TransactionID = in.TransactionID
		}
		if err := r.Payments.Save(ctx, p); err != nil {
			return fault.Transient("save confirmation", err)
		}
		out = p
		flipped = true
		return nil
	})
	if err != nil {
		if fault.KindOf(err) == fault.KindUnknown {
			return nil, fault.Transient("confirm payment", err)
		}
		return nil, err
	}

	if flipped && out.Status == paymentDomain.StatusPaid {
		_ = u.notifier.Emit(ctx, out.TenantID,
			"Payment received",
			fmt.Sprintf("Your payment of %.2f was confirmed.", out.Amount),
			"payment-received",
			"/payments/"+out.PaymentID)
	}
	return toDTO(out), nil
}

// Poll is a bounded convenience wait for clients that cannot receive a push.
// It holds no lock, mutates nothing, and exhausting the bound is not an error.
func (u *Usecase) Poll(ctx context.Context, paymentID string, maxAttempts int, interval time.Duration) (*PollResult, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				// caller went away mid-wait; not a server fault
				return nil, fault.Transient("poll interrupted", ctx.Err())
			case <-time.After(interval):
			}
		}

		p, err := u.payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fault.NotFound("payment %s not found", paymentID)
			}
			return nil, fault.Transient("load payment", err)
		}
		if p.Status != paymentDomain.StatusPending {
			return &PollResult{PaymentID: p.PaymentID, Status: string(p.Status), Confirmed: true}, nil
		}
	}
	return &PollResult{PaymentID: paymentID, Status: string(paymentDomain.StatusPending), Confirmed: false}, nil
}

func toDTO(p *paymentDomain.PaymentIntent) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:     p.PaymentID,
		ApplicationID: p.ApplicationID,
		TenantID:      p.TenantID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		DueDate:       p.DueDate,
		PaidAt:        p.PaidAt,
		TransactionID: p.TransactionID,
		GatewayRef:    p.GatewayRef,
		CreatedAt:     p.CreatedAt,
	}
}
