package commands

import (
	"context"
	"fmt"
	"time"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/proof"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"
)

// CreateOrderCommandHandler creates an order and its delivery proof.
//
// The proof depends only on the order id and the student id, so it is minted and
// rendered as a QR code before the transaction starts. The order is then stored
// as PENDING and the proof attached in one unit of work, so a failure leaves
// nothing behind.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, signer, codec)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.Proof() is a data:image/png;base64 URI ready for an <img> tag
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	signer     *proof.Signer
	codec      ports.ProofCodec
	policy     services.AccessPolicy
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	signer *proof.Signer,
	codec ports.ProofCodec,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
		codec:      codec,
		policy:     services.NewAccessPolicy(),
		now:        time.Now,
	}
}

// Handle checks that the actor is a student, renders the proof and stores the order with it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.CanCreateOrder(actor); err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.OrderID(), actor.ID(), cmd.Details(), h.now())
	if err != nil {
		return nil, err
	}

	dataURI, err := h.renderProof(created)
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}
	if err = orderRepo.AttachProof(ctx, created.ID(), dataURI); err != nil {
		return nil, err
	}
	if err = created.AttachProof(dataURI); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (h CreateOrderCommandHandler) renderProof(o *order.Order) (string, error) {
	token, err := h.signer.Mint(o.ID(), o.StudentID())
	if err != nil {
		return "", err
	}

	envelope, err := token.Envelope()
	if err != nil {
		return "", err
	}

	png, err := h.codec.Encode(envelope)
	if err != nil {
		return "", fmt.Errorf("render proof for order %s: %w", o.ID(), err)
	}

	return proof.PNGDataURI(png), nil
}
