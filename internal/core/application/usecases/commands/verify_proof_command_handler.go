package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/proof"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"
)

// VerifyProofResult is what the drop-off scanner shows.
type VerifyProofResult struct {
	OrderID   kernel.UUID
	NewStatus order.Status
}

// VerifyProofCommandHandler closes an order from a scanned proof.
//
// Steps: decode the image, parse the envelope, verify the signature, load the
// order and check that it belongs to the signed student, then move it to
// DELIVERED and release its robot. Scanning a delivered order again succeeds
// without changes.
//
// Example:
//
//	cmd, _ := NewVerifyProofCommand(upload)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, proof.ErrInvalidSignature):
//	    // forged or altered code
//	case errors.Is(err, ErrOrderNotFound):
//	    // valid signature, but no such order for that student
//	}
type VerifyProofCommandHandler struct {
	uowFactory UoWFactory
	signer     *proof.Signer
	codec      ports.ProofCodec
}

func NewVerifyProofCommandHandler(
	uowFactory UoWFactory,
	signer *proof.Signer,
	codec ports.ProofCodec,
) VerifyProofCommandHandler {
	return VerifyProofCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
		codec:      codec,
	}
}

func (h VerifyProofCommandHandler) Handle(ctx context.Context, cmd VerifyProofCommand) (VerifyProofResult, error) {
	if err := cmd.Validate(); err != nil {
		return VerifyProofResult{}, err
	}

	claims, err := h.readClaims(ctx, cmd.Image())
	if err != nil {
		return VerifyProofResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return VerifyProofResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	delivered, err := h.deliver(ctx, uow, claims)
	if err != nil {
		return VerifyProofResult{}, err
	}

	if _, err = uow.RobotRepository().ReleaseByOrder(ctx, delivered.ID()); err != nil {
		return VerifyProofResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return VerifyProofResult{}, err
	}

	return VerifyProofResult{OrderID: delivered.ID(), NewStatus: delivered.Status()}, nil
}

// readClaims runs outside any transaction: decoding images is slow.
func (h VerifyProofCommandHandler) readClaims(ctx context.Context, image []byte) (proof.Claims, error) {
	payloads, err := h.codec.Decode(ctx, bytes.NewReader(image))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return proof.Claims{}, ctxErr
		}
		return proof.Claims{}, fmt.Errorf("%w: %v", proof.ErrNoCodeFound, err)
	}
	if len(payloads) == 0 {
		return proof.Claims{}, proof.ErrNoCodeFound
	}

	token, err := proof.ParseEnvelope(payloads[0])
	if err != nil {
		return proof.Claims{}, err
	}

	return h.signer.Verify(token)
}

func (h VerifyProofCommandHandler) deliver(ctx context.Context, uow UoW, claims proof.Claims) (*order.Order, error) {
	orderRepo := uow.OrderRepository()

	current, err := orderRepo.Get(ctx, claims.OrderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if !current.IsOwnedBy(claims.StudentID) {
		return nil, ErrOrderNotFound
	}

	if current.Status() == order.Delivered {
		return current, nil
	}

	updated, err := orderRepo.Transition(ctx, current.ID(), current.Status(), order.Delivered, nil)
	if errors.Is(err, order.ErrStaleState) {
		// a concurrent scan or dispatcher update got there first
		reread, getErr := orderRepo.Get(ctx, current.ID())
		if getErr != nil {
			return nil, getErr
		}
		if reread.Status() == order.Delivered {
			return reread, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}
