package commands

import (
	"errors"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrVerifyProofCommandIsNotConstructed = errors.New(
	"VerifyProofCommand must be created via NewVerifyProofCommand constructor",
)

// VerifyProofCommand carries the photo or scan taken at drop-off. It needs no
// actor: holding a valid proof is the authorization.
type VerifyProofCommand struct {
	image []byte

	guard guard.ConstructorGuard
}

func NewVerifyProofCommand(image []byte) (VerifyProofCommand, error) {
	if len(image) == 0 {
		return VerifyProofCommand{}, errs.NewValueIsRequiredError("image")
	}

	return VerifyProofCommand{
		image: image,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyProofCommand) Validate() error {
	return c.guard.Validate(ErrVerifyProofCommandIsNotConstructed)
}

func (c VerifyProofCommand) Image() []byte {
	return c.image
}
