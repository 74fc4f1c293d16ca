package gfxstaking

import (
	"crypto/ed25519"
	"errors"

	"github.com/mr-tron/base58"
)

var (
	ErrInvalidAccountData = errors.New("unexpected account data")
)

// GooseFX single sided staking program and the controller that scopes its
// staking accounts.
var (
	PROGRAM_ADDRESS = mustBase58Decode("8KJx48PYGHVC9fxzRRtYp4x4CM2HyYCm2EjVuAP4vvrx")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)

	CONTROLLER_ADDRESS = mustBase58Decode("8CxKnuJeoeQXFwiG6XiGY2akBjvJA5k3bE52BfnuEmNQ")
	CONTROLLER_ID      = ed25519.PublicKey(CONTROLLER_ADDRESS)
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
