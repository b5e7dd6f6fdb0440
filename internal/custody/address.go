package custody

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	dealSeed  = "deal"
	vaultSeed = "vault"
)

// ParsePublicKey разбирает base58-идентификатор участника.
func ParsePublicKey(s string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "parsing public key %q", s)
	}
	return pk, nil
}

// DeriveDealAddress вычисляет адрес сделки как PDA программы эскроу
// по сидам ["deal", order_id, owner, kol, mint].
func DeriveDealAddress(programID solana.PublicKey, orderID string, owner, kol, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	if len(orderID) == 0 || len(orderID) > solana.MaxSeedLength {
		return solana.PublicKey{}, 0, errors.Errorf("order id length %d out of range", len(orderID))
	}
	seeds := [][]byte{
		[]byte(dealSeed),
		[]byte(orderID),
		owner.Bytes(),
		kol.Bytes(),
		mint.Bytes(),
	}
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.Wrap(err, "deriving deal address")
	}
	return addr, bump, nil
}

// VaultAuthority адрес хранилища, от имени которого выполняются выплаты.
func VaultAuthority(programID solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte(vaultSeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "deriving vault authority")
	}
	return addr, nil
}
