package gasoracle

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SerializeCall wraps a call into the unsigned EIP-1559 envelope that
// getL1Fee and getL1GasUsed price. The oracle charges for the serialized
// transaction as published to the data availability layer, not for the bare
// calldata, so the envelope must carry the same to, value and data the real
// transaction would. Gas fields and nonce stay zero; they do not survive into
// the published payload in a way that changes the estimate meaningfully.
//
// A nil to produces a contract creation envelope. A nil chainID serializes as
// chain 0, which only shifts the RLP length by a few bytes.
func SerializeCall(to *common.Address, value *big.Int, calldata []byte, chainID *big.Int) ([]byte, error) {
	if chainID == nil {
		chainID = big.NewInt(0)
	}
	if value == nil {
		value = big.NewInt(0)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     0,
		GasTipCap: big.NewInt(0),
		GasFeeCap: big.NewInt(0),
		Gas:       0,
		To:        to,
		Value:     value,
		Data:      calldata,
	})

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}

	return raw, nil
}
