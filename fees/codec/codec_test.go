package codec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testABIJSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[
		{"name":"to","type":"address"},
		{"name":"amount","type":"uint256"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"deposit","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"setLevels","stateMutability":"nonpayable","inputs":[
		{"name":"levels","type":"uint8[]"}],"outputs":[]},
	{"type":"function","name":"setPoint","stateMutability":"nonpayable","inputs":[
		{"name":"p","type":"tuple","components":[
			{"name":"x","type":"uint256"},
			{"name":"y","type":"uint256"}]}],"outputs":[]},
	{"type":"error","name":"Unauthorized","inputs":[{"name":"caller","type":"address"}]}
]`

func TestParseABI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{
			name: "valid ABI",
			give: testABIJSON,
		},
		{
			name:    "invalid JSON",
			give:    `[{"type":"function"`,
			wantErr: "failed to parse ABI JSON",
		},
		{
			name:    "empty input",
			give:    "",
			wantErr: "failed to parse ABI JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseABI(tt.give)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				var encErr *EncodingError
				require.ErrorAs(t, err, &encErr)

				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Contains(t, got.Methods, "transfer")
			assert.Contains(t, got.Errors, "Unauthorized")
		})
	}
}

func TestEncodeCall(t *testing.T) {
	t.Parallel()

	contractABI, err := ParseABI(testABIJSON)
	require.NoError(t, err)

	to := common.HexToAddress("0x000000000000000000000000000000000000bEEF")

	// Reference encodings produced with the canonical Go shapes.
	wantTransfer, err := contractABI.Pack("transfer", to, big.NewInt(12345))
	require.NoError(t, err)
	wantDeposit, err := contractABI.Pack("deposit")
	require.NoError(t, err)
	wantLevels, err := contractABI.Pack("setLevels", []uint8{1, 2, 3})
	require.NoError(t, err)

	type point struct {
		X *big.Int
		Y *big.Int
	}
	wantPoint, err := contractABI.Pack("setPoint", point{X: big.NewInt(7), Y: big.NewInt(9)})
	require.NoError(t, err)

	tests := []struct {
		name         string
		giveFunction string
		giveArgs     []any
		want         []byte
		wantErr      string
	}{
		{
			name:         "typed arguments",
			giveFunction: "transfer",
			giveArgs:     []any{to, big.NewInt(12345)},
			want:         wantTransfer,
		},
		{
			name:         "coerced arguments",
			giveFunction: "transfer",
			giveArgs:     []any{"0x000000000000000000000000000000000000bEEF", 12345},
			want:         wantTransfer,
		},
		{
			name:         "no arguments",
			giveFunction: "deposit",
			giveArgs:     nil,
			want:         wantDeposit,
		},
		{
			name:         "slice argument",
			giveFunction: "setLevels",
			giveArgs:     []any{[]any{1, 2, 3}},
			want:         wantLevels,
		},
		{
			name:         "tuple argument",
			giveFunction: "setPoint",
			giveArgs:     []any{[]any{7, 9}},
			want:         wantPoint,
		},
		{
			name:         "unknown function",
			giveFunction: "mint",
			giveArgs:     []any{},
			wantErr:      `function "mint" not found in ABI`,
		},
		{
			name:         "argument count mismatch",
			giveFunction: "transfer",
			giveArgs:     []any{to},
			wantErr:      "transfer(address,uint256) expects 2 arguments, got 1",
		},
		{
			name:         "incompatible argument",
			giveFunction: "transfer",
			giveArgs:     []any{to, "not a number"},
			wantErr:      "argument 1 (uint256 amount)",
		},
		{
			name:         "invalid address string",
			giveFunction: "transfer",
			giveArgs:     []any{"0xnope", big.NewInt(1)},
			wantErr:      "is not a valid hex address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodeCall(contractABI, tt.giveFunction, tt.giveArgs)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				var encErr *EncodingError
				require.ErrorAs(t, err, &encErr)
				assert.Nil(t, got, "no partial calldata on failure")

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeCall_NilABI(t *testing.T) {
	t.Parallel()

	got, err := EncodeCall(nil, "transfer", nil)
	require.Error(t, err)
	assert.Nil(t, got)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "transfer", encErr.Function)
}

func TestEncodeCall_Deterministic(t *testing.T) {
	t.Parallel()

	contractABI, err := ParseABI(testABIJSON)
	require.NoError(t, err)

	args := []any{"0x000000000000000000000000000000000000bEEF", 42}
	first, err := EncodeCall(contractABI, "transfer", args)
	require.NoError(t, err)
	second, err := EncodeCall(contractABI, "transfer", args)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, contractABI.Methods["transfer"].ID, first[:4])
}

func TestEncodingError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := &EncodingError{Function: "transfer", Err: inner}

	assert.ErrorContains(t, err, "failed to encode call to transfer")
	assert.Equal(t, inner, errors.Unwrap(err))
}
