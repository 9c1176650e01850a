package codec

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// coerceArg converts a caller supplied value into the exact Go representation
// the abi encoder packs for the given parameter type. The accepted shapes per
// ABI category are fixed:
//
//   - intN/uintN:  any Go integer or *big.Int, range checked against N
//   - address:     common.Address or a 20 byte hex string
//   - bool:        bool
//   - string:      string
//   - bytesN:      [N]byte, []byte or 0x hex string of exactly N bytes
//   - bytes:       []byte or 0x hex string
//   - T[] / T[N]:  any slice or array, coerced element-wise
//   - tuples:      []any with one entry per component, or the struct shape
//     the abi package maps the tuple to
//
// Anything else is rejected. There is deliberately no reflective "try
// everything" path: a value either matches one of the shapes above or the
// call fails before any bytes are produced.
func coerceArg(val any, typ abi.Type) (any, error) {
	switch typ.T {
	case abi.UintTy, abi.IntTy:
		return coerceInteger(val, typ)
	case abi.BoolTy:
		b, ok := val.(bool)
		if !ok {
			return nil, typeMismatchErr(val, typ)
		}

		return b, nil
	case abi.StringTy:
		s, ok := val.(string)
		if !ok {
			return nil, typeMismatchErr(val, typ)
		}

		return s, nil
	case abi.AddressTy:
		return coerceAddress(val, typ)
	case abi.FixedBytesTy:
		return coerceFixedBytes(val, typ)
	case abi.BytesTy:
		return coerceBytes(val, typ)
	case abi.SliceTy:
		return coerceSequence(val, typ, -1)
	case abi.ArrayTy:
		return coerceSequence(val, typ, typ.Size)
	case abi.TupleTy:
		return coerceTuple(val, typ)
	default:
		return nil, fmt.Errorf("unsupported parameter type %s", typ.String())
	}
}

func typeMismatchErr(val any, typ abi.Type) error {
	return fmt.Errorf("cannot use %T as %s", val, typ.String())
}

// coerceInteger accepts any native Go integer or *big.Int and range checks it
// against the declared bit width. The abi encoder wants the native Go kind
// for the four machine widths and *big.Int for every other width.
func coerceInteger(val any, typ abi.Type) (any, error) {
	n := new(big.Int)
	switch v := val.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil *big.Int for %s", typ.String())
		}
		n.Set(v)
	case int:
		n.SetInt64(int64(v))
	case int8:
		n.SetInt64(int64(v))
	case int16:
		n.SetInt64(int64(v))
	case int32:
		n.SetInt64(int64(v))
	case int64:
		n.SetInt64(v)
	case uint:
		n.SetUint64(uint64(v))
	case uint8:
		n.SetUint64(uint64(v))
	case uint16:
		n.SetUint64(uint64(v))
	case uint32:
		n.SetUint64(uint64(v))
	case uint64:
		n.SetUint64(v)
	default:
		return nil, typeMismatchErr(val, typ)
	}

	if err := checkIntegerRange(n, typ); err != nil {
		return nil, err
	}

	if typ.T == abi.UintTy {
		switch typ.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		}
	} else {
		switch typ.Size {
		case 8:
			return int8(n.Int64()), nil
		case 16:
			return int16(n.Int64()), nil
		case 32:
			return int32(n.Int64()), nil
		case 64:
			return n.Int64(), nil
		}
	}

	return n, nil
}

func checkIntegerRange(n *big.Int, typ abi.Type) error {
	if typ.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > typ.Size {
			return fmt.Errorf("value %s out of range for %s", n, typ.String())
		}

		return nil
	}

	// Signed: -2^(N-1) <= n < 2^(N-1).
	limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
	if n.Cmp(new(big.Int).Neg(limit)) < 0 || n.Cmp(limit) >= 0 {
		return fmt.Errorf("value %s out of range for %s", n, typ.String())
	}

	return nil
}

func coerceAddress(val any, typ abi.Type) (any, error) {
	switch v := val.(type) {
	case common.Address:
		return v, nil
	case string:
		if !common.IsHexAddress(v) {
			return nil, fmt.Errorf("%q is not a valid hex address", v)
		}

		return common.HexToAddress(v), nil
	default:
		return nil, typeMismatchErr(val, typ)
	}
}

func coerceFixedBytes(val any, typ abi.Type) (any, error) {
	var b []byte
	switch v := val.(type) {
	case []byte:
		b = v
	case string:
		dec, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("invalid hex for %s: %w", typ.String(), err)
		}
		b = dec
	default:
		rv := reflect.ValueOf(val)
		if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 && rv.Len() == typ.Size {
			arr := reflect.New(typ.GetType()).Elem()
			reflect.Copy(arr, rv)

			return arr.Interface(), nil
		}

		return nil, typeMismatchErr(val, typ)
	}

	if len(b) != typ.Size {
		return nil, fmt.Errorf("%s wants exactly %d bytes, got %d", typ.String(), typ.Size, len(b))
	}

	arr := reflect.New(typ.GetType()).Elem()
	reflect.Copy(arr, reflect.ValueOf(b))

	return arr.Interface(), nil
}

func coerceBytes(val any, typ abi.Type) (any, error) {
	switch v := val.(type) {
	case []byte:
		return v, nil
	case string:
		dec, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("invalid hex for %s: %w", typ.String(), err)
		}

		return dec, nil
	default:
		return nil, typeMismatchErr(val, typ)
	}
}

// coerceSequence handles both slices (wantLen < 0) and fixed length arrays.
func coerceSequence(val any, typ abi.Type, wantLen int) (any, error) {
	rv := reflect.ValueOf(val)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, typeMismatchErr(val, typ)
	}
	if wantLen >= 0 && rv.Len() != wantLen {
		return nil, fmt.Errorf("%s wants exactly %d elements, got %d", typ.String(), wantLen, rv.Len())
	}

	var out reflect.Value
	if typ.T == abi.SliceTy {
		out = reflect.MakeSlice(typ.GetType(), rv.Len(), rv.Len())
	} else {
		out = reflect.New(typ.GetType()).Elem()
	}
	for i := 0; i < rv.Len(); i++ {
		elem, err := coerceArg(rv.Index(i).Interface(), *typ.Elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(elem))
	}

	return out.Interface(), nil
}

func coerceTuple(val any, typ abi.Type) (any, error) {
	goType := typ.GetType()
	rv := reflect.ValueOf(val)
	if rv.IsValid() && rv.Type() == goType {
		return val, nil
	}

	components, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("cannot use %T as %s (want []any with one entry per component)", val, typ.String())
	}
	if len(components) != len(typ.TupleElems) {
		return nil, fmt.Errorf("%s wants %d components, got %d", typ.String(), len(typ.TupleElems), len(components))
	}

	out := reflect.New(goType).Elem()
	for i, elemTyp := range typ.TupleElems {
		elem, err := coerceArg(components[i], *elemTyp)
		if err != nil {
			return nil, fmt.Errorf("component %d (%s): %w", i, typ.TupleRawNames[i], err)
		}
		out.Field(i).Set(reflect.ValueOf(elem))
	}

	return out.Interface(), nil
}
