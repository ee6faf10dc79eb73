package database

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ToWire converts a value read from a row into its JSON representation.
//
//   - NUMERIC: integral values become int64, others float64
//   - pgtype.Date: "2006-01-02"; time.Time: RFC 3339
//   - bytea / large text: string
//   - UUID: canonical string
//
// NaN and infinities have no JSON form and become nil.
func ToWire(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case pgtype.Numeric:
		return numericToWire(val)
	case *pgtype.Numeric:
		if val == nil {
			return nil
		}
		return numericToWire(*val)
	case decimal.Decimal:
		return decimalToWire(val)
	case time.Time:
		return timeToWire(val)
	case pgtype.Date:
		if !val.Valid || val.InfinityModifier != pgtype.Finite {
			return nil
		}
		return val.Time.Format(time.DateOnly)
	case pgtype.Timestamptz:
		if !val.Valid || val.InfinityModifier != pgtype.Finite {
			return nil
		}
		return timeToWire(val.Time)
	case []byte:
		return string(val)
	case [16]byte:
		return uuid.UUID(val).String()
	case float32:
		return finiteOrNil(float64(val))
	case float64:
		return finiteOrNil(val)
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val
	}

	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func numericToWire(n pgtype.Numeric) any {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return nil
	}
	return decimalToWire(decimal.NewFromBigInt(n.Int, n.Exp))
}

func decimalToWire(d decimal.Decimal) any {
	if d.Equal(d.Truncate(0)) && d.Abs().LessThanOrEqual(decimal.NewFromInt(math.MaxInt64)) {
		return d.IntPart()
	}
	return d.InexactFloat64()
}

func timeToWire(t time.Time) any {
	return t.Format(time.RFC3339Nano)
}

// columnToWire is ToWire with the column type taken into account: pgx
// decodes DATE into time.Time, which alone cannot be told apart from a
// timestamp.
func columnToWire(oid uint32, v any) any {
	if oid == pgtype.DateOID {
		if t, ok := v.(time.Time); ok {
			return t.Format(time.DateOnly)
		}
	}
	return ToWire(v)
}

func finiteOrNil(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// RowToWire reads the current row into a map keyed by column name,
// converting each value by its column type.
func RowToWire(rows pgx.Rows) (map[string]any, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}

	fields := rows.FieldDescriptions()
	out := make(map[string]any, len(fields))
	for i, fd := range fields {
		out[fd.Name] = columnToWire(fd.DataTypeOID, values[i])
	}
	return out, nil
}
