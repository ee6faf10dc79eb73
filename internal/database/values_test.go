package database

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestToWire(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"integral numeric", pgtype.Numeric{Int: big.NewInt(1500), Exp: -2, Valid: true}, int64(15)},
		{"fractional numeric", pgtype.Numeric{Int: big.NewInt(1525), Exp: -2, Valid: true}, 15.25},
		{"numeric with exponent", pgtype.Numeric{Int: big.NewInt(12), Exp: 3, Valid: true}, int64(12000)},
		{"invalid numeric", pgtype.Numeric{}, nil},
		{"nan numeric", pgtype.Numeric{NaN: true, Valid: true}, nil},
		{"decimal", decimal.RequireFromString("3.0"), int64(3)},
		{"date", pgtype.Date{Time: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Valid: true}, "2024-03-09"},
		{"midnight timestamp", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "2024-03-09T00:00:00Z"},
		{"timestamp", time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC), "2024-03-09T14:05:06Z"},
		{"bytes", []byte("large object"), "large object"},
		{"uuid", [16]byte(id), id.String()},
		{"nan float", math.NaN(), nil},
		{"float", 2.5, 2.5},
		{"string", "abc", "abc"},
		{"int32", int32(7), int32(7)},
		{"bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToWire(tt.in); got != tt.want {
				t.Errorf("ToWire(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColumnToWire(t *testing.T) {
	midnight := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		oid  uint32
		in   any
		want any
	}{
		{"date column", pgtype.DateOID, midnight, "2024-03-09"},
		{"timestamptz column at midnight", pgtype.TimestamptzOID, midnight, "2024-03-09T00:00:00Z"},
		{"timestamp column at midnight", pgtype.TimestampOID, midnight, "2024-03-09T00:00:00Z"},
		{"null date", pgtype.DateOID, nil, nil},
		{"numeric column", pgtype.NumericOID, pgtype.Numeric{Int: big.NewInt(42), Valid: true}, int64(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := columnToWire(tt.oid, tt.in); got != tt.want {
				t.Errorf("columnToWire(%d, %v) = %#v, want %#v", tt.oid, tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateSQL(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}

	if got := truncateSQL(string(long)); len(got) != 303 {
		t.Errorf("truncateSQL() length = %d, want 303", len(got))
	}
	if got := truncateSQL("SELECT 1"); got != "SELECT 1" {
		t.Errorf("truncateSQL() = %q", got)
	}
}
