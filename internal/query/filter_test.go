package query

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dadidelux/sheng-project/internal/schema"
)

func TestCompileEmpty(t *testing.T) {
	pred := Compile(schema.PovertyData, nil)
	if pred.Clause != "" || len(pred.Args) != 0 {
		t.Errorf("empty filters should compile to match-all, got %q / %v", pred.Clause, pred.Args)
	}
	if pred.Where() != "" {
		t.Errorf("Where() on empty predicate = %q", pred.Where())
	}
}

func TestCompileRangeMinOnly(t *testing.T) {
	expr := Expression{"no_of_indiv": {Kind: KindRange, Min: float64(5)}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "no_of_indiv >= $1" {
		t.Errorf("clause = %q", pred.Clause)
	}
	if !reflect.DeepEqual(pred.Args, []any{float64(5)}) {
		t.Errorf("args = %v", pred.Args)
	}
}

func TestCompileRangeMaxOnly(t *testing.T) {
	expr := Expression{"no_of_indiv": {Kind: KindRange, Max: float64(8)}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "no_of_indiv <= $1" {
		t.Errorf("max-only range should produce an upper bound only, got %q", pred.Clause)
	}
}

func TestCompileRangeBothBounds(t *testing.T) {
	expr := Expression{"no_of_indiv": {Kind: KindRange, Min: float64(2), Max: float64(8)}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "no_of_indiv >= $1 AND no_of_indiv <= $2" {
		t.Errorf("clause = %q", pred.Clause)
	}
	if !reflect.DeepEqual(pred.Args, []any{float64(2), float64(8)}) {
		t.Errorf("args = %v", pred.Args)
	}
}

func TestCompileRangeNoBounds(t *testing.T) {
	expr := Expression{"no_of_indiv": {Kind: KindRange}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "" {
		t.Errorf("range with no bounds should produce no predicate, got %q", pred.Clause)
	}
}

func TestCompileMembership(t *testing.T) {
	expr := Expression{"province_name": {Kind: KindMembership, Values: []any{"PALAWAN", "ROMBLON"}}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "province_name IN ($1, $2)" {
		t.Errorf("clause = %q", pred.Clause)
	}
	if !reflect.DeepEqual(pred.Args, []any{"PALAWAN", "ROMBLON"}) {
		t.Errorf("args = %v", pred.Args)
	}
}

func TestCompileMembershipEmpty(t *testing.T) {
	expr := Expression{"province_name": {Kind: KindMembership}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "" {
		t.Errorf("empty membership should be dropped, got %q", pred.Clause)
	}
}

func TestCompileSubstring(t *testing.T) {
	expr := Expression{"city_name": {Kind: KindSubstring, Value: "San"}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "city_name LIKE $1" {
		t.Errorf("clause = %q", pred.Clause)
	}
	if !reflect.DeepEqual(pred.Args, []any{"%San%"}) {
		t.Errorf("args = %v", pred.Args)
	}
}

func TestCompileEquals(t *testing.T) {
	expr := Expression{"poor": {Kind: KindEquals, Value: float64(1)}}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "poor = $1" {
		t.Errorf("clause = %q", pred.Clause)
	}
}

func TestCompileDropsUnknownColumn(t *testing.T) {
	expr := Expression{
		"poor":            {Kind: KindEquals, Value: float64(1)},
		"evil; DROP--col": {Kind: KindEquals, Value: float64(1)},
	}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "poor = $1" {
		t.Errorf("unknown column must be dropped, got %q", pred.Clause)
	}
}

func TestCompileNeverEmbedsLiterals(t *testing.T) {
	payload := `'; DROP TABLE poverty_data; --`
	expr := Expression{"city_name": {Kind: KindSubstring, Value: payload}}
	pred := Compile(schema.PovertyData, expr)
	if strings.Contains(pred.Clause, "DROP") {
		t.Fatalf("literal leaked into query text: %q", pred.Clause)
	}
	if len(pred.Args) != 1 || pred.Args[0] != "%"+payload+"%" {
		t.Errorf("payload should ride as a bound parameter, got %v", pred.Args)
	}
}

func TestCompileStableOrder(t *testing.T) {
	expr := Expression{
		"province_name": {Kind: KindSubstring, Value: "PAL"},
		"no_of_indiv":   {Kind: KindRange, Min: float64(5)},
	}
	pred := Compile(schema.PovertyData, expr)
	want := "no_of_indiv >= $1 AND province_name LIKE $2"
	if pred.Clause != want {
		t.Errorf("clause = %q, want sorted column order %q", pred.Clause, want)
	}
}

func TestCompileDropsNullAndEmpty(t *testing.T) {
	expr := Expression{
		"poor":      {Kind: KindEquals, Value: nil},
		"city_name": {Kind: KindSubstring, Value: ""},
	}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "" {
		t.Errorf("null/empty operands should be dropped, got %q", pred.Clause)
	}
}

func TestParseExpressionShapes(t *testing.T) {
	raw := `{
		"no_of_indiv": {"min": 5, "max": 10},
		"province_name": ["PALAWAN", "ROMBLON"],
		"city_name": "San",
		"poor": 1
	}`
	expr, err := ParseExpression(raw)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}

	if f := expr["no_of_indiv"]; f.Kind != KindRange || f.Min != float64(5) || f.Max != float64(10) {
		t.Errorf("range filter decoded as %+v", f)
	}
	if f := expr["province_name"]; f.Kind != KindMembership || len(f.Values) != 2 {
		t.Errorf("membership filter decoded as %+v", f)
	}
	if f := expr["city_name"]; f.Kind != KindSubstring || f.Value != "San" {
		t.Errorf("substring filter decoded as %+v", f)
	}
	if f := expr["poor"]; f.Kind != KindEquals || f.Value != float64(1) {
		t.Errorf("equality filter decoded as %+v", f)
	}
}

func TestParseExpressionMalformed(t *testing.T) {
	if _, err := ParseExpression(`{"poor": `); err == nil {
		t.Error("malformed JSON should return an error")
	}
}

func TestParseExpressionEmpty(t *testing.T) {
	expr, err := ParseExpression("")
	if err != nil || expr != nil {
		t.Errorf("empty payload should be (nil, nil), got (%v, %v)", expr, err)
	}
}

func TestParseExpressionNullValue(t *testing.T) {
	expr, err := ParseExpression(`{"poor": null}`)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	pred := Compile(schema.PovertyData, expr)
	if pred.Clause != "" {
		t.Errorf("null filter value should compile to nothing, got %q", pred.Clause)
	}
}
