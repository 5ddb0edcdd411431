package compliance

import (
	"errors"
	"reflect"
	"testing"

	"infoprom/poaudit/pkg/eventlog"
)

// ev builds an event with just an activity name.
func ev(activity string) eventlog.Event {
	return eventlog.Event{Activity: activity}
}

// evWorth builds an event carrying a cumulative net worth value.
func evWorth(activity string, worth float64) eventlog.Event {
	return eventlog.Event{
		Activity:     activity,
		NumericAttrs: map[string]float64{eventlog.KeyCumulativeNetWorth: worth},
	}
}

func newCase(id string, attrs map[string]string, events ...eventlog.Event) *eventlog.Case {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &eventlog.Case{ID: id, Attributes: attrs, Events: events}
}

func mustEvaluate(t *testing.T, e *Engine, c *eventlog.Case, cat Category) *Verdict {
	t.Helper()
	verdict, err := e.Evaluate(c, cat)
	if err != nil {
		t.Fatalf("Evaluate(%s) returned error: %v", cat, err)
	}
	return verdict
}

// TestEvaluate_ThreeWayAfter_Compliant tests the happy path for the
// invoice-after-goods-receipt flow
func TestEvaluate_ThreeWayAfter_Compliant(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	c := newCase("c1",
		map[string]string{
			"GR-Based Inv. Verif.": "true",
			"Goods Receipt":        "true",
			"PO item value":        "100.0",
		},
		ev("Create Purchase Order Item"),
		ev("Record Goods Receipt"),
		ev("Record Invoice Receipt"),
		evWorth("Clear Invoice", 100.0),
	)

	verdict := mustEvaluate(t, engine, c, CategoryThreeWayAfter)
	if !verdict.Compliant {
		t.Fatalf("expected compliant verdict, got violations %v", verdict.Violations)
	}
	if len(verdict.Violations) != 0 {
		t.Errorf("compliant verdict must have no violations, got %v", verdict.Violations)
	}
	if got := verdict.Reasons(); !reflect.DeepEqual(got, []string{ReasonCompliant}) {
		t.Errorf("Reasons() = %v, want [%s]", got, ReasonCompliant)
	}
}

// TestEvaluate_ThreeWayAfter_InvoiceBeforeGoods tests the ordering rule
func TestEvaluate_ThreeWayAfter_InvoiceBeforeGoods(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	c := newCase("c2",
		map[string]string{
			"GR-Based Inv. Verif.": "true",
			"Goods Receipt":        "true",
			"PO item value":        "100.0",
		},
		ev("Record Invoice Receipt"),
		evWorth("Record Goods Receipt", 100.0),
	)

	verdict := mustEvaluate(t, engine, c, CategoryThreeWayAfter)
	if verdict.Compliant {
		t.Fatal("expected non-compliant verdict")
	}
	if !hasViolation(verdict, ViolationInvoiceBeforeGoods) {
		t.Errorf("violations %v missing %q", verdict.Violations, ViolationInvoiceBeforeGoods)
	}
}

// TestEvaluate_ThreeWayAfter_AccumulatesAllViolations tests that checks do
// not short-circuit on the first failure
func TestEvaluate_ThreeWayAfter_AccumulatesAllViolations(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	c := newCase("empty", nil)

	verdict := mustEvaluate(t, engine, c, CategoryThreeWayAfter)
	want := []string{
		ViolationMissingGoodsReceipt,
		ViolationMissingInvoiceReceipt,
		ViolationNoInvoiceReceiptsForValues,
	}
	if !reflect.DeepEqual(verdict.Violations, want) {
		t.Errorf("Violations = %v, want %v", verdict.Violations, want)
	}
}

// TestEvaluate_ThreeWayAfter_AttributeDefaults tests the per-rule defaults
// for missing and malformed boolean flags
func TestEvaluate_ThreeWayAfter_AttributeDefaults(t *testing.T) {
	engine := NewEngine(EngineConfig{})

	tests := []struct {
		name       string
		attrs      map[string]string
		violations []string
	}{
		{
			name:  "absent flags default to true",
			attrs: map[string]string{"PO item value": "100.0"},
		},
		{
			name: "verification flag explicitly false",
			attrs: map[string]string{
				"GR-Based Inv. Verif.": "false",
				"PO item value":        "100.0",
			},
			violations: []string{ViolationGRVerificationNotSet},
		},
		{
			name: "malformed flag is not true",
			attrs: map[string]string{
				"Goods Receipt": "yes please",
				"PO item value": "100.0",
			},
			violations: []string{ViolationGoodsReceiptNotSet},
		},
		{
			name: "flag comparison is case-insensitive",
			attrs: map[string]string{
				"GR-Based Inv. Verif.": "TRUE",
				"Goods Receipt":        "True",
				"PO item value":        "100.0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCase("c", tt.attrs,
				ev("Record Goods Receipt"),
				evWorth("Record Invoice Receipt", 100.0),
			)
			verdict := mustEvaluate(t, engine, c, CategoryThreeWayAfter)
			if !reflect.DeepEqual(verdict.Violations, tt.violations) {
				t.Errorf("Violations = %v, want %v", verdict.Violations, tt.violations)
			}
		})
	}
}

// TestEvaluate_ThreeWayBefore tests the invoice-before-goods-receipt flow,
// including the payment block removal rules
func TestEvaluate_ThreeWayBefore(t *testing.T) {
	engine := NewEngine(EngineConfig{})

	tests := []struct {
		name       string
		attrs      map[string]string
		events     []eventlog.Event
		violations []string
	}{
		{
			name:  "compliant with removal after goods receipt",
			attrs: map[string]string{"PO item value": "100.0"},
			events: []eventlog.Event{
				ev("Create Purchase Order Item"),
				ev("Record Invoice Receipt"),
				ev("Record Goods Receipt"),
				ev("Remove Payment Block"),
				evWorth("Clear Invoice", 100.0),
			},
		},
		{
			name:  "removal before goods receipt",
			attrs: map[string]string{"PO item value": "100.0"},
			events: []eventlog.Event{
				ev("Record Invoice Receipt"),
				ev("Remove Payment Block"),
				evWorth("Record Goods Receipt", 100.0),
			},
			violations: []string{ViolationPaymentBlockRemovedBeforeGR},
		},
		{
			name:  "missing removal",
			attrs: map[string]string{"PO item value": "100.0"},
			events: []eventlog.Event{
				ev("Record Invoice Receipt"),
				evWorth("Record Goods Receipt", 100.0),
			},
			violations: []string{ViolationMissingPaymentBlockRemoval},
		},
		{
			name: "verification flag must not be set",
			attrs: map[string]string{
				"GR-based Inv. Verif.": "true",
				"PO item value":        "100.0",
			},
			events: []eventlog.Event{
				ev("Record Invoice Receipt"),
				ev("Record Goods Receipt"),
				evWorth("Remove Payment Block", 100.0),
			},
			violations: []string{ViolationGRVerificationSet},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCase("c", tt.attrs, tt.events...)
			verdict := mustEvaluate(t, engine, c, CategoryThreeWayBefore)
			if !reflect.DeepEqual(verdict.Violations, tt.violations) {
				t.Errorf("Violations = %v, want %v", verdict.Violations, tt.violations)
			}
		})
	}
}

// TestEvaluate_TwoWay tests the 2-way match flow
func TestEvaluate_TwoWay(t *testing.T) {
	engine := NewEngine(EngineConfig{})

	tests := []struct {
		name       string
		attrs      map[string]string
		events     []eventlog.Event
		violations []string
	}{
		{
			name:  "compliant without goods receipt",
			attrs: map[string]string{"PO item value": "250.0"},
			events: []eventlog.Event{
				ev("Create Purchase Order Item"),
				evWorth("Record Invoice Receipt", 250.0),
				ev("Clear Invoice"),
			},
		},
		{
			name: "goods receipt flag set",
			attrs: map[string]string{
				"Goods Receipt": "true",
				"PO item value": "250.0",
			},
			events: []eventlog.Event{
				evWorth("Record Invoice Receipt", 250.0),
			},
			violations: []string{ViolationGoodsReceiptSet},
		},
		{
			name:  "final value must match item value",
			attrs: map[string]string{"PO item value": "250.0"},
			events: []eventlog.Event{
				evWorth("Record Invoice Receipt", 249.0),
			},
			violations: []string{ViolationValueMismatchFinal},
		},
		{
			name:       "missing invoice and cumulative values",
			attrs:      nil,
			events:     []eventlog.Event{ev("Create Purchase Order Item")},
			violations: []string{ViolationMissingInvoiceReceipt, ViolationNoCumulativeValues},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCase("c", tt.attrs, tt.events...)
			verdict := mustEvaluate(t, engine, c, CategoryTwoWay)
			if !reflect.DeepEqual(verdict.Violations, tt.violations) {
				t.Errorf("Violations = %v, want %v", verdict.Violations, tt.violations)
			}
		})
	}
}

// TestEvaluate_Consignment tests that invoice receipts are forbidden at
// purchase-order level
func TestEvaluate_Consignment(t *testing.T) {
	engine := NewEngine(EngineConfig{})

	c := newCase("c", map[string]string{"Goods Receipt": "true"},
		ev("Create Purchase Order Item"),
		ev("Record Goods Receipt"),
		ev("Record Invoice Receipt"),
	)
	verdict := mustEvaluate(t, engine, c, CategoryConsignment)
	if verdict.Compliant {
		t.Fatal("expected non-compliant verdict")
	}
	if !hasViolation(verdict, ViolationConsignmentInvoiceAtPOLevel) {
		t.Errorf("violations %v missing %q", verdict.Violations, ViolationConsignmentInvoiceAtPOLevel)
	}

	compliant := newCase("c2", map[string]string{"Goods Receipt": "true"},
		ev("Create Purchase Order Item"),
		ev("Record Goods Receipt"),
	)
	if verdict := mustEvaluate(t, engine, compliant, CategoryConsignment); !verdict.Compliant {
		t.Errorf("expected compliant verdict, got violations %v", verdict.Violations)
	}
}

// TestEvaluate_UnknownCategory tests the only hard error of the engine
func TestEvaluate_UnknownCategory(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	c := newCase("c", nil, ev("Create Purchase Order Item"))

	_, err := engine.Evaluate(c, Category("4_way"))
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("errors.Is(err, ErrUnknownCategory) = false, err = %v", err)
	}
	var unknownErr *UnknownCategoryError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("errors.As(*UnknownCategoryError) = false, err = %v", err)
	}
	if unknownErr.Category != "4_way" {
		t.Errorf("Category = %q, want %q", unknownErr.Category, "4_way")
	}
}

// TestEvaluate_Deterministic tests that evaluation is a pure function of
// the case content
func TestEvaluate_Deterministic(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	c := newCase("c", map[string]string{"PO item value": "100.0"},
		ev("Record Invoice Receipt"),
		evWorth("Record Goods Receipt", 90.0),
	)

	first := mustEvaluate(t, engine, c, CategoryThreeWayAfter)
	second := mustEvaluate(t, engine, c, CategoryThreeWayAfter)

	if first.Compliant != second.Compliant || !reflect.DeepEqual(first.Violations, second.Violations) {
		t.Errorf("repeated evaluation differs: %v vs %v", first.Violations, second.Violations)
	}
	if len(c.Events) != 2 {
		t.Errorf("evaluation mutated the case: %d events", len(c.Events))
	}
}

func hasViolation(v *Verdict, reason string) bool {
	for _, r := range v.Violations {
		if r == reason {
			return true
		}
	}
	return false
}
