package compliance

import (
	"math"

	"infoprom/poaudit/pkg/eventlog"
)

// Case attribute names carrying the configured flow flags. The verification
// flag is spelled with a capital B only in the 3-way-after exports; both
// spellings are preserved exactly.
const (
	attrGRBasedVerifAfter = "GR-Based Inv. Verif."
	attrGRBasedVerif      = "GR-based Inv. Verif."
	attrGoodsReceipt      = "Goods Receipt"
	attrPOItemValue       = "PO item value"
)

// DefaultValueTolerance is the absolute tolerance for monetary comparisons.
const DefaultValueTolerance = 0.01

// ruleSet evaluates one category's checks against a case view and returns
// every violation. All checks run; nothing short-circuits.
type ruleSet func(v *caseView) []string

// caseView bundles a case with its derived activity sequence and the
// engine's immutable configuration, so each rule reads precomputed state
// instead of re-deriving it.
type caseView struct {
	c         *eventlog.Case
	names     []string
	patterns  *PatternConfig
	tolerance float64
}

func newCaseView(c *eventlog.Case, patterns *PatternConfig, tolerance float64) *caseView {
	return &caseView{
		c:         c,
		names:     c.ActivityNames(),
		patterns:  patterns,
		tolerance: tolerance,
	}
}

func (v *caseView) has(group string) bool {
	return hasPattern(v.names, v.patterns.Patterns(group))
}

func (v *caseView) count(group string) int {
	return countMatches(v.names, v.patterns.Patterns(group))
}

// before reports whether every firstGroup activity precedes every
// secondGroup activity, vacuously true when either group is absent.
func (v *caseView) before(firstGroup, secondGroup string) bool {
	return sequenceBefore(v.names, v.patterns.Patterns(firstGroup), v.patterns.Patterns(secondGroup))
}

func (v *caseView) boolAttr(name string, def bool) bool {
	return v.c.BoolAttr(name, def)
}

// poItemValue resolves the case's reference value: the "PO item value"
// attribute when present and parseable, else the first cumulative value,
// else zero.
func (v *caseView) poItemValue() float64 {
	if raw, ok := v.c.Attr(attrPOItemValue); ok && raw != "" {
		if val := v.c.FloatAttr(attrPOItemValue, math.NaN()); !math.IsNaN(val) {
			return val
		}
	}
	if values := v.c.CumulativeValues(); len(values) > 0 {
		return values[0]
	}
	return 0
}

// checkThreeWayAfter validates 3-way match cases with the invoice expected
// after the goods receipt.
func checkThreeWayAfter(v *caseView) []string {
	var violations []string

	if !v.has(GroupGoodsReceipt) {
		violations = append(violations, ViolationMissingGoodsReceipt)
	}
	if !v.has(GroupInvoiceReceipt) {
		violations = append(violations, ViolationMissingInvoiceReceipt)
	}
	if !v.before(GroupGoodsReceipt, GroupInvoiceReceipt) {
		violations = append(violations, ViolationInvoiceBeforeGoods)
	}
	if !v.boolAttr(attrGRBasedVerifAfter, true) {
		violations = append(violations, ViolationGRVerificationNotSet)
	}
	if !v.boolAttr(attrGoodsReceipt, true) {
		violations = append(violations, ViolationGoodsReceiptNotSet)
	}

	return append(violations, checkValuesThreeWay(v)...)
}

// checkThreeWayBefore validates 3-way match cases where the invoice may
// precede the goods receipt. The payment-block-set presence and ordering
// checks are intentionally not enforced; only removal presence and
// removal-after-goods-receipt ordering are active.
func checkThreeWayBefore(v *caseView) []string {
	var violations []string

	if !v.has(GroupGoodsReceipt) {
		violations = append(violations, ViolationMissingGoodsReceipt)
	}
	if !v.has(GroupInvoiceReceipt) {
		violations = append(violations, ViolationMissingInvoiceReceipt)
	}
	if v.boolAttr(attrGRBasedVerif, false) {
		violations = append(violations, ViolationGRVerificationSet)
	}
	if !v.boolAttr(attrGoodsReceipt, true) {
		violations = append(violations, ViolationGoodsReceiptNotSet)
	}
	if !v.has(GroupPaymentBlockRemoved) {
		violations = append(violations, ViolationMissingPaymentBlockRemoval)
	}
	if !v.before(GroupGoodsReceipt, GroupPaymentBlockRemoved) {
		violations = append(violations, ViolationPaymentBlockRemovedBeforeGR)
	}

	return append(violations, checkValuesThreeWay(v)...)
}

// checkTwoWay validates 2-way match cases, which reconcile purchase order
// and invoice without a goods receipt.
func checkTwoWay(v *caseView) []string {
	var violations []string

	if !v.has(GroupInvoiceReceipt) {
		violations = append(violations, ViolationMissingInvoiceReceipt)
	}
	if v.boolAttr(attrGRBasedVerif, false) {
		violations = append(violations, ViolationGRVerificationSet)
	}
	if v.boolAttr(attrGoodsReceipt, false) {
		violations = append(violations, ViolationGoodsReceiptSet)
	}

	return append(violations, checkValuesTwoWay(v)...)
}

// checkConsignment validates consignment cases: goods are received but
// invoicing runs through a separate process, so no invoice receipt may
// appear at purchase-order level.
func checkConsignment(v *caseView) []string {
	var violations []string

	if !v.has(GroupGoodsReceipt) {
		violations = append(violations, ViolationMissingGoodsReceipt)
	}
	if v.boolAttr(attrGRBasedVerif, false) {
		violations = append(violations, ViolationGRVerificationSet)
	}
	if !v.boolAttr(attrGoodsReceipt, true) {
		violations = append(violations, ViolationGoodsReceiptNotSet)
	}
	if v.has(GroupInvoiceReceipt) {
		violations = append(violations, ViolationConsignmentInvoiceAtPOLevel)
	}

	return violations
}

// checkValuesThreeWay runs the 3-way value-consistency checks: one invoice
// per goods receipt, with the PO item value matching the final cumulative
// value divided by the invoice count.
func checkValuesThreeWay(v *caseView) []string {
	invoiceCount := v.count(GroupInvoiceReceipt)
	if invoiceCount == 0 {
		return []string{ViolationNoInvoiceReceiptsForValues}
	}
	goodsCount := v.count(GroupGoodsReceipt)
	if goodsCount == 0 {
		return []string{ViolationNoGoodsReceiptsForValues}
	}

	var violations []string
	if goodsCount != invoiceCount {
		violations = append(violations, ViolationReceiptCountMismatch)
	}

	values := v.c.CumulativeValues()
	if len(values) == 0 {
		return append(violations, ViolationNoCumulativeValues)
	}

	final := values[len(values)-1]
	itemValue := v.poItemValue()
	expected := final / float64(invoiceCount)

	if math.Abs(itemValue-expected) > v.tolerance {
		violations = append(violations, ViolationValueMismatchExpected)
	}
	if itemValue == 0 {
		violations = append(violations, ViolationZeroItemValue)
	}
	if final == 0 && itemValue != 0 {
		violations = append(violations, ViolationZeroFinalValue)
	}
	return violations
}

// checkValuesTwoWay runs the 2-way variant: without goods receipts the
// final cumulative value must equal the PO item value directly.
func checkValuesTwoWay(v *caseView) []string {
	values := v.c.CumulativeValues()
	if len(values) == 0 {
		return []string{ViolationNoCumulativeValues}
	}

	var violations []string
	final := values[len(values)-1]
	itemValue := v.poItemValue()

	if math.Abs(itemValue-final) > v.tolerance {
		violations = append(violations, ViolationValueMismatchFinal)
	}
	if itemValue == 0 {
		violations = append(violations, ViolationZeroItemValue)
	}
	if final == 0 && itemValue != 0 {
		violations = append(violations, ViolationZeroFinalValue)
	}
	return violations
}
