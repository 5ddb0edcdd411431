package compliance

import "time"

// ReasonCompliant is the canonical reason attached to compliant cases so
// reason frequency tables cover both partitions.
const ReasonCompliant = "Compliant"

// Violation reason strings. These are stable reporting keys; changing one
// changes the grouping of every downstream frequency table.
const (
	ViolationMissingGoodsReceipt   = "Missing goods receipt activity"
	ViolationMissingInvoiceReceipt = "Missing invoice receipt activity"
	ViolationInvoiceBeforeGoods    = "Invoice received before goods receipt"

	ViolationGRVerificationNotSet = "GR-based invoice verification flag not set"
	ViolationGRVerificationSet    = "GR-based invoice verification flag set"
	ViolationGoodsReceiptNotSet   = "Goods receipt flag not set"
	ViolationGoodsReceiptSet      = "Goods receipt flag set"

	ViolationMissingPaymentBlockRemoval  = "Missing payment block removal activity"
	ViolationPaymentBlockRemovedBeforeGR = "Payment block removed before goods receipt"
	ViolationConsignmentInvoiceAtPOLevel = "Invoice receipt activity found at purchase order level (consignment)"

	ViolationNoInvoiceReceiptsForValues = "No invoice receipts for value validation"
	ViolationNoGoodsReceiptsForValues   = "No goods receipts for value validation"
	ViolationReceiptCountMismatch       = "Goods receipt count does not match invoice receipt count"
	ViolationNoCumulativeValues         = "No cumulative values recorded"
	ViolationValueMismatchExpected      = "PO item value does not match expected invoice value"
	ViolationValueMismatchFinal         = "PO item value does not match final cumulative value"
	ViolationZeroItemValue              = "PO item value is zero"
	ViolationZeroFinalValue             = "Final cumulative value is zero"
)

// Verdict is the outcome of evaluating one case against one category's
// rule set.
type Verdict struct {
	// CaseID is the evaluated case's identifier.
	CaseID string `json:"case_id"`

	// Category is the procurement flow the case was evaluated against.
	Category Category `json:"category"`

	// Compliant reports whether no rule was violated.
	Compliant bool `json:"compliant"`

	// Violations lists every violated rule in evaluation order. Empty
	// exactly when Compliant is true.
	Violations []string `json:"violations,omitempty"`

	// EvaluatedAt records when the verdict was produced.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Reasons returns the verdict's reporting reasons: the violation list for
// non-compliant cases, or the canonical compliant reason otherwise.
func (v *Verdict) Reasons() []string {
	if v.Compliant {
		return []string{ReasonCompliant}
	}
	return v.Violations
}
