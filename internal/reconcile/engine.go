// Package reconcile decides whether an extracted invoice matches a row of
// the expected-invoice ledger.
package reconcile

import (
	"log/slog"
	"strings"

	"github.com/financeiro-script/nfse-validator/constants"
	"github.com/financeiro-script/nfse-validator/internal/extract"
	"github.com/financeiro-script/nfse-validator/internal/ledger"
	"github.com/financeiro-script/nfse-validator/internal/normalize"
)

// Reason enumerates why a document failed reconciliation.
type Reason string

const (
	ReasonMissingRequiredFields Reason = "MISSING_REQUIRED_FIELDS"
	ReasonNoMatchingRow         Reason = "NO_MATCHING_ROW"
)

// Describe returns the human-readable form that goes into the audit log.
func (r Reason) Describe() string {
	switch r {
	case ReasonMissingRequiredFields:
		return "issuer CNPJ or competency date missing from the document"
	case ReasonNoMatchingRow:
		return "document data does not match any row of the validation spreadsheet"
	default:
		return "unknown reason"
	}
}

// Verdict is the outcome of reconciling one document. Reason is empty when
// Valid is true.
type Verdict struct {
	Valid  bool
	Reason Reason
}

// RequiredColumns are the ledger titles the engine depends on.
var RequiredColumns = []string{
	constants.ColumnCNPJ,
	constants.ColumnCompetency,
	constants.ColumnSalary,
	constants.ColumnLegalName,
}

// Engine matches extracted records against ledger rows. The ledger is the
// authoritative source: all four field comparisons must hold on a single row,
// with no partial credit and no numeric tolerance.
type Engine struct {
	index *ledger.Index
	rows  [][]string
	log   *slog.Logger
}

func NewEngine(index *ledger.Index, rows [][]string, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{index: index, rows: rows, log: log}
}

// Reconcile scans ledger rows top to bottom and returns valid on the first
// row whose CNPJ, competency period, value and legal name all match the
// record. Issuer CNPJ and competency date are mandatory search keys; their
// absence short-circuits before any row is looked at.
func (e *Engine) Reconcile(rec *extract.InvoiceRecord) Verdict {
	cnpj := strings.TrimSpace(rec.Issuer.CNPJ)
	if cnpj == "" || strings.TrimSpace(rec.CompetencyDate) == "" {
		return Verdict{Valid: false, Reason: ReasonMissingRequiredFields}
	}

	period := normalize.CompetencyDate(rec.CompetencyDate)
	value := strings.TrimSpace(normalize.Currency(rec.ServiceValue))
	name := strings.TrimSpace(rec.Issuer.LegalName)

	for i, row := range e.rows {
		if ledger.RowEmpty(row) {
			continue
		}

		rowCNPJ := strings.TrimSpace(e.index.Value(row, constants.ColumnCNPJ))
		rowPeriod := strings.TrimSpace(e.index.Value(row, constants.ColumnCompetency))
		rowValue := strings.TrimSpace(normalize.Currency(e.index.Value(row, constants.ColumnSalary)))
		rowName := strings.TrimSpace(e.index.Value(row, constants.ColumnLegalName))

		matched := rowCNPJ == cnpj &&
			strings.EqualFold(rowPeriod, period) &&
			rowValue == value &&
			rowName == name

		e.log.Debug("ledger row compared",
			"row", i+1,
			"cnpj", rowCNPJ, "want_cnpj", cnpj,
			"period", rowPeriod, "want_period", period,
			"value", rowValue, "want_value", value,
			"name", rowName, "want_name", name,
			"matched", matched,
		)

		if matched {
			return Verdict{Valid: true}
		}
	}
	return Verdict{Valid: false, Reason: ReasonNoMatchingRow}
}
