package constants

// Invoice field names driving label-anchored extraction. Stable values
// (field-spec override files reference these exact strings).
const (
	FieldAccessKey          = "access_key"
	FieldInvoiceNumber      = "invoice_number"
	FieldCompetencyDate     = "competency_date"
	FieldIssueDate          = "issue_date"
	FieldServiceCode        = "service_code"
	FieldServiceDescription = "service_description"
	FieldMunicipalTaxStatus = "municipal_tax_status"
	FieldMunicipalIncidence = "municipal_incidence"
	FieldServiceValue       = "service_value"
	FieldNetValue           = "net_value"

	FieldCNPJ         = "cnpj"
	FieldLegalName    = "legal_name"
	FieldEmail        = "email"
	FieldAddress      = "address"
	FieldMunicipality = "municipality"
	FieldPostalCode   = "postal_code"
)

// Section markers that disambiguate repeated party labels on an NFSe.
const (
	ScopeIssuer    = "Prestador"
	ScopeRecipient = "Tomador"
)

// Ledger column titles required for reconciliation. Matching is
// case-insensitive and ignores whitespace, so accents must be exact.
const (
	ColumnCNPJ       = "CNPJ"
	ColumnCompetency = "Competência"
	ColumnSalary     = "Salário"
	ColumnLegalName  = "Razão Social"
)

// InvoiceFields lists the top-level invoice fields in extraction order.
var InvoiceFields = []string{
	FieldAccessKey,
	FieldInvoiceNumber,
	FieldCompetencyDate,
	FieldIssueDate,
	FieldServiceCode,
	FieldServiceDescription,
	FieldMunicipalTaxStatus,
	FieldMunicipalIncidence,
	FieldServiceValue,
	FieldNetValue,
}

// PartyFields lists the per-party fields extracted under a scope marker.
var PartyFields = []string{
	FieldCNPJ,
	FieldLegalName,
	FieldEmail,
	FieldAddress,
	FieldMunicipality,
	FieldPostalCode,
}
