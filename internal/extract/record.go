package extract

// PartyRecord holds one legal entity on the invoice, issuer or recipient.
// Empty string means the field was not found in the source text.
type PartyRecord struct {
	CNPJ         string
	LegalName    string
	Email        string
	Address      string
	Municipality string
	PostalCode   string
}

// InvoiceRecord holds everything extracted from one NFSe document. It is
// built once per source file and read-only afterwards.
type InvoiceRecord struct {
	AccessKey          string
	Number             string
	CompetencyDate     string
	IssueDate          string
	ServiceCode        string
	ServiceDescription string
	MunicipalTaxStatus string
	MunicipalIncidence string
	ServiceValue       string
	NetValue           string

	Issuer    PartyRecord
	Recipient PartyRecord
}
