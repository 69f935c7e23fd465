package extract

import (
	"github.com/financeiro-script/nfse-validator/constants"
)

// FieldSpec describes how one field is located in raw document text: a list
// of anchor labels tried in priority order, and a capture pattern for the
// value that follows. Pattern must contain a capture group; group 1 is the
// extracted value.
type FieldSpec struct {
	Labels  []string `json:"labels"`
	Pattern string   `json:"pattern"`
}

// SpecTable maps a field name to its extraction spec. Built once at startup
// and treated as read-only afterwards.
type SpecTable map[string]FieldSpec

// DefaultSpecs returns the built-in label/pattern table for the national
// NFSe layout. Labels are regular-expression fragments; municipalities that
// deviate can override entries through a field-spec file.
func DefaultSpecs() SpecTable {
	return SpecTable{
		constants.FieldAccessKey: {
			Labels:  []string{`Chave de Acesso da NFS-e`},
			Pattern: `([\d]+)`,
		},
		constants.FieldInvoiceNumber: {
			Labels:  []string{`Número da NFS-e`},
			Pattern: `(\d+)`,
		},
		constants.FieldCompetencyDate: {
			Labels:  []string{`Competência da NFS-e`},
			Pattern: `([\d/]+)`,
		},
		constants.FieldIssueDate: {
			Labels:  []string{`Data e Hora da emissão`},
			Pattern: `([\d/]+ \d{2}:\d{2}:\d{2})`,
		},
		constants.FieldServiceCode: {
			Labels:  []string{`Código de Tributação Nacional`},
			Pattern: `([\d.]+)`,
		},
		constants.FieldServiceDescription: {
			Labels:  []string{`Descrição do Serviço`},
			Pattern: `([^\n]+)`,
		},
		constants.FieldMunicipalTaxStatus: {
			Labels:  []string{`Tributação do ISSQN`},
			Pattern: `([^\n]+)`,
		},
		constants.FieldMunicipalIncidence: {
			Labels:  []string{`Município de Incidência do ISSQN`},
			Pattern: `([^\n]+)`,
		},
		constants.FieldServiceValue: {
			Labels:  []string{`Valor do Serviço`},
			Pattern: `R\$\s*([\d,\.]+)`,
		},
		constants.FieldNetValue: {
			Labels:  []string{`Valor Líquido da NFS-e`},
			Pattern: `R\$\s*([\d.,]+)`,
		},
		constants.FieldCNPJ: {
			Labels:  []string{`CNPJ`},
			Pattern: `(\d{2}\.?(\d{3}\.?){2}([/])?\d{4}-?\d{2})`,
		},
		constants.FieldLegalName: {
			Labels:  []string{`Nome`, `Razão Social`},
			Pattern: `([^\n]+)`,
		},
		constants.FieldEmail: {
			Labels:  []string{`E-mail`},
			Pattern: `([\w.\-]+@[\w.\-]+)`,
		},
		constants.FieldAddress: {
			Labels:  []string{`Endereço`},
			Pattern: `([^\n]+)`,
		},
		constants.FieldMunicipality: {
			Labels:  []string{`Município`},
			Pattern: `([^\n]+)`,
		},
		constants.FieldPostalCode: {
			Labels:  []string{`CEP`},
			Pattern: `(\d{5}-?\d{3})`,
		},
	}
}
