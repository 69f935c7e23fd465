package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeiro-script/nfse-validator/constants"
)

const sampleText = `DANFSE v1.0
Chave de Acesso da NFS-e
21650030000187000000000023062500000123456789
Número da NFS-e: 142
Competência da NFS-e
05/03/2024
Data e Hora da emissão 05/03/2024 14:22:10
Prestador do Serviço
CNPJ: 12.345.678/0001-90
Nome: ACME SERVICOS LTDA
E-mail: contato@acme.com.br
Endereço: Rua das Laranjeiras, 100
Município: São Paulo
CEP: 01310-100
Tomador do Serviço
CNPJ: 98.765.432/0001-10
Nome: BETA CONSULTORIA SA
E-mail: fiscal@beta.com.br
Endereço: Av Brasil, 2000
Município: Rio de Janeiro
CEP: 20040-002
Código de Tributação Nacional 01.05.01
Descrição do Serviço
Consultoria em engenharia de software
Tributação do ISSQN Operação Tributável
Município de Incidência do ISSQN São Paulo
Valor do Serviço R$ 1.500,00
Valor Líquido da NFS-e R$ 1.425,00
`

func newExtractor(t *testing.T) *FieldExtractor {
	t.Helper()
	return NewFieldExtractor(DefaultSpecs(), nil)
}

func TestField_LabelAnchored(t *testing.T) {
	e := newExtractor(t)

	assert.Equal(t, "142", e.Field(sampleText, "", constants.FieldInvoiceNumber))
	assert.Equal(t, "05/03/2024", e.Field(sampleText, "", constants.FieldCompetencyDate))
	assert.Equal(t, "05/03/2024 14:22:10", e.Field(sampleText, "", constants.FieldIssueDate))
	assert.Equal(t, "01.05.01", e.Field(sampleText, "", constants.FieldServiceCode))
	assert.Equal(t, "1.500,00", e.Field(sampleText, "", constants.FieldServiceValue))
	assert.Equal(t, "1.425,00", e.Field(sampleText, "", constants.FieldNetValue))
}

func TestField_CaseInsensitiveLabels(t *testing.T) {
	e := newExtractor(t)
	text := "NÚMERO DA NFS-E: 77\n"
	assert.Equal(t, "77", e.Field(text, "", constants.FieldInvoiceNumber))
}

func TestField_ValueOnNextLine(t *testing.T) {
	e := newExtractor(t)
	text := "Número da NFS-e\n901\n"
	assert.Equal(t, "901", e.Field(text, "", constants.FieldInvoiceNumber))
}

func TestField_Deterministic(t *testing.T) {
	e := newExtractor(t)
	first := e.ExtractInvoice(sampleText)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, e.ExtractInvoice(sampleText))
	}
}

func TestField_MissingLabelYieldsEmpty(t *testing.T) {
	e := newExtractor(t)
	assert.Equal(t, "", e.Field("no labels here at all", "", constants.FieldInvoiceNumber))
	assert.Equal(t, "", e.Field("", "", constants.FieldCNPJ))
}

func TestField_UnknownFieldYieldsEmpty(t *testing.T) {
	e := newExtractor(t)
	assert.Equal(t, "", e.Field(sampleText, "", "no_such_field"))
}

func TestField_SynonymLabels(t *testing.T) {
	e := newExtractor(t)

	// either synonym alone resolves the same field
	assert.Equal(t, "ACME SERVICOS LTDA",
		e.Field("Nome: ACME SERVICOS LTDA\n", "", constants.FieldLegalName))
	assert.Equal(t, "ACME SERVICOS LTDA",
		e.Field("Razão Social: ACME SERVICOS LTDA\n", "", constants.FieldLegalName))
}

func TestField_ScopeIsolation(t *testing.T) {
	e := newExtractor(t)

	issuer := e.Field(sampleText, constants.ScopeIssuer, constants.FieldCNPJ)
	recipient := e.Field(sampleText, constants.ScopeRecipient, constants.FieldCNPJ)

	assert.Equal(t, "12.345.678/0001-90", issuer)
	assert.Equal(t, "98.765.432/0001-10", recipient)

	assert.Equal(t, "ACME SERVICOS LTDA",
		e.Field(sampleText, constants.ScopeIssuer, constants.FieldLegalName))
	assert.Equal(t, "BETA CONSULTORIA SA",
		e.Field(sampleText, constants.ScopeRecipient, constants.FieldLegalName))
}

func TestExtractInvoice_FullRecord(t *testing.T) {
	e := newExtractor(t)
	rec := e.ExtractInvoice(sampleText)
	require.NotNil(t, rec)

	assert.Equal(t, "142", rec.Number)
	assert.Equal(t, "05/03/2024", rec.CompetencyDate)
	assert.Equal(t, "Consultoria em engenharia de software", rec.ServiceDescription)
	assert.Equal(t, "1.500,00", rec.ServiceValue)

	assert.Equal(t, "12.345.678/0001-90", rec.Issuer.CNPJ)
	assert.Equal(t, "ACME SERVICOS LTDA", rec.Issuer.LegalName)
	assert.Equal(t, "contato@acme.com.br", rec.Issuer.Email)
	assert.Equal(t, "01310-100", rec.Issuer.PostalCode)

	assert.Equal(t, "98.765.432/0001-10", rec.Recipient.CNPJ)
	assert.Equal(t, "BETA CONSULTORIA SA", rec.Recipient.LegalName)
}

func TestExtractInvoice_EmptyText(t *testing.T) {
	e := newExtractor(t)
	rec := e.ExtractInvoice("")
	require.NotNil(t, rec)
	assert.Equal(t, &InvoiceRecord{}, rec)
}
