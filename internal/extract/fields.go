package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/financeiro-script/nfse-validator/constants"
)

// FieldExtractor locates field values in raw document text by anchoring on a
// known label and capturing the first following substring of the expected
// shape. Safe for sequential reuse across documents; the spec table is never
// mutated after construction.
type FieldExtractor struct {
	specs SpecTable
	log   *slog.Logger

	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

func NewFieldExtractor(specs SpecTable, log *slog.Logger) *FieldExtractor {
	if log == nil {
		log = slog.Default()
	}
	if specs == nil {
		specs = DefaultSpecs()
	}
	return &FieldExtractor{
		specs: specs,
		log:   log,
		cache: make(map[string]*regexp.Regexp),
	}
}

// Field returns the extracted value for the named field, or "" when the
// field has no spec or no label/pattern pair matches anywhere in text.
// scopePrefix, when non-empty, requires an occurrence of the prefix anywhere
// before the label; it narrows the start of the search but not its end.
func (e *FieldExtractor) Field(text, scopePrefix, name string) string {
	spec, ok := e.specs[name]
	if !ok {
		return ""
	}
	for _, label := range spec.Labels {
		re, err := e.compile(scopePrefix, label, spec.Pattern)
		if err != nil {
			e.log.Warn("field pattern failed to compile", "field", name, "label", label, "error", err)
			continue
		}
		m := re.FindStringSubmatch(text)
		if len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ExtractInvoice builds a full InvoiceRecord from raw document text. Fields
// that cannot be located stay empty; an empty input yields an all-empty
// record, not an error.
func (e *FieldExtractor) ExtractInvoice(text string) *InvoiceRecord {
	rec := &InvoiceRecord{}
	for _, name := range constants.InvoiceFields {
		v := e.Field(text, "", name)
		switch name {
		case constants.FieldAccessKey:
			rec.AccessKey = v
		case constants.FieldInvoiceNumber:
			rec.Number = v
		case constants.FieldCompetencyDate:
			rec.CompetencyDate = v
		case constants.FieldIssueDate:
			rec.IssueDate = v
		case constants.FieldServiceCode:
			rec.ServiceCode = v
		case constants.FieldServiceDescription:
			rec.ServiceDescription = v
		case constants.FieldMunicipalTaxStatus:
			rec.MunicipalTaxStatus = v
		case constants.FieldMunicipalIncidence:
			rec.MunicipalIncidence = v
		case constants.FieldServiceValue:
			rec.ServiceValue = v
		case constants.FieldNetValue:
			rec.NetValue = v
		}
	}
	rec.Issuer = e.extractParty(text, constants.ScopeIssuer)
	rec.Recipient = e.extractParty(text, constants.ScopeRecipient)
	return rec
}

func (e *FieldExtractor) extractParty(text, scopePrefix string) PartyRecord {
	var p PartyRecord
	for _, name := range constants.PartyFields {
		v := e.Field(text, scopePrefix, name)
		switch name {
		case constants.FieldCNPJ:
			p.CNPJ = v
		case constants.FieldLegalName:
			p.LegalName = v
		case constants.FieldEmail:
			p.Email = v
		case constants.FieldAddress:
			p.Address = v
		case constants.FieldMunicipality:
			p.Municipality = v
		case constants.FieldPostalCode:
			p.PostalCode = v
		}
	}
	return p
}

// compile builds the full anchored expression for one (scope, label,
// pattern) triple. Matching is case-insensitive and gaps cross line
// boundaries, so a label and its value may sit on different lines.
func (e *FieldExtractor) compile(scopePrefix, label, pattern string) (*regexp.Regexp, error) {
	key := scopePrefix + "\x00" + label + "\x00" + pattern

	e.mu.Lock()
	re, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return re, nil
	}

	scope := ""
	if scopePrefix != "" {
		scope = fmt.Sprintf(`(?:%s[\s\S]*?)`, scopePrefix)
	}
	full := fmt.Sprintf(`(?is)%s(?:%s\s*[:\-]?\s*)[\s\S]*?%s`, scope, label, pattern)

	re, err := regexp.Compile(full)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[key] = re
	e.mu.Unlock()
	return re, nil
}
