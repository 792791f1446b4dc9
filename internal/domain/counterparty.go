package domain

// CounterpartyDoc wraps the primary provider's counterparty payload. The
// provider returns deeply nested, loosely schemed JSON; every read goes
// through an accessor that reports absence instead of panicking on shape
// drift. The raw document is kept verbatim so nothing is lost in decoding.
type CounterpartyDoc struct {
	Raw map[string]any
}

func (d *CounterpartyDoc) company() map[string]any {
	if d == nil || d.Raw == nil {
		return nil
	}
	m, _ := d.Raw["company"].(map[string]any)
	return m
}

func (d *CounterpartyDoc) names() map[string]any {
	m, _ := d.company()["company_names"].(map[string]any)
	return m
}

// HasCompanyBlock reports whether the payload carries a company block at all.
// Without it the document contributes nothing to a merge.
func (d *CounterpartyDoc) HasCompanyBlock() bool {
	return d.company() != nil
}

// ShortName returns the provider's short company name.
func (d *CounterpartyDoc) ShortName() (string, bool) {
	return asString(d.names()["short_name"])
}

// FullName returns the provider's full legal name.
func (d *CounterpartyDoc) FullName() (string, bool) {
	return asString(d.names()["full_name"])
}

// OGRN is carried at the top level of the payload, not inside the company
// block.
func (d *CounterpartyDoc) OGRN() (string, bool) {
	if d == nil || d.Raw == nil {
		return "", false
	}
	return asString(d.Raw["ogrn"])
}

// KPP returns the tax registration reason code.
func (d *CounterpartyDoc) KPP() (string, bool) {
	return asString(d.company()["kpp"])
}

// LegalForm returns the legal form (OPF) string.
func (d *CounterpartyDoc) LegalForm() (string, bool) {
	return asString(d.company()["opf"])
}

// AddressLine returns the single-line registered address.
func (d *CounterpartyDoc) AddressLine() (string, bool) {
	addr, _ := d.company()["address"].(map[string]any)
	return asString(addr["line_address"])
}

// RegistrationDate returns the registration date as the provider states it.
func (d *CounterpartyDoc) RegistrationDate() (string, bool) {
	return asString(d.company()["registration_date"])
}

// CharterCapital returns the charter capital as the provider states it.
func (d *CounterpartyDoc) CharterCapital() (string, bool) {
	return asString(d.company()["charter_capital"])
}

// Status returns the provider's status sub-document.
func (d *CounterpartyDoc) Status() (map[string]any, bool) {
	m, ok := d.company()["status"].(map[string]any)
	return m, ok
}

// Owners splits the owner block into its natural-person and corporate groups.
func (d *CounterpartyDoc) Owners() (*Ownership, bool) {
	raw, ok := d.company()["owners"].(map[string]any)
	if !ok {
		return nil, false
	}
	own := &Ownership{
		Individuals: asEntryList(raw["fl"]),
		Companies:   asEntryList(raw["ul"]),
	}
	if own.Individuals == nil && own.Companies == nil {
		return nil, false
	}
	return own, true
}

// Managers returns the management list.
func (d *CounterpartyDoc) Managers() ([]map[string]any, bool) {
	list := asEntryList(d.company()["managers"])
	return list, list != nil
}

// TaxModeInfo returns the tax-regime sub-document.
func (d *CounterpartyDoc) TaxModeInfo() (map[string]any, bool) {
	m, ok := d.company()["tax_mode_info"].(map[string]any)
	return m, ok
}

// PrimaryOKVED returns the explicit single activity-code field, when present.
func (d *CounterpartyDoc) PrimaryOKVED() (string, bool) {
	return asString(d.company()["okved"])
}

// OKVEDList returns the coded activity list. Entries may be structured
// objects with a "code" field or bare scalars; Code handles both.
func (d *CounterpartyDoc) OKVEDList() []any {
	list, _ := d.company()["okveds"].([]any)
	return list
}

// Code coerces one activity-list entry to its plain code text. Structured
// entries contribute their "code" field, scalars their string form.
func Code(entry any) (string, bool) {
	if m, ok := entry.(map[string]any); ok {
		return asString(m["code"])
	}
	return asString(entry)
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func asEntryList(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
