// Package merge reconciles a local company record with optional provider
// payloads into a single company detail under a fixed precedence policy. A
// merge never fails: anything missing or malformed degrades to "field
// absent".
package merge

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"finsight/internal/domain"
)

// Merge builds the reconciled detail. The local record owns every identity
// field (id, INN, activity codes, region) and no provider may overwrite
// them. The counterparty payload fills the enrichment-only fields; the
// supplementary payload is attached as-is, without field-level merging.
func Merge(local domain.CompanyRecord, counterparty *domain.CounterpartyDoc, supplementary map[string]any) domain.CompanyDetail {
	detail := domain.CompanyDetail{
		CompanyID:  local.CompanyID,
		Name:       local.Name,
		INN:        local.INN,
		OKVED:      local.OKVED,
		OKVEDExtra: local.OKVEDExtra,
		Location:   local.Location(),
	}

	if counterparty.HasCompanyBlock() {
		applyCounterparty(&detail, counterparty)
	}

	if supplementary != nil {
		detail.Supplementary = supplementary
	}
	return detail
}

func applyCounterparty(detail *domain.CompanyDetail, doc *domain.CounterpartyDoc) {
	// A strictly longer short name is taken as the more complete one. This
	// is the only field where a provider may displace local data. Length is
	// counted in characters, not bytes: most names here are cyrillic.
	if name, ok := doc.ShortName(); ok && utf8.RuneCountInString(name) > utf8.RuneCountInString(detail.Name) {
		detail.Name = name
	}

	if v, ok := doc.FullName(); ok {
		detail.FullName = v
	}
	if v, ok := doc.OGRN(); ok {
		detail.OGRN = v
	}
	if v, ok := doc.KPP(); ok {
		detail.KPP = v
	}
	if v, ok := doc.LegalForm(); ok {
		detail.LegalForm = v
	}
	if v, ok := doc.AddressLine(); ok {
		detail.Address = v
	}
	if v, ok := doc.RegistrationDate(); ok {
		detail.RegistrationDate = v
	}
	if v, ok := doc.CharterCapital(); ok {
		detail.CharterCapital = v
	}
	if v, ok := doc.Status(); ok {
		detail.Status = v
	}
	if owners, ok := doc.Owners(); ok {
		detail.Owners = roundOwnerShares(owners)
	}
	if v, ok := doc.Managers(); ok {
		detail.Managers = v
	}
	if v, ok := doc.TaxModeInfo(); ok {
		detail.TaxModeInfo = v
	}

	if detail.OKVED == "" {
		applyDerivedOKVED(detail, doc)
	}
}

// applyDerivedOKVED fills the activity codes from the payload when the local
// store has none: an explicit single code field wins, otherwise the first
// coded list entry becomes primary and the second, if any, secondary.
func applyDerivedOKVED(detail *domain.CompanyDetail, doc *domain.CounterpartyDoc) {
	if code, ok := doc.PrimaryOKVED(); ok {
		detail.OKVED = code
		return
	}
	list := doc.OKVEDList()
	if len(list) == 0 {
		return
	}
	if code, ok := domain.Code(list[0]); ok {
		detail.OKVED = code
	}
	if len(list) > 1 {
		if code, ok := domain.Code(list[1]); ok {
			detail.OKVEDExtra = code
		}
	}
}

// roundOwnerShares rounds each owner's fractional share to two decimals for
// display. Shares that fail to coerce to a number are left untouched rather
// than failing the record.
func roundOwnerShares(owners *domain.Ownership) *domain.Ownership {
	return &domain.Ownership{
		Individuals: roundGroup(owners.Individuals),
		Companies:   roundGroup(owners.Companies),
	}
}

func roundGroup(group []map[string]any) []map[string]any {
	if group == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(group))
	for _, owner := range group {
		copied := make(map[string]any, len(owner))
		for k, v := range owner {
			copied[k] = v
		}
		if share, ok := shareValue(copied["share"]); ok {
			copied["share"], _ = share.Round(2).Float64()
		}
		out = append(out, copied)
	}
	return out
}

func shareValue(v any) (decimal.Decimal, bool) {
	switch s := v.(type) {
	case float64:
		if s == 0 {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(s), true
	case int:
		if s == 0 {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromInt(int64(s)), true
	case string:
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}
