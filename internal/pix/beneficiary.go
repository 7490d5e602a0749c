package pix

import (
	"regexp"
	"strings"
)

// FallbackBeneficiary is shown when the payload does not carry a usable merchant name.
const FallbackBeneficiary = "Mercado Pago"

var beneficiaryAllowed = regexp.MustCompile(`^[\p{L}0-9 .,&'/-]{1,25}$`)

// Placeholder names seen on sandbox charges.
var rejectedBeneficiaries = map[string]struct{}{
	"NA":            {},
	"N/A":           {},
	"NULL":          {},
	"UNDEFINED":     {},
	"NOME":          {},
	"MERCHANT":      {},
	"TEST":          {},
	"TESTE":         {},
	"TEST USER":     {},
	"USUARIO TESTE": {},
	"COMPRADOR":     {},
	"VENDEDOR":      {},
}

// BeneficiaryName returns the display name for a PIX payload, falling back to
// FallbackBeneficiary when decoding fails or the name looks like a placeholder.
func BeneficiaryName(raw string) string {
	p, err := Decode(raw)
	if err != nil {
		return FallbackBeneficiary
	}
	return DisplayName(p.MerchantName)
}

func DisplayName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || !beneficiaryAllowed.MatchString(name) {
		return FallbackBeneficiary
	}
	upper := strings.ToUpper(name)
	if _, rejected := rejectedBeneficiaries[upper]; rejected {
		return FallbackBeneficiary
	}
	if strings.HasPrefix(upper, "TESTUSER") {
		return FallbackBeneficiary
	}
	return name
}
