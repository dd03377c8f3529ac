package domain

// Unlimited marks a tier window with no cap. Only tier.go compares against
// it directly; everyone else goes through IsUnlimited.
const Unlimited = -1

// Tier is a named bundle of rate limits assigned from a reputation score by
// the session/tier manager, or overridden per identity by an operator.
type Tier struct {
	Name            string `json:"name"`
	RequestsPerHour int    `json:"requests_per_hour"`
	RequestsPerDay  int    `json:"requests_per_day"`
}

// The named tiers, in ascending trust order.
var (
	TierNew         = Tier{Name: "new", RequestsPerHour: 10, RequestsPerDay: 100}
	TierEstablished = Tier{Name: "established", RequestsPerHour: 60, RequestsPerDay: 600}
	TierTrusted     = Tier{Name: "trusted", RequestsPerHour: 300, RequestsPerDay: 3000}
	TierVerified    = Tier{Name: "verified", RequestsPerHour: Unlimited, RequestsPerDay: Unlimited}
)

// CustomTier builds an operator-set override tier.
func CustomTier(hourly, daily int) Tier {
	return Tier{Name: "custom", RequestsPerHour: hourly, RequestsPerDay: daily}
}

// IsUnlimited reports whether admission checks should short-circuit to
// allow without any bucket accounting.
func (t Tier) IsUnlimited() bool {
	return t.RequestsPerHour == Unlimited
}

// IsZero reports an unset tier value.
func (t Tier) IsZero() bool {
	return t.Name == ""
}

// TierByName resolves a named tier. Custom tiers carry per-identity limits
// and are not resolvable by name.
func TierByName(name string) (Tier, bool) {
	switch name {
	case TierNew.Name:
		return TierNew, true
	case TierEstablished.Name:
		return TierEstablished, true
	case TierTrusted.Name:
		return TierTrusted, true
	case TierVerified.Name:
		return TierVerified, true
	default:
		return Tier{}, false
	}
}

// TierForScore maps a reputation score (0-100) to a named tier.
func TierForScore(score int) Tier {
	switch {
	case score >= 90:
		return TierVerified
	case score >= 70:
		return TierTrusted
	case score >= 40:
		return TierEstablished
	default:
		return TierNew
	}
}
