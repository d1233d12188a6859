package builder

import "github.com/getmockd/phiremock/pkg/domain"

// IsEqualTo matches values equal to v.
func IsEqualTo(v string) domain.Condition {
	return domain.Condition{Matcher: domain.MatcherIsEqualTo, Value: v}
}

// IsSameString matches values equal to v ignoring case.
func IsSameString(v string) domain.Condition {
	return domain.Condition{Matcher: domain.MatcherIsSameString, Value: v}
}

// Matches matches values against the regular expression pattern.
func Matches(pattern string) domain.Condition {
	return domain.Condition{Matcher: domain.MatcherMatches, Value: pattern}
}

// Contains matches values containing v.
func Contains(v string) domain.Condition {
	return domain.Condition{Matcher: domain.MatcherContains, Value: v}
}

// IsSameJSONObject matches bodies that decode to the same JSON value as v.
func IsSameJSONObject(v string) domain.Condition {
	return domain.Condition{Matcher: domain.MatcherIsSameJSONObject, Value: v}
}
