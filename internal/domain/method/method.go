// Package method enumerates the supported ranking methods.
package method

import (
	"strings"

	"github.com/kailas-cloud/rankdex/internal/domain"
)

// Kind is a ranking method.
type Kind string

// Ranking methods.
const (
	MinSum  Kind = "MINSUM"
	MinMax  Kind = "MINMAX"
	MaxMin  Kind = "MAXMIN"
	DIP     Kind = "DIP"
	WSR     Kind = "WSR"
	TOPSIS  Kind = "TOPSIS"
	ELECTRE Kind = "ELECTRE"
	VIKOR   Kind = "VIKOR"
	AHP     Kind = "AHP"
	CHP     Kind = "CHP"
	// GSR is the generalized iterative elimination rule.
	GSR Kind = "GSR"
)

// All lists every method in canonical order.
var All = []Kind{MinSum, MinMax, MaxMin, DIP, WSR, TOPSIS, ELECTRE, VIKOR, AHP, CHP, GSR}

var aliases = map[string]Kind{
	"ELECTRE-IV": ELECTRE,
	"ELECTRE_IV": ELECTRE,
	"ELECTREIV":  ELECTRE,
	"WSM":        WSR,
	"MIN-SUM":    MinSum,
	"MIN-MAX":    MinMax,
	"MAX-MIN":    MaxMin,
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	for _, m := range All {
		if k == m {
			return true
		}
	}
	return false
}

// String returns the canonical upper-case name.
func (k Kind) String() string { return string(k) }

// Lower returns the lower-case name used in metric labels and error messages.
func (k Kind) Lower() string { return strings.ToLower(string(k)) }

// Weighted reports whether the method consumes per-criterion weights.
func (k Kind) Weighted() bool {
	switch k {
	case WSR, TOPSIS, VIKOR, AHP, CHP:
		return true
	default:
		return false
	}
}

// Parse resolves a method name case-insensitively.
func Parse(name string) (Kind, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if k := Kind(n); k.IsValid() {
		return k, nil
	}
	if k, ok := aliases[n]; ok {
		return k, nil
	}
	return "", domain.Errorf(domain.ErrUnknownMethod, "%q", name)
}

// ParseList resolves names in order and rejects duplicates.
func ParseList(names []string) ([]Kind, error) {
	if len(names) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidParameter, "at least one method is required")
	}
	seen := make(map[Kind]struct{}, len(names))
	out := make([]Kind, 0, len(names))
	for _, n := range names {
		k, err := Parse(n)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[k]; dup {
			return nil, domain.Errorf(domain.ErrInvalidParameter, "method %s selected twice", k)
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out, nil
}
