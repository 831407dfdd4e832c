package method

import (
	"strings"

	"github.com/kailas-cloud/rankdex/internal/domain"
)

// Category groups methods the way the method picker lists them.
type Category string

// Method categories.
const (
	CategoryMinimax    Category = "minimax"
	CategoryDecision   Category = "decision_making"
	CategoryOutranking Category = "outranking"
	CategoryCompromise Category = "compromise_ranking"
	CategoryPairwise   Category = "pairwise_comparison"
	CategoryIterative  Category = "iterative"
)

var categories = []Category{
	CategoryMinimax, CategoryDecision, CategoryOutranking,
	CategoryCompromise, CategoryPairwise, CategoryIterative,
}

// ParseCategory resolves a category name; empty means "all categories".
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if c == "" {
		return "", nil
	}
	for _, known := range categories {
		if c == known {
			return c, nil
		}
	}
	return "", domain.Errorf(domain.ErrInvalidParameter, "unknown category %q", name)
}

// Input describes an additional input a method accepts besides the matrix.
type Input struct {
	Name        string
	PerCriteria bool
	Required    bool
}

// Info is the static description of a method.
type Info struct {
	Kind        Kind
	Title       string
	Category    Category
	Direction   string // "ascending" or "descending" on the primary metric
	Description string
	Inputs      []Input
}

var weightsInput = Input{Name: "weights", PerCriteria: true}

var catalog = map[Kind]Info{
	MinSum: {
		Kind: MinSum, Title: "Minimum sum", Category: CategoryMinimax, Direction: "ascending",
		Description: "Sums every criterion of an alternative; the lowest total wins. " +
			"Assumes all criteria are costs on a comparable scale.",
	},
	MinMax: {
		Kind: MinMax, Title: "Minimax", Category: CategoryMinimax, Direction: "ascending",
		Description: "Scores each alternative by its worst (largest) criterion value and " +
			"prefers the alternative whose worst value is smallest.",
	},
	MaxMin: {
		Kind: MaxMin, Title: "Maximin", Category: CategoryMinimax, Direction: "descending",
		Description: "Scores each alternative by its smallest criterion value and prefers " +
			"the alternative whose smallest value is largest.",
	},
	DIP: {
		Kind: DIP, Title: "Distance to ideal point", Category: CategoryMinimax, Direction: "ascending",
		Description: "Builds the ideal point from the column-wise minimum of every criterion " +
			"and ranks alternatives by Euclidean distance to it.",
	},
	WSR: {
		Kind: WSR, Title: "Weighted sum rule", Category: CategoryDecision, Direction: "descending",
		Description: "Assigns a weight to each criterion and scores an alternative by the " +
			"weighted sum of its values. Suited to problems where trade-offs between criteria are acceptable.",
		Inputs: []Input{weightsInput},
	},
	TOPSIS: {
		Kind: TOPSIS, Title: "Technique for Order of Preference by Similarity to Ideal Solution",
		Category: CategoryDecision, Direction: "descending",
		Description: "Vector-normalises the matrix, applies weights and compares each alternative " +
			"with the ideal and negative-ideal solutions. Closeness to the ideal decides the order.",
		Inputs: []Input{weightsInput, {Name: "directions", PerCriteria: true}},
	},
	ELECTRE: {
		Kind: ELECTRE, Title: "ELECTRE IV", Category: CategoryOutranking, Direction: "descending",
		Description: "Builds a pairwise outranking relation from concordance and discordance " +
			"indices with fixed thresholds (indifference 0.1, preference 0.3, veto 0.5, " +
			"concordance 1/n, discordance 0.5) and ranks by the number of alternatives outranked.",
	},
	VIKOR: {
		Kind: VIKOR, Title: "VlseKriterijumska Optimizacija I Kompromisno Resenje",
		Category: CategoryCompromise, Direction: "ascending",
		Description: "Measures group utility S and individual regret R of every alternative and " +
			"combines them into the compromise index Q. Lower Q is closer to the ideal.",
		Inputs: []Input{weightsInput, {Name: "directions", PerCriteria: true}, {Name: "v"}},
	},
	AHP: {
		Kind: AHP, Title: "Analytic hierarchy process", Category: CategoryPairwise, Direction: "descending",
		Description: "Derives criterion priorities from a pairwise comparison matrix built from " +
			"the weights and scores alternatives by the priority-weighted sum.",
		Inputs: []Input{weightsInput},
	},
	CHP: {
		Kind: CHP, Title: "Consensus hierarchy process", Category: CategoryPairwise, Direction: "descending",
		Description: "Uses the AHP pairwise matrix with row-sum priorities and reports the " +
			"consistency index and ratio alongside the weighted-sum ranking.",
		Inputs: []Input{weightsInput},
	},
	GSR: {
		Kind: GSR, Title: "Generalized selection rule", Category: CategoryIterative, Direction: "elimination",
		Description: "Rescales every criterion to [0,1] and repeatedly eliminates alternatives that are " +
			"worst on at least two measures. Alternatives eliminated first rank last.",
	},
}

// Describe returns the catalog entry of a method.
func Describe(k Kind) (Info, bool) {
	info, ok := catalog[k]
	return info, ok
}

// Catalog returns all entries in canonical order, optionally filtered by category.
func Catalog(category Category) []Info {
	out := make([]Info, 0, len(All))
	for _, k := range All {
		info := catalog[k]
		if category != "" && info.Category != category {
			continue
		}
		out = append(out, info)
	}
	return out
}
