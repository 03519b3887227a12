// Package uscs classifies a soil under the Unified Soil Classification
// System from its grain size fractions and Atterberg limits, including the
// dual symbols for coarse soils with 5-12% fines.
package uscs

import (
	"fmt"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
)

type Input struct {
	PassingNo200Pct float64 `json:"passing_no200_pct"`
	PassingNo4Pct   float64 `json:"passing_no4_pct"`

	LLPct *float64 `json:"ll_pct,omitempty"`
	PIPct *float64 `json:"pi_pct,omitempty"`
	Cu    *float64 `json:"cu,omitempty"`
	Cc    *float64 `json:"cc,omitempty"`

	OrganicFines  bool `json:"organic_fines,omitempty"`
	HighlyOrganic bool `json:"highly_organic,omitempty"`
}

type Result struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

// aLinePI is the Casagrande A-line ordinate at the given liquid limit.
func aLinePI(ll float64) float64 { return 0.73 * (ll - 20) }

// finesType resolves the fine fraction to silt ("M") or clay ("C") on the
// plasticity chart. Below the A-line or under PI=4 reads as silt.
func finesType(ll, pi float64) string {
	if pi < 4 || pi < aLinePI(ll) {
		return "M"
	}
	return "C"
}

// Calculate walks the USCS decision tree.
func Calculate(in Input) (Result, error) {
	if in.PassingNo200Pct < 0 || in.PassingNo200Pct > 100 {
		return Result{}, calcerr.Validationf("percentage passing the No. 200 sieve must be within [0, 100]")
	}
	if in.PassingNo4Pct < 0 || in.PassingNo4Pct > 100 {
		return Result{}, calcerr.Validationf("percentage passing the No. 4 sieve must be within [0, 100]")
	}
	if in.PassingNo200Pct > in.PassingNo4Pct {
		return Result{}, calcerr.Validationf("percentage passing the No. 200 sieve cannot exceed the No. 4 fraction")
	}

	if in.HighlyOrganic {
		return Result{Symbol: "Pt", Description: "peat and other highly organic soils"}, nil
	}

	if in.PassingNo200Pct < 50 {
		return classifyCoarse(in)
	}
	return classifyFine(in)
}

func classifyCoarse(in Input) (Result, error) {
	sandPct := in.PassingNo4Pct - in.PassingNo200Pct
	gravelPct := 100 - in.PassingNo4Pct
	isGravel := gravelPct > sandPct

	prefix, noun := "S", "sand"
	if isGravel {
		prefix, noun = "G", "gravel"
	}

	fines := in.PassingNo200Pct
	switch {
	case fines < 5:
		if in.Cu == nil || in.Cc == nil {
			return Result{}, calcerr.Validationf("Cu and Cc are required for coarse soils with under 5%% fines")
		}
		well, err := wellGraded(isGravel, *in.Cu, *in.Cc)
		if err != nil {
			return Result{}, err
		}
		if well {
			return Result{
				Symbol:      prefix + "W",
				Description: fmt.Sprintf("well-graded %s with little or no fines", noun),
			}, nil
		}
		return Result{
			Symbol:      prefix + "P",
			Description: fmt.Sprintf("poorly graded %s with little or no fines", noun),
		}, nil

	case fines > 12:
		ft, err := requireFinesType(in)
		if err != nil {
			return Result{}, err
		}
		adjective := "clayey"
		if ft == "M" {
			adjective = "silty"
		}
		return Result{
			Symbol:      prefix + ft,
			Description: fmt.Sprintf("%s %s", adjective, noun),
		}, nil

	default:
		// Borderline fines content carries a dual symbol.
		if in.Cu == nil || in.Cc == nil {
			return Result{}, calcerr.Validationf("Cu and Cc are required for the dual classification of 5-12%% fines")
		}
		well, err := wellGraded(isGravel, *in.Cu, *in.Cc)
		if err != nil {
			return Result{}, err
		}
		ft, err := requireFinesType(in)
		if err != nil {
			return Result{}, err
		}

		grading, gradingWord := "P", "poorly graded"
		if well {
			grading, gradingWord = "W", "well-graded"
		}
		finesWord := "clay"
		if ft == "M" {
			finesWord = "silt"
		}
		return Result{
			Symbol:      fmt.Sprintf("%s%s-%s%s", prefix, grading, prefix, ft),
			Description: fmt.Sprintf("%s %s with %s", gradingWord, noun, finesWord),
		}, nil
	}
}

func classifyFine(in Input) (Result, error) {
	if in.LLPct == nil || in.PIPct == nil {
		return Result{}, calcerr.Validationf("LL and PI are required to classify fine soils")
	}
	ll, pi := *in.LLPct, *in.PIPct
	if ll < 0 || pi < 0 {
		return Result{}, calcerr.Validationf("LL and PI must be >= 0")
	}

	plasticity := "L"
	plasticityWord := "low"
	if ll >= 50 {
		plasticity = "H"
		plasticityWord = "high"
	}

	var prefix, noun string
	if in.OrganicFines {
		prefix, noun = "O", "organic soil"
	} else if finesType(ll, pi) == "M" {
		prefix, noun = "M", "silt"
	} else {
		prefix, noun = "C", "clay"
	}

	return Result{
		Symbol:      prefix + plasticity,
		Description: fmt.Sprintf("%s of %s plasticity", noun, plasticityWord),
	}, nil
}

// wellGraded applies the gradation criteria: Cu >= 4 for gravel, Cu >= 6
// for sand, and Cc within [1, 3] for both.
func wellGraded(isGravel bool, cu, cc float64) (bool, error) {
	if cu < 0 || cc < 0 {
		return false, calcerr.Validationf("Cu and Cc must be >= 0")
	}
	minCu := 6.0
	if isGravel {
		minCu = 4.0
	}
	return cu >= minCu && cc >= 1 && cc <= 3, nil
}

func requireFinesType(in Input) (string, error) {
	if in.LLPct == nil || in.PIPct == nil {
		return "", calcerr.Validationf("LL and PI are required to classify the fine fraction")
	}
	if *in.LLPct < 0 || *in.PIPct < 0 {
		return "", calcerr.Validationf("LL and PI must be >= 0")
	}
	return finesType(*in.LLPct, *in.PIPct), nil
}
