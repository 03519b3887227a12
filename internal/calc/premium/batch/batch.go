// Package batch runs a settlement calculation over a list of layers in one
// request, summing the individual settlements into a profile total.
package batch

import (
	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/calc/settlement"
)

type SettlementBatchInput struct {
	Items []settlement.Input `json:"items"`
}

type SettlementBatchResult struct {
	Results          []settlement.Result `json:"results"`
	TotalSettlementM float64             `json:"total_settlement_m"`
}

func CalculateSettlement(in SettlementBatchInput) (SettlementBatchResult, error) {
	if len(in.Items) == 0 {
		return SettlementBatchResult{}, calcerr.Validationf("no items")
	}
	out := SettlementBatchResult{Results: make([]settlement.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := settlement.Calculate(item)
		if err != nil {
			return SettlementBatchResult{}, calcerr.Validationf("item %d: %v", i+1, err)
		}
		out.Results = append(out.Results, res)
		out.TotalSettlementM += res.SettlementM
	}
	return out, nil
}
