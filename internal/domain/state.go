package domain

import (
	"github.com/shopspring/decimal"
)

// NetworkState is one network's position after a simulated month
type NetworkState struct {
	MonthTotal decimal.Decimal `json:"monthTotal"` // Paid by the insured this month
	YearTotal  decimal.Decimal `json:"yearTotal"`  // Paid so far this year
	Deductible decimal.Decimal `json:"deductible"` // Deductible remaining
	OOPMaximum decimal.Decimal `json:"oopMaximum"` // Out-of-pocket maximum remaining
}

// PlanState is a plan's combined position after a simulated month
type PlanState struct {
	MonthTotal        decimal.Decimal `json:"monthTotal"`        // Service cost owed plus premium
	MonthService      decimal.Decimal `json:"monthService"`      // Service cost owed after the employer contribution
	YearTotal         decimal.Decimal `json:"yearTotal"`         // Cumulative MonthTotal
	YearService       decimal.Decimal `json:"yearService"`       // Cumulative MonthService
	CoverageRemaining decimal.Decimal `json:"coverageRemaining"` // Employer/HSA contribution remaining
	InNetwork         NetworkState    `json:"inNetwork"`
	OutOfNetwork      NetworkState    `json:"outOfNetwork"`
}

// YearPremiums returns the premiums paid so far this year
func (s PlanState) YearPremiums() decimal.Decimal {
	return s.YearTotal.Sub(s.YearService)
}

// NetworkRecord is the flat serialized form of a NetworkState
type NetworkRecord struct {
	MonthTotal float64 `json:"month_total"`
	YearTotal  float64 `json:"year_total"`
	Deductible float64 `json:"deductible"`
	OOPMaximum float64 `json:"oop_maximum"`
}

// PlanRecord is the flat serialized form of a PlanState handed to presentation layers
type PlanRecord struct {
	MonthTotal        float64       `json:"month_total"`
	MonthService      float64       `json:"month_service"`
	YearTotal         float64       `json:"year_total"`
	YearService       float64       `json:"year_service"`
	CoverageRemaining float64       `json:"coverage_remaining"`
	InNetwork         NetworkRecord `json:"in_network"`
	OutOfNetwork      NetworkRecord `json:"out_of_network"`
}

// Record flattens the network state into plain numbers
func (s NetworkState) Record() NetworkRecord {
	return NetworkRecord{
		MonthTotal: s.MonthTotal.InexactFloat64(),
		YearTotal:  s.YearTotal.InexactFloat64(),
		Deductible: s.Deductible.InexactFloat64(),
		OOPMaximum: s.OOPMaximum.InexactFloat64(),
	}
}

// Record flattens the plan state into plain numbers
func (s PlanState) Record() PlanRecord {
	return PlanRecord{
		MonthTotal:        s.MonthTotal.InexactFloat64(),
		MonthService:      s.MonthService.InexactFloat64(),
		YearTotal:         s.YearTotal.InexactFloat64(),
		YearService:       s.YearService.InexactFloat64(),
		CoverageRemaining: s.CoverageRemaining.InexactFloat64(),
		InNetwork:         s.InNetwork.Record(),
		OutOfNetwork:      s.OutOfNetwork.Record(),
	}
}
