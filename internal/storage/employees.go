package storage

import (
	"encoding/json"
	"fmt"
)

type CommissionType string

const (
	CommissionFlat   CommissionType = "flat"
	CommissionTiered CommissionType = "tiered"
	CommissionHourly CommissionType = "hourly"
)

type TieredMode string

const (
	TieredFlat     TieredMode = "flat"
	TieredMarginal TieredMode = "marginal"
)

// CommissionTier declares the rate that applies to sales above Threshold.
type CommissionTier struct {
	Threshold float64 `json:"threshold"`
	Rate      float64 `json:"rate"`
}

// Scheme is an employee's commission scheme: FlatScheme, TieredScheme or HourlyScheme.
type Scheme interface {
	CommissionType() CommissionType
	scheme()
}

type FlatScheme struct {
	Rate float64
}

type TieredScheme struct {
	Mode  TieredMode
	Tiers []CommissionTier
}

type HourlyScheme struct {
	Rate float64
}

func (FlatScheme) CommissionType() CommissionType   { return CommissionFlat }
func (TieredScheme) CommissionType() CommissionType { return CommissionTiered }
func (HourlyScheme) CommissionType() CommissionType { return CommissionHourly }

func (FlatScheme) scheme()   {}
func (TieredScheme) scheme() {}
func (HourlyScheme) scheme() {}

type Employee struct {
	ID     string
	Name   string
	Scheme Scheme
}

func (e Employee) CommissionType() CommissionType {
	if e.Scheme == nil {
		return ""
	}
	return e.Scheme.CommissionType()
}

// SchemeFromFields builds a scheme from the flat field layout used on the wire
// and in the database. Fields belonging to other schemes are ignored. A missing
// rate reads as zero and a missing tiered mode reads as marginal.
func SchemeFromFields(t CommissionType, flatRate *float64, mode TieredMode, tiers []CommissionTier, hourlyRate *float64) (Scheme, error) {
	switch t {
	case CommissionFlat:
		return FlatScheme{Rate: deref(flatRate)}, nil
	case CommissionTiered:
		if mode != TieredFlat {
			mode = TieredMarginal
		}
		return TieredScheme{Mode: mode, Tiers: tiers}, nil
	case CommissionHourly:
		return HourlyScheme{Rate: deref(hourlyRate)}, nil
	default:
		return nil, fmt.Errorf("unknown commission type %q", t)
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

type employeeJSON struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	CommissionType CommissionType   `json:"commissionType"`
	FlatRate       *float64         `json:"flatRate,omitempty"`
	TieredMode     TieredMode       `json:"tieredMode,omitempty"`
	Tiers          []CommissionTier `json:"tiers,omitempty"`
	HourlyRate     *float64         `json:"hourlyRate,omitempty"`
}

func (e Employee) MarshalJSON() ([]byte, error) {
	out := employeeJSON{ID: e.ID, Name: e.Name}

	switch s := e.Scheme.(type) {
	case FlatScheme:
		out.CommissionType = CommissionFlat
		out.FlatRate = &s.Rate
	case TieredScheme:
		out.CommissionType = CommissionTiered
		out.TieredMode = s.Mode
		out.Tiers = s.Tiers
	case HourlyScheme:
		out.CommissionType = CommissionHourly
		out.HourlyRate = &s.Rate
	}

	return json.Marshal(out)
}

func (e *Employee) UnmarshalJSON(data []byte) error {
	var in employeeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	scheme, err := SchemeFromFields(in.CommissionType, in.FlatRate, in.TieredMode, in.Tiers, in.HourlyRate)
	if err != nil {
		return fmt.Errorf("employee %q: %w", in.ID, err)
	}

	*e = Employee{ID: in.ID, Name: in.Name, Scheme: scheme}
	return nil
}
