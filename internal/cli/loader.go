package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// record is one possession as found in a possessions file. Both the API field names
// and the field names of the legacy patrimoine payload are accepted; the API names
// win when both are present.
type record struct {
	Owner                   json.RawMessage     `json:"owner"`
	Label                   string              `json:"label"`
	InitialValue            decimal.NullDecimal `json:"initialValue"`
	StartDate               string              `json:"startDate"`
	EndDate                 *string             `json:"endDate"`
	DepreciationRatePercent decimal.NullDecimal `json:"depreciationRatePercent"`
	ConstantPerPeriodValue  decimal.NullDecimal `json:"constantPerPeriodValue"`
	UsesDayCount            json.RawMessage     `json:"usesDayCount"`

	Possesseur        json.RawMessage     `json:"possesseur"`
	Libelle           string              `json:"libelle"`
	Valeur            decimal.NullDecimal `json:"valeur"`
	DateDebut         string              `json:"dateDebut"`
	DateFin           *string             `json:"dateFin"`
	TauxAmortissement decimal.NullDecimal `json:"tauxAmortissement"`
	ValeurConstante   decimal.NullDecimal `json:"valeurConstante"`
	Jour              json.RawMessage     `json:"jour"`
}

// LoadLedger reads a JSON document from r and decodes the possession array found at
// the JSONPath path ("$" for a document that is the array itself).
func LoadLedger(r io.Reader, path string) (valuation.Ledger, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if path == "" {
		path = "$"
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", path, err)
	}

	items, ok := selected.([]any)
	if !ok {
		return nil, fmt.Errorf("%q does not select an array of possessions", path)
	}
	// A wildcard path wraps the selected array into a list of one answer.
	if len(items) == 1 {
		if inner, ok := items[0].([]any); ok {
			items = inner
		}
	}

	ledger := make(valuation.Ledger, 0, len(items))
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("possession %d: %w", i, err)
		}
		p, err := rec.possession()
		if err != nil {
			return nil, fmt.Errorf("possession %d: %w", i, err)
		}
		ledger = append(ledger, p)
	}

	if err := ledger.Validate(); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (rec record) possession() (valuation.Possession, error) {
	var p valuation.Possession

	p.Label = firstString(rec.Label, rec.Libelle)
	p.Owner = ownerName(rec.Owner)
	if p.Owner == "" {
		p.Owner = ownerName(rec.Possesseur)
	}

	p.InitialValue = firstDecimal(rec.InitialValue, rec.Valeur).Decimal
	p.DepreciationRatePercent = firstDecimal(rec.DepreciationRatePercent, rec.TauxAmortissement).Decimal
	p.ConstantPerPeriodValue = firstDecimal(rec.ConstantPerPeriodValue, rec.ValeurConstante)
	p.UsesDayCount = truthy(rec.UsesDayCount) || truthy(rec.Jour)

	start, err := valuation.ParseDate(firstString(rec.StartDate, rec.DateDebut))
	if err != nil {
		return p, err
	}
	p.StartDate = start

	end := rec.EndDate
	if end == nil {
		end = rec.DateFin
	}
	if end != nil && *end != "" {
		if p.EndDate, err = valuation.ParseDate(*end); err != nil {
			return p, err
		}
	}

	return p, nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstDecimal(values ...decimal.NullDecimal) decimal.NullDecimal {
	for _, v := range values {
		if v.Valid {
			return v
		}
	}
	return decimal.NullDecimal{}
}

// ownerName accepts an owner given as a string or as an object with a name.
func ownerName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}
	var obj struct {
		Name string `json:"name"`
		Nom  string `json:"nom"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return firstString(obj.Name, obj.Nom)
	}
	return ""
}

// truthy reports whether raw holds a JSON value other than null, false, 0 or "".
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
