package pk

import (
	"fmt"
	"strings"
)

// Row is one labelled metric of a Metrics table.
type Row struct {
	Key   string
	Value float64
	Unit  string
}

// Rows lists the metrics in reporting order.
func (m Metrics) Rows() []Row {
	u := m.Units
	if u == (Units{}) {
		u = DefaultUnits()
	}

	return []Row{
		{"dose", m.Dose, u.Dose},
		{"auc", m.AUC, u.AUC()},
		{"aucinf", m.AUCInf, u.AUC()},
		{"tmax", m.Tmax, u.Time},
		{"cmax", m.Cmax, u.Concentration},
		{"thalf", m.Thalf, u.Time},
		{"kel", m.Kel, u.Rate()},
		{"vd", m.Vd, u.Volume},
		{"cl", m.CL, u.Clearance},
	}
}

// Format renders one "key       : value [unit]" line per metric.
func (m Metrics) Format() string {
	rows := m.Rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%-10s: %.2f [%s]", r.Key, r.Value, r.Unit)
	}

	return strings.Join(lines, "\n")
}
