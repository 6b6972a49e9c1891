package transactions

import "time"

// Type: ingreso o egreso.
// @Enum income, expense
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t Type) Label() string {
	switch t {
	case TypeIncome:
		return "Pemasukan"
	case TypeExpense:
		return "Pengeluaran"
	default:
		return string(t)
	}
}

// Transaction es un movimiento de keuangan (finanzas) de la granja.
type Transaction struct {
	ID string

	Type            Type
	Amount          float64 // rupiah, > 0
	Category        string  // libre: pakan, obat, penjualan...
	TransactionDate time.Time
	Description     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary agrega totales para el dashboard de finanzas.
type Summary struct {
	Income     float64
	Expense    float64
	Balance    float64
	Count      int
	ByCategory map[string]float64 // ingresos suman, egresos restan
}
