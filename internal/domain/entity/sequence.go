package entity

import "time"

// DocumentSequence contador por familia de documento (y año si la familia es
// anual). Reemplaza el escaneo del último número emitido: el contador avanza
// con un upsert atómico, por lo que dos peticiones concurrentes nunca observan
// el mismo último valor.
type DocumentSequence struct {
	CompanyID string
	Family    string // CUSTOMER, QUOTE, INVOICE, PAYMENT, LOAN, EXPENSE, EMPLOYEE
	Year      int    // 0 para familias sin reinicio anual
	LastValue int64
	UpdatedAt time.Time
}
