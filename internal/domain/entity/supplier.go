package entity

import "time"

// Supplier representa un proveedor. Al eliminarlo, sus productos quedan con
// SupplierID en nil (no se eliminan en cascada).
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
