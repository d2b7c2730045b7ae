package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Employee struct {
	ID         int     `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Username   string  `db:"username" json:"username"`
	Password   string  `db:"password" json:"-"`
	Role       string  `db:"role" json:"role"`
	TotalSales float64 `db:"total_sales" json:"total_sales"`
}

// Session identifies the authenticated operator for the duration of a
// terminal session. It is threaded explicitly through the checkout
// pipeline instead of living in process-wide state.
type Session struct {
	EmployeeID int
	Name       string
	Role       string
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
