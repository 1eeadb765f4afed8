package enum

// ── Group A: State machines (enum types in DB) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusBilled    = "billed"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// ── Group C: Borderline (enum type in DB) ──

const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
	UserRoleWaiter   = "waiter"
	UserRoleChef     = "chef"
	UserRoleCashier  = "cashier"
)

// ── Group B: Query parameters (no DB constraint) ──

const (
	BillFilterLast7    = "last7"
	BillFilterLast30   = "last30"
	BillFilterLast60   = "last60"
	BillFilterThisWeek = "thisWeek"
	BillFilterMonth    = "month"
	BillFilterYear     = "year"
)

const (
	BookingFilterUpcoming = "upcoming"
	BookingFilterPast     = "past"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusUpdated = "booking.status_updated"
	EventBillCreated          = "bill.created"
)

// IsStaffRole reports whether role is one an employee record may carry.
func IsStaffRole(role string) bool {
	switch role {
	case UserRoleWaiter, UserRoleChef, UserRoleCashier:
		return true
	}
	return false
}
