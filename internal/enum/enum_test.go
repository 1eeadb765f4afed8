package enum

import "testing"

func TestIsStaffRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{UserRoleWaiter, true},
		{UserRoleChef, true},
		{UserRoleCashier, true},
		{UserRoleAdmin, false},
		{UserRoleCustomer, false},
		{"", false},
		{"WAITER", false},
	}
	for _, tt := range tests {
		if got := IsStaffRole(tt.role); got != tt.want {
			t.Errorf("IsStaffRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
