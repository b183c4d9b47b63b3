package enums

import "fmt"

// AdminActionType labels audit records written for admin operations.
type AdminActionType string

const (
	AdminActionOrderCancelled  AdminActionType = "ORDER_CANCELLED"
	AdminActionUsersDeleted    AdminActionType = "USERS_DELETED"
	AdminActionRefundAttempted AdminActionType = "REFUND_ATTEMPTED"
)

var validAdminActionTypes = []AdminActionType{
	AdminActionOrderCancelled,
	AdminActionUsersDeleted,
	AdminActionRefundAttempted,
}

// String implements fmt.Stringer.
func (a AdminActionType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AdminActionType.
func (a AdminActionType) IsValid() bool {
	for _, candidate := range validAdminActionTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdminActionType converts raw input into an AdminActionType.
func ParseAdminActionType(value string) (AdminActionType, error) {
	for _, candidate := range validAdminActionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin action type %q", value)
}
