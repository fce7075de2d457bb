package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin       = "ADMIN"
	RoleManager     = "MANAGER"
	RoleSalesperson = "SALESPERSON"
)

// User is any system actor. Only salespeople carry a ManagerID; manager
// scope over customers/orders is always derived through it, never stored.
type User struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Role      string              `json:"role" bson:"role"`
	Email     string              `json:"email" bson:"email"`
	Password  string              `json:"-" bson:"password"`
	Name      string              `json:"name" bson:"name"`
	ManagerID *primitive.ObjectID `json:"managerId,omitempty" bson:"managerId,omitempty"`
	IsActive  bool                `json:"isActive" bson:"isActive"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the display projection used by dashboards ($lookup output)
type UserSummary struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id"`
	Name      string              `json:"name" bson:"name"`
	Email     string              `json:"email" bson:"email"`
	Role      string              `json:"role,omitempty" bson:"role,omitempty"`
	ManagerID *primitive.ObjectID `json:"managerId,omitempty" bson:"managerId,omitempty"`
	CreatedAt *time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// ValidRole reports whether role is one of the known user roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSalesperson:
		return true
	}
	return false
}
