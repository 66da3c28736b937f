package model

import (
	"strings"
	"time"
)

// User is a principal from the directory, eligible for permission assignment.
// Owned by the auth provider's user directory; read-only here.
type User struct {
	ID        string `json:"id" bson:"_id"`
	Email     string `json:"email" bson:"email"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
}

// DisplayLabel is the full name, falling back to the email address.
func (u *User) DisplayLabel() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Email
	}
	return name
}

// Page is a protected screen identified by its route path.
type Page struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Capability names one of the four CRUD grants on a permission record.
type Capability string

const (
	CapabilityCreate Capability = "create"
	CapabilityRead   Capability = "read"
	CapabilityUpdate Capability = "update"
	CapabilityDelete Capability = "delete"
)

// Valid reports whether c is one of the four known capabilities.
func (c Capability) Valid() bool {
	switch c {
	case CapabilityCreate, CapabilityRead, CapabilityUpdate, CapabilityDelete:
		return true
	}
	return false
}

// Permission is one grant record: the master access gate plus four
// capability flags for a (user, page) pair. Composite key (UserID, PagePath).
type Permission struct {
	UserID   string `json:"user_id" bson:"user_id"`
	PagePath string `json:"page_path" bson:"page_path"`
	Access   bool   `json:"access" bson:"access"`
	Create   bool   `json:"create" bson:"can_create"`
	Read     bool   `json:"read" bson:"can_read"`
	Update   bool   `json:"update" bson:"can_update"`
	Delete   bool   `json:"delete" bson:"can_delete"`

	// Audit fields, maintained by the repository.
	CreatedAt time.Time `json:"-" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"-" bson:"updated_at,omitempty"`
	UpdatedBy string    `json:"-" bson:"updated_by,omitempty"`
}

// HasAnyCapability reports whether any of the four CRUD flags is set.
func (p *Permission) HasAnyCapability() bool {
	return p.Create || p.Read || p.Update || p.Delete
}

// ValidInvariant reports whether the record satisfies capability
// containment: capabilities require the access gate.
func (p *Permission) ValidInvariant() bool {
	return p.Access || !p.HasAnyCapability()
}

// SetCapability flips the named flag. Unknown capabilities are ignored;
// callers validate the name first.
func (p *Permission) SetCapability(c Capability, value bool) {
	switch c {
	case CapabilityCreate:
		p.Create = value
	case CapabilityRead:
		p.Read = value
	case CapabilityUpdate:
		p.Update = value
	case CapabilityDelete:
		p.Delete = value
	}
}

// Establishment is a managed security-service site.
type Establishment struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	StreetNumber string    `json:"street_number" bson:"street_number"`
	StreetName   string    `json:"street_name" bson:"street_name"`
	PostalCode   string    `json:"postal_code" bson:"postal_code"`
	City         string    `json:"city" bson:"city"`
	Phone        string    `json:"phone" bson:"phone"`
	Logo         []byte    `json:"-" bson:"logo,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty" bson:"-"`
	CreatedAt    time.Time `json:"-" bson:"created_at"`
	UpdatedAt    time.Time `json:"-" bson:"updated_at"`
}

// ErrorResponse for consistent error handling
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *ErrorDetail) Error() string {
	return e.Message
}
