package identity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/shopspring/decimal"
)

// RequestLoginInput asks for a login link. Password is only checked for users that have one.
type RequestLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateTokenInput carries the one-time login token from the emailed link
type ValidateTokenInput struct {
	LoginToken string `json:"loginToken"`
}

// SessionTokens is the result of a successful login
type SessionTokens struct {
	Session auth.SignedToken
	Refresh auth.SignedToken
	User    *identity.User
}

// SignUpInput registers a storefront customer
type SignUpInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ProfileResponse is the public profile of a user
type ProfileResponse struct {
	Title        string `json:"title"`
	ProfileImage string `json:"profileImage"`
	Bio          string `json:"bio"`
	Phone        string `json:"phone"`
}

// PrivateProfileResponse is only returned to admins
type PrivateProfileResponse struct {
	Salary      decimal.Decimal `json:"salary"`
	Address     string          `json:"address"`
	DateOfBirth *time.Time      `json:"dateOfBirth,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	Username       string                  `json:"username,omitempty"`
	FirstName      string                  `json:"firstName"`
	LastName       string                  `json:"lastName"`
	Role           identity.Role           `json:"role"`
	LocationID     *uuid.UUID              `json:"locationId,omitempty"`
	DepartmentID   *uuid.UUID              `json:"departmentId,omitempty"`
	ReportsToID    *uuid.UUID              `json:"reportsToId,omitempty"`
	Profile        ProfileResponse         `json:"profile"`
	PrivateProfile *PrivateProfileResponse `json:"privateProfile,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// ToUserResponse converts a domain user. The private profile is included only when loaded.
func ToUserResponse(u *identity.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		LocationID:   u.LocationID,
		DepartmentID: u.DepartmentID,
		ReportsToID:  u.ReportsToID,
		Profile: ProfileResponse{
			Title:        u.Profile.Title,
			ProfileImage: u.Profile.ProfileImage,
			Bio:          u.Profile.Bio,
			Phone:        u.Profile.Phone,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Private != nil {
		resp.PrivateProfile = &PrivateProfileResponse{
			Salary:      u.Private.Salary,
			Address:     u.Private.Address,
			DateOfBirth: u.Private.DateOfBirth,
		}
	}
	return resp
}

// ProfileInput is the editable public profile
type ProfileInput struct {
	Title        string `json:"title" binding:"max=200"`
	ProfileImage string `json:"profileImage" binding:"omitempty,url"`
	Bio          string `json:"bio"`
	Phone        string `json:"phone" binding:"max=50"`
}

// CreateUserRequest represents a request to create an employee
type CreateUserRequest struct {
	Email        string        `json:"email" binding:"required,email,max=320"`
	Username     string        `json:"username" binding:"max=100"`
	FirstName    string        `json:"firstName" binding:"required,max=100"`
	LastName     string        `json:"lastName" binding:"required,max=100"`
	Role         identity.Role `json:"role" binding:"required,oneof=ADMIN MANAGER EMPLOYEE USER"`
	LocationID   *uuid.UUID    `json:"locationId"`
	DepartmentID *uuid.UUID    `json:"departmentId"`
	ReportsToID  *uuid.UUID    `json:"reportsToId"`
	Profile      *ProfileInput `json:"profile"`
}

// OptionalID tells an absent JSON field apart from an explicit null
type OptionalID struct {
	Set   bool
	Value *uuid.UUID
}

// UnmarshalJSON is only called for keys present in the body
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// UpdateUserRequest changes the given fields of a user.
// Sending reportsToId as null clears the manager; omitting it keeps the current one.
type UpdateUserRequest struct {
	FirstName    *string        `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName     *string        `json:"lastName" binding:"omitempty,min=1,max=100"`
	Role         *identity.Role `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE USER"`
	LocationID   *uuid.UUID     `json:"locationId"`
	DepartmentID *uuid.UUID     `json:"departmentId"`
	ReportsToID  OptionalID     `json:"reportsToId"`
	Profile      *ProfileInput  `json:"profile"`
}

// UpdateDetailsRequest records a title or salary change
type UpdateDetailsRequest struct {
	Title      *string          `json:"title" binding:"omitempty,max=200"`
	Salary     *decimal.Decimal `json:"salary"`
	ActionType string           `json:"actionType"`
}

// UserListFilter is the query of a user listing
type UserListFilter struct {
	Search       string
	DepartmentID *uuid.UUID
	TeamID       *uuid.UUID
	GroupID      *uuid.UUID
	LocationID   *uuid.UUID
}

// TeamSummary is a team as listed for one of its members
type TeamSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// HierarchyNode is one user in the org tree with their direct reports
type HierarchyNode struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         identity.Role   `json:"role"`
	Title        string          `json:"title,omitempty"`
	Image        string          `json:"profileImage,omitempty"`
	Subordinates []HierarchyNode `json:"subordinates"`
}

// LocationRequest creates or replaces a location
type LocationRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Country string `json:"country" binding:"max=100"`
	City    string `json:"city" binding:"max=100"`
	Address string `json:"address"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnitRequest creates or replaces a department, team or group
type UnitRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	Description string     `json:"description"`
	LocationID  *uuid.UUID `json:"locationId"`
}

// UnitResponse represents a department, team or group in API responses
type UnitResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	LocationID  *uuid.UUID `json:"locationId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AddMemberRequest adds a user to a team or group
type AddMemberRequest struct {
	MemberID uuid.UUID `json:"memberId" binding:"required"`
}

// DayOffRequest creates or replaces a day off
type DayOffRequest struct {
	Name     string    `json:"name" binding:"required,max=200"`
	FromDate time.Time `json:"fromDate" binding:"required"`
	ToDate   time.Time `json:"toDate" binding:"required"`
}

// DayOffResponse represents a day off in API responses
type DayOffResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`
}

// CompanySettingsRequest updates company branding
type CompanySettingsRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=200"`
	LogoURL *string `json:"logoUrl" binding:"omitempty,url"`
}

// CompanySettingsResponse represents company branding in API responses
type CompanySettingsResponse struct {
	CompanyID uuid.UUID `json:"companyId"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logoUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UploadURLRequest asks for a presigned upload
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required,oneof=image/png image/jpeg image/webp image/svg+xml"`
}

// UploadURLResponse is a presigned upload target and where the object will be readable
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
