package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// CompanyRecord is the tenant row
type CompanyRecord struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (CompanyRecord) TableName() string {
	return "companies"
}

// CompanySettingsModel is the persistence model for company branding
type CompanySettingsModel struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(200)"`
	LogoURL   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CompanySettingsModel) TableName() string {
	return "company_settings"
}

// ToDomain converts the model to a domain entity
func (m *CompanySettingsModel) ToDomain() *identity.CompanySettings {
	return &identity.CompanySettings{
		BaseEntity: m.BaseModel.ToDomain(),
		CompanyID:  m.CompanyID,
		Name:       m.Name,
		LogoURL:    m.LogoURL,
	}
}

// CompanySettingsModelFromDomain creates a model from a domain entity
func CompanySettingsModelFromDomain(s *identity.CompanySettings) *CompanySettingsModel {
	m := &CompanySettingsModel{CompanyID: s.CompanyID, Name: s.Name, LogoURL: s.LogoURL}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// LocationModel is the persistence model for Location
type LocationModel struct {
	CompanyModel
	Name    string `gorm:"type:varchar(200);not null"`
	Country string `gorm:"type:varchar(100)"`
	City    string `gorm:"type:varchar(100)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the model to a domain entity
func (m *LocationModel) ToDomain() *identity.Location {
	return &identity.Location{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		Country:       m.Country,
		City:          m.City,
		Address:       m.Address,
	}
}

// LocationModelFromDomain creates a model from a domain entity
func LocationModelFromDomain(l *identity.Location) *LocationModel {
	m := &LocationModel{Name: l.Name, Country: l.Country, City: l.City, Address: l.Address}
	m.FromDomainCompanyEntity(l.BaseEntity, l.SoftDeletable, l.CompanyID)
	return m
}

// DepartmentModel is the persistence model for Department
type DepartmentModel struct {
	CompanyModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	LocationID  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the model to a domain entity
func (m *DepartmentModel) ToDomain() *identity.Department {
	return &identity.Department{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		Description:   m.Description,
		LocationID:    m.LocationID,
	}
}

// DepartmentModelFromDomain creates a model from a domain entity
func DepartmentModelFromDomain(d *identity.Department) *DepartmentModel {
	m := &DepartmentModel{Name: d.Name, Description: d.Description, LocationID: d.LocationID}
	m.FromDomainCompanyEntity(d.BaseEntity, d.SoftDeletable, d.CompanyID)
	return m
}

// TeamModel is the persistence model for Team
type TeamModel struct {
	CompanyModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	LocationID  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TeamModel) TableName() string {
	return "teams"
}

// ToDomain converts the model to a domain entity
func (m *TeamModel) ToDomain() *identity.Team {
	return &identity.Team{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		Description:   m.Description,
		LocationID:    m.LocationID,
	}
}

// TeamModelFromDomain creates a model from a domain entity
func TeamModelFromDomain(t *identity.Team) *TeamModel {
	m := &TeamModel{Name: t.Name, Description: t.Description, LocationID: t.LocationID}
	m.FromDomainCompanyEntity(t.BaseEntity, t.SoftDeletable, t.CompanyID)
	return m
}

// GroupModel is the persistence model for Group
type GroupModel struct {
	CompanyModel
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GroupModel) TableName() string {
	return "groups"
}

// ToDomain converts the model to a domain entity
func (m *GroupModel) ToDomain() *identity.Group {
	return &identity.Group{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		Description:   m.Description,
	}
}

// GroupModelFromDomain creates a model from a domain entity
func GroupModelFromDomain(g *identity.Group) *GroupModel {
	m := &GroupModel{Name: g.Name, Description: g.Description}
	m.FromDomainCompanyEntity(g.BaseEntity, g.SoftDeletable, g.CompanyID)
	return m
}

// TeamMemberModel is a team membership row. Rows are toggled, never deleted.
type TeamMemberModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_team_member,priority:1"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_team_member,priority:2;index"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	Team      *TeamModel `gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for GORM
func (TeamMemberModel) TableName() string {
	return "team_members"
}

// ToDomain converts the model to a domain membership
func (m *TeamMemberModel) ToDomain() *identity.Membership {
	return &identity.Membership{
		ID:           m.ID,
		CollectiveID: m.TeamID,
		UserID:       m.UserID,
		Active:       m.Active,
		JoinedAt:     m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// TeamMemberModelFromDomain creates a model from a domain membership
func TeamMemberModelFromDomain(ms *identity.Membership) *TeamMemberModel {
	return &TeamMemberModel{
		ID:        ms.ID,
		TeamID:    ms.CollectiveID,
		UserID:    ms.UserID,
		Active:    ms.Active,
		CreatedAt: ms.JoinedAt,
		UpdatedAt: ms.UpdatedAt,
	}
}

// GroupMemberModel is a group membership row. Rows are toggled, never deleted.
type GroupMemberModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_member,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_member,priority:2;index"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GroupMemberModel) TableName() string {
	return "group_members"
}

// ToDomain converts the model to a domain membership
func (m *GroupMemberModel) ToDomain() *identity.Membership {
	return &identity.Membership{
		ID:           m.ID,
		CollectiveID: m.GroupID,
		UserID:       m.UserID,
		Active:       m.Active,
		JoinedAt:     m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// GroupMemberModelFromDomain creates a model from a domain membership
func GroupMemberModelFromDomain(ms *identity.Membership) *GroupMemberModel {
	return &GroupMemberModel{
		ID:        ms.ID,
		GroupID:   ms.CollectiveID,
		UserID:    ms.UserID,
		Active:    ms.Active,
		CreatedAt: ms.JoinedAt,
		UpdatedAt: ms.UpdatedAt,
	}
}

// UserModel is the persistence model for User
type UserModel struct {
	CompanyModel
	Email        string        `gorm:"type:varchar(320);not null;uniqueIndex"`
	Username     string        `gorm:"type:varchar(100)"`
	PasswordHash string        `gorm:"type:varchar(255)"`
	FirstName    string        `gorm:"type:varchar(100);not null"`
	LastName     string        `gorm:"type:varchar(100);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null"`
	LocationID   *uuid.UUID    `gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID    `gorm:"type:uuid;index"`
	ReportsToID  *uuid.UUID    `gorm:"type:uuid;index"`
	Profile      *ProfileModel `gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain entity
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Email:         m.Email,
		Username:      m.Username,
		PasswordHash:  m.PasswordHash,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Role:          m.Role,
		LocationID:    m.LocationID,
		DepartmentID:  m.DepartmentID,
		ReportsToID:   m.ReportsToID,
	}
	if m.Profile != nil {
		u.Profile = identity.Profile{
			Title:        m.Profile.Title,
			ProfileImage: m.Profile.ProfileImage,
			Bio:          m.Profile.Bio,
			Phone:        m.Profile.Phone,
		}
	}
	return u
}

// UserModelFromDomain creates a model from a domain entity, profile included
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		LocationID:   u.LocationID,
		DepartmentID: u.DepartmentID,
		ReportsToID:  u.ReportsToID,
		Profile: &ProfileModel{
			UserID:       u.ID,
			Title:        u.Profile.Title,
			ProfileImage: u.Profile.ProfileImage,
			Bio:          u.Profile.Bio,
			Phone:        u.Profile.Phone,
		},
	}
	m.FromDomainCompanyEntity(u.BaseEntity, u.SoftDeletable, u.CompanyID)
	return m
}

// ProfileModel is the public profile, one row per user
type ProfileModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"type:varchar(200)"`
	ProfileImage string    `gorm:"type:text"`
	Bio          string    `gorm:"type:text"`
	Phone        string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// PrivateProfileModel holds salary data, one row per user
type PrivateProfileModel struct {
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Salary      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Address     string          `gorm:"type:text"`
	DateOfBirth *time.Time
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PrivateProfileModel) TableName() string {
	return "private_profiles"
}

// ToDomain converts the model to a domain value
func (m *PrivateProfileModel) ToDomain() *identity.PrivateProfile {
	return &identity.PrivateProfile{
		Salary:      m.Salary,
		Address:     m.Address,
		DateOfBirth: m.DateOfBirth,
	}
}

// UserAuthModel is the credential row of a user
type UserAuthModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LoginToken   *string   `gorm:"type:varchar(64);index"`
	ExpiresAt    *time.Time
	SessionID    *string   `gorm:"type:varchar(64);index"`
	RefreshToken *string   `gorm:"type:varchar(64);index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserAuthModel) TableName() string {
	return "user_auths"
}

// ToDomain converts the model to a domain entity
func (m *UserAuthModel) ToDomain() *identity.UserAuth {
	return &identity.UserAuth{
		ID:           m.ID,
		UserID:       m.UserID,
		LoginToken:   m.LoginToken,
		ExpiresAt:    m.ExpiresAt,
		SessionID:    m.SessionID,
		RefreshToken: m.RefreshToken,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserAuthModelFromDomain creates a model from a domain entity
func UserAuthModelFromDomain(a *identity.UserAuth) *UserAuthModel {
	return &UserAuthModel{
		ID:           a.ID,
		UserID:       a.UserID,
		LoginToken:   a.LoginToken,
		ExpiresAt:    a.ExpiresAt,
		SessionID:    a.SessionID,
		RefreshToken: a.RefreshToken,
		UpdatedAt:    a.UpdatedAt,
	}
}

// DayOffModel is the persistence model for DayOff
type DayOffModel struct {
	CompanyModel
	Name     string    `gorm:"type:varchar(200);not null"`
	FromDate time.Time `gorm:"not null;index"`
	ToDate   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DayOffModel) TableName() string {
	return "day_offs"
}

// ToDomain converts the model to a domain entity
func (m *DayOffModel) ToDomain() *identity.DayOff {
	return &identity.DayOff{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		FromDate:      m.FromDate,
		ToDate:        m.ToDate,
	}
}

// DayOffModelFromDomain creates a model from a domain entity
func DayOffModelFromDomain(d *identity.DayOff) *DayOffModel {
	m := &DayOffModel{Name: d.Name, FromDate: d.FromDate, ToDate: d.ToDate}
	m.FromDomainCompanyEntity(d.BaseEntity, d.SoftDeletable, d.CompanyID)
	return m
}
