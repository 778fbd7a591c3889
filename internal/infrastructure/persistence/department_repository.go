package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements identity.LocationRepository
type GormLocationRepository struct {
	*scopedRepo[models.LocationModel, identity.Location]
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(read, write *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{newScopedRepo(read, write, "Location",
		(*models.LocationModel).ToDomain, models.LocationModelFromDomain)}
}

// GormDepartmentRepository implements identity.DepartmentRepository
type GormDepartmentRepository struct {
	*scopedRepo[models.DepartmentModel, identity.Department]
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(read, write *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{newScopedRepo(read, write, "Department",
		(*models.DepartmentModel).ToDomain, models.DepartmentModelFromDomain)}
}

// GormTeamRepository implements identity.TeamRepository
type GormTeamRepository struct {
	*scopedRepo[models.TeamModel, identity.Team]
}

// NewGormTeamRepository creates a new GormTeamRepository
func NewGormTeamRepository(read, write *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{newScopedRepo(read, write, "Team",
		(*models.TeamModel).ToDomain, models.TeamModelFromDomain)}
}

// GormGroupRepository implements identity.GroupRepository
type GormGroupRepository struct {
	*scopedRepo[models.GroupModel, identity.Group]
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(read, write *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{newScopedRepo(read, write, "Group",
		(*models.GroupModel).ToDomain, models.GroupModelFromDomain)}
}

// GormDayOffRepository implements identity.DayOffRepository
type GormDayOffRepository struct {
	*scopedRepo[models.DayOffModel, identity.DayOff]
}

// NewGormDayOffRepository creates a new GormDayOffRepository
func NewGormDayOffRepository(read, write *gorm.DB) *GormDayOffRepository {
	return &GormDayOffRepository{newScopedRepo(read, write, "Day off",
		(*models.DayOffModel).ToDomain, models.DayOffModelFromDomain)}
}

// CountBetween counts live day-offs starting within [from, to]
func (r *GormDayOffRepository) CountBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.read.WithContext(ctx).
		Model(&models.DayOffModel{}).
		Scopes(CompanyScope(companyID)).
		Where("from_date BETWEEN ? AND ?", from, to).
		Count(&count).Error
	return count, err
}

// GormMembershipRepository implements identity.MembershipRepository for one collective kind
type GormMembershipRepository struct {
	read  *gorm.DB
	write *gorm.DB
	kind  identity.CollectiveKind
}

// NewGormMembershipRepository creates a membership store for teams or groups
func NewGormMembershipRepository(read, write *gorm.DB, kind identity.CollectiveKind) *GormMembershipRepository {
	return &GormMembershipRepository{read: read, write: write, kind: kind}
}

// Find returns the membership row of userID in collectiveID, active or not
func (r *GormMembershipRepository) Find(ctx context.Context, collectiveID, userID uuid.UUID) (*identity.Membership, error) {
	db := r.read.WithContext(ctx)
	if r.kind == identity.KindGroup {
		var m models.GroupMemberModel
		if err := db.Where("group_id = ? AND user_id = ?", collectiveID, userID).First(&m).Error; err != nil {
			return nil, notFound(err, "Membership")
		}
		return m.ToDomain(), nil
	}
	var m models.TeamMemberModel
	if err := db.Where("team_id = ? AND user_id = ?", collectiveID, userID).First(&m).Error; err != nil {
		return nil, notFound(err, "Membership")
	}
	return m.ToDomain(), nil
}

// Save inserts or updates a membership row
func (r *GormMembershipRepository) Save(ctx context.Context, m *identity.Membership) error {
	db := r.write.WithContext(ctx)
	if r.kind == identity.KindGroup {
		return db.Save(models.GroupMemberModelFromDomain(m)).Error
	}
	return db.Omit("Team").Save(models.TeamMemberModelFromDomain(m)).Error
}

// FindActiveByUser lists the live teams userID actively belongs to, most recently joined first
func (r *GormMembershipRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID, page shared.PageRequest) ([]identity.TeamMembership, error) {
	var rows []models.TeamMemberModel
	err := r.read.WithContext(ctx).
		Joins("JOIN teams ON teams.id = team_members.team_id AND teams.deleted_at IS NULL").
		Preload("Team").
		Where("team_members.user_id = ? AND team_members.active = ?", userID, true).
		Order("team_members.created_at DESC").
		Scopes(Paginate(page)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]identity.TeamMembership, 0, len(rows))
	for i := range rows {
		tm := identity.TeamMembership{Membership: *rows[i].ToDomain()}
		if rows[i].Team != nil {
			tm.Team = *rows[i].Team.ToDomain()
		}
		out = append(out, tm)
	}
	return out, nil
}

// GormCompanySettingsRepository implements identity.CompanySettingsRepository on the admin pool
type GormCompanySettingsRepository struct {
	db *gorm.DB
}

// NewGormCompanySettingsRepository creates a new GormCompanySettingsRepository
func NewGormCompanySettingsRepository(db *gorm.DB) *GormCompanySettingsRepository {
	return &GormCompanySettingsRepository{db: db}
}

// FindByCompany returns the settings row of a company
func (r *GormCompanySettingsRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) (*identity.CompanySettings, error) {
	var m models.CompanySettingsModel
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).First(&m).Error; err != nil {
		return nil, notFound(err, "Company settings")
	}
	return m.ToDomain(), nil
}

// Save upserts the settings row keyed by company
func (r *GormCompanySettingsRepository) Save(ctx context.Context, settings *identity.CompanySettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "logo_url", "updated_at"}),
		}).
		Create(models.CompanySettingsModelFromDomain(settings)).Error
}
