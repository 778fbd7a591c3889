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

// GormUserRepository implements identity.UserRepository
type GormUserRepository struct {
	read  *gorm.DB
	write *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(read, write *gorm.DB) *GormUserRepository {
	return &GormUserRepository{read: read, write: write}
}

func (r *GormUserRepository) first(ctx context.Context, query func(*gorm.DB) *gorm.DB) (*identity.User, error) {
	var m models.UserModel
	if err := query(r.read.WithContext(ctx).Preload("Profile")).First(&m).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return m.ToDomain(), nil
}

// FindByID returns a live user of the company
func (r *GormUserRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*identity.User, error) {
	return r.first(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Scopes(CompanyScope(companyID)).Where("id = ?", id)
	})
}

// FindByIDAnyCompany returns a live user regardless of company
func (r *GormUserRepository) FindByIDAnyCompany(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.first(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	})
}

// FindByEmail returns the live user with the normalized address
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.first(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("email = ?", identity.NormalizeEmail(email))
	})
}

// ExistsByEmail reports whether any user, deleted ones included, holds the address.
// The unique index covers deleted rows too.
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.read.WithContext(ctx).
		Unscoped().
		Model(&models.UserModel{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func userFilter(filter identity.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			pattern := containsPattern(filter.Search)
			db = db.Where("LOWER(first_name) LIKE ?"+likeEscape+
				" OR LOWER(last_name) LIKE ?"+likeEscape+
				" OR LOWER(email) LIKE ?"+likeEscape, pattern, pattern, pattern)
		}
		if filter.DepartmentID != nil {
			db = db.Where("department_id = ?", *filter.DepartmentID)
		}
		if filter.LocationID != nil {
			db = db.Where("location_id = ?", *filter.LocationID)
		}
		if filter.TeamID != nil {
			db = db.Where("id IN (SELECT user_id FROM team_members WHERE team_id = ? AND active = ?)", *filter.TeamID, true)
		}
		if filter.GroupID != nil {
			db = db.Where("id IN (SELECT user_id FROM group_members WHERE group_id = ? AND active = ?)", *filter.GroupID, true)
		}
		return db
	}
}

// FindAll returns a window of live users matching filter, ordered by name
func (r *GormUserRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter identity.UserFilter, page shared.PageRequest) ([]identity.User, error) {
	var rows []models.UserModel
	err := r.read.WithContext(ctx).
		Preload("Profile").
		Scopes(CompanyScope(companyID), userFilter(filter), Paginate(page)).
		Order("first_name ASC, last_name ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toUsers(rows), nil
}

// Count returns the number of live users matching filter
func (r *GormUserRepository) Count(ctx context.Context, companyID uuid.UUID, filter identity.UserFilter) (int64, error) {
	var count int64
	err := r.read.WithContext(ctx).
		Model(&models.UserModel{}).
		Scopes(CompanyScope(companyID), userFilter(filter)).
		Count(&count).Error
	return count, err
}

// FindDirectReports returns the live users reporting to managerID, or the top level when nil
func (r *GormUserRepository) FindDirectReports(ctx context.Context, companyID uuid.UUID, managerID *uuid.UUID) ([]identity.User, error) {
	db := r.read.WithContext(ctx).Preload("Profile").Scopes(CompanyScope(companyID))
	if managerID == nil {
		db = db.Where("reports_to_id IS NULL")
	} else {
		db = db.Where("reports_to_id = ?", *managerID)
	}

	var rows []models.UserModel
	if err := db.Order("first_name ASC, last_name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toUsers(rows), nil
}

// Save writes the user and its public profile in one transaction
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.write.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		return tx.Save(model.Profile).Error
	})
}

// SoftDelete stamps deleted_at on a live user
func (r *GormUserRepository) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.write.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		Delete(&models.UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("User")
	}
	return nil
}

func toUsers(rows []models.UserModel) []identity.User {
	out := make([]identity.User, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormPrivateProfileRepository implements identity.PrivateProfileRepository.
// It must be built on the admin pool; other roles cannot read private_profiles.
type GormPrivateProfileRepository struct {
	db *gorm.DB
}

// NewGormPrivateProfileRepository creates a new GormPrivateProfileRepository
func NewGormPrivateProfileRepository(db *gorm.DB) *GormPrivateProfileRepository {
	return &GormPrivateProfileRepository{db: db}
}

// FindByUserID returns the private profile of a user
func (r *GormPrivateProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.PrivateProfile, error) {
	var m models.PrivateProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, notFound(err, "Private profile")
	}
	return m.ToDomain(), nil
}

// SaveDetails upserts the profile title and the private profile and appends the
// history entry. Nothing is written unless all of them succeed.
func (r *GormPrivateProfileRepository) SaveDetails(ctx context.Context, update identity.DetailsUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if update.Title != nil {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"title"}),
			}).Create(&models.ProfileModel{UserID: update.UserID, Title: *update.Title}).Error
			if err != nil {
				return err
			}
		}
		if update.Private != nil {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"salary", "address", "date_of_birth", "updated_at"}),
			}).Create(&models.PrivateProfileModel{
				UserID:      update.UserID,
				Salary:      update.Private.Salary,
				Address:     update.Private.Address,
				DateOfBirth: update.Private.DateOfBirth,
				UpdatedAt:   time.Now(),
			}).Error
			if err != nil {
				return err
			}
		}
		if update.History != nil {
			return tx.Create(models.UserHistoryModelFromDomain(update.History)).Error
		}
		return nil
	})
}

// GormUserAuthRepository implements identity.UserAuthRepository
type GormUserAuthRepository struct {
	db *gorm.DB
}

// NewGormUserAuthRepository creates a new GormUserAuthRepository
func NewGormUserAuthRepository(db *gorm.DB) *GormUserAuthRepository {
	return &GormUserAuthRepository{db: db}
}

func (r *GormUserAuthRepository) findBy(ctx context.Context, column, value any) (*identity.UserAuth, error) {
	var m models.UserAuthModel
	if err := r.db.WithContext(ctx).Where(clause.Eq{Column: column, Value: value}).First(&m).Error; err != nil {
		return nil, notFound(err, "User auth")
	}
	return m.ToDomain(), nil
}

// FindByUserID returns the credential row of a user
func (r *GormUserAuthRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.UserAuth, error) {
	return r.findBy(ctx, "user_id", userID)
}

// FindByLoginToken returns the row holding a pending login token
func (r *GormUserAuthRepository) FindByLoginToken(ctx context.Context, token string) (*identity.UserAuth, error) {
	return r.findBy(ctx, "login_token", token)
}

// FindBySessionID returns the row of the current session
func (r *GormUserAuthRepository) FindBySessionID(ctx context.Context, sessionID string) (*identity.UserAuth, error) {
	return r.findBy(ctx, "session_id", sessionID)
}

// FindByRefreshToken returns the row holding a refresh token id
func (r *GormUserAuthRepository) FindByRefreshToken(ctx context.Context, refreshID string) (*identity.UserAuth, error) {
	return r.findBy(ctx, "refresh_token", refreshID)
}

// Save inserts or updates the credential row
func (r *GormUserAuthRepository) Save(ctx context.Context, auth *identity.UserAuth) error {
	return r.db.WithContext(ctx).Save(models.UserAuthModelFromDomain(auth)).Error
}
