// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"booking/internal/domain/entity"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/domain/repository"
	"booking/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// credentialRepository implements the domain's CredentialRepository interface.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// SaveCredential inserts or replaces the credential for its provider. Upsert
// keyed on the provider column: consent after a purge recreates the row,
// health updates overwrite it in place.
func (repo *credentialRepository) SaveCredential(ctx context.Context, credential *entity.CalendarCredential) error {
	credentialM := fromCredentialDomain(credential)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}},
			UpdateAll: true,
		}).
		Create(credentialM).Error
	if err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required credential fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save calendar credential")
	}

	return nil
}

// FindCredential retrieves the stored credential for a provider.
func (repo *credentialRepository) FindCredential(ctx context.Context, provider string) (*entity.CalendarCredential, error) {
	var credentialM model.CalendarCredentialModel

	err := repo.db.WithContext(ctx).
		Where("provider = ?", provider).
		First(&credentialM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCredentialDomain(&credentialM), nil
}

// DeleteCredential purges the stored credential.
func (repo *credentialRepository) DeleteCredential(ctx context.Context, provider string) error {
	result := repo.db.WithContext(ctx).
		Where("provider = ?", provider).
		Delete(&model.CalendarCredentialModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	// If no rows were affected, there was nothing to purge.
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCredentialDomain converts a GORM CalendarCredentialModel to a domain CalendarCredential entity.
func toCredentialDomain(data *model.CalendarCredentialModel) *entity.CalendarCredential {
	if data == nil {
		return nil
	}

	return &entity.CalendarCredential{
		Provider:          data.Provider,
		RefreshToken:      data.RefreshToken,
		AccessToken:       data.AccessToken,
		AccessTokenExpiry: data.AccessTokenExpiry,
		Health:            entity.CredentialHealth(data.Health),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromCredentialDomain converts a domain CalendarCredential entity to a GORM CalendarCredentialModel.
func fromCredentialDomain(data *entity.CalendarCredential) *model.CalendarCredentialModel {
	if data == nil {
		return nil
	}

	return &model.CalendarCredentialModel{
		Provider:          data.Provider,
		RefreshToken:      data.RefreshToken,
		AccessToken:       data.AccessToken,
		AccessTokenExpiry: data.AccessTokenExpiry,
		Health:            string(data.Health),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
