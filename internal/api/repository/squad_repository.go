package repository

import (
	"context"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SquadRepository defines the interface for squads and their members.
type SquadRepository interface {
	Create(ctx context.Context, squad *entity.Squad) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Squad, error)
	FindByMember(ctx context.Context, userID uuid.UUID) ([]entity.Squad, error)
	AddMember(ctx context.Context, member *entity.SquadMember) error
	RemoveMember(ctx context.Context, squadID, userID uuid.UUID) error
	IsMember(ctx context.Context, squadID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// NewSquadRepository creates a new GORM-based squad repository.
func NewSquadRepository(db *gorm.DB) SquadRepository {
	return &squadRepository{db: db}
}

type squadRepository struct {
	db *gorm.DB
}

// Create inserts a squad and enrolls its owner in one transaction.
func (r *squadRepository) Create(ctx context.Context, squad *entity.Squad) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := squad.Members
		squad.Members = nil
		if err := tx.Create(squad).Error; err != nil {
			return err
		}
		owner := entity.SquadMember{SquadID: squad.ID, UserID: squad.OwnerID, Role: entity.SquadRoleOwner}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		squad.Members = append([]entity.SquadMember{owner}, members...)
		return nil
	}))
}

// FindByID retrieves a squad with its members.
func (r *squadRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Squad, error) {
	var squad entity.Squad
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		First(&squad, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &squad, nil
}

// FindByMember retrieves the squads a user belongs to.
func (r *squadRepository) FindByMember(ctx context.Context, userID uuid.UUID) ([]entity.Squad, error) {
	var squads []entity.Squad
	err := r.db.WithContext(ctx).
		Preload("Members").
		Joins("JOIN squad_members sm ON sm.squad_id = squads.id").
		Where("sm.user_id = ?", userID).
		Order("squads.created_at ASC").
		Find(&squads).Error
	if err != nil {
		return nil, err
	}
	return squads, nil
}

// AddMember enrolls a user. Joining twice yields ErrDuplicate.
func (r *squadRepository) AddMember(ctx context.Context, member *entity.SquadMember) error {
	return translate(r.db.WithContext(ctx).Create(member).Error)
}

func (r *squadRepository) RemoveMember(ctx context.Context, squadID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("squad_id = ? AND user_id = ?", squadID, userID).
		Delete(&entity.SquadMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *squadRepository) IsMember(ctx context.Context, squadID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.SquadMember{}).
		Where("squad_id = ? AND user_id = ?", squadID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *squadRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Squad{}).Count(&n).Error
	return n, err
}
