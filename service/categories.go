package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fincontrol/models"
	"fincontrol/validation"

	"gorm.io/gorm"
)

var (
	ErrCategoryNameRequired = errors.New("Nome da categoria é obrigatório")
	ErrCategoryNameTooLong  = fmt.Errorf("Nome da categoria muito longo (máximo %d caracteres)", validation.MaxCategoryLength)
	ErrCategoryExists       = errors.New("Uma categoria com esse nome já existe")
	ErrCategoryForbidden    = errors.New("Você não tem permissão para alterar esta categoria")
	ErrCategoryInUse        = errors.New("Não é possível deletar uma categoria que possui transações vinculadas")
)

func cleanCategoryName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrCategoryNameRequired
	}
	if len([]rune(strings.TrimSpace(name))) > validation.MaxCategoryLength {
		return "", ErrCategoryNameTooLong
	}
	clean := validation.SanitizeText(name, validation.MaxCategoryLength)
	if clean == "" {
		return "", ErrCategoryNameRequired
	}
	return clean, nil
}

// categoryNameTaken compara nomes sem diferenciar maiúsculas, por criador
func categoryNameTaken(db *gorm.DB, ownerID uint, name string, exceptID uint) (bool, error) {
	query := db.Model(&models.Category{}).
		Where("created_by_id = ? AND LOWER(name) = LOWER(?)", ownerID, name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("falha ao verificar categoria: %w", err)
	}
	return count > 0, nil
}

// CreateCategory cria uma categoria para ownerID
func CreateCategory(ctx context.Context, db *gorm.DB, ownerID uint, name string) (*models.Category, error) {
	clean, err := cleanCategoryName(name)
	if err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)

	taken, err := categoryNameTaken(db, ownerID, clean, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryExists
	}

	category := &models.Category{Name: clean, CreatedByID: ownerID}
	if err := db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("falha ao criar categoria: %w", err)
	}
	return category, nil
}

func ownedCategory(db *gorm.DB, ownerID, id uint) (*models.Category, error) {
	var category models.Category
	err := db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar categoria: %w", err)
	}
	if category.CreatedByID != ownerID {
		return nil, ErrCategoryForbidden
	}
	return &category, nil
}

// RenameCategory renomeia uma categoria do próprio usuário
func RenameCategory(ctx context.Context, db *gorm.DB, ownerID, id uint, name string) (*models.Category, error) {
	clean, err := cleanCategoryName(name)
	if err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)

	category, err := ownedCategory(db, ownerID, id)
	if err != nil {
		return nil, err
	}

	taken, err := categoryNameTaken(db, ownerID, clean, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryExists
	}

	if err := db.Model(category).Update("name", clean).Error; err != nil {
		return nil, fmt.Errorf("falha ao renomear categoria: %w", err)
	}
	category.Name = clean
	return category, nil
}

// DeleteCategory remove a categoria se nenhuma transação a referenciar
func DeleteCategory(ctx context.Context, db *gorm.DB, ownerID, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := ownedCategory(tx, ownerID, id)
		if err != nil {
			return err
		}

		var linked int64
		if err := tx.Unscoped().Model(&models.Transaction{}).Where("category_id = ?", id).Count(&linked).Error; err != nil {
			return fmt.Errorf("falha ao verificar transações: %w", err)
		}
		if linked > 0 {
			return ErrCategoryInUse
		}

		if err := tx.Delete(category).Error; err != nil {
			return fmt.Errorf("falha ao excluir categoria: %w", err)
		}
		return nil
	})
}
