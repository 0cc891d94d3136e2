package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fincontrol/models"
	"fincontrol/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken      = errors.New("Este e-mail já está em uso")
	ErrInvalidEmail    = errors.New("E-mail inválido")
	ErrInvalidRole     = errors.New("Papel inválido, use user ou admin")
	ErrInvalidName     = errors.New("Nome é obrigatório e deve ter no máximo 200 caracteres")
	ErrUserNotFound    = errors.New("Usuário não encontrado")
	ErrWrongPassword   = errors.New("Senha atual incorreta")
	ErrPasswordMissing = errors.New("Informe a senha atual para definir uma nova senha")
	ErrLastAdmin       = errors.New("É preciso manter ao menos um administrador")
)

// IsInputError indica erro de validação dos dados de usuário (resposta 400)
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrEmailTaken,
		ErrInvalidEmail,
		ErrInvalidName,
		ErrInvalidRole,
		validation.ErrPasswordTooShort,
		validation.ErrPasswordTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HashPassword gera o hash bcrypt da senha
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara a senha com o hash armazenado
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash tem o mesmo custo dos hashes reais
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("fincontrol-usuario-inexistente"), bcrypt.DefaultCost)
	return hash
})

// CheckLogin confere a senha do login. Com user nil a comparação roda contra
// um hash fixo, para que o tempo de resposta não revele e-mails cadastrados.
func CheckLogin(user *models.User, password string) bool {
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return false
	}
	return CheckPassword(user.Password, password)
}

// EnsureAnotherAdmin devolve ErrLastAdmin quando userID é o único administrador
func EnsureAnotherAdmin(ctx context.Context, db *gorm.DB, userID uint) error {
	var count int64
	err := db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND id <> ?", models.RoleAdmin, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("falha ao contar administradores: %w", err)
	}
	if count == 0 {
		return ErrLastAdmin
	}
	return nil
}

// UserInput dados para criar ou alterar um usuário
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CleanUserInput normaliza e valida os campos informados; password e role
// vazios são aceitos quando optional é verdadeiro.
func CleanUserInput(in UserInput, optional bool) (UserInput, error) {
	in.Name = validation.SanitizeText(in.Name, 0)
	if in.Name == "" || len([]rune(in.Name)) > validation.MaxNameLength {
		return in, ErrInvalidName
	}
	in.Email = validation.NormalizeEmail(in.Email)
	if !validation.IsValidEmail(in.Email) {
		return in, ErrInvalidEmail
	}
	if in.Password != "" || !optional {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return in, err
		}
	}
	if in.Role == "" && !optional {
		in.Role = models.RoleUser
	}
	if in.Role != "" && !models.IsValidRole(in.Role) {
		return in, ErrInvalidRole
	}
	return in, nil
}

// EmailInUse verifica se o e-mail pertence a outro usuário
func EmailInUse(ctx context.Context, db *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	// inclui excluídos: o índice único continua valendo para eles
	query := db.WithContext(ctx).Unscoped().Model(&models.User{}).Where("email = ?", strings.ToLower(email))
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("falha ao verificar e-mail: %w", err)
	}
	return count > 0, nil
}

// CreateUser valida, confere unicidade do e-mail e grava o usuário
func CreateUser(ctx context.Context, db *gorm.DB, in UserInput) (*models.User, error) {
	in, err := CleanUserInput(in, false)
	if err != nil {
		return nil, err
	}

	taken, err := EmailInUse(ctx, db, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: in.Name, Email: in.Email, Password: hash, Role: in.Role}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("falha ao criar usuário: %w", err)
	}
	return user, nil
}

// SetRole altera o papel do usuário identificado pelo e-mail
func SetRole(ctx context.Context, db *gorm.DB, email, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	var user models.User
	err := db.WithContext(ctx).Where("email = ?", validation.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.IsAdmin() && role != models.RoleAdmin {
			if err := EnsureAnotherAdmin(ctx, tx, user.ID); err != nil {
				return err
			}
		}
		if err := tx.Model(&user).Update("role", role).Error; err != nil {
			return fmt.Errorf("falha ao alterar papel: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}
