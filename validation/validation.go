// Package validation reúne as regras de entrada que não cabem nas tags de
// binding do gin: valores monetários, datas, e-mails e limpeza de texto livre.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Limites de texto
const (
	MaxNameLength        = 200
	MaxCategoryLength    = 100
	MaxDescriptionLength = 200
	MaxResponsibleLength = 100
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
)

// DateLayout formato de data aceito na API
const DateLayout = "2006-01-02"

// MaxAmount maior valor aceito para uma transação
var MaxAmount = decimal.RequireFromString("999999999.99")

var (
	ErrAmountRequired    = errors.New("Valor é obrigatório")
	ErrAmountInvalid     = errors.New("Valor inválido")
	ErrAmountNotPositive = errors.New("O valor deve ser maior que zero")
	ErrAmountTooLarge    = fmt.Errorf("O valor máximo permitido é %s", MaxAmount.StringFixed(2))
	ErrAmountPrecision   = errors.New("O valor deve ter no máximo duas casas decimais")
	ErrDateInvalid       = errors.New("Data inválida, use o formato AAAA-MM-DD")
	ErrPasswordTooShort  = fmt.Errorf("A senha deve ter pelo menos %d caracteres", MinPasswordLength)
	ErrPasswordTooLong   = fmt.Errorf("A senha deve ter no máximo %d caracteres", MaxPasswordLength)
)

var (
	scriptTag   = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleTag    = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	htmlEntity  = regexp.MustCompile(`&[#\w]+;`)
	controlChar = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	bracketChar = regexp.MustCompile(`[<>{}\[\]]`)
	amountShape = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	emailShape  = regexp.MustCompile("^[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$")
)

// StripHTML remove scripts, estilos, tags, entidades e caracteres de controle
func StripHTML(input string) string {
	s := scriptTag.ReplaceAllString(input, "")
	s = styleTag.ReplaceAllString(s, "")
	s = anyTag.ReplaceAllString(s, "")
	s = htmlEntity.ReplaceAllString(s, "")
	s = controlChar.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SanitizeText limpa texto livre e corta em maxLength caracteres (0 = sem limite)
func SanitizeText(input string, maxLength int) string {
	s := StripHTML(strings.TrimSpace(input))
	s = bracketChar.ReplaceAllString(s, "")
	if maxLength > 0 && utf8.RuneCountInString(s) > maxLength {
		s = string([]rune(s)[:maxLength])
	}
	return s
}

// ParseAmount interpreta um valor monetário vindo da requisição.
// Notação científica é recusada; o valor precisa ser positivo, ter no máximo
// duas casas decimais e não passar de MaxAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrAmountRequired
	}
	if !amountShape.MatchString(raw) {
		return decimal.Zero, ErrAmountInvalid
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrAmountInvalid
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}
	if d.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, ErrAmountPrecision
	}
	return d.Round(2), nil
}

// ParseDate interpreta AAAA-MM-DD no fuso local
func ParseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}
	return d, nil
}

// NormalizeEmail apara e coloca em minúsculas
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail aplica as regras de formato e tamanho de endereço
func IsValidEmail(email string) bool {
	e := NormalizeEmail(email)
	if e == "" || len(e) > 254 || !emailShape.MatchString(e) {
		return false
	}
	at := strings.LastIndex(e, "@")
	local, domain := e[:at], e[at+1:]
	if local == "" || len(local) > 64 {
		return false
	}
	if len(domain) > 253 || !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	return true
}

// ValidatePassword verifica o tamanho da senha
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
