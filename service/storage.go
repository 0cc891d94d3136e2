package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fincontrol/config"

	"github.com/google/uuid"
)

// ErrUnsupportedProof extensão de comprovante não aceita
var ErrUnsupportedProof = errors.New("Formato de comprovante não suportado (use pdf, png, jpg, jpeg ou webp)")

var proofExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ProofStore armazena comprovantes de pagamento e devolve a URL pública
type ProofStore interface {
	Save(filename string, r io.Reader) (string, error)
	Delete(url string) error
	Owns(url string) bool
}

// LocalStore grava comprovantes num diretório servido como estático
type LocalStore struct {
	dir        string
	publicPath string
}

// NewLocalStore cria o armazenamento local a partir da configuração
func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("storage.upload_dir não configurado")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de comprovantes: %w", err)
	}
	public := "/" + strings.Trim(cfg.PublicPath, "/")
	return &LocalStore{dir: cfg.UploadDir, publicPath: public}, nil
}

// Dir diretório físico dos arquivos
func (s *LocalStore) Dir() string { return s.dir }

// PublicPath prefixo de URL sob o qual os arquivos são servidos
func (s *LocalStore) PublicPath() string { return s.publicPath }

// Save grava o arquivo com nome aleatório, mantendo a extensão original
func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !proofExtensions[ext] {
		return "", ErrUnsupportedProof
	}

	name := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("falha ao gravar arquivo: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(s.publicPath, name), nil
}

// Owns indica se a URL aponta para um arquivo deste armazenamento
func (s *LocalStore) Owns(url string) bool {
	return strings.HasPrefix(url, s.publicPath+"/") && path.Base(url) != ""
}

// Delete remove o arquivo de uma URL gerada por Save; URLs externas são ignoradas
func (s *LocalStore) Delete(url string) error {
	if !s.Owns(url) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, path.Base(url)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("falha ao remover comprovante: %w", err)
	}
	return nil
}
