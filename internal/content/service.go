package content

import (
	"context"
	"fmt"
	"log"

	"github.com/Inrrs/TG-Drop/internal/storage"
	"github.com/Inrrs/TG-Drop/internal/telegram"
)

// Notifier is the subset of the Telegram client used for side notifications.
type Notifier interface {
	SendMessage(ctx context.Context, text string) (*telegram.MessageResult, error)
}

// Store is the persistence interface for content blocks, satisfied by
// *Repository.
type Store interface {
	List(ctx context.Context) ([]Block, error)
	Create(ctx context.Context, blockType, title, content string) (*Block, error)
}

// Service contains business logic for content blocks.
type Service struct {
	repo  Store
	relay Notifier
}

// NewService creates a new content Service.
func NewService(repo Store, relay Notifier) *Service {
	return &Service{repo: repo, relay: relay}
}

// List returns all content blocks, newest first.
func (s *Service) List(ctx context.Context) ([]Block, error) {
	return s.repo.List(ctx)
}

// Create stores a new content block. When the relay backend is selected and
// the type is textual, the block is first mirrored to Telegram as a formatted
// message; the database always keeps the original content — the relay message
// is a notification, never the source of truth.
func (s *Service) Create(ctx context.Context, blockType, title, content string, backend storage.Backend) (*Block, error) {
	if backend == storage.BackendTelegram && textTypes[blockType] {
		msg, err := s.relay.SendMessage(ctx, FormatMessage(blockType, title, content))
		if err != nil {
			return nil, fmt.Errorf("send content to telegram: %w", err)
		}
		log.Printf("content: mirrored %q to telegram as message %d", title, msg.MessageID)
	}
	return s.repo.Create(ctx, blockType, title, content)
}
