package usecase

import (
	"context"
	"strings"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

// OwnerUsecase covers data that belongs to a profile as a whole.
type OwnerUsecase interface {
	HasData(ctx context.Context, ownerID string) (bool, error)
	Copy(ctx context.Context, fromOwner, toOwner string) error
}

// NewOwnerUsecase wires the owner data repository.
func NewOwnerUsecase(repo repository.OwnerDataRepository) OwnerUsecase {
	return &ownerUsecase{repo: repo}
}

type ownerUsecase struct {
	repo repository.OwnerDataRepository
}

func (u *ownerUsecase) HasData(ctx context.Context, ownerID string) (bool, error) {
	return u.repo.UserHasData(ctx, strings.TrimSpace(ownerID))
}

func (u *ownerUsecase) Copy(ctx context.Context, fromOwner, toOwner string) error {
	fromOwner = strings.TrimSpace(fromOwner)
	toOwner = strings.TrimSpace(toOwner)
	if fromOwner == "" || toOwner == "" || fromOwner == toOwner {
		return entity.ErrInvalidOwner
	}
	return u.repo.CopyOwnerData(ctx, fromOwner, toOwner)
}
