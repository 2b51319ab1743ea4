package usecase

import (
	"strings"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

const (
	_defaultPageSize = int32(20)
	_maxPageSize     = int32(500)
)

// ownerScope maps an owner id to a read filter; the empty owner reads everything.
func ownerScope(ownerID string) *repository.OwnerFilter {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil
	}
	return repository.ForOwner(ownerID)
}

func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", entity.ErrInvalidID
	}
	return id, nil
}

func clampPagination(p *repository.Pagination) {
	if p.PageNo <= 0 {
		p.PageNo = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = _defaultPageSize
	}
	if p.PageSize > _maxPageSize {
		p.PageSize = _maxPageSize
	}
}
