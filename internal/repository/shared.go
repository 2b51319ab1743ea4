package repository

// Pagination holds pagination parameters for listing entities.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

func (p *Pagination) Offset() int32 {
	if p.PageNo <= 1 {
		return 0
	}
	return (p.PageNo - 1) * p.PageSize
}

type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }

// OwnerFilter narrows reads to one owner. A nil *OwnerFilter means "every record".
//
// Records written before profiles existed carry no owner. When IncludeLegacy is set
// they are returned to every owner; the store decides the default.
type OwnerFilter struct {
	OwnerID       string
	IncludeLegacy bool
}

// ForOwner builds a filter that also returns ownerless legacy records.
func ForOwner(ownerID string) *OwnerFilter {
	return &OwnerFilter{OwnerID: ownerID, IncludeLegacy: true}
}

// OnlyOwner builds a filter that excludes ownerless legacy records.
func OnlyOwner(ownerID string) *OwnerFilter {
	return &OwnerFilter{OwnerID: ownerID}
}
