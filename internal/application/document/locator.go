package document

import (
	"context"

	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
)

// Itemable is the resolved view of a catalog entity at attachment time
type Itemable struct {
	Ref       document.ItemableRef
	UnitPrice valueobject.Money
	Snapshot  document.ItemSnapshot
}

// locateItemable resolves a discriminated reference against the catalog.
// Only active entities can be attached to documents; inactive ones come back
// as not found. The snapshot captures the pricing data as of this moment.
func locateItemable(ctx context.Context, repos TransactionalRepositories, ref document.ItemableRef) (*Itemable, error) {
	switch ref.Type {
	case document.ItemableTypeProduct:
		p, err := repos.ProductRepo().FindActiveByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &Itemable{
			Ref:       ref,
			UnitPrice: valueobject.NewMoneyVND(p.UnitPrice),
			Snapshot: document.ItemSnapshot{
				Code:      p.Code,
				Name:      p.Name,
				UnitPrice: p.UnitPrice,
			},
		}, nil

	case document.ItemableTypeService:
		s, err := repos.ServiceRepo().FindActiveByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &Itemable{
			Ref:       ref,
			UnitPrice: valueobject.NewMoneyVND(s.UnitPrice),
			Snapshot: document.ItemSnapshot{
				Code:              s.Code,
				Name:              s.Name,
				UnitPrice:         s.UnitPrice,
				DurationMinutes:   s.DurationMinutes,
				SessionCount:      s.SessionCount,
				BonusSessionCount: s.BonusSessionCount,
			},
		}, nil

	case document.ItemableTypeCourse:
		c, err := repos.CourseRepo().FindActiveByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &Itemable{
			Ref:       ref,
			UnitPrice: valueobject.NewMoneyVND(c.UnitPrice),
			Snapshot: document.ItemSnapshot{
				Code:         c.Code,
				Name:         c.Name,
				UnitPrice:    c.UnitPrice,
				SessionCount: c.SessionCount,
			},
		}, nil
	}

	return nil, shared.NewDomainError("INVALID_ITEMABLE_TYPE", "Unrecognized itemable type")
}
