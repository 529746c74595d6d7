package pricing

import (
	"context"

	"github.com/salonops/backend/internal/domain/catalog"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// LinePrice is the resolved money pair for one line item
type LinePrice struct {
	TotalAmount valueobject.Money
	FinalAmount valueobject.Money
	DiscountID  *uuid.UUID
}

// DiscountResolver turns a unit price, a quantity and an optional discount
// reference into the total/final amount pair stored on line items.
type DiscountResolver struct {
	discountRepo catalog.DiscountRepository
}

// NewDiscountResolver creates a new DiscountResolver
func NewDiscountResolver(discountRepo catalog.DiscountRepository) *DiscountResolver {
	return &DiscountResolver{discountRepo: discountRepo}
}

// Resolve computes the line price. The total is unit price times quantity.
// Without a discount reference the final equals the total. With one, the
// discount must exist and be active; its computed amount is subtracted and
// the result clamped at zero.
func (r *DiscountResolver) Resolve(ctx context.Context, unitPrice valueobject.Money, quantity int, discountID *uuid.UUID) (LinePrice, error) {
	if quantity <= 0 {
		return LinePrice{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	total := unitPrice.MultiplyByInt(int64(quantity))
	if discountID == nil {
		return LinePrice{TotalAmount: total, FinalAmount: total}, nil
	}

	discount, err := r.discountRepo.FindActiveByID(ctx, *discountID)
	if err != nil {
		return LinePrice{}, err
	}

	final := total.MustSubtract(discount.ComputeAmount(total)).ClampToZero()

	return LinePrice{TotalAmount: total, FinalAmount: final, DiscountID: discountID}, nil
}
