package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"quickbite/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const DefaultFeaturedLimit = 3

// UsageCounter tracks how many times an owner applied a promotion code.
type UsageCounter interface {
	Count(ctx context.Context, owner, code string) (int, error)
	Increment(ctx context.Context, owner, code string) (int, error)
	Reset(ctx context.Context, owner string) error
}

type PromotionService struct {
	promotions []models.Promotion
	usage      UsageCounter
	now        func() time.Time
}

func NewPromotionService(promotions []models.Promotion, usage UsageCounter) *PromotionService {
	return &PromotionService{promotions: promotions, usage: usage, now: time.Now}
}

// GetPromotions lists active, unexpired promotions, soonest expiry first.
func (s *PromotionService) GetPromotions() []models.Promotion {
	now := s.now()
	out := []models.Promotion{}
	for _, p := range s.promotions {
		if p.IsActive && !p.Expired(now) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate.Time)
	})
	return out
}

func (s *PromotionService) GetPromotionByCode(code string) (*models.Promotion, error) {
	code = strings.TrimSpace(code)
	for _, p := range s.promotions {
		if strings.EqualFold(p.Code, code) {
			out := p
			return &out, nil
		}
	}
	return nil, ErrPromotionNotFound
}

func (s *PromotionService) GetPromotionsByRestaurant(restaurantID string) []models.Promotion {
	out := []models.Promotion{}
	for _, p := range s.GetPromotions() {
		if p.RestaurantID == restaurantID {
			out = append(out, p)
		}
	}
	return out
}

// GetFeaturedPromotions puts percentage and fixed-amount deals first, each
// ordered by discount value, highest first.
func (s *PromotionService) GetFeaturedPromotions(limit int) []models.Promotion {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	promos := s.GetPromotions()
	monetary := func(p models.Promotion) bool {
		return p.Type == models.PromoPercentage || p.Type == models.PromoFixedAmount
	}
	sort.SliceStable(promos, func(i, j int) bool {
		a, b := promos[i], promos[j]
		if monetary(a) != monetary(b) {
			return monetary(a)
		}
		if !monetary(a) {
			return false
		}
		return a.DiscountValue.GreaterThan(b.DiscountValue)
	})
	if len(promos) > limit {
		promos = promos[:limit]
	}
	return promos
}

// ValidatePromotion checks a code against an order. restaurantID may be
// empty to skip the restaurant restriction.
func (s *PromotionService) ValidatePromotion(ctx context.Context, owner, code string, orderTotal decimal.Decimal, restaurantID string) (*models.Promotion, error) {
	promo, err := s.GetPromotionByCode(code)
	if err != nil {
		return nil, err
	}
	if !promo.IsActive {
		return nil, ErrPromotionInactive
	}
	if promo.Expired(s.now()) {
		return nil, ErrPromotionExpired
	}
	if restaurantID != "" && promo.RestaurantID != "" && promo.RestaurantID != restaurantID {
		return nil, fmt.Errorf("%w: only valid for %s", ErrPromotionRestaurant, promo.RestaurantName)
	}
	if promo.MinimumOrder.IsPositive() && orderTotal.LessThan(promo.MinimumOrder) {
		return nil, fmt.Errorf("%w: minimum order amount is $%s", ErrPromotionMinimumOrder, promo.MinimumOrder.StringFixed(2))
	}
	if promo.UsageLimit > 0 && owner != "" {
		used, err := s.usage.Count(ctx, owner, promo.Code)
		if err != nil {
			return nil, err
		}
		if used >= promo.UsageLimit {
			return nil, ErrPromotionUsageExhausted
		}
	}
	return promo, nil
}

// CalculateDiscount prices a promotion against an order total, rounded to
// cents. Buy-one-get-one is approximated as a percentage off.
func CalculateDiscount(promo models.Promotion, orderTotal, deliveryFee decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch promo.Type {
	case models.PromoPercentage, models.PromoBuyOneGetOne:
		discount = orderTotal.Mul(promo.DiscountValue).Div(decimal.NewFromInt(100))
		if promo.MaximumDiscount.IsPositive() {
			discount = decimal.Min(discount, promo.MaximumDiscount)
		}
	case models.PromoFixedAmount:
		discount = decimal.Min(promo.DiscountValue, orderTotal)
	case models.PromoFreeDelivery:
		discount = deliveryFee
	default:
		discount = decimal.Zero
	}
	return models.Money(discount)
}

// Quote validates and prices a code without recording a use.
func (s *PromotionService) Quote(ctx context.Context, owner, code string, orderTotal decimal.Decimal, restaurantID string, deliveryFee decimal.Decimal) (*models.AppliedPromotion, error) {
	promo, err := s.ValidatePromotion(ctx, owner, code, orderTotal, restaurantID)
	if err != nil {
		return nil, err
	}
	discount := CalculateDiscount(*promo, orderTotal, deliveryFee)
	final := orderTotal.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return &models.AppliedPromotion{
		Promotion:  *promo,
		Discount:   discount,
		FinalTotal: models.Money(final),
	}, nil
}

func (s *PromotionService) RecordUsage(ctx context.Context, owner, code string) {
	if owner == "" {
		return
	}
	if _, err := s.usage.Increment(ctx, owner, strings.ToUpper(code)); err != nil {
		log.Error().Err(err).Str("owner", owner).Str("code", code).Msg("failed to track promotion usage")
	}
}

func (s *PromotionService) ApplyPromotion(ctx context.Context, owner, code string, orderTotal decimal.Decimal, restaurantID string, deliveryFee decimal.Decimal) (*models.AppliedPromotion, error) {
	applied, err := s.Quote(ctx, owner, code, orderTotal, restaurantID, deliveryFee)
	if err != nil {
		return nil, err
	}
	s.RecordUsage(ctx, owner, applied.Promotion.Code)
	return applied, nil
}

func (s *PromotionService) ResetUsage(ctx context.Context, owner string) error {
	return s.usage.Reset(ctx, owner)
}
