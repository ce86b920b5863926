package services

import (
	"context"
	"testing"

	"quickbite/models"
	"quickbite/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPromotionService() *PromotionService {
	return NewPromotionService(testPromotions(), repositories.NewMemoryPromotionUsage())
}

func promoCodes(ps []models.Promotion) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Code)
	}
	return out
}

func TestGetPromotionsHidesInactiveAndExpired(t *testing.T) {
	svc := newTestPromotionService()
	assert.Equal(t, []string{"FREEDEL", "BURGER20", "SAVE10", "BOGO"}, promoCodes(svc.GetPromotions()))
}

func TestGetPromotionByCodeIgnoresCase(t *testing.T) {
	svc := newTestPromotionService()

	p, err := svc.GetPromotionByCode(" burger20 ")
	require.NoError(t, err)
	assert.Equal(t, "BURGER20", p.Code)

	_, err = svc.GetPromotionByCode("NOPE")
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestGetPromotionsByRestaurant(t *testing.T) {
	svc := newTestPromotionService()
	assert.Equal(t, []string{"BURGER20"}, promoCodes(svc.GetPromotionsByRestaurant("r1")))
	assert.Empty(t, svc.GetPromotionsByRestaurant("r3"))
}

func TestGetFeaturedPromotions(t *testing.T) {
	svc := newTestPromotionService()

	assert.Equal(t, []string{"BURGER20", "SAVE10", "FREEDEL"}, promoCodes(svc.GetFeaturedPromotions(0)))
	assert.Equal(t, []string{"BURGER20"}, promoCodes(svc.GetFeaturedPromotions(1)))
	assert.Len(t, svc.GetFeaturedPromotions(10), 4)
}

func TestValidatePromotion(t *testing.T) {
	ctx := context.Background()
	svc := newTestPromotionService()

	tests := []struct {
		name         string
		code         string
		total        string
		restaurantID string
		wantErr      error
	}{
		{"unknown code", "NOPE", "30", "", ErrPromotionNotFound},
		{"inactive", "PAUSED", "30", "", ErrPromotionInactive},
		{"expired", "OLD", "30", "", ErrPromotionExpired},
		{"other restaurant", "BURGER20", "30", "r2", ErrPromotionRestaurant},
		{"below minimum", "BURGER20", "14.99", "r1", ErrPromotionMinimumOrder},
		{"valid", "BURGER20", "15", "r1", nil},
		{"restaurant not given", "BURGER20", "30", "", nil},
		{"unrestricted code", "SAVE10", "30", "r3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidatePromotion(ctx, "guest-1", tt.code, dec(tt.total), tt.restaurantID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCalculateDiscount(t *testing.T) {
	promos := map[string]models.Promotion{}
	for _, p := range testPromotions() {
		promos[p.Code] = p
	}

	tests := []struct {
		code  string
		total string
		want  string
	}{
		{"BURGER20", "20.00", "4.00"},
		{"BURGER20", "40.00", "5.00"},
		{"SAVE10", "30.00", "10.00"},
		{"SAVE10", "6.00", "6.00"},
		{"FREEDEL", "30.00", "2.99"},
		{"BOGO", "10.00", "5.00"},
		{"BOGO", "30.00", "8.00"},
		{"BURGER20", "12.34", "2.47"},
	}
	for _, tt := range tests {
		got := CalculateDiscount(promos[tt.code], dec(tt.total), dec("2.99"))
		assert.True(t, dec(tt.want).Equal(got), "%s on %s: want %s got %s", tt.code, tt.total, tt.want, got)
	}
}

func TestApplyPromotionTracksUsagePerOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestPromotionService()

	applied, err := svc.ApplyPromotion(ctx, "guest-1", "burger20", dec("30"), "r1", dec("2.99"))
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(applied.Discount))
	assert.True(t, dec("25").Equal(applied.FinalTotal))

	_, err = svc.ApplyPromotion(ctx, "guest-1", "BURGER20", dec("30"), "r1", dec("2.99"))
	assert.ErrorIs(t, err, ErrPromotionUsageExhausted)

	_, err = svc.ApplyPromotion(ctx, "guest-2", "BURGER20", dec("30"), "r1", dec("2.99"))
	assert.NoError(t, err)

	require.NoError(t, svc.ResetUsage(ctx, "guest-1"))
	_, err = svc.Quote(ctx, "guest-1", "BURGER20", dec("30"), "r1", dec("2.99"))
	assert.NoError(t, err)
}

func TestQuoteDoesNotRecordUsage(t *testing.T) {
	ctx := context.Background()
	svc := newTestPromotionService()

	for i := 0; i < 3; i++ {
		_, err := svc.Quote(ctx, "guest-1", "BURGER20", dec("30"), "r1", dec("2.99"))
		require.NoError(t, err)
	}
}

func TestQuoteNeverGoesNegative(t *testing.T) {
	applied, err := newTestPromotionService().Quote(context.Background(), "guest-1", "SAVE10", dec("4"), "", dec("0"))
	require.NoError(t, err)
	assert.True(t, applied.FinalTotal.IsZero())
}
