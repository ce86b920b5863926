package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"quickbite/models"
	"quickbite/repositories"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type UserServiceOptions struct {
	Users      UserRepository
	Orders     *OrderService
	Carts      *CartService
	Favorites  *FavoriteService
	Reviews    *ReviewService
	Promotions *PromotionService
	Uploader   PhotoUploader
}

type UserService struct {
	userRepo   UserRepository
	orders     *OrderService
	carts      *CartService
	favorites  *FavoriteService
	reviews    *ReviewService
	promotions *PromotionService
	uploader   PhotoUploader
}

func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{
		userRepo:   opts.Users,
		orders:     opts.Orders,
		carts:      opts.Carts,
		favorites:  opts.Favorites,
		reviews:    opts.Reviews,
		promotions: opts.Promotions,
		uploader:   opts.Uploader,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.UserWithProfile, error) {
	user, err := s.userRepo.GetUserWithProfile(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile only overwrites the fields present in req.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest) (*models.UserWithProfile, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		profile.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.DateOfBirth != "" {
		profile.DateOfBirth = req.DateOfBirth
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *UserService) UpdateProfilePhoto(ctx context.Context, userID int, header *multipart.FileHeader) (*models.UserWithProfile, error) {
	if s.uploader == nil {
		return nil, errors.New("photo uploads are not configured")
	}
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, header, "profiles")
	if err != nil {
		return nil, err
	}

	if profile.PhotoURL != "" {
		if err := s.uploader.Delete(ctx, profile.PhotoURL); err != nil {
			log.Warn().Err(err).Int("user_id", userID).Msg("failed to delete previous profile photo")
		}
	}

	profile.PhotoURL = url
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *UserService) GetSettings(ctx context.Context, userID int) (models.UserSettings, error) {
	return s.userRepo.GetSettings(ctx, userID)
}

func (s *UserService) UpdateSettings(ctx context.Context, userID int, settings models.UserSettings) (models.UserSettings, error) {
	if settings.Language == "" {
		settings.Language = models.DefaultUserSettings().Language
	}
	if err := s.userRepo.SaveSettings(ctx, userID, settings); err != nil {
		return models.UserSettings{}, err
	}
	return settings, nil
}

func (s *UserService) GetStats(ctx context.Context, userID int) (*models.UserStats, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	owner := UserOwner(userID)
	stats := &models.UserStats{TotalSpent: decimal.Zero, MemberSince: user.CreatedAt}

	orderStats, err := s.orders.GetOrderStats(ctx, owner)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = orderStats.TotalOrders
	stats.TotalSpent = orderStats.TotalSpent

	favorites, err := s.favorites.GetFavorites(ctx, owner)
	if err != nil {
		return nil, err
	}
	stats.FavoriteRestaurants = len(favorites)

	if stats.ReviewsCount, err = s.reviews.CountByOwner(ctx, owner); err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteAccount removes the cart, favorites, orders and promotion usage
// stored under the user's owner key, then the user. The user row goes last so
// a failed cleanup can be retried.
func (s *UserService) DeleteAccount(ctx context.Context, userID int) error {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return err
	}

	owner := UserOwner(userID)
	if _, err := s.carts.ClearCart(ctx, owner); err != nil {
		return err
	}
	if err := s.favorites.ClearFavorites(ctx, owner); err != nil {
		return err
	}
	if err := s.orders.ClearAllOrders(ctx, owner); err != nil {
		return err
	}
	if err := s.promotions.ResetUsage(ctx, owner); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if profile.PhotoURL != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, profile.PhotoURL); err != nil {
			log.Warn().Err(err).Int("user_id", userID).Msg("failed to delete profile photo")
		}
	}

	log.Info().Int("user_id", userID).Msg("account deleted")
	return nil
}

func (s *UserService) profile(ctx context.Context, userID int) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return profile, err
}
