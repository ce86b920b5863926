package services

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"quickbite/models"
	"quickbite/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	anonymousReviewer  = "Anonymous User"
	reviewPhotosFolder = "reviews"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindAll(ctx context.Context) ([]models.Review, error)
	FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	Delete(ctx context.Context, id string) error
	IncrementHelpful(ctx context.Context, id string) (*models.Review, error)
	CountByOwner(ctx context.Context, owner string) (int, error)
}

// PhotoUploader stores an uploaded image and returns its public URL.
type PhotoUploader interface {
	Upload(ctx context.Context, header *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

type ReviewService struct {
	reviews  ReviewRepository
	catalog  Catalog
	uploader PhotoUploader
	now      func() time.Time
}

func NewReviewService(reviews ReviewRepository, catalog Catalog, uploader PhotoUploader) *ReviewService {
	return &ReviewService{reviews: reviews, catalog: catalog, uploader: uploader, now: time.Now}
}

// GetAllReviews returns every review, newest first.
func (s *ReviewService) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviews.FindAll(ctx)
}

func (s *ReviewService) GetRestaurantReviews(ctx context.Context, restaurantID string) ([]models.Review, error) {
	if _, err := s.catalog.Restaurant(restaurantID); errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	return s.reviews.FindByRestaurant(ctx, restaurantID)
}

func (s *ReviewService) AddReview(ctx context.Context, owner string, req models.AddReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.catalog.Restaurant(req.RestaurantID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(req.UserName)
	if name == "" {
		name = anonymousReviewer
	}
	photos := []string{}
	for _, photo := range req.Photos {
		if !ownsReviewPhoto(owner, photo) {
			return nil, ErrForeignPhoto
		}
		photos = append(photos, photo)
	}

	review := &models.Review{
		ID:           uuid.NewString(),
		OwnerID:      owner,
		RestaurantID: req.RestaurantID,
		UserName:     name,
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		Photos:       photos,
		Date:         s.now(),
		Helpful:      0,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		log.Error().Err(err).Str("restaurant_id", req.RestaurantID).Msg("failed to save review")
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review written by owner. A non-empty restaurantID
// must match the review's restaurant.
func (s *ReviewService) DeleteReview(ctx context.Context, owner, id, restaurantID string) error {
	review, err := s.find(ctx, id, restaurantID)
	if err != nil {
		return err
	}
	if review.OwnerID != owner {
		return ErrNotReviewAuthor
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if s.uploader != nil {
		for _, photo := range review.Photos {
			if err := s.uploader.Delete(ctx, photo); err != nil {
				log.Warn().Err(err).Str("review_id", id).Msg("failed to delete review photo")
			}
		}
	}
	return nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, id, restaurantID string) (*models.Review, error) {
	if _, err := s.find(ctx, id, restaurantID); err != nil {
		return nil, err
	}
	review, err := s.reviews.IncrementHelpful(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	return review, err
}

// UploadReviewPhoto stores the photo in the owner's review folder. Only URLs
// from that folder are accepted by AddReview.
func (s *ReviewService) UploadReviewPhoto(ctx context.Context, owner string, header *multipart.FileHeader) (string, error) {
	if s.uploader == nil {
		return "", errors.New("photo uploads are not configured")
	}
	if owner == "" {
		return "", ErrForeignPhoto
	}
	return s.uploader.Upload(ctx, header, reviewPhotoFolder(owner))
}

func reviewPhotoFolder(owner string) string {
	return path.Join(reviewPhotosFolder, owner)
}

// ownsReviewPhoto reports whether raw points directly into owner's review
// folder. Queries, fragments and dot segments are rejected.
func ownsReviewPhoto(owner, raw string) bool {
	if owner == "" || strings.Contains(owner, "/") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery != "" || u.Fragment != "" || u.Path == "" {
		return false
	}
	if path.Clean(u.Path) != u.Path {
		return false
	}
	dir, file := path.Split(u.Path)
	return file != "" && strings.HasSuffix(dir, "/"+reviewPhotoFolder(owner)+"/")
}

// RestaurantRating averages the restaurant's review ratings to one decimal.
func (s *ReviewService) RestaurantRating(ctx context.Context, restaurantID string) (float64, int, error) {
	reviews, err := s.reviews.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return 0, 0, err
	}
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, len(reviews), nil
}

func (s *ReviewService) CountByOwner(ctx context.Context, owner string) (int, error) {
	return s.reviews.CountByOwner(ctx, owner)
}

func (s *ReviewService) find(ctx context.Context, id, restaurantID string) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	if restaurantID != "" && review.RestaurantID != restaurantID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}
