package weddings

import (
	"context"
	"errors"
	"strings"
	"time"

	"wedding-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrWeddingNotFound   = errors.New("Wedding not found")
	ErrCoupleRequired    = errors.New("couple_names is required")
	ErrInvalidDate       = errors.New("wedding_date and rsvp_cutoff_date must be YYYY-MM-DD")
	ErrCutoffAfterDate   = errors.New("rsvp_cutoff_date must not be after wedding_date")
	ErrInvalidLanguage   = errors.New("Invalid language")
	ErrNotWeddingPlanner = errors.New("Wedding does not belong to this planner")
)

const dateLayout = "2006-01-02"

type Service struct {
	DB *gorm.DB
}

// Get returns the wedding or ErrWeddingNotFound. Soft-deleted weddings are not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Wedding, error) {
	var w domain.Wedding
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeddingNotFound
		}
		return nil, err
	}
	return &w, nil
}

// WeddingInput is the planner payload for create and update. Dates are YYYY-MM-DD.
type WeddingInput struct {
	CoupleNames     string `json:"couple_names"`
	WeddingDate     string `json:"wedding_date"`
	WeddingTime     string `json:"wedding_time"`
	Location        string `json:"location"`
	RSVPCutoffDate  string `json:"rsvp_cutoff_date"`
	DefaultLanguage string `json:"default_language"`
}

func (in WeddingInput) apply(w *domain.Wedding) error {
	if strings.TrimSpace(in.CoupleNames) == "" {
		return ErrCoupleRequired
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(in.WeddingDate))
	if err != nil {
		return ErrInvalidDate
	}
	cutoff, err := time.Parse(dateLayout, strings.TrimSpace(in.RSVPCutoffDate))
	if err != nil {
		return ErrInvalidDate
	}
	if cutoff.After(date) {
		return ErrCutoffAfterDate
	}
	lang := domain.LanguageES
	if strings.TrimSpace(in.DefaultLanguage) != "" {
		l, ok := domain.ParseLanguage(in.DefaultLanguage)
		if !ok {
			return ErrInvalidLanguage
		}
		lang = l
	}
	w.CoupleNames = strings.TrimSpace(in.CoupleNames)
	w.WeddingDate = date
	w.WeddingTime = strings.TrimSpace(in.WeddingTime)
	w.Location = strings.TrimSpace(in.Location)
	// the cutoff date stays open until the end of that day
	w.RSVPCutoffDate = cutoff.Add(24*time.Hour - time.Second)
	w.DefaultLanguage = lang
	return nil
}

// Create stores a wedding owned by plannerID and binds the planner's account to it.
func (s *Service) Create(ctx context.Context, plannerID uuid.UUID, in WeddingInput) (*domain.Wedding, error) {
	w := &domain.Wedding{PlannerID: &plannerID}
	if err := in.apply(w); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(w).Error; err != nil {
			return err
		}
		return tx.Model(&domain.User{}).Where("user_id = ?", plannerID).Update("wedding_id", w.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Update replaces the editable fields of a wedding the planner owns.
func (s *Service) Update(ctx context.Context, plannerID, id uuid.UUID, in WeddingInput) (*domain.Wedding, error) {
	w, err := s.Owned(ctx, plannerID, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(w); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// ListForPlanner returns the planner's weddings, soonest first.
func (s *Service) ListForPlanner(ctx context.Context, plannerID uuid.UUID) ([]domain.Wedding, error) {
	var out []domain.Wedding
	err := s.DB.WithContext(ctx).Where("planner_id = ?", plannerID).Order("wedding_date ASC").Find(&out).Error
	return out, err
}

// Owned returns the wedding when plannerID owns it.
func (s *Service) Owned(ctx context.Context, plannerID, id uuid.UUID) (*domain.Wedding, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.PlannerID == nil || *w.PlannerID != plannerID {
		return nil, ErrNotWeddingPlanner
	}
	return w, nil
}

// Delete soft-deletes a wedding the planner owns.
func (s *Service) Delete(ctx context.Context, plannerID, id uuid.UUID) error {
	w, err := s.Owned(ctx, plannerID, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(w).Error
}
