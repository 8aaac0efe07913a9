package repositories

import (
	"context"
	"sort"
	"strings"

	"github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/campulist/campulist/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

type reportRepository struct {
	store  *Store
	logger zerolog.Logger
}

// NewReportRepository creates the in-memory ReportRepository.
func NewReportRepository(store *Store, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		store:  store,
		logger: logger.With().Str("repository", "reports").Logger(),
	}
}

func (r *reportRepository) Create(ctx context.Context, input dto.CreateReportInput, session models.Session) (*models.Report, error) {
	if input.TargetType != models.TargetPost {
		return nil, apperrors.NewBadRequestError("Only post reports are supported.")
	}
	if !input.Reason.IsValid() {
		return nil, apperrors.NewBadRequestError("Report reason is invalid.")
	}

	var out *models.Report
	err := r.store.Update(func(tx *Tx) error {
		post := tx.Post(input.TargetID)
		if post == nil || post.IsDeleted() {
			return apperrors.NewResourceNotFoundError("Report target post not found.")
		}
		if post.CampusID != session.CampusID {
			return apperrors.NewForbiddenError("Cross-campus report is blocked.")
		}

		now := tx.Now()
		report := &models.Report{
			BaseEntity: models.BaseEntity{
				ID:        tx.NewID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CampusID:   session.CampusID,
			ReporterID: session.UserID,
			TargetType: input.TargetType,
			TargetID:   post.ID,
			Reason:     input.Reason,
			Details:    strings.TrimSpace(input.Details),
			Status:     models.ReportPending,
		}
		tx.InsertReport(report)
		out = report.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info().Str("report_id", out.ID).Str("target_id", out.TargetID).Str("reason", string(out.Reason)).Msg("report filed")
	return out, nil
}

func (r *reportRepository) ListForAdmin(ctx context.Context, query dto.ReportListQuery, session models.Session) (dto.ListResult[*models.Report], error) {
	if err := auth.ValidateModerator(session); err != nil {
		return dto.ListResult[*models.Report]{}, err
	}

	campusID := session.CampusID
	if query.CampusID != nil && *query.CampusID != "" {
		campusID = *query.CampusID
	}

	var rows []*models.Report
	err := r.store.View(func(tx *Tx) error {
		for _, report := range tx.Reports() {
			if report.IsDeleted() || report.CampusID != campusID {
				continue
			}
			if query.Status != nil && report.Status != *query.Status {
				continue
			}
			rows = append(rows, report.Clone())
		}
		return nil
	})
	if err != nil {
		return dto.ListResult[*models.Report]{}, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return dto.NewListResult(helpers.Paginate(rows, query.Limit, query.Offset)), nil
}

func (r *reportRepository) Resolve(ctx context.Context, id string, input dto.ResolveReportInput, session models.Session) (*models.Report, error) {
	if err := auth.ValidateModerator(session); err != nil {
		return nil, err
	}

	var (
		out    *models.Report
		hidden bool
	)
	err := r.store.Update(func(tx *Tx) error {
		report := tx.Report(id)
		if report == nil || report.IsDeleted() {
			return apperrors.NewResourceNotFoundError("Report not found.")
		}
		if !input.Status.IsTerminal() {
			return apperrors.NewBadRequestError("status must be one of reviewed, actioned, rejected.")
		}

		now := tx.Now()
		note := strings.TrimSpace(input.ActionNote)
		reviewer := session.UserID
		reviewedAt := now

		report.Status = input.Status
		report.ActionNote = &note
		report.ReviewedBy = &reviewer
		report.ReviewedAt = &reviewedAt
		report.Touch(now)

		if input.HideTarget {
			// A target that has since been deleted is skipped silently.
			if post := tx.Post(report.TargetID); post != nil && !post.IsDeleted() {
				post.Status = models.PostHidden
				post.Touch(now)
				hidden = true
			}
		}

		out = report.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("report_id", out.ID).
		Str("status", string(out.Status)).
		Bool("target_hidden", hidden).
		Msg("report resolved")
	return out, nil
}
