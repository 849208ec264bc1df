package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Shows beyond this many sold tickets get refund jobs queued on cancellation;
// smaller shows are refunded manually by support.
const autoRefundTicketThreshold = 200

type ShowService interface {
	GetShowSeatMap(ctx context.Context, showID string) (*response.SeatMapResponse, error)

	// CancelShow cancels a scheduled show and queues the compensation work:
	// SMS notifications for every confirmed booking, concession order
	// cancellation, and refund jobs for large shows. Idempotent.
	CancelShow(ctx context.Context, showID string, req *request.CancelShowRequest) (*response.CancelShowResponse, error)
}

type showService struct {
	repo      *repository.Repository
	db        database.PgxIface
	refundCfg utils.RefundConfig
	outboxCfg utils.OutboxConfig
	log       *zap.Logger
}

func NewShowService(repo *repository.Repository, db database.PgxIface, refundCfg utils.RefundConfig, outboxCfg utils.OutboxConfig, log *zap.Logger) ShowService {
	return &showService{
		repo:      repo,
		db:        db,
		refundCfg: refundCfg,
		outboxCfg: outboxCfg,
		log:       log.With(zap.String("service", "show")),
	}
}

func (s *showService) GetShowSeatMap(ctx context.Context, showID string) (*response.SeatMapResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid show ID format %s", showID)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, apperror.New(http.StatusNotFound, "SHOW_NOT_FOUND", "Show not found")
	}

	auditorium, err := s.repo.Show.FindAuditoriumByID(ctx, show.AuditoriumID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.ShowSeat.FindByShowID(ctx, id)
	if err != nil {
		return nil, err
	}

	showResp := response.SeatMapShowResponse{
		ID:         show.ID.String(),
		MovieTitle: show.MovieTitle,
		StartsAt:   show.StartsAt,
		IntervalAt: show.IntervalAt,
		Status:     string(show.Status),
		IsBookable: show.IsBookable(),
	}
	if auditorium != nil {
		showResp.Auditorium = &response.AuditoriumResponse{
			ID:   auditorium.ID.String(),
			Name: auditorium.Name,
			Rows: auditorium.Rows,
			Cols: auditorium.Cols,
		}
	}

	seatResponses := make([]response.SeatMapSeatResponse, 0, len(seats))
	for _, seat := range seats {
		seatResponses = append(seatResponses, response.SeatMapSeatResponse{
			ShowSeatID: seat.ID.String(),
			SeatID:     seat.SeatID.String(),
			RowLabel:   seat.RowLabel,
			SeatNumber: seat.SeatNumber,
			Status:     string(seat.Status),
			Price:      float64(seat.PriceCents) / 100,
		})
	}

	return &response.SeatMapResponse{
		Show:  showResp,
		Seats: seatResponses,
	}, nil
}

func (s *showService) CancelShow(ctx context.Context, showID string, req *request.CancelShowRequest) (*response.CancelShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel show validation failed", zap.Any("errors", errs))
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid show ID format %s", showID)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, apperror.New(http.StatusNotFound, "SHOW_NOT_FOUND", "Show not found")
	}
	if show.Status == entity.ShowStatusCompleted {
		return nil, apperror.New(http.StatusConflict, "SHOW_NOT_CANCELLABLE", "Completed shows cannot be cancelled")
	}

	summaries, err := s.repo.Booking.FindConfirmedSummaries(ctx, id)
	if err != nil {
		return nil, err
	}

	totalTickets := 0
	for _, summary := range summaries {
		totalTickets += summary.SeatCount
	}

	result, err := s.cancelShowTx(ctx, show, req.Reason, summaries, totalTickets)
	if err != nil {
		return nil, err
	}

	s.log.Info("Show cancelled",
		zap.String("show_id", id.String()),
		zap.Bool("already_cancelled", result.AlreadyCancelled),
		zap.Int("total_bookings", result.TotalBookings),
		zap.Int("total_tickets", result.TotalTickets),
		zap.Int("refund_jobs_queued", result.RefundJobsQueued),
	)

	return result, nil
}

func (s *showService) cancelShowTx(
	ctx context.Context,
	show *entity.Show,
	reason string,
	summaries []*entity.ConfirmedBookingSummary,
	totalTickets int,
) (*response.CancelShowResponse, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin show cancellation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	cancelled, err := s.repo.Show.MarkCancelled(ctx, tx, show.ID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		// Already CANCELLED (COMPLETED was rejected above). Compensation was
		// queued on the first call, so just report the current state.
		return &response.CancelShowResponse{
			ShowID:           show.ID.String(),
			Status:           string(entity.ShowStatusCancelled),
			AlreadyCancelled: true,
			TotalBookings:    len(summaries),
			TotalTickets:     totalTickets,
		}, nil
	}

	smsQueued, err := s.queueCancellationSMS(ctx, tx, show.ID, reason, summaries, now)
	if err != nil {
		return nil, err
	}

	bookingIDs := make([]uuid.UUID, 0, len(summaries))
	for _, summary := range summaries {
		bookingIDs = append(bookingIDs, summary.BookingID)
	}
	if len(bookingIDs) > 0 {
		if _, err := s.repo.Concession.CancelByBookingIDs(ctx, tx, bookingIDs); err != nil {
			return nil, err
		}
	}

	refundJobsQueued := 0
	if totalTickets > autoRefundTicketThreshold {
		refundJobsQueued = len(summaries)
		if err := s.queueRefundJobs(ctx, tx, show.ID, summaries, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit show cancellation transaction: %w", err)
	}

	return &response.CancelShowResponse{
		ShowID:           show.ID.String(),
		Status:           string(entity.ShowStatusCancelled),
		TotalBookings:    len(summaries),
		TotalTickets:     totalTickets,
		SmsQueued:        smsQueued,
		RefundJobsQueued: refundJobsQueued,
	}, nil
}

func (s *showService) queueCancellationSMS(
	ctx context.Context,
	tx database.Queryer,
	showID uuid.UUID,
	reason string,
	summaries []*entity.ConfirmedBookingSummary,
	now time.Time,
) (int, error) {
	if len(summaries) == 0 {
		return 0, nil
	}

	notifications := make([]*entity.Notification, 0, len(summaries))
	for _, summary := range summaries {
		body, err := json.Marshal(showCancelledPayload{
			ShowID: showID.String(),
			Reason: reason,
			Message: fmt.Sprintf("Show cancelled for booking %s. Reason: %s",
				summary.BookingID.String(), reason),
		})
		if err != nil {
			return 0, fmt.Errorf("marshal show cancelled payload: %w", err)
		}

		notification := &entity.Notification{
			BookingID:   summary.BookingID,
			Channel:     entity.NotificationChannelSMS,
			Template:    entity.TemplateShowCancelledSMS,
			Recipient:   summary.CustomerEmail,
			Payload:     body,
			Status:      entity.NotificationStatusPending,
			MaxAttempts: s.outboxCfg.MaxAttempts,
		}
		notification.ID = uuid.New()
		notification.CreatedAt = now
		notification.UpdatedAt = now
		notifications = append(notifications, notification)
	}

	if err := s.repo.Notification.CreateBatch(ctx, tx, notifications); err != nil {
		return 0, err
	}
	return len(notifications), nil
}

func (s *showService) queueRefundJobs(
	ctx context.Context,
	tx database.Queryer,
	showID uuid.UUID,
	summaries []*entity.ConfirmedBookingSummary,
	now time.Time,
) error {
	jobs := make([]*entity.RefundJob, 0, len(summaries))
	for _, summary := range summaries {
		job := &entity.RefundJob{
			ShowID:            showID,
			BookingID:         summary.BookingID,
			AmountCents:       summary.TotalCents,
			ProviderReference: summary.ProviderReference,
			Status:            entity.RefundJobStatusPending,
			MaxAttempts:       s.refundCfg.MaxAttempts,
			NextAttemptAt:     &now,
		}
		job.ID = uuid.New()
		job.CreatedAt = now
		job.UpdatedAt = now
		jobs = append(jobs, job)
	}

	return s.repo.RefundJob.CreateBatch(ctx, tx, jobs)
}
