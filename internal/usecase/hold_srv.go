package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/lock"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HoldService interface {
	CreateHold(ctx context.Context, req *request.CreateHoldRequest) (*response.HoldResponse, error)
	GetHold(ctx context.Context, holdID string) (*response.HoldResponse, error)
	CancelHold(ctx context.Context, holdID string) (*response.HoldResponse, error)

	// ExpireActiveHoldsBatch frees seats of holds past their TTL and returns
	// how many holds were expired. Called by the cleanup worker.
	ExpireActiveHoldsBatch(ctx context.Context) (int, error)
}

type holdService struct {
	repo    *repository.Repository
	db      database.PgxIface
	locker  lock.SeatLocker
	holdCfg utils.HoldConfig
	log     *zap.Logger
}

func NewHoldService(repo *repository.Repository, db database.PgxIface, locker lock.SeatLocker, holdCfg utils.HoldConfig, log *zap.Logger) HoldService {
	return &holdService{
		repo:    repo,
		db:      db,
		locker:  locker,
		holdCfg: holdCfg,
		log:     log.With(zap.String("service", "hold")),
	}
}

func (s *holdService) CreateHold(ctx context.Context, req *request.CreateHoldRequest) (*response.HoldResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hold validation failed", zap.Any("errors", errs))
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid show ID format %s", req.ShowID)
	}

	seatIDs := make([]uuid.UUID, 0, len(req.ShowSeatIDs))
	seen := make(map[uuid.UUID]struct{}, len(req.ShowSeatIDs))
	for _, raw := range req.ShowSeatIDs {
		seatID, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid seat ID format %s", raw)
		}
		if _, dup := seen[seatID]; dup {
			return nil, apperror.New(http.StatusBadRequest, "INVALID_INPUT", "Duplicate showSeatIds are not allowed")
		}
		seen[seatID] = struct{}{}
		seatIDs = append(seatIDs, seatID)
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, apperror.New(http.StatusNotFound, "SHOW_NOT_FOUND", "Show not found")
	}
	if !show.IsBookable() {
		return nil, apperror.New(http.StatusConflict, "SHOW_NOT_BOOKABLE", "Show is not open for booking")
	}

	requested, err := s.repo.ShowSeat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, err
	}
	if len(requested) != len(seatIDs) {
		return nil, apperror.New(http.StatusNotFound, "SEAT_NOT_FOUND", "One or more seats do not exist for this show")
	}
	for _, seat := range requested {
		if seat.ShowID != showID {
			return nil, apperror.New(http.StatusNotFound, "SEAT_NOT_FOUND", "One or more seats do not exist for this show")
		}
	}

	var unavailable []string
	for _, seat := range requested {
		if seat.Status != entity.ShowSeatStatusAvailable {
			unavailable = append(unavailable, seat.ID.String())
		}
	}
	if len(unavailable) > 0 {
		return nil, apperror.Newf(http.StatusConflict, "SEAT_UNAVAILABLE", "One or more seats are unavailable: %v", unavailable)
	}

	allSeats, err := s.repo.ShowSeat.FindByShowID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if rowLabel, found := findSingleSeatGapRow(allSeats, seen); found {
		return nil, apperror.Newf(http.StatusUnprocessableEntity, "SINGLE_SEAT_GAP", "Selection violates single-seat-gap rule in row %s", rowLabel)
	}

	now := time.Now().UTC()
	holdID := uuid.New()
	hold := &entity.Hold{
		ShowID:        showID,
		CustomerEmail: req.CustomerEmail,
		Status:        entity.HoldStatusActive,
		ExpiresAt:     now.Add(s.holdCfg.TTL),
	}
	hold.ID = holdID
	hold.CreatedAt = now
	hold.UpdatedAt = now

	// The hold ID doubles as the lock token so expiry and cancel paths can
	// release exactly the locks this hold owns.
	conflict, err := s.locker.AcquireAll(ctx, showID, seatIDs, holdID.String(), s.holdCfg.TTL)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, apperror.Newf(http.StatusConflict, "SEAT_LOCK_CONFLICT", "Seat lock conflict for seat %s", conflict.String())
	}

	if err := s.createHoldTx(ctx, hold, seatIDs); err != nil {
		s.locker.ReleaseAll(ctx, showID, seatIDs, holdID.String())
		return nil, err
	}

	s.log.Info("Hold created",
		zap.String("hold_id", holdID.String()),
		zap.String("show_id", showID.String()),
		zap.Int("seats", len(seatIDs)),
	)

	return s.buildHoldResponse(ctx, hold)
}

// createHoldTx flips the requested seats to HELD and inserts the hold rows in
// one transaction. The conditional seat update is the last line of defense
// against a selection that changed under the advisory locks.
func (s *holdService) createHoldTx(ctx context.Context, hold *entity.Hold, seatIDs []uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin hold transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	held, err := s.repo.ShowSeat.MarkHeld(ctx, tx, seatIDs)
	if err != nil {
		return err
	}
	if held != int64(len(seatIDs)) {
		return apperror.New(http.StatusConflict, "SEAT_CONFLICT", "Seat state changed during hold creation")
	}

	if err := s.repo.Hold.Create(ctx, tx, hold, seatIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *holdService) GetHold(ctx context.Context, holdID string) (*response.HoldResponse, error) {
	id, err := uuid.Parse(holdID)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid hold ID format %s", holdID)
	}

	hold, err := s.repo.Hold.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, apperror.New(http.StatusNotFound, "HOLD_NOT_FOUND", "Hold not found")
	}

	return s.buildHoldResponse(ctx, hold)
}

func (s *holdService) CancelHold(ctx context.Context, holdID string) (*response.HoldResponse, error) {
	id, err := uuid.Parse(holdID)
	if err != nil {
		return nil, apperror.Newf(http.StatusBadRequest, "INVALID_INPUT", "invalid hold ID format %s", holdID)
	}

	hold, err := s.repo.Hold.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, apperror.New(http.StatusNotFound, "HOLD_NOT_FOUND", "Hold not found")
	}

	seatIDs, err := s.repo.Hold.FindSeatIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.releaseHoldTx(ctx, hold, seatIDs); err != nil {
		return nil, err
	}

	s.locker.ReleaseAll(ctx, hold.ShowID, seatIDs, hold.ID.String())

	refreshed, err := s.repo.Hold.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if refreshed == nil {
		return nil, apperror.New(http.StatusNotFound, "HOLD_NOT_FOUND", "Hold not found after cancellation")
	}

	s.log.Info("Hold cancelled", zap.String("hold_id", id.String()))
	return s.buildHoldResponse(ctx, refreshed)
}

// releaseHoldTx cancels the hold (when still active) and always frees any
// still-held seats as an idempotent healing step.
func (s *holdService) releaseHoldTx(ctx context.Context, hold *entity.Hold, seatIDs []uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin hold release transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if hold.Status == entity.HoldStatusActive {
		if _, err := s.repo.Hold.MarkCancelled(ctx, tx, hold.ID); err != nil {
			return err
		}
	}

	if len(seatIDs) > 0 {
		if _, err := s.repo.ShowSeat.ReleaseHeld(ctx, tx, seatIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *holdService) ExpireActiveHoldsBatch(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	expired, err := s.repo.Hold.FindExpired(ctx, now, s.holdCfg.ExpiryBatchSize)
	if err != nil {
		return 0, err
	}

	expiredCount := 0
	for _, hold := range expired {
		seatIDs, err := s.repo.Hold.FindSeatIDs(ctx, hold.ID)
		if err != nil {
			s.log.Error("Failed to load seats of expired hold",
				zap.Error(err),
				zap.String("hold_id", hold.ID.String()),
			)
			continue
		}

		changed, err := s.expireHoldTx(ctx, hold.ID, seatIDs)
		if err != nil {
			s.log.Error("Failed to expire hold",
				zap.Error(err),
				zap.String("hold_id", hold.ID.String()),
			)
			continue
		}

		if changed {
			expiredCount++
			s.locker.ReleaseAll(ctx, hold.ShowID, seatIDs, hold.ID.String())
		}
	}

	return expiredCount, nil
}

func (s *holdService) expireHoldTx(ctx context.Context, holdID uuid.UUID, seatIDs []uuid.UUID) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin hold expiry transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	moved, err := s.repo.Hold.MarkExpired(ctx, tx, holdID)
	if err != nil {
		return false, err
	}
	if !moved {
		// Converted or cancelled since the batch was loaded.
		return false, nil
	}

	if len(seatIDs) > 0 {
		if _, err := s.repo.ShowSeat.ReleaseHeld(ctx, tx, seatIDs); err != nil {
			return false, err
		}
	}

	return true, tx.Commit(ctx)
}

func (s *holdService) buildHoldResponse(ctx context.Context, hold *entity.Hold) (*response.HoldResponse, error) {
	seats, err := s.repo.Hold.FindSeatDetails(ctx, hold.ID)
	if err != nil {
		return nil, err
	}

	seatResponses := make([]response.HoldSeatResponse, 0, len(seats))
	for _, seat := range seats {
		seatResponses = append(seatResponses, response.HoldSeatResponse{
			ShowSeatID: seat.ID.String(),
			SeatID:     seat.SeatID.String(),
			RowLabel:   seat.RowLabel,
			SeatNumber: seat.SeatNumber,
			Status:     string(seat.Status),
			Price:      float64(seat.PriceCents) / 100,
		})
	}

	return &response.HoldResponse{
		ID:            hold.ID.String(),
		ShowID:        hold.ShowID.String(),
		CustomerEmail: hold.CustomerEmail,
		Status:        string(hold.Status),
		ExpiresAt:     hold.ExpiresAt,
		CreatedAt:     hold.CreatedAt,
		UpdatedAt:     hold.UpdatedAt,
		Seats:         seatResponses,
	}, nil
}
