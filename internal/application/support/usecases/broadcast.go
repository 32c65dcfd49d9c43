package usecases

import (
	"context"
	"fmt"

	"parley/internal/domain/directory"
	"parley/internal/domain/support"
	vo "parley/internal/domain/support/valueobjects"
	"parley/internal/shared/errors"
	"parley/internal/shared/logger"
)

const defaultBroadcastBatchSize = 100

type BroadcastCommand struct {
	AdminID uint
	Target  string
	TeamID  uint
	Text    string
	// BroadcastID resumes a previous run. Empty mints a fresh run ID.
	BroadcastID string
}

type BroadcastResult struct {
	BroadcastID    string
	TicketsCreated int
	MessagesSent   int
	Errors         []string
}

// BroadcastUseCase fans an announcement out to many tickets. The full
// directory is scanned in fixed-size batches, each batch committing in its
// own transaction, so one bad batch never rolls back the rest of the run.
// A single recipient failing is logged and tallied, not fatal.
//
// Every message of a run carries the run's broadcast ID. Re-running with the
// same ID skips tickets that already hold it, which makes crash recovery a
// plain retry.
type BroadcastUseCase struct {
	ticketRepo    support.TicketRepository
	msgRepo       support.MessageRepository
	notifRepo     support.NotificationRepository
	directoryRepo directory.Repository
	txRunner      TxRunner
	locker        Locker
	sanitizer     Sanitizer
	idGenerator   BroadcastIDGenerator
	batchSize     int
	logger        logger.Interface
}

func NewBroadcastUseCase(
	ticketRepo support.TicketRepository,
	msgRepo support.MessageRepository,
	notifRepo support.NotificationRepository,
	directoryRepo directory.Repository,
	txRunner TxRunner,
	locker Locker,
	sanitizer Sanitizer,
	idGenerator BroadcastIDGenerator,
	batchSize int,
	logger logger.Interface,
) *BroadcastUseCase {
	if batchSize <= 0 {
		batchSize = defaultBroadcastBatchSize
	}
	return &BroadcastUseCase{
		ticketRepo:    ticketRepo,
		msgRepo:       msgRepo,
		notifRepo:     notifRepo,
		directoryRepo: directoryRepo,
		txRunner:      txRunner,
		locker:        locker,
		sanitizer:     sanitizer,
		idGenerator:   idGenerator,
		batchSize:     batchSize,
		logger:        logger,
	}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, cmd BroadcastCommand) (*BroadcastResult, error) {
	target := vo.BroadcastTarget(cmd.Target)
	if !target.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid broadcast target: %s", cmd.Target))
	}
	if target.RequiresTeam() && cmd.TeamID == 0 {
		return nil, errors.NewValidationError("team ID is required for team broadcasts")
	}

	text := uc.sanitizer.Sanitize(cmd.Text)
	if text == "" {
		return nil, errors.NewValidationError("broadcast message is required")
	}

	runID := cmd.BroadcastID
	if runID == "" {
		runID = uc.idGenerator.NewID()
	}

	result := &BroadcastResult{BroadcastID: runID}

	switch target {
	case vo.TargetAll:
		if err := uc.broadcastToAll(ctx, cmd.AdminID, text, runID, result); err != nil {
			return nil, err
		}
	case vo.TargetOpenTickets:
		if err := uc.broadcastToOpenTickets(ctx, cmd.AdminID, text, runID, result); err != nil {
			return nil, err
		}
	case vo.TargetSpecificTeam:
		if err := uc.broadcastToTeam(ctx, cmd.AdminID, cmd.TeamID, text, runID, result); err != nil {
			return nil, err
		}
	}

	uc.logger.Infow("broadcast finished",
		"broadcast_id", runID,
		"target", target,
		"messages_sent", result.MessagesSent,
		"tickets_created", result.TicketsCreated,
		"errors", len(result.Errors),
	)

	return result, nil
}

func (uc *BroadcastUseCase) broadcastToAll(ctx context.Context, adminID uint, text, runID string, result *BroadcastResult) error {
	total, err := uc.directoryRepo.CountUsers(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count users for broadcast", "error", err)
		return fmt.Errorf("failed to count users: %w", err)
	}

	uc.logger.Infow("starting broadcast to all users",
		"broadcast_id", runID,
		"total_users", total,
		"batch_size", uc.batchSize,
	)

	for offset := 0; int64(offset) < total; offset += uc.batchSize {
		users, err := uc.directoryRepo.ListUsers(ctx, offset, uc.batchSize)
		if err != nil {
			msg := fmt.Sprintf("batch %d failed: %v", offset/uc.batchSize+1, err)
			uc.logger.Errorw("broadcast batch listing failed", "error", err, "offset", offset)
			result.Errors = append(result.Errors, msg)
			continue
		}

		if err := uc.deliverBatch(ctx, adminID, users, text, runID, result); err != nil {
			msg := fmt.Sprintf("batch %d failed: %v", offset/uc.batchSize+1, err)
			uc.logger.Errorw("broadcast batch failed", "error", err, "offset", offset)
			result.Errors = append(result.Errors, msg)
		}
	}

	return nil
}

// batchTally accumulates one transaction's deliveries. It folds into the run
// result only after the transaction commits, so rolled-back work is never
// counted.
type batchTally struct {
	ticketsCreated int
	messagesSent   int
	errors         []string
}

func (t *batchTally) foldInto(result *BroadcastResult) {
	result.TicketsCreated += t.ticketsCreated
	result.MessagesSent += t.messagesSent
	result.Errors = append(result.Errors, t.errors...)
}

// deliverBatch commits one batch in its own transaction. Recipient failures
// inside the batch are tallied and skipped; only a transaction-level failure
// surfaces.
func (uc *BroadcastUseCase) deliverBatch(ctx context.Context, adminID uint, users []*directory.User, text, runID string, result *BroadcastResult) error {
	tally := &batchTally{}
	err := uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, u := range users {
			if err := uc.deliverToUser(ctx, adminID, u.ID, text, runID, tally); err != nil {
				uc.logger.Warnw("broadcast delivery to user failed",
					"error", err,
					"broadcast_id", runID,
					"user_id", u.ID,
				)
				tally.errors = append(tally.errors, fmt.Sprintf("user %d: %v", u.ID, err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	tally.foldInto(result)
	return nil
}

func (uc *BroadcastUseCase) broadcastToOpenTickets(ctx context.Context, adminID uint, text, runID string, result *BroadcastResult) error {
	tickets, err := uc.ticketRepo.ListOpen(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list open tickets for broadcast", "error", err)
		return fmt.Errorf("failed to list open tickets: %w", err)
	}

	tally := &batchTally{}
	if err := uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, t := range tickets {
			if err := uc.deliverToTicket(ctx, adminID, t, text, runID, tally); err != nil {
				uc.logger.Warnw("broadcast delivery to ticket failed",
					"error", err,
					"broadcast_id", runID,
					"ticket_id", t.ID(),
				)
				tally.errors = append(tally.errors, fmt.Sprintf("ticket %d: %v", t.ID(), err))
			}
		}
		return nil
	}); err != nil {
		return err
	}
	tally.foldInto(result)
	return nil
}

func (uc *BroadcastUseCase) broadcastToTeam(ctx context.Context, adminID, teamID uint, text, runID string, result *BroadcastResult) error {
	team, err := uc.directoryRepo.GetTeam(ctx, teamID)
	if err != nil {
		return errors.NewNotFoundError("team not found")
	}

	users, err := uc.directoryRepo.ListTeamUsers(ctx, teamID)
	if err != nil {
		uc.logger.Errorw("failed to list team users for broadcast", "error", err, "team_id", teamID)
		return fmt.Errorf("failed to list team users: %w", err)
	}

	// Team broadcasts carry the team name in the banner.
	teamText := fmt.Sprintf("[BROADCAST to %s] %s", team.Name, text)
	tally := &batchTally{}
	if err := uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, u := range users {
			if err := uc.deliverPrefixed(ctx, adminID, u.ID, teamText, runID, tally); err != nil {
				uc.logger.Warnw("broadcast delivery to team user failed",
					"error", err,
					"broadcast_id", runID,
					"user_id", u.ID,
				)
				tally.errors = append(tally.errors, fmt.Sprintf("user %d: %v", u.ID, err))
			}
		}
		return nil
	}); err != nil {
		return err
	}
	tally.foldInto(result)
	return nil
}

func (uc *BroadcastUseCase) deliverToUser(ctx context.Context, adminID, userID uint, text, runID string, tally *batchTally) error {
	return uc.deliverPrefixed(ctx, adminID, userID, fmt.Sprintf("[BROADCAST] %s", text), runID, tally)
}

// deliverPrefixed finds or creates the recipient's open ticket under the
// per-user lock and appends the already-prefixed banner message.
func (uc *BroadcastUseCase) deliverPrefixed(ctx context.Context, adminID, userID uint, fullText, runID string, tally *batchTally) error {
	uc.locker.Lock(userLockKey(userID))
	defer uc.locker.Unlock(userLockKey(userID))

	ticket, err := uc.ticketRepo.GetOpenByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get open ticket: %w", err)
	}
	if ticket == nil {
		ticket, err = support.NewTicket(userID)
		if err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}
		if err := uc.ticketRepo.Save(ctx, ticket); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}
		tally.ticketsCreated++
	} else {
		delivered, err := uc.msgRepo.HasBroadcast(ctx, ticket.ID(), runID)
		if err != nil {
			return fmt.Errorf("failed to check prior delivery: %w", err)
		}
		if delivered {
			return nil
		}
	}

	return uc.appendBanner(ctx, adminID, ticket, fullText, runID, tally)
}

func (uc *BroadcastUseCase) deliverToTicket(ctx context.Context, adminID uint, ticket *support.Ticket, text, runID string, tally *batchTally) error {
	delivered, err := uc.msgRepo.HasBroadcast(ctx, ticket.ID(), runID)
	if err != nil {
		return fmt.Errorf("failed to check prior delivery: %w", err)
	}
	if delivered {
		return nil
	}
	return uc.appendBanner(ctx, adminID, ticket, fmt.Sprintf("[BROADCAST] %s", text), runID, tally)
}

func (uc *BroadcastUseCase) appendBanner(ctx context.Context, adminID uint, ticket *support.Ticket, fullText, runID string, tally *batchTally) error {
	message, err := support.NewMessage(ticket.ID(), vo.RoleAdmin, adminID, fullText)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}
	if err := message.TagBroadcast(runID); err != nil {
		return fmt.Errorf("failed to tag message: %w", err)
	}
	if err := uc.msgRepo.Save(ctx, message); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	ticket.Touch()
	if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	if err := incrementUnread(ctx, uc.notifRepo, ticket.UserID(), ticket.ID()); err != nil {
		return err
	}

	tally.messagesSent++
	return nil
}
