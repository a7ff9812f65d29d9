package jobs

import (
	"context"
	"errors"
	"log/slog"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/pkg/logging"

	"github.com/robfig/cron/v3"
)

// DefaultLedgerRelaySchedule runs the relay every five seconds.
const DefaultLedgerRelaySchedule = "*/5 * * * * *"

// maxBatchesPerTick bounds how long one tick may keep draining a backlog.
const maxBatchesPerTick = 50

type LedgerRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayLedgerCommand) (int, error)
}

// LedgerRelayJob publishes committed ledger entries on a cron schedule. A tick
// that is still running when the next one fires makes the next one skip.
type LedgerRelayJob struct {
	relayer  LedgerRelayer
	cmd      commands.RelayLedgerCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewLedgerRelayJob(relayer LedgerRelayer, cmd commands.RelayLedgerCommand, schedule string, logger *slog.Logger) *LedgerRelayJob {
	if schedule == "" {
		schedule = DefaultLedgerRelaySchedule
	}
	return &LedgerRelayJob{
		relayer:  relayer,
		cmd:      cmd,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "ledger_relay_job", "cursor", cmd.Cursor()),
	}
}

func (j *LedgerRelayJob) Name() string { return "ledger relay" }

func (j *LedgerRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays full batches until the backlog is drained, an error occurs
// or maxBatchesPerTick is reached. It returns the number of records published.
func (j *LedgerRelayJob) RunOnce(ctx context.Context) int {
	ctx = logging.IntoContext(ctx, j.logger)

	total := 0
	for range maxBatchesPerTick {
		published, err := j.relayer.Handle(ctx, j.cmd)
		if err != nil {
			if !errors.Is(err, commands.ErrNoLedgerRecords) {
				j.logger.ErrorContext(ctx, "Ledger relay job failed", "error", err, "published", total)
			}
			break
		}
		total += published
		if published < j.cmd.BatchSize() {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Ledger records relayed", "count", total)
	}
	return total
}

// Stop waits for a running tick to finish.
func (j *LedgerRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Ledger relay job stopped")
}
