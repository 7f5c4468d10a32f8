package tasks

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Evaluator applies weekly schedules to every auto-locked queue.
type Evaluator interface {
	EvaluateAll(ctx context.Context) error
}

type PlannerConfig struct {
	ScheduleSpec string         // проверка расписаний, по умолчанию раз в минуту
	ReaperSpec   string         // выполнение отложенных задач
	Location     *time.Location // часовой пояс расписаний
	Timeout      time.Duration
}

func (c PlannerConfig) withDefaults() PlannerConfig {
	if c.ScheduleSpec == "" {
		c.ScheduleSpec = "0 * * * * *"
	}
	if c.ReaperSpec == "" {
		c.ReaperSpec = "*/5 * * * * *"
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// InitScheduler registers the schedule tick and the delayed-task tick and
// starts the cron planner. Each job is single-flight: a tick that fires while
// the previous run of the same job is still busy is skipped.
func InitScheduler(cfg PlannerConfig, eval Evaluator, runner *Runner) (*cron.Cron, error) {
	cfg = cfg.withDefaults()
	logger := cron.PrintfLogger(log.Default())

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.Location),
		cron.WithLogger(logger),
	)

	if eval != nil {
		_, err := c.AddJob(cfg.ScheduleSpec, singleFlight(logger, func() {
			EvaluateSchedules(eval, cfg.Timeout)
		}))
		if err != nil {
			return nil, err
		}
	}

	if runner != nil {
		_, err := c.AddJob(cfg.ReaperSpec, singleFlight(logger, func() {
			RunDelayedTasks(runner, cfg.Timeout)
		}))
		if err != nil {
			return nil, err
		}
	}

	c.Start()
	log.Println("[INFO] Планировщик запущен")
	return c, nil
}

func singleFlight(logger cron.Logger, fn func()) cron.Job {
	return cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(fn))
}

// EvaluateSchedules runs one schedule evaluation pass.
func EvaluateSchedules(eval Evaluator, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := eval.EvaluateAll(ctx); err != nil {
		log.Println("[ERROR] Ошибка проверки расписаний:", err)
	}
}

// RunDelayedTasks executes every due delayed task.
func RunDelayedTasks(runner *Runner, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := runner.RunDue(ctx)
	if err != nil {
		log.Println("[ERROR] Ошибка выполнения отложенных задач:", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] Выполнено отложенных задач: %d", n)
	}
}
