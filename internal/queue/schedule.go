package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"tutorq/internal/models"
)

const maxShiftMinutes = 12 * 60

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var dayNames = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

// ParseDay accepts a weekday name, its three-letter abbreviation or a number
// 0-6 where 0 is Sunday.
func ParseDay(v string) (int, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if d, ok := dayNames[v]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 6 {
		return n, nil
	}
	return 0, ErrInvalidDay.with(fmt.Sprintf("invalid day of week %q", v), nil)
}

// ParseClock converts "HH:mm" to minutes since midnight.
func ParseClock(v string) (int, error) {
	if !clockPattern.MatchString(v) {
		return 0, ErrInvalidTime.with(fmt.Sprintf("invalid time %q, expected HH:mm", v), nil)
	}
	h, _ := strconv.Atoi(v[:2])
	m, _ := strconv.Atoi(v[3:])
	return h*60 + m, nil
}

// ValidateWindow checks both clock strings and that start is before end.
func ValidateWindow(start, end string) error {
	s, err := ParseClock(start)
	if err != nil {
		return err
	}
	e, err := ParseClock(end)
	if err != nil {
		return err
	}
	if s >= e {
		return ErrInvalidWindow
	}
	return nil
}

// IsOpen reports whether nowMin falls into the window moved by shift minutes.
// A positive shift delays both opening and closing.
func IsOpen(sched models.QueueSchedule, shift, nowMin int) bool {
	start, err := ParseClock(sched.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseClock(sched.EndTime)
	if err != nil {
		return false
	}
	t := nowMin - shift
	return t >= start && t < end
}

// AddSchedule sets the window for one weekday, replacing any existing one.
func (s *Service) AddSchedule(ctx context.Context, guildID, name string, day int, start, end string) (*models.QueueSchedule, error) {
	if day < 0 || day > 6 {
		return nil, ErrInvalidDay
	}
	if err := ValidateWindow(start, end); err != nil {
		return nil, err
	}

	q, err := s.queueByName(ctx, s.store, guildID, name)
	if err != nil {
		return nil, err
	}
	sched := &models.QueueSchedule{QueueID: q.ID, DayOfWeek: day, StartTime: start, EndTime: end}
	if err := s.store.UpsertSchedule(ctx, sched); err != nil {
		return nil, storeFailure("failed to save schedule", err)
	}

	s.evaluateIfEnabled(ctx, q)
	return sched, nil
}

func (s *Service) RemoveSchedule(ctx context.Context, guildID, name string, day int) error {
	if day < 0 || day > 6 {
		return ErrInvalidDay
	}
	q, err := s.queueByName(ctx, s.store, guildID, name)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSchedule(ctx, q.ID, day); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return storeFailure("failed to delete schedule", err)
	}

	s.evaluateIfEnabled(ctx, q)
	return nil
}

// GetSchedules returns the weekly windows of a queue ordered by day.
func (s *Service) GetSchedules(ctx context.Context, guildID, name string) (*models.Queue, []models.QueueSchedule, error) {
	q, err := s.queueByName(ctx, s.store, guildID, name)
	if err != nil {
		return nil, nil, err
	}
	scheds, err := s.store.ListSchedules(ctx, q.ID)
	if err != nil {
		return nil, nil, storeFailure("failed to list schedules", err)
	}
	return q, scheds, nil
}

// SetScheduleEnabled toggles auto-locking. Enabling applies the schedule at once.
func (s *Service) SetScheduleEnabled(ctx context.Context, guildID, name string, enabled bool) (*models.Queue, error) {
	q, err := s.updateQueue(ctx, guildID, name, func(q *models.Queue) { q.ScheduleEnabled = enabled })
	if err != nil {
		return nil, err
	}
	s.evaluateIfEnabled(ctx, q)
	return q, nil
}

func (s *Service) SetScheduleShift(ctx context.Context, guildID, name string, minutes int) (*models.Queue, error) {
	if minutes < -maxShiftMinutes || minutes > maxShiftMinutes {
		return nil, ErrInvalidShift
	}
	q, err := s.updateQueue(ctx, guildID, name, func(q *models.Queue) { q.ScheduleShiftMinutes = minutes })
	if err != nil {
		return nil, err
	}
	s.evaluateIfEnabled(ctx, q)
	return q, nil
}

func (s *Service) updateQueue(ctx context.Context, guildID, name string, mutate func(*models.Queue)) (*models.Queue, error) {
	var q *models.Queue
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, name)
		if err != nil {
			return err
		}
		mutate(q)
		if err := tx.SaveQueue(ctx, q); err != nil {
			return storeFailure("failed to update queue", err)
		}
		return nil
	})
	return q, err
}

func (s *Service) evaluateIfEnabled(ctx context.Context, q *models.Queue) {
	if !q.ScheduleEnabled {
		return
	}
	if _, err := s.EvaluateQueue(ctx, q); err != nil {
		log.Printf("[ERROR] Ошибка проверки расписания очереди %q: %v", q.Name, err)
	}
}

// EvaluateAll drives every schedule-enabled queue to its expected lock state.
// Concurrent callers share one pass.
func (s *Service) EvaluateAll(ctx context.Context) error {
	_, err, _ := s.evaluations.Do("all", func() (interface{}, error) {
		queues, err := s.store.ListScheduledQueues(ctx)
		if err != nil {
			return nil, storeFailure("failed to list scheduled queues", err)
		}
		var errs []error
		for i := range queues {
			if _, err := s.EvaluateQueue(ctx, &queues[i]); err != nil {
				errs = append(errs, fmt.Errorf("queue %d: %w", queues[i].ID, err))
			}
		}
		return nil, errors.Join(errs...)
	})
	return err
}

// EvaluateQueue applies the current window to one queue and reports whether
// its lock state changed.
func (s *Service) EvaluateQueue(ctx context.Context, q *models.Queue) (bool, error) {
	now := s.clock.Now().In(s.loc)
	day := int(now.Weekday())
	nowMin := now.Hour()*60 + now.Minute()

	shouldLock := true
	sched, err := s.store.GetSchedule(ctx, q.ID, day)
	switch {
	case err == nil:
		shouldLock = !IsOpen(*sched, q.ScheduleShiftMinutes, nowMin)
	case !errors.Is(err, ErrRecordNotFound):
		return false, storeFailure("failed to load schedule", err)
	}

	if q.IsLocked == shouldLock {
		return false, nil
	}
	if _, err := s.SetQueueLockState(ctx, q.GuildID, q.Name, shouldLock); err != nil {
		if errors.Is(err, ErrAlreadyInState) {
			log.Printf("[INFO] Очередь %q уже %s", q.Name, lockWord(shouldLock))
			q.IsLocked = shouldLock
			return false, nil
		}
		return false, err
	}
	q.IsLocked = shouldLock
	log.Printf("[INFO] Очередь %q %s по расписанию", q.Name, lockWord(shouldLock))
	return true, nil
}

func lockWord(locked bool) string {
	if locked {
		return "закрыта"
	}
	return "открыта"
}
