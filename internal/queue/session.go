package queue

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"tutorq/internal/models"
)

// PickResult describes a completed hand-off from queue to session.
type PickResult struct {
	Queue   *models.Queue
	Session *models.Session
	Student *models.SessionStudent
	RoomRef string
}

// GetActiveSession is the single place tutor-context operations resolve the
// tutor's session from.
func (s *Service) GetActiveSession(ctx context.Context, guildID, tutorID string) (*models.Session, error) {
	return s.activeSession(ctx, s.store, guildID, tutorID)
}

func (s *Service) activeSession(ctx context.Context, st Store, guildID, tutorID string) (*models.Session, error) {
	sess, err := st.GetActiveSession(ctx, guildID, tutorID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, storeFailure("failed to load session", err)
	}
	return sess, nil
}

// CreateSession opens a helping session for tutorID on the queue. A tutor
// holds at most one open session per guild and may not be waiting in any
// queue while helping.
func (s *Service) CreateSession(ctx context.Context, guildID, queueName, tutorID string) (*models.Session, error) {
	var (
		q    *models.Queue
		sess *models.Session
	)

	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, queueName)
		if err != nil {
			return err
		}

		if _, err := tx.GetActiveSession(ctx, guildID, tutorID); err == nil {
			return ErrSessionAlreadyActive
		} else if !errors.Is(err, ErrRecordNotFound) {
			return storeFailure("failed to check sessions", err)
		}

		memberships, err := tx.ListActiveMemberships(ctx, guildID, tutorID)
		if err != nil {
			return storeFailure("failed to check memberships", err)
		}
		if len(memberships) > 0 {
			return ErrStudentCannotStartSession
		}

		sess = &models.Session{
			GuildID:   guildID,
			QueueID:   q.ID,
			TutorID:   tutorID,
			StartTime: s.clock.Now(),
		}
		if err := tx.CreateSession(ctx, sess); err != nil {
			if errors.Is(err, ErrDuplicate) {
				return ErrSessionAlreadyActive
			}
			return storeFailure("failed to start session", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		if s.sessionRole != "" {
			warnIf("выдача роли сессии", s.roles.Grant(ctx, guildID, tutorID, s.sessionRole))
		}
		warnIf("закрытый журнал", s.notifier.LogPrivate(ctx, q, fmt.Sprintf("%s started a session on **%s**", mention(tutorID), q.Name)))
		s.publish(Event{Type: EventSessionStarted, GuildID: guildID, QueueID: q.ID, QueueName: q.Name, UserID: tutorID})
	})
	return sess, nil
}

// EndSession closes the tutor's open session and every room still attached
// to it.
func (s *Service) EndSession(ctx context.Context, guildID, tutorID string) (*models.Session, error) {
	var (
		sess  *models.Session
		q     *models.Queue
		rooms []models.SessionStudent
	)

	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		sess, err = s.activeSession(ctx, tx, guildID, tutorID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := tx.EndSession(ctx, sess.ID, now); err != nil {
			return storeFailure("failed to end session", err)
		}
		sess.EndTime = &now

		rooms, err = tx.ListOpenSessionStudents(ctx, sess.ID)
		if err != nil {
			return storeFailure("failed to list session rooms", err)
		}
		for _, r := range rooms {
			if err := tx.EndSessionStudent(ctx, r.ID, now); err != nil {
				return storeFailure("failed to close session room", err)
			}
		}

		q, err = tx.GetQueueByID(ctx, sess.QueueID)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return storeFailure("failed to load queue", err)
		}
		if q == nil {
			q = &models.Queue{ID: sess.QueueID, GuildID: guildID}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		if s.sessionRole != "" {
			warnIf("снятие роли сессии", s.roles.Revoke(ctx, guildID, tutorID, s.sessionRole))
		}
		if s.rooms != nil {
			for _, r := range rooms {
				warnIf("удаление комнаты сессии", s.rooms.DeleteRoom(ctx, guildID, r.ChannelID))
			}
		}
		warnIf("закрытый журнал", s.notifier.LogPrivate(ctx, q, fmt.Sprintf("%s ended their session (%d student(s) helped)",
			mention(tutorID), len(rooms))))
		s.publish(Event{Type: EventSessionEnded, GuildID: guildID, QueueID: q.ID, QueueName: q.Name, UserID: tutorID})
	})
	return sess, nil
}

// PickStudent atomically removes the student's active membership and records
// them in the session. Either both writes happen or neither does.
func (s *Service) PickStudent(ctx context.Context, guildID, queueName, studentID string, sessionID uint, tutorID, roomRef string) (*models.SessionStudent, error) {
	var (
		q      *models.Queue
		record *models.SessionStudent
	)

	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, queueName)
		if err != nil {
			return err
		}

		sess, err := tx.GetSession(ctx, sessionID)
		if errors.Is(err, ErrRecordNotFound) {
			return ErrNoActiveSession
		}
		if err != nil {
			return storeFailure("failed to load session", err)
		}
		if !sess.Active() || sess.TutorID != tutorID || sess.GuildID != guildID {
			return ErrNoActiveSession
		}

		m, err := tx.GetActiveMember(ctx, q.ID, studentID)
		if errors.Is(err, ErrRecordNotFound) {
			return ErrNotInQueue
		}
		if err != nil {
			return storeFailure("failed to load membership", err)
		}

		// Being picked is not a disconnect: no grace period.
		if err := tx.DeleteMember(ctx, m.ID); err != nil {
			return storeFailure("failed to remove student from queue", err)
		}

		record = &models.SessionStudent{
			SessionID: sess.ID,
			StudentID: studentID,
			ChannelID: roomRef,
			PickedAt:  s.clock.Now(),
		}
		if err := tx.CreateSessionStudent(ctx, record); err != nil {
			return storeFailure("failed to record picked student", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		warnIf("закрытый журнал", s.notifier.LogPrivate(ctx, q, fmt.Sprintf("%s picked %s from **%s**", mention(tutorID), mention(studentID), q.Name)))
		warnIf("уведомление о вызове", s.notifier.NotifyUser(ctx, studentID, fmt.Sprintf(
			"%s is ready to help you. Join %s.", mention(tutorID), channelMention(roomRef))))
		s.publish(Event{
			Type:      EventMemberPicked,
			GuildID:   guildID,
			QueueID:   q.ID,
			QueueName: q.Name,
			UserID:    studentID,
			Data:      map[string]interface{}{"tutor_id": tutorID, "room": roomRef},
		})
	})
	return record, nil
}

// ProcessStudentPick provisions a private room for tutor and student, moves
// the tutor into it and hands the student over. Nothing is written when the
// room cannot be created.
func (s *Service) ProcessStudentPick(ctx context.Context, guildID, queueName, tutorID, studentID string) (*PickResult, error) {
	sess, err := s.GetActiveSession(ctx, guildID, tutorID)
	if err != nil {
		return nil, err
	}
	q, err := s.queueByName(ctx, s.store, guildID, queueName)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetActiveMember(ctx, q.ID, studentID); errors.Is(err, ErrRecordNotFound) {
		return nil, ErrNotInQueue
	} else if err != nil {
		return nil, storeFailure("failed to load membership", err)
	}
	if s.rooms == nil {
		return nil, ErrRoomCreation.with("", errors.New("no room provisioner configured"))
	}

	var parent string
	if waiting := models.Ref(q.WaitingRoomRef); waiting != "" {
		parent, err = s.rooms.CategoryOf(ctx, guildID, waiting)
		warnIf("категория комнаты ожидания", err)
	}

	room, err := s.rooms.CreatePrivateRoom(ctx, guildID, roomName(q.Name), []string{tutorID, studentID}, parent)
	if err != nil {
		return nil, ErrRoomCreation.with("", err)
	}

	warnIf("перемещение преподавателя", s.rooms.MovePresence(ctx, guildID, tutorID, room))

	record, err := s.PickStudent(ctx, guildID, q.Name, studentID, sess.ID, tutorID, room)
	if err != nil {
		warnIf("удаление лишней комнаты", s.rooms.DeleteRoom(context.WithoutCancel(ctx), guildID, room))
		return nil, err
	}
	return &PickResult{Queue: q, Session: sess, Student: record, RoomRef: room}, nil
}

// PickNext hands over the member at the front of the tutor's session queue.
func (s *Service) PickNext(ctx context.Context, guildID, tutorID string) (*PickResult, error) {
	_, q, err := s.sessionQueue(ctx, guildID, tutorID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListActiveMembers(ctx, q.ID)
	if err != nil {
		return nil, storeFailure("failed to list members", err)
	}
	if len(members) == 0 {
		return nil, ErrQueueEmpty.with(fmt.Sprintf("queue %q is empty", q.Name), nil)
	}
	return s.ProcessStudentPick(ctx, guildID, q.Name, tutorID, members[0].UserID)
}

// PickSpecific hands over a named member of the tutor's session queue.
func (s *Service) PickSpecific(ctx context.Context, guildID, tutorID, studentID string) (*PickResult, error) {
	_, q, err := s.sessionQueue(ctx, guildID, tutorID)
	if err != nil {
		return nil, err
	}
	return s.ProcessStudentPick(ctx, guildID, q.Name, tutorID, studentID)
}

func (s *Service) sessionQueue(ctx context.Context, guildID, tutorID string) (*models.Session, *models.Queue, error) {
	sess, err := s.GetActiveSession(ctx, guildID, tutorID)
	if err != nil {
		return nil, nil, err
	}
	q, err := s.store.GetQueueByID(ctx, sess.QueueID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil, ErrQueueNotFound
	}
	if err != nil {
		return nil, nil, storeFailure("failed to load queue", err)
	}
	return sess, q, nil
}

var unsafeRoomChars = regexp.MustCompile(`[^a-z0-9-]+`)

func roomName(queueName string) string {
	base := unsafeRoomChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(queueName)), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "queue"
	}
	return fmt.Sprintf("%s-session-%s", base, uuid.NewString()[:8])
}
