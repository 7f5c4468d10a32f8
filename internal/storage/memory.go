package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tutorq/internal/models"
	"tutorq/internal/queue"
)

type memState struct {
	queues    map[uint]models.Queue
	members   map[uint]models.QueueMember
	schedules map[uint]models.QueueSchedule
	sessions  map[uint]models.Session
	students  map[uint]models.SessionStudent
	nextID    uint
	writes    int
}

func newMemState() *memState {
	return &memState{
		queues:    map[uint]models.Queue{},
		members:   map[uint]models.QueueMember{},
		schedules: map[uint]models.QueueSchedule{},
		sessions:  map[uint]models.Session{},
		students:  map[uint]models.SessionStudent{},
	}
}

func cloneMap[V any](m map[uint]V) map[uint]V {
	out := make(map[uint]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (st *memState) clone() *memState {
	return &memState{
		queues:    cloneMap(st.queues),
		members:   cloneMap(st.members),
		schedules: cloneMap(st.schedules),
		sessions:  cloneMap(st.sessions),
		students:  cloneMap(st.students),
		nextID:    st.nextID,
		writes:    st.writes,
	}
}

func (st *memState) id() uint {
	st.nextID++
	return st.nextID
}

// MemoryStore is an in-process queue.Store. Transactions hold the store lock
// and roll back to a snapshot when fn fails. Used with STORE=memory and in
// tests, where FailOn injects faults into single operations.
type MemoryStore struct {
	mu     *sync.Mutex
	state  *memState
	faults map[string]error
	inTx   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:     &sync.Mutex{},
		state:  newMemState(),
		faults: map[string]error{},
	}
}

var _ queue.Store = (*MemoryStore)(nil)

// FailOn makes every later call of op (a Store method name) return err.
// A nil err clears the fault.
func (s *MemoryStore) FailOn(op string, err error) {
	defer s.lock()()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// Writes counts committed mutating operations.
func (s *MemoryStore) Writes() int {
	defer s.lock()()
	return s.state.writes
}

func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) fault(op string) error {
	return s.faults[op]
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx queue.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	tx := &MemoryStore{mu: s.mu, state: s.state, faults: s.faults, inTx: true}
	if err := fn(tx); err != nil {
		*s.state = *snapshot
		return err
	}
	return nil
}

// Queues

func (s *MemoryStore) CreateQueue(ctx context.Context, q *models.Queue) error {
	defer s.lock()()
	if err := s.fault("CreateQueue"); err != nil {
		return err
	}
	for _, other := range s.state.queues {
		if other.GuildID == q.GuildID && other.Name == q.Name {
			return fmt.Errorf("%w: queue %s/%s", queue.ErrDuplicate, q.GuildID, q.Name)
		}
	}
	q.ID = s.state.id()
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	stored := *q
	stored.Members, stored.Schedules = nil, nil
	s.state.queues[q.ID] = stored
	s.state.writes++
	return nil
}

func (s *MemoryStore) GetQueue(ctx context.Context, guildID, name string) (*models.Queue, error) {
	defer s.lock()()
	if err := s.fault("GetQueue"); err != nil {
		return nil, err
	}
	for _, q := range s.state.queues {
		if q.GuildID == guildID && q.Name == name {
			return &q, nil
		}
	}
	return nil, queue.ErrRecordNotFound
}

func (s *MemoryStore) GetQueueByID(ctx context.Context, id uint) (*models.Queue, error) {
	defer s.lock()()
	if err := s.fault("GetQueueByID"); err != nil {
		return nil, err
	}
	q, ok := s.state.queues[id]
	if !ok {
		return nil, queue.ErrRecordNotFound
	}
	return &q, nil
}

func (s *MemoryStore) GetQueueByWaitingRoom(ctx context.Context, guildID, roomRef string) (*models.Queue, error) {
	defer s.lock()()
	if err := s.fault("GetQueueByWaitingRoom"); err != nil {
		return nil, err
	}
	queues := s.sortedQueues(func(q models.Queue) bool {
		return q.GuildID == guildID && models.Ref(q.WaitingRoomRef) == roomRef
	}, byID)
	if len(queues) == 0 {
		return nil, queue.ErrRecordNotFound
	}
	return &queues[0], nil
}

func (s *MemoryStore) ListQueues(ctx context.Context, guildID string) ([]models.Queue, error) {
	defer s.lock()()
	if err := s.fault("ListQueues"); err != nil {
		return nil, err
	}
	return s.sortedQueues(func(q models.Queue) bool { return q.GuildID == guildID }, byName), nil
}

func (s *MemoryStore) ListScheduledQueues(ctx context.Context) ([]models.Queue, error) {
	defer s.lock()()
	if err := s.fault("ListScheduledQueues"); err != nil {
		return nil, err
	}
	return s.sortedQueues(func(q models.Queue) bool { return q.ScheduleEnabled }, byID), nil
}

func byID(a, b models.Queue) bool   { return a.ID < b.ID }
func byName(a, b models.Queue) bool { return a.Name < b.Name }

func (s *MemoryStore) sortedQueues(keep func(models.Queue) bool, less func(a, b models.Queue) bool) []models.Queue {
	var out []models.Queue
	for _, q := range s.state.queues {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (s *MemoryStore) SaveQueue(ctx context.Context, q *models.Queue) error {
	defer s.lock()()
	if err := s.fault("SaveQueue"); err != nil {
		return err
	}
	if _, ok := s.state.queues[q.ID]; !ok {
		return queue.ErrRecordNotFound
	}
	for _, other := range s.state.queues {
		if other.ID != q.ID && other.GuildID == q.GuildID && other.Name == q.Name {
			return fmt.Errorf("%w: queue %s/%s", queue.ErrDuplicate, q.GuildID, q.Name)
		}
	}
	q.UpdatedAt = time.Now()
	stored := *q
	stored.Members, stored.Schedules = nil, nil
	s.state.queues[q.ID] = stored
	s.state.writes++
	return nil
}

func (s *MemoryStore) DeleteQueue(ctx context.Context, id uint) error {
	defer s.lock()()
	if err := s.fault("DeleteQueue"); err != nil {
		return err
	}
	if _, ok := s.state.queues[id]; !ok {
		return queue.ErrRecordNotFound
	}
	delete(s.state.queues, id)
	for mid, m := range s.state.members {
		if m.QueueID == id {
			delete(s.state.members, mid)
		}
	}
	for sid, sc := range s.state.schedules {
		if sc.QueueID == id {
			delete(s.state.schedules, sid)
		}
	}
	s.state.writes++
	return nil
}

// Members

func (s *MemoryStore) CreateMember(ctx context.Context, m *models.QueueMember) error {
	defer s.lock()()
	if err := s.fault("CreateMember"); err != nil {
		return err
	}
	if m.LeftAt == nil && s.activeMember(m.QueueID, m.UserID) != nil {
		return fmt.Errorf("%w: member %d/%s", queue.ErrDuplicate, m.QueueID, m.UserID)
	}
	m.ID = s.state.id()
	s.state.members[m.ID] = *m
	s.state.writes++
	return nil
}

func (s *MemoryStore) activeMember(queueID uint, userID string) *models.QueueMember {
	for _, m := range s.state.members {
		if m.QueueID == queueID && m.UserID == userID && m.LeftAt == nil {
			return &m
		}
	}
	return nil
}

func (s *MemoryStore) GetActiveMember(ctx context.Context, queueID uint, userID string) (*models.QueueMember, error) {
	defer s.lock()()
	if err := s.fault("GetActiveMember"); err != nil {
		return nil, err
	}
	if m := s.activeMember(queueID, userID); m != nil {
		return m, nil
	}
	return nil, queue.ErrRecordNotFound
}

func (s *MemoryStore) GetLeftMember(ctx context.Context, queueID uint, userID string) (*models.QueueMember, error) {
	defer s.lock()()
	if err := s.fault("GetLeftMember"); err != nil {
		return nil, err
	}
	var latest *models.QueueMember
	for _, m := range s.state.members {
		if m.QueueID != queueID || m.UserID != userID || m.LeftAt == nil {
			continue
		}
		if latest == nil || m.LeftAt.After(*latest.LeftAt) {
			m := m
			latest = &m
		}
	}
	if latest == nil {
		return nil, queue.ErrRecordNotFound
	}
	return latest, nil
}

func (s *MemoryStore) ListActiveMembers(ctx context.Context, queueID uint) ([]models.QueueMember, error) {
	defer s.lock()()
	if err := s.fault("ListActiveMembers"); err != nil {
		return nil, err
	}
	return s.sortedMembers(func(m models.QueueMember) bool {
		return m.QueueID == queueID && m.LeftAt == nil
	}), nil
}

func (s *MemoryStore) ListActiveMemberships(ctx context.Context, guildID, userID string) ([]models.QueueMember, error) {
	defer s.lock()()
	if err := s.fault("ListActiveMemberships"); err != nil {
		return nil, err
	}
	return s.sortedMembers(func(m models.QueueMember) bool {
		q, ok := s.state.queues[m.QueueID]
		return ok && q.GuildID == guildID && m.UserID == userID && m.LeftAt == nil
	}), nil
}

func (s *MemoryStore) sortedMembers(keep func(models.QueueMember) bool) []models.QueueMember {
	var out []models.QueueMember
	for _, m := range s.state.members {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MemoryStore) SetMemberLeftAt(ctx context.Context, id uint, leftAt *time.Time) error {
	defer s.lock()()
	if err := s.fault("SetMemberLeftAt"); err != nil {
		return err
	}
	m, ok := s.state.members[id]
	if !ok {
		return queue.ErrRecordNotFound
	}
	if leftAt == nil {
		if other := s.activeMember(m.QueueID, m.UserID); other != nil && other.ID != id {
			return fmt.Errorf("%w: member %d/%s", queue.ErrDuplicate, m.QueueID, m.UserID)
		}
		m.LeftAt = nil
	} else {
		t := *leftAt
		m.LeftAt = &t
	}
	s.state.members[id] = m
	s.state.writes++
	return nil
}

func (s *MemoryStore) DeleteMember(ctx context.Context, id uint) error {
	defer s.lock()()
	if err := s.fault("DeleteMember"); err != nil {
		return err
	}
	if _, ok := s.state.members[id]; !ok {
		return queue.ErrRecordNotFound
	}
	delete(s.state.members, id)
	s.state.writes++
	return nil
}

func (s *MemoryStore) DeleteMembers(ctx context.Context, queueID uint) (int64, error) {
	defer s.lock()()
	if err := s.fault("DeleteMembers"); err != nil {
		return 0, err
	}
	var n int64
	for id, m := range s.state.members {
		if m.QueueID == queueID {
			delete(s.state.members, id)
			n++
		}
	}
	s.state.writes++
	return n, nil
}

// Schedules

func (s *MemoryStore) UpsertSchedule(ctx context.Context, sched *models.QueueSchedule) error {
	defer s.lock()()
	if err := s.fault("UpsertSchedule"); err != nil {
		return err
	}
	for id, existing := range s.state.schedules {
		if existing.QueueID == sched.QueueID && existing.DayOfWeek == sched.DayOfWeek {
			sched.ID = id
			s.state.schedules[id] = *sched
			s.state.writes++
			return nil
		}
	}
	sched.ID = s.state.id()
	s.state.schedules[sched.ID] = *sched
	s.state.writes++
	return nil
}

func (s *MemoryStore) GetSchedule(ctx context.Context, queueID uint, day int) (*models.QueueSchedule, error) {
	defer s.lock()()
	if err := s.fault("GetSchedule"); err != nil {
		return nil, err
	}
	for _, sc := range s.state.schedules {
		if sc.QueueID == queueID && sc.DayOfWeek == day {
			return &sc, nil
		}
	}
	return nil, queue.ErrRecordNotFound
}

func (s *MemoryStore) ListSchedules(ctx context.Context, queueID uint) ([]models.QueueSchedule, error) {
	defer s.lock()()
	if err := s.fault("ListSchedules"); err != nil {
		return nil, err
	}
	var out []models.QueueSchedule
	for _, sc := range s.state.schedules {
		if sc.QueueID == queueID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (s *MemoryStore) DeleteSchedule(ctx context.Context, queueID uint, day int) error {
	defer s.lock()()
	if err := s.fault("DeleteSchedule"); err != nil {
		return err
	}
	for id, sc := range s.state.schedules {
		if sc.QueueID == queueID && sc.DayOfWeek == day {
			delete(s.state.schedules, id)
			s.state.writes++
			return nil
		}
	}
	return queue.ErrRecordNotFound
}

// Sessions

func (s *MemoryStore) CreateSession(ctx context.Context, sess *models.Session) error {
	defer s.lock()()
	if err := s.fault("CreateSession"); err != nil {
		return err
	}
	if sess.EndTime == nil {
		for _, other := range s.state.sessions {
			if other.GuildID == sess.GuildID && other.TutorID == sess.TutorID && other.EndTime == nil {
				return fmt.Errorf("%w: session %s/%s", queue.ErrDuplicate, sess.GuildID, sess.TutorID)
			}
		}
	}
	sess.ID = s.state.id()
	stored := *sess
	stored.Students = nil
	s.state.sessions[sess.ID] = stored
	s.state.writes++
	return nil
}

func (s *MemoryStore) GetSession(ctx context.Context, id uint) (*models.Session, error) {
	defer s.lock()()
	if err := s.fault("GetSession"); err != nil {
		return nil, err
	}
	sess, ok := s.state.sessions[id]
	if !ok {
		return nil, queue.ErrRecordNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) GetActiveSession(ctx context.Context, guildID, tutorID string) (*models.Session, error) {
	defer s.lock()()
	if err := s.fault("GetActiveSession"); err != nil {
		return nil, err
	}
	for _, sess := range s.state.sessions {
		if sess.GuildID == guildID && sess.TutorID == tutorID && sess.EndTime == nil {
			return &sess, nil
		}
	}
	return nil, queue.ErrRecordNotFound
}

func (s *MemoryStore) EndSession(ctx context.Context, id uint, at time.Time) error {
	defer s.lock()()
	if err := s.fault("EndSession"); err != nil {
		return err
	}
	sess, ok := s.state.sessions[id]
	if !ok || sess.EndTime != nil {
		return queue.ErrRecordNotFound
	}
	sess.EndTime = &at
	s.state.sessions[id] = sess
	s.state.writes++
	return nil
}

func (s *MemoryStore) CreateSessionStudent(ctx context.Context, st *models.SessionStudent) error {
	defer s.lock()()
	if err := s.fault("CreateSessionStudent"); err != nil {
		return err
	}
	st.ID = s.state.id()
	s.state.students[st.ID] = *st
	s.state.writes++
	return nil
}

func (s *MemoryStore) ListOpenSessionStudents(ctx context.Context, sessionID uint) ([]models.SessionStudent, error) {
	defer s.lock()()
	if err := s.fault("ListOpenSessionStudents"); err != nil {
		return nil, err
	}
	var out []models.SessionStudent
	for _, st := range s.state.students {
		if st.SessionID == sessionID && st.EndTime == nil {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) EndSessionStudent(ctx context.Context, id uint, at time.Time) error {
	defer s.lock()()
	if err := s.fault("EndSessionStudent"); err != nil {
		return err
	}
	st, ok := s.state.students[id]
	if !ok || st.EndTime != nil {
		return queue.ErrRecordNotFound
	}
	st.EndTime = &at
	s.state.students[id] = st
	s.state.writes++
	return nil
}
