package service

import (
	"sync"

	"github.com/surat-tugas/portal-api/internal/models"
)

// SessionState is the per-login working set: the authenticated teacher and
// the snapshot ingested for them. Approve/reject and profile updates patch it
// locally after a successful delivery; a fresh login replaces it wholesale.
type SessionState struct {
	mu       sync.RWMutex
	teacher  models.Teacher
	snapshot *models.Snapshot
}

// NewSessionState builds a session state around an ingested snapshot.
func NewSessionState(teacher models.Teacher, snapshot *models.Snapshot) *SessionState {
	return &SessionState{teacher: teacher, snapshot: snapshot}
}

// Teacher returns the current teacher record.
func (s *SessionState) Teacher() models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teacher
}

// Snapshot returns the current snapshot pointer. The snapshot is treated as
// immutable by readers; mutations go through the Update helpers which swap
// the affected slice entries under the write lock.
func (s *SessionState) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// UpdateTeacher replaces the teacher record.
func (s *SessionState) UpdateTeacher(teacher models.Teacher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teacher = teacher
	for i := range s.snapshot.Teachers {
		if s.snapshot.Teachers[i].Code == teacher.Code {
			s.snapshot.Teachers[i].Teacher = teacher
			break
		}
	}
}

// UpdateRequest applies fn to the request with the given id and returns the
// updated copy. The bool result reports whether the id was found.
func (s *SessionState) UpdateRequest(id string, fn func(*models.ServiceRequest)) (models.ServiceRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snapshot.Requests {
		if s.snapshot.Requests[i].ID == id {
			fn(&s.snapshot.Requests[i])
			return s.snapshot.Requests[i], true
		}
	}
	return models.ServiceRequest{}, false
}

// FindRequest returns the request with the given id.
func (s *SessionState) FindRequest(id string) (models.ServiceRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, req := range s.snapshot.Requests {
		if req.ID == id {
			return req, true
		}
	}
	return models.ServiceRequest{}, false
}

// SessionRegistry tracks live session states by session id. Each session
// owns its state exclusively; the registry lock only guards the map.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
}

// NewSessionRegistry builds an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*SessionState)}
}

// Get looks up a session state.
func (r *SessionRegistry) Get(sessionID string) (*SessionState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.sessions[sessionID]
	return state, ok
}

// Put registers a session state.
func (r *SessionRegistry) Put(sessionID string, state *SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = state
}

// Delete removes a session state.
func (r *SessionRegistry) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}
