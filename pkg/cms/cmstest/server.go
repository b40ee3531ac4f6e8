package cmstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

type item = map[string]any

// User is a CMS account reachable through a static bearer token. Non-admin
// users only see and modify the cheatsheets they created.
type User struct {
	ID    string
	Token string
	Admin bool
}

// Server is an in-memory CMS listening on a loopback address.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	items map[string][]item
	seq   map[string]int
	users map[string]User
	clock func() time.Time

	hits atomic.Int64
	down atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the time source for date_created and date_updated.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// New starts a server with empty collections. The default clock starts at
// 2024-01-01T00:00:00Z and advances one minute per call, so creation order
// is also date order.
func New(opts ...Option) *Server {
	s := &Server{
		items: map[string][]item{
			collectionCheatsheets: {},
			collectionCategories:  {},
			collectionTags:        {},
			collectionSheetTags:   {},
			collectionRelated:     {},
		},
		seq:   map[string]int{},
		users: map[string]User{},
		clock: steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(s.count)
	r.HandleFunc("/server/ping", s.handlePing).Methods(http.MethodGet)
	r.HandleFunc("/items/{collection}", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/items/{collection}", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/items/{collection}/{id}", s.handleRead).Methods(http.MethodGet)
	r.HandleFunc("/items/{collection}/{id}", s.handleUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/items/{collection}/{id}", s.handleDelete).Methods(http.MethodDelete)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "ROUTE_NOT_FOUND", fmt.Sprintf("Route %s doesn't exist.", r.URL.Path))
	})

	s.Server = httptest.NewServer(r)
	return s
}

func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

// AddUser registers a bearer token.
func (s *Server) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Token] = u
}

// Hits returns the number of requests received.
func (s *Server) Hits() int64 {
	return s.hits.Load()
}

// ResetHits zeroes the request counter.
func (s *Server) ResetHits() {
	s.hits.Store(0)
}

// SetDown makes every request fail with 503 until called with false.
func (s *Server) SetDown(down bool) {
	s.down.Store(down)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		if s.down.Load() {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service is unavailable.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.items[collection]
	if !ok {
		writeForbidden(w)
		return
	}

	matched := make([]item, 0, len(rows))
	for _, row := range rows {
		if !s.visible(collection, row, user) {
			continue
		}
		if q.filter != nil {
			ok, err := s.match(collection, row, q.filter)
			if err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
				return
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, row)
	}

	sortItems(matched, q.sort)
	matched = page(matched, q.limit, q.offset)

	out := make([]item, 0, len(matched))
	for _, row := range matched {
		out = append(out, s.project(collection, row, q.fields))
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.find(vars["collection"], vars["id"])
	if row == nil || !s.visible(vars["collection"], row, user) {
		writeForbidden(w)
		return
	}
	writeData(w, http.StatusOK, s.project(vars["collection"], row, q.fields))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if user == nil {
		writeForbidden(w)
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[collection]; !ok {
		writeForbidden(w)
		return
	}

	row := item{}
	if err := s.apply(collection, row, payload, true); err != nil {
		writeWriteError(w, err)
		return
	}
	row["id"] = s.nextID(collection)
	row["user_created"] = user.ID
	row["date_created"] = s.clock().UTC().Format(timeLayout)
	if collection == collectionCheatsheets {
		if _, ok := row["status"]; !ok {
			row["status"] = "draft"
		}
	}
	s.items[collection] = append(s.items[collection], row)
	s.applyRelations(collection, row, payload)

	writeData(w, http.StatusOK, s.project(collection, row, q.fields))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if user == nil {
		writeForbidden(w)
		return
	}
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.find(vars["collection"], vars["id"])
	if row == nil || !s.visible(vars["collection"], row, user) {
		writeForbidden(w)
		return
	}

	staged := copyItem(row)
	if err := s.apply(vars["collection"], staged, payload, false); err != nil {
		writeWriteError(w, err)
		return
	}
	staged["user_updated"] = user.ID
	staged["date_updated"] = s.clock().UTC().Format(timeLayout)
	for k := range row {
		delete(row, k)
	}
	for k, v := range staged {
		row[k] = v
	}
	s.applyRelations(vars["collection"], row, payload)

	writeData(w, http.StatusOK, s.project(vars["collection"], row, q.fields))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if user == nil {
		writeForbidden(w)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.find(vars["collection"], vars["id"])
	if row == nil || !s.visible(vars["collection"], row, user) {
		writeForbidden(w)
		return
	}
	s.remove(vars["collection"], row["id"])
	w.WriteHeader(http.StatusNoContent)
}

// authenticate resolves the bearer token. A nil user with ok=true is an
// anonymous request.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (*User, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, true
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid user credentials.")
		return nil, false
	}

	s.mu.Lock()
	u, ok := s.users[token]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid user credentials.")
		return nil, false
	}
	return &u, true
}

func (s *Server) visible(collection string, row item, user *User) bool {
	if collection != collectionCheatsheets || user == nil || user.Admin {
		return true
	}
	return row["user_created"] == user.ID
}

func (s *Server) nextID(collection string) any {
	if integerKeys[collection] {
		s.seq[collection]++
		return float64(s.seq[collection])
	}
	return uuid.NewString()
}

func (s *Server) find(collection string, id any) item {
	if id == nil {
		return nil
	}
	key := fmt.Sprint(id)
	for _, row := range s.items[collection] {
		if fmt.Sprint(row["id"]) == key {
			return row
		}
	}
	return nil
}

// remove deletes an item and the join rows that point at it.
func (s *Server) remove(collection string, id any) {
	key := fmt.Sprint(id)
	s.items[collection] = filterRows(s.items[collection], func(row item) bool {
		return fmt.Sprint(row["id"]) != key
	})

	for joinCollection, fields := range relations {
		if !integerKeys[joinCollection] {
			continue
		}
		for field, rel := range fields {
			if rel.collection != collection {
				continue
			}
			s.items[joinCollection] = filterRows(s.items[joinCollection], func(row item) bool {
				return fmt.Sprint(row[field]) != key
			})
		}
	}
}

func filterRows(rows []item, keep func(item) bool) []item {
	out := rows[:0]
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func copyItem(row item) item {
	out := make(item, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Invalid payload. "+err.Error())
		return nil, false
	}
	return payload, true
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []any{
			map[string]any{
				"message":    message,
				"extensions": map[string]any{"code": code},
			},
		},
	})
}

// Missing items answer 403 rather than 404 so existence is not leaked.
func writeForbidden(w http.ResponseWriter) {
	writeError(w, http.StatusForbidden, "FORBIDDEN", "You don't have permission to access this.")
}
