package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "session:"

var ErrNotFound = errors.New("session not found")

// Options configures a Store.
type Options struct {
	// Path is the badger directory; empty runs in memory.
	Path         string
	TTL          time.Duration
	CookieName   string
	SecureCookie bool
}

// Store persists sessions in badger with a per-entry TTL.
type Store struct {
	db   *badger.DB
	opts Options
	log  *zap.Logger
}

// Open opens (or creates) the session database.
func Open(opts Options, log *zap.Logger) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Path).
		WithLogger(badgerLogger{log.Named("badger").Sugar()}).
		WithLoggingLevel(badger.WARNING).
		WithNumVersionsToKeep(1)
	if opts.Path == "" {
		bopts = bopts.WithInMemory(true)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db, opts: opts, log: log}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// New returns an anonymous session with a fresh id. It is not stored until Save.
func (s *Store) New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// Get loads a session by id. Expired or unknown ids yield ErrNotFound.
func (s *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var sess Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalSession(val, &sess)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	sess.stored = true
	return &sess, nil
}

// Save writes the session and restarts its TTL.
func (s *Store) Save(sess *Session) error {
	data, err := marshalSession(sess)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key(sess.ID), data).WithTTL(s.opts.TTL))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	sess.stored = true
	return nil
}

// Delete removes a session. Unknown ids are not an error.
func (s *Store) Delete(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Rotate moves the session to a new id, keeping its contents.
func (s *Store) Rotate(sess *Session) error {
	if sess.stored {
		if err := s.Delete(sess.ID); err != nil {
			return err
		}
	}
	sess.ID = uuid.NewString()
	sess.stored = false
	return nil
}

// Count returns the number of live sessions.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// Clear removes every session.
func (s *Store) Clear() error {
	if err := s.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

// Backup writes a full dump of the store to w.
func (s *Store) Backup(w io.Writer) error {
	if _, err := s.db.Backup(w, 0); err != nil {
		return fmt.Errorf("backup sessions: %w", err)
	}
	return nil
}

// Restore loads a dump produced by Backup.
func (s *Store) Restore(r io.Reader) error {
	if err := s.db.Load(r, 4); err != nil {
		return fmt.Errorf("restore sessions: %w", err)
	}
	return nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

func marshalSession(sess *Session) ([]byte, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

func unmarshalSession(data []byte, sess *Session) error {
	if err := json.Unmarshal(data, sess); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return nil
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
