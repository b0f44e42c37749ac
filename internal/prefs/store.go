// Package prefs persists presentation-layer preferences as an opaque
// JSON document. The backend never interprets individual keys; clients
// read and replace the whole document.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/founderspw/somanager/internal/config"
)

// Store reads and writes the preferences file atomically.
type Store struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

func New(p Params) *Store {
	return &Store{
		path: p.Cfg.PrefsPath(),
		log:  p.Log.Named("prefs.store"),
	}
}

// Load returns the stored document, or an empty object when the file
// does not exist yet.
func (s *Store) Load() (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return json.RawMessage("{}"), nil
	}
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		s.log.Warn("preferences file is corrupt, resetting", zap.String("path", s.path))
		return json.RawMessage("{}"), nil
	}
	return data, nil
}

// Save replaces the document wholesale. The write goes through a temp
// file and rename so a crash never leaves a half-written file.
func (s *Store) Save(doc json.RawMessage) error {
	var obj map[string]interface{}
	if err := json.Unmarshal(doc, &obj); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

var Module = fx.Module("prefs.store",
	fx.Provide(New),
)
