// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package save

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Reserved slot names.
const (
	QuicksaveSlot = "quicksave"
	AutosaveSlot  = "autosave"
)

const fileExt = ".json"

// ErrNotFound is returned when a slot file does not exist.
var ErrNotFound = errors.New("save slot not found")

// SlotInfo summarizes one manual save for a load menu.
type SlotInfo struct {
	Filename      string
	SlotName      string
	Timestamp     string
	CharacterName string
	EraIndex      int
	PlayTime      float64
}

// SlotStore keeps save files in a directory, one file per slot.
type SlotStore struct {
	dir    string
	now    func() time.Time
	logger *slog.Logger
}

// NewSlotStore returns a store rooted at dir. The directory is created
// on the first write.
func NewSlotStore(dir string, logger *slog.Logger) *SlotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotStore{dir: dir, now: time.Now, logger: logger}
}

// Dir returns the save directory.
func (s *SlotStore) Dir() string { return s.dir }

// Sanitize maps a slot name to a file stem: letters, digits, '-' and '_'
// are kept, everything else becomes '_', and the result is lowercased.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return strings.ToLower(b.String())
}

func (s *SlotStore) path(slot string) string {
	return filepath.Join(s.dir, slot+fileExt)
}

// Quicksave writes the quicksave slot.
func (s *SlotStore) Quicksave(d Data) error {
	return s.write(QuicksaveSlot, d)
}

// Autosave writes the autosave slot.
func (s *SlotStore) Autosave(d Data) error {
	return s.write(AutosaveSlot, d)
}

// SaveSlot writes a manual save named name and returns its slot file
// stem. An empty name gets a generated one.
func (s *SlotStore) SaveSlot(name string, d Data) (string, error) {
	slot := Sanitize(name)
	if slot == "" {
		slot = "save-" + strings.ToLower(ulid.Make().String())
	}
	if d.SlotName == "" {
		d.SlotName = name
	}
	if err := s.write(slot, d); err != nil {
		return "", err
	}
	return slot, nil
}

func (s *SlotStore) write(slot string, d Data) error {
	if d.Timestamp == "" {
		d.Timestamp = s.now().UTC().Format(time.RFC3339)
	}
	if d.SlotName == "" {
		d.SlotName = slot
	}
	b, err := Encode(d)
	if err != nil {
		return oops.With("slot", slot).Wrap(err)
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return oops.Code("SAVE_IO").With("dir", s.dir).Wrapf(err, "create save directory")
	}
	tmp, err := os.CreateTemp(s.dir, "."+slot+"-*.tmp")
	if err != nil {
		return oops.Code("SAVE_IO").With("slot", slot).Wrapf(err, "create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return oops.Code("SAVE_IO").With("slot", slot).Wrapf(err, "write save")
	}
	if err := tmp.Close(); err != nil {
		return oops.Code("SAVE_IO").With("slot", slot).Wrapf(err, "close save")
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return oops.Code("SAVE_IO").With("slot", slot).Wrapf(err, "replace save")
	}
	s.logger.Info("game saved", "slot", slot, "bytes", len(b))
	return nil
}

// Load reads a slot by file stem.
func (s *SlotStore) Load(slot string) (Data, error) {
	raw, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return Data{}, oops.Code("SAVE_NOT_FOUND").With("slot", slot).Wrap(ErrNotFound)
	}
	if err != nil {
		return Data{}, oops.Code("SAVE_IO").With("slot", slot).Wrapf(err, "read save")
	}
	d, err := Decode(raw)
	if err != nil {
		return Data{}, oops.With("slot", slot).Wrap(err)
	}
	return d, nil
}

// Exists reports whether a slot file is present.
func (s *SlotStore) Exists(slot string) bool {
	_, err := os.Stat(s.path(slot))
	return err == nil
}

// Delete removes a slot. A missing slot is not an error.
func (s *SlotStore) Delete(slot string) error {
	err := os.Remove(s.path(slot))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return oops.Code("SAVE_IO").With("slot", slot).Wrapf(err, "delete save")
}

// List returns the manual saves, newest first. Quicksave and autosave
// are left out, and unreadable files are skipped.
func (s *SlotStore) List() ([]SlotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("SAVE_IO").With("dir", s.dir).Wrapf(err, "list saves")
	}
	var out []SlotInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		slot := strings.TrimSuffix(name, fileExt)
		if slot == QuicksaveSlot || slot == AutosaveSlot {
			continue
		}
		d, err := s.Load(slot)
		if err != nil {
			s.logger.Warn("skipping unreadable save", "file", name, "error", err)
			continue
		}
		out = append(out, SlotInfo{
			Filename:      slot,
			SlotName:      d.SlotName,
			Timestamp:     d.Timestamp,
			CharacterName: d.Player.CharacterName,
			EraIndex:      d.World.EraIndex,
			PlayTime:      d.PlayTimeSeconds,
		})
	}
	slices.SortStableFunc(out, func(a, b SlotInfo) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	return out, nil
}

// FormatPlayTime renders seconds as "1h 2m" or "3m 4s".
func FormatPlayTime(seconds float64) string {
	total := int64(max(seconds, 0))
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm %ds", m, sec)
}
