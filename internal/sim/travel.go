// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import (
	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/terrain"
)

// TravelToYear moves the world to year. The terrain of the new era is
// regenerated around the player and the NPCs of the old era are replaced.
// A year outside the timeline leaves everything unchanged.
func (s *Simulation) TravelToYear(year int64) ([]chunk.Event, error) {
	from := s.timeline.ActiveYear()
	if err := s.timeline.TravelToYear(year); err != nil {
		TimeTravels.WithLabelValues("rejected").Inc()
		s.logger.Warn("time travel rejected", "from", from, "to", year)
		return nil, err
	}
	TimeTravels.WithLabelValues("ok").Inc()

	s.EndConversation()
	events := s.chunks.SetEraConfig(terrain.ForEra(s.timeline.EraIndex()))
	s.handleChunkEvents(events)
	s.snapToGround()
	if s.hubPlaced {
		s.placeHub()
	}
	s.logger.Info("time travel", "from", from, "to", year, "era", s.timeline.EraName(), "chunks", len(events))
	return events, nil
}

// Year returns the active year.
func (s *Simulation) Year() int64 { return s.timeline.ActiveYear() }
