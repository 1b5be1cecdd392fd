package service

import (
	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/repository"
)

// PersistenceSubscriber writes the slices touched by each commit.
// Write failures are logged and counted; they never undo the commit.
type PersistenceSubscriber struct {
	repo repository.StateRepository
	log  zerolog.Logger
}

// NewPersistenceSubscriber creates a PersistenceSubscriber
func NewPersistenceSubscriber(repo repository.StateRepository, log zerolog.Logger) *PersistenceSubscriber {
	return &PersistenceSubscriber{repo: repo, log: log}
}

func (p *PersistenceSubscriber) OnCommit(c *Commit) {
	if len(c.Slices) == 0 {
		return
	}
	if err := p.repo.Save(c.State, c.Slices); err != nil {
		persistenceErrorsTotal.Inc()
		p.log.Warn().Err(err).Str("action", c.Action).Msg("state persistence failed")
	}
}
