package config

import (
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/profile"
)

func initializeBoardProfiles() map[string]profile.Profile {
	return profile.Boards()
}

// GetProfile returns the active board profile.
func (c GlowConfig) GetProfile() (profile.Profile, error) {
	p, ok := c.BoardProfiles[c.Board]
	if !ok {
		return profile.Profile{}, errors.WithStackTrace(UnknownBoard{Board: c.Board})
	}
	return p, nil
}
