package domain

import (
	"fmt"
	"slices"
	"time"
)

// Catalog is an immutable, indexed snapshot of members and experiences.
// A new Catalog is built on every load; existing values are never mutated.
type Catalog struct {
	users       []User
	experiences []Experience
	userIdx     map[string]int
	expIdx      map[string]int
	loadedAt    time.Time
}

// NewCatalog indexes users and experiences by identifier. Duplicate
// identifiers are rejected with ErrDataLoad.
func NewCatalog(users []User, experiences []Experience, loadedAt time.Time) (*Catalog, error) {
	c := &Catalog{
		users:       slices.Clone(users),
		experiences: slices.Clone(experiences),
		userIdx:     make(map[string]int, len(users)),
		expIdx:      make(map[string]int, len(experiences)),
		loadedAt:    loadedAt,
	}
	for i, u := range c.users {
		if _, dup := c.userIdx[u.MemberID]; dup {
			return nil, fmt.Errorf("%w: duplicate member_id %q", ErrDataLoad, u.MemberID)
		}
		c.userIdx[u.MemberID] = i
	}
	for i, e := range c.experiences {
		if _, dup := c.expIdx[e.ExperienceID]; dup {
			return nil, fmt.Errorf("%w: duplicate experience_id %q", ErrDataLoad, e.ExperienceID)
		}
		c.expIdx[e.ExperienceID] = i
	}
	return c, nil
}

// User returns the member with the given identifier.
func (c *Catalog) User(id string) (User, bool) {
	i, ok := c.userIdx[id]
	if !ok {
		return User{}, false
	}
	return c.users[i], true
}

// Experience returns the experience with the given identifier.
func (c *Catalog) Experience(id string) (Experience, bool) {
	i, ok := c.expIdx[id]
	if !ok {
		return Experience{}, false
	}
	return c.experiences[i], true
}

// Users returns members in catalog order. The returned slice is a copy.
func (c *Catalog) Users() []User {
	return slices.Clone(c.users)
}

// Experiences returns experiences in catalog order. The returned slice is a copy.
func (c *Catalog) Experiences() []Experience {
	return slices.Clone(c.experiences)
}

func (c *Catalog) UserCount() int       { return len(c.users) }
func (c *Catalog) ExperienceCount() int { return len(c.experiences) }
func (c *Catalog) LoadedAt() time.Time  { return c.loadedAt }
