// Package revalidate dispatches best-effort notifications that cached
// profile pages are stale.
package revalidate

import "time"

const (
	ReasonPostCreated   = "post.create"
	ReasonFollowToggled = "profile.toggleFollow"
)

// Event names the profiles whose pages must be regenerated.
type Event struct {
	Reason     string    `json:"reason"`
	ActorID    string    `json:"actor_id"`
	ProfileIDs []string  `json:"profile_ids"`
	Paths      []string  `json:"paths"`
	At         time.Time `json:"at"`
}

// ProfilePath is the page path of a profile.
func ProfilePath(profileID string) string {
	return "/profiles/" + profileID
}

// NewProfileEvent builds an event for the given profiles, skipping
// duplicates.
func NewProfileEvent(reason, actorID string, profileIDs ...string) Event {
	ev := Event{Reason: reason, ActorID: actorID, At: time.Now().UTC()}
	seen := make(map[string]bool, len(profileIDs))
	for _, id := range profileIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ev.ProfileIDs = append(ev.ProfileIDs, id)
		ev.Paths = append(ev.Paths, ProfilePath(id))
	}
	return ev
}
