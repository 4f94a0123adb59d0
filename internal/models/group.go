package models

// Group is a user's named collection of favorite games.
//
// A group's id is unique only within its owning user. Games holds
// references (gameId → gameName) into the shared catalog cache; removing
// a reference never deletes the cached game record.
type Group struct {
	// ID is the group identifier, unique per owning user.
	ID string `json:"groupId"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// Description is a free-form description of the group.
	Description string `json:"description"`

	// Games maps gameId to gameName for every game in the group.
	Games map[string]string `json:"games"`
}

// Clone returns a deep copy of the group so callers cannot mutate
// store-owned state through the returned map.
func (g *Group) Clone() *Group {
	games := make(map[string]string, len(g.Games))
	for id, name := range g.Games {
		games[id] = name
	}
	return &Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Games:       games,
	}
}
