package model

// Player is one of the two sides of the board.
type Player string

const (
	PlayerA Player = "A"
	PlayerB Player = "B"
)

func (p Player) Valid() bool {
	return p == PlayerA || p == PlayerB
}

// Opponent returns the other side. An invalid player has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return ""
}

type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Side is the board side a role controls. The host always plays A.
func (r Role) Side() Player {
	if r == RoleHost {
		return PlayerA
	}
	return PlayerB
}

// Participant is a connected player seated in a room.
type Participant struct {
	ID   string
	User string
	Role Role
}

type ClientParticipant struct {
	User string `json:"user"`
	Role Role   `json:"role"`
	Side Player `json:"side"`
}

func (p Participant) Client() ClientParticipant {
	return ClientParticipant{
		User: p.User,
		Role: p.Role,
		Side: p.Role.Side(),
	}
}
