package ipc

// Message types; must stay in sync with the mod.
const (
	TypeHello     = "hello"
	TypeAck       = "ack"
	TypeGameState = "game_state"
)

type HelloMessage struct {
	Player string `json:"player"`
}

type AckMessage struct {
	Status string `json:"status"`
}
