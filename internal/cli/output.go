package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case UpdateAck:
		o.printUpdateAck(v)
	case []MatchRecord:
		o.printHistory(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// VersusRecord response type (matches API)
type VersusRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// User response type
type User struct {
	ID       string                  `json:"id"`
	Username string                  `json:"username"`
	Wins     int                     `json:"wins"`
	Losses   int                     `json:"losses"`
	VS       map[string]VersusRecord `json:"vs,omitempty"`
}

// AuthResult combines token and user
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Seat response type
type Seat struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Connected bool   `json:"connected"`
}

// Room response type
type Room struct {
	ID         string          `json:"id"`
	HostID     string          `json:"hostId"`
	Players    []Seat          `json:"players"`
	Started    bool            `json:"started"`
	Locked     bool            `json:"locked"`
	Revision   int             `json:"revision"`
	State      json.RawMessage `json:"state"`
	YouAreHost bool            `json:"youAreHost"`
}

// UpdateAck response type
type UpdateAck struct {
	OK       bool `json:"ok"`
	Revision int  `json:"revision"`
}

// MatchRecord response type
type MatchRecord struct {
	ID       string    `json:"id"`
	RoomCode string    `json:"roomCode"`
	Players  []string  `json:"players"`
	Winner   string    `json:"winner"`
	PlayedAt time.Time `json:"playedAt"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Record: %d wins, %d losses\n", u.Wins, u.Losses)
	if len(u.VS) > 0 {
		fmt.Println("Head to head:")
		for opponent, rec := range u.VS {
			fmt.Printf("  vs %s: %d-%d\n", opponent, rec.Wins, rec.Losses)
		}
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.ID)
	phase := "open"
	if r.Started {
		phase = "started"
	}
	fmt.Printf("Phase: %s\n", phase)
	fmt.Printf("Revision: %d\n", r.Revision)
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		hostStr := ""
		if p.ID == r.HostID {
			hostStr = " [host]"
		}
		connStr := ""
		if !p.Connected {
			connStr = " (away)"
		}
		fmt.Printf("  - %s (%s)%s%s\n", p.Username, p.ID, hostStr, connStr)
	}
	if r.YouAreHost {
		fmt.Println("You are the host")
	}
	if len(r.State) > 0 && string(r.State) != "null" {
		fmt.Printf("State: %s\n", string(r.State))
	}
}

func (o *Output) printUpdateAck(u UpdateAck) {
	fmt.Printf("State accepted (revision %d)\n", u.Revision)
}

func (o *Output) printHistory(records []MatchRecord) {
	if len(records) == 0 {
		fmt.Println("No matches played yet")
		return
	}
	fmt.Printf("Matches (%d):\n", len(records))
	for _, m := range records {
		fmt.Printf("  %s  room %s  winner %s  (%s)\n",
			m.PlayedAt.Format("2006-01-02 15:04"), m.RoomCode, m.Winner, strings.Join(m.Players, ", "))
	}
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("No players on the leaderboard yet")
		return
	}
	fmt.Println("Leaderboard:")
	for i, e := range entries {
		fmt.Printf("  %d. %s  %d wins, %d losses\n", i+1, e.Username, e.Wins, e.Losses)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
