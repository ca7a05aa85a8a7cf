package domain

// TeamStanding is one row of the ranked team table.
type TeamStanding struct {
	Team            string  `json:"team"`
	Win             int     `json:"win"`
	Loss            int     `json:"loss"`
	Tie             int     `json:"tie"`
	Games           int     `json:"games"`
	Pct             float64 `json:"pct"`
	PPG             float64 `json:"ppg"`
	PowPG           float64 `json:"powpg"`
	TUPG            float64 `json:"tupg"`
	CatPPG          float64 `json:"cat_ppg"`
	AlphaPPG        float64 `json:"alpha_ppg"`
	LightPPG        float64 `json:"light_ppg"`
	Points          int     `json:"points"`
	Powers          int     `json:"powers"`
	Tossups         int     `json:"tossups"`
	CategoryPoints  int     `json:"cat_points"`
	AlphabetPoints  int     `json:"alpha_points"`
	LightningPoints int     `json:"light_points"`
}

// PlayerStanding is one row of the ranked individual table.
type PlayerStanding struct {
	Player  string  `json:"player"`
	PPG     float64 `json:"ppg"`
	PowPG   float64 `json:"powpg"`
	TUPG    float64 `json:"tupg"`
	Powers  int     `json:"powers"`
	Tossups int     `json:"tossups"`
	Points  int     `json:"points"`
	Games   int     `json:"games"`
}

// RosterRow lists every player a team fielded, sorted by name.
type RosterRow struct {
	Team    string   `json:"team"`
	Players []string `json:"players"`
}

// SeasonReport bundles the three tables written by the report emitter.
type SeasonReport struct {
	Teams   []TeamStanding   `json:"teams"`
	Players []PlayerStanding `json:"players"`
	Rosters []RosterRow      `json:"rosters"`
}

// Column orders of the emitted tables.
var (
	TeamStatsColumns = []string{
		"win", "loss", "tie", "pct", "ppg", "powpg", "tupg",
		"cat_ppg", "alpha_ppg", "light_ppg", "points", "powers",
		"tossups", "cat_points", "alpha_points", "light_points",
	}
	IndividualStatsColumns = []string{
		"ppg", "powpg", "tupg", "powers", "tossups", "points", "games",
	}
)

// Values returns the row in TeamStatsColumns order.
func (s TeamStanding) Values() []interface{} {
	return []interface{}{
		s.Win, s.Loss, s.Tie, s.Pct, s.PPG, s.PowPG, s.TUPG,
		s.CatPPG, s.AlphaPPG, s.LightPPG, s.Points, s.Powers,
		s.Tossups, s.CategoryPoints, s.AlphabetPoints, s.LightningPoints,
	}
}

// Values returns the row in IndividualStatsColumns order.
func (s PlayerStanding) Values() []interface{} {
	return []interface{}{
		s.PPG, s.PowPG, s.TUPG, s.Powers, s.Tossups, s.Points, s.Games,
	}
}

// RosterWidth is the length of the longest roster, the column count of the
// padded roster table.
func RosterWidth(rows []RosterRow) int {
	width := 0
	for _, r := range rows {
		if len(r.Players) > width {
			width = len(r.Players)
		}
	}
	return width
}
