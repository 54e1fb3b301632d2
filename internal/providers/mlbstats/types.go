package mlbstats

import "time"

type scheduleResponse struct {
	TotalGames int            `json:"totalGames"`
	Dates      []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type gameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
	StatusCode        string `json:"statusCode"`
}

type teamRef struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TeamName     string `json:"teamName"`
	LocationName string `json:"locationName"`
	Abbreviation string `json:"abbreviation"`
}

type leagueRecord struct {
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Pct    string `json:"pct"`
}

type scheduleSide struct {
	LeagueRecord leagueRecord `json:"leagueRecord"`
	Score        *int         `json:"score"`
	Team         teamRef      `json:"team"`
	IsWinner     bool         `json:"isWinner"`
}

type venue struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type scheduleGame struct {
	GamePk   int        `json:"gamePk"`
	GameType string     `json:"gameType"`
	Season   string     `json:"season"`
	GameDate time.Time  `json:"gameDate"`
	Status   gameStatus `json:"status"`
	Teams    struct {
		Away scheduleSide `json:"away"`
		Home scheduleSide `json:"home"`
	} `json:"teams"`
	Venue             venue      `json:"venue"`
	Linescore         *linescore `json:"linescore,omitempty"`
	SeriesDescription string     `json:"seriesDescription"`
}

type linescore struct {
	CurrentInning        int    `json:"currentInning"`
	CurrentInningOrdinal string `json:"currentInningOrdinal"`
	InningHalf           string `json:"inningHalf"`
	InningState          string `json:"inningState"`
	Outs                 int    `json:"outs"`
	Teams                struct {
		Home lineTeam `json:"home"`
		Away lineTeam `json:"away"`
	} `json:"teams"`
	Offense offense `json:"offense"`
}

type lineTeam struct {
	Runs int `json:"runs"`
}

type playerRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type offense struct {
	Batter *playerRef `json:"batter,omitempty"`
	First  *playerRef `json:"first,omitempty"`
	Second *playerRef `json:"second,omitempty"`
	Third  *playerRef `json:"third,omitempty"`
}

type liveFeed struct {
	GamePk   int `json:"gamePk"`
	GameData struct {
		Game struct {
			Season string `json:"season"`
		} `json:"game"`
		Datetime struct {
			DateTime time.Time `json:"dateTime"`
		} `json:"datetime"`
		Status gameStatus `json:"status"`
		Teams  struct {
			Away teamRef `json:"away"`
			Home teamRef `json:"home"`
		} `json:"teams"`
		Venue venue `json:"venue"`
	} `json:"gameData"`
	LiveData struct {
		Linescore linescore `json:"linescore"`
	} `json:"liveData"`
}

type standingsResponse struct {
	Records []standingsRecord `json:"records"`
}

type standingsRecord struct {
	Division struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"division"`
	TeamRecords []teamRecord `json:"teamRecords"`
}

type teamRecord struct {
	Team              teamRef `json:"team"`
	Season            string  `json:"season"`
	DivisionRank      string  `json:"divisionRank"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	GamesPlayed       int     `json:"gamesPlayed"`
	GamesBack         string  `json:"gamesBack"`
	WinningPercentage string  `json:"winningPercentage"`
	RunDifferential   int     `json:"runDifferential"`
	Streak            struct {
		StreakCode string `json:"streakCode"`
	} `json:"streak"`
}
