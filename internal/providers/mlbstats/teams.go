package mlbstats

import "strconv"

// espnTeamIDs maps MLB Stats team ids onto the ESPN ids used across the
// rest of the service, so favorites match regardless of which upstream
// served a game.
var espnTeamIDs = map[int]string{
	108: "3", 109: "29", 110: "1", 111: "2", 112: "16", 113: "17",
	114: "5", 115: "27", 116: "6", 117: "18", 118: "7", 119: "19",
	120: "20", 121: "21", 133: "11", 134: "23", 135: "25", 136: "12",
	137: "26", 138: "24", 139: "30", 140: "13", 141: "14", 142: "9",
	143: "22", 144: "15", 145: "4", 146: "28", 147: "10", 158: "8",
}

var divisionNames = map[int]string{
	200: "American League West",
	201: "American League East",
	202: "American League Central",
	203: "National League West",
	204: "National League East",
	205: "National League Central",
}

// teamID returns the ESPN id for an MLB Stats team, or "mlb-<id>" when the
// team is unknown (spring training split squads, minor league opponents).
func teamID(mlbID int) string {
	if id, ok := espnTeamIDs[mlbID]; ok {
		return id
	}
	return "mlb-" + strconv.Itoa(mlbID)
}

func divisionName(id int, name string) string {
	if name != "" {
		return name
	}
	if n, ok := divisionNames[id]; ok {
		return n
	}
	return "Division " + strconv.Itoa(id)
}
